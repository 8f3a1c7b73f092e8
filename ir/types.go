// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"strconv"

	"github.com/gogpu/spvopt/spv"
)

// TypeManager ensures pointer type deduplication. SPIR-V requires that no
// two pointer types with the same storage class and pointee coexist, so
// lookups go through a canonical key map built from the declared types.
type TypeManager struct {
	module   *Module
	defUse   *DefUseManager
	pointers map[string]uint32
}

// NewTypeManager indexes the module's pointer type declarations.
func NewTypeManager(m *Module, defUse *DefUseManager) *TypeManager {
	t := &TypeManager{
		module:   m,
		defUse:   defUse,
		pointers: make(map[string]uint32, 16),
	}
	for _, inst := range m.TypesValues {
		if inst.Op == spv.OpTypePointer {
			key := pointerKey(inst.InOperand(1), spv.StorageClass(inst.InOperand(0)))
			if _, exists := t.pointers[key]; !exists {
				t.pointers[key] = inst.ResultID()
			}
		}
	}
	return t
}

// pointerKey builds the canonical dedup key for a pointer type.
func pointerKey(pointee uint32, space spv.StorageClass) string {
	return "ptr:" + strconv.FormatUint(uint64(pointee), 10) + ":" + strconv.FormatUint(uint64(space), 10)
}

// FindPointerToType returns the id of the pointer type with the given
// pointee and storage class, creating and appending the declaration to the
// types-values section if no identical one exists. Returns 0 if the pointee
// type is not declared in the module.
func (t *TypeManager) FindPointerToType(pointee uint32, space spv.StorageClass) uint32 {
	key := pointerKey(pointee, space)
	if id, exists := t.pointers[key]; exists {
		return id
	}

	if t.defUse.GetDef(pointee) == nil {
		return 0
	}

	id := t.module.AllocID()
	inst := NewInstruction(spv.OpTypePointer, id, uint32(space), pointee)
	t.module.TypesValues = append(t.module.TypesValues, inst)
	t.defUse.AnalyzeInstDefUse(inst)
	t.pointers[key] = id
	return id
}
