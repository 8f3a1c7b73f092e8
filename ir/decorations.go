// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"github.com/gogpu/spvopt/spv"
)

// DecorationManager provides filtered access to the module's annotation
// section.
type DecorationManager struct {
	module *Module
	defUse *DefUseManager
}

// NewDecorationManager creates a decoration manager over the module.
func NewDecorationManager(m *Module, defUse *DefUseManager) *DecorationManager {
	return &DecorationManager{module: m, defUse: defUse}
}

// ForEachDecoration calls fn for every OpDecorate record targeting id.
func (d *DecorationManager) ForEachDecoration(id uint32, fn func(inst *Instruction)) {
	for _, inst := range d.module.Annotations {
		if inst.Op == spv.OpDecorate && inst.InOperand(0) == id {
			fn(inst)
		}
	}
}

// HasDecoration reports whether id carries the decoration.
func (d *DecorationManager) HasDecoration(id uint32, deco spv.Decoration) bool {
	found := false
	d.ForEachDecoration(id, func(inst *Instruction) {
		if spv.Decoration(inst.InOperand(1)) == deco {
			found = true
		}
	})
	return found
}

// RemoveDecorationsFrom deletes every annotation record targeting id for
// which pred returns true. Records on other ids are never touched.
func (d *DecorationManager) RemoveDecorationsFrom(id uint32, pred func(inst *Instruction) bool) {
	filtered := d.module.Annotations[:0]
	for _, inst := range d.module.Annotations {
		target := uint32(0)
		if inst.Op == spv.OpDecorate || inst.Op == spv.OpMemberDecorate {
			target = inst.InOperand(0)
		}
		if target == id && pred(inst) {
			d.defUse.removeUses(inst)
			continue
		}
		filtered = append(filtered, inst)
	}
	d.module.Annotations = filtered
}
