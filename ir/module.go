// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"github.com/gogpu/spvopt/spv"
)

// Module represents a SPIR-V module as ordered instruction sections.
//
// Section order follows the logical layout the SPIR-V specification
// requires. TypesValues holds type declarations, module-scope constants
// and module-scope variables in one ordered sequence; within it every
// declaration must appear after the declarations it references.
type Module struct {
	Version   spv.Version
	Generator uint32
	Bound     uint32 // max id + 1
	Schema    uint32

	Capabilities   []*Instruction
	Extensions     []*Instruction
	ExtInstImports []*Instruction
	MemoryModel    *Instruction
	EntryPoints    []*Instruction
	ExecutionModes []*Instruction
	Debug          []*Instruction // OpString, OpSource*, OpName, OpMemberName
	Annotations    []*Instruction // OpDecorate, OpMemberDecorate
	TypesValues    []*Instruction // OpType*, OpConstant*, module-scope OpVariable
	Functions      []*Instruction // OpFunction ... OpFunctionEnd streams
}

// NewModule creates an empty module targeting the given version.
func NewModule(version spv.Version) *Module {
	return &Module{
		Version:   version,
		Generator: spv.GeneratorID,
		Bound:     1,
	}
}

// AllocID allocates a fresh result id.
func (m *Module) AllocID() uint32 {
	id := m.Bound
	m.Bound++
	return id
}

// ForEachInst visits every instruction in module order.
func (m *Module) ForEachInst(fn func(inst *Instruction)) {
	for _, section := range [][]*Instruction{
		m.Capabilities, m.Extensions, m.ExtInstImports,
	} {
		for _, inst := range section {
			fn(inst)
		}
	}
	if m.MemoryModel != nil {
		fn(m.MemoryModel)
	}
	for _, section := range [][]*Instruction{
		m.EntryPoints, m.ExecutionModes, m.Debug, m.Annotations,
		m.TypesValues, m.Functions,
	} {
		for _, inst := range section {
			fn(inst)
		}
	}
}

// AddInstruction appends an instruction to the section its opcode belongs
// to. Instructions following the first OpFunction always go to the
// function section regardless of opcode.
func (m *Module) AddInstruction(inst *Instruction) {
	if len(m.Functions) > 0 {
		m.Functions = append(m.Functions, inst)
		return
	}
	switch inst.Op {
	case spv.OpCapability:
		m.Capabilities = append(m.Capabilities, inst)
	case spv.OpExtension:
		m.Extensions = append(m.Extensions, inst)
	case spv.OpExtInstImport:
		m.ExtInstImports = append(m.ExtInstImports, inst)
	case spv.OpMemoryModel:
		m.MemoryModel = inst
	case spv.OpEntryPoint:
		m.EntryPoints = append(m.EntryPoints, inst)
	case spv.OpExecutionMode:
		m.ExecutionModes = append(m.ExecutionModes, inst)
	case spv.OpString, spv.OpSource, spv.OpSourceContinued,
		spv.OpSourceExtension, spv.OpName, spv.OpMemberName:
		m.Debug = append(m.Debug, inst)
	case spv.OpDecorate, spv.OpMemberDecorate:
		m.Annotations = append(m.Annotations, inst)
	case spv.OpFunction:
		m.Functions = append(m.Functions, inst)
	default:
		m.TypesValues = append(m.TypesValues, inst)
	}
}

// MoveTypeValueAfter relocates inst within the types-values section to the
// position immediately following after. Both instructions are referenced by
// id elsewhere, so relocation changes positions only, never identity.
// Reports whether the move happened.
func (m *Module) MoveTypeValueAfter(inst, after *Instruction) bool {
	from := -1
	for idx, tv := range m.TypesValues {
		if tv == inst {
			from = idx
			break
		}
	}
	if from < 0 || inst == after {
		return false
	}
	m.TypesValues = append(m.TypesValues[:from], m.TypesValues[from+1:]...)
	for idx, tv := range m.TypesValues {
		if tv == after {
			m.TypesValues = append(m.TypesValues, nil)
			copy(m.TypesValues[idx+2:], m.TypesValues[idx+1:])
			m.TypesValues[idx+1] = inst
			return true
		}
	}
	// Anchor not in the section; restore at the tail.
	m.TypesValues = append(m.TypesValues, inst)
	return false
}

// FindNamedID returns the id carrying the exact debug name, scanning OpName
// records in module order. The second result reports whether one was found.
func (m *Module) FindNamedID(name string) (uint32, bool) {
	for _, inst := range m.Debug {
		if inst.Op == spv.OpName && inst.InOperandString(1) == name {
			return inst.InOperand(0), true
		}
	}
	return 0, false
}
