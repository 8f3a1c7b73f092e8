// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/spvopt/ir"
	"github.com/gogpu/spvopt/spv"
)

// Well-known ids in the module built by buildUBOModule.
const (
	idFloat       = 1  // OpTypeFloat 32
	idBlockStruct = 2  // OpTypeStruct { float }
	idUniformPtr  = 3  // OpTypePointer Uniform struct
	idBlockVar    = 4  // OpVariable Uniform
	idInt         = 5  // OpTypeInt 32 0
	idZero        = 6  // OpConstant 0
	idFieldPtr    = 7  // OpTypePointer Uniform float
	idVoid        = 8  // OpTypeVoid
	idFnType      = 9  // OpTypeFunction void
	idFn          = 10 // OpFunction
	idEntry       = 11 // OpLabel
	idChain       = 12 // OpAccessChain field of the block var
	idLoadResult  = 13 // OpLoad
)

func addInst(m *ir.Module, op spv.Op, words ...uint32) *ir.Instruction {
	inst := ir.NewInstruction(op, words...)
	m.AddInstruction(inst)
	return inst
}

func addName(m *ir.Module, target uint32, name string) {
	addInst(m, spv.OpName, append([]uint32{target}, ir.StringWords(name)...)...)
}

// buildUBOModule builds a compute-less test module with one uniform block
// variable carrying binding=2, set=0, and a function that loads its first
// member through an access chain. nameTarget selects which id gets the
// debug name "Block".
func buildUBOModule(nameTarget uint32) *ir.Module {
	m := ir.NewModule(spv.Version1_3)
	addInst(m, spv.OpCapability, uint32(spv.CapabilityShader))
	addInst(m, spv.OpMemoryModel, uint32(spv.AddressingModelLogical), uint32(spv.MemoryModelGLSL450))
	addName(m, nameTarget, "Block")
	addName(m, idBlockVar, "blockVar")
	addInst(m, spv.OpDecorate, idBlockStruct, uint32(spv.DecorationBlock))
	addInst(m, spv.OpMemberDecorate, idBlockStruct, 0, uint32(spv.DecorationOffset), 0)
	addInst(m, spv.OpDecorate, idBlockVar, uint32(spv.DecorationDescriptorSet), 0)
	addInst(m, spv.OpDecorate, idBlockVar, uint32(spv.DecorationBinding), 2)
	addInst(m, spv.OpTypeFloat, idFloat, 32)
	addInst(m, spv.OpTypeStruct, idBlockStruct, idFloat)
	addInst(m, spv.OpTypePointer, idUniformPtr, uint32(spv.StorageClassUniform), idBlockStruct)
	addInst(m, spv.OpVariable, idUniformPtr, idBlockVar, uint32(spv.StorageClassUniform))
	addInst(m, spv.OpTypeInt, idInt, 32, 0)
	addInst(m, spv.OpConstant, idInt, idZero, 0)
	addInst(m, spv.OpTypePointer, idFieldPtr, uint32(spv.StorageClassUniform), idFloat)
	addInst(m, spv.OpTypeVoid, idVoid)
	addInst(m, spv.OpTypeFunction, idFnType, idVoid)
	addInst(m, spv.OpFunction, idVoid, idFn, 0, idFnType)
	addInst(m, spv.OpLabel, idEntry)
	addInst(m, spv.OpAccessChain, idFieldPtr, idChain, idBlockVar, idZero)
	addInst(m, spv.OpLoad, idFloat, idLoadResult, idChain)
	addInst(m, spv.OpReturn)
	addInst(m, spv.OpFunctionEnd)
	m.Bound = 14
	return m
}

// pointerTo returns the id of the pointer type declaration over pointee in
// the given storage class, or 0 if the module declares none.
func pointerTo(m *ir.Module, sc spv.StorageClass, pointee uint32) uint32 {
	for _, inst := range m.TypesValues {
		if inst.Op == spv.OpTypePointer &&
			spv.StorageClass(inst.InOperand(0)) == sc &&
			inst.InOperand(1) == pointee {
			return inst.ResultID()
		}
	}
	return 0
}

func findInst(m *ir.Module, resultID uint32) *ir.Instruction {
	var found *ir.Instruction
	m.ForEachInst(func(inst *ir.Instruction) {
		if inst.ResultID() == resultID {
			found = inst
		}
	})
	return found
}

func typesValuesIndex(m *ir.Module, inst *ir.Instruction) int {
	for idx, tv := range m.TypesValues {
		if tv == inst {
			return idx
		}
	}
	return -1
}

func TestConvertUBO_NamedVariable(t *testing.T) {
	m := buildUBOModule(idBlockVar)
	ctx := ir.NewContext(m)

	status := NewConvertUBOToPushConstant("Block").Run(ctx)
	require.Equal(t, StatusSuccessWithChange, status)

	// The variable now has a PushConstant pointer type and a matching
	// storage class operand.
	newPtr := pointerTo(m, spv.StorageClassPushConstant, idBlockStruct)
	require.NotZero(t, newPtr)
	blockVar := findInst(m, idBlockVar)
	assert.Equal(t, newPtr, blockVar.TypeID())
	assert.Equal(t, uint32(spv.StorageClassPushConstant), blockVar.InOperand(0))

	// The access chain's field pointer followed.
	fieldPtr := pointerTo(m, spv.StorageClassPushConstant, idFloat)
	require.NotZero(t, fieldPtr)
	chain := findInst(m, idChain)
	assert.Equal(t, fieldPtr, chain.TypeID())

	// The load result type is untouched.
	assert.Equal(t, uint32(idFloat), findInst(m, idLoadResult).TypeID())
}

func TestConvertUBO_NamedStructType(t *testing.T) {
	m := buildUBOModule(idBlockStruct)
	ctx := ir.NewContext(m)

	status := NewConvertUBOToPushConstant("Block").Run(ctx)
	require.Equal(t, StatusSuccessWithChange, status)

	blockVar := findInst(m, idBlockVar)
	assert.Equal(t, pointerTo(m, spv.StorageClassPushConstant, idBlockStruct), blockVar.TypeID())
	assert.Equal(t, uint32(spv.StorageClassPushConstant), blockVar.InOperand(0))
}

func TestConvertUBO_DecorationsStripped(t *testing.T) {
	m := buildUBOModule(idBlockVar)
	ctx := ir.NewContext(m)

	status := NewConvertUBOToPushConstant("Block").Run(ctx)
	require.Equal(t, StatusSuccessWithChange, status)

	decos := ctx.Decorations()
	assert.False(t, decos.HasDecoration(idBlockVar, spv.DecorationBinding))
	assert.False(t, decos.HasDecoration(idBlockVar, spv.DecorationDescriptorSet))

	// Decorations on other ids survive, including the member offsets.
	assert.True(t, decos.HasDecoration(idBlockStruct, spv.DecorationBlock))
	memberOffsets := 0
	for _, inst := range m.Annotations {
		if inst.Op == spv.OpMemberDecorate {
			memberOffsets++
		}
	}
	assert.Equal(t, 1, memberOffsets)
}

func TestConvertUBO_NewPointerTypeOrdering(t *testing.T) {
	m := buildUBOModule(idBlockVar)
	ctx := ir.NewContext(m)

	status := NewConvertUBOToPushConstant("Block").Run(ctx)
	require.Equal(t, StatusSuccessWithChange, status)

	// The freshly created pointer type would have landed after the
	// variable; it must have been moved to just after its pointee so the
	// variable's reference still points backwards.
	newPtrInst := findInst(m, pointerTo(m, spv.StorageClassPushConstant, idBlockStruct))
	structInst := findInst(m, idBlockStruct)
	require.NotNil(t, newPtrInst)
	assert.Equal(t, typesValuesIndex(m, structInst)+1, typesValuesIndex(m, newPtrInst))

	varIdx := typesValuesIndex(m, findInst(m, idBlockVar))
	assert.Less(t, typesValuesIndex(m, newPtrInst), varIdx)
}

func TestConvertUBO_ExistingPointerTypeReused(t *testing.T) {
	m := buildUBOModule(idBlockVar)
	// Declare the PushConstant pointer up front, before the variable.
	preID := m.AllocID()
	pre := ir.NewInstruction(spv.OpTypePointer, preID, uint32(spv.StorageClassPushConstant), idBlockStruct)
	for idx, inst := range m.TypesValues {
		if inst.ResultID() == idBlockVar {
			m.TypesValues = append(m.TypesValues[:idx], append([]*ir.Instruction{pre}, m.TypesValues[idx:]...)...)
			break
		}
	}
	ctx := ir.NewContext(m)

	status := NewConvertUBOToPushConstant("Block").Run(ctx)
	require.Equal(t, StatusSuccessWithChange, status)

	// Reused, not duplicated, and not relocated.
	assert.Equal(t, preID, findInst(m, idBlockVar).TypeID())
	count := 0
	for _, inst := range m.TypesValues {
		if inst.Op == spv.OpTypePointer &&
			spv.StorageClass(inst.InOperand(0)) == spv.StorageClassPushConstant &&
			inst.InOperand(1) == idBlockStruct {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestConvertUBO_NameNotFound(t *testing.T) {
	m := buildUBOModule(idBlockVar)
	before := ir.Encode(m)
	ctx := ir.NewContext(m)

	status := NewConvertUBOToPushConstant("Missing").Run(ctx)
	assert.Equal(t, StatusSuccessWithoutChange, status)
	assert.Equal(t, before, ir.Encode(m))
}

func TestConvertUBO_StructWithoutUniformVariable(t *testing.T) {
	m := buildUBOModule(idBlockStruct)
	// Retype the variable into Workgroup storage; the named struct then
	// has no Uniform-space variable at all.
	workgroupPtr := m.AllocID()
	addInstBefore := ir.NewInstruction(spv.OpTypePointer, workgroupPtr, uint32(spv.StorageClassWorkgroup), idBlockStruct)
	for idx, inst := range m.TypesValues {
		if inst.ResultID() == idBlockVar {
			m.TypesValues = append(m.TypesValues[:idx], append([]*ir.Instruction{addInstBefore}, m.TypesValues[idx:]...)...)
			break
		}
	}
	blockVar := findInst(m, idBlockVar)
	blockVar.SetTypeID(workgroupPtr)
	blockVar.SetInOperand(0, uint32(spv.StorageClassWorkgroup))

	before := ir.Encode(m)
	ctx := ir.NewContext(m)

	status := NewConvertUBOToPushConstant("Block").Run(ctx)
	assert.Equal(t, StatusSuccessWithoutChange, status)
	assert.Equal(t, before, ir.Encode(m))
}

func TestConvertUBO_NonUniformVariableNamed(t *testing.T) {
	m := buildUBOModule(idBlockVar)
	// Point the named variable at Private storage; the pass must treat it
	// as nothing-to-convert even though the name matched.
	privatePtr := m.AllocID()
	privatePtrInst := ir.NewInstruction(spv.OpTypePointer, privatePtr, uint32(spv.StorageClassPrivate), idBlockStruct)
	for idx, inst := range m.TypesValues {
		if inst.ResultID() == idBlockVar {
			m.TypesValues = append(m.TypesValues[:idx], append([]*ir.Instruction{privatePtrInst}, m.TypesValues[idx:]...)...)
			break
		}
	}
	blockVar := findInst(m, idBlockVar)
	blockVar.SetTypeID(privatePtr)
	blockVar.SetInOperand(0, uint32(spv.StorageClassPrivate))

	ctx := ir.NewContext(m)
	status := NewConvertUBOToPushConstant("Block").Run(ctx)
	assert.Equal(t, StatusSuccessWithoutChange, status)
}

func TestConvertUBO_Idempotent(t *testing.T) {
	m := buildUBOModule(idBlockVar)

	status := NewConvertUBOToPushConstant("Block").Run(ir.NewContext(m))
	require.Equal(t, StatusSuccessWithChange, status)
	after := ir.Encode(m)

	status = NewConvertUBOToPushConstant("Block").Run(ir.NewContext(m))
	assert.Equal(t, StatusSuccessWithoutChange, status)
	assert.Equal(t, after, ir.Encode(m))
}

func TestConvertUBO_UnrelatedUniformUntouched(t *testing.T) {
	m := buildUBOModule(idBlockVar)

	// Second uniform block with its own variable and access chain.
	otherStruct := m.AllocID()
	otherPtr := m.AllocID()
	otherVar := m.AllocID()
	m.TypesValues = append(m.TypesValues,
		ir.NewInstruction(spv.OpTypeStruct, otherStruct, idFloat),
		ir.NewInstruction(spv.OpTypePointer, otherPtr, uint32(spv.StorageClassUniform), otherStruct),
		ir.NewInstruction(spv.OpVariable, otherPtr, otherVar, uint32(spv.StorageClassUniform)))

	otherChain := m.AllocID()
	chainInst := ir.NewInstruction(spv.OpAccessChain, idFieldPtr, otherChain, otherVar, idZero)
	// Splice before OpReturn.
	fns := m.Functions
	m.Functions = append(fns[:len(fns)-2], append([]*ir.Instruction{chainInst}, fns[len(fns)-2:]...)...)

	ctx := ir.NewContext(m)
	status := NewConvertUBOToPushConstant("Block").Run(ctx)
	require.Equal(t, StatusSuccessWithChange, status)

	// The unrelated variable keeps its Uniform pointer.
	assert.Equal(t, otherPtr, findInst(m, otherVar).TypeID())
	assert.Equal(t, uint32(spv.StorageClassUniform), findInst(m, otherVar).InOperand(0))
	// Its chain was reached only through the shared field pointer type,
	// never through the converted variable, so it keeps the old type.
	assert.Equal(t, uint32(idFieldPtr), findInst(m, otherChain).TypeID())
}

func TestConvertUBO_PhiCycleTerminates(t *testing.T) {
	m := buildUBOModule(idBlockVar)

	// Loop-carried field pointer: a phi whose inputs are the access chain
	// and the phi itself.
	labelLoop := m.AllocID()
	phi := m.AllocID()
	loadID := m.AllocID()

	phiInst := ir.NewInstruction(spv.OpPhi, idFieldPtr, phi, idChain, idEntry, phi, labelLoop)
	loopInsts := []*ir.Instruction{
		ir.NewInstruction(spv.OpBranch, labelLoop),
		ir.NewInstruction(spv.OpLabel, labelLoop),
		phiInst,
		ir.NewInstruction(spv.OpLoad, idFloat, loadID, phi),
	}
	fns := m.Functions
	m.Functions = append(fns[:len(fns)-2], append(loopInsts, fns[len(fns)-2:]...)...)

	ctx := ir.NewContext(m)
	status := NewConvertUBOToPushConstant("Block").Run(ctx)
	require.Equal(t, StatusSuccessWithChange, status)

	fieldPtr := pointerTo(m, spv.StorageClassPushConstant, idFloat)
	require.NotZero(t, fieldPtr)
	assert.Equal(t, fieldPtr, phiInst.TypeID())
	assert.Equal(t, fieldPtr, findInst(m, idChain).TypeID())
}

func TestConvertUBO_TypeCreationFailure(t *testing.T) {
	m := ir.NewModule(spv.Version1_3)
	// Pointer to an undeclared pointee: the type manager cannot build the
	// PushConstant twin and the pass must fail.
	addName(m, 3, "Block")
	addInst(m, spv.OpTypePointer, 2, uint32(spv.StorageClassUniform), 99)
	addInst(m, spv.OpVariable, 2, 3, uint32(spv.StorageClassUniform))
	m.Bound = 4

	status := NewConvertUBOToPushConstant("Block").Run(ir.NewContext(m))
	assert.Equal(t, StatusFailure, status)
}
