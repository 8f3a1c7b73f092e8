// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package opt

import (
	"github.com/gogpu/spvopt/ir"
	"github.com/gogpu/spvopt/spv"
)

// ConvertUBOToPushConstantPass converts one uniform buffer variable to a
// push constant. The pass:
//  1. Finds the variable with the given block name.
//  2. Changes its storage class from Uniform to PushConstant.
//  3. Updates every pointer type derived from the variable.
//  4. Removes its Binding and DescriptorSet decorations.
//
// The block name may refer to the variable itself or to its block struct
// type; debug names in GLSL-produced modules usually sit on the struct.
type ConvertUBOToPushConstantPass struct {
	blockName string
}

// NewConvertUBOToPushConstant creates the pass for the named uniform block.
func NewConvertUBOToPushConstant(blockName string) *ConvertUBOToPushConstantPass {
	return &ConvertUBOToPushConstantPass{blockName: blockName}
}

// Name returns the pass name.
func (p *ConvertUBOToPushConstantPass) Name() string {
	return "convert-ubo-to-push-constant"
}

// PreservedAnalyses reports that nothing survives this pass: it alters
// types, decorations, and the reference graph.
func (p *ConvertUBOToPushConstantPass) PreservedAnalyses() ir.Analysis {
	return ir.AnalysisNone
}

// Run executes the conversion. A missing name, a name with no matching
// variable, or a variable outside Uniform storage are no-ops, not errors;
// only an unobtainable pointer type is a failure.
func (p *ConvertUBOToPushConstantPass) Run(ctx *ir.Context) Status {
	targetVar := p.findTargetVariable(ctx)
	if targetVar == nil {
		return StatusSuccessWithoutChange
	}
	targetVarID := targetVar.ResultID()

	ptrType := ctx.DefUse().GetDef(targetVar.TypeID())
	if ptrType == nil || ptrType.Op != spv.OpTypePointer {
		return StatusSuccessWithoutChange
	}
	if spv.StorageClass(ptrType.InOperand(0)) != spv.StorageClassUniform {
		// Not a uniform buffer, nothing to do.
		return StatusSuccessWithoutChange
	}
	pointeeTypeID := ptrType.InOperand(1)

	newPtrTypeID := ctx.Types().FindPointerToType(pointeeTypeID, spv.StorageClassPushConstant)
	if newPtrTypeID == 0 {
		return StatusFailure
	}

	// FindPointerToType may have appended the new pointer type after the
	// variable; repair the definition-before-use order by moving it to
	// just after its pointee.
	p.ensureTypePrecedes(ctx, newPtrTypeID, targetVar, pointeeTypeID)

	// Commit the root conversion: new result type and matching storage
	// class operand, then refresh the index before walking users.
	targetVar.SetTypeID(newPtrTypeID)
	targetVar.SetInOperand(0, uint32(spv.StorageClassPushConstant))
	ctx.UpdateDefUse(targetVar)

	seen := make(map[uint32]bool)
	for _, user := range ctx.DefUse().Users(targetVarID) {
		p.propagateStorageClass(ctx, user, seen)
	}

	ctx.Decorations().RemoveDecorationsFrom(targetVarID, func(inst *ir.Instruction) bool {
		if inst.Op != spv.OpDecorate {
			return false
		}
		deco := spv.Decoration(inst.InOperand(1))
		return deco == spv.DecorationBinding || deco == spv.DecorationDescriptorSet
	})

	return StatusSuccessWithChange
}

// findTargetVariable resolves the block name to a module-scope variable.
// A name on a variable wins directly; a name on a struct type selects the
// first variable, in declaration order, typed pointer-to-Uniform over that
// struct.
func (p *ConvertUBOToPushConstantPass) findTargetVariable(ctx *ir.Context) *ir.Instruction {
	namedID, ok := ctx.Module().FindNamedID(p.blockName)
	if !ok {
		return nil
	}

	namedInst := ctx.DefUse().GetDef(namedID)
	if namedInst == nil {
		return nil
	}

	switch namedInst.Op {
	case spv.OpVariable:
		return namedInst
	case spv.OpTypeStruct:
		for _, inst := range ctx.Module().TypesValues {
			if inst.Op != spv.OpVariable {
				continue
			}
			ptrType := ctx.DefUse().GetDef(inst.TypeID())
			if ptrType == nil || ptrType.Op != spv.OpTypePointer {
				continue
			}
			if spv.StorageClass(ptrType.InOperand(0)) != spv.StorageClassUniform {
				continue
			}
			if ptrType.InOperand(1) == namedID {
				return inst
			}
		}
	}
	return nil
}

// ensureTypePrecedes relocates the pointer type declaration to immediately
// follow its pointee when it currently sits after the target variable.
func (p *ConvertUBOToPushConstantPass) ensureTypePrecedes(ctx *ir.Context, ptrTypeID uint32, targetVar *ir.Instruction, pointeeTypeID uint32) {
	ptrTypeInst := ctx.DefUse().GetDef(ptrTypeID)
	if ptrTypeInst == nil {
		return
	}

	needsMove := false
	for _, inst := range ctx.Module().TypesValues {
		if inst == targetVar {
			needsMove = true
			break
		}
		if inst == ptrTypeInst {
			break
		}
	}
	if !needsMove {
		return
	}

	if pointeeInst := ctx.DefUse().GetDef(pointeeTypeID); pointeeInst != nil {
		ctx.Module().MoveTypeValueAfter(ptrTypeInst, pointeeInst)
	}
}

// propagateStorageClass rewrites the pointer result types of every
// instruction transitively derived from an already-converted pointer.
// seen holds the OpPhi ids on the active walk path; phis are the only
// merge points through which the pointer-derivation graph can cycle.
func (p *ConvertUBOToPushConstantPass) propagateStorageClass(ctx *ir.Context, inst *ir.Instruction, seen map[uint32]bool) bool {
	if !isPointerResultType(ctx, inst) {
		return false
	}

	if isPointerToStorageClass(ctx, inst, spv.StorageClassPushConstant) {
		// Already converted; keep walking so paths joining here through
		// another route are still covered.
		if inst.Op == spv.OpPhi {
			if seen[inst.ResultID()] {
				return false
			}
			seen[inst.ResultID()] = true
			defer delete(seen, inst.ResultID())
		}

		modified := false
		for _, user := range ctx.DefUse().Users(inst.ResultID()) {
			if p.propagateStorageClass(ctx, user, seen) {
				modified = true
			}
		}
		return modified
	}

	switch inst.Op {
	case spv.OpAccessChain, spv.OpInBoundsAccessChain,
		spv.OpPtrAccessChain, spv.OpInBoundsPtrAccessChain,
		spv.OpCopyObject, spv.OpPhi, spv.OpSelect:
		p.changeResultStorageClass(ctx, inst)
		for _, user := range ctx.DefUse().Users(inst.ResultID()) {
			p.propagateStorageClass(ctx, user, seen)
		}
		return true

	case spv.OpLoad, spv.OpStore, spv.OpCopyMemory, spv.OpCopyMemorySized:
		// Consume the pointer without deriving one.
		return false

	default:
		return false
	}
}

// changeResultStorageClass repoints the instruction's pointer result type
// at the PushConstant pointer over the same pointee.
func (p *ConvertUBOToPushConstantPass) changeResultStorageClass(ctx *ir.Context, inst *ir.Instruction) {
	resultType := ctx.DefUse().GetDef(inst.TypeID())
	if resultType == nil || resultType.Op != spv.OpTypePointer {
		return
	}

	pointeeTypeID := resultType.InOperand(1)
	newResultTypeID := ctx.Types().FindPointerToType(pointeeTypeID, spv.StorageClassPushConstant)
	if newResultTypeID == 0 {
		return
	}

	inst.SetTypeID(newResultTypeID)
	ctx.UpdateDefUse(inst)
}

func isPointerResultType(ctx *ir.Context, inst *ir.Instruction) bool {
	if inst.TypeID() == 0 {
		return false
	}
	typeDef := ctx.DefUse().GetDef(inst.TypeID())
	return typeDef != nil && typeDef.Op == spv.OpTypePointer
}

func isPointerToStorageClass(ctx *ir.Context, inst *ir.Instruction, sc spv.StorageClass) bool {
	if inst.TypeID() == 0 {
		return false
	}
	typeDef := ctx.DefUse().GetDef(inst.TypeID())
	if typeDef == nil || typeDef.Op != spv.OpTypePointer {
		return false
	}
	return spv.StorageClass(typeDef.InOperand(0)) == sc
}
