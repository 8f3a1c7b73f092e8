// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spv

import "strconv"

var opNames = map[Op]string{
	0: "OpNop", 1: "OpUndef", 2: "OpSourceContinued", 3: "OpSource",
	4: "OpSourceExtension", 5: "OpName", 6: "OpMemberName", 7: "OpString",
	8: "OpLine", 10: "OpExtension", 11: "OpExtInstImport", 12: "OpExtInst",
	14: "OpMemoryModel", 15: "OpEntryPoint", 16: "OpExecutionMode",
	17: "OpCapability", 19: "OpTypeVoid", 20: "OpTypeBool",
	21: "OpTypeInt", 22: "OpTypeFloat", 23: "OpTypeVector",
	24: "OpTypeMatrix", 25: "OpTypeImage", 26: "OpTypeSampler",
	27: "OpTypeSampledImage", 28: "OpTypeArray", 29: "OpTypeRuntimeArray",
	30: "OpTypeStruct", 31: "OpTypeOpaque", 32: "OpTypePointer",
	33: "OpTypeFunction", 41: "OpConstantTrue", 42: "OpConstantFalse",
	43: "OpConstant", 44: "OpConstantComposite", 46: "OpConstantNull",
	48: "OpSpecConstantTrue", 49: "OpSpecConstantFalse",
	50: "OpSpecConstant", 51: "OpSpecConstantComposite",
	54: "OpFunction", 55: "OpFunctionParameter", 56: "OpFunctionEnd",
	57: "OpFunctionCall", 59: "OpVariable", 61: "OpLoad", 62: "OpStore",
	63: "OpCopyMemory", 64: "OpCopyMemorySized", 65: "OpAccessChain",
	66: "OpInBoundsAccessChain", 67: "OpPtrAccessChain", 68: "OpArrayLength",
	70: "OpInBoundsPtrAccessChain", 71: "OpDecorate", 72: "OpMemberDecorate",
	83: "OpCopyObject", 124: "OpBitcast",
	128: "OpIAdd", 129: "OpFAdd", 130: "OpISub", 131: "OpFSub",
	132: "OpIMul", 133: "OpFMul", 179: "OpSelect",
	180: "OpIEqual", 181: "OpINotEqual", 186: "OpULessThan", 187: "OpSLessThan",
	245: "OpPhi", 246: "OpLoopMerge", 247: "OpSelectionMerge",
	248: "OpLabel", 249: "OpBranch", 250: "OpBranchConditional",
	251: "OpSwitch", 252: "OpKill", 253: "OpReturn", 254: "OpReturnValue",
	255: "OpUnreachable",
}

// String returns the standard SPIR-V assembly name for the opcode,
// or "Op<n>" for opcodes outside the known vocabulary.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "Op" + strconv.FormatUint(uint64(op), 10)
}

var storageClassNames = map[StorageClass]string{
	0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output",
	4: "Workgroup", 5: "CrossWorkgroup", 6: "Private", 7: "Function",
	8: "Generic", 9: "PushConstant", 10: "AtomicCounter", 11: "Image",
	12: "StorageBuffer",
}

func (sc StorageClass) String() string {
	if name, ok := storageClassNames[sc]; ok {
		return name
	}
	return strconv.FormatUint(uint64(sc), 10)
}

var decorationNames = map[Decoration]string{
	0: "RelaxedPrecision", 1: "SpecId", 2: "Block", 3: "BufferBlock",
	4: "RowMajor", 5: "ColMajor", 6: "ArrayStride", 7: "MatrixStride",
	11: "BuiltIn", 13: "NoPerspective", 14: "Flat", 18: "Invariant",
	30: "Location", 31: "Component", 32: "Index",
	33: "Binding", 34: "DescriptorSet", 35: "Offset",
	43: "InputAttachmentIndex", 44: "Alignment",
}

func (d Decoration) String() string {
	if name, ok := decorationNames[d]; ok {
		return name
	}
	return strconv.FormatUint(uint64(d), 10)
}

var executionModelNames = map[ExecutionModel]string{
	0: "Vertex", 1: "TessellationControl", 2: "TessellationEvaluation",
	3: "Geometry", 4: "Fragment", 5: "GLCompute", 6: "Kernel",
}

func (em ExecutionModel) String() string {
	if name, ok := executionModelNames[em]; ok {
		return name
	}
	return strconv.FormatUint(uint64(em), 10)
}
