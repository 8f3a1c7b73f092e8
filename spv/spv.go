// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package spv defines the SPIR-V binary vocabulary: opcodes, storage
// classes, decorations, and the fixed word layout of each instruction.
//
// The vocabulary is closed; passes switch exhaustively over these tags
// rather than subclassing instruction kinds.
package spv

// MagicNumber identifies a little-endian SPIR-V binary.
const MagicNumber = 0x07230203

// GeneratorID is the generator word written into produced binaries.
const GeneratorID = 0x00000000 // Unregistered generator

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// Word converts the version to its header word encoding.
func (v Version) Word() uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}

// VersionFromWord decodes a header version word.
func VersionFromWord(w uint32) Version {
	return Version{Major: uint8(w >> 16), Minor: uint8(w >> 8)}
}

// Op represents a SPIR-V opcode.
type Op uint16

// Opcodes used by the optimizer. The disassembler additionally knows the
// names of opcodes outside this set (see names.go).
const (
	OpNop                    Op = 0
	OpUndef                  Op = 1
	OpSourceContinued        Op = 2
	OpSource                 Op = 3
	OpSourceExtension        Op = 4
	OpName                   Op = 5
	OpMemberName             Op = 6
	OpString                 Op = 7
	OpLine                   Op = 8
	OpExtension              Op = 10
	OpExtInstImport          Op = 11
	OpExtInst                Op = 12
	OpMemoryModel            Op = 14
	OpEntryPoint             Op = 15
	OpExecutionMode          Op = 16
	OpCapability             Op = 17
	OpTypeVoid               Op = 19
	OpTypeBool               Op = 20
	OpTypeInt                Op = 21
	OpTypeFloat              Op = 22
	OpTypeVector             Op = 23
	OpTypeMatrix             Op = 24
	OpTypeImage              Op = 25
	OpTypeSampler            Op = 26
	OpTypeSampledImage       Op = 27
	OpTypeArray              Op = 28
	OpTypeRuntimeArray       Op = 29
	OpTypeStruct             Op = 30
	OpTypeOpaque             Op = 31
	OpTypePointer            Op = 32
	OpTypeFunction           Op = 33
	OpConstantTrue           Op = 41
	OpConstantFalse          Op = 42
	OpConstant               Op = 43
	OpConstantComposite      Op = 44
	OpConstantNull           Op = 46
	OpSpecConstantTrue       Op = 48
	OpSpecConstantFalse      Op = 49
	OpSpecConstant           Op = 50
	OpSpecConstantComposite  Op = 51
	OpFunction               Op = 54
	OpFunctionParameter      Op = 55
	OpFunctionEnd            Op = 56
	OpFunctionCall           Op = 57
	OpVariable               Op = 59
	OpLoad                   Op = 61
	OpStore                  Op = 62
	OpCopyMemory             Op = 63
	OpCopyMemorySized        Op = 64
	OpAccessChain            Op = 65
	OpInBoundsAccessChain    Op = 66
	OpPtrAccessChain         Op = 67
	OpArrayLength            Op = 68
	OpInBoundsPtrAccessChain Op = 70
	OpDecorate               Op = 71
	OpMemberDecorate         Op = 72
	OpCopyObject             Op = 83
	OpBitcast                Op = 124
	OpIAdd                   Op = 128
	OpFAdd                   Op = 129
	OpISub                   Op = 130
	OpFSub                   Op = 131
	OpIMul                   Op = 132
	OpFMul                   Op = 133
	OpSelect                 Op = 179
	OpIEqual                 Op = 180
	OpINotEqual              Op = 181
	OpULessThan              Op = 186
	OpSLessThan              Op = 187
	OpPhi                    Op = 245
	OpLoopMerge              Op = 246
	OpSelectionMerge         Op = 247
	OpLabel                  Op = 248
	OpBranch                 Op = 249
	OpBranchConditional      Op = 250
	OpSwitch                 Op = 251
	OpKill                   Op = 252
	OpReturn                 Op = 253
	OpReturnValue            Op = 254
	OpUnreachable            Op = 255
)

// Layout reports whether instructions with this opcode carry a result-type
// word and a result-id word. Both, when present, come first in that order.
func (op Op) Layout() (hasResultType, hasResult bool) {
	switch op {
	case OpString, OpExtInstImport, OpLabel,
		OpTypeVoid, OpTypeBool, OpTypeInt, OpTypeFloat, OpTypeVector,
		OpTypeMatrix, OpTypeImage, OpTypeSampler, OpTypeSampledImage,
		OpTypeArray, OpTypeRuntimeArray, OpTypeStruct, OpTypeOpaque,
		OpTypePointer, OpTypeFunction:
		return false, true
	case OpUndef, OpExtInst,
		OpConstantTrue, OpConstantFalse, OpConstant, OpConstantComposite,
		OpConstantNull, OpSpecConstantTrue, OpSpecConstantFalse,
		OpSpecConstant, OpSpecConstantComposite,
		OpFunction, OpFunctionParameter, OpFunctionCall, OpVariable,
		OpLoad, OpAccessChain, OpInBoundsAccessChain, OpPtrAccessChain,
		OpArrayLength, OpInBoundsPtrAccessChain, OpCopyObject, OpBitcast,
		OpIAdd, OpFAdd, OpISub, OpFSub, OpIMul, OpFMul,
		OpSelect, OpIEqual, OpINotEqual, OpULessThan, OpSLessThan, OpPhi:
		return true, true
	default:
		// OpNop, debug, mode-setting, decorations, stores, branches.
		return false, false
	}
}

// StorageClass represents a SPIR-V storage class (memory space).
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration represents a SPIR-V decoration.
type Decoration uint32

const (
	DecorationRelaxedPrecision Decoration = 0
	DecorationSpecID           Decoration = 1
	DecorationBlock            Decoration = 2
	DecorationBufferBlock      Decoration = 3
	DecorationRowMajor         Decoration = 4
	DecorationColMajor         Decoration = 5
	DecorationArrayStride      Decoration = 6
	DecorationMatrixStride     Decoration = 7
	DecorationBuiltIn          Decoration = 11
	DecorationNoPerspective    Decoration = 13
	DecorationFlat             Decoration = 14
	DecorationLocation         Decoration = 30
	DecorationComponent        Decoration = 31
	DecorationBinding          Decoration = 33
	DecorationDescriptorSet    Decoration = 34
	DecorationOffset           Decoration = 35
)

// ExecutionModel represents a SPIR-V execution model.
type ExecutionModel uint32

const (
	ExecutionModelVertex    ExecutionModel = 0
	ExecutionModelFragment  ExecutionModel = 4
	ExecutionModelGLCompute ExecutionModel = 5
)

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

const (
	AddressingModelLogical AddressingModel = 0
)

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

const (
	MemoryModelGLSL450 MemoryModel = 1
)

// Capability represents a SPIR-V capability.
type Capability uint32

const (
	CapabilityMatrix Capability = 0
	CapabilityShader Capability = 1
)
