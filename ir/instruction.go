// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"strings"

	"github.com/gogpu/spvopt/spv"
)

// Instruction represents a single SPIR-V instruction.
//
// Words holds every word after the opcode word: result type id and result
// id first when the opcode carries them, then the in-operands. Accessors
// below translate between word positions and logical operands using the
// opcode's fixed layout.
type Instruction struct {
	Op    spv.Op
	Words []uint32
}

// NewInstruction creates an instruction from its post-opcode words.
func NewInstruction(op spv.Op, words ...uint32) *Instruction {
	return &Instruction{Op: op, Words: words}
}

// HasResultType reports whether the instruction carries a result type word.
func (i *Instruction) HasResultType() bool {
	hasType, _ := i.Op.Layout()
	return hasType
}

// HasResult reports whether the instruction carries a result id word.
func (i *Instruction) HasResult() bool {
	_, hasResult := i.Op.Layout()
	return hasResult
}

// TypeID returns the result type id, or 0 if the opcode has none.
func (i *Instruction) TypeID() uint32 {
	if hasType, _ := i.Op.Layout(); hasType && len(i.Words) > 0 {
		return i.Words[0]
	}
	return 0
}

// SetTypeID overwrites the result type id. No-op if the opcode has none.
func (i *Instruction) SetTypeID(id uint32) {
	if hasType, _ := i.Op.Layout(); hasType && len(i.Words) > 0 {
		i.Words[0] = id
	}
}

// ResultID returns the result id, or 0 if the opcode has none.
func (i *Instruction) ResultID() uint32 {
	hasType, hasResult := i.Op.Layout()
	if !hasResult {
		return 0
	}
	idx := 0
	if hasType {
		idx = 1
	}
	if idx < len(i.Words) {
		return i.Words[idx]
	}
	return 0
}

// inOperandOffset returns the word index of the first in-operand.
func (i *Instruction) inOperandOffset() int {
	hasType, hasResult := i.Op.Layout()
	off := 0
	if hasType {
		off++
	}
	if hasResult {
		off++
	}
	return off
}

// NumInOperands returns the number of in-operand words.
func (i *Instruction) NumInOperands() int {
	n := len(i.Words) - i.inOperandOffset()
	if n < 0 {
		return 0
	}
	return n
}

// InOperand returns the nth in-operand word.
func (i *Instruction) InOperand(n int) uint32 {
	return i.Words[i.inOperandOffset()+n]
}

// SetInOperand overwrites the nth in-operand word.
func (i *Instruction) SetInOperand(n int, v uint32) {
	i.Words[i.inOperandOffset()+n] = v
}

// InOperandString decodes the null-terminated string starting at the nth
// in-operand word and running to its terminator.
func (i *Instruction) InOperandString(n int) string {
	var sb strings.Builder
	for _, word := range i.Words[i.inOperandOffset()+n:] {
		for shift := 0; shift < 32; shift += 8 {
			b := byte(word >> shift)
			if b == 0 {
				return sb.String()
			}
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// StringWords encodes a string as null-terminated, word-padded operand words.
func StringWords(s string) []uint32 {
	bytes := append([]byte(s), 0)
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}
	words := make([]uint32, 0, len(bytes)/4)
	for i := 0; i < len(bytes); i += 4 {
		word := uint32(bytes[i]) |
			uint32(bytes[i+1])<<8 |
			uint32(bytes[i+2])<<16 |
			uint32(bytes[i+3])<<24
		words = append(words, word)
	}
	return words
}

// stringWordCount returns how many words the null-terminated string
// starting at word index start occupies.
func stringWordCount(words []uint32, start int) int {
	for n, word := range words[start:] {
		for shift := 0; shift < 32; shift += 8 {
			if byte(word>>shift) == 0 {
				return n + 1
			}
		}
	}
	return len(words) - start
}

// Encode encodes the instruction to binary words, including the leading
// word-count/opcode word.
func (i *Instruction) Encode() []uint32 {
	wordCount := uint32(len(i.Words) + 1)
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Op))
	result = append(result, i.Words...)
	return result
}

// Clone returns a deep copy of the instruction.
func (i *Instruction) Clone() *Instruction {
	words := make([]uint32, len(i.Words))
	copy(words, i.Words)
	return &Instruction{Op: i.Op, Words: words}
}

// forEachIDOperand calls fn with the in-operand index of every word that is
// an id reference. Literal-bearing opcodes are special-cased; the default
// for value instructions is that every in-operand is an id.
func (i *Instruction) forEachIDOperand(fn func(n int)) {
	switch i.Op {
	case spv.OpName, spv.OpMemberName, spv.OpDecorate, spv.OpMemberDecorate,
		spv.OpExecutionMode:
		fn(0)
	case spv.OpEntryPoint:
		// [execution model, function id, name string, interface ids...]
		fn(1)
		off := i.inOperandOffset()
		nameEnd := 2 + stringWordCount(i.Words[off:], 2)
		for n := nameEnd; n < i.NumInOperands(); n++ {
			fn(n)
		}
	case spv.OpTypeVector, spv.OpTypeMatrix, spv.OpTypeRuntimeArray,
		spv.OpTypeSampledImage, spv.OpBranch, spv.OpReturnValue,
		spv.OpLoad, spv.OpArrayLength, spv.OpLine:
		fn(0)
	case spv.OpTypeImage:
		fn(0) // sampled type; the rest are literals
	case spv.OpTypeArray, spv.OpStore, spv.OpCopyMemory, spv.OpLoopMerge:
		fn(0)
		fn(1)
	case spv.OpCopyMemorySized, spv.OpBranchConditional:
		fn(0)
		fn(1)
		fn(2)
	case spv.OpTypePointer:
		fn(1) // in-operands: [storage class, pointee]
	case spv.OpVariable:
		if i.NumInOperands() > 1 {
			fn(1) // optional initializer; storage class is a literal
		}
	case spv.OpFunction:
		fn(1) // in-operands: [function control, function type]
	case spv.OpExtInst:
		// [set id, instruction literal, operand ids...]
		fn(0)
		for n := 2; n < i.NumInOperands(); n++ {
			fn(n)
		}
	case spv.OpSwitch:
		// [selector, default label, (literal, label)...]
		fn(0)
		fn(1)
		for n := 3; n < i.NumInOperands(); n += 2 {
			fn(n)
		}
	case spv.OpSelectionMerge:
		fn(0)
	case spv.OpConstant, spv.OpSpecConstant, spv.OpString, spv.OpSource,
		spv.OpSourceContinued, spv.OpSourceExtension, spv.OpExtension,
		spv.OpExtInstImport, spv.OpCapability, spv.OpMemoryModel,
		spv.OpTypeInt, spv.OpTypeFloat, spv.OpTypeOpaque:
		// Literals only.
	default:
		// Value instructions: every in-operand is an id. Opcodes without
		// a result (OpNop, OpReturn, ...) have no id operands by default.
		if _, hasResult := i.Op.Layout(); hasResult {
			for n := 0; n < i.NumInOperands(); n++ {
				fn(n)
			}
		}
	}
}
