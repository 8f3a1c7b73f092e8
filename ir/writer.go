// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"encoding/binary"

	"github.com/gogpu/spvopt/spv"
)

// Encode serializes the module to a little-endian SPIR-V binary.
func Encode(m *Module) []byte {
	// Refresh the bound from the instructions actually present.
	bound := m.Bound
	m.ForEachInst(func(inst *Instruction) {
		if id := inst.ResultID(); id >= bound {
			bound = id + 1
		}
	})
	m.Bound = bound

	totalWords := headerWords
	m.ForEachInst(func(inst *Instruction) {
		totalWords += len(inst.Words) + 1
	})

	buffer := make([]byte, totalWords*4)
	binary.LittleEndian.PutUint32(buffer[0:], spv.MagicNumber)
	binary.LittleEndian.PutUint32(buffer[4:], m.Version.Word())
	binary.LittleEndian.PutUint32(buffer[8:], m.Generator)
	binary.LittleEndian.PutUint32(buffer[12:], m.Bound)
	binary.LittleEndian.PutUint32(buffer[16:], m.Schema)

	offset := headerWords * 4
	m.ForEachInst(func(inst *Instruction) {
		for _, word := range inst.Encode() {
			binary.LittleEndian.PutUint32(buffer[offset:], word)
			offset += 4
		}
	})

	return buffer
}
