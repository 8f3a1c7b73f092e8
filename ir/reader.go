// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/spvopt/spv"
)

// Errors returned by Decode.
var (
	ErrInvalidBinary = errors.New("invalid SPIR-V binary")
	ErrInvalidMagic  = errors.New("invalid SPIR-V magic number")
)

const headerWords = 5

// Decode parses a little-endian SPIR-V binary into a Module.
func Decode(data []byte) (*Module, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: size %d is not word-aligned", ErrInvalidBinary, len(data))
	}
	if len(data) < headerWords*4 {
		return nil, fmt.Errorf("%w: size %d below header size", ErrInvalidBinary, len(data))
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != spv.MagicNumber {
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidMagic, magic)
	}

	m := &Module{
		Version:   spv.VersionFromWord(binary.LittleEndian.Uint32(data[4:8])),
		Generator: binary.LittleEndian.Uint32(data[8:12]),
		Bound:     binary.LittleEndian.Uint32(data[12:16]),
		Schema:    binary.LittleEndian.Uint32(data[16:20]),
	}

	offset := headerWords * 4
	for offset < len(data) {
		word := binary.LittleEndian.Uint32(data[offset:])
		op := spv.Op(word & 0xFFFF)
		wordCount := int(word >> 16)

		if wordCount == 0 || offset+wordCount*4 > len(data) {
			return nil, fmt.Errorf("%w: word count %d at offset 0x%X", ErrInvalidBinary, wordCount, offset)
		}

		words := make([]uint32, wordCount-1)
		for i := range words {
			words[i] = binary.LittleEndian.Uint32(data[offset+4+i*4:])
		}
		m.AddInstruction(NewInstruction(op, words...))
		offset += wordCount * 4
	}

	return m, nil
}
