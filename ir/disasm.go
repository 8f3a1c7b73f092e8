// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

import (
	"fmt"
	"strings"

	"github.com/gogpu/spvopt/spv"
)

// Disassemble renders the module as .spvasm-style text.
func Disassemble(m *Module) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; SPIR-V\n")
	fmt.Fprintf(&sb, "; Version: %d.%d\n", m.Version.Major, m.Version.Minor)
	fmt.Fprintf(&sb, "; Generator: 0x%08X\n", m.Generator)
	fmt.Fprintf(&sb, "; Bound: %d\n", m.Bound)
	fmt.Fprintf(&sb, "; Schema: %d\n\n", m.Schema)

	m.ForEachInst(func(inst *Instruction) {
		sb.WriteString(disasmInst(inst))
		sb.WriteByte('\n')
	})
	return sb.String()
}

func idRef(n uint32) string {
	return fmt.Sprintf("%%_%d", n)
}

func disasmInst(inst *Instruction) string {
	var sb strings.Builder
	if inst.HasResult() {
		fmt.Fprintf(&sb, "%9s = ", idRef(inst.ResultID()))
	} else {
		sb.WriteString(strings.Repeat(" ", 12))
	}
	sb.WriteString(inst.Op.String())
	if inst.HasResultType() {
		sb.WriteByte(' ')
		sb.WriteString(idRef(inst.TypeID()))
	}

	// Operands with enum or string payloads get dedicated rendering; the
	// rest fall back to id/literal classification via the layout tables.
	switch inst.Op {
	case spv.OpName:
		fmt.Fprintf(&sb, " %s %q", idRef(inst.InOperand(0)), inst.InOperandString(1))
	case spv.OpMemberName:
		fmt.Fprintf(&sb, " %s %d %q", idRef(inst.InOperand(0)), inst.InOperand(1), inst.InOperandString(2))
	case spv.OpString, spv.OpExtInstImport:
		fmt.Fprintf(&sb, " %q", inst.InOperandString(0))
	case spv.OpEntryPoint:
		fmt.Fprintf(&sb, " %s %s %q",
			spv.ExecutionModel(inst.InOperand(0)), idRef(inst.InOperand(1)), inst.InOperandString(2))
		nameEnd := 2 + stringWordCount(inst.Words[inst.inOperandOffset():], 2)
		for n := nameEnd; n < inst.NumInOperands(); n++ {
			fmt.Fprintf(&sb, " %s", idRef(inst.InOperand(n)))
		}
	case spv.OpTypePointer:
		fmt.Fprintf(&sb, " %s %s", spv.StorageClass(inst.InOperand(0)), idRef(inst.InOperand(1)))
	case spv.OpVariable:
		fmt.Fprintf(&sb, " %s", spv.StorageClass(inst.InOperand(0)))
		if inst.NumInOperands() > 1 {
			fmt.Fprintf(&sb, " %s", idRef(inst.InOperand(1)))
		}
	case spv.OpDecorate:
		fmt.Fprintf(&sb, " %s %s", idRef(inst.InOperand(0)), spv.Decoration(inst.InOperand(1)))
		for n := 2; n < inst.NumInOperands(); n++ {
			fmt.Fprintf(&sb, " %d", inst.InOperand(n))
		}
	case spv.OpMemberDecorate:
		fmt.Fprintf(&sb, " %s %d %s", idRef(inst.InOperand(0)), inst.InOperand(1), spv.Decoration(inst.InOperand(2)))
		for n := 3; n < inst.NumInOperands(); n++ {
			fmt.Fprintf(&sb, " %d", inst.InOperand(n))
		}
	default:
		ids := make(map[int]bool, inst.NumInOperands())
		inst.forEachIDOperand(func(n int) { ids[n] = true })
		for n := 0; n < inst.NumInOperands(); n++ {
			if ids[n] {
				fmt.Fprintf(&sb, " %s", idRef(inst.InOperand(n)))
			} else {
				fmt.Fprintf(&sb, " %d", inst.InOperand(n))
			}
		}
	}
	return sb.String()
}
