// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package opt

import (
	"github.com/gogpu/spvopt/ir"
)

// StripDebugInfoPass removes all debug instructions (OpName, OpMemberName,
// OpString, OpSource and friends) from the module.
type StripDebugInfoPass struct{}

// NewStripDebugInfo creates the pass.
func NewStripDebugInfo() *StripDebugInfoPass {
	return &StripDebugInfoPass{}
}

// Name returns the pass name.
func (p *StripDebugInfoPass) Name() string {
	return "strip-debug-info"
}

// PreservedAnalyses reports that debug instructions participate in the
// definition/use index, so nothing is preserved.
func (p *StripDebugInfoPass) PreservedAnalyses() ir.Analysis {
	return ir.AnalysisNone
}

// Run drops the debug section.
func (p *StripDebugInfoPass) Run(ctx *ir.Context) Status {
	if len(ctx.Module().Debug) == 0 {
		return StatusSuccessWithoutChange
	}
	ctx.Module().Debug = nil
	return StatusSuccessWithChange
}
