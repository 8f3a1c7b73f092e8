// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package opt

import (
	"github.com/gogpu/spvopt/ir"
)

// PassManager runs passes in registration order against one module
// context. After each pass it invalidates the analyses the pass did not
// preserve, and it stops at the first failure.
type PassManager struct {
	passes []Pass
}

// NewPassManager creates an empty pass manager.
func NewPassManager() *PassManager {
	return &PassManager{}
}

// AddPass appends a pass to the pipeline.
func (pm *PassManager) AddPass(p Pass) {
	pm.passes = append(pm.passes, p)
}

// NumPasses returns the number of registered passes.
func (pm *PassManager) NumPasses() int {
	return len(pm.passes)
}

// Run executes the pipeline. The result is StatusFailure if any pass
// failed, StatusSuccessWithChange if at least one pass changed the module,
// and StatusSuccessWithoutChange otherwise.
func (pm *PassManager) Run(ctx *ir.Context) Status {
	modified := false
	for _, p := range pm.passes {
		status := p.Run(ctx)
		if status == StatusFailure {
			return StatusFailure
		}
		if status == StatusSuccessWithChange {
			modified = true
			ctx.InvalidateAnalysesExceptFor(p.PreservedAnalyses())
		}
	}
	if modified {
		return StatusSuccessWithChange
	}
	return StatusSuccessWithoutChange
}
