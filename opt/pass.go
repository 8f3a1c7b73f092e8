// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package opt implements transformation passes over SPIR-V modules.
package opt

import (
	"github.com/gogpu/spvopt/ir"
)

// Status is the outcome of a single pass invocation.
type Status uint8

const (
	// StatusFailure means the pass could not complete; the module may be
	// partially mutated.
	StatusFailure Status = iota

	// StatusSuccessWithChange means the pass completed and mutated the
	// module.
	StatusSuccessWithChange

	// StatusSuccessWithoutChange means the pass completed and the module
	// is untouched.
	StatusSuccessWithoutChange
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusFailure:
		return "Failure"
	case StatusSuccessWithChange:
		return "SuccessWithChange"
	case StatusSuccessWithoutChange:
		return "SuccessWithoutChange"
	default:
		return "Unknown"
	}
}

// Pass is a single transformation over a module context.
type Pass interface {
	// Name returns the pass name used on the CLI.
	Name() string

	// PreservedAnalyses returns the analyses left valid after Run. The
	// manager invalidates everything else.
	PreservedAnalyses() ir.Analysis

	// Run executes the pass against the context's module.
	Run(ctx *ir.Context) Status
}
