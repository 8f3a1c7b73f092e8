// Package spvopt provides a Pure Go SPIR-V module optimizer.
//
// spvopt decodes a SPIR-V binary into an in-memory module, runs a pipeline
// of transformation passes over it, and re-encodes the result.
//
// Example usage:
//
//	out, err := spvopt.Run(binary,
//	    opt.NewConvertUBOToPushConstant("Block"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For lower-level access, decode with the ir package and drive the pass
// manager in the opt package directly.
package spvopt

import (
	"errors"
	"fmt"

	"github.com/gogpu/spvopt/ir"
	"github.com/gogpu/spvopt/opt"
)

// ErrPassFailed reports that a pass in the pipeline could not complete.
var ErrPassFailed = errors.New("optimization pass failed")

// Run decodes a SPIR-V binary, executes the passes in order, and returns
// the re-encoded binary. The input slice is never modified.
//
// With no passes, Run round-trips the binary through the codec, which
// validates its structure.
func Run(binary []byte, passes ...opt.Pass) ([]byte, error) {
	module, err := ir.Decode(binary)
	if err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}

	ctx := ir.NewContext(module)
	pm := opt.NewPassManager()
	for _, p := range passes {
		pm.AddPass(p)
	}

	if status := pm.Run(ctx); status == opt.StatusFailure {
		return nil, ErrPassFailed
	}

	return ir.Encode(module), nil
}

// ConvertUBOToPushConstant converts the uniform buffer with the given block
// name to a push constant and returns the rewritten binary.
//
// This is the simplest entry point for the common single-pass case; Run
// gives full control over the pipeline.
func ConvertUBOToPushConstant(binary []byte, blockName string) ([]byte, error) {
	return Run(binary, opt.NewConvertUBOToPushConstant(blockName))
}
