// Command spvopt applies transformation passes to SPIR-V binaries.
//
// Usage:
//
//	spvopt [flags] <input.spv>
//
// Examples:
//
//	spvopt --convert-ubo-to-push-constant=Camera -o out.spv in.spv
//	spvopt --strip-debug in.spv -o out.spv
//	spvopt --dis in.spv                  # disassemble, no transformation
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/spvopt"
	"github.com/gogpu/spvopt/ir"
	"github.com/gogpu/spvopt/opt"
)

const version = "0.1.0-dev"

var (
	output       string
	convertBlock string
	stripDebug   bool
	disassemble  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "spvopt [flags] <input.spv>",
		Short:   "SPIR-V module optimizer",
		Args:    cobra.ExactArgs(1),
		Version:      version,
		RunE:         run,
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	flags.StringVar(&convertBlock, "convert-ubo-to-push-constant", "",
		"convert the named uniform block to a push constant")
	flags.BoolVar(&stripDebug, "strip-debug", false, "remove debug instructions")
	flags.BoolVarP(&disassemble, "dis", "d", false, "print disassembly instead of binary")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	binary, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var passes []opt.Pass
	if convertBlock != "" {
		passes = append(passes, opt.NewConvertUBOToPushConstant(convertBlock))
	}
	if stripDebug {
		passes = append(passes, opt.NewStripDebugInfo())
	}

	result, err := spvopt.Run(binary, passes...)
	if err != nil {
		return err
	}

	if disassemble {
		module, err := ir.Decode(result)
		if err != nil {
			return err
		}
		if output == "" {
			fmt.Print(ir.Disassemble(module))
			return nil
		}
		return os.WriteFile(output, []byte(ir.Disassemble(module)), 0644)
	}

	if output == "" {
		_, err = os.Stdout.Write(result)
		return err
	}
	return os.WriteFile(output, result, 0644)
}
