// spvdis - SPIR-V disassembler
// Generates .spvasm text format
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/spvopt/ir"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: spvdis <file.spv>")
		return
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	module, err := ir.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(ir.Disassemble(module))
}
