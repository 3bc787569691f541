// Command 6502asm assembles a 6502 source file into a raw binary image.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pedrofranceschi/6502-emulator/asm"
)

func main() {
	inputFile := flag.String("i", "", "input assembly source file")
	outputFile := flag.String("o", "a.out", "output binary file")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Error: -i <input file> is required")
		os.Exit(1)
	}

	source, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	a := asm.NewAssembler()
	if err := a.Assemble(string(source)); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputFile, a.GetOutput(), 0644); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
