// Command 6502dis disassembles a raw 6502 binary image.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pedrofranceschi/6502-emulator/cpu"
	"github.com/pedrofranceschi/6502-emulator/disasm"
	"github.com/pedrofranceschi/6502-emulator/loader"
)

func main() {
	inputFile := flag.String("i", "", "input binary file")
	base := flag.Uint("base", 0x4000, "load address")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Error: -i <input file> is required")
		os.Exit(1)
	}

	c := cpu.NewCPU()
	n, err := loader.LoadFile(c, *inputFile, uint16(*base))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(disasm.DisassembleMemory(c.Memory[:], int(*base), n))
}
