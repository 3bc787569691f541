// Command 6502mon is an interactive terminal debugger for a 6502
// binary image: single-step, breakpoints, and live register/stack/
// memory/disassembly panes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pedrofranceschi/6502-emulator/cpu"
	"github.com/pedrofranceschi/6502-emulator/loader"
	"github.com/pedrofranceschi/6502-emulator/monitor"
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
	if _, err := loader.LoadFile(c, *inputFile, uint16(*base)); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := monitor.Run(c); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
