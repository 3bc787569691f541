// Command 6502 loads a raw 6502 binary image and runs it to
// completion (a BRK in halt mode) or until a fatal fault occurs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pedrofranceschi/6502-emulator/cpu"
	"github.com/pedrofranceschi/6502-emulator/loader"
	"github.com/pedrofranceschi/6502-emulator/trace"
)

func main() {
	base := flag.Uint("base", 0x4000, "load address and reset vector")
	traceExec := flag.Bool("trace", false, "print one line per instruction executed")
	brkInterrupt := flag.Bool("brk-interrupt", false, "BRK pushes PC+2/P and vectors through $FFFE, instead of halting")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("usage: 6502 [-base addr] [-trace] [-brk-interrupt] <program file>")
		os.Exit(2)
	}

	c := cpu.NewCPU()
	if *brkInterrupt {
		c.BRKMode = cpu.BRKInterrupt
	}

	if _, err := loader.LoadFile(c, flag.Arg(0), uint16(*base)); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var tr *trace.Writer
	if *traceExec {
		tr = trace.New(os.Stdout)
	}

	// Run reports a clean BRK halt as a nil error; only a *cpu.Fault
	// (unknown opcode, decimal-mode opcode) comes back non-nil.
	err := c.Run(func(c *cpu.CPU) bool {
		if tr != nil {
			tr.Step(c)
		}
		return false
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
