// Package trace provides a minimal line-mode execution trace for the
// 6502 interpreter: one line per step, naming the instruction about to
// execute and the register/flag/cycle state before it executes.
package trace

import (
	"fmt"
	"io"

	"github.com/pedrofranceschi/6502-emulator/cpu"
	"github.com/pedrofranceschi/6502-emulator/disasm"
)

// Writer emits one formatted line per Step to an underlying io.Writer.
type Writer struct {
	out io.Writer
}

// New returns a Writer that formats trace lines to out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Step writes one trace line for the instruction about to execute at
// c.PC. Call it immediately before c.Step: the disassembly and the
// register dump both reflect the state at the time of the call, before
// the instruction executes. The state the instruction leaves behind is
// not printed on its line.
func (w *Writer) Step(c *cpu.CPU) {
	pc := c.PC
	loc := disasm.Location{PC: pc, Value: c.Memory[pc]}
	if inst, ok := disasm.Decode(c.Memory[pc]); ok {
		loc.Inst = &inst
		n := inst.Mode.GetOperandBytes()
		if n > 0 {
			loc.OperandBytes = make([]byte, n)
			for i := 0; i < n; i++ {
				loc.OperandBytes[i] = c.Memory[pc+1+uint16(i)]
			}
		}
	}

	fmt.Fprintf(w.out, "%-28s A=%02X X=%02X Y=%02X SP=%02X P=%02X CYC=%d\n",
		loc.String(), c.A, c.X, c.Y, c.SP, c.P, c.Cycles)
}
