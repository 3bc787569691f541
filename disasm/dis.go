package disasm

import (
	"fmt"
	"strings"
)

const maxMemory = 0x10000

// Location is one disassembled instruction: its address, raw opcode
// byte, any operand bytes, and the decoded Instruction (nil for an
// opcode this disassembler doesn't recognize).
type Location struct {
	PC           uint16
	Value        uint8
	OperandBytes []byte
	Inst         *Instruction
}

func (l Location) instruction() string {
	if l.Inst == nil {
		return fmt.Sprintf("db $%02X        ; unknown opcode", l.Value)
	}
	operand := l.Inst.Mode.FormatOperand(l.OperandBytes)
	if operand == "" {
		return l.Inst.Name
	}

	if l.Inst.Mode == Relative {
		offset := int8(l.OperandBytes[0])
		target := l.PC + 2 + uint16(offset)
		return fmt.Sprintf("%s $%04X", l.Inst.Name, target)
	}

	return fmt.Sprintf("%s %s", l.Inst.Name, operand)
}

// Size returns the total byte length of the instruction, opcode included.
func (l Location) Size() int {
	if l.Inst == nil {
		return 1
	}
	return 1 + l.Inst.Mode.GetOperandBytes()
}

func (l Location) String() string {
	var operandCount int
	if l.Inst != nil {
		operandCount = l.Inst.Mode.GetOperandBytes()
	}

	var hexDump string
	switch operandCount {
	case 0:
		hexDump = fmt.Sprintf("%02X", l.Value)
	case 1:
		hexDump = fmt.Sprintf("%02X %02X", l.Value, l.OperandBytes[0])
	default:
		hexDump = fmt.Sprintf("%02X %02X %02X", l.Value, l.OperandBytes[0], l.OperandBytes[1])
	}

	return fmt.Sprintf("$%04X: %-8s  %s", l.PC, hexDump, l.instruction())
}

// Decode looks up the Instruction that an opcode byte maps to.
func Decode(opcode byte) (Instruction, bool) {
	instruction, exists := instructionSet[opcode]
	return instruction, exists
}

// DisassembleInstructions walks the full 64 KiB address space from 0,
// decoding one instruction at a time, and returns every Location found.
// Since nothing distinguishes code from data, this over-reads memory
// that isn't actually executable; it is meant for whole-image dumps,
// not for following a specific control-flow path.
func DisassembleInstructions(memory []byte) []Location {
	pc := 0
	var rows []Location
	for pc < maxMemory {
		loc := disassembleLocation(memory, pc)
		rows = append(rows, loc)
		pc += loc.Size()
	}
	return rows
}

// DisassembleMemory renders a range of memory starting at startAddr as
// one formatted line per instruction.
func DisassembleMemory(memory []byte, startAddr int, length int) string {
	var out strings.Builder
	pc := startAddr
	endAddr := startAddr + length

	for pc < endAddr && pc < maxMemory {
		loc := disassembleLocation(memory, pc)
		out.WriteString(loc.String())
		out.WriteString("\n")
		pc += loc.Size()
	}

	return out.String()
}

func disassembleLocation(memory []byte, pc int) Location {
	opcode := memory[pc]
	l := Location{PC: uint16(pc), Value: opcode}

	inst, exists := instructionSet[opcode]
	if !exists {
		return l
	}

	operandCount := inst.Mode.GetOperandBytes()
	if pc+operandCount >= maxMemory {
		return l
	}
	l.Inst = &inst

	if operandCount > 0 {
		l.OperandBytes = make([]byte, operandCount)
		for i := 0; i < operandCount; i++ {
			l.OperandBytes[i] = memory[pc+1+i]
		}
	}

	return l
}
