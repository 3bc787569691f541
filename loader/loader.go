// Package loader copies a raw 6502 binary image into a CPU's memory,
// writes the reset vector, and sets PC so Run can start executing it.
package loader

import (
	"fmt"
	"os"

	"github.com/pedrofranceschi/6502-emulator/cpu"
)

// WriteImage copies data into c.Memory starting at base, points the
// reset vector ($FFFC/$FFFD) at base, and sets PC to base. It returns
// an error if the image doesn't fit in the remaining address space.
func WriteImage(c *cpu.CPU, data []byte, base uint16) error {
	if int(base)+len(data) > len(c.Memory) {
		return fmt.Errorf("image of %d bytes at $%04X overruns memory", len(data), base)
	}

	for i, b := range data {
		c.Memory[base+uint16(i)] = b
	}

	c.Memory[0xFFFC] = uint8(base)
	c.Memory[0xFFFD] = uint8(base >> 8)
	c.PC = base

	return nil
}

// LoadFile reads filename and writes it into c's memory via WriteImage.
// It returns the number of bytes loaded.
func LoadFile(c *cpu.CPU, filename string, base uint16) (int, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := WriteImage(c, data, base); err != nil {
		return 0, err
	}
	return len(data), nil
}
