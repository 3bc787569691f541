package cpu

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestFlagInstructions(t *testing.T) {
	tests := []struct {
		name      string
		opcode    uint8
		initFlags uint8
		checkFlag uint8
		expectSet bool
		desc      string
	}{
		{
			name:      "CLC clears carry flag",
			opcode:    CLC,
			initFlags: FlagC,
			checkFlag: FlagC,
			expectSet: false,
			desc:      "Carry should be cleared",
		},
		{
			name:      "CLC with carry already clear",
			opcode:    CLC,
			initFlags: 0,
			checkFlag: FlagC,
			expectSet: false,
			desc:      "Carry should remain clear",
		},
		{
			name:      "CLI clears interrupt flag",
			opcode:    CLI,
			initFlags: FlagI,
			checkFlag: FlagI,
			expectSet: false,
			desc:      "Interrupt should be cleared",
		},
		{
			name:      "CLV clears overflow flag",
			opcode:    CLV,
			initFlags: FlagV,
			checkFlag: FlagV,
			expectSet: false,
			desc:      "Overflow should be cleared",
		},
		{
			name:      "SEC sets carry flag",
			opcode:    SEC,
			initFlags: 0,
			checkFlag: FlagC,
			expectSet: true,
			desc:      "Carry should be set",
		},
		{
			name:      "SEC with carry already set",
			opcode:    SEC,
			initFlags: FlagC,
			checkFlag: FlagC,
			expectSet: true,
			desc:      "Carry should remain set",
		},
		{
			name:      "SEI sets interrupt flag",
			opcode:    SEI,
			initFlags: 0,
			checkFlag: FlagI,
			expectSet: true,
			desc:      "Interrupt should be set",
		},
		// Test that other flags are unaffected
		{
			name:      "CLC only affects carry",
			opcode:    CLC,
			initFlags: FlagD | FlagI | FlagV | FlagC,
			checkFlag: FlagD | FlagI | FlagV,
			expectSet: true,
			desc:      "Other flags should remain unchanged",
		},
		{
			name:      "SEC only affects carry",
			opcode:    SEC,
			initFlags: FlagD | FlagI | FlagV,
			checkFlag: FlagD | FlagI | FlagV,
			expectSet: true,
			desc:      "Other flags should remain unchanged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := NewCPU()

			// Setup
			cpu.P = tt.initFlags
			cpu.Memory[0] = tt.opcode

			// Execute
			cycles, _ := cpu.execute(tt.opcode)

			// Verify cycles
			assert.Equal(t, uint8(2), cycles,
				"All flag instructions should take 2 cycles")

			// Verify flag state
			if tt.expectSet {
				assert.Equal(t, tt.checkFlag, cpu.P&tt.checkFlag,
					"Expected flags not set: %s", tt.desc)
			} else {
				assert.Equal(t, uint8(0), cpu.P&tt.checkFlag,
					"Expected flags not cleared: %s", tt.desc)
			}
		})
	}
}

func TestDecimalModeOpcodesAreFatal(t *testing.T) {
	for _, opcode := range []uint8{CLD, SED} {
		cpu := NewCPU()
		cpu.Memory[0] = opcode

		_, err := cpu.execute(opcode)

		var fault *Fault
		assert.ErrorAs(t, err, &fault)
		assert.Equal(t, opcode, fault.Opcode)
	}
}
