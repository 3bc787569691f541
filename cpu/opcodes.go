package cpu

// execute dispatches a single fetched opcode, consuming any operand
// bytes it needs from memory at PC, and returns the cycle count the
// instruction charges (including any page-cross penalty). An unknown
// opcode or an attempt to use decimal mode returns a *Fault; BRK (in
// BRKHalt mode) returns a *Halted alongside its charged cycles.
func (c *CPU) execute(opcode uint8) (uint8, error) {
	switch opcode {

	// --- Load/Store ---
	case LDA_IMM:
		c.A = c.fetch()
		c.updateZN(c.A)
		return 2, nil
	case LDA_ZP:
		c.A = c.Memory[c.addrZeroPage()]
		c.updateZN(c.A)
		return 3, nil
	case LDA_ZPX:
		c.A = c.Memory[c.addrZeroPageX()]
		c.updateZN(c.A)
		return 4, nil
	case LDA_ABS:
		c.A = c.Memory[c.addrAbsolute()]
		c.updateZN(c.A)
		return 4, nil
	case LDA_ABX:
		addr, crossed := c.addrAbsoluteX()
		c.A = c.Memory[addr]
		c.updateZN(c.A)
		return extra(4, crossed), nil
	case LDA_ABY:
		addr, crossed := c.addrAbsoluteY()
		c.A = c.Memory[addr]
		c.updateZN(c.A)
		return extra(4, crossed), nil
	case LDA_INX:
		c.A = c.Memory[c.addrIndirectX()]
		c.updateZN(c.A)
		return 6, nil
	case LDA_INY:
		addr, crossed := c.addrIndirectY()
		c.A = c.Memory[addr]
		c.updateZN(c.A)
		return extra(5, crossed), nil

	case LDX_IMM:
		c.X = c.fetch()
		c.updateZN(c.X)
		return 2, nil
	case LDX_ZP:
		c.X = c.Memory[c.addrZeroPage()]
		c.updateZN(c.X)
		return 3, nil
	case LDX_ZPY:
		c.X = c.Memory[c.addrZeroPageY()]
		c.updateZN(c.X)
		return 4, nil
	case LDX_ABS:
		c.X = c.Memory[c.addrAbsolute()]
		c.updateZN(c.X)
		return 4, nil
	case LDX_ABY:
		addr, crossed := c.addrAbsoluteY()
		c.X = c.Memory[addr]
		c.updateZN(c.X)
		return extra(4, crossed), nil

	case LDY_IMM:
		c.Y = c.fetch()
		c.updateZN(c.Y)
		return 2, nil
	case LDY_ZP:
		c.Y = c.Memory[c.addrZeroPage()]
		c.updateZN(c.Y)
		return 3, nil
	case LDY_ZPX:
		c.Y = c.Memory[c.addrZeroPageX()]
		c.updateZN(c.Y)
		return 4, nil
	case LDY_ABS:
		c.Y = c.Memory[c.addrAbsolute()]
		c.updateZN(c.Y)
		return 4, nil
	case LDY_ABX:
		addr, crossed := c.addrAbsoluteX()
		c.Y = c.Memory[addr]
		c.updateZN(c.Y)
		return extra(4, crossed), nil

	case STA_ZP:
		c.Memory[c.addrZeroPage()] = c.A
		return 3, nil
	case STA_ZPX:
		c.Memory[c.addrZeroPageX()] = c.A
		return 4, nil
	case STA_ABS:
		c.Memory[c.addrAbsolute()] = c.A
		return 4, nil
	case STA_ABX:
		addr, _ := c.addrAbsoluteX()
		c.Memory[addr] = c.A
		return 5, nil
	case STA_ABY:
		addr, _ := c.addrAbsoluteY()
		c.Memory[addr] = c.A
		return 5, nil
	case STA_INX:
		c.Memory[c.addrIndirectX()] = c.A
		return 6, nil
	case STA_INY:
		addr, _ := c.addrIndirectY()
		c.Memory[addr] = c.A
		return 6, nil

	case STX_ZP:
		c.Memory[c.addrZeroPage()] = c.X
		return 3, nil
	case STX_ZPY:
		c.Memory[c.addrZeroPageY()] = c.X
		return 4, nil
	case STX_ABS:
		c.Memory[c.addrAbsolute()] = c.X
		return 4, nil

	case STY_ZP:
		c.Memory[c.addrZeroPage()] = c.Y
		return 3, nil
	case STY_ZPX:
		c.Memory[c.addrZeroPageX()] = c.Y
		return 4, nil
	case STY_ABS:
		c.Memory[c.addrAbsolute()] = c.Y
		return 4, nil

	// --- Register Transfers ---
	case TAX:
		c.X = c.A
		c.updateZN(c.X)
		return 2, nil
	case TAY:
		c.Y = c.A
		c.updateZN(c.Y)
		return 2, nil
	case TXA:
		c.A = c.X
		c.updateZN(c.A)
		return 2, nil
	case TYA:
		c.A = c.Y
		c.updateZN(c.A)
		return 2, nil
	case TSX:
		c.X = c.SP
		c.updateZN(c.X)
		return 2, nil
	case TXS:
		c.SP = c.X // flags untouched
		return 2, nil

	// --- Stack Operations ---
	case PHA:
		c.push(c.A)
		return 3, nil
	case PHP:
		c.push(c.P | FlagB | flagReserved)
		return 3, nil
	case PLA:
		c.A = c.pull()
		c.updateZN(c.A)
		return 4, nil
	case PLP:
		c.P = (c.pull() &^ FlagB) | flagReserved
		return 4, nil

	// --- Logical ---
	case AND_IMM:
		c.A &= c.fetch()
		c.updateZN(c.A)
		return 2, nil
	case AND_ZP:
		c.A &= c.Memory[c.addrZeroPage()]
		c.updateZN(c.A)
		return 3, nil
	case AND_ZPX:
		c.A &= c.Memory[c.addrZeroPageX()]
		c.updateZN(c.A)
		return 4, nil
	case AND_ABS:
		c.A &= c.Memory[c.addrAbsolute()]
		c.updateZN(c.A)
		return 4, nil
	case AND_ABX:
		addr, crossed := c.addrAbsoluteX()
		c.A &= c.Memory[addr]
		c.updateZN(c.A)
		return extra(4, crossed), nil
	case AND_ABY:
		addr, crossed := c.addrAbsoluteY()
		c.A &= c.Memory[addr]
		c.updateZN(c.A)
		return extra(4, crossed), nil
	case AND_INX:
		c.A &= c.Memory[c.addrIndirectX()]
		c.updateZN(c.A)
		return 6, nil
	case AND_INY:
		addr, crossed := c.addrIndirectY()
		c.A &= c.Memory[addr]
		c.updateZN(c.A)
		return extra(5, crossed), nil

	case EOR_IMM:
		c.A ^= c.fetch()
		c.updateZN(c.A)
		return 2, nil
	case EOR_ZP:
		c.A ^= c.Memory[c.addrZeroPage()]
		c.updateZN(c.A)
		return 3, nil
	case EOR_ZPX:
		c.A ^= c.Memory[c.addrZeroPageX()]
		c.updateZN(c.A)
		return 4, nil
	case EOR_ABS:
		c.A ^= c.Memory[c.addrAbsolute()]
		c.updateZN(c.A)
		return 4, nil
	case EOR_ABX:
		addr, crossed := c.addrAbsoluteX()
		c.A ^= c.Memory[addr]
		c.updateZN(c.A)
		return extra(4, crossed), nil
	case EOR_ABY:
		addr, crossed := c.addrAbsoluteY()
		c.A ^= c.Memory[addr]
		c.updateZN(c.A)
		return extra(4, crossed), nil
	case EOR_INX:
		c.A ^= c.Memory[c.addrIndirectX()]
		c.updateZN(c.A)
		return 6, nil
	case EOR_INY:
		addr, crossed := c.addrIndirectY()
		c.A ^= c.Memory[addr]
		c.updateZN(c.A)
		return extra(5, crossed), nil

	case ORA_IMM:
		c.A |= c.fetch()
		c.updateZN(c.A)
		return 2, nil
	case ORA_ZP:
		c.A |= c.Memory[c.addrZeroPage()]
		c.updateZN(c.A)
		return 3, nil
	case ORA_ZPX:
		c.A |= c.Memory[c.addrZeroPageX()]
		c.updateZN(c.A)
		return 4, nil
	case ORA_ABS:
		c.A |= c.Memory[c.addrAbsolute()]
		c.updateZN(c.A)
		return 4, nil
	case ORA_ABX:
		addr, crossed := c.addrAbsoluteX()
		c.A |= c.Memory[addr]
		c.updateZN(c.A)
		return extra(4, crossed), nil
	case ORA_ABY:
		addr, crossed := c.addrAbsoluteY()
		c.A |= c.Memory[addr]
		c.updateZN(c.A)
		return extra(4, crossed), nil
	case ORA_INX:
		c.A |= c.Memory[c.addrIndirectX()]
		c.updateZN(c.A)
		return 6, nil
	case ORA_INY:
		addr, crossed := c.addrIndirectY()
		c.A |= c.Memory[addr]
		c.updateZN(c.A)
		return extra(5, crossed), nil

	case BIT_ZP:
		c.bit(c.Memory[c.addrZeroPage()])
		return 3, nil
	case BIT_ABS:
		c.bit(c.Memory[c.addrAbsolute()])
		return 4, nil

	// --- Arithmetic ---
	case ADC_IMM:
		c.adc(c.fetch())
		return 2, nil
	case ADC_ZP:
		c.adc(c.Memory[c.addrZeroPage()])
		return 3, nil
	case ADC_ZPX:
		c.adc(c.Memory[c.addrZeroPageX()])
		return 4, nil
	case ADC_ABS:
		c.adc(c.Memory[c.addrAbsolute()])
		return 4, nil
	case ADC_ABX:
		addr, crossed := c.addrAbsoluteX()
		c.adc(c.Memory[addr])
		return extra(4, crossed), nil
	case ADC_ABY:
		addr, crossed := c.addrAbsoluteY()
		c.adc(c.Memory[addr])
		return extra(4, crossed), nil
	case ADC_INX:
		c.adc(c.Memory[c.addrIndirectX()])
		return 6, nil
	case ADC_INY:
		addr, crossed := c.addrIndirectY()
		c.adc(c.Memory[addr])
		return extra(5, crossed), nil

	case SBC_IMM:
		c.sbc(c.fetch())
		return 2, nil
	case SBC_ZP:
		c.sbc(c.Memory[c.addrZeroPage()])
		return 3, nil
	case SBC_ZPX:
		c.sbc(c.Memory[c.addrZeroPageX()])
		return 4, nil
	case SBC_ABS:
		c.sbc(c.Memory[c.addrAbsolute()])
		return 4, nil
	case SBC_ABX:
		addr, crossed := c.addrAbsoluteX()
		c.sbc(c.Memory[addr])
		return extra(4, crossed), nil
	case SBC_ABY:
		addr, crossed := c.addrAbsoluteY()
		c.sbc(c.Memory[addr])
		return extra(4, crossed), nil
	case SBC_INX:
		c.sbc(c.Memory[c.addrIndirectX()])
		return 6, nil
	case SBC_INY:
		addr, crossed := c.addrIndirectY()
		c.sbc(c.Memory[addr])
		return extra(5, crossed), nil

	case CMP_IMM:
		c.compare(c.A, c.fetch())
		return 2, nil
	case CMP_ZP:
		c.compare(c.A, c.Memory[c.addrZeroPage()])
		return 3, nil
	case CMP_ZPX:
		c.compare(c.A, c.Memory[c.addrZeroPageX()])
		return 4, nil
	case CMP_ABS:
		c.compare(c.A, c.Memory[c.addrAbsolute()])
		return 4, nil
	case CMP_ABX:
		addr, crossed := c.addrAbsoluteX()
		c.compare(c.A, c.Memory[addr])
		return extra(4, crossed), nil
	case CMP_ABY:
		addr, crossed := c.addrAbsoluteY()
		c.compare(c.A, c.Memory[addr])
		return extra(4, crossed), nil
	case CMP_INX:
		c.compare(c.A, c.Memory[c.addrIndirectX()])
		return 6, nil
	case CMP_INY:
		addr, crossed := c.addrIndirectY()
		c.compare(c.A, c.Memory[addr])
		return extra(5, crossed), nil

	case CPX_IMM:
		c.compare(c.X, c.fetch())
		return 2, nil
	case CPX_ZP:
		c.compare(c.X, c.Memory[c.addrZeroPage()])
		return 3, nil
	case CPX_ABS:
		c.compare(c.X, c.Memory[c.addrAbsolute()])
		return 4, nil

	case CPY_IMM:
		c.compare(c.Y, c.fetch())
		return 2, nil
	case CPY_ZP:
		c.compare(c.Y, c.Memory[c.addrZeroPage()])
		return 3, nil
	case CPY_ABS:
		c.compare(c.Y, c.Memory[c.addrAbsolute()])
		return 4, nil

	// --- Increments & Decrements ---
	case INC_ZP:
		addr := c.addrZeroPage()
		c.Memory[addr]++
		c.updateZN(c.Memory[addr])
		return 5, nil
	case INC_ZPX:
		addr := c.addrZeroPageX()
		c.Memory[addr]++
		c.updateZN(c.Memory[addr])
		return 6, nil
	case INC_ABS:
		addr := c.addrAbsolute()
		c.Memory[addr]++
		c.updateZN(c.Memory[addr])
		return 6, nil
	case INC_ABX:
		addr, _ := c.addrAbsoluteX()
		c.Memory[addr]++
		c.updateZN(c.Memory[addr])
		return 7, nil

	case DEC_ZP:
		addr := c.addrZeroPage()
		c.Memory[addr]--
		c.updateZN(c.Memory[addr])
		return 5, nil
	case DEC_ZPX:
		addr := c.addrZeroPageX()
		c.Memory[addr]--
		c.updateZN(c.Memory[addr])
		return 6, nil
	case DEC_ABS:
		addr := c.addrAbsolute()
		c.Memory[addr]--
		c.updateZN(c.Memory[addr])
		return 6, nil
	case DEC_ABX:
		addr, _ := c.addrAbsoluteX()
		c.Memory[addr]--
		c.updateZN(c.Memory[addr])
		return 7, nil

	case INX:
		c.X++
		c.updateZN(c.X)
		return 2, nil
	case INY:
		c.Y++
		c.updateZN(c.Y)
		return 2, nil
	case DEX:
		c.X--
		c.updateZN(c.X)
		return 2, nil
	case DEY:
		c.Y--
		c.updateZN(c.Y)
		return 2, nil

	// --- Shifts ---
	case ASL_ACC:
		c.A = c.asl(c.A)
		return 2, nil
	case ASL_ZP:
		addr := c.addrZeroPage()
		c.Memory[addr] = c.asl(c.Memory[addr])
		return 5, nil
	case ASL_ZPX:
		addr := c.addrZeroPageX()
		c.Memory[addr] = c.asl(c.Memory[addr])
		return 6, nil
	case ASL_ABS:
		addr := c.addrAbsolute()
		c.Memory[addr] = c.asl(c.Memory[addr])
		return 6, nil
	case ASL_ABX:
		addr, _ := c.addrAbsoluteX()
		c.Memory[addr] = c.asl(c.Memory[addr])
		return 7, nil

	case LSR_ACC:
		c.A = c.lsr(c.A)
		return 2, nil
	case LSR_ZP:
		addr := c.addrZeroPage()
		c.Memory[addr] = c.lsr(c.Memory[addr])
		return 5, nil
	case LSR_ZPX:
		addr := c.addrZeroPageX()
		c.Memory[addr] = c.lsr(c.Memory[addr])
		return 6, nil
	case LSR_ABS:
		addr := c.addrAbsolute()
		c.Memory[addr] = c.lsr(c.Memory[addr])
		return 6, nil
	case LSR_ABX:
		addr, _ := c.addrAbsoluteX()
		c.Memory[addr] = c.lsr(c.Memory[addr])
		return 7, nil

	case ROL_ACC:
		c.A = c.rol(c.A)
		return 2, nil
	case ROL_ZP:
		addr := c.addrZeroPage()
		c.Memory[addr] = c.rol(c.Memory[addr])
		return 5, nil
	case ROL_ZPX:
		addr := c.addrZeroPageX()
		c.Memory[addr] = c.rol(c.Memory[addr])
		return 6, nil
	case ROL_ABS:
		addr := c.addrAbsolute()
		c.Memory[addr] = c.rol(c.Memory[addr])
		return 6, nil
	case ROL_ABX:
		addr, _ := c.addrAbsoluteX()
		c.Memory[addr] = c.rol(c.Memory[addr])
		return 7, nil

	case ROR_ACC:
		c.A = c.ror(c.A)
		return 2, nil
	case ROR_ZP:
		addr := c.addrZeroPage()
		c.Memory[addr] = c.ror(c.Memory[addr])
		return 5, nil
	case ROR_ZPX:
		addr := c.addrZeroPageX()
		c.Memory[addr] = c.ror(c.Memory[addr])
		return 6, nil
	case ROR_ABS:
		addr := c.addrAbsolute()
		c.Memory[addr] = c.ror(c.Memory[addr])
		return 6, nil
	case ROR_ABX:
		addr, _ := c.addrAbsoluteX()
		c.Memory[addr] = c.ror(c.Memory[addr])
		return 7, nil

	// --- Jumps & Calls ---
	case JMP_ABS:
		c.PC = c.addrAbsolute()
		return 3, nil
	case JMP_IND:
		ptr := c.fetch16()
		c.PC = c.addrIndirectJMP(ptr)
		return 5, nil
	case JSR_ABS:
		target := c.addrAbsolute()
		c.push16(c.PC - 1)
		c.PC = target
		return 6, nil
	case RTS:
		c.PC = c.pull16() + 1
		return 6, nil

	// --- Branches ---
	case BCC:
		return c.branch(c.P&FlagC == 0), nil
	case BCS:
		return c.branch(c.P&FlagC != 0), nil
	case BEQ:
		return c.branch(c.P&FlagZ != 0), nil
	case BMI:
		return c.branch(c.P&FlagN != 0), nil
	case BNE:
		return c.branch(c.P&FlagZ == 0), nil
	case BPL:
		return c.branch(c.P&FlagN == 0), nil
	case BVC:
		return c.branch(c.P&FlagV == 0), nil
	case BVS:
		return c.branch(c.P&FlagV != 0), nil

	// --- Status Flag Changes ---
	case CLC:
		c.setFlag(FlagC, false)
		return 2, nil
	case SEC:
		c.setFlag(FlagC, true)
		return 2, nil
	case CLI:
		c.setFlag(FlagI, false)
		return 2, nil
	case SEI:
		c.setFlag(FlagI, true)
		return 2, nil
	case CLV:
		c.setFlag(FlagV, false)
		return 2, nil
	case CLD:
		return 0, &Fault{Opcode: opcode, PC: c.PC - 1, Reason: "decimal mode unsupported"}
	case SED:
		return 0, &Fault{Opcode: opcode, PC: c.PC - 1, Reason: "decimal mode unsupported"}

	// --- System ---
	case NOP:
		return 2, nil
	case BRK:
		return c.brk()
	case RTI:
		c.P = (c.pull() &^ FlagB) | flagReserved
		c.PC = c.pull16()
		return 6, nil

	default:
		return 0, &Fault{Opcode: opcode, PC: c.PC - 1, Reason: "unknown opcode"}
	}
}

// extra charges one additional cycle over base when a page boundary
// was crossed by an indexed read — the documented penalty for every
// read-only indexed/indirect addressing mode.
func extra(base uint8, crossed bool) uint8 {
	if crossed {
		return base + 1
	}
	return base
}

// branch resolves a relative operand and, if condition holds, moves PC
// there. It always consumes the one-byte operand. Cycle cost is 2 when
// not taken, 3 when taken, 4 when taken and the branch crosses a page.
func (c *CPU) branch(condition bool) uint8 {
	offset := int8(c.fetch())
	if !condition {
		return 2
	}
	origin := c.PC
	target := uint16(int32(c.PC) + int32(offset))
	c.PC = target
	if pageCrossed(origin, target) {
		return 4
	}
	return 3
}

// brk implements BRK per c.BRKMode: BRKHalt stops the run loop cleanly
// without touching the stack; BRKInterrupt performs the architectural
// push-PC+2/push-status/set-I/vector-through-$FFFE sequence.
func (c *CPU) brk() (uint8, error) {
	if c.BRKMode == BRKHalt {
		return 1, &Halted{PC: c.PC - 1}
	}
	c.push16(c.PC + 1)
	c.push(c.P | FlagB | flagReserved)
	c.setFlag(FlagI, true)
	lo := uint16(c.Memory[0xFFFE])
	hi := uint16(c.Memory[0xFFFF])
	c.PC = hi<<8 | lo
	return 7, nil
}

// bit computes BIT's flags without touching A: Z reflects A&value,
// while N and V are copied directly from bits 7 and 6 of value.
func (c *CPU) bit(value uint8) {
	c.setFlag(FlagZ, c.A&value == 0)
	c.setFlag(FlagN, value&0x80 != 0)
	c.setFlag(FlagV, value&0x40 != 0)
}

// adc adds value and the carry flag into A, setting C on unsigned
// overflow and V on signed overflow per §4.5.
func (c *CPU) adc(value uint8) {
	carry := uint16(0)
	if c.P&FlagC != 0 {
		carry = 1
	}
	sum := uint16(c.A) + uint16(value) + carry
	result := uint8(sum)
	c.setFlag(FlagV, (c.A^value)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setFlag(FlagC, sum > 0xFF)
	c.updateZN(c.A)
}

// sbc subtracts value and the borrow (inverted carry) from A, using
// the direct subtraction formula rather than ADC's one's-complement
// trick, per §4.5.
func (c *CPU) sbc(value uint8) {
	borrow := int16(1)
	if c.P&FlagC != 0 {
		borrow = 0
	}
	diff := int16(c.A) - int16(value) - borrow
	result := uint8(diff)
	c.setFlag(FlagV, (c.A^value)&0x80 != 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setFlag(FlagC, diff >= 0)
	c.updateZN(c.A)
}

// compare implements CMP/CPX/CPY: subtract operand from register
// without storing the result, setting C/Z/N as if the subtraction had
// been performed.
func (c *CPU) compare(register, operand uint8) {
	diff := int16(register) - int16(operand)
	c.setFlag(FlagC, diff >= 0)
	c.updateZN(uint8(diff))
}

func (c *CPU) asl(value uint8) uint8 {
	c.setFlag(FlagC, value&0x80 != 0)
	result := value << 1
	c.updateZN(result)
	return result
}

func (c *CPU) lsr(value uint8) uint8 {
	c.setFlag(FlagC, value&0x01 != 0)
	result := value >> 1
	c.updateZN(result)
	return result
}

func (c *CPU) rol(value uint8) uint8 {
	oldCarry := c.P & FlagC
	c.setFlag(FlagC, value&0x80 != 0)
	result := value<<1 | oldCarry
	c.updateZN(result)
	return result
}

func (c *CPU) ror(value uint8) uint8 {
	oldCarry := (c.P & FlagC) << 7
	c.setFlag(FlagC, value&0x01 != 0)
	result := value>>1 | oldCarry
	c.updateZN(result)
	return result
}
