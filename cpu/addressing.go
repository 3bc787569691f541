package cpu

// The functions in this file resolve an addressing mode to an
// effective 16-bit address, consuming the instruction's operand
// byte(s) from [PC] as they go. Indexed-absolute and indirect-indexed
// forms additionally report whether the index crossed a page boundary,
// which the dispatcher uses to charge the extra cycle on read forms.

func (c *CPU) addrZeroPage() uint16 {
	return uint16(c.fetch())
}

func (c *CPU) addrZeroPageX() uint16 {
	zp := c.fetch()
	return uint16(zp + c.X) // uint8 addition wraps mod 256
}

func (c *CPU) addrZeroPageY() uint16 {
	zp := c.fetch()
	return uint16(zp + c.Y)
}

func (c *CPU) addrAbsolute() uint16 {
	return c.fetch16()
}

func pageCrossed(base, final uint16) bool {
	return base&0xFF00 != final&0xFF00
}

func (c *CPU) addrAbsoluteX() (uint16, bool) {
	base := c.fetch16()
	final := base + uint16(c.X)
	return final, pageCrossed(base, final)
}

func (c *CPU) addrAbsoluteY() (uint16, bool) {
	base := c.fetch16()
	final := base + uint16(c.Y)
	return final, pageCrossed(base, final)
}

// addrIndirectX resolves (zp,X): the pointer itself wraps within zero
// page, and so does the high-byte fetch of the 16-bit address it holds.
func (c *CPU) addrIndirectX() uint16 {
	zp := c.fetch()
	ptr := zp + c.X
	lo := uint16(c.Memory[ptr])
	hi := uint16(c.Memory[ptr+1]) // ptr+1 is uint8, wraps mod 256
	return hi<<8 | lo
}

// addrIndirectY resolves (zp),Y: the base address is read from zero
// page (wrapping there), then indexed by Y in full 16-bit space.
func (c *CPU) addrIndirectY() (uint16, bool) {
	zp := c.fetch()
	lo := uint16(c.Memory[zp])
	hi := uint16(c.Memory[zp+1])
	base := hi<<8 | lo
	final := base + uint16(c.Y)
	return final, pageCrossed(base, final)
}

// addrIndirectJMP resolves JMP (abs), reproducing the 6502's page-wrap
// bug: if the pointer sits at the last byte of a page, the high byte is
// fetched from the start of that same page rather than spilling into
// the next one.
func (c *CPU) addrIndirectJMP(ptr uint16) uint16 {
	lo := uint16(c.Memory[ptr])
	var hi uint16
	if ptr&0xFF == 0xFF {
		hi = uint16(c.Memory[ptr&0xFF00])
	} else {
		hi = uint16(c.Memory[ptr+1])
	}
	return hi<<8 | lo
}
