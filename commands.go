// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

// HD44780 instruction set. The opcode is the highest set bit, the lower bits
// are the instruction's flags.
const (
	cmdClearDisplay   byte = 0x01
	cmdReturnHome     byte = 0x02
	cmdEntryModeSet   byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdCursorShift    byte = 0x10
	cmdFunctionSet    byte = 0x20
	cmdSetCGRAMAddr   byte = 0x40
	cmdSetDDRAMAddr   byte = 0x80
)

// Function set flags.
const (
	fn8Bit  byte = 0x10
	fn2Line byte = 0x08
	fn5x10  byte = 0x04
)

// Display control flags. These three are encoded jointly in a single
// instruction byte, so the last commanded value of all of them must be kept
// host side and resent together whenever one changes.
const (
	ctlDisplayOn byte = 0x04
	ctlCursorOn  byte = 0x02
	ctlBlinkOn   byte = 0x01
)

// Entry mode flags, also jointly encoded.
const (
	entryLeftToRight byte = 0x02
	entryAutoScroll  byte = 0x01
)

// Cursor/display shift flags.
const (
	shiftDisplay byte = 0x08
	shiftRight   byte = 0x04
)

const (
	cgramSlots = 8
	glyphRows  = 8
	maxRows    = 4
	maxCols    = 40
)

// rowOffsets returns the DDRAM base address of each display row. Row 0 and 1
// always start at 0x00 and 0x40. On 4 row modules rows 2 and 3 are the
// continuation of rows 0 and 1, so their base depends on the column count:
// 0x14/0x54 on 20 column modules, 0x10/0x50 on 16 column ones.
func rowOffsets(cols int) [maxRows]byte {
	return [maxRows]byte{0x00, 0x40, byte(cols), byte(0x40 + cols)}
}
