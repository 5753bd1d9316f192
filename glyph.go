// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

import "fmt"

// Glyph is a 5x8 dot pattern for a programmable CGRAM slot. Each row holds
// 5 bits, row 0 on top, bit 4 leftmost. Row 7 is overlaid by the underline
// cursor and is usually left blank.
//
// http://www.quinapalus.com/hd44780udg.html generates patterns.
type Glyph [glyphRows]byte

// CreateChar programs a glyph into one of the 8 CGRAM slots. The slot keeps
// the glyph until overwritten; there is no eviction, last write per slot
// wins. Characters already on screen with that code change immediately.
//
// Writing CGRAM leaves the controller's address counter inside CGRAM space,
// so the DDRAM address is unconditionally restored afterwards: a subsequent
// Write lands where the cursor was before the CreateChar call.
func (d *Dev) CreateChar(slot int, pattern Glyph) error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	if slot < 0 || slot >= cgramSlots {
		return wrap(fmt.Errorf("%w: %d", ErrInvalidSlot, slot))
	}
	for i, row := range pattern {
		if row > 0x1f {
			return wrap(fmt.Errorf("%w: row %d = %#02x", ErrInvalidPattern, i, row))
		}
	}
	if err := d.bus.SendByte(cmdSetCGRAMAddr|byte(slot)<<3, false, settleShort); err != nil {
		return err
	}
	for _, row := range pattern {
		if err := d.bus.SendByte(row, true, settleShort); err != nil {
			return err
		}
	}
	return d.bus.SendByte(cmdSetDDRAMAddr|d.addr, false, settleShort)
}

// UseChar writes the glyph programmed in slot at the cursor. CGRAM glyphs
// are addressed as character codes 0..7 in DDRAM writes.
func (d *Dev) UseChar(slot int) error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	if slot < 0 || slot >= cgramSlots {
		return wrap(fmt.Errorf("%w: %d", ErrInvalidSlot, slot))
	}
	return d.WriteChar(byte(slot))
}
