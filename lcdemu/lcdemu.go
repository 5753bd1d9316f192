// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdemu

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/gpio"
)

var ErrNotImplemented = errors.New("lcdemu: not implemented")

// Op is one decoded bus transaction: a full byte and the register it was
// written to.
type Op struct {
	Byte byte
	Data bool
}

// Dev is an emulated HD44780 in 4 bit mode.
//
// It is not safe for concurrent use; like the device it emulates it expects
// a single bus owner.
type Dev struct {
	cols, rows int
	offsets    [4]byte

	ddram [0x80]byte
	cgram [64]byte

	// Address counter. cgramMode selects which RAM it points into.
	addr      byte
	cgramMode bool
	shift     int
	control   byte
	entry     byte
	backlight bool

	// Bus state.
	rs        bool
	enable    bool
	dataValue gpio.GPIOValue
	highNib   byte
	haveHigh  bool

	ops []Op

	buf     bytes.Buffer
	palette ansi256.Palette
}

// New returns an emulated display of the given geometry.
func New(cols, rows int) (*Dev, error) {
	if rows < 1 || rows > 4 || cols < 1 || cols > 40 {
		return nil, fmt.Errorf("lcdemu: invalid geometry %dx%d", cols, rows)
	}
	d := &Dev{
		cols:    cols,
		rows:    rows,
		offsets: [4]byte{0x00, 0x40, byte(cols), byte(0x40 + cols)},
		// Reset circuit defaults: display off, increment, no shift.
		entry:   0x02,
		palette: *ansi256.Default,
	}
	for i := range d.ddram {
		d.ddram[i] = ' '
	}
	return d, nil
}

// DataPins returns the 4 data lines as a gpio.Group, least significant bit
// first.
func (d *Dev) DataPins() gpio.Group {
	return &group{dev: d}
}

// RS returns the register select line.
func (d *Dev) RS() gpio.PinOut {
	return &emuPin{dev: d, name: "EMU_RS", number: 4, role: roleRS}
}

// Enable returns the enable line. A rising edge latches the current nibble.
func (d *Dev) Enable() gpio.PinOut {
	return &emuPin{dev: d, name: "EMU_E", number: 5, role: roleEnable}
}

// Backlight returns the backlight line.
func (d *Dev) Backlight() gpio.PinOut {
	return &emuPin{dev: d, name: "EMU_BL", number: 6, role: roleBacklight}
}

// Ops returns the decoded instruction trace since the last ResetOps.
func (d *Dev) Ops() []Op {
	return append([]Op(nil), d.ops...)
}

// ResetOps discards the recorded trace. Display state is unaffected.
func (d *Dev) ResetOps() {
	d.ops = d.ops[:0]
}

// Line returns the cols characters visible on the given row, taking the
// current display shift into account. CGRAM glyph codes 0..7 are returned
// as-is.
func (d *Dev) Line(row int) string {
	if row < 0 || row >= d.rows {
		return ""
	}
	b := make([]byte, d.cols)
	for c := 0; c < d.cols; c++ {
		b[c] = d.ddram[(int(d.offsets[row])+c+d.shift)&0x7f]
	}
	return string(b)
}

// Screen returns all visible rows.
func (d *Dev) Screen() []string {
	s := make([]string, d.rows)
	for r := range s {
		s[r] = d.Line(r)
	}
	return s
}

// AddrCounter returns the current address counter and whether it points into
// CGRAM.
func (d *Dev) AddrCounter() (addr byte, cgram bool) {
	return d.addr, d.cgramMode
}

// DisplayOn returns the last commanded display enable bit.
func (d *Dev) DisplayOn() bool { return d.control&0x04 != 0 }

// CursorOn returns the last commanded underline cursor bit.
func (d *Dev) CursorOn() bool { return d.control&0x02 != 0 }

// BlinkOn returns the last commanded blink bit.
func (d *Dev) BlinkOn() bool { return d.control&0x01 != 0 }

// BacklightOn returns the state of the backlight line.
func (d *Dev) BacklightOn() bool { return d.backlight }

// CGRAM returns the programmed pattern of a glyph slot.
func (d *Dev) CGRAM(slot int) [8]byte {
	var g [8]byte
	if slot >= 0 && slot < 8 {
		copy(g[:], d.cgram[slot*8:slot*8+8])
	}
	return g
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcdemu: %dx%d", d.cols, d.rows)
}

// strobe latches the nibble on the data lines. Two strobes make a byte,
// high nibble first.
func (d *Dev) strobe() {
	nib := byte(d.dataValue) & 0x0f
	if !d.haveHigh {
		d.highNib = nib
		d.haveHigh = true
		return
	}
	d.haveHigh = false
	d.exec(d.highNib<<4|nib, d.rs)
}

// exec interprets one instruction or data byte. The opcode is the highest
// set bit.
func (d *Dev) exec(b byte, data bool) {
	d.ops = append(d.ops, Op{Byte: b, Data: data})
	if data {
		d.write(b)
		return
	}
	switch {
	case b&0x80 != 0: // set DDRAM address
		d.addr = b & 0x7f
		d.cgramMode = false
	case b&0x40 != 0: // set CGRAM address
		d.addr = b & 0x3f
		d.cgramMode = true
	case b&0x20 != 0: // function set: nothing observable to retain
	case b&0x10 != 0: // cursor/display shift
		right := b&0x04 != 0
		if b&0x08 != 0 {
			// The window offset moves opposite to the apparent text
			// movement: shifting the display left advances the window.
			if right {
				d.shift--
			} else {
				d.shift++
			}
		} else if right {
			d.addr = (d.addr + 1) & 0x7f
		} else {
			d.addr = (d.addr - 1) & 0x7f
		}
	case b&0x08 != 0: // display control
		d.control = b & 0x07
	case b&0x04 != 0: // entry mode set
		d.entry = b & 0x03
	case b&0x02 != 0: // return home
		d.addr = 0
		d.cgramMode = false
		d.shift = 0
	case b&0x01 != 0: // clear display
		for i := range d.ddram {
			d.ddram[i] = ' '
		}
		d.addr = 0
		d.cgramMode = false
		d.shift = 0
		d.entry |= 0x02 // clear forces increment mode
	}
}

// write stores one data byte at the address counter and advances it per the
// entry mode, shifting the display as well when autoscroll is on.
func (d *Dev) write(b byte) {
	inc := d.entry&0x02 != 0
	if d.cgramMode {
		d.cgram[d.addr&0x3f] = b & 0x1f
		if inc {
			d.addr = (d.addr + 1) & 0x3f
		} else {
			d.addr = (d.addr - 1) & 0x3f
		}
		return
	}
	d.ddram[d.addr&0x7f] = b
	if inc {
		d.addr = (d.addr + 1) & 0x7f
	} else {
		d.addr = (d.addr - 1) & 0x7f
	}
	if d.entry&0x01 != 0 { // autoscroll
		if inc {
			d.shift++
		} else {
			d.shift--
		}
	}
}

var _ fmt.Stringer = &Dev{}
