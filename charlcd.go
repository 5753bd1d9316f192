// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// Dev is an HD44780 compatible character display on a 4 bit Bus.
//
// The controller is write-only in this wiring, so Dev mirrors the display
// control and entry mode bits host side and is the sole source of truth for
// them: the mirror is updated only when the corresponding command has been
// issued successfully.
//
// A Dev owns its Bus exclusively and is not safe for concurrent use. Callers
// that need to share a display must serialize externally.
//
// Implements periph.io/x/conn/v3/display.TextDisplay.
type Dev struct {
	bus     *Bus
	rows    int
	cols    int
	offsets [maxRows]byte

	ready   bool
	control byte // display control flag mirror
	entry   byte // entry mode flag mirror
	addr    byte // last commanded DDRAM address
}

// New returns a Dev for a display of the given geometry. It does not touch
// the bus; call Init to run the power-on handshake before any other
// operation.
//
// rows and cols describe the physical module; the controller family supports
// at most 4 rows and 40 columns. Modules with nonstandard row addressing are
// not supported.
func New(bus *Bus, rows, cols int) (*Dev, error) {
	if bus == nil {
		return nil, wrap(fmt.Errorf("%w: nil bus", ErrInvalidGeometry))
	}
	if rows < 1 || rows > maxRows || cols < 1 || cols > maxCols {
		return nil, wrap(fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, cols, rows))
	}
	return &Dev{
		bus:     bus,
		rows:    rows,
		cols:    cols,
		offsets: rowOffsets(cols),
	}, nil
}

// Init runs the controller's power-on sequence and leaves it in 4 bit mode,
// display off, cleared, with left to right entry. The function set nibble is
// sent three times with the datasheet delays because the controller may have
// powered up in 8 bit mode and cannot acknowledge.
//
// Init is idempotent: calling it again re-runs the same sequence and resets
// the host side mirrors.
func (d *Dev) Init() error {
	// Attention sequence. The controller could be in 8 bit mode, in 4 bit
	// mode between nibbles, or already synchronized; three 0x3 nibbles land
	// it in 8 bit mode from any of them.
	if err := d.bus.SendNibble(0x03, false); err != nil {
		return err
	}
	time.Sleep(4100 * time.Microsecond)
	if err := d.bus.SendNibble(0x03, false); err != nil {
		return err
	}
	time.Sleep(100 * time.Microsecond)
	if err := d.bus.SendNibble(0x03, false); err != nil {
		return err
	}
	time.Sleep(100 * time.Microsecond)
	// Commit to 4 bit mode.
	if err := d.bus.SendNibble(0x02, false); err != nil {
		return err
	}
	fn := cmdFunctionSet // 4 bit, 5x8 font
	if d.rows > 1 {
		fn |= fn2Line
	}
	if err := d.bus.SendByte(fn, false, settleShort); err != nil {
		return err
	}
	d.control = 0
	if err := d.bus.SendByte(cmdDisplayControl, false, settleShort); err != nil {
		return err
	}
	if err := d.bus.SendByte(cmdClearDisplay, false, settleLong); err != nil {
		return err
	}
	d.addr = 0
	d.entry = entryLeftToRight
	if err := d.bus.SendByte(cmdEntryModeSet|d.entry, false, settleShort); err != nil {
		return err
	}
	d.ready = true
	return nil
}

// Clear clears the display and moves the cursor to (0,0). The command sweeps
// the whole of DDRAM so it needs the long settle delay.
func (d *Dev) Clear() error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	if err := d.bus.SendByte(cmdClearDisplay, false, settleLong); err != nil {
		return err
	}
	d.addr = 0
	// Clear also resets the controller's entry direction to increment.
	d.entry |= entryLeftToRight
	return nil
}

// Home moves the cursor to (0,0) and undoes any display shift without
// clearing. Like Clear it is a long running instruction.
func (d *Dev) Home() error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	if err := d.bus.SendByte(cmdReturnHome, false, settleLong); err != nil {
		return err
	}
	d.addr = 0
	return nil
}

// SetCursor moves the cursor to the zero based (col, row) position.
// Out of range positions are an error and issue no bus traffic.
func (d *Dev) SetCursor(col, row int) error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return wrap(fmt.Errorf("%w: (%d,%d) on %dx%d", ErrInvalidPosition, col, row, d.cols, d.rows))
	}
	addr := d.offsets[row] + byte(col)
	if err := d.bus.SendByte(cmdSetDDRAMAddr|addr, false, settleShort); err != nil {
		return err
	}
	d.addr = addr
	return nil
}

// SetLine moves the cursor to column 0 of the given row.
func (d *Dev) SetLine(row int) error {
	return d.SetCursor(0, row)
}

// WriteChar writes one character at the cursor. The controller advances the
// address counter itself per the entry direction, so sequential writes need
// no explicit addressing. Character codes 0..7 display CGRAM glyphs.
func (d *Dev) WriteChar(c byte) error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	if err := d.bus.SendByte(c, true, settleShort); err != nil {
		return err
	}
	// Track the controller's address counter so CreateChar can restore it.
	if d.entry&entryLeftToRight != 0 {
		d.addr = (d.addr + 1) & 0x7f
	} else {
		d.addr = (d.addr - 1) & 0x7f
	}
	return nil
}

// Write writes a run of characters at the cursor.
func (d *Dev) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if err = d.WriteChar(c); err != nil {
			return
		}
		n++
	}
	return
}

// WriteString writes a string at the cursor.
func (d *Dev) WriteString(text string) (n int, err error) {
	return d.Write([]byte(text))
}

// Display turns the display on or off. Contents are retained while off.
func (d *Dev) Display(on bool) error {
	return d.commitControl(ctlDisplayOn, on)
}

// CursorVisible turns the underline cursor on or off.
func (d *Dev) CursorVisible(on bool) error {
	return d.commitControl(ctlCursorOn, on)
}

// Blink turns cursor blink on or off.
func (d *Dev) Blink(on bool) error {
	return d.commitControl(ctlBlinkOn, on)
}

// commitControl updates one flag of the display control mirror and resends
// the joint instruction. All three bits travel in one byte, so the last
// commanded value of the other two is preserved.
func (d *Dev) commitControl(flag byte, on bool) error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	next := d.control
	if on {
		next |= flag
	} else {
		next &^= flag
	}
	if err := d.bus.SendByte(cmdDisplayControl|next, false, settleShort); err != nil {
		return err
	}
	d.control = next
	return nil
}

// ScrollLeft shifts the visible window one position left over DDRAM without
// touching its contents. The controller keeps the shift amount internally;
// there is no way to read it back, so no absolute offset is tracked.
func (d *Dev) ScrollLeft() error {
	return d.shift(false)
}

// ScrollRight shifts the visible window one position right.
func (d *Dev) ScrollRight() error {
	return d.shift(true)
}

func (d *Dev) shift(right bool) error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	cmd := cmdCursorShift | shiftDisplay
	if right {
		cmd |= shiftRight
	}
	return d.bus.SendByte(cmd, false, settleShort)
}

// AutoScroll makes the display shift on every write so the cursor appears
// stationary, instead of the cursor advancing.
func (d *Dev) AutoScroll(enabled bool) error {
	return d.commitEntry(entryAutoScroll, enabled)
}

// TextDirection sets the entry direction: left to right (the power on
// default) or right to left.
func (d *Dev) TextDirection(ltr bool) error {
	return d.commitEntry(entryLeftToRight, ltr)
}

// commitEntry is commitControl for the jointly encoded entry mode bits.
func (d *Dev) commitEntry(flag byte, on bool) error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	next := d.entry
	if on {
		next |= flag
	} else {
		next &^= flag
	}
	if err := d.bus.SendByte(cmdEntryModeSet|next, false, settleShort); err != nil {
		return err
	}
	d.entry = next
	return nil
}

// Backlight turns the display's backlight on (any nonzero intensity) or off.
// The backlight line is a plain on/off switch on these modules.
func (d *Dev) Backlight(intensity display.Intensity) error {
	return d.bus.SetBacklight(intensity > 0)
}

// Rows returns the number of rows the display supports.
func (d *Dev) Rows() int {
	return d.rows
}

// Cols returns the number of columns the display supports.
func (d *Dev) Cols() int {
	return d.cols
}

// MinRow returns the minimum row position.
func (d *Dev) MinRow() int {
	return 0
}

// MinCol returns the minimum column position.
func (d *Dev) MinCol() int {
	return 0
}

// MoveTo moves the cursor to the zero based (row, col) position.
func (d *Dev) MoveTo(row, col int) error {
	return d.SetCursor(col, row)
}

// Move moves the cursor forward or backward one position.
func (d *Dev) Move(dir display.CursorDirection) error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	cmd := cmdCursorShift
	switch dir {
	case display.Backward:
	case display.Forward:
		cmd |= shiftRight
	case display.Up, display.Down:
		fallthrough
	default:
		return wrap(display.ErrNotImplemented)
	}
	if err := d.bus.SendByte(cmd, false, settleShort); err != nil {
		return err
	}
	if cmd&shiftRight != 0 {
		d.addr = (d.addr + 1) & 0x7f
	} else {
		d.addr = (d.addr - 1) & 0x7f
	}
	return nil
}

// Cursor sets the cursor mode. You can pass multiple arguments:
// Cursor(CursorOff), Cursor(CursorUnderline, CursorBlink).
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	if !d.ready {
		return wrap(ErrNotInitialized)
	}
	next := d.control
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			next &^= ctlCursorOn | ctlBlinkOn
		case display.CursorUnderline:
			next |= ctlCursorOn
		case display.CursorBlink:
			next |= ctlCursorOn | ctlBlinkOn
		case display.CursorBlock:
			next |= ctlCursorOn | ctlBlinkOn
		default:
			return wrap(fmt.Errorf("unexpected cursor mode: %d", mode))
		}
	}
	if err := d.bus.SendByte(cmdDisplayControl|next, false, settleShort); err != nil {
		return err
	}
	d.control = next
	return nil
}

// Halt clears the display, turns the display and backlight off, and releases
// the bus.
func (d *Dev) Halt() error {
	if d.ready {
		_ = d.Clear()
		_ = d.Display(false)
	}
	_ = d.bus.SetBacklight(false)
	return d.bus.Halt()
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s: %s - Rows: %d, Cols: %d", packageName, d.bus.String(), d.rows, d.cols)
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
