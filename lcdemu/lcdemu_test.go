// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdemu

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

// send clocks one byte into the emulator the way a 4 bit bus master would.
func send(t *testing.T, d *Dev, b byte, data bool) {
	t.Helper()
	rs, e, g := d.RS(), d.Enable(), d.DataPins()
	if err := rs.Out(gpio.Level(data)); err != nil {
		t.Fatal(err)
	}
	for _, nib := range []byte{b >> 4, b & 0x0f} {
		if err := g.Out(gpio.GPIOValue(nib), 0x0f); err != nil {
			t.Fatal(err)
		}
		if err := e.Out(gpio.High); err != nil {
			t.Fatal(err)
		}
		if err := e.Out(gpio.Low); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNew(t *testing.T) {
	if _, err := New(0, 2); err == nil {
		t.Error("New(0, 2) should fail")
	}
	if _, err := New(16, 5); err == nil {
		t.Error("New(16, 5) should fail")
	}
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Line(0); got != strings.Repeat(" ", 16) {
		t.Errorf("fresh Line(0) = %q", got)
	}
	if got := d.Line(2); got != "" {
		t.Errorf("out of range Line = %q", got)
	}
}

func TestDecode(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	send(t, d, 0x80, false) // DDRAM address 0
	send(t, d, 'h', true)
	send(t, d, 'i', true)
	want := []Op{{Byte: 0x80}, {Byte: 'h', Data: true}, {Byte: 'i', Data: true}}
	if diff := cmp.Diff(want, d.Ops()); diff != "" {
		t.Errorf("trace (-want +got):\n%s", diff)
	}
	if got := d.Line(0)[:2]; got != "hi" {
		t.Errorf("Line(0) = %q", got)
	}
	if addr, cgram := d.AddrCounter(); addr != 2 || cgram {
		t.Errorf("AddrCounter = %#02x cgram=%t", addr, cgram)
	}
}

func TestDecodeSecondRow(t *testing.T) {
	d, err := New(20, 4)
	if err != nil {
		t.Fatal(err)
	}
	send(t, d, 0x94, false) // row 2 on a 20 column module
	send(t, d, 'x', true)
	if got := d.Line(2); got[0] != 'x' {
		t.Errorf("Line(2) = %q", got)
	}
}

func TestClearAndControl(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	send(t, d, 'z', true)
	send(t, d, 0x0f, false) // display, cursor, blink on
	if !d.DisplayOn() || !d.CursorOn() || !d.BlinkOn() {
		t.Error("control flags not decoded")
	}
	send(t, d, 0x01, false) // clear
	if got := d.Line(0); got != strings.Repeat(" ", 16) {
		t.Errorf("Line(0) after clear = %q", got)
	}
	if addr, _ := d.AddrCounter(); addr != 0 {
		t.Errorf("addr after clear = %#02x", addr)
	}
}

func TestCGRAM(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	send(t, d, 0x48, false) // CGRAM slot 1
	pattern := [8]byte{0x04, 0x0e, 0x1f, 0x04, 0x04, 0x04, 0x04, 0x00}
	for _, row := range pattern {
		send(t, d, row, true)
	}
	if got := d.CGRAM(1); got != pattern {
		t.Errorf("CGRAM(1) = %#v", got)
	}
	// Row 1 of the arrow: 0x0e = dots at x 1..3.
	if d.dot(1, 0, 1) || !d.dot(1, 1, 1) || !d.dot(1, 2, 1) || !d.dot(1, 3, 1) || d.dot(1, 4, 1) {
		t.Error("CGRAM dot lookup wrong")
	}
}

func TestShiftAndAutoscroll(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	send(t, d, 0x80, false)
	send(t, d, 'a', true)
	send(t, d, 'b', true)
	send(t, d, 0x18, false) // display shift left
	if got := d.Line(0); got[0] != 'b' {
		t.Errorf("after shift left Line(0) = %q", got)
	}
	send(t, d, 0x1c, false) // display shift right
	if got := d.Line(0); got[0] != 'a' {
		t.Errorf("after shift right Line(0) = %q", got)
	}
	send(t, d, 0x07, false) // entry: increment, autoscroll
	send(t, d, 'c', true)
	// The window followed the write, so the text appears shifted.
	if got := d.Line(0); got[0] != 'b' {
		t.Errorf("after autoscroll write Line(0) = %q", got)
	}
	send(t, d, 0x02, false) // home undoes the shift
	if got := d.Line(0); got[0] != 'a' {
		t.Errorf("after home Line(0) = %q", got)
	}
}

func TestFontDots(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	// '!' is a single column glyph: dots in column 2, rows 0..4 and 6.
	for y := 0; y < 5; y++ {
		if !d.dot('!', 2, y) {
			t.Errorf("'!' missing dot at (2,%d)", y)
		}
	}
	if d.dot('!', 2, 5) || !d.dot('!', 2, 6) {
		t.Error("'!' column profile wrong")
	}
	// Codes outside the ROM render blank.
	for x := 0; x < 5; x++ {
		for y := 0; y < 8; y++ {
			if d.dot(0x10, x, y) {
				t.Fatalf("code 0x10 should be blank, dot at (%d,%d)", x, y)
			}
		}
	}
}

func TestBacklightPin(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Backlight().Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if !d.BacklightOn() {
		t.Error("backlight pin not tracked")
	}
}

func TestGroup(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	g := d.DataPins()
	if got := len(g.Pins()); got != 4 {
		t.Errorf("len(Pins()) = %d", got)
	}
	if p := g.ByName("EMU_D6"); p == nil || p.Number() != 2 {
		t.Errorf("ByName(EMU_D6) = %v", p)
	}
	if p := g.ByOffset(5); p != nil {
		t.Errorf("ByOffset(5) = %v, want nil", p)
	}
	// Individual pin writes latch into the same nibble.
	for ix, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High, gpio.Low} {
		if err := g.ByOffset(ix).(gpio.PinOut).Out(l); err != nil {
			t.Fatal(err)
		}
	}
	e := d.Enable()
	_ = e.Out(gpio.High)
	_ = e.Out(gpio.Low)
	_ = d.DataPins().Out(0x5, 0x0f)
	_ = e.Out(gpio.High)
	_ = e.Out(gpio.Low)
	want := []Op{{Byte: 0x55}}
	if diff := cmp.Diff(want, d.Ops()); diff != "" {
		t.Errorf("trace (-want +got):\n%s", diff)
	}
}

func TestRenderTo(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	send(t, d, 0x0c, false) // display on
	send(t, d, 'A', true)
	var buf bytes.Buffer
	if err := d.RenderTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[") {
		t.Error("RenderTo output has no ANSI escapes")
	}
	if got := strings.Count(out, "\n"); got != 2*8 {
		t.Errorf("RenderTo emitted %d lines, want %d", got, 2*8)
	}
}

func TestImage(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	send(t, d, 0x0c, false)
	send(t, d, 'H', true)
	img := d.Image(2)
	wantBounds := image.Rect(0, 0, (16*cellW+1)*2, (2*cellH+1)*2)
	if img.Bounds() != wantBounds {
		t.Errorf("Image bounds = %v, want %v", img.Bounds(), wantBounds)
	}
	// 'H' has its full left column set; the dot at glyph (0,0) maps to
	// pixel block at ((1+0)*2, (1+0)*2).
	r, g, b, _ := img.At(2, 2).RGBA()
	if byte(r>>8) != dotOn.R || byte(g>>8) != dotOn.G || byte(b>>8) != dotOn.B {
		t.Errorf("pixel (2,2) = %d,%d,%d, want dot color", r>>8, g>>8, b>>8)
	}
}
