// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdemu

import (
	"image/color"
	"io"

	"github.com/mattn/go-colorable"
)

// LCD-ish colors: dark dots on a green field when the backlight is on, a
// murky grey field when it is off. A blank field when the display itself is
// commanded off.
var (
	dotOn    = color.NRGBA{0x10, 0x28, 0x10, 255}
	fieldLit = color.NRGBA{0x60, 0xc8, 0x30, 255}
	fieldDim = color.NRGBA{0x50, 0x58, 0x48, 255}
)

// Render draws the dot matrix to the terminal (stdout) using ANSI color
// codes, one colored block per dot.
func (d *Dev) Render() error {
	return d.RenderTo(colorable.NewColorableStdout())
}

// RenderTo draws the dot matrix to w.
func (d *Dev) RenderTo(w io.Writer) error {
	field := fieldLit
	if !d.backlight {
		field = fieldDim
	}
	// This code is designed to minimize the amount of memory allocated per
	// call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[0m")
	for row := 0; row < d.rows; row++ {
		line := d.Line(row)
		for y := 0; y < 8; y++ {
			for c := 0; c < d.cols; c++ {
				for x := 0; x < 5; x++ {
					px := field
					if d.DisplayOn() && d.dot(line[c], x, y) {
						px = dotOn
					}
					_, _ = io.WriteString(&d.buf, d.palette.Block(px))
				}
				// Inter-character gap.
				_, _ = io.WriteString(&d.buf, d.palette.Block(field))
			}
			_, _ = d.buf.WriteString("\033[0m\n")
		}
	}
	_, _ = d.buf.WriteString("\033[0m")
	_, err := d.buf.WriteTo(w)
	return err
}
