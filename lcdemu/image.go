// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdemu

import (
	"image"

	"github.com/fogleman/gg"
)

// Cell geometry in dots, including the gaps between characters.
const (
	cellW = 6
	cellH = 9
)

// Image renders the visible dot matrix into an image, scale pixels per dot.
// Handy for golden screenshots in tests and for documentation.
func (d *Dev) Image(scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	w := (d.cols*cellW + 1) * scale
	h := (d.rows*cellH + 1) * scale
	dc := gg.NewContext(w, h)
	field := fieldLit
	if !d.backlight {
		field = fieldDim
	}
	dc.SetColor(field)
	dc.Clear()
	if !d.DisplayOn() {
		return dc.Image()
	}
	dc.SetColor(dotOn)
	for row := 0; row < d.rows; row++ {
		line := d.Line(row)
		for c := 0; c < d.cols; c++ {
			for y := 0; y < 8; y++ {
				for x := 0; x < 5; x++ {
					if !d.dot(line[c], x, y) {
						continue
					}
					dc.DrawRectangle(
						float64((1+c*cellW+x)*scale),
						float64((1+row*cellH+y)*scale),
						float64(scale), float64(scale))
				}
			}
		}
	}
	dc.Fill()
	return dc.Image()
}
