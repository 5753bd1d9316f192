// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

import "strings"

// Alignment selects how Message justifies text within a row.
type Alignment int

const (
	// AlignNone writes the text as-is.
	AlignNone Alignment = iota
	// AlignLeft pads the text with spaces to the row width.
	AlignLeft
	// AlignCenter centers the text within the row width.
	AlignCenter
	// AlignRight right-justifies the text within the row width.
	AlignRight
)

// Message writes text at the cursor, optionally padded with spaces to the
// display width. The cursor should be at column 0 for padded alignments,
// e.g. after SetLine, Clear or Home; otherwise the padding lands off the
// intended row. Text longer than the row is written as-is.
func (d *Dev) Message(text string, align Alignment) (int, error) {
	if pad := d.cols - len(text); pad > 0 {
		switch align {
		case AlignLeft:
			text += strings.Repeat(" ", pad)
		case AlignCenter:
			text = strings.Repeat(" ", pad/2) + text + strings.Repeat(" ", pad-pad/2)
		case AlignRight:
			text = strings.Repeat(" ", pad) + text
		}
	}
	return d.WriteString(text)
}
