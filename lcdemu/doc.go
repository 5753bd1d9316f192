// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdemu emulates an HD44780 character LCD wired in 4 bit mode.
//
// The emulator implements the controller side of the bus: it hands out a
// gpio.Group for the data lines and gpio.PinOut register select, enable and
// backlight pins, latches a nibble on every enable strobe, pairs nibbles
// into bytes and interprets the HD44780 instruction set, maintaining DDRAM,
// CGRAM and the mode flags exactly like the real chip.
//
// Useful while you are waiting for your 16x2 module to come by mail, and as
// a verification harness: the decoded instruction trace is recorded and the
// display content can be inspected row by row, rendered to the terminal
// with ANSI colors, or rendered to an image of the 5x8 dot matrix.
package lcdemu
