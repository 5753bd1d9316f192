// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charlcd controls HD44780 compatible character LCD modules wired in
// write-only 4 bit mode.
//
// The driver is split in two layers. Bus owns the four data lines, the
// register select line, the enable line, and an optional backlight line, and
// knows how to clock nibbles and bytes into the controller with the mandated
// timing. Dev sits on top of Bus and owns the controller protocol: the power
// on handshake, command encoding, cursor addressing, CGRAM glyph programming,
// and a host side mirror of the display mode bits. The mirror is required
// because the R/W line is not wired in this configuration, so the controller
// can never be read back.
//
// The data lines are passed as a gpio.Group with the least significant bit
// first (D4..D7 on the module). Any I/O device that provides gpio.Group and
// gpio.PinOut can drive a display: memory mapped GPIO, a character device via
// gpioioctl, or an I²C/SPI GPIO expander. Constructors for the common
// PCF8574 and Adafruit I²C/SPI backpacks are provided.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package charlcd
