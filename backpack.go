// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/mcp23xxx"
	"periph.io/x/devices/v3/nxp74hc595"
	"periph.io/x/devices/v3/pcf857x"
)

// Pin assignment of the common PCF8574 I²C backpacks. The name is the LCD
// line, the value the GPIO number on the expander.
const (
	pcfD4        = 4
	pcfD5        = 5
	pcfD6        = 6
	pcfD7        = 7
	pcfRS        = 0
	pcfRW        = 1
	pcfEnable    = 2
	pcfBacklight = 3
)

// Pin assignment of the Adafruit I2C/SPI LCD backpack. The I²C side uses an
// MCP23008 expander, the SPI side a 74HC595 shift register with the same
// assignment.
const (
	afD4        = 3
	afD5        = 4
	afD6        = 5
	afD7        = 6
	afRS        = 1
	afEnable    = 2
	afBacklight = 7
)

// NewPCF857xBackpack returns an initialized display driven through one of
// the ubiquitous PCF8574 I²C backpack boards.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
func NewPCF857xBackpack(bus i2c.Bus, address uint16, rows, cols int) (*Dev, error) {
	pcf, err := pcf857x.New(bus, address, pcf857x.PCF8574)
	if err != nil {
		return nil, err
	}
	// R/W is wired on this backpack. Hold it low, the driver never reads.
	if err := pcf.Pins[pcfRW].Out(gpio.Low); err != nil {
		return nil, wrap(err)
	}
	gr, err := pcf.Group(pcfD4, pcfD5, pcfD6, pcfD7)
	if err != nil {
		return nil, err
	}
	return newBackpack(gr, pcf.Pins[pcfRS], pcf.Pins[pcfEnable], pcf.Pins[pcfBacklight], rows, cols)
}

// NewAdafruitI2CBackpack returns an initialized display driven through the
// I²C side of the Adafruit I2C/SPI LCD backpack (MCP23008 expander).
//
// # Product Information
//
// https://www.adafruit.com/product/292
func NewAdafruitI2CBackpack(bus i2c.Bus, address uint16, rows, cols int) (*Dev, error) {
	mcp, err := mcp23xxx.NewI2C(bus, mcp23xxx.MCP23008, address)
	if err != nil {
		return nil, err
	}
	gr := *mcp.Group(0, []int{afD4, afD5, afD6, afD7, afRS, afEnable, afBacklight})
	rs, _ := gr.ByOffset(4).(gpio.PinOut)
	enable, _ := gr.ByOffset(5).(gpio.PinOut)
	backlight, _ := gr.ByOffset(6).(gpio.PinOut)
	return newBackpack(gr, rs, enable, backlight, rows, cols)
}

// NewAdafruitSPIBackpack returns an initialized display driven through the
// SPI side of the Adafruit backpack (74HC595 shift register).
func NewAdafruitSPIBackpack(conn spi.Conn, rows, cols int) (*Dev, error) {
	chip, err := nxp74hc595.New(conn)
	if err != nil {
		return nil, err
	}
	// The SPI side has the data pins in reverse order from the I2C side.
	gr, err := chip.Group(afD7, afD6, afD5, afD4)
	if err != nil {
		return nil, err
	}
	return newBackpack(gr, chip.Pins[afRS], chip.Pins[afEnable], chip.Pins[afBacklight], rows, cols)
}

func newBackpack(data gpio.Group, rs, enable, backlight gpio.PinOut, rows, cols int) (*Dev, error) {
	b, err := NewBus(data, rs, enable, backlight)
	if err != nil {
		return nil, err
	}
	dev, err := New(b, rows, cols)
	if err != nil {
		return nil, err
	}
	if err := dev.Init(); err != nil {
		return nil, err
	}
	if err := dev.Display(true); err != nil {
		return nil, err
	}
	_ = dev.Backlight(0xff)
	return dev, nil
}
