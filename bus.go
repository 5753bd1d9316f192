// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Timing constants, derived from the HD44780U worst case figures at the
// slowest supported oscillator. They are deliberately not configurable:
// the controller family is not speed rated tightly enough for tuning to be
// worth the misconfiguration risk.
const (
	// enablePulse is the minimum width of the enable strobe. The datasheet
	// minimum is 450ns; one microsecond is the shortest sleep worth asking
	// the host for.
	enablePulse = 1 * time.Microsecond
	// addressHold is the wait after dropping enable before the lines may
	// change again.
	addressHold = 50 * time.Microsecond
	// settleShort is the execution time of every instruction except clear
	// and home (37µs plus margin).
	settleShort = 50 * time.Microsecond
	// settleLong is the execution time of clear and home, which sweep the
	// whole of DDRAM (1.52ms plus margin).
	settleLong = 2 * time.Millisecond
)

// Bus clocks nibbles and bytes into an HD44780 wired in 4 bit mode. It owns
// the pins for its lifetime and has no knowledge of command semantics: the
// settle delay after a byte is supplied by the caller, since only the layer
// that framed the command knows whether it was a long running one.
//
// Every call is flushed to the pins before it returns, there is no buffering.
type Bus struct {
	data      gpio.Group
	rs        gpio.PinOut
	enable    gpio.PinOut
	backlight gpio.PinOut
}

// NewBus returns a Bus over the given lines.
//
// The first 4 pins of the data group must be the display's D4..D7 lines in
// that order (least significant bit first); additional pins in the group are
// left alone. backlight may be nil if the backlight is hard wired.
func NewBus(data gpio.Group, rs, enable, backlight gpio.PinOut) (*Bus, error) {
	if data == nil || len(data.Pins()) < 4 {
		return nil, wrap(errors.New("data group must contain at least 4 pins"))
	}
	if rs == nil || enable == nil {
		return nil, wrap(errors.New("rs and enable pins are required"))
	}
	b := &Bus{data: data, rs: rs, enable: enable, backlight: backlight}
	if err := b.enable.Out(gpio.Low); err != nil {
		return nil, wrap(err)
	}
	return b, nil
}

// SendNibble drives the register select line per data, the data lines to the
// low 4 bits of value, and strobes enable with the mandated timing.
func (b *Bus) SendNibble(value byte, data bool) error {
	if err := b.rs.Out(gpio.Level(data)); err != nil {
		return wrap(err)
	}
	if err := b.data.Out(gpio.GPIOValue(value), 0x0f); err != nil {
		return wrap(err)
	}
	if err := b.enable.Out(gpio.High); err != nil {
		return wrap(err)
	}
	time.Sleep(enablePulse)
	if err := b.enable.Out(gpio.Low); err != nil {
		return wrap(err)
	}
	time.Sleep(addressHold)
	return nil
}

// SendByte sends the high nibble then the low nibble of value, then waits
// settle for the controller to execute.
func (b *Bus) SendByte(value byte, data bool, settle time.Duration) error {
	if err := b.SendNibble(value>>4, data); err != nil {
		return err
	}
	if err := b.SendNibble(value&0x0f, data); err != nil {
		return err
	}
	time.Sleep(settle)
	return nil
}

// SetBacklight turns the backlight line on or off. It is a no-op when no
// backlight pin was supplied.
func (b *Bus) SetBacklight(on bool) error {
	if b.backlight == nil {
		return nil
	}
	return wrap(b.backlight.Out(gpio.Level(on)))
}

// Halt releases the data group.
func (b *Bus) Halt() error {
	return b.data.Halt()
}

func (b *Bus) String() string {
	return packageName + "." + b.data.String()
}
