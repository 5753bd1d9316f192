// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdemu

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

type pinRole int

const (
	roleRS pinRole = iota
	roleEnable
	roleBacklight
)

// emuPin is a write-only pin of the emulated module.
type emuPin struct {
	dev    *Dev
	name   string
	number int
	role   pinRole
}

func (p *emuPin) Halt() error {
	return nil
}

func (p *emuPin) Name() string {
	return p.name
}

func (p *emuPin) Number() int {
	return p.number
}

// Deprecated: returns "Out"
func (p *emuPin) Function() string {
	return "Out"
}

func (p *emuPin) Out(l gpio.Level) error {
	switch p.role {
	case roleRS:
		p.dev.rs = bool(l)
	case roleEnable:
		rising := !p.dev.enable && bool(l)
		p.dev.enable = bool(l)
		if rising {
			p.dev.strobe()
		}
	case roleBacklight:
		p.dev.backlight = bool(l)
	}
	return nil
}

func (p *emuPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *emuPin) String() string {
	return p.name
}

// group is the emulated module's 4 data lines as a gpio.Group.
type group struct {
	dev *Dev
}

func (gr *group) Pins() []pin.Pin {
	result := make([]pin.Pin, 4)
	for ix := range result {
		result[ix] = gr.pin(ix)
	}
	return result
}

func (gr *group) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= 4 {
		return nil
	}
	return gr.pin(offset)
}

func (gr *group) ByName(name string) pin.Pin {
	for ix := range 4 {
		if p := gr.pin(ix); p.Name() == name {
			return p
		}
	}
	return nil
}

func (gr *group) ByNumber(number int) pin.Pin {
	return gr.ByOffset(number)
}

func (gr *group) pin(number int) *dataPin {
	return &dataPin{dev: gr.dev, number: number}
}

// Out latches the masked bits onto the data lines. The nibble is only
// sampled by the strobe on the enable line.
func (gr *group) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = 0x0f
	}
	gr.dev.dataValue = (gr.dev.dataValue &^ mask) | (value & mask)
	return nil
}

func (gr *group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	return 0, ErrNotImplemented
}

func (gr *group) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, ErrNotImplemented
}

func (gr *group) Halt() error {
	return nil
}

func (gr *group) String() string {
	return "lcdemu[ 0 1 2 3 ]"
}

// dataPin is one of the emulated data lines, usable on its own.
type dataPin struct {
	dev    *Dev
	number int
}

func (p *dataPin) Halt() error {
	return nil
}

func (p *dataPin) Name() string {
	return p.String()
}

func (p *dataPin) Number() int {
	return p.number
}

// Deprecated: returns "Out"
func (p *dataPin) Function() string {
	return "Out"
}

func (p *dataPin) Out(l gpio.Level) error {
	v := gpio.GPIOValue(0)
	if l {
		v = 1 << p.number
	}
	return (&group{dev: p.dev}).Out(v, 1<<p.number)
}

func (p *dataPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *dataPin) String() string {
	return "EMU_D" + string(rune('4'+p.number))
}

var _ gpio.PinOut = &emuPin{}
var _ gpio.PinOut = &dataPin{}
var _ gpio.Group = &group{}
