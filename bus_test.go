// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/charlcd/lcdemu"
)

func TestNewBusValidation(t *testing.T) {
	emu, err := lcdemu.New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewBus(nil, emu.RS(), emu.Enable(), nil); err == nil {
		t.Error("NewBus with nil group should fail")
	}
	if _, err := NewBus(emu.DataPins(), nil, emu.Enable(), nil); err == nil {
		t.Error("NewBus with nil rs should fail")
	}
	if _, err := NewBus(emu.DataPins(), emu.RS(), nil, nil); err == nil {
		t.Error("NewBus with nil enable should fail")
	}
	if _, err := NewBus(emu.DataPins(), emu.RS(), emu.Enable(), nil); err != nil {
		t.Errorf("NewBus without backlight: %v", err)
	}
}

// SendByte must clock the high nibble first; the decoder on the other side
// reassembles the original byte.
func TestSendByteNibbleOrder(t *testing.T) {
	emu, err := lcdemu.New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	bus, err := NewBus(emu.DataPins(), emu.RS(), emu.Enable(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.SendByte(0xa5, false, settleShort); err != nil {
		t.Fatal(err)
	}
	if err := bus.SendByte(0x5a, true, settleShort); err != nil {
		t.Fatal(err)
	}
	want := []lcdemu.Op{{Byte: 0xa5}, {Byte: 0x5a, Data: true}}
	if diff := cmp.Diff(want, emu.Ops()); diff != "" {
		t.Errorf("byte framing (-want +got):\n%s", diff)
	}
}

var errPin = errors.New("pin broke")

// failPin errors on the nth Out call.
type failPin struct {
	gpiotest.Pin
	calls  int
	failAt int
}

func (p *failPin) Out(l gpio.Level) error {
	p.calls++
	if p.calls >= p.failAt {
		return errPin
	}
	return p.Pin.Out(l)
}

func (p *failPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errPin
}

func TestTransportErrorPropagates(t *testing.T) {
	emu, err := lcdemu.New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Fail on the falling edge of the first strobe, after rs and the data
	// lines were already driven.
	enable := &failPin{Pin: gpiotest.Pin{N: "E", Num: 5}, failAt: 3}
	bus, err := NewBus(emu.DataPins(), emu.RS(), enable, nil)
	if err != nil {
		t.Fatal(err)
	}
	dev, err := New(bus, 2, 16)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Init(); !errors.Is(err, errPin) {
		t.Errorf("Init with broken enable = %v, want errPin", err)
	}
	// The operation is fatal to the command in flight, there is no retry.
	if got := emu.Ops(); len(got) != 0 {
		t.Errorf("broken transport still delivered %d instructions", len(got))
	}
}

func TestTransportErrorOnRS(t *testing.T) {
	emu, err := lcdemu.New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	rs := &failPin{Pin: gpiotest.Pin{N: "RS", Num: 4}, failAt: 1}
	bus, err := NewBus(emu.DataPins(), rs, emu.Enable(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.SendNibble(0x3, false); !errors.Is(err, errPin) {
		t.Errorf("SendNibble with broken rs = %v, want errPin", err)
	}
}
