// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

import (
	pgpio "periph.io/x/conn/v3/gpio"
)

// exti adds the interrupt line operations shared by inputs and outputs.
type exti[I PinID] struct{ pin[I] }

// Input is a pin configured as digital input.
type Input[I PinID] struct{ exti[I] }

// Output is a pin driven by its output latch.
type Output[I PinID, O OutputType] struct{ exti[I] }

// Analog disconnects the digital input stage, as needed for ADC and DAC
// channels.
type Analog[I PinID] struct{ pin[I] }

// Alternate hands the pin to the peripheral selected by A.
type Alternate[I PinID, A AF] struct{ pin[I] }

// Debugger is the reset state of the SWD/JTAG pins: alternate function 0
// with the pulls the debug port expects.
type Debugger[I PinID] struct{ pin[I] }

func newInput[I PinID](b *bank) Input[I]       { return Input[I]{exti[I]{newPin[I](b)}} }
func newDebugger[I PinID](b *bank) Debugger[I] { return Debugger[I]{newPin[I](b)} }

func (p Input[I]) IsHigh() bool {
	p.check()
	return p.b.input(p.n())
}

func (p Input[I]) IsLow() bool { return !p.IsHigh() }

func (p Input[I]) Read() pgpio.Level { return pgpio.Level(p.IsHigh()) }

func (p Output[I, O]) SetHigh() {
	p.check()
	p.b.set(p.n())
}

func (p Output[I, O]) SetLow() {
	p.check()
	p.b.reset(p.n())
}

func (p Output[I, O]) SetState(l pgpio.Level) {
	p.check()
	p.b.write(p.n(), bool(l))
}

func (p Output[I, O]) Toggle() {
	p.check()
	p.b.toggle(p.n())
}

// IsSetHigh reports the output latch, not the pin level.
func (p Output[I, O]) IsSetHigh() bool {
	p.check()
	return p.b.output(p.n())
}

func (p Output[I, O]) IsSetLow() bool { return !p.IsSetHigh() }

// IsHigh reads the pin level. For open drain outputs this shows whether
// another device pulls the line low.
func (p Output[I, O]) IsHigh() bool {
	p.check()
	return p.b.input(p.n())
}

func (p Output[I, O]) SetSpeed(s Speed) {
	p.check()
	p.b.setSpeed(p.n(), s)
}

func (p Alternate[I, A]) SetSpeed(s Speed) {
	p.check()
	p.b.setSpeed(p.n(), s)
}

func (p Alternate[I, A]) SetPull(pull Pull) {
	p.check()
	p.b.setPull(p.n(), pull)
}

// SetOpenDrain switches the output stage, e.g. for I2C lines.
func (p Alternate[I, A]) SetOpenDrain() {
	p.check()
	p.b.setOpenDrain(p.n(), true)
}

func (p Alternate[I, A]) SetPushPull() {
	p.check()
	p.b.setOpenDrain(p.n(), false)
}

// Signal returns the name of the peripheral signal the pin carries, e.g.
// "USART2_TX".
func (p Alternate[I, A]) Signal() string {
	var id I
	var af A
	s, _ := signalOf(id.Port(), id.Number(), af.Number())
	return s
}
