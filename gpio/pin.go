// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

import (
	"fmt"
	"sync/atomic"

	pgpio "periph.io/x/conn/v3/gpio"
)

// pinState is shared by every handle ever derived from one pin. Only the
// handle whose generation matches may touch the pin.
type pinState struct {
	gen atomic.Uint32
}

// pin is the handle embedded in every mode type.
type pin[I PinID] struct {
	b   *bank
	gen uint32
}

// Pin is satisfied by every mode type of pin I.
type Pin[I PinID] interface {
	handle() pin[I]
}

func newPin[I PinID](b *bank) pin[I] {
	var id I
	return pin[I]{b: b, gen: b.pins[id.Number()].gen.Load()}
}

func (p pin[I]) handle() pin[I] { return p }

func (p pin[I]) n() uint8 {
	var id I
	return id.Number()
}

func (p pin[I]) state() *pinState {
	return &p.b.pins[p.n()]
}

// Name returns the datasheet name of the pin, e.g. "PA5".
func (p pin[I]) Name() string {
	var id I
	return pinName(id.Port(), id.Number())
}

func (p pin[I]) check() {
	if p.b == nil {
		panic(fmt.Errorf("%w: zero handle", ErrPinMoved))
	}
	if p.state().gen.Load() != p.gen {
		panic(fmt.Errorf("%w: %s", ErrPinMoved, p.Name()))
	}
}

// take invalidates p and returns the handle that replaces it.
func (p pin[I]) take() pin[I] {
	p.check()
	st := p.state()
	if !st.gen.CompareAndSwap(p.gen, p.gen+1) {
		panic(fmt.Errorf("%w: %s", ErrPinMoved, p.Name()))
	}
	p.gen++
	return p
}

func (p pin[I]) IntoFloatingInput() Input[I] {
	p = p.take()
	p.b.intoInput(p.n(), PullNone)
	return Input[I]{exti[I]{p}}
}

func (p pin[I]) IntoPullUpInput() Input[I] {
	p = p.take()
	p.b.intoInput(p.n(), PullUp)
	return Input[I]{exti[I]{p}}
}

func (p pin[I]) IntoPullDownInput() Input[I] {
	p = p.take()
	p.b.intoInput(p.n(), PullDown)
	return Input[I]{exti[I]{p}}
}

// IntoPushPullOutput drives the pin low.
func (p pin[I]) IntoPushPullOutput() Output[I, PushPull] {
	return p.IntoPushPullOutputInState(pgpio.Low)
}

// IntoPushPullOutputInState sets the output latch before the pin starts
// driving, so no glitch to the other level is visible.
func (p pin[I]) IntoPushPullOutputInState(l pgpio.Level) Output[I, PushPull] {
	p = p.take()
	p.b.intoOutput(p.n(), false, bool(l))
	return Output[I, PushPull]{exti[I]{p}}
}

// IntoOpenDrainOutput leaves the pin released (latch high).
func (p pin[I]) IntoOpenDrainOutput() Output[I, OpenDrain] {
	return p.IntoOpenDrainOutputInState(pgpio.High)
}

func (p pin[I]) IntoOpenDrainOutputInState(l pgpio.Level) Output[I, OpenDrain] {
	p = p.take()
	p.b.intoOutput(p.n(), true, bool(l))
	return Output[I, OpenDrain]{exti[I]{p}}
}

func (p pin[I]) IntoAnalog() Analog[I] {
	p = p.take()
	p.b.intoAnalog(p.n())
	return Analog[I]{p}
}

// Erase trades the static identity for a runtime checked pin.
func (p pin[I]) Erase() *ErasedPin {
	p = p.take()
	return &ErasedPin{b: p.b, n: p.n(), gen: p.gen}
}

func intoAlternate[I PinID, A AF](p pin[I]) Alternate[I, A] {
	var af A
	p = p.take()
	p.b.intoAlternate(p.n(), af.Number())
	return Alternate[I, A]{p}
}
