// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package delay implements blocking delays on the SysTick timer.
package delay

import (
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/rcc"
)

// maxTicks is the longest single countdown: LOAD holds ticks-1 in 24 bits.
const maxTicks = stm32f4.SysTick_LOAD_RELOAD_Msk + 1

// Delay owns the SysTick timer. It counts at the frozen HCLK, or at
// HCLK/8 when built with NewExternal.
type Delay struct {
	syst   *stm32f4.SysTick_Type
	hz     uint64
	source uint32
}

func New(syst *stm32f4.SysTick_Type, clocks rcc.Clocks) *Delay {
	return &Delay{
		syst:   syst,
		hz:     uint64(clocks.HCLK() / physic.Hertz),
		source: stm32f4.SysTick_CTRL_CLKSOURCE,
	}
}

// NewExternal uses the HCLK/8 reference, which allows eight times longer
// single countdowns at the cost of resolution.
func NewExternal(syst *stm32f4.SysTick_Type, clocks rcc.Clocks) *Delay {
	return &Delay{
		syst: syst,
		hz:   uint64(clocks.HCLK()/physic.Hertz) / 8,
	}
}

// Frequency returns the tick rate.
func (d *Delay) Frequency() physic.Frequency {
	return physic.Frequency(d.hz) * physic.Hertz
}

func (d *Delay) DelayUs(us uint32) {
	d.wait(uint64(us) * d.hz / 1000000)
}

func (d *Delay) DelayMs(ms uint32) {
	d.wait(uint64(ms) * d.hz / 1000)
}

// Delay waits for dur, rounded down to whole ticks.
func (d *Delay) Delay(dur time.Duration) {
	if dur <= 0 {
		return
	}
	sec := uint64(dur / time.Second)
	ns := uint64(dur % time.Second)
	d.wait(sec*d.hz + ns*d.hz/uint64(time.Second))
}

// wait counts ticks down in chunks that fit the reload register.
func (d *Delay) wait(ticks uint64) {
	for ticks > 0 {
		n := ticks
		if n > maxTicks {
			n = maxTicks
		}
		reload := uint32(n - 1)
		if reload == 0 {
			reload = 1
		}
		d.syst.LOAD.Set(reload)
		d.syst.VAL.Set(0)
		d.syst.CTRL.Set(stm32f4.SysTick_CTRL_ENABLE | d.source)
		for !d.syst.CTRL.HasBits(stm32f4.SysTick_CTRL_COUNTFLAG) {
		}
		d.syst.CTRL.Set(0)
		ticks -= n
	}
}
