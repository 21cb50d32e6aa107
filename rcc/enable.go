// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package rcc

import (
	"github.com/bbnote/gostm32f4/reg"
)

// Bus is an interconnect with its own enable, reset and low power enable
// registers.
type Bus uint8

const (
	AHB1 Bus = iota
	AHB2
	AHB3
	APB1
	APB2
)

func (b Bus) String() string {
	return [...]string{"AHB1", "AHB2", "AHB3", "APB1", "APB2"}[b]
}

// Peripheral names a block with an RCC enable bit. The constants are
// declared per chip family, so naming a block the target lacks does not
// compile.
type Peripheral uint8

type busBit struct {
	name string
	bus  Bus
	bit  uint8
}

func (p Peripheral) info() busBit {
	return peripheralTable[p]
}

func (p Peripheral) String() string { return p.info().name }

// Bus returns the bus p is clocked from.
func (p Peripheral) Bus() Bus { return p.info().bus }

// Bit returns the position of p in its bus' ENR, RSTR and LPENR registers.
func (p Peripheral) Bit() uint8 { return p.info().bit }

// Peripherals lists every peripheral of the target family.
func Peripherals() []Peripheral {
	out := make([]Peripheral, len(peripheralTable))
	for i := range out {
		out[i] = Peripheral(i)
	}
	return out
}

// GPIOPort returns the peripheral of GPIO port i, 0 for GPIOA.
func GPIOPort(i uint8) (Peripheral, bool) {
	if int(i) >= len(gpioPorts) || gpioPorts[i] == noPort {
		return 0, false
	}
	return gpioPorts[i], true
}

func (r *RCC) enr(b Bus) reg.Register32 {
	return [...]reg.Register32{r.regs.AHB1ENR, r.regs.AHB2ENR, r.regs.AHB3ENR, r.regs.APB1ENR, r.regs.APB2ENR}[b]
}

func (r *RCC) rstr(b Bus) reg.Register32 {
	return [...]reg.Register32{r.regs.AHB1RSTR, r.regs.AHB2RSTR, r.regs.AHB3RSTR, r.regs.APB1RSTR, r.regs.APB2RSTR}[b]
}

func (r *RCC) lpenr(b Bus) reg.Register32 {
	return [...]reg.Register32{r.regs.AHB1LPENR, r.regs.AHB2LPENR, r.regs.AHB3LPENR, r.regs.APB1LPENR, r.regs.APB2LPENR}[b]
}

// Enable turns on the clock of p. The enable register is read back
// afterwards; the device errata require a delay between enabling a clock
// and the first access to the peripheral.
func (r *RCC) Enable(p Peripheral) {
	i := p.info()
	enr := r.enr(i.bus)
	enr.Bit(i.bit).Set()
	_ = enr.Get()
}

func (r *RCC) Disable(p Peripheral) {
	i := p.info()
	r.enr(i.bus).Bit(i.bit).Clear()
}

func (r *RCC) IsEnabled(p Peripheral) bool {
	i := p.info()
	return r.enr(i.bus).Bit(i.bit).Get()
}

// Reset pulses the reset line of p.
func (r *RCC) Reset(p Peripheral) {
	i := p.info()
	b := r.rstr(i.bus).Bit(i.bit)
	b.Set()
	b.Clear()
}

// EnableLowPower keeps p clocked in sleep mode.
func (r *RCC) EnableLowPower(p Peripheral) {
	i := p.info()
	r.lpenr(i.bus).Bit(i.bit).Set()
}

func (r *RCC) DisableLowPower(p Peripheral) {
	i := p.info()
	r.lpenr(i.bus).Bit(i.bit).Clear()
}

const noPort Peripheral = 0xff
