// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package rcc

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/physic"

	"github.com/bbnote/gostm32f4/chip"
)

// Clocks is the frozen clock tree. Peripheral drivers derive their own
// prescalers from it.
type Clocks struct {
	chip   *chip.Params
	source Source

	sysclk  uint32
	hclk    uint32
	pclk1   uint32
	pclk2   uint32
	timclk1 uint32
	timclk2 uint32
	ppre1   uint32
	ppre2   uint32

	pll        PLLParams
	hasPLL     bool
	pll48      uint32
	pll48Valid bool

	i2s uint32
	sai uint32
}

func (c Clocks) Chip() *chip.Params { return c.chip }

// Source returns the system clock mux input.
func (c Clocks) Source() Source { return c.source }

func (c Clocks) Sysclk() physic.Frequency  { return hz(c.sysclk) }
func (c Clocks) HCLK() physic.Frequency    { return hz(c.hclk) }
func (c Clocks) PCLK1() physic.Frequency   { return hz(c.pclk1) }
func (c Clocks) PCLK2() physic.Frequency   { return hz(c.pclk2) }
func (c Clocks) TimClk1() physic.Frequency { return hz(c.timclk1) }
func (c Clocks) TimClk2() physic.Frequency { return hz(c.timclk2) }

// PPRE1 returns the APB1 divider.
func (c Clocks) PPRE1() uint32 { return c.ppre1 }

// PPRE2 returns the APB2 divider.
func (c Clocks) PPRE2() uint32 { return c.ppre2 }

// PLL returns the main PLL dividers if the PLL runs.
func (c Clocks) PLL() (PLLParams, bool) { return c.pll, c.hasPLL }

// PLL48CLK returns the 48 MHz domain clock if the PLL runs.
func (c Clocks) PLL48CLK() (physic.Frequency, bool) {
	return hz(c.pll48), c.hasPLL
}

// IsPLL48CLKValid reports whether the 48 MHz domain is within the USB
// tolerance.
func (c Clocks) IsPLL48CLKValid() bool { return c.pll48Valid }

func (c Clocks) I2SCLK() (physic.Frequency, bool) { return hz(c.i2s), c.i2s != 0 }

func (c Clocks) SAICLK() (physic.Frequency, bool) { return hz(c.sai), c.sai != 0 }

// BusClock returns the clock of the bus p is attached to.
func (c Clocks) BusClock(p Peripheral) physic.Frequency {
	switch p.Bus() {
	case APB1:
		return hz(c.pclk1)
	case APB2:
		return hz(c.pclk2)
	}
	return hz(c.hclk)
}

// TimerClock returns the kernel clock of the timer p.
func (c Clocks) TimerClock(p Peripheral) physic.Frequency {
	switch p.Bus() {
	case APB1:
		return hz(c.timclk1)
	case APB2:
		return hz(c.timclk2)
	}
	return hz(c.hclk)
}

func (c Clocks) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sysclk=%s (%s) hclk=%s pclk1=%s pclk2=%s", c.Sysclk(), c.source, c.HCLK(), c.PCLK1(), c.PCLK2())
	if c.hasPLL {
		fmt.Fprintf(&b, " pll48clk=%s", hz(c.pll48))
		if !c.pll48Valid {
			b.WriteString(" (out of tolerance)")
		}
	}
	if c.i2s != 0 {
		fmt.Fprintf(&b, " i2sclk=%s", hz(c.i2s))
	}
	if c.sai != 0 {
		fmt.Fprintf(&b, " saiclk=%s", hz(c.sai))
	}
	return b.String()
}
