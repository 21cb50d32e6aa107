// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package rcc

import (
	"math"

	"periph.io/x/conn/v3/physic"

	"github.com/bbnote/gostm32f4/chip"
)

const (
	HSI = 16 * physic.MegaHertz

	PLL48 = 48 * physic.MegaHertz
	// PLL48Tolerance is the accepted deviation of the 48 MHz domain, 0.25 %.
	PLL48Tolerance = 120 * physic.KiloHertz

	// DefaultPollLimit bounds every wait for a hardware status bit.
	DefaultPollLimit = 1 << 20
)

// Config collects the requested clock tree. Setters return a modified copy
// so a configuration reads as one chained expression:
//
//	cfg := rcc.NewConfig().HSE(8 * physic.MegaHertz).Sysclk(168 * physic.MegaHertz).RequirePLL48CLK()
//
// A setter given an invalid value records the error, which is reported by
// Plan and Freeze.
type Config struct {
	hse       uint32
	hseBypass bool

	sysclkMin uint32
	sysclk    uint32
	hclk      uint32
	pclk1     uint32
	pclk2     uint32

	pll48 bool
	i2s   uint32
	sai   uint32

	manual *PLLParams

	vr        chip.VoltageRange
	chip      *chip.Params
	pollLimit uint32

	err error
}

func NewConfig() Config {
	return Config{pollLimit: DefaultPollLimit}
}

func toHz(f physic.Frequency) (uint32, error) {
	if f <= 0 || f/physic.Hertz > math.MaxUint32 {
		return 0, solveErr(ErrFrequencyRange, "%s", f)
	}
	return uint32(f / physic.Hertz), nil
}

func fromHz(v uint32) physic.Frequency {
	return physic.Frequency(v) * physic.Hertz
}

func (c *Config) set(dst *uint32, f physic.Frequency) {
	v, err := toHz(f)
	if err != nil && c.err == nil {
		c.err = err
	}
	*dst = v
}

// HSE selects an external crystal of frequency f as clock source.
func (c Config) HSE(f physic.Frequency) Config {
	c.set(&c.hse, f)
	return c
}

// BypassHSE drives HSE from an external clock instead of a crystal.
func (c Config) BypassHSE() Config {
	c.hseBypass = true
	return c
}

// UseHSI drops a previously selected HSE.
func (c Config) UseHSI() Config {
	c.hse = 0
	c.hseBypass = false
	return c
}

// Sysclk requests an exact system clock. Up to 0.5 % below f is accepted if
// f cannot be reached exactly.
func (c Config) Sysclk(f physic.Frequency) Config {
	c.set(&c.sysclk, f)
	c.sysclkMin = c.sysclk - c.sysclk/200
	return c
}

// SysclkRange accepts any system clock in [min, max].
func (c Config) SysclkRange(min, max physic.Frequency) Config {
	c.set(&c.sysclkMin, min)
	c.set(&c.sysclk, max)
	if c.sysclkMin > c.sysclk && c.err == nil {
		c.err = solveErr(ErrInvalidConfig, "sysclk range %s..%s is empty", min, max)
	}
	return c
}

func (c Config) HCLK(f physic.Frequency) Config {
	c.set(&c.hclk, f)
	return c
}

func (c Config) PCLK1(f physic.Frequency) Config {
	c.set(&c.pclk1, f)
	return c
}

func (c Config) PCLK2(f physic.Frequency) Config {
	c.set(&c.pclk2, f)
	return c
}

// RequirePLL48CLK makes the 48 MHz domain (USB OTG, SDIO, RNG) a hard
// constraint of the PLL search.
func (c Config) RequirePLL48CLK() Config {
	c.pll48 = true
	return c
}

// I2SCLK requests the PLLI2S output.
func (c Config) I2SCLK(f physic.Frequency) Config {
	c.set(&c.i2s, f)
	return c
}

// SAICLK requests the PLLSAI Q output after its DIVQ divider.
func (c Config) SAICLK(f physic.Frequency) Config {
	c.set(&c.sai, f)
	return c
}

// PLL overrides the search with explicit dividers. They are still checked
// against the chip limits.
func (c Config) PLL(m, n, p, q uint32) Config {
	c.manual = &PLLParams{M: m, N: n, P: p, Q: q}
	return c
}

func (c Config) VoltageRange(vr chip.VoltageRange) Config {
	c.vr = vr
	return c
}

// Chip plans for another family than the RCC the config is handed to. It is
// meant for offline planning.
func (c Config) Chip(p *chip.Params) Config {
	c.chip = p
	return c
}

// PollLimit caps every hardware wait at n status reads; 0 waits forever.
func (c Config) PollLimit(n uint32) Config {
	c.pollLimit = n
	return c
}

// source returns the oscillator feeding the PLL and system clock mux.
func (c Config) source() (uint32, bool) {
	if c.hse != 0 {
		return c.hse, true
	}
	return uint32(HSI / physic.Hertz), false
}

// Range is an inclusive frequency window in Hz.
type Range struct {
	Min, Max uint32
}

func (r Range) contains(v uint64) bool {
	return v >= uint64(r.Min) && v <= uint64(r.Max)
}

// FreqRequest holds the windows the PLL outputs have to hit. Q is nil when
// the 48 MHz domain is not constrained. P is nil when the system clock stays
// on the oscillator and the PLL only feeds the 48 MHz domain.
type FreqRequest struct {
	P *Range
	Q *Range
}

// FreqRequest derives the PLL windows for the requested sysclk and 48 MHz
// domain. ok is false if the system clock can be fed from the oscillator
// directly.
func (c Config) FreqRequest(p *chip.Params) (req FreqRequest, ok bool) {
	src, _ := c.source()
	max := uint32(p.MaxSysclk / physic.Hertz)

	sys, min := c.sysclk, c.sysclkMin
	if sys == 0 {
		sys, min = src, src
	}
	if sys == src && min <= src {
		if !c.pll48 {
			return FreqRequest{}, false
		}
	} else {
		if sys > max {
			sys = max
		}
		req.P = &Range{Min: min, Max: sys}
	}
	if c.pll48 {
		t := uint32(PLL48 / physic.Hertz)
		tol := uint32(PLL48Tolerance / physic.Hertz)
		req.Q = &Range{Min: t - tol, Max: t + tol}
	}
	return req, true
}
