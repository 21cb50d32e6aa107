// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package rcc

import (
	"periph.io/x/conn/v3/physic"

	"github.com/bbnote/gostm32f4/chip"
	"github.com/bbnote/gostm32f4/device/stm32f4"
)

// Source is an input of the system clock mux.
type Source uint8

const (
	SourceHSI Source = iota
	SourceHSE
	SourcePLL
)

func (s Source) String() string {
	switch s {
	case SourceHSI:
		return "HSI"
	case SourceHSE:
		return "HSE"
	case SourcePLL:
		return "PLL"
	}
	return "Source(?)"
}

// sw returns the RCC_CFGR_SW encoding of s.
func (s Source) sw() uint32 {
	switch s {
	case SourceHSE:
		return stm32f4.RCC_CFGR_SW_HSE
	case SourcePLL:
		return stm32f4.RCC_CFGR_SW_PLL
	}
	return stm32f4.RCC_CFGR_SW_HSI
}

const (
	hseMin       = 4000000
	hseMax       = 26000000
	hseBypassMin = 1000000
	hseBypassMax = 50000000
)

// Plan holds every value Freeze is going to program. It is computed without
// touching the hardware.
type Plan struct {
	Chip *chip.Params

	Oscillator Source
	HSE        uint32
	Bypass     bool

	Sysclk Source
	// UsePLL is set if the main PLL runs. Sysclk tells whether it also
	// drives the system clock.
	UsePLL bool
	PLL    PLLParams
	// PLLInput is set if only PLLI2S or PLLSAI run and PLLCFGR carries
	// just their shared M and source.
	PLLInput bool

	I2S *PLLI2SParams
	SAI *PLLSAIParams

	HPRE, PPRE1, PPRE2 uint32

	Latency   uint8
	VR        chip.VoltageRange
	OverDrive bool
	PollLimit uint32

	hpre, ppre1, ppre2 prescaler
	clocks             Clocks
}

// Clocks returns the frequencies the plan results in.
func (p *Plan) Clocks() Clocks { return p.clocks }

// PLLCFGR returns the RCC_PLLCFGR fields of the plan. Bits outside
// PLLCFGRMask are left alone when it is written.
func (p *Plan) PLLCFGR() uint32 {
	v := p.PLL.M<<stm32f4.RCC_PLLCFGR_PLLM_Pos |
		p.PLL.N<<stm32f4.RCC_PLLCFGR_PLLN_Pos |
		((p.PLL.P>>1)-1)<<stm32f4.RCC_PLLCFGR_PLLP_Pos |
		p.PLL.Q<<stm32f4.RCC_PLLCFGR_PLLQ_Pos
	if p.Oscillator == SourceHSE {
		v |= stm32f4.RCC_PLLCFGR_PLLSRC
	}
	return v
}

const PLLCFGRMask = stm32f4.RCC_PLLCFGR_PLLM_Msk<<stm32f4.RCC_PLLCFGR_PLLM_Pos |
	stm32f4.RCC_PLLCFGR_PLLN_Msk<<stm32f4.RCC_PLLCFGR_PLLN_Pos |
	stm32f4.RCC_PLLCFGR_PLLP_Msk<<stm32f4.RCC_PLLCFGR_PLLP_Pos |
	stm32f4.RCC_PLLCFGR_PLLSRC |
	stm32f4.RCC_PLLCFGR_PLLQ_Msk<<stm32f4.RCC_PLLCFGR_PLLQ_Pos

// pllInputMask covers M and the source only.
const pllInputMask = stm32f4.RCC_PLLCFGR_PLLM_Msk<<stm32f4.RCC_PLLCFGR_PLLM_Pos |
	stm32f4.RCC_PLLCFGR_PLLSRC

// CFGR returns the prescaler fields of RCC_CFGR.
func (p *Plan) CFGR() uint32 {
	return cfgrPrescalers(p.hpre, p.ppre1, p.ppre2)
}

// Plan solves the configuration for chip c, or for the chip set with
// Config.Chip.
func (cfg Config) Plan(c *chip.Params) (*Plan, error) {
	if cfg.err != nil {
		return nil, cfg.err
	}
	if cfg.chip != nil {
		c = cfg.chip
	}
	if c == nil {
		return nil, solveErr(ErrInvalidConfig, "no chip")
	}

	p := &Plan{Chip: c, VR: cfg.vr, PollLimit: cfg.pollLimit}

	src, hse := cfg.source()
	switch {
	case hse && cfg.hseBypass && (src < hseBypassMin || src > hseBypassMax):
		return nil, solveErr(ErrInvalidConfig, "bypass clock %d Hz outside %d..%d Hz", src, hseBypassMin, hseBypassMax)
	case hse && !cfg.hseBypass && (src < hseMin || src > hseMax):
		return nil, solveErr(ErrInvalidConfig, "crystal %d Hz outside %d..%d Hz", src, hseMin, hseMax)
	case !hse && cfg.hseBypass:
		return nil, solveErr(ErrInvalidConfig, "HSE bypass without HSE frequency")
	}
	if hse {
		p.Oscillator, p.HSE, p.Bypass = SourceHSE, src, cfg.hseBypass
	} else {
		p.Oscillator = SourceHSI
	}
	p.Sysclk = p.Oscillator

	var sysclk uint32
	pllSysclk := true
	switch {
	case cfg.manual != nil:
		if err := cfg.manual.validate(src, c); err != nil {
			return nil, err
		}
		p.UsePLL, p.PLL = true, *cfg.manual
		sysclk = uint32(p.PLL.vco(src) / uint64(p.PLL.P))
		if cfg.sysclk != 0 && (sysclk < cfg.sysclkMin || sysclk > cfg.sysclk) {
			return nil, solveErr(ErrInvalidConfig, "PLL %s gives sysclk %d Hz, requested %d..%d Hz", p.PLL, sysclk, cfg.sysclkMin, cfg.sysclk)
		}

	default:
		req, needPLL := cfg.FreqRequest(c)
		if !needPLL {
			sysclk = src
			break
		}
		pll, err := calculateMNPQ(src, req, c)
		if err != nil {
			return nil, err
		}
		p.UsePLL, p.PLL = true, pll
		if req.P == nil {
			// the PLL only feeds the 48 MHz domain
			sysclk, pllSysclk = src, false
			break
		}
		sysclk = uint32(pll.vco(src) / uint64(pll.P))
	}
	if p.UsePLL && pllSysclk {
		p.Sysclk = SourcePLL
	}

	cl := Clocks{chip: c, source: p.Sysclk, sysclk: sysclk}
	if p.UsePLL {
		cl.pll, cl.hasPLL = p.PLL, true
		cl.pll48 = uint32(p.PLL.vco(src) / uint64(p.PLL.Q))
		cl.pll48Valid = absDiff(uint64(cl.pll48), hz64(PLL48)) <= hz64(PLL48Tolerance)
	}
	if cfg.pll48 && !cl.pll48Valid {
		return nil, solveErr(ErrNoPLLParams, "48 MHz domain at %d Hz", cl.pll48)
	}

	if err := p.buses(cfg, &cl); err != nil {
		return nil, err
	}

	ws, err := c.WaitStates(hz(cl.hclk), cfg.vr)
	if err != nil {
		return nil, solveErr(ErrInvalidConfig, "%v", err)
	}
	p.Latency = ws
	p.OverDrive = c.HasOverDrive && hz(sysclk) > c.OverDriveAbove

	if cfg.i2s != 0 || cfg.sai != 0 {
		m := p.PLL.M
		if !p.UsePLL {
			var ok bool
			if m, ok = sharedM(src, c); !ok {
				return nil, solveErr(ErrNoPLLParams, "no input divider for %d Hz", src)
			}
			p.PLL.M, p.PLLInput = m, true
		}
		if cfg.i2s != 0 {
			i2s, out, err := calculateI2S(src, m, cfg.i2s, c)
			if err != nil {
				return nil, err
			}
			p.I2S, cl.i2s = &i2s, out
		}
		if cfg.sai != 0 {
			sai, out, err := calculateSAI(src, m, cfg.sai, c)
			if err != nil {
				return nil, err
			}
			p.SAI, cl.sai = &sai, out
		}
	}

	p.clocks = cl
	return p, nil
}

func hz(v uint32) physic.Frequency { return fromHz(v) }

// buses sizes the AHB and APB prescalers.
func (p *Plan) buses(cfg Config, cl *Clocks) error {
	c := p.Chip
	maxHclk := uint32(c.MaxHclk / physic.Hertz)
	maxPclk1 := uint32(c.MaxPclk1 / physic.Hertz)
	maxPclk2 := uint32(c.MaxPclk2 / physic.Hertz)

	want := cl.sysclk
	if cfg.hclk != 0 {
		if cfg.hclk > maxHclk {
			return solveErr(ErrBusClock, "hclk %d Hz above %s", cfg.hclk, c.MaxHclk)
		}
		want = cfg.hclk
	}
	if want > maxHclk {
		want = maxHclk
	}
	hpre, ok := pick(ahbPrescalers[:], cl.sysclk, want)
	if !ok {
		return solveErr(ErrBusClock, "no AHB prescaler gives %d Hz from %d Hz", want, cl.sysclk)
	}
	cl.hclk = cl.sysclk / hpre.div

	apb := func(req, max uint32, name string) (prescaler, uint32, error) {
		want := cl.hclk
		if req != 0 {
			if req > max {
				return prescaler{}, 0, solveErr(ErrBusClock, "%s %d Hz above %d Hz", name, req, max)
			}
			want = req
		}
		if want > max {
			want = max
		}
		pre, ok := pick(apbPrescalers[:], cl.hclk, want)
		if !ok {
			return prescaler{}, 0, solveErr(ErrBusClock, "no APB prescaler gives %s %d Hz from %d Hz", name, want, cl.hclk)
		}
		return pre, cl.hclk / pre.div, nil
	}

	ppre1, pclk1, err := apb(cfg.pclk1, maxPclk1, "pclk1")
	if err != nil {
		return err
	}
	ppre2, pclk2, err := apb(cfg.pclk2, maxPclk2, "pclk2")
	if err != nil {
		return err
	}

	p.hpre, p.ppre1, p.ppre2 = hpre, ppre1, ppre2
	p.HPRE, p.PPRE1, p.PPRE2 = hpre.div, ppre1.div, ppre2.div
	cl.pclk1, cl.pclk2 = pclk1, pclk2
	cl.ppre1, cl.ppre2 = ppre1.div, ppre2.div
	cl.timclk1 = timerClock(pclk1, ppre1.div)
	cl.timclk2 = timerClock(pclk2, ppre2.div)
	return nil
}

func timerClock(pclk, div uint32) uint32 {
	if div == 1 {
		return pclk
	}
	return pclk * 2
}
