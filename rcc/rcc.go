// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package rcc configures the STM32F4 clock tree.
//
// A Config describes the wanted frequencies. Plan solves it into divider
// values without touching the hardware, Freeze programs them in the order
// the reference manual demands and returns the resulting Clocks.
package rcc

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bbnote/gostm32f4"
	"github.com/bbnote/gostm32f4/chip"
	"github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/reg"
)

// State tracks the system clock bring-up. Transitions only go forward.
type State uint8

const (
	OscillatorOff State = iota
	OscillatorStable
	PLLConfiguring
	PLLLocked
	ClockSwitchPending
	ClockSwitched
)

func (s State) String() string {
	switch s {
	case OscillatorOff:
		return "OscillatorOff"
	case OscillatorStable:
		return "OscillatorStable"
	case PLLConfiguring:
		return "PLLConfiguring"
	case PLLLocked:
		return "PLLLocked"
	case ClockSwitchPending:
		return "ClockSwitchPending"
	case ClockSwitched:
		return "ClockSwitched"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// RCC owns the reset and clock control block together with the flash and
// power registers the clock switch depends on.
type RCC struct {
	regs  *stm32f4.RCC_Type
	flash *stm32f4.FLASH_Type
	pwr   *stm32f4.PWR_Type
	chip  *chip.Params

	state   State
	touched bool
	clocks  Clocks
	frozen  bool
}

// New takes the clock related blocks of dp for the target chip.
func New(dp *stm32f4.Peripherals) *RCC {
	return NewFor(dp, chip.Target)
}

// NewFor is New for an explicit chip family.
func NewFor(dp *stm32f4.Peripherals, c *chip.Params) *RCC {
	return &RCC{regs: dp.RCC, flash: dp.FLASH, pwr: dp.PWR, chip: c}
}

func (r *RCC) log() *logrus.Entry {
	return gostm32f4.Prefixed("rcc")
}

func (r *RCC) Chip() *chip.Params { return r.chip }

func (r *RCC) State() State { return r.state }

// Clocks returns the frozen clock tree.
func (r *RCC) Clocks() (Clocks, bool) { return r.clocks, r.frozen }

// Freeze solves cfg and programs the clock tree. A configuration that cannot
// be solved is reported before any register is written. Once Freeze has
// started programming, the clock tree is fixed: further calls return
// ErrAlreadyFrozen.
func (r *RCC) Freeze(cfg Config) (Clocks, error) {
	if r.touched {
		return Clocks{}, ErrAlreadyFrozen
	}

	plan, err := cfg.Plan(r.chip)
	if err != nil {
		r.log().Debugf("configuration rejected: %v", err)
		return Clocks{}, err
	}
	if plan.Chip != r.chip {
		return Clocks{}, solveErr(ErrInvalidConfig, "plan for %s handed to %s", plan.Chip, r.chip)
	}

	r.touched = true
	if err := r.realize(plan); err != nil {
		r.log().Errorf("clock bring-up failed: %v", err)
		return Clocks{}, err
	}

	r.clocks, r.frozen = plan.clocks, true
	r.log().Infof("clocks frozen: %s", r.clocks)
	return r.clocks, nil
}

func (r *RCC) realize(p *Plan) error {
	log := r.log()

	// a running target may still be clocked from the PLL, which can only be
	// stopped and reprogrammed once the system clock is back on HSI
	if err := r.switchToHSI(p.PollLimit); err != nil {
		return err
	}

	// 1. oscillator
	if p.Oscillator == SourceHSE {
		if p.Bypass {
			r.regs.CR.SetBits(stm32f4.RCC_CR_HSEBYP)
		}
		r.regs.CR.SetBits(stm32f4.RCC_CR_HSEON)
		if err := r.wait(r.regs.CR, stm32f4.RCC_CR_HSERDY, p.PollLimit, ErrHSENotReady); err != nil {
			return err
		}
		log.Debugf("HSE ready at %d Hz (bypass %v)", p.HSE, p.Bypass)
	} else {
		r.regs.CR.SetBits(stm32f4.RCC_CR_HSION)
		if err := r.wait(r.regs.CR, stm32f4.RCC_CR_HSIRDY, p.PollLimit, ErrHSINotReady); err != nil {
			return err
		}
		log.Debug("HSI ready")
	}
	r.state = OscillatorStable

	// regulator scale, needed before the PLL output goes up
	r.enablePower()
	r.pwr.CR.ReplaceBits(r.chip.VOS, stm32f4.PWR_CR_VOS_Msk, stm32f4.PWR_CR_VOS_Pos)

	// 2. PLLs
	if p.UsePLL || p.PLLInput {
		r.state = PLLConfiguring
		if err := r.programPLLs(p); err != nil {
			return err
		}
		if p.UsePLL {
			r.state = PLLLocked
		}
	}

	if p.OverDrive {
		if err := r.enableOverDrive(p.PollLimit); err != nil {
			return err
		}
	}

	// 3. prescalers, slowest bus first
	r.regs.CFGR.ReplaceBits(p.ppre1.bits, stm32f4.RCC_CFGR_PPRE1_Msk, stm32f4.RCC_CFGR_PPRE1_Pos)
	r.regs.CFGR.ReplaceBits(p.ppre2.bits, stm32f4.RCC_CFGR_PPRE2_Msk, stm32f4.RCC_CFGR_PPRE2_Pos)
	r.regs.CFGR.ReplaceBits(p.hpre.bits, stm32f4.RCC_CFGR_HPRE_Msk, stm32f4.RCC_CFGR_HPRE_Pos)
	log.Debugf("prescalers AHB/%d APB1/%d APB2/%d", p.HPRE, p.PPRE1, p.PPRE2)

	// 4. flash wait states go up before the switch and down after it
	current := uint8(r.flash.ACR.Field(stm32f4.FLASH_ACR_LATENCY_Msk, stm32f4.FLASH_ACR_LATENCY_Pos))
	if p.Latency > current {
		if err := r.setLatency(p.Latency); err != nil {
			return err
		}
	}

	// 5. switch
	sw := p.Sysclk.sw()
	r.regs.CFGR.ReplaceBits(sw, stm32f4.RCC_CFGR_SW_Msk, stm32f4.RCC_CFGR_SW_Pos)
	r.state = ClockSwitchPending
	if err := r.waitField(r.regs.CFGR, stm32f4.RCC_CFGR_SWS_Msk, stm32f4.RCC_CFGR_SWS_Pos, sw, p.PollLimit, ErrClockSwitch); err != nil {
		return err
	}
	r.state = ClockSwitched
	log.Debugf("system clock switched to %s", p.Sysclk)

	if p.Latency < current {
		if err := r.setLatency(p.Latency); err != nil {
			return err
		}
	}
	return nil
}

func (r *RCC) switchToHSI(limit uint32) error {
	sws := r.regs.CFGR.Field(stm32f4.RCC_CFGR_SWS_Msk, stm32f4.RCC_CFGR_SWS_Pos)
	if sws == stm32f4.RCC_CFGR_SW_HSI {
		return nil
	}

	r.regs.CR.SetBits(stm32f4.RCC_CR_HSION)
	if err := r.wait(r.regs.CR, stm32f4.RCC_CR_HSIRDY, limit, ErrHSINotReady); err != nil {
		return err
	}
	r.regs.CFGR.ReplaceBits(stm32f4.RCC_CFGR_SW_HSI, stm32f4.RCC_CFGR_SW_Msk, stm32f4.RCC_CFGR_SW_Pos)
	if err := r.waitField(r.regs.CFGR, stm32f4.RCC_CFGR_SWS_Msk, stm32f4.RCC_CFGR_SWS_Pos, stm32f4.RCC_CFGR_SW_HSI, limit, ErrClockSwitch); err != nil {
		return err
	}
	r.log().Debugf("system clock moved from SWS=%d to HSI", sws)
	return nil
}

func (r *RCC) programPLLs(p *Plan) error {
	log := r.log()

	// PLLCFGR is only writable with every PLL stopped
	r.regs.CR.ClearBits(stm32f4.RCC_CR_PLLON | stm32f4.RCC_CR_PLLI2SON | stm32f4.RCC_CR_PLLSAION)

	mask := uint32(PLLCFGRMask)
	if !p.UsePLL {
		mask = pllInputMask
	}
	v := r.regs.PLLCFGR.Get()
	r.regs.PLLCFGR.Set(v&^mask | p.PLLCFGR()&mask)

	if p.UsePLL {
		r.regs.CR.SetBits(stm32f4.RCC_CR_PLLON)
		if err := r.wait(r.regs.CR, stm32f4.RCC_CR_PLLRDY, p.PollLimit, ErrPLLNotLocked); err != nil {
			return err
		}
		log.Debugf("PLL locked, %s", p.PLL)
	}

	if p.I2S != nil {
		if !r.chip.PLLI2SSharesM {
			r.regs.PLLI2SCFGR.ReplaceBits(p.I2S.M, stm32f4.RCC_PLLI2SCFGR_PLLI2SM_Msk, stm32f4.RCC_PLLI2SCFGR_PLLI2SM_Pos)
		}
		r.regs.PLLI2SCFGR.ReplaceBits(p.I2S.N, stm32f4.RCC_PLLI2SCFGR_PLLI2SN_Msk, stm32f4.RCC_PLLI2SCFGR_PLLI2SN_Pos)
		r.regs.PLLI2SCFGR.ReplaceBits(p.I2S.R, stm32f4.RCC_PLLI2SCFGR_PLLI2SR_Msk, stm32f4.RCC_PLLI2SCFGR_PLLI2SR_Pos)
		r.regs.CFGR.ClearBits(stm32f4.RCC_CFGR_I2SSRC)
		r.regs.CR.SetBits(stm32f4.RCC_CR_PLLI2SON)
		if err := r.wait(r.regs.CR, stm32f4.RCC_CR_PLLI2SRDY, p.PollLimit, ErrPLLNotLocked); err != nil {
			return err
		}
		log.Debugf("PLLI2S locked, %s", p.I2S)
	}

	if p.SAI != nil {
		r.regs.PLLSAICFGR.ReplaceBits(p.SAI.N, stm32f4.RCC_PLLSAICFGR_PLLSAIN_Msk, stm32f4.RCC_PLLSAICFGR_PLLSAIN_Pos)
		r.regs.PLLSAICFGR.ReplaceBits(p.SAI.Q, stm32f4.RCC_PLLSAICFGR_PLLSAIQ_Msk, stm32f4.RCC_PLLSAICFGR_PLLSAIQ_Pos)
		r.regs.DCKCFGR.ReplaceBits(p.SAI.DivQ-1, stm32f4.RCC_DCKCFGR_PLLSAIDIVQ_Msk, stm32f4.RCC_DCKCFGR_PLLSAIDIVQ_Pos)
		r.regs.CR.SetBits(stm32f4.RCC_CR_PLLSAION)
		if err := r.wait(r.regs.CR, stm32f4.RCC_CR_PLLSAIRDY, p.PollLimit, ErrPLLNotLocked); err != nil {
			return err
		}
		log.Debugf("PLLSAI locked, %s", p.SAI)
	}
	return nil
}

func (r *RCC) enablePower() {
	en := r.regs.APB1ENR.Bit(stm32f4.RCC_APB1ENR_PWREN_Pos)
	en.Set()
	_ = r.regs.APB1ENR.Get()
}

func (r *RCC) enableOverDrive(limit uint32) error {
	r.pwr.CR.SetBits(stm32f4.PWR_CR_ODEN)
	if err := r.wait(r.pwr.CSR, stm32f4.PWR_CSR_ODRDY, limit, ErrOverDrive); err != nil {
		return err
	}
	r.pwr.CR.SetBits(stm32f4.PWR_CR_ODSWEN)
	if err := r.wait(r.pwr.CSR, stm32f4.PWR_CSR_ODSWRDY, limit, ErrOverDrive); err != nil {
		return err
	}
	r.log().Debug("over-drive active")
	return nil
}

func (r *RCC) setLatency(ws uint8) error {
	acr := r.flash.ACR.Get()
	acr &^= stm32f4.FLASH_ACR_LATENCY_Msk << stm32f4.FLASH_ACR_LATENCY_Pos
	acr |= uint32(ws)<<stm32f4.FLASH_ACR_LATENCY_Pos |
		stm32f4.FLASH_ACR_PRFTEN | stm32f4.FLASH_ACR_ICEN | stm32f4.FLASH_ACR_DCEN
	r.flash.ACR.Set(acr)

	if got := r.flash.ACR.Field(stm32f4.FLASH_ACR_LATENCY_Msk, stm32f4.FLASH_ACR_LATENCY_Pos); got != uint32(ws) {
		return fmt.Errorf("rcc: flash latency reads back %d, wrote %d", got, ws)
	}
	r.log().Debugf("flash latency %d wait states", ws)
	return nil
}

// wait polls until any bit of mask is set in r.
func (r *RCC) wait(rg reg.Register32, mask uint32, limit uint32, cause error) error {
	for i := uint32(0); limit == 0 || i < limit; i++ {
		if rg.HasBits(mask) {
			return nil
		}
	}
	return &NotReadyError{Stage: r.state, Polls: limit, Err: cause}
}

func (r *RCC) waitField(rg reg.Register32, mask uint32, pos uint8, want uint32, limit uint32, cause error) error {
	for i := uint32(0); limit == 0 || i < limit; i++ {
		if rg.Field(mask, pos) == want {
			return nil
		}
	}
	return &NotReadyError{Stage: r.state, Polls: limit, Err: cause}
}
