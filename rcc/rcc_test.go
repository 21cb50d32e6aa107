// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package rcc

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"periph.io/x/conn/v3/physic"

	"github.com/bbnote/gostm32f4/chip"
	dev "github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/reg"
	"github.com/bbnote/gostm32f4/sim"
)

const (
	addrCR      = dev.RCC_BASE + 0x00
	addrPLLCFGR = dev.RCC_BASE + 0x04
	addrCFGR    = dev.RCC_BASE + 0x08
	addrACR     = dev.FLASH_BASE
	addrPWRCR   = dev.PWR_BASE
)

func setup(c *chip.Params, opts ...sim.Option) (*sim.Device, *RCC) {
	d := sim.New(append([]sim.Option{sim.WithChip(c)}, opts...)...)
	return d, NewFor(dev.StealFor(d, c), c)
}

// lastWrite returns the index of the last logged store to addr matching
// pred, or -1.
func lastWrite(w []sim.Write, addr uint32, pred func(uint32) bool) int {
	for i := len(w) - 1; i >= 0; i-- {
		if w[i].Addr == addr && (pred == nil || pred(w[i].Value)) {
			return i
		}
	}
	return -1
}

func firstWrite(w []sim.Write, addr uint32, pred func(uint32) bool) int {
	for i := range w {
		if w[i].Addr == addr && (pred == nil || pred(w[i].Value)) {
			return i
		}
	}
	return -1
}

func TestFreezeNucleo(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.STM32F407)

	clocks, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(168 * MHz).RequirePLL48CLK())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(r.State()).To(Equal(ClockSwitched))

	g.Expect(clocks.Sysclk()).To(Equal(168 * MHz))
	g.Expect(clocks.IsPLL48CLKValid()).To(BeTrue())
	pll48, ok := clocks.PLL48CLK()
	g.Expect(ok).To(BeTrue())
	g.Expect(pll48).To(Equal(48 * MHz))
	g.Expect(clocks.HCLK()).To(Equal(168 * MHz))
	g.Expect(clocks.PCLK1()).To(Equal(42 * MHz))
	g.Expect(clocks.PCLK2()).To(Equal(84 * MHz))
	g.Expect(clocks.TimClk1()).To(Equal(84 * MHz))
	g.Expect(clocks.TimClk2()).To(Equal(168 * MHz))
	g.Expect(clocks.Source()).To(Equal(SourcePLL))

	pllcfgr := reg.New32(d, addrPLLCFGR)
	g.Expect(pllcfgr.Field(dev.RCC_PLLCFGR_PLLM_Msk, dev.RCC_PLLCFGR_PLLM_Pos)).To(Equal(uint32(8)))
	g.Expect(pllcfgr.Field(dev.RCC_PLLCFGR_PLLN_Msk, dev.RCC_PLLCFGR_PLLN_Pos)).To(Equal(uint32(336)))
	g.Expect(pllcfgr.Field(dev.RCC_PLLCFGR_PLLP_Msk, dev.RCC_PLLCFGR_PLLP_Pos)).To(Equal(uint32(0)))
	g.Expect(pllcfgr.Field(dev.RCC_PLLCFGR_PLLQ_Msk, dev.RCC_PLLCFGR_PLLQ_Pos)).To(Equal(uint32(7)))
	g.Expect(pllcfgr.HasBits(dev.RCC_PLLCFGR_PLLSRC)).To(BeTrue())
	// reserved bit keeps its reset value
	g.Expect(pllcfgr.HasBits(1 << 29)).To(BeTrue())

	cfgr := reg.New32(d, addrCFGR)
	g.Expect(cfgr.Field(dev.RCC_CFGR_SWS_Msk, dev.RCC_CFGR_SWS_Pos)).To(Equal(uint32(dev.RCC_CFGR_SW_PLL)))
	g.Expect(cfgr.Field(dev.RCC_CFGR_PPRE1_Msk, dev.RCC_CFGR_PPRE1_Pos)).To(Equal(uint32(0x5)))
	g.Expect(cfgr.Field(dev.RCC_CFGR_PPRE2_Msk, dev.RCC_CFGR_PPRE2_Pos)).To(Equal(uint32(0x4)))
	g.Expect(cfgr.Field(dev.RCC_CFGR_HPRE_Msk, dev.RCC_CFGR_HPRE_Pos)).To(Equal(uint32(0)))

	acr := d.Peek(addrACR)
	g.Expect(acr & dev.FLASH_ACR_LATENCY_Msk).To(Equal(uint32(5)))
	g.Expect(acr & dev.FLASH_ACR_PRFTEN).NotTo(BeZero())

	again, ok := r.Clocks()
	g.Expect(ok).To(BeTrue())
	g.Expect(again).To(Equal(clocks))

	_, err = r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(84 * MHz))
	g.Expect(err).To(MatchError(ErrAlreadyFrozen))
}

func TestFreezeOrdering(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.STM32F407)

	_, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(168 * MHz))
	g.Expect(err).NotTo(HaveOccurred())
	w := d.Writes()

	hseOn := firstWrite(w, addrCR, func(v uint32) bool { return v&dev.RCC_CR_HSEON != 0 })
	pllCfg := lastWrite(w, addrPLLCFGR, nil)
	pllOn := firstWrite(w, addrCR, func(v uint32) bool { return v&dev.RCC_CR_PLLON != 0 })
	latency := lastWrite(w, addrACR, nil)
	prescale := firstWrite(w, addrCFGR, nil)
	swtch := lastWrite(w, addrCFGR, func(v uint32) bool { return v&dev.RCC_CFGR_SW_Msk == dev.RCC_CFGR_SW_PLL })

	g.Expect(hseOn).To(BeNumerically(">=", 0))
	g.Expect(hseOn).To(BeNumerically("<", pllCfg))
	g.Expect(pllCfg).To(BeNumerically("<", pllOn))
	g.Expect(pllOn).To(BeNumerically("<", prescale))
	g.Expect(prescale).To(BeNumerically("<", swtch))
	// wait states go up before the faster clock is selected
	g.Expect(latency).To(BeNumerically("<", swtch))

	// PLLCFGR was written with the PLL stopped
	for _, x := range w[:pllCfg] {
		if x.Addr == addrCR {
			g.Expect(x.Value & dev.RCC_CR_PLLON).To(BeZero())
		}
	}
}

func TestFreezePLL48Only(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.STM32F407)

	clocks, err := r.Freeze(NewConfig().HSE(8 * MHz).RequirePLL48CLK())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(r.State()).To(Equal(ClockSwitched))
	g.Expect(clocks.Sysclk()).To(Equal(8 * MHz))
	g.Expect(clocks.Source()).To(Equal(SourceHSE))
	pll48, ok := clocks.PLL48CLK()
	g.Expect(ok).To(BeTrue())
	g.Expect(pll48).To(Equal(48 * MHz))

	g.Expect(d.Peek(addrCR) & dev.RCC_CR_PLLRDY).NotTo(BeZero())
	pll, _ := clocks.PLL()
	pllcfgr := reg.New32(d, addrPLLCFGR)
	g.Expect(pllcfgr.Field(dev.RCC_PLLCFGR_PLLM_Msk, dev.RCC_PLLCFGR_PLLM_Pos)).To(Equal(pll.M))
	g.Expect(pllcfgr.Field(dev.RCC_PLLCFGR_PLLN_Msk, dev.RCC_PLLCFGR_PLLN_Pos)).To(Equal(pll.N))
	g.Expect(pllcfgr.Field(dev.RCC_PLLCFGR_PLLQ_Msk, dev.RCC_PLLCFGR_PLLQ_Pos)).To(Equal(pll.Q))

	cfgr := reg.New32(d, addrCFGR)
	g.Expect(cfgr.Field(dev.RCC_CFGR_SWS_Msk, dev.RCC_CFGR_SWS_Pos)).To(Equal(uint32(dev.RCC_CFGR_SW_HSE)))
	swPLL := firstWrite(d.Writes(), addrCFGR, func(v uint32) bool { return v&dev.RCC_CFGR_SW_Msk == dev.RCC_CFGR_SW_PLL })
	g.Expect(swPLL).To(Equal(-1))
}

func TestFreezeFromRunningPLL(t *testing.T) {
	g := NewWithT(t)
	d, first := setup(chip.STM32F407)
	_, err := first.Freeze(NewConfig().HSE(8 * MHz).Sysclk(168 * MHz).RequirePLL48CLK())
	g.Expect(err).NotTo(HaveOccurred())
	d.ClearLog()

	// a second owner of the same running chip
	r := NewFor(dev.StealFor(d, chip.STM32F407), chip.STM32F407)
	clocks, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(84 * MHz))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(clocks.Sysclk()).To(Equal(84 * MHz))

	pll, _ := clocks.PLL()
	pllcfgr := reg.New32(d, addrPLLCFGR)
	g.Expect(pllcfgr.Field(dev.RCC_PLLCFGR_PLLN_Msk, dev.RCC_PLLCFGR_PLLN_Pos)).To(Equal(pll.N))
	g.Expect(pllcfgr.Field(dev.RCC_PLLCFGR_PLLP_Msk, dev.RCC_PLLCFGR_PLLP_Pos)).To(Equal(pll.P/2 - 1))
	g.Expect(reg.New32(d, addrCFGR).Field(dev.RCC_CFGR_SWS_Msk, dev.RCC_CFGR_SWS_Pos)).To(Equal(uint32(dev.RCC_CFGR_SW_PLL)))

	w := d.Writes()
	toHSI := firstWrite(w, addrCFGR, func(v uint32) bool { return v&dev.RCC_CFGR_SW_Msk == dev.RCC_CFGR_SW_HSI })
	pllCfg := lastWrite(w, addrPLLCFGR, nil)
	g.Expect(toHSI).To(BeNumerically(">=", 0))
	g.Expect(toHSI).To(BeNumerically("<", pllCfg))
}

func TestFreezeLowersLatencyAfterSwitch(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.STM32F407)
	d.Poke(addrACR, 7)

	clocks, err := r.Freeze(NewConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(clocks.Sysclk()).To(Equal(HSI))
	_, ok := clocks.PLL48CLK()
	g.Expect(ok).To(BeFalse())
	_, ok = clocks.PLL()
	g.Expect(ok).To(BeFalse())

	w := d.Writes()
	swtch := lastWrite(w, addrCFGR, nil)
	latency := lastWrite(w, addrACR, nil)
	g.Expect(swtch).To(BeNumerically(">=", 0))
	g.Expect(latency).To(BeNumerically(">", swtch))
	g.Expect(d.Peek(addrACR) & dev.FLASH_ACR_LATENCY_Msk).To(BeZero())
}

func TestFreezeInfeasibleTouchesNothing(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.STM32F407)

	_, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(1000 * MHz))
	g.Expect(errors.Is(err, ErrNoPLLParams)).To(BeTrue())
	g.Expect(d.Writes()).To(BeEmpty())
	g.Expect(r.State()).To(Equal(OscillatorOff))

	_, err = r.Freeze(NewConfig().HSE(8 * MHz).PCLK1(50 * MHz))
	g.Expect(errors.Is(err, ErrBusClock)).To(BeTrue())

	_, err = r.Freeze(NewConfig().HSE(30 * MHz))
	g.Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())

	_, err = r.Freeze(NewConfig().HSE(8 * MHz).PLL(1, 336, 2, 7))
	g.Expect(errors.Is(err, ErrNoPLLParams)).To(BeTrue())

	_, err = r.Freeze(NewConfig().HSE(-1 * MHz))
	g.Expect(errors.Is(err, ErrFrequencyRange)).To(BeTrue())
	g.Expect(d.Writes()).To(BeEmpty())

	// a rejected configuration does not use up the RCC
	clocks, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(84 * MHz))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(clocks.Sysclk()).To(Equal(84 * MHz))
}

func TestFreezeHardwareFaults(t *testing.T) {
	cases := []struct {
		name  string
		chip  *chip.Params
		cfg   Config
		opt   sim.Option
		err   error
		stage State
	}{
		{"hse", chip.STM32F407, NewConfig().HSE(8 * MHz).Sysclk(168 * MHz), sim.HSEFault(), ErrHSENotReady, OscillatorOff},
		{"pll", chip.STM32F407, NewConfig().HSE(8 * MHz).Sysclk(168 * MHz), sim.PLLFault(), ErrPLLNotLocked, PLLConfiguring},
		{"switch", chip.STM32F407, NewConfig().HSE(8 * MHz).Sysclk(168 * MHz), sim.SwitchFault(), ErrClockSwitch, ClockSwitchPending},
		{"overdrive", chip.STM32F429, NewConfig().HSE(8 * MHz).Sysclk(180 * MHz), sim.OverDriveFault(), ErrOverDrive, PLLLocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithT(t)
			_, r := setup(tc.chip, tc.opt)

			_, err := r.Freeze(tc.cfg.PollLimit(100))
			g.Expect(errors.Is(err, tc.err)).To(BeTrue(), "%v", err)

			var nr *NotReadyError
			g.Expect(errors.As(err, &nr)).To(BeTrue())
			g.Expect(nr.Stage).To(Equal(tc.stage))
			g.Expect(nr.Polls).To(Equal(uint32(100)))
			g.Expect(r.State()).To(Equal(tc.stage))

			_, err = r.Freeze(tc.cfg)
			g.Expect(err).To(MatchError(ErrAlreadyFrozen))
		})
	}
}

func TestFreezeSlowOscillator(t *testing.T) {
	g := NewWithT(t)
	_, r := setup(chip.STM32F407, sim.WithLatency(50))

	clocks, err := r.Freeze(NewConfig().HSE(25 * MHz).Sysclk(168 * MHz).RequirePLL48CLK())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(clocks.Sysclk()).To(Equal(168 * MHz))
}

func TestFreezeOverDrive(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.STM32F429)

	clocks, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(180 * MHz))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(clocks.Sysclk()).To(Equal(180 * MHz))
	g.Expect(clocks.PCLK1()).To(Equal(45 * MHz))
	g.Expect(clocks.PCLK2()).To(Equal(90 * MHz))
	g.Expect(clocks.IsPLL48CLKValid()).To(BeFalse())

	pwr := d.Peek(addrPWRCR)
	g.Expect(pwr & dev.PWR_CR_ODEN).NotTo(BeZero())
	g.Expect(pwr & dev.PWR_CR_ODSWEN).NotTo(BeZero())
	g.Expect((pwr >> dev.PWR_CR_VOS_Pos) & dev.PWR_CR_VOS_Msk).To(Equal(uint32(3)))
	g.Expect(d.Peek(addrACR) & dev.FLASH_ACR_LATENCY_Msk).To(Equal(uint32(5)))
}

func TestFreezeBypass(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.STM32F407)

	_, err := r.Freeze(NewConfig().HSE(8 * MHz).BypassHSE().Sysclk(168 * MHz))
	g.Expect(err).NotTo(HaveOccurred())

	w := d.Writes()
	byp := firstWrite(w, addrCR, func(v uint32) bool { return v&dev.RCC_CR_HSEBYP != 0 })
	on := firstWrite(w, addrCR, func(v uint32) bool { return v&dev.RCC_CR_HSEON != 0 })
	g.Expect(byp).To(BeNumerically(">=", 0))
	g.Expect(w[byp].Value & dev.RCC_CR_HSEON).To(BeZero())
	g.Expect(byp).To(BeNumerically("<", on))
}

func TestFreezeDividedBuses(t *testing.T) {
	g := NewWithT(t)
	_, r := setup(chip.STM32F407)

	clocks, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(168 * MHz).HCLK(84 * MHz))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(clocks.HCLK()).To(Equal(84 * MHz))
	g.Expect(clocks.PCLK1()).To(Equal(42 * MHz))
	g.Expect(clocks.PCLK2()).To(Equal(84 * MHz))
	g.Expect(clocks.TimClk1()).To(Equal(84 * MHz))
	g.Expect(clocks.TimClk2()).To(Equal(84 * MHz))
	g.Expect(clocks.PPRE1()).To(Equal(uint32(2)))
	g.Expect(clocks.PPRE2()).To(Equal(uint32(1)))
}

func TestFreezeManualPLL(t *testing.T) {
	g := NewWithT(t)
	_, r := setup(chip.STM32F407)

	clocks, err := r.Freeze(NewConfig().HSE(8*MHz).PLL(4, 168, 2, 7).RequirePLL48CLK())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(clocks.Sysclk()).To(Equal(168 * MHz))
	pll, ok := clocks.PLL()
	g.Expect(ok).To(BeTrue())
	g.Expect(pll).To(Equal(PLLParams{M: 4, N: 168, P: 2, Q: 7}))
}

func TestFreezeI2S(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.STM32F407)

	clocks, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(168 * MHz).I2SCLK(86 * MHz))
	g.Expect(err).NotTo(HaveOccurred())

	i2s, ok := clocks.I2SCLK()
	g.Expect(ok).To(BeTrue())
	g.Expect(i2s).To(Equal(86 * MHz))

	cfg := reg.New32(d, dev.RCC_BASE+0x84)
	g.Expect(cfg.Field(dev.RCC_PLLI2SCFGR_PLLI2SN_Msk, dev.RCC_PLLI2SCFGR_PLLI2SN_Pos)).To(Equal(uint32(172)))
	g.Expect(cfg.Field(dev.RCC_PLLI2SCFGR_PLLI2SR_Msk, dev.RCC_PLLI2SCFGR_PLLI2SR_Pos)).To(Equal(uint32(2)))
	g.Expect(d.Peek(addrCR) & dev.RCC_CR_PLLI2SRDY).NotTo(BeZero())
}

func TestFreezeSAI(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.STM32F429)

	clocks, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(168 * MHz).SAICLK(49152 * physic.KiloHertz))
	g.Expect(err).NotTo(HaveOccurred())

	sai, ok := clocks.SAICLK()
	g.Expect(ok).To(BeTrue())
	g.Expect(int64(sai / physic.Hertz)).To(BeNumerically("~", 49152000, 49152000/200))
	g.Expect(d.Peek(addrCR) & dev.RCC_CR_PLLSAIRDY).NotTo(BeZero())

	_, r = setup(chip.STM32F407)
	_, err = r.Freeze(NewConfig().HSE(8 * MHz).SAICLK(48 * MHz))
	g.Expect(errors.Is(err, ErrUnsupported)).To(BeTrue())
}

func TestBusCeiling(t *testing.T) {
	g := NewWithT(t)

	for _, c := range []*chip.Params{chip.STM32F401, chip.STM32F407, chip.STM32F411, chip.STM32F429, chip.STM32F446, chip.STM32F469} {
		for _, src := range []physic.Frequency{8 * MHz, 12 * MHz, 25 * MHz} {
			for _, cfg := range []Config{
				NewConfig().HSE(src).Sysclk(c.MaxSysclk),
				NewConfig().HSE(src).Sysclk(c.MaxSysclk / 2),
				NewConfig().HSE(src).Sysclk(c.MaxSysclk).PCLK2(c.MaxPclk2 / 2),
				NewConfig().HSE(src),
			} {
				plan, err := cfg.Plan(c)
				g.Expect(err).NotTo(HaveOccurred(), "%s", c)

				cl := plan.Clocks()
				g.Expect(cl.HCLK()).To(BeNumerically("<=", c.MaxHclk))
				g.Expect(cl.PCLK1()).To(BeNumerically("<=", c.MaxPclk1))
				g.Expect(cl.PCLK2()).To(BeNumerically("<=", c.MaxPclk2))
				g.Expect(cl.Sysclk()).To(BeNumerically("<=", c.MaxSysclk))
			}
		}
	}
}
