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
)

const MHz = physic.MegaHertz

func TestCalculateMNPQNucleo(t *testing.T) {
	g := NewWithT(t)

	cfg := NewConfig().HSE(8 * MHz).Sysclk(168 * MHz).RequirePLL48CLK()
	req, ok := cfg.FreqRequest(chip.STM32F407)
	g.Expect(ok).To(BeTrue())

	pll, err := CalculateMNPQ(8*MHz, req, chip.STM32F407)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pll).To(Equal(PLLParams{M: 8, N: 336, P: 2, Q: 7}))
	g.Expect(pll.VCO(8 * MHz)).To(Equal(336 * MHz))
	g.Expect(pll.SysClk(8 * MHz)).To(Equal(168 * MHz))
	g.Expect(pll.PLL48CLK(8 * MHz)).To(Equal(48 * MHz))
}

func checkLegal(g *WithT, src physic.Frequency, req FreqRequest, c *chip.Params, p PLLParams) {
	s := uint64(src / physic.Hertz)

	g.Expect(p.M).To(BeNumerically(">=", 2))
	g.Expect(p.M).To(BeNumerically("<=", 63))
	g.Expect(s / uint64(p.M)).To(BeNumerically(">=", 1000000))
	g.Expect(s / uint64(p.M)).To(BeNumerically("<=", 2000000))
	g.Expect(p.N).To(BeNumerically(">=", 50))
	g.Expect(p.N).To(BeNumerically("<=", 432))

	vco := s * uint64(p.N) / uint64(p.M)
	g.Expect(vco).To(BeNumerically(">=", 100000000))
	g.Expect(vco).To(BeNumerically("<=", 432000000))
	g.Expect(p.P).To(BeElementOf(uint32(2), uint32(4), uint32(6), uint32(8)))

	out := vco / uint64(p.P)
	g.Expect(out).To(BeNumerically(">=", req.P.Min))
	g.Expect(out).To(BeNumerically("<=", req.P.Max))
	g.Expect(out).To(BeNumerically("<=", uint64(c.MaxSysclk/physic.Hertz)))

	g.Expect(p.Q).To(BeNumerically(">=", 2))
	g.Expect(p.Q).To(BeNumerically("<=", 15))
	if req.Q != nil {
		q := vco / uint64(p.Q)
		g.Expect(q).To(BeNumerically(">=", 48000000-120000))
		g.Expect(q).To(BeNumerically("<=", 48000000+120000))
	}
}

func TestCalculateMNPQLegality(t *testing.T) {
	g := NewWithT(t)

	for _, c := range []*chip.Params{chip.STM32F401, chip.STM32F407, chip.STM32F411, chip.STM32F429} {
		for _, src := range []physic.Frequency{8 * MHz, 12 * MHz, 25 * MHz} {
			max := int64(c.MaxSysclk / MHz)
			for sys := int64(24); sys <= max; sys += 4 {
				target := physic.Frequency(sys) * MHz
				req, ok := NewConfig().HSE(src).Sysclk(target).FreqRequest(c)
				g.Expect(ok).To(BeTrue())

				p, err := CalculateMNPQ(src, req, c)
				g.Expect(err).NotTo(HaveOccurred(), "%s from %s on %s", target, src, c)
				checkLegal(g, src, req, c, p)

				// whole MHz targets are hit exactly through a 1 MHz VCO input
				g.Expect(p.SysClk(src)).To(Equal(target))
			}
		}
	}
}

func TestCalculateMNPQWith48MHz(t *testing.T) {
	g := NewWithT(t)

	cases := []struct {
		chip   *chip.Params
		src    physic.Frequency
		sysclk physic.Frequency
	}{
		{chip.STM32F407, 8 * MHz, 168 * MHz},
		{chip.STM32F407, 12 * MHz, 168 * MHz},
		{chip.STM32F407, 25 * MHz, 168 * MHz},
		{chip.STM32F407, 8 * MHz, 48 * MHz},
		{chip.STM32F407, 25 * MHz, 120 * MHz},
		{chip.STM32F401, 8 * MHz, 84 * MHz},
		{chip.STM32F401, 25 * MHz, 84 * MHz},
		{chip.STM32F411, 25 * MHz, 96 * MHz},
		{chip.STM32F429, 8 * MHz, 168 * MHz},
	}
	for _, tc := range cases {
		req, _ := NewConfig().HSE(tc.src).Sysclk(tc.sysclk).RequirePLL48CLK().FreqRequest(tc.chip)
		p, err := CalculateMNPQ(tc.src, req, tc.chip)
		g.Expect(err).NotTo(HaveOccurred(), "%s from %s", tc.sysclk, tc.src)
		checkLegal(g, tc.src, req, tc.chip, p)
		g.Expect(p.SysClk(tc.src)).To(Equal(tc.sysclk))
	}
}

func TestCalculateMNPQInfeasible(t *testing.T) {
	g := NewWithT(t)

	// 1 GHz is far above any P output
	req := FreqRequest{P: &Range{Min: 995000000, Max: 1000000000}}
	_, err := CalculateMNPQ(8*MHz, req, chip.STM32F407)
	g.Expect(errors.Is(err, ErrNoPLLParams)).To(BeTrue())

	var se *SolveError
	g.Expect(errors.As(err, &se)).To(BeTrue())
	g.Expect(se.Constraint).NotTo(BeEmpty())

	// clipping to the chip maximum empties the window
	req, _ = NewConfig().HSE(8 * MHz).Sysclk(1000 * MHz).FreqRequest(chip.STM32F407)
	_, err = CalculateMNPQ(8*MHz, req, chip.STM32F407)
	g.Expect(errors.Is(err, ErrNoPLLParams)).To(BeTrue())

	// 180 MHz leaves no Q within 48 MHz +-120 kHz
	req, _ = NewConfig().HSE(8 * MHz).Sysclk(180 * MHz).RequirePLL48CLK().FreqRequest(chip.STM32F429)
	_, err = CalculateMNPQ(8*MHz, req, chip.STM32F429)
	g.Expect(errors.Is(err, ErrNoPLLParams)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("48 MHz"))

	// a 1 MHz source leaves the VCO input below 1 MHz for every M
	_, err = CalculateMNPQ(3*MHz, FreqRequest{P: &Range{Min: 1, Max: 100000000}}, chip.STM32F407)
	g.Expect(err).NotTo(HaveOccurred())
	_, err = CalculateMNPQ(1*MHz, FreqRequest{P: &Range{Min: 1, Max: 100000000}}, chip.STM32F407)
	g.Expect(errors.Is(err, ErrNoPLLParams)).To(BeTrue())
}

func TestCalculateMNPQDeterministic(t *testing.T) {
	g := NewWithT(t)

	req, _ := NewConfig().HSE(25 * MHz).SysclkRange(150*MHz, 170*MHz).RequirePLL48CLK().FreqRequest(chip.STM32F407)
	first, err := CalculateMNPQ(25*MHz, req, chip.STM32F407)
	g.Expect(err).NotTo(HaveOccurred())

	for i := 0; i < 5; i++ {
		again, err := CalculateMNPQ(25*MHz, req, chip.STM32F407)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(again).To(Equal(first))
	}
}

func TestValidate(t *testing.T) {
	g := NewWithT(t)

	g.Expect(PLLParams{M: 8, N: 336, P: 2, Q: 7}.Validate(8*MHz, chip.STM32F407)).To(Succeed())

	bad := []PLLParams{
		{M: 1, N: 336, P: 2, Q: 7},
		{M: 16, N: 336, P: 2, Q: 7},
		{M: 8, N: 40, P: 2, Q: 7},
		{M: 8, N: 433, P: 2, Q: 7},
		{M: 8, N: 336, P: 3, Q: 7},
		{M: 8, N: 400, P: 2, Q: 8},
		{M: 8, N: 336, P: 2, Q: 1},
		{M: 8, N: 336, P: 2, Q: 16},
	}
	for _, p := range bad {
		err := p.Validate(8*MHz, chip.STM32F407)
		g.Expect(errors.Is(err, ErrNoPLLParams)).To(BeTrue(), p.String())
	}
}

func TestI2SAndSAI(t *testing.T) {
	g := NewWithT(t)

	i2s, out, err := calculateI2S(8000000, 8, 86000000, chip.STM32F407)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal(uint32(86000000)))
	g.Expect(i2s.N * 1000000 / i2s.R).To(Equal(uint32(86000000)))

	_, _, err = calculateI2S(8000000, 8, 86000000, &chip.Params{Name: "none"})
	g.Expect(errors.Is(err, ErrUnsupported)).To(BeTrue())

	sai, out, err := calculateSAI(8000000, 8, 49152000, chip.STM32F429)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sai.DivQ).To(BeNumerically(">=", 1))
	g.Expect(out).To(BeNumerically("~", 49152000, 49152000/200))

	_, _, err = calculateSAI(8000000, 8, 49152000, chip.STM32F407)
	g.Expect(errors.Is(err, ErrUnsupported)).To(BeTrue())
}

func TestPLL48Only(t *testing.T) {
	g := NewWithT(t)

	req, ok := NewConfig().HSE(8 * MHz).RequirePLL48CLK().FreqRequest(chip.STM32F407)
	g.Expect(ok).To(BeTrue())
	g.Expect(req.P).To(BeNil())
	g.Expect(req.Q).NotTo(BeNil())

	cases := []struct {
		chip *chip.Params
		cfg  Config
		src  physic.Frequency
		osc  Source
	}{
		{chip.STM32F407, NewConfig().HSE(8 * MHz).RequirePLL48CLK(), 8 * MHz, SourceHSE},
		{chip.STM32F401, NewConfig().HSE(8 * MHz).RequirePLL48CLK(), 8 * MHz, SourceHSE},
		{chip.STM32F407, NewConfig().RequirePLL48CLK(), HSI, SourceHSI},
		{chip.STM32F429, NewConfig().HSE(25 * MHz).Sysclk(25 * MHz).RequirePLL48CLK(), 25 * MHz, SourceHSE},
	}
	for _, tc := range cases {
		plan, err := tc.cfg.Plan(tc.chip)
		g.Expect(err).NotTo(HaveOccurred(), "%s from %s", tc.chip, tc.src)

		g.Expect(plan.UsePLL).To(BeTrue())
		g.Expect(plan.Sysclk).To(Equal(tc.osc))
		g.Expect(plan.PLL.Validate(tc.src, tc.chip)).To(Succeed())

		cl := plan.Clocks()
		g.Expect(cl.Sysclk()).To(Equal(tc.src))
		g.Expect(cl.Source()).To(Equal(tc.osc))
		g.Expect(cl.IsPLL48CLKValid()).To(BeTrue())
		pll48, ok := cl.PLL48CLK()
		g.Expect(ok).To(BeTrue())
		g.Expect(pll48).To(Equal(48 * MHz))
		g.Expect(plan.Latency).To(BeZero())
	}

	_, err := CalculateMNPQ(8*MHz, FreqRequest{}, chip.STM32F407)
	g.Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
}
