// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package chip

import (
	"testing"

	. "github.com/onsi/gomega"
	"periph.io/x/conn/v3/physic"
)

func TestWaitStates(t *testing.T) {
	g := NewWithT(t)

	cases := []struct {
		chip *Params
		hclk physic.Frequency
		vr   VoltageRange
		ws   uint8
	}{
		{STM32F407, 16 * physic.MegaHertz, Range2V7to3V6, 0},
		{STM32F407, 30 * physic.MegaHertz, Range2V7to3V6, 0},
		{STM32F407, 31 * physic.MegaHertz, Range2V7to3V6, 1},
		{STM32F407, 168 * physic.MegaHertz, Range2V7to3V6, 5},
		{STM32F407, 168 * physic.MegaHertz, Range2V4to2V7, 6},
		{STM32F407, 138 * physic.MegaHertz, Range1V8to2V1, 6},
		{STM32F401, 84 * physic.MegaHertz, Range2V7to3V6, 2},
		{STM32F429, 180 * physic.MegaHertz, Range2V7to3V6, 5},
		{STM32F429, 180 * physic.MegaHertz, Range1V8to2V1, 8},
	}
	for _, c := range cases {
		ws, err := c.chip.WaitStates(c.hclk, c.vr)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(ws).To(Equal(c.ws), "%s at %s, %s", c.chip, c.hclk, c.vr)
	}

	_, err := STM32F407.WaitStates(168*physic.MegaHertz, Range1V8to2V1)
	g.Expect(err).To(HaveOccurred())
}

func TestLookup(t *testing.T) {
	g := NewWithT(t)

	g.Expect(ByDeviceID(0x413)).To(BeIdenticalTo(STM32F407))
	g.Expect(ByDeviceID(0x6419)).To(BeIdenticalTo(STM32F429))
	g.Expect(ByDeviceID(0x433)).To(BeIdenticalTo(STM32F401))
	g.Expect(ByDeviceID(0x440)).To(BeNil())

	g.Expect(ByName("STM32F407VG")).To(BeIdenticalTo(STM32F407))
	g.Expect(ByName("stm32f446")).To(BeIdenticalTo(STM32F446))
	g.Expect(ByName("stm32f103")).To(BeNil())
}

func TestPorts(t *testing.T) {
	g := NewWithT(t)

	g.Expect(STM32F401.HasPort(4)).To(BeTrue())
	g.Expect(STM32F401.HasPort(5)).To(BeFalse())
	g.Expect(STM32F401.HasPort(7)).To(BeTrue())
	g.Expect(STM32F429.HasPort(10)).To(BeTrue())
	g.Expect(STM32F429.HasPort(11)).To(BeFalse())
}

func TestBusLimits(t *testing.T) {
	g := NewWithT(t)

	for _, p := range []*Params{STM32F401, STM32F407, STM32F411, STM32F429, STM32F446, STM32F469} {
		g.Expect(p.MaxPclk1).To(BeNumerically("<=", p.MaxPclk2), p.Name)
		g.Expect(p.MaxPclk2).To(BeNumerically("<=", p.MaxHclk), p.Name)
		g.Expect(p.VCOMin).To(BeNumerically(">=", 100*physic.MegaHertz), p.Name)
	}
}
