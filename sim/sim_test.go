// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/bbnote/gostm32f4/chip"
	dev "github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/reg"
)

func TestResetValues(t *testing.T) {
	g := NewWithT(t)
	d := New(WithChip(chip.STM32F407))

	g.Expect(d.Load32(rccCR)).To(Equal(uint32(0x83)))
	g.Expect(d.Load32(rccPLLCFGR)).To(Equal(uint32(0x24003010)))
	g.Expect(d.Load32(dev.GPIOBase(0))).To(Equal(uint32(0xA8000000)))
	g.Expect(d.Load32(dev.GPIOBase(1) + 0x0C)).To(Equal(uint32(0x100)))

	id, _ := dev.NewDBGMCU(d, dev.DBGMCU_BASE).DeviceID()
	g.Expect(chip.ByDeviceID(id)).To(BeIdenticalTo(chip.STM32F407))
}

func TestReadyFollowsEnable(t *testing.T) {
	g := NewWithT(t)
	d := New(WithLatency(2))
	cr := reg.New32(d, rccCR)

	cr.SetBits(dev.RCC_CR_HSEON)
	g.Expect(cr.HasBits(dev.RCC_CR_HSERDY)).To(BeFalse())
	g.Expect(cr.HasBits(dev.RCC_CR_HSERDY)).To(BeFalse())
	g.Expect(cr.HasBits(dev.RCC_CR_HSERDY)).To(BeTrue())

	cr.ClearBits(dev.RCC_CR_HSEON)
	g.Expect(cr.HasBits(dev.RCC_CR_HSERDY)).To(BeFalse())
}

func TestFaults(t *testing.T) {
	g := NewWithT(t)
	d := New(HSEFault(), PLLFault())
	cr := reg.New32(d, rccCR)

	cr.SetBits(dev.RCC_CR_HSEON | dev.RCC_CR_PLLON)
	for i := 0; i < 10; i++ {
		g.Expect(cr.HasBits(dev.RCC_CR_HSERDY | dev.RCC_CR_PLLRDY)).To(BeFalse())
	}
}

func TestClockSwitchStatus(t *testing.T) {
	g := NewWithT(t)
	d := New()
	cfgr := reg.New32(d, rccCFGR)
	cr := reg.New32(d, rccCR)

	cfgr.ReplaceBits(dev.RCC_CFGR_SW_PLL, dev.RCC_CFGR_SW_Msk, dev.RCC_CFGR_SW_Pos)
	g.Expect(cfgr.Field(dev.RCC_CFGR_SWS_Msk, dev.RCC_CFGR_SWS_Pos)).To(Equal(uint32(dev.RCC_CFGR_SW_HSI)))

	cr.SetBits(dev.RCC_CR_PLLON)
	g.Expect(cfgr.Field(dev.RCC_CFGR_SWS_Msk, dev.RCC_CFGR_SWS_Pos)).To(Equal(uint32(dev.RCC_CFGR_SW_PLL)))
}

func TestSystemClockSourceStaysOn(t *testing.T) {
	g := NewWithT(t)
	d := New()
	cfgr := reg.New32(d, rccCFGR)
	cr := reg.New32(d, rccCR)
	pllcfgr := reg.New32(d, rccPLLCFGR)

	cr.SetBits(dev.RCC_CR_PLLON)
	cfgr.ReplaceBits(dev.RCC_CFGR_SW_PLL, dev.RCC_CFGR_SW_Msk, dev.RCC_CFGR_SW_Pos)
	g.Expect(cfgr.Field(dev.RCC_CFGR_SWS_Msk, dev.RCC_CFGR_SWS_Pos)).To(Equal(uint32(dev.RCC_CFGR_SW_PLL)))

	// PLLON holds and the dividers keep their value
	cr.ClearBits(dev.RCC_CR_PLLON)
	g.Expect(cr.HasBits(dev.RCC_CR_PLLON | dev.RCC_CR_PLLRDY)).To(BeTrue())
	pllcfgr.Set(0x07405408)
	g.Expect(pllcfgr.Get()).To(Equal(uint32(0x24003010)))

	cfgr.ReplaceBits(dev.RCC_CFGR_SW_HSI, dev.RCC_CFGR_SW_Msk, dev.RCC_CFGR_SW_Pos)
	g.Expect(cfgr.Field(dev.RCC_CFGR_SWS_Msk, dev.RCC_CFGR_SWS_Pos)).To(Equal(uint32(dev.RCC_CFGR_SW_HSI)))
	cr.ClearBits(dev.RCC_CR_PLLON | dev.RCC_CR_HSION)
	g.Expect(cr.HasBits(dev.RCC_CR_PLLON)).To(BeFalse())
	g.Expect(cr.HasBits(dev.RCC_CR_HSION)).To(BeTrue())
	pllcfgr.Set(0x07405408)
	g.Expect(pllcfgr.Get()).To(Equal(uint32(0x07405408)))
}

func TestBitBandStore(t *testing.T) {
	g := NewWithT(t)
	d := New()
	enr := reg.New32(d, rccAHB1ENR)

	enr.Bit(2).Set()
	g.Expect(enr.Get()).To(Equal(uint32(0x00100004)))
	g.Expect(enr.Bit(2).Get()).To(BeTrue())

	w := d.Writes()
	g.Expect(w).To(HaveLen(1))
	g.Expect(w[0].Addr).To(Equal(uint32(rccAHB1ENR)))
	g.Expect(w[0].Alias).To(Equal(uint32(0x42470608)))
}

func TestGPIOOutputAndInput(t *testing.T) {
	g := NewWithT(t)
	d := New()
	port := dev.NewGPIO(d, 3)

	port.MODER.ReplaceBits(dev.GPIO_MODER_Output, dev.GPIO_MODER_Msk, 24)
	port.BSRR.Set(1 << 12)
	g.Expect(port.ODR.Get()).To(Equal(uint32(1 << 12)))
	g.Expect(port.IDR.HasBits(1 << 12)).To(BeTrue())

	port.BSRR.Set(1 << (12 + 16))
	g.Expect(port.IDR.HasBits(1 << 12)).To(BeFalse())

	// floating input with pull-up, then driven low from outside
	port.PUPDR.ReplaceBits(dev.GPIO_PUPDR_PullUp, dev.GPIO_PUPDR_Msk, 2)
	g.Expect(port.IDR.HasBits(1 << 1)).To(BeTrue())
	d.SetInput(3, 1, false)
	g.Expect(port.IDR.HasBits(1 << 1)).To(BeFalse())
	d.Release(3, 1)
	g.Expect(port.IDR.HasBits(1 << 1)).To(BeTrue())
}

func TestEXTIEdges(t *testing.T) {
	g := NewWithT(t)
	d := New()
	syscfg := dev.NewSYSCFG(d, dev.SYSCFG_BASE)
	exti := dev.NewEXTI(d, dev.EXTI_BASE)

	// line 5 from port C, rising edge
	syscfg.EXTICR[1].ReplaceBits(2, dev.SYSCFG_EXTICR_Msk, 4)
	exti.RTSR.SetBits(1 << 5)

	d.SetInput(2, 5, true)
	g.Expect(exti.PR.HasBits(1 << 5)).To(BeTrue())

	exti.PR.Set(1 << 5)
	g.Expect(exti.PR.HasBits(1 << 5)).To(BeFalse())

	d.SetInput(2, 5, false)
	g.Expect(exti.PR.HasBits(1 << 5)).To(BeFalse())

	// same line number on another port is not routed
	d.SetInput(0, 5, true)
	g.Expect(exti.PR.HasBits(1 << 5)).To(BeFalse())
}
