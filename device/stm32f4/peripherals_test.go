// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stm32f4

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/bbnote/gostm32f4/chip"
)

type memory map[uint32]uint32

func (m memory) Load32(addr uint32) uint32 { return m[addr] }

func (m memory) Store32(addr, value uint32) { m[addr] = value }

func TestTakeOnce(t *testing.T) {
	g := NewWithT(t)

	p, ok := Take(memory{})
	g.Expect(ok).To(BeTrue())
	g.Expect(p).NotTo(BeNil())

	p, ok = Take(memory{})
	g.Expect(ok).To(BeFalse())
	g.Expect(p).To(BeNil())

	c, ok := TakeCore(memory{})
	g.Expect(ok).To(BeTrue())
	g.Expect(c.SysTick.LOAD.Addr()).To(Equal(uint32(0xE000E014)))

	_, ok = TakeCore(memory{})
	g.Expect(ok).To(BeFalse())
}

func TestRegisterLayout(t *testing.T) {
	g := NewWithT(t)
	p := StealFor(memory{}, chip.STM32F429)

	g.Expect(p.RCC.PLLCFGR.Addr()).To(Equal(uint32(0x40023804)))
	g.Expect(p.RCC.AHB1ENR.Addr()).To(Equal(uint32(0x40023830)))
	g.Expect(p.RCC.APB2LPENR.Addr()).To(Equal(uint32(0x40023864)))
	g.Expect(p.RCC.DCKCFGR.Addr()).To(Equal(uint32(0x4002388C)))
	g.Expect(p.FLASH.ACR.Addr()).To(Equal(uint32(0x40023C00)))
	g.Expect(p.SYSCFG.EXTICR[3].Addr()).To(Equal(uint32(0x40013814)))
	g.Expect(p.EXTI.PR.Addr()).To(Equal(uint32(0x40013C14)))
	g.Expect(p.GPIOC.BSRR.Addr()).To(Equal(uint32(0x40020818)))
	g.Expect(p.GPIOK.AFR[1].Addr()).To(Equal(uint32(0x40022824)))
}

func TestPortsFollowChip(t *testing.T) {
	g := NewWithT(t)

	p := StealFor(memory{}, chip.STM32F401)
	g.Expect(p.GPIOE).NotTo(BeNil())
	g.Expect(p.GPIOF).To(BeNil())
	g.Expect(p.GPIOH).NotTo(BeNil())
	g.Expect(p.Port(7).Port()).To(Equal(uint8(7)))
	g.Expect(p.Port(11)).To(BeNil())

	p = StealFor(memory{}, chip.STM32F407)
	g.Expect(p.GPIOI).NotTo(BeNil())
	g.Expect(p.GPIOJ).To(BeNil())
}

func TestSplitFlag(t *testing.T) {
	g := NewWithT(t)
	port := NewGPIO(memory{}, 0)

	g.Expect(port.TakeSplit()).To(BeTrue())
	g.Expect(port.TakeSplit()).To(BeFalse())
}

func TestDeviceID(t *testing.T) {
	g := NewWithT(t)
	m := memory{DBGMCU_BASE: 0x10076413}

	dev, rev := NewDBGMCU(m, DBGMCU_BASE).DeviceID()
	g.Expect(dev).To(Equal(uint16(0x413)))
	g.Expect(rev).To(Equal(uint16(0x1007)))
}
