// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package rcc

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/bbnote/gostm32f4/chip"
	dev "github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/reg"
)

func TestEnableThroughBitBand(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.Target)
	ahb1enr := uint32(dev.RCC_BASE + 0x30)

	reads := d.Reads()
	r.Enable(GPIOD)
	g.Expect(d.Peek(ahb1enr) & (1 << 3)).NotTo(BeZero())
	g.Expect(r.IsEnabled(GPIOD)).To(BeTrue())

	w := d.Writes()
	g.Expect(w).To(HaveLen(1))
	alias, _ := reg.BitBandAddress(ahb1enr, 3)
	g.Expect(w[0].Alias).To(Equal(alias))
	// read back after the enable
	g.Expect(d.Reads()).To(BeNumerically(">", reads))

	r.Disable(GPIOD)
	g.Expect(r.IsEnabled(GPIOD)).To(BeFalse())
	// other bits are untouched
	g.Expect(d.Peek(ahb1enr)).To(Equal(uint32(0x00100000)))
}

func TestResetPulse(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.Target)
	apb1rstr := uint32(dev.RCC_BASE + 0x20)

	r.Reset(USART2)

	w := d.Writes()
	g.Expect(w).To(HaveLen(2))
	g.Expect(w[0].Addr).To(Equal(apb1rstr))
	g.Expect(w[0].Value).To(Equal(uint32(1 << 17)))
	g.Expect(w[1].Value).To(BeZero())
	g.Expect(d.Peek(apb1rstr)).To(BeZero())
}

func TestLowPowerEnable(t *testing.T) {
	g := NewWithT(t)
	d, r := setup(chip.Target)
	apb1lpenr := uint32(dev.RCC_BASE + 0x60)

	r.EnableLowPower(TIM2)
	g.Expect(d.Peek(apb1lpenr)).To(Equal(uint32(1)))
	r.DisableLowPower(TIM2)
	g.Expect(d.Peek(apb1lpenr)).To(BeZero())
}

func TestPeripheralTable(t *testing.T) {
	g := NewWithT(t)

	g.Expect(GPIOA.Bus()).To(Equal(AHB1))
	g.Expect(GPIOA.Bit()).To(Equal(uint8(0)))
	g.Expect(USART2.Bus()).To(Equal(APB1))
	g.Expect(USART2.Bit()).To(Equal(uint8(17)))
	g.Expect(SPI1.Bus()).To(Equal(APB2))
	g.Expect(SPI1.Bit()).To(Equal(uint8(12)))
	g.Expect(SYSCFG.Bit()).To(Equal(uint8(14)))
	g.Expect(OTGFS.Bus()).To(Equal(AHB2))
	g.Expect(PWR.Bit()).To(Equal(uint8(28)))
	g.Expect(GPIOD.String()).To(Equal("GPIOD"))

	p, ok := GPIOPort(3)
	g.Expect(ok).To(BeTrue())
	g.Expect(p).To(Equal(GPIOD))
	p, ok = GPIOPort(7)
	g.Expect(ok).To(BeTrue())
	g.Expect(p).To(Equal(GPIOH))
	_, ok = GPIOPort(11)
	g.Expect(ok).To(BeFalse())

	// names are unique and each (bus, bit) is used once
	seen := map[string]bool{}
	bits := map[[2]uint8]bool{}
	for _, p := range Peripherals() {
		g.Expect(seen[p.String()]).To(BeFalse(), p.String())
		seen[p.String()] = true
		key := [2]uint8{uint8(p.Bus()), p.Bit()}
		g.Expect(bits[key]).To(BeFalse(), p.String())
		bits[key] = true
	}
}

func TestBusClockOfPeripheral(t *testing.T) {
	g := NewWithT(t)
	_, r := setup(chip.STM32F407)

	clocks, err := r.Freeze(NewConfig().HSE(8 * MHz).Sysclk(168 * MHz))
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(clocks.BusClock(USART2)).To(Equal(42 * MHz))
	g.Expect(clocks.BusClock(SPI1)).To(Equal(84 * MHz))
	g.Expect(clocks.BusClock(GPIOD)).To(Equal(168 * MHz))
	g.Expect(clocks.TimerClock(TIM2)).To(Equal(84 * MHz))
	g.Expect(clocks.TimerClock(TIM1)).To(Equal(168 * MHz))
}
