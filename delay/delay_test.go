// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package delay

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"periph.io/x/conn/v3/physic"

	"github.com/bbnote/gostm32f4/chip"
	"github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/rcc"
	"github.com/bbnote/gostm32f4/sim"
)

func setup(g *WithT) (*sim.Device, *stm32f4.SysTick_Type, rcc.Clocks) {
	d := sim.New(sim.WithChip(chip.STM32F407))
	dp := stm32f4.StealFor(d, chip.STM32F407)
	clocks, err := rcc.NewFor(dp, chip.STM32F407).Freeze(rcc.NewConfig().HSE(8 * physic.MegaHertz).Sysclk(168 * physic.MegaHertz))
	g.Expect(err).NotTo(HaveOccurred())
	d.ClearLog()
	return d, stm32f4.StealCore(d).SysTick, clocks
}

// reloads returns the values written to LOAD.
func reloads(d *sim.Device, syst *stm32f4.SysTick_Type) []uint32 {
	var out []uint32
	for _, w := range d.Writes() {
		if w.Addr == syst.LOAD.Addr() {
			out = append(out, w.Value)
		}
	}
	return out
}

func TestDelayMs(t *testing.T) {
	g := NewWithT(t)
	d, syst, clocks := setup(g)

	delay := New(syst, clocks)
	g.Expect(delay.Frequency()).To(Equal(168 * physic.MegaHertz))

	delay.DelayMs(1)
	g.Expect(reloads(d, syst)).To(Equal([]uint32{168000 - 1}))
	g.Expect(syst.CTRL.Get()).To(BeZero())
}

func TestLongDelaySplitsReloads(t *testing.T) {
	g := NewWithT(t)
	d, syst, clocks := setup(g)

	New(syst, clocks).DelayMs(1000)

	// 168e6 ticks = 10 full 2^24 countdowns plus the rest
	r := reloads(d, syst)
	g.Expect(r).To(HaveLen(11))
	for _, v := range r[:10] {
		g.Expect(v).To(Equal(uint32(stm32f4.SysTick_LOAD_RELOAD_Msk)))
	}
	g.Expect(r[10]).To(Equal(uint32(168000000 - 10*(1<<24) - 1)))
}

func TestExternalReference(t *testing.T) {
	g := NewWithT(t)
	d, syst, clocks := setup(g)

	delay := NewExternal(syst, clocks)
	g.Expect(delay.Frequency()).To(Equal(21 * physic.MegaHertz))
	delay.DelayUs(10)
	g.Expect(reloads(d, syst)).To(Equal([]uint32{209}))

	var ctrl []uint32
	for _, w := range d.Writes() {
		if w.Addr == syst.CTRL.Addr() && w.Value != 0 {
			ctrl = append(ctrl, w.Value)
		}
	}
	g.Expect(ctrl).To(Equal([]uint32{stm32f4.SysTick_CTRL_ENABLE}))
}

func TestDuration(t *testing.T) {
	g := NewWithT(t)
	d, syst, clocks := setup(g)
	delay := New(syst, clocks)

	delay.Delay(0)
	g.Expect(reloads(d, syst)).To(BeEmpty())

	delay.Delay(250 * time.Microsecond)
	g.Expect(reloads(d, syst)).To(Equal([]uint32{42000 - 1}))
}
