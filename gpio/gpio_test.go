// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	pgpio "periph.io/x/conn/v3/gpio"

	"github.com/bbnote/gostm32f4/chip"
	"github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/irq"
	"github.com/bbnote/gostm32f4/rcc"
	"github.com/bbnote/gostm32f4/sim"
)

func setup() (*sim.Device, *stm32f4.Peripherals, *rcc.RCC) {
	d := sim.New(sim.WithChip(chip.Target))
	dp := stm32f4.StealFor(d, chip.Target)
	return d, dp, rcc.NewFor(dp, chip.Target)
}

func panicValue(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

func panicsWith(g *WithT, target error, fn func()) {
	v := panicValue(fn)
	err, ok := v.(error)
	g.Expect(ok).To(BeTrue(), "expected a panic with an error, got %v", v)
	g.Expect(errors.Is(err, target)).To(BeTrue(), err.Error())
}

func TestSplitEnablesClockOnce(t *testing.T) {
	g := NewWithT(t)
	_, dp, r := setup()

	g.Expect(r.IsEnabled(rcc.GPIOA)).To(BeFalse())
	parts := SplitA(dp.GPIOA, r)
	g.Expect(r.IsEnabled(rcc.GPIOA)).To(BeTrue())
	g.Expect(parts.PA5.Name()).To(Equal("PA5"))

	panicsWith(g, ErrAlreadySplit, func() { SplitA(dp.GPIOA, r) })
	panicsWith(g, ErrPortMismatch, func() { SplitB(dp.GPIOA, r) })
}

func TestPushPullOutput(t *testing.T) {
	g := NewWithT(t)
	d, dp, r := setup()
	parts := SplitA(dp.GPIOA, r)
	d.ClearLog()

	led := parts.PA5.IntoPushPullOutput()
	g.Expect(dp.GPIOA.MODER.Field(0x3, 10)).To(Equal(uint32(stm32f4.GPIO_MODER_Output)))
	g.Expect(dp.GPIOA.OTYPER.Field(0x1, 5)).To(BeZero())
	g.Expect(led.IsSetLow()).To(BeTrue())

	d.ClearLog()
	led.SetHigh()
	w := d.Writes()
	g.Expect(w).To(HaveLen(1))
	g.Expect(w[0].Addr).To(Equal(dp.GPIOA.BSRR.Addr()))
	g.Expect(w[0].Value).To(Equal(uint32(1 << 5)))
	g.Expect(led.IsSetHigh()).To(BeTrue())
	g.Expect(led.IsHigh()).To(BeTrue())

	d.ClearLog()
	led.Toggle()
	w = d.Writes()
	g.Expect(w).To(HaveLen(1))
	g.Expect(w[0].Value).To(Equal(uint32(1 << 21)))
	g.Expect(led.IsSetLow()).To(BeTrue())

	led.Toggle()
	g.Expect(led.IsSetHigh()).To(BeTrue())
	led.SetState(pgpio.Low)
	g.Expect(led.IsSetHigh()).To(BeFalse())

	led.SetSpeed(SpeedVeryHigh)
	g.Expect(dp.GPIOA.OSPEEDR.Field(0x3, 10)).To(Equal(uint32(stm32f4.GPIO_OSPEEDR_VeryHigh)))
}

func TestOutputLatchSetBeforeMode(t *testing.T) {
	g := NewWithT(t)
	d, dp, r := setup()
	parts := SplitB(dp.GPIOB, r)
	d.ClearLog()

	out := parts.PB0.IntoPushPullOutputInState(pgpio.High)
	g.Expect(out.IsSetHigh()).To(BeTrue())

	bsrr, moder := -1, -1
	for i, w := range d.Writes() {
		switch w.Addr {
		case dp.GPIOB.BSRR.Addr():
			bsrr = i
		case dp.GPIOB.MODER.Addr():
			moder = i
		}
	}
	g.Expect(bsrr).To(BeNumerically(">=", 0))
	g.Expect(moder).To(BeNumerically(">", bsrr))
}

func TestInputLevels(t *testing.T) {
	g := NewWithT(t)
	d, dp, r := setup()
	parts := SplitA(dp.GPIOA, r)

	in := parts.PA0.IntoPullUpInput()
	g.Expect(dp.GPIOA.PUPDR.Field(0x3, 0)).To(Equal(uint32(stm32f4.GPIO_PUPDR_PullUp)))
	g.Expect(in.IsHigh()).To(BeTrue())

	d.SetInput(0, 0, false)
	g.Expect(in.IsLow()).To(BeTrue())
	g.Expect(in.Read()).To(Equal(pgpio.Low))

	d.Release(0, 0)
	in2 := in.IntoPullDownInput()
	g.Expect(in2.IsLow()).To(BeTrue())
	g.Expect(dp.GPIOA.PUPDR.Field(0x3, 0)).To(Equal(uint32(stm32f4.GPIO_PUPDR_PullDown)))

	an := in2.IntoAnalog()
	g.Expect(dp.GPIOA.MODER.Field(0x3, 0)).To(Equal(uint32(stm32f4.GPIO_MODER_Analog)))
	g.Expect(dp.GPIOA.PUPDR.Field(0x3, 0)).To(BeZero())
	g.Expect(an.Name()).To(Equal("PA0"))
}

func TestOpenDrainOutput(t *testing.T) {
	g := NewWithT(t)
	d, dp, r := setup()
	parts := SplitB(dp.GPIOB, r)

	sda := parts.PB7.IntoOpenDrainOutput()
	g.Expect(dp.GPIOB.OTYPER.Field(0x1, 7)).To(Equal(uint32(1)))
	g.Expect(sda.IsSetHigh()).To(BeTrue())

	// released line follows the external pull-up
	d.SetInput(1, 7, true)
	g.Expect(sda.IsHigh()).To(BeTrue())
	sda.SetLow()
	g.Expect(sda.IsHigh()).To(BeFalse())
}

func TestConsumedHandlePanics(t *testing.T) {
	g := NewWithT(t)
	_, dp, r := setup()
	parts := SplitA(dp.GPIOA, r)

	led := parts.PA5.IntoPushPullOutput()
	panicsWith(g, ErrPinMoved, func() { parts.PA5.IntoFloatingInput() })

	in := led.IntoFloatingInput()
	panicsWith(g, ErrPinMoved, func() { led.SetHigh() })
	panicsWith(g, ErrPinMoved, func() { IntoAF5(led) })

	// the current handle keeps working
	g.Expect(in.IsLow()).To(BeTrue())

	var zero Input[PA1]
	panicsWith(g, ErrPinMoved, func() { zero.IsHigh() })
}

func TestAlternateFunctions(t *testing.T) {
	g := NewWithT(t)
	_, dp, r := setup()
	parts := SplitA(dp.GPIOA, r)

	tx := IntoAF7(parts.PA2)
	g.Expect(dp.GPIOA.MODER.Field(0x3, 4)).To(Equal(uint32(stm32f4.GPIO_MODER_Alternate)))
	g.Expect(dp.GPIOA.AFR[0].Field(0xf, 8)).To(Equal(uint32(7)))
	g.Expect(tx.Signal()).To(Equal("USART2_TX"))

	// pins 8 to 15 live in the high register
	tx1 := IntoAF7(parts.PA9)
	g.Expect(dp.GPIOA.AFR[1].Field(0xf, 4)).To(Equal(uint32(7)))
	g.Expect(tx1.Signal()).To(Equal("USART1_TX"))

	sck := IntoAF5(parts.PA5)
	sck.SetSpeed(SpeedHigh)
	sck.SetPull(PullDown)
	g.Expect(dp.GPIOA.PUPDR.Field(0x3, 10)).To(Equal(uint32(stm32f4.GPIO_PUPDR_PullDown)))
	g.Expect(sck.Signal()).To(Equal("SPI1_SCK"))

	// an alternate pin can move to another slot
	tim := IntoAF1(sck)
	g.Expect(dp.GPIOA.AFR[0].Field(0xf, 20)).To(Equal(uint32(1)))
	g.Expect(tim.Signal()).To(Equal("TIM2_CH1_ETR"))

	partsB := SplitB(dp.GPIOB, r)
	scl := IntoAF4(partsB.PB6)
	scl.SetOpenDrain()
	g.Expect(dp.GPIOB.OTYPER.Field(0x1, 6)).To(Equal(uint32(1)))
	g.Expect(scl.Signal()).To(Equal("I2C1_SCL"))
	scl.SetPushPull()
	g.Expect(dp.GPIOB.OTYPER.Field(0x1, 6)).To(BeZero())
}

func TestDebuggerPins(t *testing.T) {
	g := NewWithT(t)
	_, dp, r := setup()
	parts := SplitA(dp.GPIOA, r)

	// SWDIO comes out of reset in alternate mode
	g.Expect(dp.GPIOA.MODER.Field(0x3, 26)).To(Equal(uint32(stm32f4.GPIO_MODER_Alternate)))
	in := parts.PA15.IntoFloatingInput()
	g.Expect(dp.GPIOA.MODER.Field(0x3, 30)).To(Equal(uint32(stm32f4.GPIO_MODER_Input)))
	g.Expect(in.Name()).To(Equal("PA15"))

	swdio := IntoAF0(parts.PA13)
	g.Expect(swdio.Signal()).To(Equal("JTMS_SWDIO"))
}

func TestInterruptLine(t *testing.T) {
	g := NewWithT(t)
	d, dp, r := setup()
	sys := NewSysCfg(dp.SYSCFG, r)
	g.Expect(r.IsEnabled(rcc.SYSCFG)).To(BeTrue())

	parts := SplitC(dp.GPIOC, r)
	btn := parts.PC13.IntoPullUpInput()
	btn.MakeInterruptSource(sys)
	btn.TriggerOnEdge(dp.EXTI, pgpio.FallingEdge)
	btn.EnableInterrupt(dp.EXTI)

	g.Expect(sys.Routed(13)).To(Equal(PortC))
	g.Expect(dp.EXTI.IMR.Get() & (1 << 13)).NotTo(BeZero())
	g.Expect(dp.EXTI.FTSR.Get() & (1 << 13)).NotTo(BeZero())
	g.Expect(dp.EXTI.RTSR.Get() & (1 << 13)).To(BeZero())
	g.Expect(btn.CheckInterrupt()).To(BeFalse())

	d.SetInput(2, 13, false)
	g.Expect(btn.CheckInterrupt()).To(BeTrue())
	btn.ClearInterruptPendingBit()
	g.Expect(btn.CheckInterrupt()).To(BeFalse())

	// releasing the button is a rising edge and does not trigger
	d.Release(2, 13)
	g.Expect(btn.CheckInterrupt()).To(BeFalse())

	btn.TriggerOnEdge(dp.EXTI, pgpio.BothEdges)
	d.SetInput(2, 13, false)
	g.Expect(btn.CheckInterrupt()).To(BeTrue())

	btn.DisableInterrupt(dp.EXTI)
	g.Expect(dp.EXTI.IMR.Get() & (1 << 13)).To(BeZero())
}

func TestInterruptHandlerThroughCell(t *testing.T) {
	g := NewWithT(t)
	d, dp, r := setup()
	sys := NewSysCfg(dp.SYSCFG, r)

	parts := SplitC(dp.GPIOC, r)
	btn := parts.PC13.IntoPullUpInput()
	btn.MakeInterruptSource(sys)
	btn.TriggerOnEdge(dp.EXTI, pgpio.FallingEdge)
	btn.EnableInterrupt(dp.EXTI)

	var cell irq.Cell[Input[PC13]]
	g.Expect(cell.Put(btn)).To(Succeed())
	d.SetInput(2, 13, false)

	// handler running in its own goroutine reconfigures the pin it owns
	handled := make(chan bool)
	go func() {
		var fired bool
		cell.With(func(p *Input[PC13]) {
			fired = p.CheckInterrupt()
			p.ClearInterruptPendingBit()
			p.DisableInterrupt(dp.EXTI)
		})
		handled <- fired
	}()

	g.Eventually(handled, time.Second).Should(Receive(BeTrue()))
	g.Expect(dp.EXTI.IMR.Get() & (1 << 13)).To(BeZero())
	g.Expect(dp.EXTI.PR.Get() & (1 << 13)).To(BeZero())
}

func TestLookup(t *testing.T) {
	g := NewWithT(t)

	locs, err := Lookup("USART2_TX")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(locs).To(ContainElement(Location{Port: PortA, Pin: 2, AF: 7}))
	g.Expect(locs).To(ContainElement(Location{Port: PortD, Pin: 5, AF: 7}))
	g.Expect(locs[0].String()).To(Equal("PA2 AF7"))

	_, err = Lookup("USART9_TX")
	g.Expect(errors.Is(err, ErrInvalidSignal)).To(BeTrue())
}

func TestPortNames(t *testing.T) {
	g := NewWithT(t)

	g.Expect(PortA.String()).To(Equal("GPIOA"))
	g.Expect(PortK.String()).To(Equal("GPIOK"))
	g.Expect(pinName(PortD, 12)).To(Equal("PD12"))
	g.Expect(pinName(PortH, 1)).To(Equal("PH1"))
}
