// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

import (
	"testing"

	. "github.com/onsi/gomega"
	pgpio "periph.io/x/conn/v3/gpio"
	ppin "periph.io/x/conn/v3/pin"

	"github.com/bbnote/gostm32f4/rcc"
)

func TestErasedOutput(t *testing.T) {
	g := NewWithT(t)
	_, dp, r := setup()
	pins := SplitErased(dp.GPIOC, r)
	led := pins[13]

	g.Expect(led.Name()).To(Equal("PC13"))
	g.Expect(led.Number()).To(Equal(2*16 + 13))
	g.Expect(r.IsEnabled(rcc.GPIOC)).To(BeTrue())

	g.Expect(led.Toggle()).To(MatchError(ErrWrongMode))

	g.Expect(led.Out(pgpio.High)).To(Succeed())
	g.Expect(led.Mode()).To(Equal(ModeOutput))
	g.Expect(led.Func()).To(Equal(pgpio.OUT))
	g.Expect(dp.GPIOC.ODR.Get() & (1 << 13)).NotTo(BeZero())
	g.Expect(led.Read()).To(Equal(pgpio.High))

	g.Expect(led.Toggle()).To(Succeed())
	g.Expect(dp.GPIOC.ODR.Get() & (1 << 13)).To(BeZero())
	g.Expect(led.Read()).To(Equal(pgpio.Low))

	g.Expect(led.SetFunc(pgpio.OUT_OC)).To(Succeed())
	g.Expect(led.Func()).To(Equal(pgpio.OUT_OC))
}

func TestErasedSetFunc(t *testing.T) {
	g := NewWithT(t)
	_, dp, r := setup()
	pa2 := SplitErased(dp.GPIOA, r)[2]

	g.Expect(pa2.SetFunc("USART2_TX")).To(Succeed())
	g.Expect(pa2.Mode()).To(Equal(ModeAlternate))
	g.Expect(dp.GPIOA.AFR[0].Field(0xf, 8)).To(Equal(uint32(7)))
	g.Expect(pa2.Func()).To(Equal(ppin.Func("USART2_TX")))
	g.Expect(pa2.SupportedFuncs()).To(ContainElement(ppin.Func("TIM2_CH3")))

	g.Expect(pa2.SetFunc("SPI1_SCK")).To(MatchError(ErrIllegalAF))
	g.Expect(pa2.SetFunc("NO_SUCH_SIGNAL")).To(MatchError(ErrUnknownFunc))
	g.Expect(pa2.IntoAlternate(12)).To(MatchError(ErrIllegalAF))
	g.Expect(pa2.Func()).To(Equal(ppin.Func("USART2_TX")))

	g.Expect(pa2.SetFunc(FuncAnalog)).To(Succeed())
	g.Expect(pa2.Mode()).To(Equal(ModeAnalog))
	g.Expect(pa2.Read()).To(Equal(pgpio.Low))
}

func TestErasedInput(t *testing.T) {
	g := NewWithT(t)
	d, dp, r := setup()
	pins := SplitErased(dp.GPIOA, r)
	pa0 := pins[0]

	g.Expect(pa0.In(pgpio.Float, pgpio.RisingEdge)).To(MatchError(ErrNoSysCfg))

	g.Expect(pa0.In(pgpio.PullUp, pgpio.NoEdge)).To(Succeed())
	g.Expect(pa0.Pull()).To(Equal(pgpio.PullUp))
	g.Expect(pa0.Read()).To(Equal(pgpio.High))

	d.SetInput(0, 0, false)
	g.Expect(pa0.Read()).To(Equal(pgpio.Low))

	g.Expect(pins[13].DefaultPull()).To(Equal(pgpio.PullUp))
	g.Expect(pins[14].DefaultPull()).To(Equal(pgpio.PullDown))
	g.Expect(pa0.DefaultPull()).To(Equal(pgpio.Float))
}

func TestErasedEdge(t *testing.T) {
	g := NewWithT(t)
	d, dp, r := setup()
	sys := NewSysCfg(dp.SYSCFG, r)
	pc1 := SplitErased(dp.GPIOC, r)[1].UseSysCfg(sys)

	d.SetInput(2, 1, false)
	g.Expect(pc1.In(pgpio.Float, pgpio.RisingEdge)).To(Succeed())
	g.Expect(sys.Routed(1)).To(Equal(PortC))
	g.Expect(pc1.WaitForEdge(0)).To(BeFalse())

	d.SetInput(2, 1, true)
	g.Expect(pc1.WaitForEdge(0)).To(BeTrue())
	g.Expect(pc1.WaitForEdge(0)).To(BeFalse())

	g.Expect(pc1.Halt()).To(Succeed())
	d.SetInput(2, 1, false)
	d.SetInput(2, 1, true)
	g.Expect(pc1.WaitForEdge(0)).To(BeFalse())
}

func TestParsePin(t *testing.T) {
	cases := []struct {
		name string
		port Port
		n    uint8
		err  bool
	}{
		{"PD12", PortD, 12, false},
		{"pa0", PortA, 0, false},
		{"PK7", PortK, 7, false},
		{"PA16", 0, 0, true},
		{"PZ1", 0, 0, true},
		{"P", 0, 0, true},
		{"PA1x", 0, 0, true},
		{"D12", 0, 0, true},
	}

	for _, c := range cases {
		g := NewWithT(t)
		port, n, err := ParsePin(c.name)
		if c.err {
			g.Expect(err).To(MatchError(ErrUnknownPin), c.name)
			continue
		}
		g.Expect(err).NotTo(HaveOccurred(), c.name)
		g.Expect(port).To(Equal(c.port), c.name)
		g.Expect(n).To(Equal(c.n), c.name)
	}
}

func TestSplitErasedBondedPins(t *testing.T) {
	g := NewWithT(t)
	_, dp, r := setup()

	short := map[string]struct {
		port Port
		pins int
	}{
		"stm32f401": {PortH, 2},
		"stm32f407": {PortI, 12},
		"stm32f429": {PortK, 8},
	}[Family]
	g.Expect(short.pins).NotTo(BeZero(), Family)
	g.Expect(int(portPins[short.port])).To(Equal(short.pins))

	pins := SplitErased(dp.Port(uint8(short.port)), r)
	for n, p := range pins {
		if n < short.pins {
			g.Expect(p).NotTo(BeNil())
			g.Expect(p.Number()).To(Equal(int(short.port)*16 + n))
		} else {
			g.Expect(p).To(BeNil(), "pin %d", n)
		}
	}

	full := SplitErased(dp.GPIOA, r)
	g.Expect(full[15]).NotTo(BeNil())
}
