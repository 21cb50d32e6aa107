// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

import (
	pgpio "periph.io/x/conn/v3/gpio"

	"github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/irq"
	"github.com/bbnote/gostm32f4/rcc"
)

// SysCfg is the SYSCFG block with its clock running. It routes ports to
// the sixteen EXTI lines.
type SysCfg struct {
	regs *stm32f4.SYSCFG_Type
}

// NewSysCfg enables the SYSCFG clock.
func NewSysCfg(regs *stm32f4.SYSCFG_Type, r *rcc.RCC) *SysCfg {
	r.Enable(rcc.SYSCFG)
	return &SysCfg{regs: regs}
}

// route connects EXTI line n to port.
func (s *SysCfg) route(port Port, n uint8) {
	irq.Free(func() {
		s.regs.EXTICR[n/4].ReplaceBits(uint32(port), stm32f4.SYSCFG_EXTICR_Msk, (n%4)*4)
	})
}

// Routed returns the port EXTI line n listens to.
func (s *SysCfg) Routed(n uint8) Port {
	return Port(s.regs.EXTICR[n/4].Field(stm32f4.SYSCFG_EXTICR_Msk, (n%4)*4))
}

func triggerOnEdge(e *stm32f4.EXTI_Type, n uint8, edge pgpio.Edge) {
	mask := uint32(1) << n
	irq.Free(func() {
		switch edge {
		case pgpio.RisingEdge:
			e.RTSR.SetBits(mask)
			e.FTSR.ClearBits(mask)
		case pgpio.FallingEdge:
			e.RTSR.ClearBits(mask)
			e.FTSR.SetBits(mask)
		case pgpio.BothEdges:
			e.RTSR.SetBits(mask)
			e.FTSR.SetBits(mask)
		default:
			e.RTSR.ClearBits(mask)
			e.FTSR.ClearBits(mask)
		}
	})
}

// MakeInterruptSource routes the pin's EXTI line to its port. The line
// number equals the pin number, so PA3 and PB3 cannot both be sources.
func (p exti[I]) MakeInterruptSource(s *SysCfg) {
	p.check()
	var id I
	s.route(id.Port(), id.Number())
}

func (p exti[I]) TriggerOnEdge(e *stm32f4.EXTI_Type, edge pgpio.Edge) {
	p.check()
	triggerOnEdge(e, p.n(), edge)
}

func (p exti[I]) EnableInterrupt(e *stm32f4.EXTI_Type) {
	p.check()
	irq.Free(func() { e.IMR.SetBits(1 << p.n()) })
}

func (p exti[I]) DisableInterrupt(e *stm32f4.EXTI_Type) {
	p.check()
	irq.Free(func() { e.IMR.ClearBits(1 << p.n()) })
}

// ClearInterruptPendingBit acknowledges the line. PR is write one to
// clear, so other lines are not affected.
func (p exti[I]) ClearInterruptPendingBit() {
	p.check()
	p.b.exti.PR.Set(1 << p.n())
}

// CheckInterrupt reports whether the line has a pending edge.
func (p exti[I]) CheckInterrupt() bool {
	p.check()
	return p.b.exti.PR.Get()&(1<<p.n()) != 0
}
