// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stm32f4

import (
	"sync/atomic"

	"github.com/bbnote/gostm32f4/chip"
	"github.com/bbnote/gostm32f4/reg"
)

// Peripherals holds one handle per register block of the chip. There is one
// set of registers per microcontroller, so Take hands it out once per
// program run.
type Peripherals struct {
	RCC    *RCC_Type
	FLASH  *FLASH_Type
	PWR    *PWR_Type
	SYSCFG *SYSCFG_Type
	EXTI   *EXTI_Type
	DBGMCU *DBGMCU_Type

	// GPIO ports missing on the chip are nil.
	GPIOA, GPIOB, GPIOC, GPIOD, GPIOE, GPIOF *GPIO_Type
	GPIOG, GPIOH, GPIOI, GPIOJ, GPIOK        *GPIO_Type
}

// CorePeripherals are the Cortex-M4 system blocks.
type CorePeripherals struct {
	SCB     *SCB_Type
	SysTick *SysTick_Type
}

var (
	taken     atomic.Bool
	coreTaken atomic.Bool
)

// Take returns the peripherals the first time it is called and false on
// every later call.
func Take(acc reg.Accessor) (*Peripherals, bool) {
	if !taken.CompareAndSwap(false, true) {
		return nil, false
	}
	return Steal(acc), true
}

// Steal builds the peripherals without consulting the take-once gate. Two
// live sets alias the same registers; this is meant for tests and for host
// tools driving a target through a probe.
func Steal(acc reg.Accessor) *Peripherals {
	return StealFor(acc, chip.Target)
}

// StealFor is Steal for an explicit chip family.
func StealFor(acc reg.Accessor, c *chip.Params) *Peripherals {
	p := &Peripherals{
		RCC:    NewRCC(acc, RCC_BASE),
		FLASH:  NewFLASH(acc, FLASH_BASE),
		PWR:    NewPWR(acc, PWR_BASE),
		SYSCFG: NewSYSCFG(acc, SYSCFG_BASE),
		EXTI:   NewEXTI(acc, EXTI_BASE),
		DBGMCU: NewDBGMCU(acc, DBGMCU_BASE),
	}

	ports := []**GPIO_Type{
		&p.GPIOA, &p.GPIOB, &p.GPIOC, &p.GPIOD, &p.GPIOE, &p.GPIOF,
		&p.GPIOG, &p.GPIOH, &p.GPIOI, &p.GPIOJ, &p.GPIOK,
	}
	for i, dst := range ports {
		if c.HasPort(uint8(i)) {
			*dst = NewGPIO(acc, uint8(i))
		}
	}
	return p
}

// TakeCore is Take for the core peripherals.
func TakeCore(acc reg.Accessor) (*CorePeripherals, bool) {
	if !coreTaken.CompareAndSwap(false, true) {
		return nil, false
	}
	return StealCore(acc), true
}

func StealCore(acc reg.Accessor) *CorePeripherals {
	return &CorePeripherals{
		SCB:     NewSCB(acc, SCB_BASE),
		SysTick: NewSysTick(acc, SysTick_BASE),
	}
}

// Port returns the block of port index i or nil.
func (p *Peripherals) Port(i uint8) *GPIO_Type {
	ports := [...]*GPIO_Type{
		p.GPIOA, p.GPIOB, p.GPIOC, p.GPIOD, p.GPIOE, p.GPIOF,
		p.GPIOG, p.GPIOH, p.GPIOI, p.GPIOJ, p.GPIOK,
	}
	if int(i) >= len(ports) {
		return nil
	}
	return ports[i]
}
