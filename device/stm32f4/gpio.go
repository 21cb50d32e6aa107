// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stm32f4

import (
	"sync/atomic"

	"github.com/bbnote/gostm32f4/reg"
)

type GPIO_Type struct {
	MODER   reg.Register32
	OTYPER  reg.Register32
	OSPEEDR reg.Register32
	PUPDR   reg.Register32
	IDR     reg.Register32
	ODR     reg.Register32
	BSRR    reg.Register32
	LCKR    reg.Register32
	AFR     [2]reg.Register32

	acc   reg.Accessor
	port  uint8
	split atomic.Bool
}

// NewGPIO returns the block of port (0 for GPIOA).
func NewGPIO(acc reg.Accessor, port uint8) *GPIO_Type {
	base := GPIOBase(port)
	r := func(off uint32) reg.Register32 { return reg.New32(acc, base+off) }
	return &GPIO_Type{
		MODER: r(0x00), OTYPER: r(0x04), OSPEEDR: r(0x08), PUPDR: r(0x0C),
		IDR: r(0x10), ODR: r(0x14), BSRR: r(0x18), LCKR: r(0x1C),
		AFR:  [2]reg.Register32{r(0x20), r(0x24)},
		acc:  acc,
		port: port,
	}
}

func GPIOBase(port uint8) uint32 {
	return GPIOA_BASE + uint32(port)*GPIO_STRIDE
}

// Port returns the port index, 0 for GPIOA.
func (g *GPIO_Type) Port() uint8 { return g.port }

// TakeSplit marks the port as split. It returns false if that already
// happened.
func (g *GPIO_Type) TakeSplit() bool {
	return g.split.CompareAndSwap(false, true)
}

// EXTI returns the EXTI block reachable from this port's bus. Pins use it
// to clear and poll their own pending bit.
func (g *GPIO_Type) EXTI() *EXTI_Type {
	return NewEXTI(g.acc, EXTI_BASE)
}
