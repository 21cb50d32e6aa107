// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

import (
	"fmt"

	"github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/irq"
	"github.com/bbnote/gostm32f4/rcc"
	"github.com/bbnote/gostm32f4/reg"
)

// bank is a split port. Pins of one port share it; read-modify-write
// sequences on its registers run inside irq.Free.
type bank struct {
	regs *stm32f4.GPIO_Type
	exti *stm32f4.EXTI_Type
	port Port
	pins [16]pinState
}

func split(regs *stm32f4.GPIO_Type, port Port, r *rcc.RCC) *bank {
	if Port(regs.Port()) != port {
		panic(fmt.Errorf("%w: %v is not %v", ErrPortMismatch, Port(regs.Port()), port))
	}
	if !regs.TakeSplit() {
		panic(ErrAlreadySplit)
	}
	if p, ok := rcc.GPIOPort(uint8(port)); ok {
		r.Enable(p)
	}
	log().Debugf("%v split", port)
	return &bank{regs: regs, exti: regs.EXTI(), port: port}
}

func (b *bank) replace(r reg.Register32, n, width uint8, mask, v uint32) {
	irq.Free(func() { r.ReplaceBits(v, mask, n*width) })
}

func (b *bank) setMode(n uint8, mode uint32) {
	b.replace(b.regs.MODER, n, 2, stm32f4.GPIO_MODER_Msk, mode)
}

func (b *bank) mode(n uint8) uint32 {
	return b.regs.MODER.Field(stm32f4.GPIO_MODER_Msk, n*2)
}

func (b *bank) setPull(n uint8, p Pull) {
	v := uint32(stm32f4.GPIO_PUPDR_None)
	switch p {
	case PullUp:
		v = stm32f4.GPIO_PUPDR_PullUp
	case PullDown:
		v = stm32f4.GPIO_PUPDR_PullDown
	}
	b.replace(b.regs.PUPDR, n, 2, stm32f4.GPIO_PUPDR_Msk, v)
}

func (b *bank) pull(n uint8) Pull {
	switch b.regs.PUPDR.Field(stm32f4.GPIO_PUPDR_Msk, n*2) {
	case stm32f4.GPIO_PUPDR_PullUp:
		return PullUp
	case stm32f4.GPIO_PUPDR_PullDown:
		return PullDown
	}
	return PullNone
}

func (b *bank) setOpenDrain(n uint8, on bool) {
	var v uint32
	if on {
		v = 1
	}
	b.replace(b.regs.OTYPER, n, 1, 1, v)
}

func (b *bank) openDrain(n uint8) bool {
	return b.regs.OTYPER.Field(1, n) != 0
}

func (b *bank) setSpeed(n uint8, s Speed) {
	b.replace(b.regs.OSPEEDR, n, 2, stm32f4.GPIO_OSPEEDR_Msk, uint32(s))
}

func (b *bank) setAF(n, af uint8) {
	b.replace(b.regs.AFR[n/8], n%8, 4, stm32f4.GPIO_AFR_Msk, uint32(af))
}

func (b *bank) af(n uint8) uint8 {
	return uint8(b.regs.AFR[n/8].Field(stm32f4.GPIO_AFR_Msk, (n%8)*4))
}

// set and reset go through BSRR and need no critical section.
func (b *bank) set(n uint8)   { b.regs.BSRR.Set(1 << n) }
func (b *bank) reset(n uint8) { b.regs.BSRR.Set(1 << (n + 16)) }

func (b *bank) write(n uint8, high bool) {
	if high {
		b.set(n)
	} else {
		b.reset(n)
	}
}

func (b *bank) input(n uint8) bool  { return b.regs.IDR.Get()&(1<<n) != 0 }
func (b *bank) output(n uint8) bool { return b.regs.ODR.Get()&(1<<n) != 0 }

func (b *bank) toggle(n uint8) {
	// one BSRR store: reset the pin if it is set, set it otherwise
	odr := b.regs.ODR.Get() & (1 << n)
	b.regs.BSRR.Set(odr<<16 | (^odr & (1 << n)))
}

func (b *bank) intoInput(n uint8, p Pull) {
	b.setPull(n, p)
	b.setMode(n, stm32f4.GPIO_MODER_Input)
}

func (b *bank) intoOutput(n uint8, openDrain bool, high bool) {
	b.write(n, high)
	b.setOpenDrain(n, openDrain)
	b.setMode(n, stm32f4.GPIO_MODER_Output)
}

func (b *bank) intoAlternate(n, af uint8) {
	b.setAF(n, af)
	b.setMode(n, stm32f4.GPIO_MODER_Alternate)
}

func (b *bank) intoAnalog(n uint8) {
	b.setPull(n, PullNone)
	b.setMode(n, stm32f4.GPIO_MODER_Analog)
}
