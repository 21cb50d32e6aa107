// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package stm32f4 describes the register blocks of the STM32F4 line.
//
// Names follow the vendor reference manual (RM0090, RM0368, RM0383): a block
// type is <PERIPH>_Type, bit constants are <PERIPH>_<REG>_<FIELD> with _Pos
// and _Msk companions for multi bit fields.
package stm32f4

import (
	"github.com/bbnote/gostm32f4/reg"
)

// Base addresses.
const (
	PWR_BASE    = 0x40007000
	SYSCFG_BASE = 0x40013800
	EXTI_BASE   = 0x40013C00
	GPIOA_BASE  = 0x40020000
	GPIO_STRIDE = 0x400
	RCC_BASE    = 0x40023800
	FLASH_BASE  = 0x40023C00

	SysTick_BASE = 0xE000E010
	SCB_BASE     = 0xE000ED00
	DBGMCU_BASE  = 0xE0042000
)

type RCC_Type struct {
	CR         reg.Register32 // 0x00
	PLLCFGR    reg.Register32 // 0x04
	CFGR       reg.Register32 // 0x08
	CIR        reg.Register32 // 0x0C
	AHB1RSTR   reg.Register32 // 0x10
	AHB2RSTR   reg.Register32 // 0x14
	AHB3RSTR   reg.Register32 // 0x18
	APB1RSTR   reg.Register32 // 0x20
	APB2RSTR   reg.Register32 // 0x24
	AHB1ENR    reg.Register32 // 0x30
	AHB2ENR    reg.Register32 // 0x34
	AHB3ENR    reg.Register32 // 0x38
	APB1ENR    reg.Register32 // 0x40
	APB2ENR    reg.Register32 // 0x44
	AHB1LPENR  reg.Register32 // 0x50
	AHB2LPENR  reg.Register32 // 0x54
	AHB3LPENR  reg.Register32 // 0x58
	APB1LPENR  reg.Register32 // 0x60
	APB2LPENR  reg.Register32 // 0x64
	BDCR       reg.Register32 // 0x70
	CSR        reg.Register32 // 0x74
	SSCGR      reg.Register32 // 0x80
	PLLI2SCFGR reg.Register32 // 0x84
	PLLSAICFGR reg.Register32 // 0x88
	DCKCFGR    reg.Register32 // 0x8C
}

func NewRCC(acc reg.Accessor, base uint32) *RCC_Type {
	r := func(off uint32) reg.Register32 { return reg.New32(acc, base+off) }
	return &RCC_Type{
		CR: r(0x00), PLLCFGR: r(0x04), CFGR: r(0x08), CIR: r(0x0C),
		AHB1RSTR: r(0x10), AHB2RSTR: r(0x14), AHB3RSTR: r(0x18),
		APB1RSTR: r(0x20), APB2RSTR: r(0x24),
		AHB1ENR: r(0x30), AHB2ENR: r(0x34), AHB3ENR: r(0x38),
		APB1ENR: r(0x40), APB2ENR: r(0x44),
		AHB1LPENR: r(0x50), AHB2LPENR: r(0x54), AHB3LPENR: r(0x58),
		APB1LPENR: r(0x60), APB2LPENR: r(0x64),
		BDCR: r(0x70), CSR: r(0x74), SSCGR: r(0x80),
		PLLI2SCFGR: r(0x84), PLLSAICFGR: r(0x88), DCKCFGR: r(0x8C),
	}
}

type FLASH_Type struct {
	ACR     reg.Register32
	KEYR    reg.Register32
	OPTKEYR reg.Register32
	SR      reg.Register32
	CR      reg.Register32
	OPTCR   reg.Register32
}

func NewFLASH(acc reg.Accessor, base uint32) *FLASH_Type {
	return &FLASH_Type{
		ACR:     reg.New32(acc, base),
		KEYR:    reg.New32(acc, base+0x04),
		OPTKEYR: reg.New32(acc, base+0x08),
		SR:      reg.New32(acc, base+0x0C),
		CR:      reg.New32(acc, base+0x10),
		OPTCR:   reg.New32(acc, base+0x14),
	}
}

type PWR_Type struct {
	CR  reg.Register32
	CSR reg.Register32
}

func NewPWR(acc reg.Accessor, base uint32) *PWR_Type {
	return &PWR_Type{CR: reg.New32(acc, base), CSR: reg.New32(acc, base+0x04)}
}

type SYSCFG_Type struct {
	MEMRMP reg.Register32
	PMC    reg.Register32
	EXTICR [4]reg.Register32
	CMPCR  reg.Register32
}

func NewSYSCFG(acc reg.Accessor, base uint32) *SYSCFG_Type {
	s := &SYSCFG_Type{
		MEMRMP: reg.New32(acc, base),
		PMC:    reg.New32(acc, base+0x04),
		CMPCR:  reg.New32(acc, base+0x20),
	}
	for i := range s.EXTICR {
		s.EXTICR[i] = reg.New32(acc, base+0x08+uint32(i)*4)
	}
	return s
}

type EXTI_Type struct {
	IMR   reg.Register32
	EMR   reg.Register32
	RTSR  reg.Register32
	FTSR  reg.Register32
	SWIER reg.Register32
	PR    reg.Register32
}

func NewEXTI(acc reg.Accessor, base uint32) *EXTI_Type {
	return &EXTI_Type{
		IMR:   reg.New32(acc, base),
		EMR:   reg.New32(acc, base+0x04),
		RTSR:  reg.New32(acc, base+0x08),
		FTSR:  reg.New32(acc, base+0x0C),
		SWIER: reg.New32(acc, base+0x10),
		PR:    reg.New32(acc, base+0x14),
	}
}

type DBGMCU_Type struct {
	IDCODE reg.Register32
	CR     reg.Register32
}

func NewDBGMCU(acc reg.Accessor, base uint32) *DBGMCU_Type {
	return &DBGMCU_Type{IDCODE: reg.New32(acc, base), CR: reg.New32(acc, base+0x04)}
}

// DeviceID returns the DEV_ID and REV_ID fields of IDCODE.
func (d *DBGMCU_Type) DeviceID() (dev uint16, rev uint16) {
	v := d.IDCODE.Get()
	return uint16(v & DBGMCU_IDCODE_DEV_ID_Msk), uint16(v >> DBGMCU_IDCODE_REV_ID_Pos)
}

type SCB_Type struct {
	CPUID reg.Register32
	ICSR  reg.Register32
	VTOR  reg.Register32
	AIRCR reg.Register32
}

func NewSCB(acc reg.Accessor, base uint32) *SCB_Type {
	return &SCB_Type{
		CPUID: reg.New32(acc, base),
		ICSR:  reg.New32(acc, base+0x04),
		VTOR:  reg.New32(acc, base+0x08),
		AIRCR: reg.New32(acc, base+0x0C),
	}
}

type SysTick_Type struct {
	CTRL  reg.Register32
	LOAD  reg.Register32
	VAL   reg.Register32
	CALIB reg.Register32
}

func NewSysTick(acc reg.Accessor, base uint32) *SysTick_Type {
	return &SysTick_Type{
		CTRL:  reg.New32(acc, base),
		LOAD:  reg.New32(acc, base+0x04),
		VAL:   reg.New32(acc, base+0x08),
		CALIB: reg.New32(acc, base+0x0C),
	}
}
