// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package rcc

import (
	"github.com/bbnote/gostm32f4/device/stm32f4"
)

type prescaler struct {
	div  uint32
	bits uint32
}

var (
	ahbPrescalers = [...]prescaler{
		{1, 0x0}, {2, 0x8}, {4, 0x9}, {8, 0xa}, {16, 0xb},
		{64, 0xc}, {128, 0xd}, {256, 0xe}, {512, 0xf},
	}
	apbPrescalers = [...]prescaler{
		{1, 0x0}, {2, 0x4}, {4, 0x5}, {8, 0x6}, {16, 0x7},
	}
)

// pick returns the smallest divider that brings in down to at most want.
func pick(table []prescaler, in, want uint32) (prescaler, bool) {
	for _, p := range table {
		if (in+p.div-1)/p.div <= want {
			return p, true
		}
	}
	return prescaler{}, false
}

func ahbDivider(bits uint32) uint32 {
	for _, p := range ahbPrescalers {
		if p.bits == bits {
			return p.div
		}
	}
	// 0b0xxx is not divided
	return 1
}

func apbDivider(bits uint32) uint32 {
	for _, p := range apbPrescalers {
		if p.bits == bits {
			return p.div
		}
	}
	return 1
}

// cfgrPrescalers returns the HPRE, PPRE1 and PPRE2 fields in RCC_CFGR
// layout.
func cfgrPrescalers(hpre, ppre1, ppre2 prescaler) uint32 {
	return hpre.bits<<stm32f4.RCC_CFGR_HPRE_Pos |
		ppre1.bits<<stm32f4.RCC_CFGR_PPRE1_Pos |
		ppre2.bits<<stm32f4.RCC_CFGR_PPRE2_Pos
}
