// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package chip holds the electrical limits of the STM32F4 families.
//
// The values are taken from the clock tree and embedded flash chapters of
// the reference manuals and the datasheets' operating conditions.
package chip

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// VoltageRange is the supply range the flash wait states are sized for.
type VoltageRange uint8

const (
	Range2V7to3V6 VoltageRange = iota
	Range2V4to2V7
	Range2V1to2V4
	Range1V8to2V1
)

func (v VoltageRange) String() string {
	switch v {
	case Range2V7to3V6:
		return "2.7-3.6V"
	case Range2V4to2V7:
		return "2.4-2.7V"
	case Range2V1to2V4:
		return "2.1-2.4V"
	case Range1V8to2V1:
		return "1.8-2.1V"
	}
	return fmt.Sprintf("VoltageRange(%d)", uint8(v))
}

type Params struct {
	Name string

	MaxSysclk physic.Frequency
	MaxHclk   physic.Frequency
	MaxPclk1  physic.Frequency
	MaxPclk2  physic.Frequency

	VCOInMin physic.Frequency
	VCOInMax physic.Frequency
	VCOMin   physic.Frequency
	VCOMax   physic.Frequency
	PLLNMin  uint16
	PLLNMax  uint16

	// Above OverDriveAbove the regulator has to run in over-drive mode.
	HasOverDrive   bool
	OverDriveAbove physic.Frequency

	// VOS is the PWR_CR voltage scaling field for full speed operation.
	VOS uint32

	HasPLLI2S     bool
	PLLI2SSharesM bool
	HasPLLSAI     bool

	// FlashStep is the hclk covered by each flash wait state, per
	// VoltageRange.
	FlashStep  [4]physic.Frequency
	MaxLatency uint8

	// Ports lists the GPIO port letters bonded out on the largest package.
	Ports string

	RAMSize uint32
}

func (p *Params) String() string { return p.Name }

// HasPort reports whether port index i (0 for A) exists.
func (p *Params) HasPort(i uint8) bool {
	return i < 11 && strings.IndexByte(p.Ports, 'A'+i) >= 0
}

// WaitStates returns the flash latency needed at hclk.
func (p *Params) WaitStates(hclk physic.Frequency, vr VoltageRange) (uint8, error) {
	if int(vr) >= len(p.FlashStep) {
		return 0, fmt.Errorf("invalid voltage range %d", vr)
	}
	step := uint64(p.FlashStep[vr])
	ws := (uint64(hclk) + step - 1) / step
	if ws > 0 {
		ws--
	}
	if ws > uint64(p.MaxLatency) {
		return 0, fmt.Errorf("%s: %s needs %d wait states at %s, max is %d", p.Name, hclk, ws, vr, p.MaxLatency)
	}
	return uint8(ws), nil
}

var (
	STM32F401 = &Params{
		Name:          "STM32F401",
		MaxSysclk:     84 * physic.MegaHertz,
		MaxHclk:       84 * physic.MegaHertz,
		MaxPclk1:      42 * physic.MegaHertz,
		MaxPclk2:      84 * physic.MegaHertz,
		VCOInMin:      1 * physic.MegaHertz,
		VCOInMax:      2 * physic.MegaHertz,
		VCOMin:        192 * physic.MegaHertz,
		VCOMax:        432 * physic.MegaHertz,
		PLLNMin:       50,
		PLLNMax:       432,
		VOS:           0x2,
		HasPLLI2S:     true,
		PLLI2SSharesM: true,
		FlashStep:     [4]physic.Frequency{30 * physic.MegaHertz, 24 * physic.MegaHertz, 18 * physic.MegaHertz, 16 * physic.MegaHertz},
		MaxLatency:    7,
		Ports:         "ABCDEH",
		RAMSize:       0x18000,
	}

	STM32F407 = &Params{
		Name:          "STM32F405/F407",
		MaxSysclk:     168 * physic.MegaHertz,
		MaxHclk:       168 * physic.MegaHertz,
		MaxPclk1:      42 * physic.MegaHertz,
		MaxPclk2:      84 * physic.MegaHertz,
		VCOInMin:      1 * physic.MegaHertz,
		VCOInMax:      2 * physic.MegaHertz,
		VCOMin:        100 * physic.MegaHertz,
		VCOMax:        432 * physic.MegaHertz,
		PLLNMin:       50,
		PLLNMax:       432,
		VOS:           0x1,
		HasPLLI2S:     true,
		PLLI2SSharesM: true,
		FlashStep:     [4]physic.Frequency{30 * physic.MegaHertz, 24 * physic.MegaHertz, 22 * physic.MegaHertz, 20 * physic.MegaHertz},
		MaxLatency:    7,
		Ports:         "ABCDEFGHI",
		RAMSize:       0x20000,
	}

	STM32F411 = &Params{
		Name:       "STM32F411",
		MaxSysclk:  100 * physic.MegaHertz,
		MaxHclk:    100 * physic.MegaHertz,
		MaxPclk1:   50 * physic.MegaHertz,
		MaxPclk2:   100 * physic.MegaHertz,
		VCOInMin:   1 * physic.MegaHertz,
		VCOInMax:   2 * physic.MegaHertz,
		VCOMin:     100 * physic.MegaHertz,
		VCOMax:     432 * physic.MegaHertz,
		PLLNMin:    50,
		PLLNMax:    432,
		VOS:        0x3,
		HasPLLI2S:  true,
		FlashStep:  [4]physic.Frequency{30 * physic.MegaHertz, 24 * physic.MegaHertz, 18 * physic.MegaHertz, 16 * physic.MegaHertz},
		MaxLatency: 7,
		Ports:      "ABCDEH",
		RAMSize:    0x20000,
	}

	STM32F429 = &Params{
		Name:           "STM32F427/F429",
		MaxSysclk:      180 * physic.MegaHertz,
		MaxHclk:        180 * physic.MegaHertz,
		MaxPclk1:       45 * physic.MegaHertz,
		MaxPclk2:       90 * physic.MegaHertz,
		VCOInMin:       1 * physic.MegaHertz,
		VCOInMax:       2 * physic.MegaHertz,
		VCOMin:         100 * physic.MegaHertz,
		VCOMax:         432 * physic.MegaHertz,
		PLLNMin:        50,
		PLLNMax:        432,
		HasOverDrive:   true,
		OverDriveAbove: 168 * physic.MegaHertz,
		VOS:            0x3,
		HasPLLI2S:      true,
		PLLI2SSharesM:  true,
		HasPLLSAI:      true,
		FlashStep:      [4]physic.Frequency{30 * physic.MegaHertz, 24 * physic.MegaHertz, 22 * physic.MegaHertz, 20 * physic.MegaHertz},
		MaxLatency:     15,
		Ports:          "ABCDEFGHIJK",
		RAMSize:        0x30000,
	}

	// The F446 PLLSAI has its own input divider and a different register
	// layout; only its main PLL and PLLI2S are modelled.
	STM32F446 = &Params{
		Name:           "STM32F446",
		MaxSysclk:      180 * physic.MegaHertz,
		MaxHclk:        180 * physic.MegaHertz,
		MaxPclk1:       45 * physic.MegaHertz,
		MaxPclk2:       90 * physic.MegaHertz,
		VCOInMin:       1 * physic.MegaHertz,
		VCOInMax:       2 * physic.MegaHertz,
		VCOMin:         100 * physic.MegaHertz,
		VCOMax:         432 * physic.MegaHertz,
		PLLNMin:        50,
		PLLNMax:        432,
		HasOverDrive:   true,
		OverDriveAbove: 168 * physic.MegaHertz,
		VOS:            0x3,
		HasPLLI2S:      true,
		FlashStep:      [4]physic.Frequency{30 * physic.MegaHertz, 24 * physic.MegaHertz, 22 * physic.MegaHertz, 20 * physic.MegaHertz},
		MaxLatency:     15,
		Ports:          "ABCDEFGH",
		RAMSize:        0x20000,
	}

	STM32F469 = &Params{
		Name:           "STM32F469/F479",
		MaxSysclk:      180 * physic.MegaHertz,
		MaxHclk:        180 * physic.MegaHertz,
		MaxPclk1:       45 * physic.MegaHertz,
		MaxPclk2:       90 * physic.MegaHertz,
		VCOInMin:       1 * physic.MegaHertz,
		VCOInMax:       2 * physic.MegaHertz,
		VCOMin:         100 * physic.MegaHertz,
		VCOMax:         432 * physic.MegaHertz,
		PLLNMin:        50,
		PLLNMax:        432,
		HasOverDrive:   true,
		OverDriveAbove: 168 * physic.MegaHertz,
		VOS:            0x3,
		HasPLLI2S:      true,
		PLLI2SSharesM:  true,
		HasPLLSAI:      true,
		FlashStep:      [4]physic.Frequency{30 * physic.MegaHertz, 24 * physic.MegaHertz, 22 * physic.MegaHertz, 20 * physic.MegaHertz},
		MaxLatency:     15,
		Ports:          "ABCDEFGHIJK",
		RAMSize:        0x50000,
	}
)

var families = map[string]*Params{
	"stm32f401": STM32F401,
	"stm32f405": STM32F407,
	"stm32f407": STM32F407,
	"stm32f411": STM32F411,
	"stm32f427": STM32F429,
	"stm32f429": STM32F429,
	"stm32f446": STM32F446,
	"stm32f469": STM32F469,
}

// ByName looks up a family by its part number prefix, e.g. "stm32f407" or
// "STM32F407VG".
func ByName(name string) *Params {
	n := strings.ToLower(name)
	if len(n) > 9 {
		n = n[:9]
	}
	return families[n]
}

var deviceIDs = map[uint16]*Params{
	0x413: STM32F407,
	0x419: STM32F429,
	0x423: STM32F401,
	0x433: STM32F401,
	0x431: STM32F411,
	0x421: STM32F446,
	0x434: STM32F469,
}

// ByDeviceID maps the DBGMCU_IDCODE DEV_ID field to a family.
func ByDeviceID(id uint16) *Params {
	if val, ok := deviceIDs[id&0xfff]; ok {
		return val
	} else {
		return nil
	}
}
