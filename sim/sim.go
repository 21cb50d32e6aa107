// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package sim is a register level model of an STM32F4.
//
// A Device answers loads and stores the way the silicon does for the blocks
// the clock and pin code touches: ready flags follow their enable bits, the
// clock switch status follows the selected source, GPIO set/reset and input
// registers behave like the port logic and EXTI latches edges. Every store
// is logged so tests can check the order of a bring-up sequence.
package sim

import (
	"fmt"
	"sync"

	"github.com/boljen/go-bitmap"

	"github.com/bbnote/gostm32f4"
	"github.com/bbnote/gostm32f4/chip"
	dev "github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/reg"
)

const (
	maxPorts = 11

	rccCR      = dev.RCC_BASE + 0x00
	rccPLLCFGR = dev.RCC_BASE + 0x04
	rccCFGR    = dev.RCC_BASE + 0x08
	rccAHB1ENR = dev.RCC_BASE + 0x30
	rccI2SCFGR = dev.RCC_BASE + 0x84
	rccSAICFGR = dev.RCC_BASE + 0x88

	pwrCR  = dev.PWR_BASE + 0x00
	pwrCSR = dev.PWR_BASE + 0x04

	extiIMR   = dev.EXTI_BASE + 0x00
	extiRTSR  = dev.EXTI_BASE + 0x08
	extiFTSR  = dev.EXTI_BASE + 0x0C
	extiSWIER = dev.EXTI_BASE + 0x10
	extiPR    = dev.EXTI_BASE + 0x14

	sysTickCTRL = dev.SysTick_BASE + 0x00
	sysTickVAL  = dev.SysTick_BASE + 0x08
	scbCPUID    = dev.SCB_BASE
)

var deviceIDs = map[*chip.Params]uint32{
	chip.STM32F401: 0x10000423,
	chip.STM32F407: 0x10076413,
	chip.STM32F411: 0x10000431,
	chip.STM32F429: 0x20036419,
	chip.STM32F446: 0x10000421,
	chip.STM32F469: 0x10001434,
}

// Write is one logged store. Alias is the bit-band alias the store went
// through, zero for a direct store; Addr and Value are then the resulting
// word write.
type Write struct {
	Addr  uint32
	Value uint32
	Alias uint32
}

func (w Write) String() string {
	if w.Alias != 0 {
		return fmt.Sprintf("%08x <- %08x (via %08x)", w.Addr, w.Value, w.Alias)
	}
	return fmt.Sprintf("%08x <- %08x", w.Addr, w.Value)
}

type Option func(*Device)

// WithChip selects the modelled family. The default is chip.Target.
func WithChip(c *chip.Params) Option {
	return func(d *Device) { d.chip = c }
}

// WithLatency makes every ready flag assert only after n reads of its
// status register.
func WithLatency(n int) Option {
	return func(d *Device) { d.latency = n }
}

// HSEFault models a missing crystal: HSERDY never asserts.
func HSEFault() Option {
	return func(d *Device) { d.faults |= dev.RCC_CR_HSERDY }
}

// PLLFault keeps the main PLL from locking.
func PLLFault() Option {
	return func(d *Device) { d.faults |= dev.RCC_CR_PLLRDY }
}

// SwitchFault keeps RCC_CFGR_SWS at its old value.
func SwitchFault() Option {
	return func(d *Device) { d.switchFault = true }
}

// OverDriveFault keeps the over-drive ready flags clear.
func OverDriveFault() Option {
	return func(d *Device) { d.overDriveFault = true }
}

// Device is a simulated STM32F4 implementing reg.Accessor.
type Device struct {
	mu sync.Mutex

	chip           *chip.Params
	latency        int
	faults         uint32
	switchFault    bool
	overDriveFault bool

	mem     map[uint32]uint32
	pending map[uint32]int
	writes  []Write
	reads   int

	// externally driven pin levels, indexed port*16+pin
	driven bitmap.Bitmap
	level  bitmap.Bitmap
}

var _ reg.Accessor = (*Device)(nil)

// New returns a device in its reset state.
func New(opts ...Option) *Device {
	d := &Device{
		chip:    chip.Target,
		mem:     make(map[uint32]uint32),
		pending: make(map[uint32]int),
		driven:  bitmap.New(maxPorts * 16),
		level:   bitmap.New(maxPorts * 16),
	}
	for _, o := range opts {
		o(d)
	}
	d.reset()
	return d
}

func (d *Device) reset() {
	d.mem[rccCR] = dev.RCC_CR_Reset
	d.mem[rccPLLCFGR] = dev.RCC_PLLCFGR_Reset
	d.mem[rccAHB1ENR] = 0x00100000
	d.mem[rccI2SCFGR] = 0x20003000
	if d.chip.HasPLLSAI {
		d.mem[rccSAICFGR] = 0x24003000
	}
	d.mem[pwrCR] = d.chip.VOS << dev.PWR_CR_VOS_Pos
	d.mem[dev.DBGMCU_BASE] = deviceIDs[d.chip]
	d.mem[scbCPUID] = 0x410FC241

	a, b := dev.GPIOBase(0), dev.GPIOBase(1)
	d.mem[a+0x00] = dev.GPIOA_MODER_Reset
	d.mem[a+0x08] = dev.GPIOA_OSPEEDR_Reset
	d.mem[a+0x0C] = dev.GPIOA_PUPDR_Reset
	d.mem[b+0x00] = dev.GPIOB_MODER_Reset
	d.mem[b+0x08] = dev.GPIOB_OSPEEDR_Reset
	d.mem[b+0x0C] = dev.GPIOB_PUPDR_Reset
}

func (d *Device) Chip() *chip.Params { return d.chip }

// Peek returns a register without the side effects of a load.
func (d *Device) Peek(addr uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(addr, false)
}

// Poke sets a register without logging or side effects.
func (d *Device) Poke(addr, value uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mem[addr] = value
}

// Writes returns the store log.
func (d *Device) Writes() []Write {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Write, len(d.writes))
	copy(out, d.writes)
	return out
}

// ClearLog empties the store log.
func (d *Device) ClearLog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes = d.writes[:0]
}

// Reads returns the number of loads served.
func (d *Device) Reads() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reads
}

func (d *Device) Load32(addr uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reads++

	if word, bit, ok := reg.FromBitBand(addr); ok {
		return (d.load(word, true) >> bit) & 1
	}
	return d.load(addr, true)
}

func (d *Device) Store32(addr, value uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if word, bit, ok := reg.FromBitBand(addr); ok {
		v := d.load(word, false)
		if value&1 != 0 {
			v |= 1 << bit
		} else {
			v &^= 1 << bit
		}
		d.writes = append(d.writes, Write{Addr: word, Value: v, Alias: addr})
		d.store(word, v)
		return
	}
	d.writes = append(d.writes, Write{Addr: addr, Value: value})
	d.store(addr, value)
}

func (d *Device) load(addr uint32, live bool) uint32 {
	switch {
	case addr == rccCR:
		return d.rccCR(live)
	case addr == rccCFGR:
		return d.rccCFGR()
	case addr == pwrCSR:
		return d.pwrCSR()
	case addr == sysTickCTRL:
		v := d.mem[addr]
		if v&dev.SysTick_CTRL_ENABLE != 0 {
			v |= dev.SysTick_CTRL_COUNTFLAG
		}
		return v
	}
	if port, off, ok := d.gpio(addr); ok {
		switch off {
		case 0x10:
			return d.idr(port)
		case 0x18:
			return 0
		}
	}
	return d.mem[addr]
}

func (d *Device) store(addr, value uint32) {
	switch addr {
	case rccCR:
		old := d.mem[addr]
		on := uint32(dev.RCC_CR_HSION | dev.RCC_CR_HSEON | dev.RCC_CR_PLLON | dev.RCC_CR_PLLI2SON | dev.RCC_CR_PLLSAION)
		for bit := uint32(1); bit != 0; bit <<= 1 {
			if on&bit != 0 && value&bit != 0 && old&bit == 0 {
				d.pending[bit<<1] = d.latency
			}
		}
		// the oscillator selected by SWS cannot be stopped
		switch (d.rccCFGR() >> dev.RCC_CFGR_SWS_Pos) & dev.RCC_CFGR_SWS_Msk {
		case dev.RCC_CFGR_SW_HSI:
			value |= old & dev.RCC_CR_HSION
		case dev.RCC_CFGR_SW_HSE:
			value |= old & dev.RCC_CR_HSEON
		case dev.RCC_CFGR_SW_PLL:
			value |= old & dev.RCC_CR_PLLON
		}
		d.mem[addr] = value &^ d.readyBits()
		return
	case rccPLLCFGR:
		// ignored while the PLL runs
		if d.mem[rccCR]&dev.RCC_CR_PLLON != 0 {
			return
		}
	case extiPR:
		d.mem[addr] &^= value
		return
	case extiSWIER:
		d.mem[extiPR] |= value & d.mem[extiIMR]
		d.mem[addr] = value
		return
	case pwrCSR:
		return
	case sysTickVAL:
		d.mem[addr] = 0
		return
	}
	if port, off, ok := d.gpio(addr); ok {
		switch off {
		case 0x10:
			return
		case 0x18:
			before := d.idr(port)
			odr := d.mem[dev.GPIOBase(port)+0x14]
			odr &^= value >> 16
			odr |= value & 0xffff
			d.mem[dev.GPIOBase(port)+0x14] = odr
			d.edges(port, before, d.idr(port))
			return
		case 0x14:
			before := d.idr(port)
			d.mem[addr] = value & 0xffff
			d.edges(port, before, d.idr(port))
			return
		}
	}
	d.mem[addr] = value
}

func (d *Device) readyBits() uint32 {
	return dev.RCC_CR_HSIRDY | dev.RCC_CR_HSERDY | dev.RCC_CR_PLLRDY | dev.RCC_CR_PLLI2SRDY | dev.RCC_CR_PLLSAIRDY
}

// rccCR derives the ready flags from the enable bits. Each ready flag sits
// one bit above its enable bit.
func (d *Device) rccCR(live bool) uint32 {
	v := d.mem[rccCR] &^ d.readyBits()
	for rdy := uint32(1); rdy != 0; rdy <<= 1 {
		if d.readyBits()&rdy == 0 || v&(rdy>>1) == 0 || d.faults&rdy != 0 {
			continue
		}
		if d.pending[rdy] > 0 {
			if live {
				d.pending[rdy]--
			}
			continue
		}
		v |= rdy
	}
	return v
}

func (d *Device) ready(rdy uint32) bool {
	return d.rccCR(false)&rdy != 0
}

func (d *Device) rccCFGR() uint32 {
	v := d.mem[rccCFGR]
	sw := v & dev.RCC_CFGR_SW_Msk
	sws := (v >> dev.RCC_CFGR_SWS_Pos) & dev.RCC_CFGR_SWS_Msk

	if !d.switchFault {
		var ok bool
		switch sw {
		case dev.RCC_CFGR_SW_HSI:
			ok = d.ready(dev.RCC_CR_HSIRDY)
		case dev.RCC_CFGR_SW_HSE:
			ok = d.ready(dev.RCC_CR_HSERDY)
		case dev.RCC_CFGR_SW_PLL:
			ok = d.ready(dev.RCC_CR_PLLRDY)
		}
		if ok {
			sws = sw
		}
	}
	v &^= dev.RCC_CFGR_SWS_Msk << dev.RCC_CFGR_SWS_Pos
	v |= sws << dev.RCC_CFGR_SWS_Pos
	d.mem[rccCFGR] = v
	return v
}

func (d *Device) pwrCSR() uint32 {
	cr := d.mem[pwrCR]
	v := uint32(dev.PWR_CSR_VOSRDY)
	if !d.overDriveFault {
		if cr&dev.PWR_CR_ODEN != 0 {
			v |= dev.PWR_CSR_ODRDY
		}
		if cr&dev.PWR_CR_ODSWEN != 0 {
			v |= dev.PWR_CSR_ODSWRDY
		}
	}
	return v
}

func (d *Device) gpio(addr uint32) (port uint8, off uint32, ok bool) {
	if addr < dev.GPIOA_BASE || addr >= dev.GPIOBase(maxPorts) {
		return 0, 0, false
	}
	rel := addr - dev.GPIOA_BASE
	return uint8(rel / dev.GPIO_STRIDE), rel % dev.GPIO_STRIDE, true
}

// idr returns the pin levels of port: outputs read back their output
// latch, driven inputs their external level and floating inputs their pull.
func (d *Device) idr(port uint8) uint32 {
	base := dev.GPIOBase(port)
	moder, pupdr, odr := d.mem[base], d.mem[base+0x0C], d.mem[base+0x14]

	var v uint32
	for pin := uint8(0); pin < 16; pin++ {
		mode := (moder >> (pin * 2)) & dev.GPIO_MODER_Msk
		pull := (pupdr >> (pin * 2)) & dev.GPIO_PUPDR_Msk
		idx := int(port)*16 + int(pin)

		pushPull := d.mem[base+0x04]&(1<<pin) == 0
		latch := odr&(1<<pin) != 0

		var high bool
		switch {
		case mode == dev.GPIO_MODER_Analog:
			high = false
		case mode == dev.GPIO_MODER_Output && pushPull:
			high = latch
		case mode == dev.GPIO_MODER_Output && !latch:
			high = false
		case d.driven.Get(idx):
			high = d.level.Get(idx)
		default:
			high = pull == dev.GPIO_PUPDR_PullUp
		}
		if high {
			v |= 1 << pin
		}
	}
	return v
}

// edges latches EXTI pending bits for lines routed to port.
func (d *Device) edges(port uint8, before, after uint32) {
	changed := before ^ after
	for line := uint32(0); line < 16; line++ {
		if changed&(1<<line) == 0 {
			continue
		}
		cr := d.mem[dev.SYSCFG_BASE+0x08+(line/4)*4]
		if uint8((cr>>((line%4)*4))&dev.SYSCFG_EXTICR_Msk) != port {
			continue
		}
		rising := after&(1<<line) != 0
		if rising && d.mem[extiRTSR]&(1<<line) != 0 || !rising && d.mem[extiFTSR]&(1<<line) != 0 {
			d.mem[extiPR] |= 1 << line
			gostm32f4.Prefixed("sim").Debugf("EXTI line %d pending", line)
		}
	}
}

// SetInput drives pin of port from outside the chip.
func (d *Device) SetInput(port, pin uint8, high bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	before := d.idr(port)
	idx := int(port)*16 + int(pin)
	d.driven.Set(idx, true)
	d.level.Set(idx, high)
	d.edges(port, before, d.idr(port))
}

// Release stops driving pin of port.
func (d *Device) Release(port, pin uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()

	before := d.idr(port)
	d.driven.Set(int(port)*16+int(pin), false)
	d.edges(port, before, d.idr(port))
}
