// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package reg provides word sized access to memory mapped registers.
//
// All access goes through an Accessor so the same driver code runs against
// the real bus, a simulated register file or a debug probe.
package reg

import "errors"

// Accessor performs aligned 32 bit loads and stores on the peripheral bus.
type Accessor interface {
	Load32(addr uint32) uint32
	Store32(addr, value uint32)
}

const (
	PeriphBase        = 0x40000000
	PeriphEnd         = 0x40100000
	PeriphBitBandBase = 0x42000000
	SRAMBase          = 0x20000000
	SRAMEnd           = 0x20100000
	SRAMBitBandBase   = 0x22000000
)

var ErrNotBitBandable = errors.New("address is outside the bit-band regions")

// BitBandAddress maps bit of the register at addr to its alias word.
func BitBandAddress(addr uint32, bit uint8) (uint32, error) {
	if bit > 31 {
		return 0, errors.New("bit index out of range")
	}
	addr &^= 3

	switch {
	case addr >= PeriphBase && addr < PeriphEnd:
		return PeriphBitBandBase + (addr-PeriphBase)*32 + uint32(bit)*4, nil
	case addr >= SRAMBase && addr < SRAMEnd:
		return SRAMBitBandBase + (addr-SRAMBase)*32 + uint32(bit)*4, nil
	}
	return 0, ErrNotBitBandable
}

// FromBitBand reverses BitBandAddress. ok is false if alias is not a
// bit-band alias word.
func FromBitBand(alias uint32) (addr uint32, bit uint8, ok bool) {
	var base, region uint32

	switch {
	case alias >= PeriphBitBandBase && alias < PeriphBitBandBase+(PeriphEnd-PeriphBase)*32:
		base, region = PeriphBitBandBase, PeriphBase
	case alias >= SRAMBitBandBase && alias < SRAMBitBandBase+(SRAMEnd-SRAMBase)*32:
		base, region = SRAMBitBandBase, SRAMBase
	default:
		return 0, 0, false
	}
	off := alias - base
	b := off / 32
	return region + b&^3, uint8((b&3)*8 + (off%32)/4), true
}

// Register32 is a 32 bit register at a fixed bus address.
type Register32 struct {
	acc  Accessor
	addr uint32
}

func New32(acc Accessor, addr uint32) Register32 {
	return Register32{acc: acc, addr: addr}
}

func (r Register32) Addr() uint32 { return r.addr }

func (r Register32) Get() uint32 { return r.acc.Load32(r.addr) }

func (r Register32) Set(value uint32) { r.acc.Store32(r.addr, value) }

// SetBits reads the register, sets the bits in value and writes it back.
func (r Register32) SetBits(value uint32) {
	r.acc.Store32(r.addr, r.acc.Load32(r.addr)|value)
}

func (r Register32) ClearBits(value uint32) {
	r.acc.Store32(r.addr, r.acc.Load32(r.addr)&^value)
}

// HasBits reports whether any bit of value is set.
func (r Register32) HasBits(value uint32) bool {
	return r.acc.Load32(r.addr)&value != 0
}

// ReplaceBits replaces the field described by mask at pos with value.
// mask is not shifted.
func (r Register32) ReplaceBits(value, mask uint32, pos uint8) {
	v := r.acc.Load32(r.addr)
	v &^= mask << pos
	v |= (value & mask) << pos
	r.acc.Store32(r.addr, v)
}

// Field returns the field described by mask at pos.
func (r Register32) Field(mask uint32, pos uint8) uint32 {
	return (r.acc.Load32(r.addr) >> pos) & mask
}

// Bit returns the bit-band alias of bit n. It panics if the register is not
// in a bit-band region.
func (r Register32) Bit(n uint8) Bit {
	alias, err := BitBandAddress(r.addr, n)
	if err != nil {
		panic(err)
	}
	return Bit{acc: r.acc, alias: alias}
}

// Bit is a single register bit reached through its bit-band alias. Set and
// Clear are one store each, there is no read-modify-write.
type Bit struct {
	acc   Accessor
	alias uint32
}

func (b Bit) Set()   { b.acc.Store32(b.alias, 1) }
func (b Bit) Clear() { b.acc.Store32(b.alias, 0) }

func (b Bit) Get() bool { return b.acc.Load32(b.alias)&1 != 0 }

func (b Bit) Alias() uint32 { return b.alias }
