// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package reg

import (
	"testing"

	. "github.com/onsi/gomega"
)

type memory map[uint32]uint32

func (m memory) Load32(addr uint32) uint32 { return m[addr] }

func (m memory) Store32(addr, value uint32) { m[addr] = value }

func TestBitBandAddress(t *testing.T) {
	g := NewWithT(t)

	// RCC_AHB1ENR GPIOAEN, the example used by the reference manual
	alias, err := BitBandAddress(0x40023830, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(alias).To(Equal(uint32(0x42470600)))

	alias, err = BitBandAddress(0x40023830, 3)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(alias).To(Equal(uint32(0x4247060C)))

	alias, err = BitBandAddress(0x20000300, 2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(alias).To(Equal(uint32(0x22006008)))

	_, err = BitBandAddress(0xE000ED00, 0)
	g.Expect(err).To(MatchError(ErrNotBitBandable))

	_, err = BitBandAddress(0x40023830, 32)
	g.Expect(err).To(HaveOccurred())
}

func TestFromBitBand(t *testing.T) {
	g := NewWithT(t)

	for _, c := range []struct {
		addr uint32
		bit  uint8
	}{{0x40023830, 0}, {0x40023830, 31}, {0x40020014, 5}, {0x2001fffc, 17}} {
		alias, err := BitBandAddress(c.addr, c.bit)
		g.Expect(err).NotTo(HaveOccurred())

		addr, bit, ok := FromBitBand(alias)
		g.Expect(ok).To(BeTrue())
		g.Expect(addr).To(Equal(c.addr))
		g.Expect(bit).To(Equal(c.bit))
	}

	_, _, ok := FromBitBand(0x40023830)
	g.Expect(ok).To(BeFalse())
}

func TestRegisterFields(t *testing.T) {
	g := NewWithT(t)
	m := memory{}
	r := New32(m, 0x40023804)

	r.Set(0x24003010)
	g.Expect(r.Field(0x3f, 0)).To(Equal(uint32(16)))
	g.Expect(r.Field(0x1ff, 6)).To(Equal(uint32(192)))

	r.ReplaceBits(8, 0x3f, 0)
	r.ReplaceBits(336, 0x1ff, 6)
	g.Expect(r.Get()).To(Equal(uint32(0x24005408)))

	r.SetBits(1 << 22)
	g.Expect(r.HasBits(1 << 22)).To(BeTrue())
	r.ClearBits(1 << 22)
	g.Expect(r.HasBits(1 << 22)).To(BeFalse())
}

func TestBitIsSingleStore(t *testing.T) {
	g := NewWithT(t)
	m := memory{}
	r := New32(m, 0x40023830)
	r.Set(0xffff0000)

	b := r.Bit(4)
	b.Set()
	g.Expect(m[0x42470610]).To(Equal(uint32(1)))
	g.Expect(r.Get()).To(Equal(uint32(0xffff0000)))
	g.Expect(b.Get()).To(BeTrue())

	b.Clear()
	g.Expect(b.Get()).To(BeFalse())

	g.Expect(func() { New32(m, 0xE000E010).Bit(0) }).To(Panic())
}
