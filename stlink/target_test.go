// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
)

var errLinkLost = errors.New("link lost")

type flakyProbe struct {
	mem       map[uint32]uint32
	failAfter int
	calls     int
}

func (p *flakyProbe) ReadUint32(addr uint32) (uint32, error) {
	p.calls++
	if p.calls > p.failAfter {
		return 0, errLinkLost
	}
	return p.mem[addr], nil
}

func (p *flakyProbe) WriteUint32(addr, value uint32) error {
	p.calls++
	if p.calls > p.failAfter {
		return errLinkLost
	}
	p.mem[addr] = value
	return nil
}

func TestTargetPassesThrough(t *testing.T) {
	g := NewWithT(t)

	p := &flakyProbe{mem: map[uint32]uint32{}, failAfter: 100}
	target := NewTarget(p)

	target.Store32(0x40023830, 0x5)
	g.Expect(target.Load32(0x40023830)).To(Equal(uint32(0x5)))
	g.Expect(target.Err()).ToNot(HaveOccurred())
}

func TestTargetStickyError(t *testing.T) {
	g := NewWithT(t)

	p := &flakyProbe{mem: map[uint32]uint32{0x20000000: 7}, failAfter: 1}
	target := NewTarget(p)

	g.Expect(target.Load32(0x20000000)).To(Equal(uint32(7)))
	target.Store32(0x20000004, 1)
	g.Expect(target.Err()).To(MatchError(errLinkLost))
	g.Expect(p.calls).To(Equal(2))

	// dropped until cleared
	g.Expect(target.Load32(0x20000000)).To(BeZero())
	target.Store32(0x20000004, 1)
	g.Expect(p.calls).To(Equal(2))

	target.ClearErr()
	g.Expect(target.Err()).ToNot(HaveOccurred())
	p.failAfter = 10
	g.Expect(target.Load32(0x20000000)).To(Equal(uint32(7)))
}

func TestTargetOverStLink(t *testing.T) {
	g := NewWithT(t)

	f := newFakeProbe()
	s := openFake(g, f)
	target := NewTarget(s)

	target.Store32(0x40020014, 0x2000)
	g.Expect(f.peek(0x40020014)).To(Equal(uint32(0x2000)))
	g.Expect(target.Load32(cpuIDRegister)).To(Equal(uint32(0x410FC241)))
	g.Expect(target.Err()).ToNot(HaveOccurred())
}
