// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"errors"
	"testing"

	"github.com/google/gousb"
	. "github.com/onsi/gomega"
)

// fakeProbe answers the command set of a V2 probe with firmware J37 on
// top of a byte addressed memory.
type fakeProbe struct {
	version   []byte
	versionEx []byte
	freqs     []uint32
	mode      byte
	mem       map[uint32]byte
	idcode    uint32
	waits     int
	status    byte
	divisor   uint16
	comFreq   uint32
	nrst      []byte
	cmds      [][]byte
	pending   []byte
	store     *fakeStore
	closed    bool
}

type fakeStore struct {
	addr uint32
	n    int
}

func newFakeProbe() *fakeProbe {
	f := &fakeProbe{
		version: []byte{0x29, 0x47, 0x83, 0x04, 0x48, 0x37},
		mode:    deviceModeDebug,
		mem:     map[uint32]byte{},
		idcode:  0x2BA01477,
		status:  statusOK,
	}
	f.poke(cpuIDRegister, 0x410FC241)
	return f
}

func newFakeV3() *fakeProbe {
	f := newFakeProbe()
	f.version = []byte{0x30, 0x00, 0x83, 0x04, 0x4F, 0x37}
	f.versionEx = []byte{3, 1, 7, 3, 0, 0, 0, 0, 0x83, 0x04, 0x4F, 0x37}
	f.freqs = []uint32{24000, 8000, 1000}
	return f
}

func (f *fakeProbe) poke(addr, v uint32) {
	for i := uint32(0); i < 4; i++ {
		f.mem[addr+i] = byte(v >> (8 * i))
	}
}

func (f *fakeProbe) peek(addr uint32) uint32 {
	return uint32LE(f.bytesAt(addr, 4))
}

func (f *fakeProbe) bytesAt(addr uint32, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = f.mem[addr+uint32(i)]
	}
	return b
}

// access consumes one injected WAIT and reports whether the access went
// through.
func (f *fakeProbe) access() bool {
	if f.waits > 0 {
		f.waits--
		f.status = statusSwdAPWait
		return false
	}
	f.status = statusOK
	return true
}

func (f *fakeProbe) Write(b []byte) (int, error) {
	if f.closed {
		return 0, errors.New("device closed")
	}
	if s := f.store; s != nil {
		f.store = nil
		if f.access() {
			for i := 0; i < s.n; i++ {
				f.mem[s.addr+uint32(i)] = b[i]
			}
		}
		return len(b), nil
	}

	cmd := append([]byte(nil), b...)
	f.cmds = append(f.cmds, cmd)
	ok := []byte{statusOK, 0}

	switch cmd[0] {
	case cmdGetVersion:
		f.pending = f.version
	case cmdGetVersionEx:
		f.pending = f.versionEx
	case cmdGetCurrentMode:
		f.pending = []byte{f.mode, 0}
	case cmdGetTargetVoltage:
		f.pending = make([]byte, 8)
		putUint32LE(f.pending, 1600)
		putUint32LE(f.pending[4:], 2200)
	case cmdDebug:
		addr, n := uint32LE(cmd[2:]), int(uint16LE(cmd[6:]))

		switch cmd[1] {
		case debugExit:
			f.mode = deviceModeMass
		case debugApiV2Enter:
			f.mode = deviceModeDebug
			f.pending = ok
		case debugApiV2SwdSetFreq:
			f.divisor = uint16LE(cmd[2:])
			f.pending = ok
		case debugApiV2InitAP:
			f.pending = ok
		case debugApiV2DriveNrst:
			f.nrst = append(f.nrst, cmd[2])
			f.pending = ok
		case debugApiV2ReadIDCodes:
			f.pending = make([]byte, 12)
			f.pending[0] = statusOK
			putUint32LE(f.pending[4:], f.idcode)
		case debugApiV3GetComFreq:
			f.pending = make([]byte, 52)
			f.pending[0] = statusOK
			f.pending[8] = byte(len(f.freqs))
			for i, khz := range f.freqs {
				putUint32LE(f.pending[12+4*i:], khz)
			}
		case debugApiV3SetComFreq:
			f.comFreq = uint32LE(cmd[4:])
			f.pending = make([]byte, 8)
			f.pending[0] = statusOK
		case debugReadMem32Bit, debugReadMem8Bit:
			size := n
			if cmd[1] == debugReadMem8Bit && n == 1 {
				size = 2
			}
			f.pending = make([]byte, size)
			if f.access() {
				copy(f.pending, f.bytesAt(addr, n))
			}
		case debugWriteMem32Bit, debugWriteMem8Bit:
			f.store = &fakeStore{addr: addr, n: n}
		case debugApiV2LastRWStat2:
			f.pending = make([]byte, 12)
			f.pending[0] = f.status
		}
	}
	return len(b), nil
}

func (f *fakeProbe) Read(b []byte) (int, error) {
	n := copy(b, f.pending)
	f.pending = nil
	return n, nil
}

func (f *fakeProbe) Close() error {
	f.closed = true
	return nil
}

// debugCmds returns the debug commands with sub command sub.
func (f *fakeProbe) debugCmds(sub byte) [][]byte {
	var out [][]byte
	for _, c := range f.cmds {
		if c[0] == cmdDebug && c[1] == sub {
			out = append(out, c)
		}
	}
	return out
}

func openFake(g *WithT, f *fakeProbe) *StLink {
	h := newStLink(f, gousb.ID(uint16LE(f.version[4:])))
	g.Expect(h.initialize(NewConfig(AllVIDs, AllPIDs, "", DefaultSpeedKHz, false))).To(Succeed())
	return h
}

func TestOpenEntersSWD(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	h := openFake(g, f)

	g.Expect(h.Version()).To(Equal("V2J37S7"))
	g.Expect(f.mode).To(Equal(byte(deviceModeDebug)))
	g.Expect(f.debugCmds(debugExit)).To(HaveLen(1))
	g.Expect(f.debugCmds(debugApiV2Enter)).To(HaveLen(1))
	g.Expect(f.divisor).To(Equal(uint16(1)))
	g.Expect(f.nrst).To(BeEmpty())

	g.Expect(h.openedAPs.Get(0)).To(BeTrue())
	g.Expect(f.debugCmds(debugApiV2InitAP)).To(HaveLen(1))
	g.Expect(h.openAP(0)).To(Succeed())
	g.Expect(f.debugCmds(debugApiV2InitAP)).To(HaveLen(1))

	// Cortex-M4 CPUID
	g.Expect(h.maxPacket).To(Equal(uint32(4096)))
}

func TestConnectUnderReset(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	h := newStLink(f, pidV2)

	g.Expect(h.initialize(NewConfig(AllVIDs, AllPIDs, "", 4000, true))).To(Succeed())
	g.Expect(f.nrst).To(Equal([]byte{nrstLow, nrstLow}))
	g.Expect(f.divisor).To(Equal(uint16(0)))

	g.Expect(h.DriveReset(false)).To(Succeed())
	g.Expect(f.nrst).To(Equal([]byte{nrstLow, nrstLow, nrstHigh}))
}

func TestOldFirmwareRejected(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	// V1 J10, framed as V2 for the fake
	f.version = []byte{0x12, 0x80, 0x83, 0x04, 0x44, 0x37}
	h := newStLink(f, pidV2)

	g.Expect(h.initialize(NewConfig(AllVIDs, AllPIDs, "", 0, false))).To(MatchError(ErrUnsupported))
}

func TestV3Speed(t *testing.T) {
	g := NewWithT(t)
	f := newFakeV3()
	h := openFake(g, f)

	g.Expect(h.Version()).To(Equal("V3J7M3S1"))
	g.Expect(f.comFreq).To(Equal(uint32(1000)))

	khz, err := h.SetSpeed(10000)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(khz).To(Equal(uint32(8000)))
	g.Expect(f.comFreq).To(Equal(uint32(8000)))
}

func TestSetSpeedV2(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	h := openFake(g, f)

	khz, err := h.SetSpeed(1000)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(khz).To(Equal(uint32(950)))
	g.Expect(f.divisor).To(Equal(uint16(3)))
}

func TestTargetVoltageAndIDCode(t *testing.T) {
	g := NewWithT(t)
	h := openFake(g, newFakeProbe())

	v, err := h.TargetVoltage()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(v).To(BeNumerically("~", 3.3, 1e-3))

	id, err := h.IDCode()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(id).To(Equal(uint32(0x2BA01477)))
}

func TestMem32RetriesOnWait(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	h := openFake(g, f)

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	g.Expect(h.WriteMem32(0x20000000, data)).To(Succeed())

	f.waits = 2
	reads := len(f.debugCmds(debugReadMem32Bit))
	buf := make([]byte, 8)
	g.Expect(h.ReadMem32(0x20000000, buf)).To(Succeed())
	g.Expect(buf).To(Equal(data))
	g.Expect(f.debugCmds(debugReadMem32Bit)).To(HaveLen(reads + 3))

	f.waits = 1
	g.Expect(h.WriteUint32(0x40023830, 0x8)).To(Succeed())
	g.Expect(f.peek(0x40023830)).To(Equal(uint32(0x8)))
}

func TestWaitRetriesGiveUp(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	h := openFake(g, f)

	f.waits = 100
	reads := len(f.debugCmds(debugReadMem32Bit))
	_, err := h.ReadUint32(0x20000000)
	g.Expect(IsWait(err)).To(BeTrue())
	g.Expect(f.debugCmds(debugReadMem32Bit)).To(HaveLen(reads + maxWaitRetries + 1))
}

func TestMem32SplitsAtAutoincrementBoundary(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	h := openFake(g, f)

	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i + 1)
	}
	g.Expect(h.WriteMem32(0x20000FF8, data)).To(Succeed())

	writes := f.debugCmds(debugWriteMem32Bit)
	g.Expect(writes).To(HaveLen(2))
	g.Expect(uint32LE(writes[0][2:])).To(Equal(uint32(0x20000FF8)))
	g.Expect(uint16LE(writes[0][6:])).To(Equal(uint16(8)))
	g.Expect(uint32LE(writes[1][2:])).To(Equal(uint32(0x20001000)))
	g.Expect(f.bytesAt(0x20000FF8, 16)).To(Equal(data))
}

func TestMem32Unaligned(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	h := openFake(g, f)

	reads := len(f.debugCmds(debugReadMem32Bit))
	err := h.ReadMem32(0x20000002, make([]byte, 4))

	var ue *UsbError
	g.Expect(errors.As(err, &ue)).To(BeTrue())
	g.Expect(ue.Code).To(Equal(ErrorUnalignedAccess))
	g.Expect(f.debugCmds(debugReadMem32Bit)).To(HaveLen(reads))
}

func TestMem8(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	h := openFake(g, f)

	g.Expect(h.WriteMem8(0x20000001, []byte{0xAB})).To(Succeed())
	b := make([]byte, 1)
	g.Expect(h.ReadMem8(0x20000001, b)).To(Succeed())
	g.Expect(b[0]).To(Equal(byte(0xAB)))

	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}
	g.Expect(h.WriteMem8(0x20000100, data)).To(Succeed())
	g.Expect(f.debugCmds(debugWriteMem8Bit)).To(HaveLen(3))
	g.Expect(f.bytesAt(0x20000100, 100)).To(Equal(data))
}

func TestClose(t *testing.T) {
	g := NewWithT(t)
	f := newFakeProbe()
	h := openFake(g, f)
	exits := len(f.debugCmds(debugExit))

	g.Expect(h.Close()).To(Succeed())
	g.Expect(f.closed).To(BeTrue())
	g.Expect(f.debugCmds(debugExit)).To(HaveLen(exits + 1))

	_, err := h.ReadUint32(0x20000000)
	g.Expect(err).To(MatchError(ErrClosed))
	g.Expect(h.Close()).To(MatchError(ErrClosed))
}

func TestStatusError(t *testing.T) {
	cases := []struct {
		status byte
		code   UsbErrorCode
	}{
		{statusOK, ErrorOK},
		{statusJtagWriteVerifyErr, ErrorOK},
		{statusSwdAPWait, ErrorWait},
		{statusSwdDPWait, ErrorWait},
		{statusFault, ErrorFail},
		{statusSwdAPFault, ErrorFail},
		{statusBadAPError, ErrorFail},
		{0x42, ErrorFail},
	}

	for _, c := range cases {
		g := NewWithT(t)
		err := statusError(c.status)

		if c.code == ErrorOK {
			g.Expect(err).NotTo(HaveOccurred(), "status 0x%02x", c.status)
			continue
		}
		var ue *UsbError
		g.Expect(errors.As(err, &ue)).To(BeTrue(), "status 0x%02x", c.status)
		g.Expect(ue.Code).To(Equal(c.code), "status 0x%02x", c.status)
		g.Expect(IsWait(err)).To(Equal(c.code == ErrorWait))
	}
}

func TestMatchSpeed(t *testing.T) {
	v3 := []speedMap{{24000, 0}, {8000, 1}, {0, 2}}

	cases := []struct {
		smap  []speedMap
		khz   uint32
		index int
		exact bool
	}{
		{swdSpeedMap[:], 1800, 1, true},
		{swdSpeedMap[:], 2000, 1, false},
		{swdSpeedMap[:], 5000, 0, false},
		{swdSpeedMap[:], 1, 11, false},
		{v3, 10000, 1, false},
		{v3, 1, 1, false},
		{nil, 1000, -1, false},
	}

	for _, c := range cases {
		g := NewWithT(t)
		i, exact := matchSpeed(c.smap, c.khz)
		g.Expect(i).To(Equal(c.index), "%d kHz", c.khz)
		g.Expect(exact).To(Equal(c.exact), "%d kHz", c.khz)
	}
}

func TestDecodeVersion(t *testing.T) {
	cases := []struct {
		raw      []byte
		str      string
		api      apiVersion
		has      []int
		hasNot   []int
		extended bool
	}{
		{
			raw:    []byte{0x29, 0x47, 0x83, 0x04, 0x48, 0x37},
			str:    "V2J37S7",
			api:    jtagAPIV2,
			has:    []int{flagHasTrace, flagHasSwdSetFreq, flagHasApInit, flagHasDpBankSel},
			hasNot: []int{flagQuirkJtagDpRead, flagHasRw8Bytes512},
		},
		{
			raw:    []byte{0x29, 0x5A, 0x83, 0x04, 0x4B, 0x37},
			str:    "V2J37M26",
			api:    jtagAPIV2,
			has:    []int{flagHasGetLastRwStatus2},
			hasNot: []int{flagHasRw8Bytes512},
		},
		{
			raw:    []byte{0x25, 0x44, 0x83, 0x04, 0x48, 0x37},
			str:    "V2J21S4",
			api:    jtagAPIV2,
			has:    []int{flagHasTrace, flagHasGetLastRwStatus2},
			hasNot: []int{flagHasSwdSetFreq, flagHasApInit},
		},
		{
			raw:    []byte{0x12, 0x80, 0x83, 0x04, 0x44, 0x37},
			str:    "V1J10S0",
			api:    jtagAPIV1,
			hasNot: []int{flagHasTrace},
		},
		{
			raw:      []byte{0x30, 0x00, 0x83, 0x04, 0x4F, 0x37},
			extended: true,
		},
	}

	for _, c := range cases {
		g := NewWithT(t)
		v, extended := decodeVersion(c.raw)
		g.Expect(extended).To(Equal(c.extended))
		if extended {
			continue
		}
		g.Expect(v.String()).To(Equal(c.str))
		g.Expect(v.api).To(Equal(c.api), c.str)
		for _, f := range c.has {
			g.Expect(v.has(f)).To(BeTrue(), "%s flag %d", c.str, f)
		}
		for _, f := range c.hasNot {
			g.Expect(v.has(f)).To(BeFalse(), "%s flag %d", c.str, f)
		}
	}
}

func TestDecodeVersionEx(t *testing.T) {
	g := NewWithT(t)
	v := decodeVersionEx([]byte{3, 1, 7, 3, 0, 0, 0, 0, 0x83, 0x04, 0x4F, 0x37})

	g.Expect(v.String()).To(Equal("V3J7M3S1"))
	g.Expect(v.api).To(Equal(jtagAPIV3))
	g.Expect(v.pid).To(Equal(pidV3S))
	g.Expect(v.has(flagHasRw8Bytes512)).To(BeTrue())
	g.Expect(v.has(flagHasSwdSetFreq)).To(BeFalse())
}

func TestFrame(t *testing.T) {
	g := NewWithT(t)

	tr := newTransfer(dirIn, 6)
	tr.cmd.WriteByte(cmdGetVersion)

	v2 := newStLink(newFakeProbe(), pidV21).frame(tr)
	g.Expect(v2).To(HaveLen(cmdSizeV2))
	g.Expect(v2[0]).To(Equal(byte(cmdGetVersion)))

	v1 := newStLink(newFakeProbe(), pidV1).frame(tr)
	g.Expect(v1).To(HaveLen(cmdBufferSize))
	g.Expect(string(v1[:4])).To(Equal("USBC"))
	g.Expect(uint32LE(v1[8:])).To(Equal(uint32(6)))
	g.Expect(v1[12]).To(Equal(byte(usbEndpointIn)))
	g.Expect(v1[14]).To(Equal(byte(1)))
	g.Expect(v1[cbwHeaderSize]).To(Equal(byte(cmdGetVersion)))
}

func TestSelectDeviceEmpty(t *testing.T) {
	g := NewWithT(t)
	_, err := selectDevice(nil, "")
	g.Expect(err).To(MatchError(ErrNoProbe))
}
