// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/google/gousb"
)

type version struct {
	stlink int
	jtag   int
	swim   int
	msd    int
	bridge int
	api    apiVersion
	flags  bitmap.Bitmap
	vid    gousb.ID
	pid    gousb.ID
}

func (v version) has(flag int) bool {
	return v.flags != nil && v.flags.Get(flag)
}

// String formats the firmware version the way ST tools print it,
// e.g. V2J37S7.
func (v version) String() string {
	s := fmt.Sprintf("V%d", v.stlink)
	if v.jtag > 0 || v.msd == 0 {
		s += fmt.Sprintf("J%d", v.jtag)
	}
	if v.msd > 0 {
		s += fmt.Sprintf("M%d", v.msd)
	}
	if v.bridge > 0 {
		s += fmt.Sprintf("B%d", v.bridge)
	}
	if v.swim > 0 || v.msd == 0 {
		s += fmt.Sprintf("S%d", v.swim)
	}
	return s
}

// decodeVersion parses the six byte GET_VERSION response. extended is true
// for V3 probes, which report their version through GET_VERSION_EX.
func decodeVersion(raw []byte) (v version, extended bool) {
	word := uint16BE(raw)
	major := int(word>>12) & 0x0f
	x := int(word>>6) & 0x3f
	y := int(word) & 0x3f

	v.stlink = major
	v.vid = gousb.ID(uint16LE(raw[2:]))
	v.pid = gousb.ID(uint16LE(raw[4:]))

	switch v.pid {
	case pidV21, pidV21NoMsd:
		if (x <= 22 && y == 7) || (x >= 25 && y >= 7 && y <= 12) {
			v.msd, v.swim = x, y
		} else {
			v.jtag, v.msd = x, y
		}
	default:
		v.jtag, v.swim = x, y
	}

	if major == 3 && x == 0 && y == 0 {
		return v, true
	}
	v.setFlags()
	return v, false
}

// decodeVersionEx parses the twelve byte GET_VERSION_EX response.
func decodeVersionEx(raw []byte) version {
	v := version{
		stlink: int(raw[0]),
		swim:   int(raw[1]),
		jtag:   int(raw[2]),
		msd:    int(raw[3]),
		bridge: int(raw[4]),
		vid:    gousb.ID(uint16LE(raw[8:])),
		pid:    gousb.ID(uint16LE(raw[10:])),
	}
	v.setFlags()
	return v
}

func (v *version) setFlags() {
	flags := bitmap.New(flagCount)

	switch v.stlink {
	case 1:
		// V1 switched to api v2, and with it SWD, in J11
		if v.jtag >= 11 {
			v.api = jtagAPIV2
		} else {
			v.api = jtagAPIV1
		}

	case 2:
		v.api = jtagAPIV2

		// trace and target voltage from J13
		flags.Set(flagHasTrace, v.jtag >= 13)
		flags.Set(flagHasGetLastRwStatus2, v.jtag >= 15)
		flags.Set(flagHasSwdSetFreq, v.jtag >= 22)
		flags.Set(flagHasJtagSetFreq, v.jtag >= 24)
		flags.Set(flagHasDapReg, v.jtag >= 24)
		flags.Set(flagQuirkJtagDpRead, v.jtag >= 24 && v.jtag < 32)
		flags.Set(flagHasMem16Bit, v.jtag >= 26)
		flags.Set(flagHasApInit, v.jtag >= 28)
		flags.Set(flagFixCloseAp, v.jtag >= 29)
		flags.Set(flagHasDpBankSel, v.jtag >= 32)

	case 3:
		v.api = jtagAPIV3

		// superset of V2
		flags.Set(flagHasTrace, true)
		flags.Set(flagHasGetLastRwStatus2, true)
		flags.Set(flagHasDapReg, true)
		flags.Set(flagHasMem16Bit, true)
		flags.Set(flagHasApInit, true)
		flags.Set(flagFixCloseAp, true)
		flags.Set(flagHasDpBankSel, v.jtag >= 2)
		flags.Set(flagHasRw8Bytes512, v.jtag >= 6)
	}

	v.flags = flags
}

func (h *StLink) readVersion() error {
	t := newTransfer(dirIn, 6)
	t.cmd.WriteByte(cmdGetVersion)

	if err := h.transferNoErrCheck(t); err != nil {
		return err
	}

	v, extended := decodeVersion(t.data)

	if extended {
		tx := newTransfer(dirIn, 12)
		tx.cmd.WriteByte(cmdGetVersionEx)

		if err := h.transferNoErrCheck(tx); err != nil {
			return err
		}
		v = decodeVersionEx(tx.data)
	}

	h.version = v
	log().Debugf("parsed ST-Link version [%s] for [%04x:%04x]", v, uint16(v.vid), uint16(v.pid))
	return nil
}
