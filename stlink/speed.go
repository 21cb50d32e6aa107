// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import "fmt"

type speedMap struct {
	khz     uint32
	divisor uint16
}

var swdSpeedMap = [...]speedMap{
	{4000, 0},
	{1800, 1},
	{1200, 2},
	{950, 3},
	{480, 7},
	{240, 15},
	{125, 31},
	{100, 40},
	{50, 79},
	{25, 158},
	{15, 265},
	{5, 798},
}

// matchSpeed returns the fastest entry not above khz, or the slowest entry
// if every speed is above it. Zero entries are unused slots. It returns -1
// for an empty map.
func matchSpeed(smap []speedMap, khz uint32) (index int, exact bool) {
	best, slowest := -1, -1

	for i, s := range smap {
		if s.khz == 0 {
			continue
		}
		if s.khz == khz {
			return i, true
		}
		if s.khz < khz && (best < 0 || s.khz > smap[best].khz) {
			best = i
		}
		if slowest < 0 || s.khz < smap[slowest].khz {
			slowest = i
		}
	}

	if best < 0 {
		return slowest, false
	}
	return best, false
}

// SetSpeed sets the SWD clock and returns the speed actually used.
func (h *StLink) SetSpeed(khz uint32) (uint32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.setSpeed(khz)
}

func (h *StLink) setSpeed(khz uint32) (uint32, error) {
	if h.version.api == jtagAPIV3 {
		return h.setSpeedV3(khz)
	}

	// old firmware cannot change it
	if !h.version.has(flagHasSwdSetFreq) {
		return 0, fmt.Errorf("%w: setting SWD frequency", ErrUnsupported)
	}

	i, exact := matchSpeed(swdSpeedMap[:], khz)
	if !exact {
		log().Infof("unable to match requested speed %d kHz, using %d kHz", khz, swdSpeedMap[i].khz)
	}

	t := newTransfer(dirIn, 2)
	t.cmd.Write([]byte{cmdDebug, debugApiV2SwdSetFreq})
	t.cmd.WriteUint16LE(swdSpeedMap[i].divisor)

	if err := h.cmdAllowRetry(t); err != nil {
		return 0, fmt.Errorf("unable to set adapter speed: %w", err)
	}
	return swdSpeedMap[i].khz, nil
}

func (h *StLink) setSpeedV3(khz uint32) (uint32, error) {
	smap, err := h.comFrequencies()
	if err != nil {
		return 0, err
	}

	i, exact := matchSpeed(smap, khz)
	if i < 0 {
		return 0, newUsbError(ErrorFail, "probe reported no SWD frequencies")
	}
	if !exact {
		log().Infof("unable to match requested speed %d kHz, using %d kHz", khz, smap[i].khz)
	}

	t := newTransfer(dirIn, 8)
	t.cmd.Write([]byte{cmdDebug, debugApiV3SetComFreq, 0, 0})
	t.cmd.WriteUint32LE(smap[i].khz)

	if err := h.transferErrCheck(t); err != nil {
		return 0, fmt.Errorf("unable to set adapter speed: %w", err)
	}
	return smap[i].khz, nil
}

// comFrequencies asks a V3 probe for its SWD frequency table.
func (h *StLink) comFrequencies() ([]speedMap, error) {
	t := newTransfer(dirIn, 52)
	t.cmd.Write([]byte{cmdDebug, debugApiV3GetComFreq, 0})

	if err := h.transferErrCheck(t); err != nil {
		return nil, err
	}

	n := int(t.data[8])
	if n > v3MaxFreqCount {
		n = v3MaxFreqCount
	}

	smap := make([]speedMap, n)
	for i := range smap {
		smap[i] = speedMap{khz: uint32LE(t.data[12+4*i:]), divisor: uint16(i)}
	}
	return smap, nil
}
