// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package rcc

import (
	"fmt"

	"periph.io/x/conn/v3/physic"

	"github.com/bbnote/gostm32f4/chip"
)

const (
	pllMMin = 2
	pllMMax = 63
	pllQMin = 2
	pllQMax = 15
)

var pllPDividers = [...]uint32{2, 4, 6, 8}

// PLLParams are the main PLL dividers as programmed into RCC_PLLCFGR.
type PLLParams struct {
	M, N, P, Q uint32
}

func (p PLLParams) String() string {
	return fmt.Sprintf("M=%d N=%d P=%d Q=%d", p.M, p.N, p.P, p.Q)
}

func (p PLLParams) vco(src uint32) uint64 {
	return uint64(src) * uint64(p.N) / uint64(p.M)
}

// VCO returns the PLL VCO frequency for a source oscillator of src.
func (p PLLParams) VCO(src physic.Frequency) physic.Frequency {
	return physic.Frequency(p.vco(uint32(src/physic.Hertz))) * physic.Hertz
}

// SysClk returns the P output.
func (p PLLParams) SysClk(src physic.Frequency) physic.Frequency {
	return physic.Frequency(p.vco(uint32(src/physic.Hertz))/uint64(p.P)) * physic.Hertz
}

// PLL48CLK returns the Q output.
func (p PLLParams) PLL48CLK(src physic.Frequency) physic.Frequency {
	return physic.Frequency(p.vco(uint32(src/physic.Hertz))/uint64(p.Q)) * physic.Hertz
}

// Validate checks every divider and intermediate frequency against the
// hardware limits of c.
func (p PLLParams) Validate(src physic.Frequency, c *chip.Params) error {
	s, err := toHz(src)
	if err != nil {
		return err
	}
	return p.validate(s, c)
}

func (p PLLParams) validate(src uint32, c *chip.Params) error {
	if p.M < pllMMin || p.M > pllMMax {
		return solveErr(ErrNoPLLParams, "M=%d outside %d..%d", p.M, pllMMin, pllMMax)
	}
	if uint64(src) < uint64(p.M)*hz64(c.VCOInMin) || uint64(src) > uint64(p.M)*hz64(c.VCOInMax) {
		return solveErr(ErrNoPLLParams, "VCO input %d Hz outside %s..%s", src/p.M, c.VCOInMin, c.VCOInMax)
	}
	if p.N < uint32(c.PLLNMin) || p.N > uint32(c.PLLNMax) {
		return solveErr(ErrNoPLLParams, "N=%d outside %d..%d", p.N, c.PLLNMin, c.PLLNMax)
	}
	if !vcoInRange(src, p.M, p.N, c) {
		return solveErr(ErrNoPLLParams, "VCO %d Hz outside %s..%s", p.vco(src), c.VCOMin, c.VCOMax)
	}
	switch p.P {
	case 2, 4, 6, 8:
	default:
		return solveErr(ErrNoPLLParams, "P=%d not one of 2, 4, 6, 8", p.P)
	}
	if p.vco(src)/uint64(p.P) > hz64(c.MaxSysclk) {
		return solveErr(ErrNoPLLParams, "sysclk %d Hz above %s", p.vco(src)/uint64(p.P), c.MaxSysclk)
	}
	if p.Q < pllQMin || p.Q > pllQMax {
		return solveErr(ErrNoPLLParams, "Q=%d outside %d..%d", p.Q, pllQMin, pllQMax)
	}
	return nil
}

func hz64(f physic.Frequency) uint64 {
	return uint64(f / physic.Hertz)
}

func vcoInRange(src, m, n uint32, c *chip.Params) bool {
	v := uint64(src) * uint64(n)
	return v >= hz64(c.VCOMin)*uint64(m) && v <= hz64(c.VCOMax)*uint64(m)
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// candidate is a valid main PLL setting and its ranking keys.
type candidate struct {
	PLLParams
	sysErr uint64
	qErr   uint64
	margin uint64
}

// better orders candidates: closest sysclk, closest 48 MHz output, VCO
// farthest from its limits, then the lowest VCO input for the finest N
// step. Remaining ties go to the smaller N, P and Q.
//
// The lowest VCO input means the largest M. A larger M makes each N step
// a smaller change of the VCO frequency; it is not meant to be minimal.
func (a *candidate) better(b *candidate) bool {
	switch {
	case a.sysErr != b.sysErr:
		return a.sysErr < b.sysErr
	case a.qErr != b.qErr:
		return a.qErr < b.qErr
	case a.margin != b.margin:
		return a.margin > b.margin
	case a.M != b.M:
		return a.M > b.M
	case a.N != b.N:
		return a.N < b.N
	case a.P != b.P:
		return a.P < b.P
	}
	return a.Q < b.Q
}

// pickQ returns the 48 MHz divider for vco. With a window the closest Q
// inside it is returned, otherwise the smallest Q keeping the output at or
// below 48 MHz.
func pickQ(vco uint64, window *Range) (q uint32, err uint64, ok bool) {
	t := hz64(PLL48)
	if window == nil {
		d := uint32((vco + t - 1) / t)
		if d < pllQMin {
			d = pllQMin
		}
		if d > pllQMax {
			d = pllQMax
		}
		return d, 0, true
	}

	q0 := uint32((vco + t/2) / t)
	for c := q0 - 1; c <= q0+1; c++ {
		if c < pllQMin || c > pllQMax {
			continue
		}
		out := vco / uint64(c)
		if !window.contains(out) {
			continue
		}
		if e := absDiff(out, t); !ok || e < err {
			q, err, ok = c, e, true
		}
	}
	return q, err, ok
}

// CalculateMNPQ searches the main PLL dividers for a source oscillator of
// src. Every returned tuple satisfies all hardware limits of c and the
// windows of req; if none exists a *SolveError wrapping ErrNoPLLParams is
// returned. The result only depends on the arguments.
func CalculateMNPQ(src physic.Frequency, req FreqRequest, c *chip.Params) (PLLParams, error) {
	s, err := toHz(src)
	if err != nil {
		return PLLParams{}, err
	}
	return calculateMNPQ(s, req, c)
}

func calculateMNPQ(src uint32, req FreqRequest, c *chip.Params) (PLLParams, error) {
	maxSys := hz64(c.MaxSysclk)
	var target uint64
	switch {
	case req.P == nil && req.Q == nil:
		return PLLParams{}, solveErr(ErrInvalidConfig, "no PLL output requested")
	case req.P == nil:
	case req.P.Min > req.P.Max:
		return PLLParams{}, solveErr(ErrNoPLLParams, "sysclk window %d..%d Hz is empty or above %s", req.P.Min, req.P.Max, c.MaxSysclk)
	case uint64(req.P.Min) > maxSys:
		return PLLParams{}, solveErr(ErrNoPLLParams, "sysclk %d Hz above %s", req.P.Min, c.MaxSysclk)
	default:
		target = uint64(req.P.Max)
	}

	var best *candidate
	var reachedSys bool

	for m := uint32(pllMMin); m <= pllMMax; m++ {
		if uint64(src) < uint64(m)*hz64(c.VCOInMin) {
			break
		}
		if uint64(src) > uint64(m)*hz64(c.VCOInMax) {
			continue
		}

		for n := uint32(c.PLLNMin); n <= uint32(c.PLLNMax); n++ {
			if !vcoInRange(src, m, n, c) {
				continue
			}
			vco := uint64(src) * uint64(n) / uint64(m)
			margin := vco - hz64(c.VCOMin)
			if hi := hz64(c.VCOMax) - vco; hi < margin {
				margin = hi
			}

			for _, p := range pllPDividers {
				out := vco / uint64(p)
				if out > maxSys {
					continue
				}
				var sysErr uint64
				if req.P != nil {
					if !req.P.contains(out) {
						continue
					}
					sysErr = absDiff(out, target)
				}
				reachedSys = true

				q, qErr, ok := pickQ(vco, req.Q)
				if ok {
					cand := candidate{
						PLLParams: PLLParams{M: m, N: n, P: p, Q: q},
						sysErr:    sysErr,
						qErr:      qErr,
						margin:    margin,
					}
					if best == nil || cand.better(best) {
						b := cand
						best = &b
					}
				}
				// P output unused: the smallest legal divider will do
				if req.P == nil {
					break
				}
			}
		}
	}

	if best == nil {
		if req.P == nil {
			return PLLParams{}, solveErr(ErrNoPLLParams, "no Q puts the 48 MHz domain within %d..%d Hz", req.Q.Min, req.Q.Max)
		}
		if !reachedSys {
			return PLLParams{}, solveErr(ErrNoPLLParams, "sysclk %d..%d Hz unreachable from %d Hz", req.P.Min, req.P.Max, src)
		}
		return PLLParams{}, solveErr(ErrNoPLLParams, "no Q puts the 48 MHz domain within %d..%d Hz for sysclk %d..%d Hz",
			req.Q.Min, req.Q.Max, req.P.Min, req.P.Max)
	}
	return best.PLLParams, nil
}

// PLLI2SParams are the PLLI2S dividers. M is only programmed on chips where
// PLLI2S has its own input divider.
type PLLI2SParams struct {
	M, N, R uint32
}

func (p PLLI2SParams) String() string {
	return fmt.Sprintf("M=%d N=%d R=%d", p.M, p.N, p.R)
}

// PLLSAIParams are the PLLSAI dividers feeding the SAI block.
type PLLSAIParams struct {
	N, Q, DivQ uint32
}

func (p PLLSAIParams) String() string {
	return fmt.Sprintf("N=%d Q=%d DIVQ=%d", p.N, p.Q, p.DivQ)
}

// auxTolerance is the accepted error of the I2S and SAI clocks, 0.5 %.
func auxTolerance(target uint32) uint64 {
	return uint64(target) / 200
}

// sharedM picks the PLL input divider used when the main PLL is not
// running: the lowest VCO input of at least the chip minimum.
func sharedM(src uint32, c *chip.Params) (uint32, bool) {
	m := uint32(uint64(src) / hz64(c.VCOInMin))
	if m > pllMMax {
		m = pllMMax
	}
	for ; m >= pllMMin; m-- {
		if uint64(src) <= uint64(m)*hz64(c.VCOInMax) && uint64(src) >= uint64(m)*hz64(c.VCOInMin) {
			return m, true
		}
	}
	return 0, false
}

func calculateI2S(src, m, target uint32, c *chip.Params) (PLLI2SParams, uint32, error) {
	if !c.HasPLLI2S {
		return PLLI2SParams{}, 0, solveErr(ErrUnsupported, "%s has no PLLI2S", c)
	}

	ms := []uint32{m}
	if !c.PLLI2SSharesM {
		ms = ms[:0]
		for m := uint32(pllMMin); m <= pllMMax; m++ {
			ms = append(ms, m)
		}
	}

	var best PLLI2SParams
	var bestOut uint32
	bestErr := ^uint64(0)
	for _, m := range ms {
		if uint64(src) < uint64(m)*hz64(c.VCOInMin) || uint64(src) > uint64(m)*hz64(c.VCOInMax) {
			continue
		}
		for n := uint32(c.PLLNMin); n <= uint32(c.PLLNMax); n++ {
			if !vcoInRange(src, m, n, c) {
				continue
			}
			vco := uint64(src) * uint64(n) / uint64(m)
			for r := uint32(2); r <= 7; r++ {
				out := vco / uint64(r)
				if e := absDiff(out, uint64(target)); e < bestErr {
					best, bestOut, bestErr = PLLI2SParams{M: m, N: n, R: r}, uint32(out), e
				}
			}
		}
	}
	if bestErr > auxTolerance(target) {
		return PLLI2SParams{}, 0, solveErr(ErrNoPLLParams, "I2S clock %d Hz not reachable within 0.5%%", target)
	}
	return best, bestOut, nil
}

func calculateSAI(src, m, target uint32, c *chip.Params) (PLLSAIParams, uint32, error) {
	if !c.HasPLLSAI {
		return PLLSAIParams{}, 0, solveErr(ErrUnsupported, "%s has no PLLSAI", c)
	}

	var best PLLSAIParams
	var bestOut uint32
	bestErr := ^uint64(0)
	for n := uint32(c.PLLNMin); n <= uint32(c.PLLNMax); n++ {
		if !vcoInRange(src, m, n, c) {
			continue
		}
		vco := uint64(src) * uint64(n) / uint64(m)
		for q := uint32(pllQMin); q <= pllQMax; q++ {
			for d := uint32(1); d <= 32; d++ {
				out := vco / uint64(q) / uint64(d)
				if e := absDiff(out, uint64(target)); e < bestErr {
					best, bestOut, bestErr = PLLSAIParams{N: n, Q: q, DivQ: d}, uint32(out), e
				}
			}
		}
	}
	if bestErr > auxTolerance(target) {
		return PLLSAIParams{}, 0, solveErr(ErrNoPLLParams, "SAI clock %d Hz not reachable within 0.5%%", target)
	}
	return best, bestOut, nil
}
