// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package rcc

import (
	"errors"
	"fmt"
)

var (
	ErrNoPLLParams    = errors.New("no PLL parameters satisfy the requested clocks")
	ErrBusClock       = errors.New("bus clock above its limit")
	ErrInvalidConfig  = errors.New("invalid clock configuration")
	ErrFrequencyRange = errors.New("frequency out of range")
	ErrUnsupported    = errors.New("not supported by this chip")
	ErrAlreadyFrozen  = errors.New("clocks are already frozen")

	ErrHSENotReady  = errors.New("HSE oscillator not ready")
	ErrHSINotReady  = errors.New("HSI oscillator not ready")
	ErrPLLNotLocked = errors.New("PLL not locked")
	ErrOverDrive    = errors.New("over-drive not ready")
	ErrClockSwitch  = errors.New("system clock switch not confirmed")
)

// SolveError is returned when a configuration cannot be realized. No
// register has been written when it is returned.
type SolveError struct {
	Constraint string
	Err        error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("rcc: %s (%s)", e.Err, e.Constraint)
}

func (e *SolveError) Unwrap() error { return e.Err }

func solveErr(err error, format string, args ...interface{}) error {
	return &SolveError{Constraint: fmt.Sprintf(format, args...), Err: err}
}

// NotReadyError reports a status bit that did not assert within the poll
// limit during Freeze.
type NotReadyError struct {
	Stage State
	Polls uint32
	Err   error
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("rcc: %s after %d polls in state %s", e.Err, e.Polls, e.Stage)
}

func (e *NotReadyError) Unwrap() error { return e.Err }
