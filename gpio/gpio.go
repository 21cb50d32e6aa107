// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package gpio gives every pin of the target a distinct type and tracks
// its mode in the type of the value holding it.
//
// A port is split once into its pins:
//
//	parts := gpio.SplitD(dp.GPIOD, rcc)
//	led := parts.PD12.IntoPushPullOutput()
//	led.SetHigh()
//
// Alternate functions are selected with IntoAF0 to IntoAF15. Only the
// (pin, function) pairs listed in the datasheet of the compiled family
// satisfy their constraints, so
//
//	tx := gpio.IntoAF7(parts.PA2) // USART2_TX
//
// compiles while gpio.IntoAF5(parts.PA0) does not.
//
// Transitions consume the value they are called on. Go cannot forbid
// copies, so every handle carries a generation and using a consumed one
// panics with ErrPinMoved.
package gpio

//go:generate go run ../cmd/pingen -in data/stm32f401.json -out zpins_stm32f401.go
//go:generate go run ../cmd/pingen -in data/stm32f407.json -out zpins_stm32f407.go
//go:generate go run ../cmd/pingen -in data/stm32f429.json -out zpins_stm32f429.go

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bbnote/gostm32f4"
)

var (
	ErrPinMoved      = errors.New("gpio: pin used after it was converted")
	ErrAlreadySplit  = errors.New("gpio: port already split")
	ErrPortMismatch  = errors.New("gpio: register block belongs to another port")
	ErrIllegalAF     = errors.New("gpio: alternate function not available on pin")
	ErrUnknownFunc   = errors.New("gpio: unknown pin function")
	ErrNoSysCfg      = errors.New("gpio: edge detection needs SYSCFG")
	ErrUnsupported   = errors.New("gpio: not supported")
	ErrWrongMode     = errors.New("gpio: operation not valid in current mode")
	ErrInvalidSignal = errors.New("gpio: signal not routed to any pin")
	ErrUnknownPin    = errors.New("gpio: malformed pin name")
)

func log() *logrus.Entry { return gostm32f4.Prefixed("gpio") }

// Port identifies a GPIO port.
type Port uint8

const (
	PortA Port = iota
	PortB
	PortC
	PortD
	PortE
	PortF
	PortG
	PortH
	PortI
	PortJ
	PortK
)

func (p Port) String() string {
	return "GPIO" + string(rune('A'+p))
}

func (p Port) letter() string {
	return string(rune('A' + p))
}

// PinID is implemented by the zero-size identity types PA0 to PK15. Only
// pins bonded out on the compiled family exist.
type PinID interface {
	Port() Port
	Number() uint8
}

func pinName(port Port, n uint8) string {
	if n >= 10 {
		return "P" + port.letter() + string(rune('0'+n/10)) + string(rune('0'+n%10))
	}
	return "P" + port.letter() + string(rune('0'+n))
}

// Speed is the output slew rate.
type Speed uint8

const (
	SpeedLow Speed = iota
	SpeedMedium
	SpeedHigh
	SpeedVeryHigh
)

// Pull selects the internal resistor.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// OutputType is PushPull or OpenDrain.
type OutputType interface {
	openDrain() bool
}

type PushPull struct{}

type OpenDrain struct{}

func (PushPull) openDrain() bool  { return false }
func (OpenDrain) openDrain() bool { return true }
