// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package gostm32f4 is a hardware abstraction layer for STM32F4
// microcontrollers.
//
// The clock tree is configured through package rcc, pins through package
// gpio. Register access goes through a reg.Accessor, which is memory mapped
// I/O on the target itself, a sim.Device in tests or an stlink.Target when
// the chip is driven over SWD from a host.
package gostm32f4
