// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

//go:build baremetal

package reg

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO accesses the bus of the chip the program runs on.
type MMIO struct{}

//go:inline
func (MMIO) Load32(addr uint32) uint32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(addr))).Get()
}

//go:inline
func (MMIO) Store32(addr, value uint32) {
	(*volatile.Register32)(unsafe.Pointer(uintptr(addr))).Set(value)
}
