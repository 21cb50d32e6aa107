// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

//go:build !baremetal

package irq

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Hosted builds have no interrupts to mask; handlers are emulated by
// goroutines, so a process-wide lock gives the same exclusion. The lock is
// reentrant for the goroutine holding it, as nested Disable/Restore pairs
// are on hardware.
var (
	section sync.Mutex
	owner   atomic.Uint64
)

// Free runs fn in a critical section. Nested calls from fn run directly.
func Free(fn func()) {
	id := goroutineID()
	if owner.Load() == id {
		fn()
		return
	}

	section.Lock()
	owner.Store(id)
	defer func() {
		owner.Store(0)
		section.Unlock()
	}()
	fn()
}

// goroutineID parses the id from the "goroutine N [" header of the
// current stack. Ids start at 1.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("irq: cannot identify goroutine: " + err.Error())
	}
	return id
}
