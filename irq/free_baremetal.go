// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

//go:build baremetal

package irq

import (
	"runtime/interrupt"
)

// Free runs fn with interrupts disabled. Nested calls restore the state
// found on entry.
func Free(fn func()) {
	state := interrupt.Disable()
	defer interrupt.Restore(state)
	fn()
}
