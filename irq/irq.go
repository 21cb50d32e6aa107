// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package irq provides the critical section shared by thread mode and
// interrupt handlers, and a cell for handing a peripheral over to a
// handler.
package irq

import (
	"errors"
)

var ErrCellOccupied = errors.New("irq: cell already holds a value")

// Cell holds at most one value shared between the main program and an
// interrupt handler. Every access runs inside Free.
//
// The usual pattern is to Put a configured peripheral once before the
// interrupt is unmasked and to reach it from the handler through With.
type Cell[T any] struct {
	v    T
	full bool
}

// Put stores v. It fails with ErrCellOccupied if the cell is not empty.
func (c *Cell[T]) Put(v T) error {
	var err error
	Free(func() {
		if c.full {
			err = ErrCellOccupied
			return
		}
		c.v, c.full = v, true
	})
	return err
}

// Take empties the cell and returns what it held.
func (c *Cell[T]) Take() (v T, ok bool) {
	Free(func() {
		v, ok = c.v, c.full
		var zero T
		c.v, c.full = zero, false
	})
	return v, ok
}

// Replace stores v and returns the previous value, if any.
func (c *Cell[T]) Replace(v T) (old T, ok bool) {
	Free(func() {
		old, ok = c.v, c.full
		c.v, c.full = v, true
	})
	return old, ok
}

// With calls fn on the held value and reports whether there was one. fn
// runs with interrupts masked; operations on the value may enter Free
// again.
func (c *Cell[T]) With(fn func(v *T)) bool {
	var ok bool
	Free(func() {
		if !c.full {
			return
		}
		fn(&c.v)
		ok = true
	})
	return ok
}

func (c *Cell[T]) Full() bool {
	var full bool
	Free(func() { full = c.full })
	return full
}
