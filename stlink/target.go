// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"fmt"
	"sync"

	"github.com/bbnote/gostm32f4/reg"
)

// Probe is word access to a target's address space. *StLink implements it.
type Probe interface {
	ReadUint32(addr uint32) (uint32, error)
	WriteUint32(addr, value uint32) error
}

// Target drives a chip's registers through a probe.
//
// reg.Accessor has no error path, so the first failure is kept and every
// later access is dropped: loads return 0 and stores do nothing until
// ClearErr. Check Err after a sequence of register operations.
type Target struct {
	probe Probe

	mu  sync.Mutex
	err error
}

var _ reg.Accessor = (*Target)(nil)

func NewTarget(p Probe) *Target {
	return &Target{probe: p}
}

func (t *Target) Load32(addr uint32) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return 0
	}
	v, err := t.probe.ReadUint32(addr)
	if err != nil {
		t.err = fmt.Errorf("load 0x%08x: %w", addr, err)
		log().Error(t.err)
		return 0
	}
	return v
}

func (t *Target) Store32(addr, value uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return
	}
	if err := t.probe.WriteUint32(addr, value); err != nil {
		t.err = fmt.Errorf("store 0x%08x to 0x%08x: %w", value, addr, err)
		log().Error(t.err)
	}
}

// Err returns the first failed access, if any.
func (t *Target) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Target) ClearErr() {
	t.mu.Lock()
	t.err = nil
	t.mu.Unlock()
}
