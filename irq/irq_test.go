// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package irq

import (
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

type led struct {
	toggles int
}

func TestCellHandOff(t *testing.T) {
	g := NewWithT(t)
	var cell Cell[led]

	g.Expect(cell.Full()).To(BeFalse())
	g.Expect(cell.With(func(l *led) { l.toggles++ })).To(BeFalse())

	g.Expect(cell.Put(led{})).To(Succeed())
	g.Expect(cell.Put(led{})).To(MatchError(ErrCellOccupied))

	for i := 0; i < 3; i++ {
		g.Expect(cell.With(func(l *led) { l.toggles++ })).To(BeTrue())
	}

	l, ok := cell.Take()
	g.Expect(ok).To(BeTrue())
	g.Expect(l.toggles).To(Equal(3))
	g.Expect(cell.Full()).To(BeFalse())

	_, ok = cell.Take()
	g.Expect(ok).To(BeFalse())
}

func TestCellReplace(t *testing.T) {
	g := NewWithT(t)
	var cell Cell[int]

	_, ok := cell.Replace(1)
	g.Expect(ok).To(BeFalse())
	old, ok := cell.Replace(2)
	g.Expect(ok).To(BeTrue())
	g.Expect(old).To(Equal(1))

	v, _ := cell.Take()
	g.Expect(v).To(Equal(2))
}

func TestCellConcurrentHandler(t *testing.T) {
	g := NewWithT(t)
	var cell Cell[int]
	g.Expect(cell.Put(0)).To(Succeed())

	// goroutines stand in for an interrupt handler firing repeatedly
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				cell.With(func(n *int) { *n++ })
			}
		}()
	}
	wg.Wait()

	v, _ := cell.Take()
	g.Expect(v).To(Equal(8000))
}

func TestFreeNests(t *testing.T) {
	g := NewWithT(t)
	var cell Cell[int]
	g.Expect(cell.Put(1)).To(Succeed())

	done := make(chan int)
	go func() {
		var inner int
		cell.With(func(n *int) {
			Free(func() {
				Free(func() { inner = *n })
			})
			if cell.Full() {
				*n++
			}
		})
		done <- inner
	}()

	g.Eventually(done, time.Second).Should(Receive(Equal(1)))
	v, _ := cell.Take()
	g.Expect(v).To(Equal(2))

	// the lock is released again for other goroutines
	g.Expect(cell.Put(3)).To(Succeed())
}
