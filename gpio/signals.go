// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

import (
	"fmt"
)

// afEntry is one row of the generated alternate function table.
type afEntry struct {
	port   Port
	pin    uint8
	af     uint8
	signal string
}

func signalOf(port Port, n, af uint8) (string, bool) {
	for _, e := range afTable {
		if e.port == port && e.pin == n && e.af == af {
			return e.signal, true
		}
	}
	return "", false
}

func afOf(port Port, n uint8, signal string) (uint8, bool) {
	for _, e := range afTable {
		if e.port == port && e.pin == n && e.signal == signal {
			return e.af, true
		}
	}
	return 0, false
}

func signalsOf(port Port, n uint8) []afEntry {
	var out []afEntry
	for _, e := range afTable {
		if e.port == port && e.pin == n {
			out = append(out, e)
		}
	}
	return out
}

// Location is a pin and the alternate function that connects it to a
// signal.
type Location struct {
	Port Port
	Pin  uint8
	AF   uint8
}

func (l Location) String() string {
	return fmt.Sprintf("%s AF%d", pinName(l.Port, l.Pin), l.AF)
}

// Lookup lists the pins a peripheral signal such as "SPI1_SCK" can be
// routed to on the compiled family.
func Lookup(signal string) ([]Location, error) {
	var out []Location
	for _, e := range afTable {
		if e.signal == signal {
			out = append(out, Location{Port: e.port, Pin: e.pin, AF: e.af})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSignal, signal)
	}
	return out, nil
}
