// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var errTable = errors.New("pingen: bad table")

// table is the JSON form of a family's pinout. A table may extend another
// one from the same directory; its pins then add to the base pins.
type table struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Build       string              `json:"build"`
	Extends     string              `json:"extends,omitempty"`
	Rename      map[string]string   `json:"rename,omitempty"`
	Ports       map[string]int      `json:"ports"`
	Debug       []string            `json:"debug"`
	Pins        map[string][]string `json:"pins"`
}

type signal struct {
	AF   uint8
	Name string
}

type pinDef struct {
	Port    byte
	N       uint8
	Debug   bool
	Signals []signal
}

func (p pinDef) Name() string {
	return "P" + string(p.Port) + strconv.Itoa(int(p.N))
}

// Slots returns the alternate function numbers in use, ascending.
func (p pinDef) Slots() []uint8 {
	var out []uint8
	for _, s := range p.Signals {
		if len(out) == 0 || out[len(out)-1] != s.AF {
			out = append(out, s.AF)
		}
	}
	return out
}

type portDef struct {
	Letter byte
	Pins   []pinDef
}

type family struct {
	Name   string
	Build  string
	Source string
	Ports  []portDef
}

func loadTable(path string) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if t.Extends == "" {
		return &t, nil
	}

	base, err := loadTable(filepath.Join(filepath.Dir(path), t.Extends+".json"))
	if err != nil {
		return nil, err
	}
	return t.over(base), nil
}

// over returns t layered on base.
func (t *table) over(base *table) *table {
	out := *t
	if out.Ports == nil {
		out.Ports = base.Ports
	}
	if out.Debug == nil {
		out.Debug = base.Debug
	}

	renames := make([]string, 0, len(t.Rename))
	for from := range t.Rename {
		renames = append(renames, from)
	}
	sort.Strings(renames)

	out.Pins = map[string][]string{}
	for name, sigs := range base.Pins {
		for _, s := range sigs {
			for _, from := range renames {
				af, sig, _ := strings.Cut(s, ":")
				if strings.HasPrefix(sig, from) {
					s = af + ":" + t.Rename[from] + strings.TrimPrefix(sig, from)
				}
			}
			out.Pins[name] = append(out.Pins[name], s)
		}
	}
	for name, sigs := range t.Pins {
		out.Pins[name] = append(out.Pins[name], sigs...)
	}
	return &out
}

// family resolves the table into ports and pins. Every pin gets
// EVENTOUT on AF15 unless the table says otherwise.
func (t *table) family(source string) (*family, error) {
	if t.Name == "" || t.Build == "" {
		return nil, fmt.Errorf("%w: name and build are required", errTable)
	}
	f := &family{Name: t.Name, Build: t.Build, Source: source}

	letters := make([]string, 0, len(t.Ports))
	for l := range t.Ports {
		if len(l) != 1 || l[0] < 'A' || l[0] > 'K' {
			return nil, fmt.Errorf("%w: port %q", errTable, l)
		}
		letters = append(letters, l)
	}
	sort.Strings(letters)

	debug := map[string]bool{}
	for _, d := range t.Debug {
		debug[d] = true
	}

	seen := map[string]bool{}
	for _, l := range letters {
		count := t.Ports[l]
		if count < 1 || count > 16 {
			return nil, fmt.Errorf("%w: port %s has %d pins", errTable, l, count)
		}
		port := portDef{Letter: l[0]}
		for n := 0; n < count; n++ {
			p := pinDef{Port: l[0], N: uint8(n)}
			p.Debug = debug[p.Name()]
			sigs, err := parseSignals(p.Name(), t.Pins[p.Name()])
			if err != nil {
				return nil, err
			}
			p.Signals = sigs
			seen[p.Name()] = true
			port.Pins = append(port.Pins, p)
		}
		f.Ports = append(f.Ports, port)
	}

	for name := range t.Pins {
		if !seen[name] {
			return nil, fmt.Errorf("%w: %s is outside the declared ports", errTable, name)
		}
	}
	return f, nil
}

func parseSignals(pin string, list []string) ([]signal, error) {
	var out []signal
	dup := map[signal]bool{}
	for _, s := range list {
		num, name, ok := strings.Cut(s, ":")
		af, err := strconv.Atoi(num)
		if !ok || err != nil || af < 0 || af > 15 || name == "" {
			return nil, fmt.Errorf("%w: %s: %q", errTable, pin, s)
		}
		sig := signal{AF: uint8(af), Name: name}
		if dup[sig] {
			continue
		}
		dup[sig] = true
		out = append(out, sig)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AF < out[j].AF })
	if len(out) == 0 || out[len(out)-1].AF != 15 {
		out = append(out, signal{AF: 15, Name: "EVENTOUT"})
	}
	return out, nil
}
