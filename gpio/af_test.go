// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"golang.org/x/tools/go/packages"
)

const afProgram = `package main

import (
	"github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/gpio"
	"github.com/bbnote/gostm32f4/rcc"
	"github.com/bbnote/gostm32f4/sim"
)

func main() {
	dp := stm32f4.Steal(sim.New())
	parts := gpio.SplitA(dp.GPIOA, rcc.New(dp))
	_ = parts
	%s
}
`

var families = []string{"stm32f401", "stm32f407", "stm32f429"}

// typeCheck compiles stmt inside a throwaway main package of this module
// against the pin table of family and returns the type errors.
func typeCheck(t *testing.T, family, stmt string) []string {
	t.Helper()
	dir, err := os.MkdirTemp(".", "afcheck")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	src := fmt.Sprintf(afProgram, stmt)
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &packages.Config{
		Mode:       packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:        dir,
		BuildFlags: []string{"-tags=" + family},
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		t.Fatal(err)
	}

	var errs []string
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			errs = append(errs, e.Msg)
		}
	})
	return errs
}

func expectTypeCheck(t *testing.T, family, stmt, missing string) {
	g := NewWithT(t)
	errs := typeCheck(t, family, stmt)
	if missing == "" {
		g.Expect(errs).To(BeEmpty())
		return
	}
	g.Expect(errs).NotTo(BeEmpty())
	g.Expect(strings.Join(errs, "\n")).To(ContainSubstring(missing))
}

func TestAlternateFunctionLegality(t *testing.T) {
	if testing.Short() {
		t.Skip("type checks a generated program")
	}

	cases := []struct {
		stmt    string
		missing string
	}{
		{stmt: "_ = gpio.IntoAF7(parts.PA2)"},
		{stmt: "_ = gpio.IntoAF5(parts.PA5.IntoFloatingInput())"},
		{stmt: "_ = gpio.IntoAF0(parts.PA13)"},
		{stmt: "_ = gpio.IntoAF15(parts.PA0)"},
		{stmt: "_ = gpio.IntoAF5[gpio.PA0](parts.PA0)", missing: "af5"},
		{stmt: "_ = gpio.IntoAF0[gpio.PA2](parts.PA2)", missing: "af0"},
		{stmt: "_ = gpio.IntoAF7[gpio.PA2](parts.PA3)", missing: "PA2"},
	}

	for _, family := range families {
		for _, tc := range cases {
			t.Run(family+"/"+tc.stmt, func(t *testing.T) {
				expectTypeCheck(t, family, tc.stmt, tc.missing)
			})
		}
	}
}

func TestAlternateFunctionsPerFamily(t *testing.T) {
	if testing.Short() {
		t.Skip("type checks a generated program")
	}

	// missing is keyed by the families lacking the function
	cases := []struct {
		stmt    string
		missing map[string]string
	}{
		// UART4 is not on the F401
		{"_ = gpio.IntoAF8(parts.PA0)", map[string]string{"stm32f401": "af8"}},
		// LTDC only exists on the F429
		{"_ = gpio.IntoAF14(parts.PA3)", map[string]string{"stm32f401": "af14", "stm32f407": "af14"}},
		// Ethernet is absent from the F401
		{"_ = gpio.IntoAF11(parts.PA2)", map[string]string{"stm32f401": "af11"}},
	}

	for _, family := range families {
		for _, tc := range cases {
			t.Run(family+"/"+tc.stmt, func(t *testing.T) {
				expectTypeCheck(t, family, tc.stmt, tc.missing[family])
			})
		}
	}
}
