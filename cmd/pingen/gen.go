// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"go/format"
)

// generate writes the identity types, the alternate function markers,
// the Parts structs with their Split functions and the runtime pin count
// and signal tables of f as gofmt'ed Go source.
func generate(f *family) ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintf(&b, "// Code generated by pingen from %s. DO NOT EDIT.\n\n", f.Source)
	fmt.Fprintf(&b, "//go:build %s\n\n", f.Build)
	b.WriteString("package gpio\n\n")
	b.WriteString("import (\n\t\"github.com/bbnote/gostm32f4/device/stm32f4\"\n\t\"github.com/bbnote/gostm32f4/rcc\"\n)\n\n")
	fmt.Fprintf(&b, "// Family names the pin table compiled in.\nconst Family = %q\n", f.Name)

	for _, port := range f.Ports {
		for _, p := range port.Pins {
			name := p.Name()
			fmt.Fprintf(&b, "\n// %s identifies pin %d of port %c.\n", name, p.N, port.Letter)
			fmt.Fprintf(&b, "type %s struct{}\n\n", name)
			fmt.Fprintf(&b, "func (%s) Port() Port { return Port%c }\n", name, port.Letter)
			fmt.Fprintf(&b, "func (%s) Number() uint8 { return %d }\n", name, p.N)
			for _, af := range p.Slots() {
				fmt.Fprintf(&b, "func (%s) af%d() {}\n", name, af)
			}
		}
	}

	for _, port := range f.Ports {
		l := port.Letter
		fmt.Fprintf(&b, "\n// Parts%c holds the pins of port %c in their reset modes.\n", l, l)
		fmt.Fprintf(&b, "type Parts%c struct {\n", l)
		for _, p := range port.Pins {
			fmt.Fprintf(&b, "\t%s %s[%s]\n", p.Name(), p.mode(), p.Name())
		}
		b.WriteString("}\n\n")

		fmt.Fprintf(&b, "// Split%c enables the clock of port %c and hands out each pin once. A\n", l, l)
		b.WriteString("// second split of the same port panics with ErrAlreadySplit.\n")
		fmt.Fprintf(&b, "func Split%c(regs *stm32f4.GPIO_Type, r *rcc.RCC) Parts%c {\n", l, l)
		fmt.Fprintf(&b, "\tb := split(regs, Port%c, r)\n", l)
		fmt.Fprintf(&b, "\treturn Parts%c{\n", l)
		for _, p := range port.Pins {
			fmt.Fprintf(&b, "\t\t%s: new%s[%s](b),\n", p.Name(), p.mode(), p.Name())
		}
		b.WriteString("\t}\n}\n")
	}

	b.WriteString("\n// portPins is the number of bonded pins of each port, numbered from 0.\n")
	b.WriteString("var portPins = [PortK + 1]uint8{\n")
	for _, port := range f.Ports {
		fmt.Fprintf(&b, "\tPort%c: %d,\n", port.Letter, len(port.Pins))
	}
	b.WriteString("}\n")

	b.WriteString("\nvar afTable = []afEntry{\n")
	for _, port := range f.Ports {
		for _, p := range port.Pins {
			for _, s := range p.Signals {
				fmt.Fprintf(&b, "\t{Port%c, %d, %d, %q},\n", port.Letter, p.N, s.AF, s.Name)
			}
		}
	}
	b.WriteString("}\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("pingen: formatting %s: %w", f.Name, err)
	}
	return src, nil
}

// mode is the type a pin has after reset.
func (p pinDef) mode() string {
	if p.Debug {
		return "Debugger"
	}
	return "Input"
}
