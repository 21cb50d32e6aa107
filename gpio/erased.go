// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	ppin "periph.io/x/conn/v3/pin"

	"github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/rcc"
)

// FuncAnalog is reported by ErasedPin.Func for pins in analog mode.
const FuncAnalog ppin.Func = "ANALOG"

// Mode is the MODER setting of a pin.
type Mode uint8

const (
	ModeInput Mode = iota
	ModeOutput
	ModeAlternate
	ModeAnalog
)

func (m Mode) String() string {
	return [...]string{"input", "output", "alternate", "analog"}[m&3]
}

// ErasedPin is a pin whose identity and mode are only known at run time.
// Every operation checks the hardware state instead of relying on the
// type system. It implements periph.io's gpio.PinIO and pin.PinFunc, so
// drivers written against periph can use it.
type ErasedPin struct {
	b    *bank
	n    uint8
	gen  uint32
	sys  *SysCfg
	edge pgpio.Edge
}

var (
	_ pgpio.PinIO  = (*ErasedPin)(nil)
	_ ppin.PinFunc = (*ErasedPin)(nil)
)

func (p *ErasedPin) check() {
	if p.b.pins[p.n].gen.Load() != p.gen {
		panic(fmt.Errorf("%w: %s", ErrPinMoved, p.Name()))
	}
}

func (p *ErasedPin) Port() Port { return p.b.port }

// Pin returns the pin number within the port.
func (p *ErasedPin) Pin() uint8 { return p.n }

func (p *ErasedPin) String() string { return p.Name() }
func (p *ErasedPin) Name() string   { return pinName(p.b.port, p.n) }

// Number returns port*16 + pin, unique over the chip.
func (p *ErasedPin) Number() int { return int(p.b.port)*16 + int(p.n) }

// Function implements pin.Pin.
func (p *ErasedPin) Function() string { return string(p.Func()) }

// Halt stops edge detection.
func (p *ErasedPin) Halt() error {
	p.check()
	if p.edge != pgpio.NoEdge {
		triggerOnEdge(p.b.exti, p.n, pgpio.NoEdge)
		p.edge = pgpio.NoEdge
	}
	return nil
}

func (p *ErasedPin) Mode() Mode {
	p.check()
	return Mode(p.b.mode(p.n))
}

// UseSysCfg lets In configure edge detection. The SYSCFG clock must be
// running, which NewSysCfg takes care of.
func (p *ErasedPin) UseSysCfg(s *SysCfg) *ErasedPin {
	p.sys = s
	return p
}

// In configures the pin as input. Edge detection routes the pin's EXTI
// line to its port and needs UseSysCfg first.
func (p *ErasedPin) In(pull pgpio.Pull, edge pgpio.Edge) error {
	p.check()
	if edge != pgpio.NoEdge && p.sys == nil {
		return ErrNoSysCfg
	}
	switch pull {
	case pgpio.Float:
		p.b.setPull(p.n, PullNone)
	case pgpio.PullUp:
		p.b.setPull(p.n, PullUp)
	case pgpio.PullDown:
		p.b.setPull(p.n, PullDown)
	case pgpio.PullNoChange:
	default:
		return fmt.Errorf("%w: pull %v", ErrUnsupported, pull)
	}
	p.b.setMode(p.n, stm32f4.GPIO_MODER_Input)

	if edge != p.edge {
		triggerOnEdge(p.b.exti, p.n, edge)
		p.edge = edge
	}
	if edge != pgpio.NoEdge {
		p.sys.route(p.b.port, p.n)
		// drop edges seen before the line was ours
		p.b.exti.PR.Set(1 << p.n)
	}
	return nil
}

func (p *ErasedPin) Read() pgpio.Level {
	p.check()
	return pgpio.Level(p.b.input(p.n))
}

// WaitForEdge polls the EXTI pending bit. A negative timeout waits
// forever.
func (p *ErasedPin) WaitForEdge(timeout time.Duration) bool {
	p.check()
	if p.edge == pgpio.NoEdge {
		return false
	}
	mask := uint32(1) << p.n
	start := time.Now()
	for {
		if p.b.exti.PR.Get()&mask != 0 {
			p.b.exti.PR.Set(mask)
			return true
		}
		if timeout >= 0 && time.Since(start) >= timeout {
			return false
		}
	}
}

func (p *ErasedPin) Pull() pgpio.Pull {
	p.check()
	switch p.b.pull(p.n) {
	case PullUp:
		return pgpio.PullUp
	case PullDown:
		return pgpio.PullDown
	}
	return pgpio.Float
}

// DefaultPull returns the pull after reset; only the debug port pins have
// one.
func (p *ErasedPin) DefaultPull() pgpio.Pull {
	switch p.Name() {
	case "PA13", "PA15", "PB4":
		return pgpio.PullUp
	case "PA14":
		return pgpio.PullDown
	}
	return pgpio.Float
}

// Out drives the pin. A pin not yet in output mode becomes a push-pull
// output.
func (p *ErasedPin) Out(l pgpio.Level) error {
	p.check()
	if Mode(p.b.mode(p.n)) == ModeOutput {
		p.b.write(p.n, bool(l))
		return nil
	}
	p.b.intoOutput(p.n, false, bool(l))
	return nil
}

func (p *ErasedPin) Toggle() error {
	p.check()
	if Mode(p.b.mode(p.n)) != ModeOutput {
		return fmt.Errorf("%w: toggle %s in %v mode", ErrWrongMode, p.Name(), p.Mode())
	}
	p.b.toggle(p.n)
	return nil
}

// PWM needs a timer channel, which this package does not drive.
func (p *ErasedPin) PWM(duty pgpio.Duty, f physic.Frequency) error {
	return fmt.Errorf("%w: PWM on %s", ErrUnsupported, p.Name())
}

func (p *ErasedPin) SetSpeed(s Speed) {
	p.check()
	p.b.setSpeed(p.n, s)
}

func (p *ErasedPin) SetOpenDrain(on bool) {
	p.check()
	p.b.setOpenDrain(p.n, on)
}

// IntoAlternate selects alternate function af. Slots without a signal on
// this pin are rejected with ErrIllegalAF.
func (p *ErasedPin) IntoAlternate(af uint8) error {
	p.check()
	if _, ok := signalOf(p.b.port, p.n, af); !ok {
		return fmt.Errorf("%w: AF%d on %s", ErrIllegalAF, af, p.Name())
	}
	p.b.intoAlternate(p.n, af)
	return nil
}

func (p *ErasedPin) Func() ppin.Func {
	p.check()
	switch Mode(p.b.mode(p.n)) {
	case ModeInput:
		return pgpio.IN
	case ModeOutput:
		if p.b.openDrain(p.n) {
			return pgpio.OUT_OC
		}
		return pgpio.OUT
	case ModeAnalog:
		return FuncAnalog
	}
	af := p.b.af(p.n)
	if s, ok := signalOf(p.b.port, p.n, af); ok {
		return ppin.Func(s)
	}
	return ppin.Func(fmt.Sprintf("AF%d", af))
}

func (p *ErasedPin) SupportedFuncs() []ppin.Func {
	out := []ppin.Func{pgpio.IN, pgpio.OUT, pgpio.OUT_OC, FuncAnalog}
	for _, e := range signalsOf(p.b.port, p.n) {
		out = append(out, ppin.Func(e.signal))
	}
	return out
}

// SetFunc accepts the generic periph functions and the signal names of
// the datasheet, e.g. "USART2_TX".
func (p *ErasedPin) SetFunc(f ppin.Func) error {
	p.check()
	switch f {
	case pgpio.IN:
		return p.In(pgpio.PullNoChange, pgpio.NoEdge)
	case pgpio.FLOAT:
		return p.In(pgpio.Float, pgpio.NoEdge)
	case pgpio.OUT:
		p.b.intoOutput(p.n, false, p.b.output(p.n))
		return nil
	case pgpio.OUT_OC:
		p.b.intoOutput(p.n, true, p.b.output(p.n))
		return nil
	case FuncAnalog:
		p.b.intoAnalog(p.n)
		return nil
	}
	af, ok := afOf(p.b.port, p.n, string(f))
	if !ok {
		if _, err := Lookup(string(f)); err == nil {
			return fmt.Errorf("%w: %s on %s", ErrIllegalAF, f, p.Name())
		}
		return fmt.Errorf("%w: %s", ErrUnknownFunc, f)
	}
	p.b.intoAlternate(p.n, af)
	log().Debugf("%s set to %s (AF%d)", p.Name(), f, af)
	return nil
}

// SplitErased splits a port into runtime checked pins for tools that select
// pins by name. Entries past the pins the package has bonded out stay nil.
// Debug pins are included. Reconfiguring them ends the debug connection.
func SplitErased(regs *stm32f4.GPIO_Type, r *rcc.RCC) [16]*ErasedPin {
	port := Port(regs.Port())
	b := split(regs, port, r)

	var pins [16]*ErasedPin
	for n := 0; n < int(portPins[port]); n++ {
		pins[n] = &ErasedPin{b: b, n: uint8(n), gen: b.pins[n].gen.Load()}
	}
	return pins
}

// ParsePin parses a pin name such as "PD12" or "pa0".
func ParsePin(name string) (Port, uint8, error) {
	s := strings.ToUpper(name)
	if len(s) < 3 || len(s) > 4 || s[0] != 'P' || s[1] < 'A' || s[1] > 'K' {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownPin, name)
	}
	n, err := strconv.ParseUint(s[2:], 10, 8)
	if err != nil || n > 15 {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownPin, name)
	}
	return Port(s[1] - 'A'), uint8(n), nil
}
