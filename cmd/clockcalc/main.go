// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Command clockcalc solves a clock configuration for an STM32F4 family and
// prints the resulting register plan without touching any hardware.
//
//	clockcalc -chip stm32f407 -hse 8MHz -sysclk 168MHz -pll48
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"periph.io/x/conn/v3/physic"

	"github.com/bbnote/gostm32f4"
	"github.com/bbnote/gostm32f4/chip"
	"github.com/bbnote/gostm32f4/rcc"
)

var logger *logrus.Logger

func initLogger(out io.Writer, verbose bool) {
	logger = logrus.New()
	logger.SetFormatter(&prefixed.TextFormatter{
		DisableTimestamp: true,
		ForceFormatting:  true,
	})
	logger.SetOutput(out)
	if verbose {
		logger.SetLevel(gostm32f4.MaxLogLevel)
	}
	gostm32f4.SetLogger(logger)
}

type request struct {
	chip   string
	hse    physic.Frequency
	bypass bool
	sysclk physic.Frequency
	hclk   physic.Frequency
	pclk1  physic.Frequency
	pclk2  physic.Frequency
	pll48  bool
	i2s    physic.Frequency
	sai    physic.Frequency
	vrange uint
}

func (r request) config() (rcc.Config, *chip.Params, error) {
	c := chip.ByName(r.chip)
	if c == nil {
		return rcc.Config{}, nil, fmt.Errorf("unknown chip %q", r.chip)
	}
	if r.vrange > uint(chip.Range1V8to2V1) {
		return rcc.Config{}, nil, fmt.Errorf("voltage range %d out of range [0, %d]", r.vrange, chip.Range1V8to2V1)
	}

	cfg := rcc.NewConfig().Chip(c).VoltageRange(chip.VoltageRange(r.vrange))
	if r.hse != 0 {
		cfg = cfg.HSE(r.hse)
		if r.bypass {
			cfg = cfg.BypassHSE()
		}
	}
	if r.sysclk != 0 {
		cfg = cfg.Sysclk(r.sysclk)
	}
	if r.hclk != 0 {
		cfg = cfg.HCLK(r.hclk)
	}
	if r.pclk1 != 0 {
		cfg = cfg.PCLK1(r.pclk1)
	}
	if r.pclk2 != 0 {
		cfg = cfg.PCLK2(r.pclk2)
	}
	if r.pll48 {
		cfg = cfg.RequirePLL48CLK()
	}
	if r.i2s != 0 {
		cfg = cfg.I2SCLK(r.i2s)
	}
	if r.sai != 0 {
		cfg = cfg.SAICLK(r.sai)
	}
	return cfg, c, nil
}

func printPlan(w io.Writer, p *rcc.Plan) {
	cl := p.Clocks()

	fmt.Fprintf(w, "chip:       %s\n", p.Chip)
	fmt.Fprintf(w, "oscillator: %s", p.Oscillator)
	if p.Oscillator == rcc.SourceHSE {
		fmt.Fprintf(w, " %s", physic.Frequency(p.HSE)*physic.Hertz)
		if p.Bypass {
			fmt.Fprint(w, " (bypass)")
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "sysclk:     %s from %s\n", cl.Sysclk(), p.Sysclk)

	if pll, ok := cl.PLL(); ok {
		fmt.Fprintf(w, "pll:        %s\n", pll)
		fmt.Fprintf(w, "pllcfgr:    0x%08x\n", p.PLLCFGR())
	}
	if p.I2S != nil {
		fmt.Fprintf(w, "plli2s:     %s\n", *p.I2S)
	}
	if p.SAI != nil {
		fmt.Fprintf(w, "pllsai:     %s\n", *p.SAI)
	}

	fmt.Fprintf(w, "prescalers: HPRE=/%d PPRE1=/%d PPRE2=/%d (cfgr 0x%08x)\n", p.HPRE, p.PPRE1, p.PPRE2, p.CFGR())
	fmt.Fprintf(w, "latency:    %d wait states at %s\n", p.Latency, p.VR)
	if p.OverDrive {
		fmt.Fprintln(w, "over-drive: on")
	}

	fmt.Fprintf(w, "hclk:       %s\n", cl.HCLK())
	fmt.Fprintf(w, "pclk1:      %s (timers %s)\n", cl.PCLK1(), cl.TimClk1())
	fmt.Fprintf(w, "pclk2:      %s (timers %s)\n", cl.PCLK2(), cl.TimClk2())
	if f, ok := cl.PLL48CLK(); ok {
		valid := "valid"
		if !cl.IsPLL48CLKValid() {
			valid = "out of tolerance"
		}
		fmt.Fprintf(w, "pll48clk:   %s (%s)\n", f, valid)
	}
	if f, ok := cl.I2SCLK(); ok {
		fmt.Fprintf(w, "i2sclk:     %s\n", f)
	}
	if f, ok := cl.SAICLK(); ok {
		fmt.Fprintf(w, "saiclk:     %s\n", f)
	}
}

func main() {
	var r request

	flag.StringVar(&r.chip, "chip", "stm32f407", "chip family, e.g. stm32f401, stm32f429")
	flag.Var(&r.hse, "hse", "HSE crystal frequency, HSI if unset")
	flag.BoolVar(&r.bypass, "bypass", false, "HSE is an external clock")
	flag.Var(&r.sysclk, "sysclk", "requested system clock")
	flag.Var(&r.hclk, "hclk", "requested AHB clock")
	flag.Var(&r.pclk1, "pclk1", "requested APB1 clock")
	flag.Var(&r.pclk2, "pclk2", "requested APB2 clock")
	flag.BoolVar(&r.pll48, "pll48", false, "require a valid 48 MHz USB clock")
	flag.Var(&r.i2s, "i2s", "requested I2S clock")
	flag.Var(&r.sai, "sai", "requested SAI clock")
	flag.UintVar(&r.vrange, "vrange", 0, "supply range: 0 2.7-3.6V, 1 2.4-2.7V, 2 2.1-2.4V, 3 1.8-2.1V")
	flagVerbose := flag.Bool("v", false, "verbose output")
	flag.Parse()

	stdout := colorable.NewColorableStdout()
	initLogger(stdout, *flagVerbose)

	cfg, c, err := r.config()
	if err != nil {
		logger.Error(err)
		os.Exit(2)
	}

	plan, err := cfg.Plan(c)
	if err != nil {
		var se *rcc.SolveError
		if errors.As(err, &se) {
			logger.WithField("prefix", c.Name).Errorf("infeasible: %s", se.Constraint)
		}
		logger.Error(err)
		os.Exit(1)
	}

	printPlan(stdout, plan)
}
