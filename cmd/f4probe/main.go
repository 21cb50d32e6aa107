// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Command f4probe drives an STM32F4 from the host through an ST-Link. It
// identifies the chip, optionally brings up its clock tree and blinks a
// pin, all over SWD while the core keeps running.
//
//	f4probe -hse 8MHz -sysclk 168MHz -blink PD12 -count 20
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/bbnote/gostm32f4"
	"github.com/bbnote/gostm32f4/chip"
	"github.com/bbnote/gostm32f4/device/stm32f4"
	"github.com/bbnote/gostm32f4/gpio"
	"github.com/bbnote/gostm32f4/rcc"
	"github.com/bbnote/gostm32f4/stlink"
)

const blinkPeriod = 500 * time.Millisecond

var (
	logger      *logrus.Logger
	exitProgram chan bool
)

func initLogger(verbose bool) {
	formatter := &prefixed.TextFormatter{
		TimestampFormat: "15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	}

	logger = logrus.New()
	logger.SetFormatter(formatter)
	logger.SetOutput(colorable.NewColorableStdout())
	if verbose {
		logger.SetLevel(gostm32f4.MaxLogLevel)
	}
	gostm32f4.SetLogger(logger)
}

func setUpSignalHandler() {
	signals := make(chan os.Signal, 1)
	exitProgram = make(chan bool, 1)

	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		exitProgram <- true
	}()
}

// identify reads DBGMCU_IDCODE, which is at the same address on every
// family.
func identify(target *stlink.Target) (*chip.Params, error) {
	dev, rev := stm32f4.NewDBGMCU(target, stm32f4.DBGMCU_BASE).DeviceID()
	if err := target.Err(); err != nil {
		return nil, err
	}

	c := chip.ByDeviceID(dev)
	if c == nil {
		return nil, fmt.Errorf("unknown device id 0x%03x", dev)
	}
	logger.Infof("found %s (device id 0x%03x, revision 0x%04x)", c, dev, rev)
	return c, nil
}

func blink(pin *gpio.ErasedPin, count int) error {
	if err := pin.Out(pgpio.Low); err != nil {
		return err
	}
	for i := 0; i < 2*count; i++ {
		select {
		case <-exitProgram:
			return pin.Out(pgpio.Low)
		case <-time.After(blinkPeriod / 2):
		}
		if err := pin.Toggle(); err != nil {
			return err
		}
	}
	return nil
}

type options struct {
	serial string
	speed  uint
	sysclk physic.Frequency
	hse    physic.Frequency
	blink  string
	count  int
}

func run(o options) error {
	config := stlink.NewConfig(stlink.AllVIDs, stlink.AllPIDs, o.serial, uint32(o.speed), false)

	link, err := stlink.Open(config)
	if err != nil {
		return fmt.Errorf("error while scanning for st-links on your computer: %w", err)
	}
	defer stlink.CloseUSB()
	defer link.Close()

	if code, err := link.IDCode(); err == nil {
		logger.Infof("got id code: %08x", code)
	}
	if v, err := link.TargetVoltage(); err == nil {
		logger.Infof("target voltage: %.2f V", v)
	}

	target := stlink.NewTarget(link)
	c, err := identify(target)
	if err != nil {
		return err
	}

	dp := stm32f4.StealFor(target, c)
	r := rcc.NewFor(dp, c)

	if o.sysclk != 0 {
		cfg := rcc.NewConfig().Sysclk(o.sysclk)
		if o.hse != 0 {
			cfg = cfg.HSE(o.hse)
		}
		clocks, err := r.Freeze(cfg)
		if err == nil {
			err = target.Err()
		}
		if err != nil {
			return fmt.Errorf("freeze clocks: %w", err)
		}
		logger.Infof("clocks: %s", clocks)
	}

	if o.blink == "" {
		return nil
	}

	port, n, err := gpio.ParsePin(o.blink)
	if err != nil {
		return err
	}
	regs := dp.Port(uint8(port))
	if regs == nil {
		return fmt.Errorf("%s has no %v", c, port)
	}

	pin := gpio.SplitErased(regs, r)[n]
	if pin == nil {
		return fmt.Errorf("%s is not bonded out on %s", o.blink, gpio.Family)
	}
	switch pin.Name() {
	case "PA13", "PA14":
		return errors.New("refusing to reconfigure an SWD pin")
	}

	logger.Infof("blinking %s %d times", pin, o.count)
	if err := blink(pin, o.count); err != nil {
		return err
	}
	return target.Err()
}

func main() {
	var o options

	flag.StringVar(&o.serial, "serial", "", "serial number of the ST-Link to use")
	flag.UintVar(&o.speed, "speed", stlink.DefaultSpeedKHz, "SWD speed in kHz")
	flag.Var(&o.sysclk, "sysclk", "bring up the clock tree at this system clock")
	flag.Var(&o.hse, "hse", "HSE crystal frequency, HSI if unset")
	flag.StringVar(&o.blink, "blink", "", "pin to blink, e.g. PD12")
	flag.IntVar(&o.count, "count", 10, "number of blinks")
	flagVerbose := flag.Bool("v", false, "verbose output")
	flag.Parse()

	initLogger(*flagVerbose)
	setUpSignalHandler()

	if err := run(o); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
