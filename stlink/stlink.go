// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package stlink talks to ST-Link debug probes over USB.
//
// A probe is opened in SWD mode and gives word and byte access to the
// target's memory. Target adapts a probe to reg.Accessor so the drivers
// of this module can configure a chip from the host:
//
//	link, err := stlink.Open(stlink.NewConfig(stlink.AllVIDs, stlink.AllPIDs, "", 1800, false))
//	if err != nil {
//		...
//	}
//	defer link.Close()
//
//	target := stlink.NewTarget(link)
//	r := rcc.NewFor(target, params)
//
// The command set follows the one used by openocd's ST-Link driver.
package stlink

import (
	"fmt"
	"sync"

	"github.com/boljen/go-bitmap"
	"github.com/google/gousb"
	"github.com/sirupsen/logrus"

	"github.com/bbnote/gostm32f4"
)

func log() *logrus.Entry { return gostm32f4.Prefixed("stlink") }

const DefaultSpeedKHz = 1800

type Config struct {
	VID      gousb.ID
	PID      gousb.ID
	Serial   string
	SpeedKHz uint32

	// ConnectUnderReset holds NRST low while entering debug mode. It stays
	// asserted until DriveReset(false).
	ConnectUnderReset bool
}

func NewConfig(vid gousb.ID, pid gousb.ID, serial string, speedKHz uint32, connectUnderReset bool) *Config {
	return &Config{
		VID:               vid,
		PID:               pid,
		Serial:            serial,
		SpeedKHz:          speedKHz,
		ConnectUnderReset: connectUnderReset,
	}
}

// StLink is an open probe in SWD mode. Its methods are safe for concurrent
// use.
type StLink struct {
	mu        sync.Mutex
	pipe      endpoints
	serial    string
	version   version
	maxPacket uint32
	openedAPs bitmap.Bitmap
}

func newStLink(pipe endpoints, pid gousb.ID) *StLink {
	h := &StLink{
		pipe:      pipe,
		maxPacket: 1 << 10,
		openedAPs: bitmap.New(maxAPSel + 1),
	}

	// framing depends on the major version before it is read back
	switch pid {
	case pidV1:
		h.version.stlink = 1
	case pidV3UsbLoader, pidV3E, pidV3S, pidV32Vcp:
		h.version.stlink = 3
	default:
		h.version.stlink = 2
	}
	return h
}

// Open finds the probe described by config and brings it into SWD mode.
func Open(config *Config) (*StLink, error) {
	if err := InitializeUSB(); err != nil {
		return nil, err
	}

	vids, pids := supportedVIDs, supportedPIDs
	if config.VID != AllVIDs {
		vids = []gousb.ID{config.VID}
	}
	if config.PID != AllPIDs {
		pids = []gousb.ID{config.PID}
	}

	devices, err := findDevices(vids, pids)
	if err != nil {
		return nil, err
	}
	dev, err := selectDevice(devices, config.Serial)
	if err != nil {
		return nil, err
	}

	pipe, err := openPipe(dev)
	if err != nil {
		dev.Close()
		return nil, err
	}

	h := newStLink(pipe, dev.Desc.Product)
	h.serial, _ = dev.SerialNumber()

	if err := h.initialize(config); err != nil {
		pipe.Close()
		return nil, err
	}
	log().Infof("opened ST-Link %s [%s]", h.version, h.serial)
	return h, nil
}

func (h *StLink) initialize(config *Config) error {
	if err := h.readVersion(); err != nil {
		return err
	}
	if h.version.api == jtagAPIV1 {
		return fmt.Errorf("%w: SWD needs jtag api v2 (firmware %s)", ErrUnsupported, h.version)
	}

	speed := config.SpeedKHz
	if speed == 0 {
		speed = DefaultSpeedKHz
	}
	if err := h.initMode(config.ConnectUnderReset, speed); err != nil {
		return err
	}
	if err := h.openAP(0); err != nil {
		return err
	}

	buf := make([]byte, 4)
	if err := h.readMem32(cpuIDRegister, buf); err == nil {
		// Cortex-M3/M4 autoincrement TAR over 4 KiB
		if part := (uint32LE(buf) >> 4) & 0xf; part == 3 || part == 4 {
			h.maxPacket = 1 << 12
		}
	}
	log().Debugf("using TAR autoincrement: %d", h.maxPacket)
	return nil
}

// Close leaves debug mode and releases the usb device.
func (h *StLink) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pipe == nil {
		return ErrClosed
	}
	if err := h.leaveMode(deviceModeDebug); err != nil {
		log().Debugf("leave debug mode: %v", err)
	}
	err := h.pipe.Close()
	h.pipe = nil
	log().Debugf("closed ST-Link [%s]", h.serial)
	return err
}

// Serial returns the usb serial number of the probe.
func (h *StLink) Serial() string { return h.serial }

// Version returns the firmware version, e.g. V2J37S7.
func (h *StLink) Version() string { return h.version.String() }

// TargetVoltage measures the target's supply in volts.
func (h *StLink) TargetVoltage() (float32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.targetVoltage()
}

func (h *StLink) targetVoltage() (float32, error) {
	if !h.version.has(flagHasTargetVolt) {
		return 0, fmt.Errorf("%w: voltage measurement", ErrUnsupported)
	}

	t := newTransfer(dirIn, 8)
	t.cmd.WriteByte(cmdGetTargetVoltage)

	if err := h.transferNoErrCheck(t); err != nil {
		return 0, err
	}

	adc0, adc1 := uint32LE(t.data), uint32LE(t.data[4:])
	if adc0 == 0 {
		return 0, nil
	}
	return 2 * float32(adc1) * (1.2 / float32(adc0)), nil
}

// IDCode reads the SWD debug port IDCODE.
func (h *StLink) IDCode() (uint32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := newTransfer(dirIn, 12)
	t.cmd.Write([]byte{cmdDebug, debugApiV2ReadIDCodes})

	if err := h.transferErrCheck(t); err != nil {
		return 0, err
	}
	return uint32LE(t.data[4:]), nil
}

// DriveReset sets the level of the target's NRST line.
func (h *StLink) DriveReset(asserted bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.driveNrst(asserted)
}

func (h *StLink) driveNrst(asserted bool) error {
	level := byte(nrstHigh)
	if asserted {
		level = nrstLow
	}

	t := newTransfer(dirIn, 2)
	t.cmd.Write([]byte{cmdDebug, debugApiV2DriveNrst, level})
	return h.cmdAllowRetry(t)
}
