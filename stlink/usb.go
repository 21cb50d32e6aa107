// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/gousb"
)

var (
	usbMu  sync.Mutex
	usbCtx *gousb.Context
)

// InitializeUSB opens the libusb context shared by all probes. Open calls
// it on demand.
func InitializeUSB() error {
	usbMu.Lock()
	defer usbMu.Unlock()

	if usbCtx != nil {
		return nil
	}
	usbCtx = gousb.NewContext()
	if usbCtx == nil {
		return errors.New("could not initialize libusb")
	}
	log().Debug("initialized libusb")
	return nil
}

// CloseUSB releases the libusb context. Probes must be closed first.
func CloseUSB() {
	usbMu.Lock()
	defer usbMu.Unlock()

	if usbCtx == nil {
		log().Warn("could not close uninitialized usb context")
		return
	}
	usbCtx.Close()
	usbCtx = nil
}

// endpoints is the bulk pipe pair a probe talks over.
type endpoints interface {
	Write(b []byte) (int, error)
	Read(b []byte) (int, error)
	Close() error
}

type usbPipe struct {
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	rx   *gousb.InEndpoint
	tx   *gousb.OutEndpoint
}

func (p *usbPipe) Write(b []byte) (int, error) { return p.tx.Write(b) }
func (p *usbPipe) Read(b []byte) (int, error)  { return p.rx.Read(b) }

func (p *usbPipe) Close() error {
	p.intf.Close()
	err := p.cfg.Close()
	if cerr := p.dev.Close(); err == nil {
		err = cerr
	}
	return err
}

func idExists(ids []gousb.ID, id gousb.ID) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

func findDevices(vids, pids []gousb.ID) ([]*gousb.Device, error) {
	usbMu.Lock()
	ctx := usbCtx
	usbMu.Unlock()

	devices, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if !idExists(vids, desc.Vendor) || !idExists(pids, desc.Product) {
			return false
		}
		log().Infof("found usb device [%04x:%04x] on bus %03d:%03d",
			uint16(desc.Vendor), uint16(desc.Product), desc.Bus, desc.Address)
		return true
	})
	if err != nil {
		for _, d := range devices {
			d.Close()
		}
		return nil, fmt.Errorf("usb device scan: %w", err)
	}
	log().Debugf("found %d matching devices", len(devices))
	return devices, nil
}

// selectDevice picks the probe matching serial and closes the others.
func selectDevice(devices []*gousb.Device, serial string) (*gousb.Device, error) {
	if len(devices) == 0 {
		return nil, ErrNoProbe
	}
	if serial == "" && len(devices) > 1 {
		for _, d := range devices {
			d.Close()
		}
		return nil, ErrAmbiguousProbe
	}

	var found *gousb.Device
	for _, d := range devices {
		if found == nil {
			if serial == "" {
				found = d
				continue
			}
			sn, err := d.SerialNumber()
			log().Debugf("compare serial number %s with %s", sn, serial)
			if err == nil && sn == serial {
				found = d
				continue
			}
		}
		d.Close()
	}
	if found == nil {
		return nil, ErrProbeNotFound
	}
	return found, nil
}

// openPipe claims interface 0 and the bulk endpoints of dev. V2-1 and V3
// probes moved the command endpoint.
func openPipe(dev *gousb.Device) (*usbPipe, error) {
	p := &usbPipe{dev: dev}

	var err error
	if p.cfg, err = dev.Config(1); err != nil {
		return nil, fmt.Errorf("could not request configuration #1: %w", err)
	}
	if p.intf, err = p.cfg.Interface(0, 0); err != nil {
		p.cfg.Close()
		return nil, fmt.Errorf("could not claim interface 0,0: %w", err)
	}

	tx := txEndpoint
	switch dev.Desc.Product {
	case pidV21, pidV21NoMsd, pidV3UsbLoader, pidV3E, pidV3S, pidV32Vcp:
		tx = txEndpointV21
	}

	if p.rx, err = p.intf.InEndpoint(rxEndpoint); err == nil {
		p.tx, err = p.intf.OutEndpoint(tx)
	}
	if err != nil {
		p.intf.Close()
		p.cfg.Close()
		return nil, fmt.Errorf("could not open endpoints: %w", err)
	}
	return p, nil
}
