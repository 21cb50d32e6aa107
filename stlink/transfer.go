// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"fmt"
	"time"
)

type direction uint8

const (
	dirIn direction = iota
	dirOut
)

// transfer is one probe command with its optional data phase. For dirIn
// data receives the response, for dirOut it holds the payload.
type transfer struct {
	dir  direction
	cmd  *Buffer
	data []byte
}

func newTransfer(dir direction, size int) *transfer {
	return &transfer{dir: dir, cmd: NewBuffer(cmdSizeV2), data: make([]byte, size)}
}

// frame returns the bytes sent on the command pipe. V1 probes wrap the
// command in a mass storage command block.
func (h *StLink) frame(t *transfer) []byte {
	if h.version.stlink != 1 {
		return t.cmd.padded(cmdSizeV2)
	}

	out := make([]byte, cmdBufferSize)
	copy(out, "USBC")
	putUint32LE(out[8:], uint32(len(t.data)))

	if t.dir == dirIn {
		out[12] = usbEndpointIn
	} else {
		out[12] = usbEndpointOut
	}
	out[14] = byte(t.cmd.Len())
	copy(out[cbwHeaderSize:], t.cmd.Bytes())
	return out
}

func (h *StLink) write(b []byte) error {
	if h.pipe == nil {
		return ErrClosed
	}
	n, err := h.pipe.Write(b)
	if err != nil {
		return fmt.Errorf("usb write: %w", err)
	}
	if n != len(b) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrShortTransfer, n, len(b))
	}
	log().Tracef("wrote %d bytes to endpoint", n)
	return nil
}

func (h *StLink) read(b []byte) error {
	if h.pipe == nil {
		return ErrClosed
	}
	n, err := h.pipe.Read(b)
	if err != nil {
		return fmt.Errorf("usb read: %w", err)
	}
	if n != len(b) {
		return fmt.Errorf("%w: read %d of %d bytes", ErrShortTransfer, n, len(b))
	}
	log().Tracef("read %d bytes from endpoint", n)
	return nil
}

func (h *StLink) transferNoErrCheck(t *transfer) error {
	if err := h.write(h.frame(t)); err != nil {
		return err
	}

	if len(t.data) > 0 {
		var err error
		if t.dir == dirOut {
			err = h.write(t.data)
		} else {
			err = h.read(t.data)
		}
		if err != nil {
			return err
		}
	}

	if h.version.stlink == 1 {
		return h.v1Status()
	}
	return nil
}

// transferErrCheck runs t and converts the leading status byte of the
// response.
func (h *StLink) transferErrCheck(t *transfer) error {
	if err := h.transferNoErrCheck(t); err != nil {
		return err
	}
	// no status byte before api v2
	if h.version.api == jtagAPIV1 || t.dir != dirIn || len(t.data) == 0 {
		return nil
	}
	return statusError(t.data[0])
}

// cmdAllowRetry runs t again while the probe answers WAIT.
func (h *StLink) cmdAllowRetry(t *transfer) error {
	return retry(func() error { return h.transferErrCheck(t) })
}

func retry(op func() error) error {
	for n := 0; ; n++ {
		err := op()
		if !IsWait(err) || n >= maxWaitRetries {
			return err
		}
		log().Debugf("probe busy, retry %d", n+1)
		time.Sleep(time.Millisecond << n)
	}
}

func (h *StLink) v1Status() error {
	csw := make([]byte, cswSize)
	if err := h.read(csw); err != nil {
		return fmt.Errorf("ST-Link V1 status read: %w", err)
	}
	if uint32LE(csw) != cswSignature {
		return newUsbError(ErrorFail, "ST-Link V1 status signature mismatch")
	}

	// 0 success, 1 command failure, 2 phase error
	switch csw[12] {
	case 0:
		return nil
	case 1:
		if err := h.v1Sense(); err != nil {
			return err
		}
	}
	return newUsbError(ErrorFail, "got CSW status error %d", csw[12])
}

func (h *StLink) v1Sense() error {
	t := newTransfer(dirIn, senseDataLength)
	t.cmd.Write([]byte{cmdRequestSense, 0, 0, 0, senseDataLength})

	if err := h.transferNoErrCheck(t); err != nil {
		return err
	}
	log().Debugf("sense data % x", t.data)
	return nil
}

// rwStatus fetches the outcome of the last memory access.
func (h *StLink) rwStatus() error {
	if h.version.api == jtagAPIV1 {
		return nil
	}

	if h.version.has(flagHasGetLastRwStatus2) {
		t := newTransfer(dirIn, 12)
		t.cmd.Write([]byte{cmdDebug, debugApiV2LastRWStat2})
		return h.transferErrCheck(t)
	}

	t := newTransfer(dirIn, 2)
	t.cmd.Write([]byte{cmdDebug, debugApiV2LastRWStatus})
	return h.transferErrCheck(t)
}
