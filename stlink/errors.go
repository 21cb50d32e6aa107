// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"errors"
	"fmt"
)

var (
	ErrNoProbe        = errors.New("could not find any ST-Link connected to computer")
	ErrAmbiguousProbe = errors.New("more than one ST-Link found, a serial number is required")
	ErrProbeNotFound  = errors.New("could not find ST-Link by given parameters")
	ErrUnsupported    = errors.New("operation not supported by probe firmware")
	ErrShortTransfer  = errors.New("short usb transfer")
	ErrClosed         = errors.New("probe closed")
)

type UsbErrorCode int

const (
	ErrorOK              UsbErrorCode = 0
	ErrorWait            UsbErrorCode = -1
	ErrorFail            UsbErrorCode = -2
	ErrorUnalignedAccess UsbErrorCode = -3
	ErrorCommandNotFound UsbErrorCode = -4
)

func (c UsbErrorCode) String() string {
	switch c {
	case ErrorOK:
		return "ok"
	case ErrorWait:
		return "wait"
	case ErrorFail:
		return "fail"
	case ErrorUnalignedAccess:
		return "unaligned access"
	case ErrorCommandNotFound:
		return "command not found"
	}
	return fmt.Sprintf("UsbErrorCode(%d)", int(c))
}

// UsbError is a failure reported by the probe itself, as opposed to a
// failure of the usb transport.
type UsbError struct {
	msg  string
	Code UsbErrorCode
}

func (e *UsbError) Error() string { return e.msg }

func newUsbError(code UsbErrorCode, format string, args ...interface{}) error {
	return &UsbError{msg: fmt.Sprintf(format, args...), Code: code}
}

// IsWait reports whether err is a probe WAIT response worth retrying.
func IsWait(err error) bool {
	var ue *UsbError
	return errors.As(err, &ue) && ue.Code == ErrorWait
}

// statusError converts the status byte leading a debug response.
func statusError(status byte) error {
	switch status {
	case statusOK:
		return nil
	case statusFault:
		return newUsbError(ErrorFail, "SWD fault response (0x%x)", status)
	case statusSwdAPWait:
		return newUsbError(ErrorWait, "wait status SWD_AP_WAIT (0x%x)", status)
	case statusSwdDPWait:
		return newUsbError(ErrorWait, "wait status SWD_DP_WAIT (0x%x)", status)
	case statusJtagGetIDCodeError:
		return newUsbError(ErrorFail, "could not read idcode")
	case statusJtagWriteError:
		return newUsbError(ErrorFail, "write error")
	case statusJtagWriteVerifyErr:
		log().Warn("write verify error, ignoring")
		return nil
	case statusSwdAPFault:
		return newUsbError(ErrorFail, "SWD access port fault")
	case statusSwdAPError:
		return newUsbError(ErrorFail, "SWD access port error")
	case statusSwdAPParityError:
		return newUsbError(ErrorFail, "SWD access port parity error")
	case statusSwdDPFault:
		return newUsbError(ErrorFail, "SWD debug port fault")
	case statusSwdDPError:
		return newUsbError(ErrorFail, "SWD debug port error")
	case statusSwdDPParityError:
		return newUsbError(ErrorFail, "SWD debug port parity error")
	case statusSwdAPWDataError:
		return newUsbError(ErrorFail, "SWD access port write data error")
	case statusSwdAPStickyError:
		return newUsbError(ErrorFail, "SWD access port sticky error")
	case statusSwdAPStickyOrun:
		return newUsbError(ErrorFail, "SWD access port sticky overrun error")
	case statusBadAPError:
		return newUsbError(ErrorFail, "bad access port")
	}
	return newUsbError(ErrorFail, "unknown/unexpected ST-Link status code 0x%x", status)
}
