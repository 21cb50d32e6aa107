// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import "fmt"

func modeString(mode byte) string {
	switch mode {
	case deviceModeDFU:
		return "dfu"
	case deviceModeMass:
		return "mass"
	case deviceModeDebug:
		return "debug"
	case deviceModeSwim:
		return "swim"
	case deviceModeBootloader:
		return "bootloader"
	}
	return "unknown"
}

func (h *StLink) currentMode() (byte, error) {
	t := newTransfer(dirIn, 2)
	t.cmd.WriteByte(cmdGetCurrentMode)

	if err := h.transferNoErrCheck(t); err != nil {
		return 0, err
	}
	return t.data[0], nil
}

func (h *StLink) leaveMode(mode byte) error {
	t := newTransfer(dirIn, 0)

	switch mode {
	case deviceModeDebug:
		t.cmd.Write([]byte{cmdDebug, debugExit})
	case deviceModeDFU:
		t.cmd.Write([]byte{cmdDfu, dfuExit})
	case deviceModeSwim:
		t.cmd.Write([]byte{cmdSwim, swimExit})
	default:
		return nil
	}
	return h.transferNoErrCheck(t)
}

func (h *StLink) enterSWD() error {
	size := 2
	enter := byte(debugApiV2Enter)
	if h.version.api == jtagAPIV1 {
		size, enter = 0, debugApiV1Enter
	}

	t := newTransfer(dirIn, size)
	t.cmd.Write([]byte{cmdDebug, enter, debugEnterSwdNoReset})
	return h.cmdAllowRetry(t)
}

// initMode leaves whatever mode the probe is in and enters SWD at the
// requested speed.
func (h *StLink) initMode(connectUnderReset bool, speedKHz uint32) error {
	mode, err := h.currentMode()
	if err != nil {
		return fmt.Errorf("could not get usb mode: %w", err)
	}
	log().Tracef("device usb mode before switching: %s (0x%02x)", modeString(mode), mode)

	if err := h.leaveMode(mode); err != nil {
		log().Warn("error while leaving mode: ", err)
	}

	if mode, err = h.currentMode(); err != nil {
		return fmt.Errorf("could not get usb mode: %w", err)
	}
	log().Tracef("device usb mode after exit: %s (0x%02x)", modeString(mode), mode)

	// the probe needs target Vdd for reliable debugging
	if mode != deviceModeDFU {
		if voltage, err := h.targetVoltage(); err != nil {
			log().Debug(err)
		} else if voltage < 1.5 {
			log().Warnf("target voltage %.2f V may be too low for reliable debugging", voltage)
		}
	}

	if actual, err := h.setSpeed(speedKHz); err != nil {
		log().Warnf("could not set SWD speed: %v", err)
	} else {
		log().Debugf("SWD speed %d kHz", actual)
	}

	if connectUnderReset {
		// the result is checked once the mode is entered
		h.driveNrst(true)
	}

	if err := h.enterSWD(); err != nil {
		return err
	}

	if connectUnderReset {
		if err := h.driveNrst(true); err != nil {
			return err
		}
	}

	if mode, err = h.currentMode(); err != nil {
		return fmt.Errorf("could not get usb mode: %w", err)
	}
	if mode != deviceModeDebug {
		return newUsbError(ErrorFail, "probe did not enter debug mode (%s)", modeString(mode))
	}
	return nil
}
