// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import "fmt"

// openAP initializes access port apsel once. Firmware before J28 needs no
// initialization.
func (h *StLink) openAP(apsel int) error {
	if !h.version.has(flagHasApInit) {
		return nil
	}
	if apsel < 0 || apsel > maxAPSel {
		return fmt.Errorf("access port %d out of range", apsel)
	}
	if h.openedAPs.Get(apsel) {
		return nil
	}

	t := newTransfer(dirIn, 2)
	t.cmd.Write([]byte{cmdDebug, debugApiV2InitAP, byte(apsel)})

	if err := h.transferErrCheck(t); err != nil {
		return fmt.Errorf("could not init access port %d: %w", apsel, err)
	}

	log().Debugf("AP %d enabled", apsel)
	h.openedAPs.Set(apsel, true)
	return nil
}
