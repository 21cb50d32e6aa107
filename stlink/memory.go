// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

func (h *StLink) readMem32(addr uint32, buf []byte) error {
	if len(buf)%4 != 0 || addr%4 != 0 {
		return newUsbError(ErrorUnalignedAccess, "unaligned 32 bit read of %d bytes at 0x%08x", len(buf), addr)
	}

	t := newTransfer(dirIn, len(buf))
	t.cmd.Write([]byte{cmdDebug, debugReadMem32Bit})
	t.cmd.WriteUint32LE(addr)
	t.cmd.WriteUint16LE(uint16(len(buf)))

	if err := h.transferNoErrCheck(t); err != nil {
		return err
	}
	copy(buf, t.data)
	return h.rwStatus()
}

func (h *StLink) writeMem32(addr uint32, data []byte) error {
	if len(data)%4 != 0 || addr%4 != 0 {
		return newUsbError(ErrorUnalignedAccess, "unaligned 32 bit write of %d bytes at 0x%08x", len(data), addr)
	}

	t := newTransfer(dirOut, 0)
	t.data = data
	t.cmd.Write([]byte{cmdDebug, debugWriteMem32Bit})
	t.cmd.WriteUint32LE(addr)
	t.cmd.WriteUint16LE(uint16(len(data)))

	if err := h.transferNoErrCheck(t); err != nil {
		return err
	}
	return h.rwStatus()
}

func (h *StLink) readMem8(addr uint32, buf []byte) error {
	// a single byte read returns two
	n := len(buf)
	if n == 1 {
		n++
	}

	t := newTransfer(dirIn, n)
	t.cmd.Write([]byte{cmdDebug, debugReadMem8Bit})
	t.cmd.WriteUint32LE(addr)
	t.cmd.WriteUint16LE(uint16(len(buf)))

	if err := h.transferNoErrCheck(t); err != nil {
		return err
	}
	copy(buf, t.data)
	return h.rwStatus()
}

func (h *StLink) writeMem8(addr uint32, data []byte) error {
	t := newTransfer(dirOut, 0)
	t.data = data
	t.cmd.Write([]byte{cmdDebug, debugWriteMem8Bit})
	t.cmd.WriteUint32LE(addr)
	t.cmd.WriteUint16LE(uint16(len(data)))

	if err := h.transferNoErrCheck(t); err != nil {
		return err
	}
	return h.rwStatus()
}

func (h *StLink) max8() uint32 {
	if h.version.has(flagHasRw8Bytes512) {
		return v3MaxReadWrite8
	}
	return maxReadWrite8
}

// chunks splits [addr, addr+n) so that no piece exceeds limit bytes or
// crosses a boundary aligned to limit, the TAR autoincrement range.
func chunks(addr uint32, n int, limit uint32, fn func(addr uint32, off, size int) error) error {
	for off := 0; off < n; {
		size := limit - addr%limit
		if rest := uint32(n - off); size > rest {
			size = rest
		}
		if err := fn(addr, off, int(size)); err != nil {
			return err
		}
		addr += size
		off += int(size)
	}
	return nil
}

// ReadMem32 fills buf with words read from addr. Both must be word
// aligned.
func (h *StLink) ReadMem32(addr uint32, buf []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return chunks(addr, len(buf), h.maxPacket, func(a uint32, off, size int) error {
		return retry(func() error { return h.readMem32(a, buf[off:off+size]) })
	})
}

// WriteMem32 writes data to addr in words. Both must be word aligned.
func (h *StLink) WriteMem32(addr uint32, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return chunks(addr, len(data), h.maxPacket, func(a uint32, off, size int) error {
		return retry(func() error { return h.writeMem32(a, data[off:off+size]) })
	})
}

func (h *StLink) ReadMem8(addr uint32, buf []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return chunks(addr, len(buf), h.max8(), func(a uint32, off, size int) error {
		return retry(func() error { return h.readMem8(a, buf[off:off+size]) })
	})
}

func (h *StLink) WriteMem8(addr uint32, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return chunks(addr, len(data), h.max8(), func(a uint32, off, size int) error {
		return retry(func() error { return h.writeMem8(a, data[off:off+size]) })
	})
}

// ReadUint32 reads the word at addr.
func (h *StLink) ReadUint32(addr uint32) (uint32, error) {
	buf := make([]byte, 4)
	if err := h.ReadMem32(addr, buf); err != nil {
		return 0, err
	}
	return uint32LE(buf), nil
}

// WriteUint32 writes value to the word at addr.
func (h *StLink) WriteUint32(addr, value uint32) error {
	buf := make([]byte, 4)
	putUint32LE(buf, value)
	return h.WriteMem32(addr, buf)
}
