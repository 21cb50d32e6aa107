// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import "bytes"

// Buffer assembles probe commands. Multi byte values go out little endian
// unless noted otherwise.
type Buffer struct {
	bytes.Buffer
}

func NewBuffer(initSize int) *Buffer {
	b := &Buffer{}
	b.Grow(initSize)
	return b
}

func (buf *Buffer) WriteUint32LE(value uint32) {
	buf.WriteByte(byte(value))
	buf.WriteByte(byte(value >> 8))
	buf.WriteByte(byte(value >> 16))
	buf.WriteByte(byte(value >> 24))
}

func (buf *Buffer) WriteUint16LE(value uint16) {
	buf.WriteByte(byte(value))
	buf.WriteByte(byte(value >> 8))
}

// padded returns the buffer contents zero extended to n bytes.
func (buf *Buffer) padded(n int) []byte {
	out := make([]byte, n)
	copy(out, buf.Bytes())
	return out
}

func uint16LE(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func uint16BE(b []byte) uint16 { return uint16(b[1]) | uint16(b[0])<<8 }

func uint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
