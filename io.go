package main

import (
	"bufio"
	"io"
)

func (m *Machine) writeByte(b byte) {
	if err := m.out.WriteByte(b); err != nil {
		m.halt(ioError{"write", err})
	}
}

// readByte flushes any pending output first, so that prompts are seen before
// the machine blocks on input.
func (m *Machine) readByte() byte {
	if err := m.out.Flush(); err != nil {
		m.halt(ioError{"flush", err})
	}
	b, err := m.in.ReadByte()
	if err != nil {
		m.halt(ioError{"read", err})
	}
	return b
}

func newByteReader(r io.Reader) io.ByteReader {
	if br, is := r.(io.ByteReader); is {
		return br
	}
	return bufio.NewReader(r)
}
