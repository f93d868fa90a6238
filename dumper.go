package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/jcorbin/widebf/internal/bytefmt"
)

const dumpRowWidth = 16

// machineDumper writes the cursor and every tape row that is either non-zero
// or under the cursor, eliding runs of zero rows.
type machineDumper struct {
	m   *Machine
	out io.Writer

	addrWidth int
}

func (dump machineDumper) dump() {
	fmt.Fprintf(dump.out, "# Machine Dump\n")
	fmt.Fprintf(dump.out, "  cursor: %v\n", dump.m.cursor)
	dump.dumpTape()
}

func (dump *machineDumper) dumpTape() {
	tape := dump.m.tape
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(int(tape.Size()))) + 1
	}

	fmt.Fprintf(dump.out, "# Tape\n")
	var (
		buf    bytes.Buffer
		row    [dumpRowWidth]byte
		elided bool
	)
	for addr := uint(0); addr < tape.Size(); addr += dumpRowWidth {
		n := tape.Size() - addr
		if n > dumpRowWidth {
			n = dumpRowWidth
		}
		tape.LoadInto(addr, row[:n])
		if !dump.wanted(addr, row[:n]) {
			if !elided {
				buf.WriteString("  ...\n")
				elided = true
			}
			continue
		}
		elided = false
		dump.formatRow(&buf, addr, row[:n])
		buf.WriteTo(dump.out)
	}
	buf.WriteTo(dump.out)
}

func (dump *machineDumper) wanted(addr uint, row []byte) bool {
	if cursor := dump.m.cursor; addr <= cursor && cursor < addr+uint(len(row)) {
		return true
	}
	for _, b := range row {
		if b != 0 {
			return true
		}
	}
	return false
}

func (dump *machineDumper) formatRow(buf *bytes.Buffer, addr uint, row []byte) {
	fmt.Fprintf(buf, "  @% *v ", dump.addrWidth, addr)
	for i, b := range row {
		if addr+uint(i) == dump.m.cursor {
			buf.WriteByte('>')
		} else {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%02x", b)
	}
	buf.WriteString("  ")
	for _, b := range row {
		if caret := bytefmt.CaretForm(b); b != 0 && caret != "" {
			buf.WriteString(caret)
		} else if 0x20 <= b && b < 0x7f {
			buf.WriteByte(b)
		} else {
			buf.WriteByte('.')
		}
	}
	buf.WriteByte('\n')
}
