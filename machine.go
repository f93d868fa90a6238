package main

import (
	"io"

	"github.com/jcorbin/widebf/internal/flushio"
	"github.com/jcorbin/widebf/internal/mem"
)

// TapeSize is the number of bytes on every machine's tape.
const TapeSize = 30000

// Machine implements a tape machine: it owns a circular byte tape and a cursor
// into it, both of which persist across Interpret calls.
type Machine struct {
	logging

	in      io.ByteReader
	out     flushio.WriteFlusher
	closers []io.Closer

	tape   *mem.Ring
	cursor uint

	// loopLimit bounds the depth of the loop-return stack, when non-zero.
	loopLimit int
}

// run holds all state particular to one Interpret call.
type run struct {
	*Machine

	prog []byte
	pc   int // next instruction
	at   int // current instruction

	// The active width applies to the current instruction. Any width
	// modifier leaves pending set, so that the width reverts to a single
	// byte after the following instruction.
	width   uint
	pending bool

	// The loop-return stack holds the offset of every [ whose body is
	// running.
	loops []int

	// While skipping the body of a loop whose condition failed, skipDepth
	// counts nested loop openers.
	skipping  bool
	skipDepth int

	// A comment runs to the end of its line, and takes priority over
	// everything else, including skipping.
	comment bool
}

//// Instructions

const (
	opNop      instruction = iota // any byte that is not an instruction
	opBackward                    // >  move cursor backward by width
	opForward                     // <  move cursor forward by width
	opInc                         // +  increment value at cursor
	opDec                         // -  decrement value at cursor
	opPrint                       // .  output width bytes at cursor
	opRead                        // ,  input width bytes into cursor
	opOpen                        // [  skip loop body if value at cursor is zero
	opClose                       // ]  jump back to loop opener
	opWidth2                      // 2  next instruction uses 2 byte values
	opWidth4                      // 4  next instruction uses 4 byte values
	opWidth8                      // 8  next instruction uses 8 byte values
	opComment                     // ;  skip through the next newline
	opNewline                     // \n ends any comment

	opMax
)

type instruction uint8

func (op instruction) String() string {
	if op < opMax {
		return instructionNames[op]
	}
	return "invalid"
}

func decode(c byte) instruction { return decodeTable[c] }

var (
	decodeTable      [256]instruction
	instructionTable [opMax]func(r *run)
	instructionNames [opMax]string
)

func init() {
	for c, op := range map[byte]instruction{
		'>':  opBackward,
		'<':  opForward,
		'+':  opInc,
		'-':  opDec,
		'.':  opPrint,
		',':  opRead,
		'[':  opOpen,
		']':  opClose,
		'2':  opWidth2,
		'4':  opWidth4,
		'8':  opWidth8,
		';':  opComment,
		'\n': opNewline,
	} {
		decodeTable[c] = op
	}

	instructionTable = [...]func(r *run){
		(*run).nop,
		(*run).backward,
		(*run).forward,
		(*run).inc,
		(*run).dec,
		(*run).print,
		(*run).read,
		(*run).open,
		(*run).close,
		(*run).width2,
		(*run).width4,
		(*run).width8,
		(*run).startComment,
		(*run).nop,
	}

	instructionNames = [...]string{
		"nop",
		"backward",
		"forward",
		"inc",
		"dec",
		"print",
		"read",
		"open",
		"close",
		"width2",
		"width4",
		"width8",
		"comment",
		"newline",
	}
}

func (r *run) nop() {}

func (r *run) backward() { r.cursor = r.tape.Backward(r.cursor, r.width) }
func (r *run) forward()  { r.cursor = r.tape.Forward(r.cursor, r.width) }

func (r *run) inc() { r.stor(r.width, r.load(r.width)+1) }
func (r *run) dec() { r.stor(r.width, r.load(r.width)-1) }

func (r *run) print() {
	defer func(cursor uint) { r.cursor = cursor }(r.cursor)
	for i := uint(0); i < r.width; i++ {
		r.writeByte(r.tape.Load(r.cursor))
		r.cursor = r.tape.Forward(r.cursor, 1)
	}
}

// read restores the cursor even when input fails part way through, leaving
// any bytes already read on the tape.
func (r *run) read() {
	defer func(cursor uint) { r.cursor = cursor }(r.cursor)
	for i := uint(0); i < r.width; i++ {
		r.tape.Stor(r.cursor, r.readByte())
		r.cursor = r.tape.Forward(r.cursor, 1)
	}
}

func (r *run) open() {
	if r.load(r.width) == 0 {
		r.skipping, r.skipDepth = true, 0
		return
	}
	r.pushLoop(r.at)
}

// close jumps back to the matching opener itself, rather than past it, so
// that its condition gets tested again.
func (r *run) close() {
	at, ok := r.popLoop()
	if !ok {
		r.halt(syntaxError(r.at))
	}
	r.pc = at
}

func (r *run) width2() { r.setWidth(2) }
func (r *run) width4() { r.setWidth(4) }
func (r *run) width8() { r.setWidth(8) }

func (r *run) setWidth(width uint) {
	r.width = width
	r.pending = true
}

func (r *run) startComment() { r.comment = true }

func (r *run) skip(op instruction) {
	switch op {
	case opOpen:
		r.skipDepth++
	case opClose:
		if r.skipDepth == 0 {
			r.skipping = false
		} else {
			r.skipDepth--
		}
	case opComment:
		r.comment = true
	}
}

//// Execution

func (m *Machine) interpret(prog []byte) {
	r := run{Machine: m, prog: prog, width: 1}
	if m.logfn != nil {
		defer m.withLogPrefix("\t")()
	}
	for r.pc < len(r.prog) {
		r.step()
	}
	if err := m.out.Flush(); err != nil {
		m.halt(ioError{"flush", err})
	}
}

func (r *run) step() {
	r.at = r.pc
	r.pc++
	op := decode(r.prog[r.at])

	armed := r.pending
	r.pending = false

	switch {
	case r.comment:
		if op == opNewline {
			r.comment = false
		}
	case r.skipping:
		r.skip(op)
	default:
		if r.logfn != nil && op != opNop {
			r.trace(op)
		}
		instructionTable[op](r)
	}

	// exactly one instruction follows any width modifier
	if armed {
		r.width, r.pending = 1, false
	}
}
