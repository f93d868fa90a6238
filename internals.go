package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcorbin/widebf/internal/bytefmt"
)

// halt stops the machine by panicking with a haltError, to be recovered by
// Interpret.
func (m *Machine) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if m.out != nil {
			m.out.Flush()
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		m.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (m *Machine) load(width uint) uint64      { return m.tape.LoadUint(m.cursor, width) }
func (m *Machine) stor(width uint, val uint64) { m.tape.StorUint(m.cursor, width, val) }

func (r *run) pushLoop(at int) {
	if lim := r.loopLimit; lim != 0 && len(r.loops) >= lim {
		r.halt(loopLimitError{at, lim})
	}
	r.loops = append(r.loops, at)
}

func (r *run) popLoop() (at int, ok bool) {
	i := len(r.loops) - 1
	if i < 0 {
		return 0, false
	}
	at, r.loops = r.loops[i], r.loops[:i]
	return at, true
}

func (r *run) trace(op instruction) {
	r.logf(fmt.Sprintf("@%v", r.at), "%v w:%v cursor:%v value:%v loops:%v",
		op, r.width, r.cursor, bytefmt.Format(r.tape.Load(r.cursor)), r.loops)
}

//// Errors

var (
	// ErrSyntax matches errors caused by malformed programs.
	ErrSyntax = errors.New("syntax error")

	// ErrIO matches errors caused by reading input or writing output.
	ErrIO = errors.New("i/o error")

	// ErrResourceExhausted matches errors caused by exceeding a limit.
	ErrResourceExhausted = errors.New("resource exhausted")
)

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

// syntaxError is the program offset of an unmatched loop closer.
type syntaxError int

func (at syntaxError) Error() string        { return fmt.Sprintf("%v: unmatched ] @%v", ErrSyntax, int(at)) }
func (at syntaxError) Is(target error) bool { return target == ErrSyntax }

type ioError struct {
	op  string
	err error
}

func (ie ioError) Error() string        { return fmt.Sprintf("%v: %v failed: %v", ErrIO, ie.op, ie.err) }
func (ie ioError) Unwrap() error        { return ie.err }
func (ie ioError) Is(target error) bool { return target == ErrIO }

type loopLimitError struct{ at, limit int }

func (lim loopLimitError) Error() string {
	return fmt.Sprintf("%v: loop depth limit %v exceeded @%v", ErrResourceExhausted, lim.limit, lim.at)
}
func (lim loopLimitError) Is(target error) bool { return target == ErrResourceExhausted }

//// Logging

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(" ", n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
