package main

import (
	"errors"
	"io"

	"github.com/jcorbin/widebf/internal/mem"
	"github.com/jcorbin/widebf/internal/panicerr"
)

// New creates a machine with a zeroed tape and its cursor at 0. Without
// options, it reads from empty input and discards all output.
func New(opts ...MachineOption) *Machine {
	m := Machine{tape: mem.NewRing(TapeSize)}
	defaultOptions.apply(&m)
	MachineOptions(opts...).apply(&m)
	return &m
}

// Interpret runs program against the machine's tape, input, and output,
// returning any error that halted it; errors match one of ErrSyntax, ErrIO,
// or ErrResourceExhausted under errors.Is. Any tape changes and output made
// before an error remain in effect.
//
// The tape and cursor carry over from any prior call, while loop and width
// state start afresh. Calls must not overlap.
func (m *Machine) Interpret(program []byte) error {
	err := panicerr.Recover("Machine", func() error {
		m.interpret(program)
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// Cursor returns the current tape offset.
func (m *Machine) Cursor() uint { return m.cursor }

// Close flushes any buffered output, and closes any resources attached by
// options, like tee writers.
func (m *Machine) Close() (err error) {
	if m.out != nil {
		err = m.out.Flush()
	}
	for i := len(m.closers) - 1; i >= 0; i-- {
		if cerr := m.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	m.closers = nil
	return err
}

func WithInput(r io.Reader) MachineOption   { return withInput(r) }
func WithOutput(w io.Writer) MachineOption  { return withOutput(w) }
func WithTee(w io.Writer) MachineOption     { return withTee(w) }
func WithLoopLimit(limit int) MachineOption { return withLoopLimit(limit) }

func WithLogf(logfn func(mess string, args ...interface{})) MachineOption { return withLogfn(logfn) }
