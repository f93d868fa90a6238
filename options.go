package main

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/jcorbin/widebf/internal/flushio"
)

// MachineOption configures a Machine when passed to New.
type MachineOption interface{ apply(m *Machine) }

// MachineOptions combines any number of options into one, skipping any nils.
func MachineOptions(opts ...MachineOption) MachineOption {
	var res machineOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case machineOptions:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type machineOptions []MachineOption

func (opts machineOptions) apply(m *Machine) {
	for _, opt := range opts {
		opt.apply(m)
	}
}

var defaultOptions = MachineOptions(
	withInput(bytes.NewReader(nil)),
	withOutput(ioutil.Discard),
)

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(m *Machine) {
	m.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type loopLimitOption int

func withInput(r io.Reader) inputOption       { return inputOption{r} }
func withOutput(w io.Writer) outputOption     { return outputOption{w} }
func withTee(w io.Writer) teeOption           { return teeOption{w} }
func withLoopLimit(limit int) loopLimitOption { return loopLimitOption(limit) }

func (i inputOption) apply(m *Machine) {
	m.in = newByteReader(i.Reader)
}

func (o outputOption) apply(m *Machine) {
	if m.out != nil {
		m.out.Flush()
	}
	m.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(m *Machine) {
	m.out = flushio.WriteFlushers(m.out, flushio.NewWriteFlusher(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		m.closers = append(m.closers, cl)
	}
}

func (lim loopLimitOption) apply(m *Machine) {
	m.loopLimit = int(lim)
}
