package main

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/jcorbin/widebf/internal/logio"
	"github.com/jcorbin/widebf/internal/panicerr"
	"github.com/stretchr/testify/assert"
)

type machineTestCases []machineTestCase

func (mts machineTestCases) run(t *testing.T) {
	{
		var exclusive []machineTestCase
		for _, mt := range mts {
			if mt.exclusive {
				exclusive = append(exclusive, mt)
			}
		}
		if len(exclusive) > 0 {
			mts = exclusive
		}
	}
	for _, mt := range mts {
		t.Run(mt.name, mt.run)
	}
}

func machineTest(name string) (mt machineTestCase) {
	mt.name = name
	return mt
}

type optFunc func(m *Machine)

func (f optFunc) apply(m *Machine) { f(m) }

type machineTestCase struct {
	name     string
	opts     []interface{}
	programs []string
	setup    []func(r *run)
	ops      []func(r *run)
	expect   []func(t *testing.T, m *Machine)
	expectR  []func(t *testing.T, r *run)
	wantErr  error

	exclusive   bool
	nextInputID int
}

func (mt machineTestCase) apply(wraps ...func(machineTestCase) machineTestCase) machineTestCase {
	for _, wrap := range wraps {
		mt = wrap(mt)
	}
	return mt
}

func (mt machineTestCase) exclusiveTest() machineTestCase {
	mt.exclusive = true
	return mt
}

func (mt machineTestCase) withOptions(opts ...MachineOption) machineTestCase {
	for _, opt := range opts {
		mt.opts = append(mt.opts, opt)
	}
	return mt
}

// withProgram adds a program to run; each one is a separate Interpret call
// on the same machine.
func (mt machineTestCase) withProgram(program string) machineTestCase {
	mt.programs = append(mt.programs, program)
	return mt
}

func (mt machineTestCase) withInput(input string) machineTestCase {
	mt.opts = append(mt.opts, func(mt *machineTestCase, t *testing.T) MachineOption {
		name := t.Name() + "/input"
		if id := mt.nextInputID; id > 0 {
			name += "_" + strconv.Itoa(id+1)
		}
		mt.nextInputID++
		return WithInput(namedReader{name, strings.NewReader(input)})
	})
	return mt
}

func (mt machineTestCase) withInputBytes(input ...byte) machineTestCase {
	return mt.withInput(string(input))
}

func (mt machineTestCase) withCursor(cursor uint) machineTestCase {
	mt.opts = append(mt.opts, optFunc(func(m *Machine) {
		m.cursor = cursor
	}))
	return mt
}

func (mt machineTestCase) withTapeAt(addr uint, values ...byte) machineTestCase {
	mt.opts = append(mt.opts, optFunc(func(m *Machine) {
		m.tape.StorFrom(addr, values...)
	}))
	return mt
}

func (mt machineTestCase) withLoopLimit(limit int) machineTestCase {
	mt.opts = append(mt.opts, WithLoopLimit(limit))
	return mt
}

func (mt machineTestCase) withWidth(width uint) machineTestCase {
	mt.setup = append(mt.setup, func(r *run) {
		r.width = width
	})
	return mt
}

func (mt machineTestCase) withPending() machineTestCase {
	mt.setup = append(mt.setup, func(r *run) {
		r.pending = true
	})
	return mt
}

func (mt machineTestCase) withPC(pc int) machineTestCase {
	mt.setup = append(mt.setup, func(r *run) {
		r.pc = pc
		r.at = pc
	})
	return mt
}

func (mt machineTestCase) withLoops(at ...int) machineTestCase {
	mt.setup = append(mt.setup, func(r *run) {
		r.loops = append(r.loops, at...)
	})
	return mt
}

func (mt machineTestCase) do(ops ...func(r *run)) machineTestCase {
	mt.ops = append(mt.ops, ops...)
	return mt
}

func (mt machineTestCase) expectError(err error) machineTestCase {
	mt.wantErr = err
	return mt
}

func (mt machineTestCase) expectCursor(cursor uint) machineTestCase {
	mt.expect = append(mt.expect, func(t *testing.T, m *Machine) {
		assert.Equal(t, cursor, m.cursor, "expected cursor")
	})
	return mt
}

func (mt machineTestCase) expectTapeAt(addr uint, values ...byte) machineTestCase {
	mt.expect = append(mt.expect, func(t *testing.T, m *Machine) {
		buf := make([]byte, len(values))
		m.tape.LoadInto(addr, buf)
		assert.Equal(t, values, buf, "expected tape values @%v", addr)
	})
	return mt
}

func (mt machineTestCase) expectTapeUint(addr uint, width uint, value uint64) machineTestCase {
	mt.expect = append(mt.expect, func(t *testing.T, m *Machine) {
		assert.Equal(t, value, m.tape.LoadUint(addr, width), "expected %v byte value @%v", width, addr)
	})
	return mt
}

func (mt machineTestCase) expectOutput(output string) machineTestCase {
	var out strings.Builder
	mt.opts = append(mt.opts, WithOutput(&out))
	mt.expect = append(mt.expect, func(t *testing.T, m *Machine) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return mt
}

func (mt machineTestCase) expectOutputBytes(output ...byte) machineTestCase {
	if output == nil {
		output = []byte{}
	}
	var out bytes.Buffer
	mt.opts = append(mt.opts, WithOutput(&out))
	mt.expect = append(mt.expect, func(t *testing.T, m *Machine) {
		assert.Equal(t, output, out.Bytes(), "expected output bytes")
	})
	return mt
}

func (mt machineTestCase) expectDump(dump string) machineTestCase {
	mt.expect = append(mt.expect, func(t *testing.T, m *Machine) {
		var out strings.Builder
		machineDumper{m: m, out: &out}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return mt
}

func (mt machineTestCase) expectPC(pc int) machineTestCase {
	mt.expectR = append(mt.expectR, func(t *testing.T, r *run) {
		assert.Equal(t, pc, r.pc, "expected program counter")
	})
	return mt
}

func (mt machineTestCase) expectWidth(width uint) machineTestCase {
	mt.expectR = append(mt.expectR, func(t *testing.T, r *run) {
		assert.Equal(t, width, r.width, "expected active width")
	})
	return mt
}

func (mt machineTestCase) expectLoops(at ...int) machineTestCase {
	mt.expectR = append(mt.expectR, func(t *testing.T, r *run) {
		if at == nil {
			at = []int{}
		}
		loops := r.loops
		if loops == nil {
			loops = []int{}
		}
		assert.Equal(t, at, loops, "expected loop-return stack")
	})
	return mt
}

func (mt machineTestCase) expectSkipping(depth int) machineTestCase {
	mt.expectR = append(mt.expectR, func(t *testing.T, r *run) {
		assert.True(t, r.skipping, "expected to be skipping a loop body")
		assert.Equal(t, depth, r.skipDepth, "expected skip depth")
	})
	return mt
}

func (mt machineTestCase) expectComment(comment bool) machineTestCase {
	mt.expectR = append(mt.expectR, func(t *testing.T, r *run) {
		assert.Equal(t, comment, r.comment, "expected comment state")
	})
	return mt
}

func (mt machineTestCase) withTestOutput() machineTestCase {
	mt.opts = append(mt.opts, func(mt *machineTestCase, t *testing.T) MachineOption {
		return WithTee(&logio.Writer{Prefix: "out: ", Logf: t.Logf})
	})
	return mt
}

func (mt machineTestCase) run(t *testing.T) {
	var trace bytes.Buffer
	m := mt.buildMachine(t, WithLogf(func(mess string, args ...interface{}) {
		fmt.Fprintf(&trace, mess, args...)
		trace.WriteByte('\n')
	}))

	defer func() {
		if t.Failed() {
			lw := logio.Writer{Prefix: "trace: ", Logf: t.Logf}
			trace.WriteTo(&lw)
			lw.Close()
			mt.dumpToTest(t, m)
		}
	}()

	r, err := mt.runMachine(m)
	if mt.wantErr != nil {
		assert.True(t, errors.Is(err, mt.wantErr), "expected error: %v\ngot: %+v", mt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected machine error")
	}

	if !t.Failed() {
		for _, expect := range mt.expect {
			expect(t, m)
		}
		if r != nil {
			for _, expect := range mt.expectR {
				expect(t, r)
			}
		} else if len(mt.expectR) > 0 {
			t.Errorf("run state expectations require ops")
		}
	}
}

// runMachine either interprets every program in turn, or drives the given
// ops against a run of the first program.
func (mt machineTestCase) runMachine(m *Machine) (r *run, rerr error) {
	defer func() {
		if err := m.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("machine Close failed: %w", err)
		}
	}()

	if len(mt.ops) == 0 {
		for _, prog := range mt.programs {
			if err := m.Interpret([]byte(prog)); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	r = &run{Machine: m, width: 1}
	if len(mt.programs) > 0 {
		r.prog = []byte(mt.programs[0])
	}
	for _, setup := range mt.setup {
		setup(r)
	}

	names := make([]string, len(mt.ops))
	for i, op := range mt.ops {
		names[i] = runtime.FuncForPC(reflect.ValueOf(op).Pointer()).Name()
	}
	err := panicerr.Recover("machineTestCase.ops", func() error {
		for i, op := range mt.ops {
			m.logf(">", "do[%v] %v", i, names[i])
			op(r)
		}
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return r, err
}

func (mt machineTestCase) buildMachine(t *testing.T, extra ...MachineOption) *Machine {
	var opt MachineOption = MachineOptions(extra...)
	for _, o := range mt.opts {
		switch impl := o.(type) {
		case func(mt *machineTestCase, t *testing.T) MachineOption:
			opt = MachineOptions(opt, impl(&mt, t))
		case MachineOption:
			opt = MachineOptions(opt, impl)
		default:
			t.Logf("unsupported machineTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(opt)
}

func (mt machineTestCase) dumpToTest(t *testing.T, m *Machine) {
	lw := logio.Writer{Prefix: "dump: ", Logf: t.Logf}
	defer lw.Close()
	machineDumper{m: m, out: &lw}.dump()
}

//// utilities

type namedReader struct {
	name string
	*strings.Reader
}

func (nr namedReader) Name() string { return nr.name }

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
