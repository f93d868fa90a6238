package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jcorbin/widebf/internal/fileinput"
	"github.com/jcorbin/widebf/internal/logio"
)

func main() {
	var (
		trace     bool
		dump      bool
		loopLimit int
		expr      string
	)
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "dump the machine to stderr when done")
	flag.IntVar(&loopLimit, "loop-limit", 0, "limit loop nesting depth")
	flag.StringVar(&expr, "e", "", "program text to run before any program files")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options] [program.bf ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var log logio.Logger
	log.SetOutput(os.Stderr)

	var sources []fileinput.Source
	if expr != "" {
		sources = append(sources, fileinput.Source{Name: "<-e>", Text: []byte(expr)})
	}
	for _, name := range flag.Args() {
		src, err := fileinput.Open(name)
		if err != nil {
			log.ErrorIf(err)
			os.Exit(log.ExitCode())
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var opts = []MachineOption{
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	if loopLimit != 0 {
		opts = append(opts, WithLoopLimit(loopLimit))
	}
	m := New(opts...)

	log.ErrorIf(runSources(m, sources...))
	log.ErrorIf(m.Close())
	if dump {
		machineDumper{m: m, out: os.Stderr}.dump()
	}
	os.Exit(log.ExitCode())
}

// runSources interprets each source in turn on the same machine, stopping at
// the first error.
func runSources(m *Machine, sources ...fileinput.Source) error {
	for _, src := range sources {
		if err := m.Interpret(src.Text); err != nil {
			return sourceError{src, err}
		}
	}
	return nil
}

type sourceError struct {
	src fileinput.Source
	err error
}

func (se sourceError) Unwrap() error { return se.err }

func (se sourceError) Error() string {
	var at syntaxError
	if errors.As(se.err, &at) {
		return fmt.Sprintf("%v: %v\n\t%s", se.src.Locate(int(at)), se.err, se.src.Line(int(at)))
	}
	return fmt.Sprintf("%v: %v", se.src.Name, se.err)
}
