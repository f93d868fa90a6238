package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	// goimports formats everything written to out
	eg.Go(func() error {
		goimports := exec.CommandContext(ctx, "goimports")
		pipe, err := goimports.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		goimports.Stdout = out
		goimports.Stderr = os.Stderr

		out = pipe

		close(ready)
		if err := goimports.Run(); err != nil {
			return fmt.Errorf("goimports run failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return generate(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

var builderMethod = regexp.MustCompile(`func \(mt machineTestCase\) (expect|with)(.+?)\((.+?)\) machineTestCase`)

func generate(ctx context.Context) error {
	var buf bytes.Buffer
	buf.Grow(1024)
	buf.WriteString("package main\n\n")

	buf.WriteString("// @generated from ")
	buf.WriteString(in.Name())
	buf.WriteString("\n\n")

	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_machine_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := builderMethod.FindSubmatch(sc.Bytes()); len(match) > 0 {
			writeWrapper(&buf, match[1], match[2], match[3])
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// writeWrapper writes a function that returns a closure over a builder
// method, e.g. expectMachineOutput(output) for mt.expectOutput(output).
func writeWrapper(buf *bytes.Buffer, base, what, params []byte) {
	fmt.Fprintf(buf, "func %sMachine%s(%s) func(machineTestCase) machineTestCase {\n", base, what, params)
	buf.WriteString("\treturn func(mt machineTestCase) machineTestCase {\n")
	fmt.Fprintf(buf, "\t\treturn mt.%s%s(", base, what)
	for i, param := range bytes.Split(params, []byte(",")) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fields := bytes.Fields(param)
		buf.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			buf.WriteString("...")
		}
	}
	buf.WriteString(")\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}
