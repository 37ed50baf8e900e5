// Command tinyscript runs tinyscript source: a script file given as
// an argument, or an interactive line-at-a-time REPL over stdin when
// none is given, mirroring original_source/main.c's runscript/REPL
// split.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/totalspectrum/tinyscript/internal/fileinput"
	"github.com/totalspectrum/tinyscript/internal/flushio"
	"github.com/totalspectrum/tinyscript/internal/logio"
	"github.com/totalspectrum/tinyscript/internal/panicerr"

	"github.com/totalspectrum/tinyscript"
	"github.com/totalspectrum/tinyscript/tslib"
)

func main() {
	var (
		arenaSize uint
		timeout   time.Duration
		trace     bool
		dump      bool
	)
	flag.UintVar(&arenaSize, "arena-size", 4096, "interpreter arena byte budget")
	flag.DurationVar(&timeout, "timeout", 0, "after this long, start no further script or REPL-line run (a run in progress is not interrupted)")
	flag.BoolVar(&trace, "trace", false, "enable verbose trace logging")
	flag.BoolVar(&dump, "dump", false, "print a symbol table dump after execution")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	out := flushio.NewWriteFlusher(os.Stdout)
	defer out.Flush()

	in := tinyscript.New(
		tinyscript.WithArenaSize(int(arenaSize)),
		tinyscript.WithLogf(log.Leveledf("TRACE")),
		tinyscript.WithVerbose(trace),
		tinyscript.WithOutputWriter(func(s string) {
			io.WriteString(out, s)
			out.Flush()
		}),
	)

	if err := tslib.New().Register(in); err != nil {
		log.Errorf("registering list library: %v", err)
		return
	}
	if err := registerDemoBuiltins(in); err != nil {
		log.Errorf("registering demo builtins: %v", err)
		return
	}

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer dumpSymbols(in, lw)
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	args := flag.Args()
	var err error
	if len(args) > 0 {
		err = panicerr.Recover("script", func() error {
			return runScript(ctx, in, args[0], &log)
		})
	} else {
		err = panicerr.Recover("repl", func() error {
			return runREPL(ctx, in, &log)
		})
	}
	log.ErrorIf(err)
}

// runScript reads a single script file to completion and runs it once
// as a top-level, non-string-retaining program (TinyScript_Run(s, 0,
// 1) in the original), matching runscript in original_source/main.c.
func runScript(ctx context.Context, in *tinyscript.Interp, name string, log *logio.Logger) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	input := &fileinput.Input{Queue: []io.Reader{namedFile{f, name}}}
	source, err := readAll(input)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	st := in.Run(source, false, true)
	if st != tinyscript.StatusOK {
		log.Errorf("%v: %v (near %v)", name, st, input.Last.Location)
	}
	return nil
}

// runREPL reads stdin line by line, running each line as its own
// top-level, string-retaining program (TinyScript_Run(buf, 1, 1) in
// the original) so that a var or func introduced on one line survives
// into the next, matching REPL in original_source/main.c.
func runREPL(ctx context.Context, in *tinyscript.Interp, log *logio.Logger) error {
	input := &fileinput.Input{Queue: []io.Reader{namedFile{os.Stdin, "<stdin>"}}}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, "> ")
		line, err := readLine(input)
		if err == io.EOF && line == "" {
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}
		if strings.TrimSpace(line) == "" {
			if err == io.EOF {
				return nil
			}
			continue
		}
		if st := in.Run(line, true, true); st != tinyscript.StatusOK {
			fmt.Fprintf(os.Stdout, "error %v\n", st)
		}
		if err == io.EOF {
			return nil
		}
	}
}

func readAll(input *fileinput.Input) (string, error) {
	var sb strings.Builder
	for {
		r, _, err := input.ReadRune()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteRune(r)
	}
}

func readLine(input *fileinput.Input) (string, error) {
	var sb strings.Builder
	for {
		r, _, err := input.ReadRune()
		if err != nil {
			return sb.String(), err
		}
		sb.WriteRune(r)
		if r == '\n' {
			return sb.String(), nil
		}
	}
}

func dumpSymbols(in *tinyscript.Interp, w io.Writer) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	for _, sym := range in.Arena().Symbols() {
		fmt.Fprintf(bw, "%v\t%v\n", sym.Kind, sym.Name)
	}
}

type namedFile struct {
	*os.File
	name string
}

func (nf namedFile) Name() string { return nf.name }
