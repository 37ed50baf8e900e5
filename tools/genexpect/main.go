// Command genexpect regenerates the golden output transcripts under
// testdata/golden: for every *.ts script there it runs the script and
// (re)writes the sibling *.out file with what it printed. There is no
// source-generation step here to pipe through a formatter, so the
// errgroup instead bounds the concurrent script runs themselves and
// the context supplies the overall regeneration deadline.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"github.com/totalspectrum/tinyscript"
	"github.com/totalspectrum/tinyscript/tslib"
)

func main() {
	var (
		dir     string
		timeout time.Duration
	)
	flag.StringVar(&dir, "dir", "testdata/golden", "directory of *.ts golden scripts")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "overall regeneration deadline")
	flag.Parse()

	if err := run(dir, timeout); err != nil {
		os.Exit(1)
	}
}

func run(dir string, timeout time.Duration) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	matches, err := filepath.Glob(filepath.Join(dir, "*.ts"))
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, name := range matches {
		name := name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return regenerate(name)
		})
	}
	return eg.Wait()
}

// regenerate runs one script and overwrites its sibling .out file with
// the printed transcript, matching testdata/golden's convention of one
// .ts source next to one .out expectation.
func regenerate(scriptPath string) error {
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return err
	}

	var out []byte
	in := tinyscript.New(tinyscript.WithOutChar(func(b byte) { out = append(out, b) }))
	if err := tslib.New().Register(in); err != nil {
		return err
	}

	st := in.Run(string(source), false, true)
	out = append(out, []byte(st.String()+"\n")...)

	outPath := scriptPath[:len(scriptPath)-len(filepath.Ext(scriptPath))] + ".out"
	return os.WriteFile(outPath, out, 0644)
}
