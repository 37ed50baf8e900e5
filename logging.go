package tinyscript

import "fmt"

// logf is the interpreter's diagnostic sink: a no-op unless a host
// installed one via WithLogf, with args formatted lazily so a disabled
// logger costs nothing per call site.
func (in *Interp) logf(mark, mess string, args ...interface{}) {
	if in.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	in.logfn("%v %v", mark, mess)
}

// trace is like logf but gated on WithVerbose, for the
// per-statement detail a host only wants when debugging a script
// rather than on every run.
func (in *Interp) trace(mark, mess string, args ...interface{}) {
	if !in.verbose {
		return
	}
	in.logf(mark, mess, args...)
}

// nearText renders a short "near here" excerpt around offset, the
// same spirit of positional context as spec.md §7's near-here error
// reporting, used here for --trace's per-statement diagnostics.
func nearText(buf string, offset int) string {
	const window = 16
	start := offset - window
	if start < 0 {
		start = 0
	}
	end := offset + window
	if end > len(buf) {
		end = len(buf)
	}
	return buf[start:end]
}
