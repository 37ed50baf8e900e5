package tinyscript

// Option configures an Interp at construction: each concrete option
// type implements apply, and Options flattens a list of them into one.
type Option interface{ apply(in *Interp) }

// Options combines several Options into one, flattening nested
// Options values so callers can build up option lists incrementally.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Interp) {}

type options []Option

func (opts options) apply(in *Interp) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(in)
		}
	}
}

type arenaSizeOption int

// WithArenaSize sets the interpreter's total arena byte budget,
// overriding the default (spec.md §4.1 leaves this host-chosen).
func WithArenaSize(size int) Option { return arenaSizeOption(size) }

func (o arenaSizeOption) apply(in *Interp) {
	in.arena = NewArena(int(o))
}

type outCharOption func(byte)

// WithOutChar installs the byte-sink a script's print statements write
// through, the Go-facing counterpart of spec.md §5's host hook.
func WithOutChar(fn func(byte)) Option { return outCharOption(fn) }

func (o outCharOption) apply(in *Interp) { in.outChar = o }

type inCharOption func() (byte, bool)

// WithInChar installs the host's byte-input hook (spec.md §5); ok is
// false at end of input. The interpreter stores it but never calls it,
// and no exported method exposes it.
func WithInChar(fn func() (byte, bool)) Option { return inCharOption(fn) }

func (o inCharOption) apply(in *Interp) { in.inChar = o }

type logfOption func(mess string, args ...interface{})

// WithLogf installs a printf-style diagnostic sink, grounded on the
// teacher's withLogfn (options.go); nil (the default) disables
// logging entirely.
func WithLogf(fn func(mess string, args ...interface{})) Option { return logfOption(fn) }

func (o logfOption) apply(in *Interp) { in.logfn = o }

type verboseOption bool

// WithVerbose enables per-statement trace logging through whatever
// WithLogf installed; if no WithLogf was given, nothing is logged.
func WithVerbose(v bool) Option { return verboseOption(v) }

func (o verboseOption) apply(in *Interp) { in.verbose = bool(o) }

type outputWriterOption struct{ write func(string) }

// WithOutputWriter is a convenience over WithOutChar for hosts that
// already have a string/byte-slice sink (e.g. bufio.Writer.WriteString),
// avoiding a byte-at-a-time callback at the call site.
func WithOutputWriter(write func(string)) Option {
	return outputWriterOption{write}
}

func (o outputWriterOption) apply(in *Interp) {
	in.outChar = func(b byte) { o.write(string([]byte{b})) }
}
