package tinyscript

// Interp bundles every piece of mutable parser/evaluator state the
// spec describes as "module-wide" (instruction pointer, current
// token, stack tops, result slot) into one explicit context value, per
// spec.md §9's Design Notes. It is the unit of multi-instance
// embedding: a host wanting several independent interpreters
// instantiates one Interp (and Arena) per instance; nothing here is
// package-level mutable state.
type Interp struct {
	arena *Arena

	outChar func(byte)
	inChar  func() (byte, bool)

	logfn   func(mess string, args ...interface{})
	verbose bool

	buf         string // source of the innermost active Run call
	ip          int    // byte offset into buf; the "instruction pointer"
	saveStrings bool   // whether the innermost Run call dup's identifiers/bodies

	cur Token // current lookahead token

	fResult Value // shared channel 'return' writes into and call reads from

	lastTokenAt int // byte offset of cur's start, for "near here" reporting
}

// New creates an interpreter configured with the standard keywords
// and operator table (spec.md §4.6/§6), applying any options.
func New(opts ...Option) *Interp {
	in := &Interp{
		outChar: func(byte) {},
		inChar:  func() (byte, bool) { return 0, false },
	}
	const defaultArenaSize = 4096
	in.arena = NewArena(defaultArenaSize)

	for _, opt := range opts {
		opt.apply(in)
	}

	in.registerKeywords()
	in.registerOperators()
	return in
}

// Arena exposes the interpreter's backing arena, mainly for tests and
// for hosts that want to observe remaining capacity.
func (in *Interp) Arena() *Arena { return in.arena }

// Result returns the value written by the most recent return executed
// outside any procedure call (or 0 if none has run yet), per spec.md
// §4.6's exit-code contract. A procedure call restores the slot when it
// finishes, so a return inside a procedure does not change Result.
func (in *Interp) Result() Value { return in.fResult }

func (in *Interp) registerKeywords() {
	in.defineKeyword("if", stmtIf)
	in.defineKeyword("else", stmtElse)
	in.defineKeyword("while", stmtWhile)
	in.defineKeyword("print", stmtPrint)
	in.defineKeyword("var", stmtVar)
	in.defineKeyword("func", stmtFunc)
	in.defineKeyword("return", stmtReturn)
}

func (in *Interp) registerOperators() {
	type opdef struct {
		name  string
		level Level
		fn    BinOpFunc
	}
	for _, d := range []opdef{
		{"*", 1, opMul}, {"/", 1, opDiv},
		{"+", 2, opAdd}, {"-", 2, opSub},
		{"&", 3, opAnd}, {"|", 3, opOr}, {"^", 3, opXor},
		{"<<", 3, opShl}, {">>", 3, opShr},
		{"=", 4, opEq}, {"<>", 4, opNe},
		{"<", 4, opLt}, {"<=", 4, opLe},
		{">", 4, opGt}, {">=", 4, opGe},
	} {
		if _, st := in.DefineOperator(d.name, d.level, d.fn); st != StatusOK {
			panic(arenaInvariantError("out of memory registering builtin operator " + d.name))
		}
	}
}

func boolInt(b bool) Value {
	if b {
		return 1
	}
	return 0
}

func opMul(a, b Value) Value { return a * b }

// opDiv returns 0 for division by zero: spec.md §8 leaves this
// host-defined, and returning 0 avoids crashing the embedding host
// with an integer-divide trap (see DESIGN.md's Open Questions).
func opDiv(a, b Value) Value {
	if b == 0 {
		return 0
	}
	return a / b
}
func opAdd(a, b Value) Value { return a + b }
func opSub(a, b Value) Value { return a - b }
func opAnd(a, b Value) Value { return a & b }
func opOr(a, b Value) Value  { return a | b }
func opXor(a, b Value) Value { return a ^ b }

// opShl/opShr treat an out-of-range shift count as yielding 0, the
// same host-defined-behavior stance as opDiv.
func opShl(a, b Value) Value {
	if b < 0 || b >= 64 {
		return 0
	}
	return a << uint(b)
}
func opShr(a, b Value) Value {
	if b < 0 || b >= 64 {
		return 0
	}
	return a >> uint(b)
}
func opEq(a, b Value) Value { return boolInt(a == b) }
func opNe(a, b Value) Value { return boolInt(a != b) }
func opLt(a, b Value) Value { return boolInt(a < b) }
func opLe(a, b Value) Value { return boolInt(a <= b) }
func opGt(a, b Value) Value { return boolInt(a > b) }
func opGe(a, b Value) Value { return boolInt(a >= b) }

// haltStatus carries a Status through a panic raised by halt; Run
// recovers it at the top level and returns that Status rather than
// letting it crash the embedding host. Any other recovered panic (such
// as the arenaInvariantError a value stack underflow raises) is logged
// and reported as StatusSyntax.
type haltStatus struct{ s Status }

func (in *Interp) halt(s Status) { panic(haltStatus{s}) }

// Run tokenizes, parses, and evaluates source against the arena,
// exactly as spec.md §4.6 describes: it sets the instruction pointer,
// saves the symbol-stack top, iterates statement evaluation until end
// of input or error, and restores symTop on exit unless topLevel. If
// saveStrings is set, identifiers and procedure bodies introduced
// during this call are duplicated into the arena's high end so they
// remain valid once source goes out of scope (e.g. a REPL line
// buffer being reused).
func (in *Interp) Run(source string, saveStrings, topLevel bool) (st Status) {
	defer func() {
		if r := recover(); r != nil {
			if hs, ok := r.(haltStatus); ok {
				st = hs.s
				return
			}
			in.logf("halt", "recovered: %v", r)
			st = StatusSyntax
		}
	}()
	st = in.runString(source, saveStrings, topLevel)
	if st == statusReturn {
		// A bare top-level return (not inside any procedure call) has
		// nowhere further to unwind to; its job was just to set
		// fResult, so it settles here as a normal completion.
		st = StatusOK
	}
	return st
}

func (in *Interp) runString(source string, saveStrings, topLevel bool) Status {
	savedBuf, savedIP, savedCur := in.buf, in.ip, in.cur
	savedSaveStrings := in.saveStrings
	mark := in.arena.Mark()
	highMark := in.arena.HighMark()
	defer func() {
		in.buf, in.ip, in.cur = savedBuf, savedIP, savedCur
		in.saveStrings = savedSaveStrings
		if !topLevel {
			in.arena.Restore(mark)
			in.arena.RestoreHigh(highMark)
		}
	}()

	in.buf, in.ip = source, 0
	in.saveStrings = saveStrings

	if st := in.advance(false); st != StatusOK {
		return st
	}
	for in.cur.Kind != TokEOF {
		for in.cur.Is('\n') || in.cur.Is(';') {
			if st := in.advance(false); st != StatusOK {
				return st
			}
		}
		if in.cur.Kind == TokEOF {
			break
		}

		depth := in.arena.ValueDepth()
		in.trace("stmt", "near %q", nearText(in.buf, in.lastTokenAt))
		st := in.stmt()
		if st == statusElse {
			st = StatusOK
		}
		if st == statusReturn {
			// Unwind this frame too: a return nested inside this body
			// (directly, or via an if/while it ran) terminates the
			// whole of this Run call, not just its immediate statement.
			return statusReturn
		}
		if st != StatusOK {
			return st
		}
		if in.arena.ValueDepth() != depth {
			// A builtin/expression-statement may legitimately leave its
			// result on the stack (spec.md §3); drop it so depth stays
			// balanced across statement boundaries.
			in.arena.PopValue()
		}

		if !(in.cur.Is('\n') || in.cur.Is(';') || in.cur.Kind == TokEOF) {
			return StatusSyntax
		}
	}
	return StatusOK
}
