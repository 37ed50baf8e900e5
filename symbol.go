package tinyscript

// SymbolKind tags the payload a Symbol carries, replacing the
// C original's "type tag in the low byte, precedence/arity packed
// into the high bits of the same int" trick (spec.md §3's SymbolType)
// with an explicit Go tagged variant, per spec.md §9's Design Notes.
type SymbolKind int

const (
	// KindInt marks an ordinary variable; its value is in Symbol.Int.
	KindInt SymbolKind = iota
	// KindOperator marks a binary operator; Symbol.Level carries its
	// precedence (1 = tightest) and Symbol.BinOp its implementation.
	KindOperator
	// KindBuiltin marks a native function; Symbol.Arity is in 0..4 and
	// Symbol.Native its implementation.
	KindBuiltin
	// KindUserProc marks a script-defined procedure; Symbol.Proc holds
	// its body and formal parameters.
	KindUserProc
	// KindKeyword marks a reserved word dispatched to a statement
	// handler (Symbol.Handler).
	KindKeyword
)

func (k SymbolKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindOperator:
		return "operator"
	case KindBuiltin:
		return "builtin"
	case KindUserProc:
		return "userproc"
	case KindKeyword:
		return "keyword"
	default:
		return "symbol"
	}
}

// MaxBuiltinParams bounds the number of arguments a builtin or
// procedure call may pass, per spec.md §4.4.
const MaxBuiltinParams = 4

// MaxExprLevel is the lowest (loosest-binding) operator precedence
// level, per spec.md §4.4.
const MaxExprLevel = 5

// BinOpFunc is a two-argument integer operator implementation.
type BinOpFunc func(a, b Value) Value

// NativeFunc is a native (builtin) function implementation; unused
// argument slots beyond a builtin's declared arity receive 0.
type NativeFunc func(a, b, c, d Value) Value

// stmtHandler dispatches a keyword token to its statement-evaluator
// routine (spec.md §4.5).
type stmtHandler func(in *Interp) Status

// UserProc is a script-defined procedure: its body source (re-parsed
// on every call) and its formal parameter names, per spec.md §3.
type UserProc struct {
	Body     StringView
	ArgNames []StringView
}

// Symbol is one symbol-table entry (spec.md §3). Exactly one of the
// payload field groups below is meaningful, selected by Kind.
type Symbol struct {
	Name StringView
	Kind SymbolKind

	Int Value // KindInt

	Level Level     // KindOperator
	BinOp BinOpFunc  // KindOperator

	Arity  int        // KindBuiltin, KindUserProc
	Native NativeFunc  // KindBuiltin
	Proc   *UserProc   // KindUserProc

	Handler stmtHandler // KindKeyword
}

// Level is an operator precedence, 1 (tightest) through MaxExprLevel.
type Level int

// Lookup walks the symbol stack from newest to oldest and returns the
// first entry whose name matches by content, giving inner scopes
// shadowing priority over outer ones (spec.md §4.2).
func (in *Interp) Lookup(name StringView) (*Symbol, bool) {
	syms := in.arena.Symbols()
	for i := len(syms) - 1; i >= 0; i-- {
		if syms[i].Name == name {
			return in.arena.SymbolAt(i), true
		}
	}
	return nil, false
}

// Define appends a new symbol to the current scope. Redefining a name
// never de-duplicates: the new entry simply shadows the old one until
// the enclosing scope is popped (spec.md §4.2).
func (in *Interp) Define(sym Symbol) (*Symbol, Status) {
	if st := in.arena.PushSymbol(sym); st != StatusOK {
		return nil, st
	}
	syms := in.arena.Symbols()
	return &syms[len(syms)-1], StatusOK
}

// DefineValue registers an integer constant or variable under name,
// the Go-facing counterpart of spec.md §6's Define(name, INT, value).
func (in *Interp) DefineValue(name string, value Value) (*Symbol, Status) {
	return in.Define(Symbol{Name: StringView(name), Kind: KindInt, Int: value})
}

// DefineOperator registers a binary operator at the given precedence
// level (1..MaxExprLevel, lower binds tighter).
func (in *Interp) DefineOperator(name string, level Level, fn BinOpFunc) (*Symbol, Status) {
	return in.Define(Symbol{Name: StringView(name), Kind: KindOperator, Level: level, BinOp: fn})
}

// DefineBuiltin registers a native function of the given arity
// (0..MaxBuiltinParams); unused argument slots receive 0.
func (in *Interp) DefineBuiltin(name string, arity int, fn NativeFunc) (*Symbol, Status) {
	if arity < 0 || arity > MaxBuiltinParams {
		return nil, StatusTooManyArgs
	}
	return in.Define(Symbol{Name: StringView(name), Kind: KindBuiltin, Arity: arity, Native: fn})
}

func (in *Interp) defineKeyword(name string, handler stmtHandler) {
	if _, st := in.Define(Symbol{Name: StringView(name), Kind: KindKeyword, Handler: handler}); st != StatusOK {
		panic(arenaInvariantError("out of memory registering builtin keyword " + name))
	}
}
