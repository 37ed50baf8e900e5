package tinyscript

import "strconv"

// stmt dispatches the current token to its statement evaluator, per
// the table in spec.md §4.5.
func (in *Interp) stmt() Status {
	switch in.cur.Kind {
	case TokKeyword:
		return in.cur.Sym.Handler(in)

	case TokVar:
		sym := in.cur.Sym
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		return in.assign(sym)

	case TokBuiltin, TokUserProc:
		// A bare call used as a statement: evaluate it like any other
		// primary and let runString's depth check discard the result.
		return in.primary()

	case TokSymbol:
		// An identifier that did not resolve to any existing binding,
		// used as a statement: this is always an assignment target, so
		// report it precisely as an unresolved symbol rather than a
		// generic syntax error (spec.md §7's UNKNOWN_SYM).
		return StatusUnknownSym

	case TokString:
		// A bare `{ ... }` block used as its own statement: an
		// anonymous nested scope (spec.md §8 invariant 5's
		// `{ var x=2; print x }` example), not tied to if/while/func.
		body := in.cur.Text
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		return in.runNestedBody(body)

	default:
		return StatusSyntax
	}
}

// assign requires '=', evaluates the right-hand side, and stores it
// into sym's value slot (spec.md §4.5's VAR and var rules).
func (in *Interp) assign(sym *Symbol) Status {
	if in.cur.Kind != TokOperator || in.cur.Sym.Name != "=" {
		return StatusSyntax
	}
	if st := in.NextToken(); st != StatusOK {
		return st
	}
	if st := in.expr(MaxExprLevel); st != StatusOK {
		return st
	}
	sym.Int = in.arena.PopValue()
	return StatusOK
}

// parseCondAndBody parses `expr STRING`, the shared shape of an if and
// a while statement's head (spec.md §4.5 treats while as "if without
// an else, re-run from its saved parse pointer"). in.cur must already
// hold the condition's first token on entry.
func (in *Interp) parseCondAndBody() (cond Value, body StringView, st Status) {
	if st = in.expr(MaxExprLevel); st != StatusOK {
		return
	}
	cond = in.arena.PopValue()
	if in.cur.Kind != TokString {
		st = StatusSyntax
		return
	}
	body = in.cur.Text
	st = in.NextToken()
	return
}

// runNestedBody runs a captured if/while body in a nested scope,
// inheriting the enclosing Run's saveStrings mode, and converts the
// body's own statusElse exits (an if without an else inside it) to
// StatusOK — a statusReturn, by contrast, is left to propagate.
func (in *Interp) runNestedBody(body StringView) Status {
	st := in.runString(string(body), in.saveStrings, false)
	if st == statusElse {
		st = StatusOK
	}
	return st
}

// stmtIf implements spec.md §4.5's if/else: evaluate the condition,
// capture the true-branch body, optionally an else branch, then run
// whichever branch applies. A false condition with no else yields the
// internal statusElse, consumed by the caller (runString).
func stmtIf(in *Interp) Status {
	if st := in.NextToken(); st != StatusOK {
		return st
	}
	cond, body, st := in.parseCondAndBody()
	if st != StatusOK {
		return st
	}

	var elseBody StringView
	haveElse := false
	if in.cur.Kind == TokKeyword && in.cur.Text == "else" {
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		if in.cur.Kind != TokString {
			return StatusSyntax
		}
		elseBody = in.cur.Text
		haveElse = true
		if st := in.NextToken(); st != StatusOK {
			return st
		}
	}

	if cond != 0 {
		return in.runNestedBody(body)
	}
	if haveElse {
		return in.runNestedBody(elseBody)
	}
	return statusElse
}

// stmtElse only ever runs if an else appears without a preceding if
// having consumed it, which is a syntax error.
func stmtElse(in *Interp) Status { return StatusSyntax }

// stmtWhile re-parses and re-evaluates its condition-and-body from a
// saved parse pointer on every iteration (spec.md §4.5), stopping when
// the condition evaluates to 0. A return executed anywhere inside the
// body (directly, or via a nested if it runs) propagates as
// statusReturn through runNestedBody without being swallowed here.
func stmtWhile(in *Interp) Status {
	if st := in.NextToken(); st != StatusOK {
		return st
	}
	start := in.lastTokenAt
	for {
		in.ip = start
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		cond, body, st := in.parseCondAndBody()
		if st != StatusOK {
			return st
		}
		if cond == 0 {
			return statusElse
		}
		if st := in.runNestedBody(body); st != StatusOK {
			return st
		}
	}
}

// stmtPrint parses a comma-separated list of string literals (emitted
// raw) and/or expressions (emitted as signed decimal), followed by a
// trailing newline (spec.md §4.5).
func stmtPrint(in *Interp) Status {
	if st := in.NextToken(); st != StatusOK {
		return st
	}
	for {
		if in.cur.Kind == TokString {
			in.writeString(string(in.cur.Text))
			if st := in.NextToken(); st != StatusOK {
				return st
			}
		} else {
			if st := in.expr(MaxExprLevel); st != StatusOK {
				return st
			}
			in.writeNumber(in.arena.PopValue())
		}
		if in.cur.Is(',') {
			if st := in.NextToken(); st != StatusOK {
				return st
			}
			continue
		}
		break
	}
	in.writeByte('\n')
	return StatusOK
}

func (in *Interp) writeByte(b byte) { in.outChar(b) }

func (in *Interp) writeString(s string) {
	for i := 0; i < len(s); i++ {
		in.outChar(s[i])
	}
}

func (in *Interp) writeNumber(v Value) {
	in.writeString(strconv.FormatInt(v, 10))
}

// stmtVar introduces a fresh KindInt symbol in the current scope, then
// falls through to assignment: var always requires `= expr`
// (spec.md §4.5).
func stmtVar(in *Interp) Status {
	if st := in.NextRawToken(); st != StatusOK {
		return st
	}
	if in.cur.Kind != TokSymbol {
		return StatusSyntax
	}
	name := in.cur.Text
	if in.saveStrings {
		dup, st := in.arena.Dup(name)
		if st != StatusOK {
			return st
		}
		name = dup
	}
	sym, st := in.Define(Symbol{Name: name, Kind: KindInt, Int: 0})
	if st != StatusOK {
		return st
	}
	if st := in.NextToken(); st != StatusOK {
		return st
	}
	return in.assign(sym)
}

// stmtFunc parses `func NAME ( args... ) { body }` and registers NAME
// as a KindUserProc symbol (spec.md §4.5). Formal parameter names and
// the body text are duplicated into the arena's high end when
// saveStrings is set, so the definition survives after the buffer
// that was parsed (e.g. a REPL line) goes away.
func stmtFunc(in *Interp) Status {
	if st := in.NextRawToken(); st != StatusOK {
		return st
	}
	if in.cur.Kind != TokSymbol {
		return StatusSyntax
	}
	name := in.cur.Text
	if st := in.NextToken(); st != StatusOK {
		return st
	}
	if !in.cur.Is('(') {
		return StatusSyntax
	}
	if st := in.NextRawToken(); st != StatusOK {
		return st
	}

	var argNames []StringView
	if !in.cur.Is(')') {
		for {
			if in.cur.Kind != TokSymbol {
				return StatusSyntax
			}
			if len(argNames) >= MaxBuiltinParams {
				return StatusTooManyArgs
			}
			argNames = append(argNames, in.cur.Text)
			if st := in.NextRawToken(); st != StatusOK {
				return st
			}
			if in.cur.Is(',') {
				if st := in.NextRawToken(); st != StatusOK {
					return st
				}
				continue
			}
			break
		}
	}
	if !in.cur.Is(')') {
		return StatusSyntax
	}
	if st := in.NextToken(); st != StatusOK {
		return st
	}
	if in.cur.Kind != TokString {
		return StatusSyntax
	}
	body := in.cur.Text
	if st := in.NextToken(); st != StatusOK {
		return st
	}

	if in.saveStrings {
		dupBody, st := in.arena.Dup(body)
		if st != StatusOK {
			return st
		}
		body = dupBody
		for i, a := range argNames {
			dupArg, st := in.arena.Dup(a)
			if st != StatusOK {
				return st
			}
			argNames[i] = dupArg
		}
		dupName, st := in.arena.Dup(name)
		if st != StatusOK {
			return st
		}
		name = dupName
	}

	proc, st := in.arena.AllocProc(len(argNames))
	if st != StatusOK {
		return st
	}
	proc.Body = body
	proc.ArgNames = argNames

	_, st = in.Define(Symbol{Name: name, Kind: KindUserProc, Arity: len(argNames), Proc: proc})
	return st
}

// stmtReturn evaluates its expression into the shared result slot and
// signals statusReturn so every enclosing if/while body unwinds up to
// the nearest procedure call (or the outermost Run), per DESIGN.md's
// Open Questions.
func stmtReturn(in *Interp) Status {
	if st := in.NextToken(); st != StatusOK {
		return st
	}
	if st := in.expr(MaxExprLevel); st != StatusOK {
		return st
	}
	in.fResult = in.arena.PopValue()
	return statusReturn
}
