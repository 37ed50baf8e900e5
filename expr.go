package tinyscript

// expr evaluates an expression with operators up to and including
// maxLevel (a looser/higher number binds less tightly) and leaves
// exactly one Value on the arena's value stack, per spec.md §4.4's
// precedence-climbing algorithm: parse a primary as the left-hand
// side, then while the lookahead is an operator at or below maxLevel,
// consume it, recursively evaluate a right-hand side restricted to
// strictly tighter operators, and apply the operator.
func (in *Interp) expr(maxLevel Level) Status {
	if st := in.primary(); st != StatusOK {
		return st
	}
	return in.exprCont(maxLevel)
}

func (in *Interp) exprCont(maxLevel Level) Status {
	for in.cur.Kind == TokOperator && in.cur.Sym.Level <= maxLevel {
		op := in.cur.Sym
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		if st := in.primary(); st != StatusOK {
			return st
		}
		// Absorb any operator binding tighter than op into the RHS
		// before applying op, which is what makes this left-associative
		// precedence climbing rather than flat left-to-right folding.
		if st := in.exprCont(op.Level - 1); st != StatusOK {
			return st
		}
		b := in.arena.PopValue()
		a := in.arena.PopValue()
		if st := in.arena.PushValue(op.BinOp(a, b)); st != StatusOK {
			return st
		}
	}
	return StatusOK
}

// primary parses one of: a parenthesized expression, a number, a
// variable reference, a builtin or user-procedure call, or a binop
// used as a unary prefix (spec.md §4.4). It leaves exactly one Value
// on the arena's value stack.
func (in *Interp) primary() Status {
	switch {
	case in.cur.Is('('):
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		if st := in.expr(MaxExprLevel); st != StatusOK {
			return st
		}
		if !in.cur.Is(')') {
			return StatusSyntax
		}
		return in.NextToken()

	case in.cur.Kind == TokNumber:
		v, st := literal(in.cur)
		if st != StatusOK {
			return st
		}
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		return in.arena.PushValue(v)

	case in.cur.Kind == TokVar:
		v := in.cur.Sym.Int
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		return in.arena.PushValue(v)

	case in.cur.Kind == TokBuiltin:
		sym := in.cur.Sym
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		args, st := in.parseArgs()
		if st != StatusOK {
			return st
		}
		if len(args) != sym.Arity {
			return StatusBadArgs
		}
		var a [MaxBuiltinParams]Value
		copy(a[:], args)
		return in.arena.PushValue(sym.Native(a[0], a[1], a[2], a[3]))

	case in.cur.Kind == TokUserProc:
		sym := in.cur.Sym
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		args, st := in.parseArgs()
		if st != StatusOK {
			return st
		}
		return in.callProc(sym, args)

	case in.cur.Kind == TokOperator:
		// A binop in primary position is applied as a unary prefix:
		// op(0, rhs). This covers unary '-' and '+' without a separate
		// grammar rule (spec.md §4.4).
		op := in.cur.Sym
		if st := in.NextToken(); st != StatusOK {
			return st
		}
		if st := in.primary(); st != StatusOK {
			return st
		}
		b := in.arena.PopValue()
		return in.arena.PushValue(op.BinOp(0, b))

	default:
		return StatusSyntax
	}
}

// parseArgs parses a parenthesized, comma-separated argument list,
// evaluating each argument expression (which pushes its result) and
// then collecting those pushed values off the value stack in order.
// in.cur must be '(' on entry; on return it is just past the ')'.
func (in *Interp) parseArgs() ([]Value, Status) {
	if !in.cur.Is('(') {
		return nil, StatusSyntax
	}
	if st := in.NextToken(); st != StatusOK {
		return nil, st
	}
	argc := 0
	if !in.cur.Is(')') {
		for {
			if st := in.expr(MaxExprLevel); st != StatusOK {
				return nil, st
			}
			argc++
			if in.cur.Is(',') {
				if st := in.NextToken(); st != StatusOK {
					return nil, st
				}
				continue
			}
			break
		}
	}
	if !in.cur.Is(')') {
		return nil, StatusSyntax
	}
	if st := in.NextToken(); st != StatusOK {
		return nil, st
	}
	args := make([]Value, argc)
	for i := argc - 1; i >= 0; i-- {
		args[i] = in.arena.PopValue()
	}
	return args, StatusOK
}

// callProc invokes a user-defined procedure (spec.md §4.4): it saves
// the symbol-stack mark and high-end mark, binds each formal parameter
// as a fresh KindInt symbol holding the matching actual argument,
// re-parses the body via a nested Run, reads the shared result slot,
// and restores both marks — discarding the parameter bindings and any
// high-end allocations the call accrued, regardless of outcome.
func (in *Interp) callProc(sym *Symbol, args []Value) Status {
	proc := sym.Proc
	if len(args) != len(proc.ArgNames) {
		return StatusBadArgs
	}

	mark := in.arena.Mark()
	highMark := in.arena.HighMark()
	defer func() {
		in.arena.Restore(mark)
		in.arena.RestoreHigh(highMark)
	}()
	for i, name := range proc.ArgNames {
		if _, st := in.Define(Symbol{Name: name, Kind: KindInt, Int: args[i]}); st != StatusOK {
			return st
		}
	}

	savedResult := in.fResult
	in.fResult = 0
	st := in.runString(string(proc.Body), false, false)
	result := in.fResult
	in.fResult = savedResult
	if st == statusReturn {
		st = StatusOK
	}
	if st != StatusOK {
		return st
	}
	return in.arena.PushValue(result)
}
