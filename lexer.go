package tinyscript

import "strconv"

const operatorChars = "+-/*=<>&|^"

func isSpace(c byte) bool  { return c == ' ' || c == '\t' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentCont(c byte) bool {
	return isAlpha(c) || c == '.' || c == ':' || c == '_'
}
func isOperatorChar(c byte) bool {
	for i := 0; i < len(operatorChars); i++ {
		if operatorChars[i] == c {
			return true
		}
	}
	return false
}

// getChar consumes and returns the next source byte, or ok=false at
// end of input. It is the only place ip advances.
func (in *Interp) getChar() (byte, bool) {
	if in.ip >= len(in.buf) {
		return 0, false
	}
	c := in.buf[in.ip]
	in.ip++
	return c, true
}

// ungetChar implements spec.md §4.3's one-character pushback.
func (in *Interp) ungetChar() {
	if in.ip > 0 {
		in.ip--
	}
}

func (in *Interp) peekChar() (byte, bool) {
	c, ok := in.getChar()
	if ok {
		in.ungetChar()
	}
	return c, ok
}

// NextToken advances to and classifies the next token, resolving
// identifiers against the symbol table (spec.md §4.3).
func (in *Interp) NextToken() Status { return in.advance(false) }

// NextRawToken advances without resolving identifiers, used where a
// fresh name is being introduced (var, func, procedure parameters).
func (in *Interp) NextRawToken() Status { return in.advance(true) }

// advance is the tokenizer core (spec.md §4.3). raw suppresses
// identifier resolution.
func (in *Interp) advance(raw bool) Status {
	in.lastTokenAt = in.ip

	var c byte
	var ok bool
	for {
		c, ok = in.getChar()
		if !ok {
			in.cur = Token{Kind: TokEOF}
			return StatusOK
		}
		if isSpace(c) {
			continue
		}
		break
	}

	switch {
	case c == '#':
		for {
			c, ok = in.getChar()
			if !ok {
				in.cur = Token{Kind: TokEOF}
				return StatusOK
			}
			if c == '\n' {
				break
			}
		}
		in.cur = Token{Kind: TokChar, Text: "\n"}
		return StatusOK

	case isDigit(c):
		start := in.ip - 1
		hex := false
		if c == '0' {
			if pc, pok := in.peekChar(); pok && (pc == 'x' || pc == 'X') {
				in.getChar() // consume x/X
				hex = true
				start = in.ip
				n := 0
				for {
					d, dok := in.getChar()
					if !dok {
						break
					}
					if !isHexDigit(d) {
						in.ungetChar()
						break
					}
					n++
				}
				if n == 0 {
					in.cur = Token{Kind: TokChar, Text: StringView(in.buf[start:in.ip])}
					return StatusSyntax
				}
				in.cur = Token{Kind: TokNumber, Text: StringView(in.buf[start:in.ip]), Hex: true}
				return StatusOK
			}
		}
		for {
			d, dok := in.getChar()
			if !dok {
				break
			}
			if !isDigit(d) {
				in.ungetChar()
				break
			}
		}
		in.cur = Token{Kind: TokNumber, Text: StringView(in.buf[start:in.ip]), Hex: hex}
		return StatusOK

	case isAlpha(c):
		start := in.ip - 1
		for {
			d, dok := in.getChar()
			if !dok {
				break
			}
			if !isIdentCont(d) {
				in.ungetChar()
				break
			}
		}
		text := StringView(in.buf[start:in.ip])
		return in.classifyIdent(text, raw)

	case isOperatorChar(c):
		start := in.ip - 1
		for {
			d, dok := in.getChar()
			if !dok {
				break
			}
			if !isOperatorChar(d) {
				in.ungetChar()
				break
			}
		}
		text := StringView(in.buf[start:in.ip])
		if sym, found := in.Lookup(text); found && sym.Kind == KindOperator {
			in.cur = Token{Kind: TokOperator, Text: text, Sym: sym}
			return StatusOK
		}
		in.cur = Token{Kind: TokChar, Text: text}
		return StatusSyntax

	case c == '{':
		start := in.ip
		depth := 1
		for depth > 0 {
			d, dok := in.getChar()
			if !dok {
				in.cur = Token{Kind: TokEOF}
				return StatusSyntax
			}
			switch d {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		in.cur = Token{Kind: TokString, Text: StringView(in.buf[start : in.ip-1])}
		return StatusOK

	case c == '"':
		start := in.ip
		for {
			d, dok := in.getChar()
			if !dok {
				in.cur = Token{Kind: TokEOF}
				return StatusSyntax
			}
			if d == '\n' {
				return StatusSyntax
			}
			if d == '"' {
				break
			}
		}
		in.cur = Token{Kind: TokString, Text: StringView(in.buf[start : in.ip-1])}
		return StatusOK

	default:
		in.cur = Token{Kind: TokChar, Text: StringView(in.buf[in.ip-1 : in.ip])}
		return StatusOK
	}
}

// classifyIdent resolves an identifier lexeme against the symbol
// table, unless raw is set (spec.md §4.3).
func (in *Interp) classifyIdent(text StringView, raw bool) Status {
	if raw {
		in.cur = Token{Kind: TokSymbol, Text: text}
		return StatusOK
	}
	sym, found := in.Lookup(text)
	if !found {
		in.cur = Token{Kind: TokSymbol, Text: text}
		return StatusOK
	}
	switch sym.Kind {
	case KindInt:
		in.cur = Token{Kind: TokVar, Text: text, Sym: sym}
	case KindOperator:
		in.cur = Token{Kind: TokOperator, Text: text, Sym: sym}
	case KindBuiltin:
		in.cur = Token{Kind: TokBuiltin, Text: text, Sym: sym}
	case KindUserProc:
		in.cur = Token{Kind: TokUserProc, Text: text, Sym: sym}
	case KindKeyword:
		in.cur = Token{Kind: TokKeyword, Text: text, Sym: sym}
	default:
		in.cur = Token{Kind: TokSymbol, Text: text}
	}
	return StatusOK
}

// literal converts a classified TokNumber into a Value.
func literal(tok Token) (Value, Status) {
	base := 10
	if tok.Hex {
		base = 16
	}
	n, err := strconv.ParseInt(string(tok.Text), base, 64)
	if err != nil {
		return 0, StatusSyntax
	}
	return Value(n), StatusOK
}
