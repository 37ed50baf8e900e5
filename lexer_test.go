package tinyscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, source string) []Token {
	t.Helper()
	in := New()
	in.buf, in.ip = source, 0
	var toks []Token
	for {
		require.Equal(t, StatusOK, in.NextToken())
		toks = append(toks, in.cur)
		if in.cur.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexer_DecimalAndHex(t *testing.T) {
	toks := lexAll(t, "123 0x1F")
	require.Len(t, toks, 3)
	assert.Equal(t, TokNumber, toks[0].Kind)
	assert.False(t, toks[0].Hex)
	assert.Equal(t, StringView("123"), toks[0].Text)

	assert.Equal(t, TokNumber, toks[1].Kind)
	assert.True(t, toks[1].Hex)
	assert.Equal(t, StringView("1F"), toks[1].Text, "0x prefix must be stripped from the lexeme")
}

func TestLexer_CommentRunsToNewline(t *testing.T) {
	in := New()
	in.buf, in.ip = "# a comment\n42", 0
	require.Equal(t, StatusOK, in.NextToken())
	assert.True(t, in.cur.Is('\n'), "a comment must yield a newline token so statement termination still fires")
	require.Equal(t, StatusOK, in.NextToken())
	assert.Equal(t, TokNumber, in.cur.Kind)
	assert.Equal(t, StringView("42"), in.cur.Text)
}

func TestLexer_IdentifierExcludesDigits(t *testing.T) {
	toks := lexAll(t, "abc123")
	// The identifier stops at the first digit (spec.md §4.3): "abc"
	// then "123" lex as two separate tokens, not a syntax error.
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, StringView("abc"), toks[0].Text)
	assert.Equal(t, TokNumber, toks[1].Kind)
	assert.Equal(t, StringView("123"), toks[1].Text)
}

func TestLexer_BraceBodyNesting(t *testing.T) {
	in := New()
	in.buf, in.ip = "{ a { b } c }", 0
	require.Equal(t, StatusOK, in.NextToken())
	assert.Equal(t, TokString, in.cur.Kind)
	assert.Equal(t, StringView(" a { b } c "), in.cur.Text)
}

func TestLexer_QuotedStringRejectsEmbeddedNewline(t *testing.T) {
	in := New()
	in.buf, in.ip = "\"a\nb\"", 0
	assert.Equal(t, StatusSyntax, in.NextToken())
}

func TestLexer_UnterminatedQuoteIsSyntaxErrorAtEOF(t *testing.T) {
	in := New()
	in.buf, in.ip = `"abc`, 0
	st := in.NextToken()
	assert.Equal(t, StatusSyntax, st)
	assert.Equal(t, TokEOF, in.cur.Kind)
}

func TestLexer_OperatorRunsGreedy(t *testing.T) {
	in := New()
	in.buf, in.ip = "<=", 0
	require.Equal(t, StatusOK, in.NextToken())
	require.Equal(t, TokOperator, in.cur.Kind)
	assert.Equal(t, StringView("<="), in.cur.Text)
	assert.Equal(t, Level(4), in.cur.Sym.Level)
}

func TestLexer_RawTokenSkipsResolution(t *testing.T) {
	in := New()
	_, st := in.DefineValue("x", 5)
	require.Equal(t, StatusOK, st)
	in.buf, in.ip = "x", 0
	require.Equal(t, StatusOK, in.NextRawToken())
	assert.Equal(t, TokSymbol, in.cur.Kind, "raw mode must not resolve an already-bound name")
}
