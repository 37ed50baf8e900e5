package tinyscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStmt_AssignToUndefinedNameIsUnknownSym(t *testing.T) {
	_, st := runCapture(t, `foo = 5`)
	assert.Equal(t, StatusUnknownSym, st)
}

func TestStmt_ElseWithoutIfIsSyntaxError(t *testing.T) {
	_, st := runCapture(t, `else { print 1 }`)
	assert.Equal(t, StatusSyntax, st)
}

func TestStmt_PrintMixesStringsAndExpressionsOnOneLine(t *testing.T) {
	out, st := runCapture(t, `var x=7; print "x is ", x`)
	require.Equal(t, StatusOK, st)
	assert.Equal(t, "x is 7\n", out)
}

func TestStmt_WhileFalseConditionNeverRunsBody(t *testing.T) {
	out, st := runCapture(t, `while (0) { print 1 }; print 2`)
	require.Equal(t, StatusOK, st)
	assert.Equal(t, "2\n", out)
}

func TestStmt_ProcedureArityMismatch(t *testing.T) {
	_, st := runCapture(t, `func add(a,b) { return a+b }; print add(1)`)
	assert.Equal(t, StatusBadArgs, st)
}

func TestStmt_NestedProcedureCallsRestoreFResult(t *testing.T) {
	// A call to g from inside f must not clobber f's own pending
	// fResult bookkeeping (expr.go's callProc saves/restores it).
	out, st := runCapture(t, `func g(x) { return x+1 }; func f(x) { var y=g(x); return y*2 }; print f(3)`)
	require.Equal(t, StatusOK, st)
	assert.Equal(t, "8\n", out)
}

func TestStmt_RecursiveProcedureCall(t *testing.T) {
	out, st := runCapture(t, `func fact(n) { if (n<=1) { return 1 } else { return n*fact(n-1) } }; print fact(5)`)
	require.Equal(t, StatusOK, st)
	assert.Equal(t, "120\n", out)
}
