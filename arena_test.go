package tinyscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_PushSymbolNoMem(t *testing.T) {
	a := NewArena(symbolCost) // room for exactly one symbol, no high end
	require.Equal(t, StatusOK, a.PushSymbol(Symbol{Name: "a", Kind: KindInt}))
	assert.Equal(t, StatusNoMem, a.PushSymbol(Symbol{Name: "b", Kind: KindInt}))
}

func TestArena_PushValueExactBoundary(t *testing.T) {
	a := NewArena(wordSize) // room for exactly one value
	require.Equal(t, StatusOK, a.PushValue(42))
	assert.Equal(t, 0, a.Avail(), "exact boundary should leave zero bytes free")
	assert.Equal(t, StatusNoMem, a.PushValue(43), "one value over budget must fail")
}

func TestArena_MarkRestore(t *testing.T) {
	a := NewArena(4096)
	require.Equal(t, StatusOK, a.PushSymbol(Symbol{Name: "outer", Kind: KindInt}))
	mark := a.Mark()
	require.Equal(t, StatusOK, a.PushSymbol(Symbol{Name: "inner", Kind: KindInt}))
	require.Len(t, a.Symbols(), 2)

	a.Restore(mark)
	require.Len(t, a.Symbols(), 1)
	assert.Equal(t, StringView("outer"), a.Symbols()[0].Name)
}

func TestArena_SymbolPointersSurviveAppend(t *testing.T) {
	// Regression test for a real Go pitfall: a *Symbol taken before
	// further PushSymbol calls must keep pointing at the same entry,
	// not a stale copy left behind by a reallocating append. NewArena
	// preallocates symbol capacity for exactly this reason.
	a := NewArena(8 * symbolCost)
	require.Equal(t, StatusOK, a.PushSymbol(Symbol{Name: "x", Kind: KindInt, Int: 1}))
	p := a.SymbolAt(0)

	for i := 0; i < 5; i++ {
		require.Equal(t, StatusOK, a.PushSymbol(Symbol{Name: "y", Kind: KindInt}))
	}

	p.Int = 99
	assert.Equal(t, Value(99), a.SymbolAt(0).Int)
}

func TestArena_PopValueUnderflowPanics(t *testing.T) {
	a := NewArena(4096)
	assert.Panics(t, func() { a.PopValue() })
}

func TestArena_HighMarkRestore(t *testing.T) {
	a := NewArena(4096)
	before := a.HighMark()
	_, st := a.Dup("hello")
	require.Equal(t, StatusOK, st)
	require.Equal(t, StatusOK, a.PushValue(1))
	assert.Greater(t, a.usedHigh(), before.highUse)

	a.RestoreHigh(before)
	assert.Equal(t, before, a.HighMark())
	assert.Equal(t, 0, a.ValueDepth())
}

func TestArena_DupChargesHighEnd(t *testing.T) {
	a := NewArena(4096)
	before := a.Avail()
	dup, st := a.Dup(StringView("hello"))
	require.Equal(t, StatusOK, st)
	assert.Equal(t, StringView("hello"), dup)
	assert.Equal(t, before-wordSize, a.Avail(), "a 5-byte string is charged one whole word")
}
