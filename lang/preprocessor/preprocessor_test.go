package preprocessor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/macro"
	"github.com/ructeam/ruc/lang/token"
)

func TestExpandObjectLikeMacro(t *testing.T) {
	store := macro.New()
	idx, _ := store.Add("PI", "3")
	got := Expand(store, idx, nil)
	require.Equal(t, "3", got)
}

func TestExpandFunctionLikeMacroNoParenthesization(t *testing.T) {
	// spec.md scenario 5: #define SQ(x) x*x then SQ(1+2) inlines 1+2*1+2
	// (documented textual substitution semantics, no parenthesization).
	store := macro.New()
	idx, _ := store.AddWithParams("SQ", "x*x", []string{"x"})
	got := Expand(store, idx, []string{"1+2"})
	require.Equal(t, "1+2*1+2", got)
}

func TestExpandLeavesNonParamIdentifiersAlone(t *testing.T) {
	store := macro.New()
	idx, _ := store.AddWithParams("ADD", "x+y+z", []string{"x", "y"})
	got := Expand(store, idx, []string{"1", "2"})
	require.Equal(t, "1+2+z", got)
}

func TestDefineReportsCollision(t *testing.T) {
	store := macro.New()
	var sink diag.ListSink
	Define(store, &sink, token.Position{}, "N", "1", nil)
	Define(store, &sink, token.Position{}, "N", "2", nil)
	require.Error(t, sink.Err(), "expected a bad-macro-definition diagnostic on redefinition")
}
