package preprocessor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/macro"
)

func TestRunObjectLikeMacro(t *testing.T) {
	store := macro.New()
	var sink diag.ListSink
	got := Run("#define N 3\nint x = N;\n", store, &sink)
	require.NotContains(t, got, "#define")
	require.Contains(t, got, "int x = 3;")
}

func TestRunFunctionLikeMacroNoParenthesization(t *testing.T) {
	// spec.md scenario 5: #define SQ(x) x*x then SQ(1+2) inlines 1+2*1+2.
	store := macro.New()
	var sink diag.ListSink
	got := Run("#define SQ(x) x*x\nint y = SQ(1+2);\n", store, &sink)
	require.Contains(t, got, "int y = 1+2*1+2;")
}

func TestRunLeavesUnrelatedIdentifiersAlone(t *testing.T) {
	store := macro.New()
	var sink diag.ListSink
	got := Run("#define N 3\nint nope = N + name;\n", store, &sink)
	require.Contains(t, got, "int nope = 3 + name;")
}

func TestRunFunctionLikeMacroNamedWithoutCall(t *testing.T) {
	store := macro.New()
	var sink diag.ListSink
	got := Run("#define SQ(x) x*x\nfoo(SQ);\n", store, &sink)
	require.Contains(t, got, "foo(SQ);", "SQ must be left bare since it wasn't called")
}

func TestRunReportsUnterminatedMacroArgument(t *testing.T) {
	store := macro.New()
	var sink diag.ListSink
	Run("#define SQ(x) x*x\nint z = SQ(1;\n", store, &sink)
	require.Error(t, sink.Err(), "expected an unterminated-macro-argument diagnostic")
}

func TestRunDoesNotRescanExpandedText(t *testing.T) {
	// Documented one-level-only limitation: a macro whose replacement
	// mentions another macro isn't expanded a second time.
	store := macro.New()
	var sink diag.ListSink
	got := Run("#define A B\n#define B 1\nint w = A;\n", store, &sink)
	require.Contains(t, got, "int w = B;", "A -> B must be left unexpanded a second time")
}
