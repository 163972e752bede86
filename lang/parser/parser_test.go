package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ructeam/ruc/lang/ast"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/mode"
	"github.com/ructeam/ruc/lang/scanner"
	"github.com/ructeam/ruc/lang/symbol"
	"github.com/ructeam/ruc/lang/token"
	"github.com/ructeam/ruc/lang/tree"
)

func keywordSpellings() []string {
	var out []string
	for _, k := range token.Keywords {
		out = append(out, k.String())
	}
	return out
}

func parseSource(t *testing.T, src string) (tree.Node, *Parser, *diag.ListSink) {
	t.Helper()
	idents := ident.New()
	idents.Bootstrap(keywordSpellings())
	main := idents.SeedMain()

	modes := mode.New()
	syms := symbol.New(idents, modes)
	syms.SetMain(main)
	tr := tree.New()
	sink := &diag.ListSink{}

	fset := token.NewFileSet()
	f := fset.AddFile("test.ruc", -1, len(src))
	var s scanner.Scanner
	s.Init(f, []byte(src), idents, func(pos token.Position, msg string) {
		sink.Errors.Add(pos, msg)
	})

	var toks []scanner.TokenAndValue
	for {
		var v scanner.Value
		tok := s.Scan(&v)
		toks = append(toks, scanner.TokenAndValue{Token: tok, Value: v})
		if tok == token.EOF {
			break
		}
	}

	p := New(toks, idents, modes, syms, tr, sink, fset)
	root := p.ParseFile()
	return root, p, sink
}

func TestParseSimpleFunction(t *testing.T) {
	root, _, sink := parseSource(t, "int main() { int x = 1; return x; }")
	require.NoError(t, sink.Err())

	unit := ast.AsTranslationUnit(root)
	require.Equal(t, 1, unit.Count())
	fn := ast.AsFuncDecl(unit.Decl(0))
	require.True(t, fn.HasBody(), "main must have a body")
	body := ast.AsCompound(fn.Body())
	require.Equal(t, 2, body.Count())
}

func TestParseFunctionPredeclaration(t *testing.T) {
	_, _, sink := parseSource(t, "int f(int x); int main() { return f(1); }")
	require.NoError(t, sink.Err())
}

func TestParseDuplicateDefinitionReported(t *testing.T) {
	_, _, sink := parseSource(t, "int x; int x;")
	require.Error(t, sink.Err(), "expected a duplicate-definition diagnostic")
}

func TestParseGotoLabel(t *testing.T) {
	_, _, sink := parseSource(t, "int main() { goto done; done: return 0; }")
	require.NoError(t, sink.Err())
}

func TestParseIfElseAndLoops(t *testing.T) {
	src := `int main() {
		int i = 0;
		if (i == 0) { i = 1; } else { i = 2; }
		while (i < 10) { i = i + 1; }
		do { i = i - 1; } while (i > 0);
		for (i = 0; i < 10; i = i + 1) { }
		return i;
	}`
	_, _, sink := parseSource(t, src)
	require.NoError(t, sink.Err())
}

func TestParseExpressionPrecedence(t *testing.T) {
	root, _, sink := parseSource(t, "int main() { return 1 + 2 * 3; }")
	require.NoError(t, sink.Err())
	unit := ast.AsTranslationUnit(root)
	fn := ast.AsFuncDecl(unit.Decl(0))
	body := ast.AsCompound(fn.Body())
	ret := ast.AsReturn(body.Stmt(0))
	bin := ast.AsBinary(ret.Value())
	require.Equal(t, int(token.PLUS), bin.Op(), "multiplication must bind tighter")
}
