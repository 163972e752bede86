package scanner

import (
	"testing"

	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, []Value) {
	t.Helper()
	idents := ident.New()
	idents.Bootstrap(keywordSpellings())
	idents.SeedMain()

	fs := token.NewFileSet()
	f := fs.AddFile("test.ruc", -1, len(src))

	var errs []string
	var s Scanner
	s.Init(f, []byte(src), idents, func(pos token.Position, msg string) {
		errs = append(errs, msg)
	})

	var toks []token.Token
	var vals []Value
	for {
		var v Value
		tok := s.Scan(&v)
		toks = append(toks, tok)
		vals = append(vals, v)
		if tok == token.EOF {
			break
		}
	}
	if len(errs) > 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	return toks, vals
}

func keywordSpellings() []string {
	var out []string
	for _, k := range token.Keywords {
		out = append(out, k.String())
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, _ := scanAll(t, "a+=1<<2==3")
	want := []token.Token{token.IDENT, token.PLUS_EQ, token.INT, token.SHL, token.INT, token.EQL, token.INT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
	for i, tok := range toks {
		if tok != want[i] {
			t.Fatalf("token %d = %v, want %v", i, tok, want[i])
		}
	}
}

func TestScanKeywordVsIdentifier(t *testing.T) {
	toks, _ := scanAll(t, "if iffy")
	if toks[0] != token.IF {
		t.Fatalf("toks[0] = %v, want IF", toks[0])
	}
	if toks[1] != token.IDENT {
		t.Fatalf("toks[1] = %v, want IDENT (keyword-prefixed identifiers must not match)", toks[1])
	}
}

func TestScanStringAndCharLiterals(t *testing.T) {
	toks, vals := scanAll(t, `"hi\n" 'a' '\n'`)
	if toks[0] != token.STRING || vals[0].Raw != "hi\n" {
		t.Fatalf("string literal = %+v", vals[0])
	}
	if toks[1] != token.CHAR || vals[1].Int != int64('a') {
		t.Fatalf("char literal = %+v", vals[1])
	}
	if toks[2] != token.CHAR || vals[2].Int != int64('\n') {
		t.Fatalf("escaped char literal = %+v", vals[2])
	}
}

func TestScanNumberLiterals(t *testing.T) {
	toks, vals := scanAll(t, "42 3.14 2e10")
	if toks[0] != token.INT || vals[0].Int != 42 {
		t.Fatalf("int literal = %+v", vals[0])
	}
	if toks[1] != token.FLOAT || vals[1].Flt != 3.14 {
		t.Fatalf("float literal = %+v", vals[1])
	}
	if toks[2] != token.FLOAT || vals[2].Flt != 2e10 {
		t.Fatalf("exponent float literal = %+v", vals[2])
	}
}

func TestScanCommentsAreSkipped(t *testing.T) {
	toks, _ := scanAll(t, "a // line comment\nb /* block\ncomment */ c")
	want := []token.Token{token.IDENT, token.IDENT, token.IDENT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
}

func TestIdentifierSharesReprHandle(t *testing.T) {
	idents := ident.New()
	idents.Bootstrap(keywordSpellings())
	idents.SeedMain()

	fs := token.NewFileSet()
	f := fs.AddFile("test.ruc", -1, len("x x"))
	var s Scanner
	s.Init(f, []byte("x x"), idents, func(token.Position, string) {})

	var v1, v2 Value
	s.Scan(&v1)
	s.Scan(&v2)
	if v1.Repr != v2.Repr {
		t.Fatalf("two occurrences of %q interned to different handles: %v vs %v", "x", v1.Repr, v2.Repr)
	}
}
