package ident

import (
	"testing"

	"github.com/ructeam/ruc/lang/pool"
)

func TestInternIdempotence(t *testing.T) {
	tbl := New()
	h1 := tbl.Intern("foo")
	sizeAfterFirst := tbl.Len()
	h2 := tbl.Intern("foo")
	sizeAfterSecond := tbl.Len()

	if h1 != h2 {
		t.Fatalf("Intern(foo) returned different handles: %v vs %v", h1, h2)
	}
	if sizeAfterSecond != sizeAfterFirst {
		t.Fatalf("pool grew on the second Intern: %d -> %d", sizeAfterFirst, sizeAfterSecond)
	}
}

func TestInternDistinctSpellings(t *testing.T) {
	tbl := New()
	h1 := tbl.Intern("foo")
	h2 := tbl.Intern("bar")
	if h1 == h2 {
		t.Fatal("distinct spellings must not collapse to the same handle")
	}
	if tbl.Spelling(h1) != "foo" || tbl.Spelling(h2) != "bar" {
		t.Fatalf("spellings round-trip incorrectly: %q, %q", tbl.Spelling(h1), tbl.Spelling(h2))
	}
}

func TestInternHashCollisionChain(t *testing.T) {
	tbl := New()
	// "AB" and "BA" share the same rolling hash (sum of bytes) but differ in
	// spelling, so they must land in the same bucket's chain yet resolve to
	// distinct handles.
	h1 := tbl.Intern("AB")
	h2 := tbl.Intern("BA")
	if h1 == h2 {
		t.Fatal("hash collision must not be treated as equal spellings")
	}
	if tbl.Spelling(h1) != "AB" || tbl.Spelling(h2) != "BA" {
		t.Fatal("spellings corrupted under hash collision")
	}
}

func TestBootstrapKeywordClasses(t *testing.T) {
	tbl := New()
	tbl.Bootstrap([]string{"if", "else", "while"})

	seen := map[int]bool{}
	for _, kw := range []string{"if", "else", "while"} {
		h := tbl.Intern(kw)
		b := tbl.CurrentBinding(h)
		if b.Kind != BindKeyword {
			t.Fatalf("keyword %q not classified as BindKeyword: %+v", kw, b)
		}
		if b.Class >= 0 {
			t.Fatalf("keyword class must be negative, got %d", b.Class)
		}
		if seen[b.Class] {
			t.Fatalf("keyword class %d reused", b.Class)
		}
		seen[b.Class] = true
	}

	// a user identifier interned after bootstrap must not get a keyword class
	h := tbl.Intern("x")
	if b := tbl.CurrentBinding(h); b.Kind != BindUnbound {
		t.Fatalf("user identifier got %+v, want BindUnbound", b)
	}
}

func TestSeedMain(t *testing.T) {
	tbl := New()
	h := tbl.SeedMain()
	if b := tbl.CurrentBinding(h); b.Kind != BindMain {
		t.Fatalf("main binding = %+v, want BindMain", b)
	}
	// re-interning "main" must return the same handle
	if h2 := tbl.Intern("main"); h2 != h {
		t.Fatal("re-interning main must not create a second record")
	}
}

func TestSetBindingRoundTrip(t *testing.T) {
	tbl := New()
	h := tbl.Intern("x")
	tbl.SetBinding(h, Binding{Kind: BindSymbol, SymbolOffset: 42})
	if b := tbl.CurrentBinding(h); b.Kind != BindSymbol || b.SymbolOffset != 42 {
		t.Fatalf("got %+v", b)
	}
	tbl.SetBinding(h, Binding{Kind: BindUnbound})
	if b := tbl.CurrentBinding(h); b.Kind != BindUnbound {
		t.Fatalf("got %+v, want BindUnbound", b)
	}
}

func TestNoHandleIsNotARecord(t *testing.T) {
	if pool.NoHandle != 0 {
		t.Fatal("test assumes NoHandle == 0")
	}
}
