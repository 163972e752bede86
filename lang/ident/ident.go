// Package ident implements the name table: a hash-chained interner mapping
// source spellings to representation records, shared by the lexer's keyword
// lookup and the parser's identifier lookup (spec.md §4.1).
//
// A representation record, laid out in a pool.Pool, is:
//
//	r+0 : next-in-hash-chain (offset of another record in the same bucket, or pool.NoHandle)
//	r+1 : current binding — see Binding
//	r+2…: null-terminated code-point sequence of the spelling
//
// The design note in spec.md §9 calls the current-binding cell an
// "overloaded slot" (keyword class, user flag, symbol-table offset, or
// zero-means-main) that should be "reimplemented as a tagged sum with four
// variants to recover safety". Binding is exactly that tagged sum; Table
// still stores its Encode()d form in the pool cell, so the on-disk shape
// spec.md documents is preserved while every call site gets a safe value.
package ident

import (
	"github.com/dolthub/swiss"

	"github.com/ructeam/ruc/lang/pool"
)

const buckets = 256

// BindingKind distinguishes the four variants the original's overloaded
// current-binding cell conflated.
type BindingKind uint8

const (
	// BindMain is the reserved binding of the representation "main": the
	// program entry point, which may be bound to a function definition
	// exactly once (spec.md §4.3).
	BindMain BindingKind = iota
	// BindKeyword means the representation is a reserved word; Class holds
	// the (negative, in the original encoding) keyword class.
	BindKeyword
	// BindUnbound means the representation is a user identifier with no
	// current scope binding.
	BindUnbound
	// BindSymbol means the representation is currently bound to a symbol
	// table record; SymbolOffset holds that record's offset.
	BindSymbol
)

// Binding is the decoded, tagged-union form of a representation's
// current-binding cell.
type Binding struct {
	Kind         BindingKind
	Class        int // valid when Kind == BindKeyword
	SymbolOffset int // valid when Kind == BindSymbol
}

// encode packs a Binding into the single int cell the pool stores, using the
// original's encoding (0 = main, negative = keyword class, 1 = unbound,
// other positive = symbol offset) so the on-the-wire pool layout documented
// in spec.md §3 is reproduced exactly, even though every call site only ever
// sees the decoded Binding.
func encode(b Binding) int {
	switch b.Kind {
	case BindMain:
		return 0
	case BindKeyword:
		return b.Class
	case BindUnbound:
		return 1
	case BindSymbol:
		return b.SymbolOffset
	default:
		panic("ident: invalid BindingKind")
	}
}

func decode(v int) Binding {
	switch {
	case v == 0:
		return Binding{Kind: BindMain}
	case v < 0:
		return Binding{Kind: BindKeyword, Class: v}
	case v == 1:
		return Binding{Kind: BindUnbound}
	default:
		return Binding{Kind: BindSymbol, SymbolOffset: v}
	}
}

// Table is the name table: an append-only pool of representation records,
// a 256-bucket hash-chain head table reproducing the on-wire layout spec.md
// §4.1 documents ("the compiler's working-set is small... a 256-bucket
// head table with O(chain) lookups is fast, cache-friendly, and survives a
// bulk reset cheaply"), and a spelling -> handle index backed by
// github.com/dolthub/swiss giving Intern's duplicate check O(1) average
// instead of walking the bucket's pool-chained list cell-by-cell.
type Table struct {
	pool        *pool.Pool
	hashTab     [buckets]pool.Handle
	index       *swiss.Map[string, pool.Handle]
	mainHandle  pool.Handle
	mainBound   bool
	keywordSeed int // next keyword class to assign, 0 once bootstrap is done
}

// New creates an empty name table.
func New() *Table {
	return &Table{pool: pool.New(1024, 0), index: swiss.NewMap[string, pool.Handle](64)}
}

// Bootstrap seeds the table with the language's reserved words before any
// user identifier is interned, assigning each one a distinct negative
// keyword class (spec.md §4.1 "a keyword class (negative, assigned by the
// lexer's bootstrap phase while keywordsnum is non-zero)"; supplemented by
// SPEC_FULL.md §3's "Keyword bootstrap phase"). It must be called at most
// once, before any call to Intern.
func (t *Table) Bootstrap(keywords []string) {
	t.keywordSeed = -1
	for _, kw := range keywords {
		class := t.keywordSeed
		h := t.intern(kw)
		t.pool.Set(h+1, encode(Binding{Kind: BindKeyword, Class: class}))
		t.keywordSeed = class - 1
	}
	t.keywordSeed = 0
}

// SeedMain interns the representation "main" and forces its current-binding
// slot to BindMain. It must be called once, after Bootstrap and before any
// user identifier is interned, so that the very first encounter of "main"
// in source text finds BindMain rather than the default BindUnbound — the
// reserved binding of the program entry point; lang/symbol tracks main's
// definition separately, through symbol.Table.SetMain (spec.md §4.3: "the entry-point representation main has a reserved
// current-binding value of 0 and can be bound exactly once").
func (t *Table) SeedMain() pool.Handle {
	h := t.intern("main")
	t.pool.Set(h+1, encode(Binding{Kind: BindMain}))
	return h
}

// hash computes the 8-bit rolling hash of a spelling: the sum of the
// low-byte-masked code points, truncated to a byte (spec.md §4.1).
func hash(spelling string) uint8 {
	var h uint8
	for _, r := range spelling {
		h += byte(r & 0xFF)
	}
	return h
}

func spellingLen(spelling string) int { return len([]rune(spelling)) }

// Intern returns the representation handle for spelling, creating a new
// record on first sight (P1: intern idempotence).
func (t *Table) Intern(spelling string) pool.Handle {
	return t.intern(spelling)
}

func (t *Table) intern(spelling string) pool.Handle {
	if cand, ok := t.index.Get(spelling); ok {
		return cand
	}

	// miss: commit a fresh record, link at the head of its bucket chain
	// (the on-wire layout spec.md §4.1 documents), and index it so every
	// later lookup of this spelling is an O(1) swiss.Map hit instead of a
	// pool-chain walk.
	h := hash(spelling)
	rec := pool.Handle(t.pool.Len())
	t.pool.Emit(int(t.hashTab[h])) // r+0: next-in-chain
	t.pool.Emit(0)                 // r+1: current binding (filled below)
	for _, r := range spelling {
		t.pool.Emit(int(r))
	}
	t.pool.Emit(0) // terminator

	binding := 1 // user identifier, unless we're still in the keyword bootstrap
	if t.keywordSeed < 0 {
		binding = t.keywordSeed
		t.keywordSeed--
	}
	t.pool.Set(rec+1, binding)
	t.hashTab[h] = rec
	t.index.Put(spelling, rec)
	return rec
}

// Spelling returns the code-point sequence stored for r.
func (t *Table) Spelling(r pool.Handle) string {
	var rs []rune
	for i := pool.Handle(2); ; i++ {
		v := t.pool.Get(r + i)
		if v == 0 {
			break
		}
		rs = append(rs, rune(v))
	}
	return string(rs)
}

// CurrentBinding decodes the current-binding slot of r.
func (t *Table) CurrentBinding(r pool.Handle) Binding {
	return decode(t.pool.Get(r + 1))
}

// SetBinding overwrites the current-binding slot of r. This is the one
// mutable back-patch spec.md §3 permits against an already-committed
// record, used by scope entry/exit to shadow and restore bindings.
func (t *Table) SetBinding(r pool.Handle, b Binding) {
	t.pool.Set(r+1, encode(b))
}

// Len reports the number of cells committed to the underlying pool, for
// tests asserting P1 (intern idempotence: pool size grows on the first
// call but not the second).
func (t *Table) Len() int { return t.pool.Len() }
