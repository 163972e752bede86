// Package macro implements the macro store: a trie-indexed registry of
// name -> (replacement text, parameter count, parameter names), used by
// the preprocessor (macro lookup), per spec.md §4.5. Keywords are seeded
// into it (Store.SeedKeywords), so a #define of a keyword spelling
// collides; the lexer does not consult this store and classifies keywords
// through lang/ident instead. It is grounded on the original RuC compiler's
// libs/macro/storage.h, reshaped from its map+hash+strings triple into a
// single append-only trie over lang/pool, matching this repo's arena
// discipline.
package macro

import (
	"github.com/ructeam/ruc/lang/pool"
)

// noRecord marks a trie node with no macro bound to it yet.
const noRecord = -1

// trieNode is one node of the code-point trie: a record index (or
// noRecord) plus a small slice of (rune, child-index) edges. Children are
// stored in a flat slice rather than a map per rune, since macro tables in
// practice are small (spec.md §9: "the compiler's working-set is small").
type trieNode struct {
	record   int
	edgeRune []rune
	edgeNode []int
}

// record is one macro's metadata: its replacement text and parameters,
// stored as (offset, length) pairs into the shared string pool.
type record struct {
	replOff, replLen int
	paramOff, paramN int // paramOff indexes into params, a []paramSlot
}

type paramSlot struct {
	off, len int
}

// Store is the macro store of spec.md §4.5: a trie keyed by code points,
// a parallel record vector, and an append-only string pool holding
// replacement text and parameter names back-to-back.
type Store struct {
	trie    []trieNode
	records []record
	params  []paramSlot
	strs    *pool.Pool // null-terminated code-point runs
}

// New creates an empty macro store with a root trie node.
func New() *Store {
	s := &Store{strs: pool.New(1024, 0)}
	s.trie = append(s.trie, trieNode{record: noRecord})
	return s
}

// internText appends spelling as a null-terminated run of code points to
// the string pool and returns (offset, length) excluding the terminator.
func (s *Store) internText(spelling string) (off, n int) {
	off = int(s.strs.Len())
	for _, r := range spelling {
		s.strs.Emit(int(r))
		n++
	}
	s.strs.Emit(0)
	return off, n
}

// text reads back a run of n code points starting at off.
func (s *Store) text(off, n int) string {
	rs := make([]rune, n)
	for i := 0; i < n; i++ {
		rs[i] = rune(s.strs.Get(pool.Handle(off + i)))
	}
	return string(rs)
}

// descend walks the trie along name, creating edges as needed, and returns
// the index of the terminal node.
func (s *Store) descend(name string, create bool) (node int, ok bool) {
	cur := 0
	for _, r := range name {
		next := -1
		for i, er := range s.trie[cur].edgeRune {
			if er == r {
				next = s.trie[cur].edgeNode[i]
				break
			}
		}
		if next == -1 {
			if !create {
				return -1, false
			}
			next = len(s.trie)
			s.trie = append(s.trie, trieNode{record: noRecord})
			s.trie[cur].edgeRune = append(s.trie[cur].edgeRune, r)
			s.trie[cur].edgeNode = append(s.trie[cur].edgeNode, next)
		}
		cur = next
	}
	return cur, true
}

// Add inserts an object-like macro (or keyword, with replacement carrying
// the keyword class). It fails if name is already bound.
func (s *Store) Add(name, replacement string) (index int, ok bool) {
	return s.AddWithParams(name, replacement, nil)
}

// AddWithParams inserts a function-like macro; params holds the parameter
// spellings in declaration order (spec.md §4.5 "add_with_params").
func (s *Store) AddWithParams(name, replacement string, params []string) (index int, ok bool) {
	node, _ := s.descend(name, true)
	if s.trie[node].record != noRecord {
		return -1, false
	}

	replOff, replLen := s.internText(replacement)
	paramOff := len(s.params)
	for _, p := range params {
		off, n := s.internText(p)
		s.params = append(s.params, paramSlot{off: off, len: n})
	}

	index = len(s.records)
	s.records = append(s.records, record{
		replOff: replOff, replLen: replLen,
		paramOff: paramOff, paramN: len(params),
	})
	s.trie[node].record = index
	return index, true
}

// SeedKeywords binds each keyword to itself so that a later `#define` of a
// keyword spelling fails the same way redefining any other macro does
// (spec.md §4.5's "Keywords are seeded into the same store", mirroring
// lang/ident.Table.Bootstrap's keyword seeding on the identifier side).
func (s *Store) SeedKeywords(keywords []string) {
	for _, kw := range keywords {
		s.Add(kw, kw)
	}
}

// GetIndex returns the record index bound to name, or (-1, false) if
// unbound (spec.md §4.5 "storage_get_index").
func (s *Store) GetIndex(name string) (int, bool) {
	node, ok := s.descend(name, false)
	if !ok || s.trie[node].record == noRecord {
		return -1, false
	}
	return s.trie[node].record, true
}

// Replacement returns the replacement text of record index.
func (s *Store) Replacement(index int) string {
	r := s.records[index]
	return s.text(r.replOff, r.replLen)
}

// ParamCount returns the parameter count of record index.
func (s *Store) ParamCount(index int) int { return s.records[index].paramN }

// Param returns the i'th parameter name of record index.
func (s *Store) Param(index, i int) string {
	r := s.records[index]
	slot := s.params[r.paramOff+i]
	return s.text(slot.off, slot.len)
}

// Set replaces a record's replacement text in place; the old replacement
// bytes are orphaned in the string pool, matching the original's
// append-only tradeoff (spec.md §4.5 "storage_set_by_index").
func (s *Store) Set(index int, replacement string) {
	off, n := s.internText(replacement)
	s.records[index].replOff = off
	s.records[index].replLen = n
}

// Remove unbinds name's trie edge; the record and its strings remain
// allocated but unreachable (spec.md §4.5 "storage_remove_by_index").
func (s *Store) Remove(name string) bool {
	node, ok := s.descend(name, false)
	if !ok || s.trie[node].record == noRecord {
		return false
	}
	s.trie[node].record = noRecord
	return true
}

// CodeReader supplies code points one at a time, matching spec.md §6's
// "read_code_point -> U+XXXX | EOF" stream abstraction.
type CodeReader interface {
	// Peek returns the next code point without consuming it, and false at
	// end of input.
	Peek() (rune, bool)
	// Advance consumes the code point last returned by Peek.
	Advance()
}

// Search reads code points from r, descending the trie greedily, and
// returns the deepest matching record along with the first non-matching
// rune (or its absence at EOF). This is the dual-purpose operation
// spec.md §4.5 describes: "how the preprocessor both tokenizes a
// macro-name and peeks the terminator."
func (s *Store) Search(r CodeReader) (index int, next rune, nextOK bool) {
	cur := 0
	bestRecord := noRecord
	for {
		ru, ok := r.Peek()
		if !ok {
			break
		}
		next, nextOK := ru, true
		found := -1
		for i, er := range s.trie[cur].edgeRune {
			if er == ru {
				found = s.trie[cur].edgeNode[i]
				break
			}
		}
		if found == -1 {
			return bestRecord, next, nextOK
		}
		r.Advance()
		cur = found
		if s.trie[cur].record != noRecord {
			bestRecord = s.trie[cur].record
		}
	}
	return bestRecord, 0, false
}
