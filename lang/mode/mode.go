// Package mode implements the type engine: a deduplicating arena of
// composite type descriptors ("modes" in spec.md's vocabulary), answering
// size-of and shape queries (spec.md §4.2).
//
// A mode record, laid out in a pool.Pool, is:
//
//	m+0 : link to the previous distinct mode record (the dedup chain)
//	m+1 : tag ∈ {Array, Pointer, Struct, Function}
//	m+2…: tail, shape depends on tag (see Tag's doc comments)
//
// Handle is always the offset of the tag cell (m+1 above), matching
// spec.md's mode_is_equal which "consults the tag to decide the comparison
// length".
package mode

import (
	"golang.org/x/exp/slices"

	"github.com/ructeam/ruc/lang/pool"
)

// Tag identifies the shape of a mode record's tail.
type Tag int

const (
	_ Tag = iota
	// Primitive is the tag of the two predeclared scalar modes, Int and
	// Float. Their tail is empty; they are allocated once by New and
	// never participate in the dedup chain walk (there can be only one of
	// each).
	Primitive
	// Array's tail is (element-mode, length): length is 0 for an
	// unbounded/incomplete array.
	Array
	// Pointer's tail is (element-mode).
	Pointer
	// Struct's tail is (member-count-in-cells, member-count-in-fields, then
	// alternating element-mode, element-name for each field).
	Struct
	// Function's tail is (return-mode, parameter-count, parameter-mode × N).
	Function
)

// Table is the type engine: an append-only pool of mode records plus the
// dedup chain head (spec.md I1: mode uniqueness).
type Table struct {
	pool *pool.Pool
	head pool.Handle // most recently committed non-primitive mode, or pool.NoHandle

	// IntMode and FloatMode are the two predeclared scalar mode handles
	// (SPEC_FULL.md §3 "Primitive modes"): allocated once at construction so
	// expression typing and size_of always have a handle to compare against
	// from the start of compilation.
	IntMode   pool.Handle
	FloatMode pool.Handle
}

// New creates a type engine with the two primitive modes predeclared.
func New() *Table {
	t := &Table{pool: pool.New(256, 0)}
	t.IntMode = t.addPrimitive()
	t.FloatMode = t.addPrimitive()
	return t
}

func (t *Table) addPrimitive() pool.Handle {
	t.pool.Emit(int(pool.NoHandle)) // link: primitives are never deduplicated against
	h := t.pool.Emit(int(Primitive))
	return h
}

// Tag returns the tag of a committed mode record.
func (t *Table) Tag(m pool.Handle) Tag { return Tag(t.pool.Get(m)) }

// tailLen returns how many cells after the tag cell belong to this record's
// tail, following spec.md §4.2's "length-prefixed for structures,
// parameter-count-derived for functions, fixed for arrays and pointers".
func (t *Table) tailLen(m pool.Handle) int {
	switch t.Tag(m) {
	case Primitive:
		return 0
	case Array:
		return 2 // element-mode, length
	case Pointer:
		return 1 // element-mode
	case Struct:
		fields := t.pool.Get(m + 2) // member-count-in-fields
		return 2 + 2*fields
	case Function:
		params := t.pool.Get(m + 2) // parameter-count
		return 2 + params
	default:
		panic("mode: unknown tag")
	}
}

// tailEqual compares the tails of two records of the same tag, via
// golang.org/x/exp/slices.Equal over the []int views pool.Slice already
// exposes read-only, rather than a hand-rolled cell-by-cell loop.
func (t *Table) tailEqual(a, b pool.Handle) bool {
	la, lb := t.tailLen(a), t.tailLen(b)
	if la != lb {
		return false
	}
	return slices.Equal(t.pool.Slice(a+1)[:la], t.pool.Slice(b+1)[:la])
}

// IsEqual reports whether the two committed mode records have the same tag
// and tail, i.e. would deduplicate to the same handle (mode_is_equal in
// spec.md §4.2).
func (t *Table) IsEqual(a, b pool.Handle) bool {
	return t.Tag(a) == t.Tag(b) && t.tailEqual(a, b)
}

// add appends a candidate record (tag + tail) to the pool, walks the dedup
// chain, and either rewinds and returns the canonical handle (on a
// structural match) or commits and promotes the new record to head.
//
// This reproduces spec.md §4.2's type_add steps 1-5, with one deliberate
// simplification from the original C implementation: the dedup chain's
// empty sentinel is pool.NoHandle (0), the same "no record" sentinel every
// other pool in this repo uses, rather than the original's
// self-referential bootstrap value — see DESIGN.md for why.
func (t *Table) add(tag Tag, tail []int) pool.Handle {
	back := t.pool.Emit(int(t.head))
	t.pool.Emit(int(tag))
	for _, c := range tail {
		t.pool.Emit(c)
	}
	rec := back + 1 // handle = offset of tag cell

	for old := t.head; old != pool.NoHandle; old = pool.Handle(t.pool.Get(old - 1)) {
		if t.IsEqual(rec, old) {
			t.pool.Rewind(back)
			return old
		}
	}

	t.head = rec
	return rec
}

// AddArray adds (or deduplicates) an array mode. length is 0 for an
// incomplete/unbounded array.
func (t *Table) AddArray(elem pool.Handle, length int) pool.Handle {
	return t.add(Array, []int{int(elem), length})
}

// AddPointer adds (or deduplicates) a pointer mode.
func (t *Table) AddPointer(elem pool.Handle) pool.Handle {
	return t.add(Pointer, []int{int(elem)})
}

// Field is one member of a structure mode, paired with the representation
// handle of its field name (spec.md §3: "element-mode, element-name").
type Field struct {
	Mode pool.Handle
	Name pool.Handle
}

// AddStruct adds (or deduplicates) a structure mode. cells is the
// member-count-in-cells value (the sum of size_of over every field,
// computed by the caller since it must consult this very table).
func (t *Table) AddStruct(cells int, fields []Field) pool.Handle {
	tail := make([]int, 0, 2+2*len(fields))
	tail = append(tail, cells, len(fields))
	for _, f := range fields {
		tail = append(tail, int(f.Mode), int(f.Name))
	}
	return t.add(Struct, tail)
}

// AddFunction adds (or deduplicates) a function mode.
func (t *Table) AddFunction(ret pool.Handle, params []pool.Handle) pool.Handle {
	tail := make([]int, 0, 2+len(params))
	tail = append(tail, int(ret), len(params))
	for _, p := range params {
		tail = append(tail, int(p))
	}
	return t.add(Function, tail)
}

// SizeOf returns the number of stack cells a value of mode m occupies: 2 for
// the primitive floating mode, the member-count-in-cells field for
// structures, and 1 otherwise (spec.md §4.2 — "This asymmetry reflects the
// target VM's stack-cell granularity").
func (t *Table) SizeOf(m pool.Handle) int {
	if m == t.FloatMode {
		return 2
	}
	if t.Tag(m) == Struct {
		return t.pool.Get(m + 1)
	}
	return 1
}

// Elem returns the element mode of an array or pointer mode.
func (t *Table) Elem(m pool.Handle) pool.Handle {
	return pool.Handle(t.pool.Get(m + 1))
}

// ArrayLen returns the declared length of an array mode (0 if incomplete).
func (t *Table) ArrayLen(m pool.Handle) int {
	return t.pool.Get(m + 2)
}

// StructFields returns the fields of a structure mode.
func (t *Table) StructFields(m pool.Handle) []Field {
	n := t.pool.Get(m + 2)
	fields := make([]Field, n)
	for i := 0; i < n; i++ {
		fields[i].Mode = pool.Handle(t.pool.Get(m + 3 + pool.Handle(2*i)))
		fields[i].Name = pool.Handle(t.pool.Get(m + 4 + pool.Handle(2*i)))
	}
	return fields
}

// FuncReturn returns the return mode of a function mode.
func (t *Table) FuncReturn(m pool.Handle) pool.Handle {
	return pool.Handle(t.pool.Get(m + 1))
}

// FuncParams returns the parameter modes of a function mode.
func (t *Table) FuncParams(m pool.Handle) []pool.Handle {
	n := t.pool.Get(m + 2)
	params := make([]pool.Handle, n)
	for i := 0; i < n; i++ {
		params[i] = pool.Handle(t.pool.Get(m + 3 + pool.Handle(i)))
	}
	return params
}
