package mode

import (
	"testing"

	"github.com/ructeam/ruc/lang/pool"
)

func TestPrimitivesDistinctAndSized(t *testing.T) {
	tbl := New()
	if tbl.IntMode == tbl.FloatMode {
		t.Fatal("int and float modes must be distinct")
	}
	if tbl.SizeOf(tbl.IntMode) != 1 {
		t.Fatalf("size_of(int) = %d, want 1", tbl.SizeOf(tbl.IntMode))
	}
	if tbl.SizeOf(tbl.FloatMode) != 2 {
		t.Fatalf("size_of(float) = %d, want 2", tbl.SizeOf(tbl.FloatMode))
	}
}

func TestArrayPointerDedup(t *testing.T) {
	tbl := New()
	a1 := tbl.AddArray(tbl.IntMode, 10)
	sizeAfterFirst := tbl.Len()
	a2 := tbl.AddArray(tbl.IntMode, 10)
	if a1 != a2 {
		t.Fatal("structurally-equal arrays must dedup to the same handle (P2)")
	}
	if tbl.Len() != sizeAfterFirst {
		t.Fatal("pool must not grow on a dedup hit (P2)")
	}

	a3 := tbl.AddArray(tbl.IntMode, 11) // different length
	if a3 == a1 {
		t.Fatal("arrays with different lengths must not dedup")
	}

	p1 := tbl.AddPointer(tbl.IntMode)
	p2 := tbl.AddPointer(tbl.IntMode)
	if p1 != p2 {
		t.Fatal("structurally-equal pointers must dedup")
	}
	if p1 == a1 {
		t.Fatal("a pointer and an array must never dedup against each other")
	}
}

func TestStructDedup(t *testing.T) {
	tbl := New()
	nameA := pool.Handle(100)
	nameB := pool.Handle(200)

	fields := []Field{{Mode: tbl.IntMode, Name: nameA}, {Mode: tbl.FloatMode, Name: nameB}}
	s1 := tbl.AddStruct(3, fields) // int (1 cell) + float (2 cells) = 3
	sizeAfterFirst := tbl.Len()
	s2 := tbl.AddStruct(3, []Field{{Mode: tbl.IntMode, Name: nameA}, {Mode: tbl.FloatMode, Name: nameB}})

	if s1 != s2 {
		t.Fatal("structurally-equal structs must dedup (scenario 3 of spec.md §8)")
	}
	if tbl.Len() != sizeAfterFirst {
		t.Fatal("pool must not grow on a dedup hit")
	}
	if tbl.SizeOf(s1) != 3 {
		t.Fatalf("size_of(struct) = %d, want 3", tbl.SizeOf(s1))
	}

	got := tbl.StructFields(s1)
	if len(got) != 2 || got[0].Name != nameA || got[1].Name != nameB {
		t.Fatalf("StructFields round-trip mismatch: %+v", got)
	}

	s3 := tbl.AddStruct(3, []Field{{Mode: tbl.FloatMode, Name: nameA}, {Mode: tbl.IntMode, Name: nameB}})
	if s3 == s1 {
		t.Fatal("structs with different field modes must not dedup")
	}
}

func TestFunctionDedup(t *testing.T) {
	tbl := New()
	f1 := tbl.AddFunction(tbl.IntMode, []pool.Handle{tbl.IntMode, tbl.FloatMode})
	f2 := tbl.AddFunction(tbl.IntMode, []pool.Handle{tbl.IntMode, tbl.FloatMode})
	if f1 != f2 {
		t.Fatal("structurally-equal function modes must dedup")
	}

	f3 := tbl.AddFunction(tbl.FloatMode, []pool.Handle{tbl.IntMode, tbl.FloatMode})
	if f3 == f1 {
		t.Fatal("different return modes must not dedup")
	}

	if got := tbl.FuncParams(f1); len(got) != 2 || got[0] != tbl.IntMode || got[1] != tbl.FloatMode {
		t.Fatalf("FuncParams round-trip mismatch: %+v", got)
	}
	if tbl.FuncReturn(f1) != tbl.IntMode {
		t.Fatal("FuncReturn round-trip mismatch")
	}
}

func (t *Table) Len() int { return t.pool.Len() }
