package pool

import "testing"

func TestEmitAndGet(t *testing.T) {
	p := New(0, 0)
	h1 := p.Emit(42)
	h2 := p.Emit(7)
	if p.Get(h1) != 42 || p.Get(h2) != 7 {
		t.Fatalf("got %d, %d", p.Get(h1), p.Get(h2))
	}
	if p.Len() != 3 { // cell 0 reserved as NoHandle
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
}

func TestReserveAndPatch(t *testing.T) {
	p := New(0, 0)
	base := p.Reserve(3)
	for i := 0; i < 3; i++ {
		if p.Get(base+Handle(i)) != 0 {
			t.Fatalf("reserved cell %d not zero", i)
		}
	}
	if !p.Patch(base+1, 99) {
		t.Fatal("Patch within bounds should succeed")
	}
	if p.Get(base+1) != 99 {
		t.Fatal("Patch did not take effect")
	}
	if p.Patch(Handle(p.Len()), 1) {
		t.Fatal("Patch at or beyond cursor must fail (P5)")
	}
}

func TestRewindDiscardsSpeculativeWrite(t *testing.T) {
	p := New(0, 0)
	p.Emit(1)
	mark := Handle(p.Len())
	p.Emit(2)
	p.Emit(3)
	p.Rewind(mark)
	if p.Len() != int(mark) {
		t.Fatalf("Len() = %d, want %d", p.Len(), mark)
	}
}

func TestExhausted(t *testing.T) {
	p := New(0, 4)
	p.Emit(1)
	p.Emit(2)
	if p.Exhausted(1) {
		t.Fatal("should fit exactly at the limit")
	}
	if !p.Exhausted(2) {
		t.Fatal("should report exhaustion past the limit")
	}
}
