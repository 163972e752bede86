package tree

import (
	"testing"

	"github.com/ructeam/ruc/lang/pool"
)

func TestChildrenPrecedeParentInOffset(t *testing.T) {
	tr := New()
	lhs := tr.Commit(tr.NewNode(Identifier, 1, 1).Int(10))
	rhs := tr.Commit(tr.NewNode(Literal, 2, 2).Int(42))
	bin := tr.Commit(tr.NewNode(Binary, 1, 2).Int(int('+')).ChildOf(lhs).ChildOf(rhs))

	if !(lhs.Offset() < bin.Offset() && rhs.Offset() < bin.Offset()) {
		t.Fatalf("parent offset %d must exceed both children %d, %d (P4)", bin.Offset(), lhs.Offset(), rhs.Offset())
	}
	if bin.OperandCount() != 3 {
		t.Fatalf("operand count = %d, want 3", bin.OperandCount())
	}
	if bin.Child(1).Offset() != lhs.Offset() || bin.Child(2).Offset() != rhs.Offset() {
		t.Fatal("child offsets did not round-trip")
	}
}

func TestOptionalChildAbsent(t *testing.T) {
	tr := New()
	cond := tr.Commit(tr.NewNode(Identifier, 1, 1).Int(1))
	then := tr.Commit(tr.NewNode(Compound, 1, 1))
	ifNode := tr.Commit(tr.NewNode(If, 1, 1).ChildOf(cond).ChildOf(then).OptionalChildOf(Node{}, false))

	elseChild := ifNode.Child(2)
	if elseChild.IsValid() {
		t.Fatal("absent optional child must decode as an invalid cursor")
	}
}

func TestRootTracksLastCommit(t *testing.T) {
	tr := New()
	tr.Commit(tr.NewNode(Identifier, 1, 1).Int(1))
	unit := tr.Commit(tr.NewNode(TranslationUnit, 1, 1))

	if tr.Root().Offset() != unit.Offset() {
		t.Fatal("Root must track the most recently committed node")
	}
}

func TestTypeHandleRoundTrip(t *testing.T) {
	tr := New()
	typ := pool.Handle(7)
	n := tr.Commit(tr.NewNode(Literal, 1, 1).SetType(typ).Int(1))
	if n.Type() != typ {
		t.Fatalf("Type() = %v, want %v", n.Type(), typ)
	}
}
