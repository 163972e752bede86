package ast

import (
	"testing"

	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/tree"
)

func TestBinaryAccessors(t *testing.T) {
	tr := tree.New()
	lhs := tr.Commit(tr.NewNode(Identifier, 1, 1).Int(5))
	rhs := tr.Commit(tr.NewNode(Literal, 2, 2).Int(0).Int(3))
	binNode := tr.Commit(tr.NewNode(Binary, 1, 2).Int(int('+')).ChildOf(lhs).ChildOf(rhs))

	bin := AsBinary(binNode)
	if bin.Op() != int('+') {
		t.Fatalf("Op() = %d, want %d", bin.Op(), int('+'))
	}
	if bin.LHS().Offset() != lhs.Offset() || bin.RHS().Offset() != rhs.Offset() {
		t.Fatal("LHS/RHS did not round-trip")
	}
}

func TestIfWithoutElse(t *testing.T) {
	tr := tree.New()
	cond := tr.Commit(tr.NewNode(Identifier, 1, 1).Int(1))
	then := tr.Commit(tr.NewNode(Compound, 1, 1).Int(0))
	ifNode := tr.Commit(tr.NewNode(If, 1, 1).Int(0).ChildOf(cond).ChildOf(then).OptionalChildOf(tree.Node{}, false))

	iff := AsIf(ifNode)
	if iff.HasElse() {
		t.Fatal("HasElse must be false")
	}
	if iff.Cond().Offset() != cond.Offset() || iff.Then().Offset() != then.Offset() {
		t.Fatal("Cond/Then did not round-trip")
	}
}

func TestFuncDeclParamsAndBody(t *testing.T) {
	tr := tree.New()
	p0 := tr.Commit(tr.NewNode(VarDecl, 1, 1).Int(int(pool.Handle(11))).Int(0))
	p1 := tr.Commit(tr.NewNode(VarDecl, 1, 1).Int(int(pool.Handle(12))).Int(0))
	body := tr.Commit(tr.NewNode(Compound, 1, 1).Int(0))
	fn := tr.Commit(tr.NewNode(FuncDecl, 1, 1).
		Int(int(pool.Handle(99))).
		Int(1). // has body
		Int(2). // param count
		Int(4). // frame size
		ChildOf(p0).
		ChildOf(p1).
		ChildOf(body))

	f := AsFuncDecl(fn)
	if f.Repr() != pool.Handle(99) {
		t.Fatalf("Repr() = %v, want 99", f.Repr())
	}
	if !f.HasBody() || f.ParamCount() != 2 {
		t.Fatalf("HasBody=%v ParamCount=%d", f.HasBody(), f.ParamCount())
	}
	if f.Param(0).Offset() != p0.Offset() || f.Param(1).Offset() != p1.Offset() {
		t.Fatal("params did not round-trip")
	}
	if f.Body().Offset() != body.Offset() {
		t.Fatal("body did not round-trip")
	}
}
