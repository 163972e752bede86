// Package tree implements the AST/token pool of spec.md §4.6: a single
// integer tape written by the parser and read by every downstream pass.
// A node is identified by its offset; typed cursors are lightweight
// (tape-pointer, offset) pairs that never mutate committed cells.
//
// Every node is laid out as:
//
//	n+0 : class tag
//	n+1 : begin position (go/token.Pos)
//	n+2 : end position (go/token.Pos)
//	n+3 : type handle (a lang/mode handle, or pool.NoHandle)
//	n+4 : operand count
//	n+5…: operands (inline primitives or child-node offsets)
//
// The parser writes children before parents, so a parent's offset is
// always strictly greater than any of its descendants' — a
// reverse-topological layout that permits stack-free bottom-up traversal
// (spec.md §4.6, property P4).
package tree

import (
	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/token"
)

// Class is a node's class tag. The set is closed (spec.md §4.6's table).
type Class int

const (
	_ Class = iota

	// Expression classes.
	Identifier
	Literal
	Subscript
	Call
	Member
	Unary
	Binary
	Ternary
	List

	// Statement classes.
	DeclStmt
	Labeled
	Case
	Default
	Compound
	ExprStmt
	Null
	If
	Switch
	While
	Do
	For
	Goto
	Continue
	Break
	Return

	// Declaration classes.
	VarDecl
	TypeDecl
	FuncDecl

	// Unit class.
	TranslationUnit
)

const headerWidth = 5 // tag, begin, end, type, operand-count

// Node is a lightweight cursor into a Tree: it does not own the tape and
// never mutates committed cells.
type Node struct {
	t   *Tree
	off pool.Handle
}

// IsValid reports whether the cursor refers to a committed node.
func (n Node) IsValid() bool { return n.t != nil && n.off != pool.NoHandle }

// Offset returns the node's tape offset, the value used to reference it
// from parent operand slots.
func (n Node) Offset() pool.Handle { return n.off }

// Class returns the node's class tag.
func (n Node) Class() Class { return Class(n.t.pool.Get(n.off)) }

// Begin and End return the node's source span.
func (n Node) Begin() token.Pos { return token.Pos(n.t.pool.Get(n.off + 1)) }
func (n Node) End() token.Pos   { return token.Pos(n.t.pool.Get(n.off + 2)) }

// Type returns the node's type handle, or pool.NoHandle if untyped.
func (n Node) Type() pool.Handle { return pool.Handle(n.t.pool.Get(n.off + 3)) }

// OperandCount returns the number of operand cells the node carries.
func (n Node) OperandCount() int { return n.t.pool.Get(n.off + 4) }

// Operand returns the raw value of operand i (an inline primitive, or a
// child node's offset — the caller knows which from the node's class).
func (n Node) Operand(i int) int {
	return n.t.pool.Get(n.off + pool.Handle(headerWidth+i))
}

// Child interprets operand i as a child node offset and returns a cursor
// to it. A present-flag of 0 on an optional slot should be checked by the
// caller before calling Child (spec.md §4.6: "Optional slots carry a
// 'present' flag as the first operand cell").
func (n Node) Child(i int) Node {
	off := pool.Handle(n.Operand(i))
	if off == pool.NoHandle {
		return Node{}
	}
	return Node{t: n.t, off: off}
}

// Tree is the AST/token pool: an append-only tape plus a type handle
// table (lang/mode handles are plain ints, so no extra indirection is
// needed to store them inline).
type Tree struct {
	pool *pool.Pool
	last Node // the most recently committed node
}

// New creates an empty tree.
func New() *Tree {
	t := &Tree{pool: pool.New(4096, 0)}
	return t
}

// Builder accumulates operands for one node before committing it, so
// callers don't need to precompute the operand count by hand.
type Builder struct {
	class    Class
	begin    token.Pos
	end      token.Pos
	typ      pool.Handle
	operands []int
}

// NewNode starts building a node of the given class and span.
func (t *Tree) NewNode(class Class, begin, end token.Pos) *Builder {
	return &Builder{class: class, begin: begin, end: end}
}

// SetType attaches a type handle to the node under construction.
func (b *Builder) SetType(typ pool.Handle) *Builder {
	b.typ = typ
	return b
}

// Int appends an inline primitive operand.
func (b *Builder) Int(v int) *Builder {
	b.operands = append(b.operands, v)
	return b
}

// ChildOf appends a child-node operand. Children must already be
// committed (i.e. built and Commit()ed) before their parent, enforcing
// the reverse-topological layout of P4.
func (b *Builder) ChildOf(n Node) *Builder {
	b.operands = append(b.operands, int(n.off))
	return b
}

// OptionalChildOf appends an optional child-node operand: if present is
// false, a present-flag-style NoHandle sentinel is written and n is
// ignored (spec.md §4.6 "Optional slots carry a 'present' flag").
func (b *Builder) OptionalChildOf(n Node, present bool) *Builder {
	if !present {
		b.operands = append(b.operands, int(pool.NoHandle))
		return b
	}
	return b.ChildOf(n)
}

// Commit appends the node's header and operands to the tape and returns a
// cursor to it. Because any ChildOf operand must already be committed,
// calling Commit always yields an offset strictly greater than every
// descendant's offset (P4).
func (t *Tree) Commit(b *Builder) Node {
	off := t.pool.Emit(int(b.class))
	t.pool.Emit(int(b.begin))
	t.pool.Emit(int(b.end))
	t.pool.Emit(int(b.typ))
	t.pool.Emit(len(b.operands))
	for _, v := range b.operands {
		t.pool.Emit(v)
	}
	n := Node{t: t, off: off}
	t.last = n
	return n
}

// Root returns a cursor to the most recently committed node — the root of
// the whole tree when the parser finishes on a translation unit (spec.md
// §4.6's tree_root external interface). Parsers building several
// independent units should record each unit's Node as it is committed
// rather than relying on Root after the fact.
func (t *Tree) Root() Node {
	return t.last
}

// At returns a cursor to the node committed at off.
func (t *Tree) At(off pool.Handle) Node {
	if off == pool.NoHandle {
		return Node{}
	}
	return Node{t: t, off: off}
}

// Len reports the number of cells committed to the underlying tape.
func (t *Tree) Len() int { return t.pool.Len() }
