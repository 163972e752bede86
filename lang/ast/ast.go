// Package ast layers named, per-class accessors over the raw tree.Node
// cursors of lang/tree (spec.md §4.6: "Accessors per class enumerate the
// fixed operand slots"). It adds no storage of its own — every accessor
// here is a thin, allocation-free reinterpretation of a tree.Node's
// operand cells.
package ast

import (
	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/tree"
)

// Re-export the class tags so callers of this package never need to
// import lang/tree directly just to branch on a node's class.
const (
	Identifier      = tree.Identifier
	Literal         = tree.Literal
	Subscript       = tree.Subscript
	Call            = tree.Call
	Member          = tree.Member
	Unary           = tree.Unary
	Binary          = tree.Binary
	Ternary         = tree.Ternary
	List            = tree.List
	DeclStmt        = tree.DeclStmt
	Labeled         = tree.Labeled
	Case            = tree.Case
	Default         = tree.Default
	Compound        = tree.Compound
	ExprStmt        = tree.ExprStmt
	Null            = tree.Null
	If              = tree.If
	Switch          = tree.Switch
	While           = tree.While
	Do              = tree.Do
	For             = tree.For
	Goto            = tree.Goto
	Continue        = tree.Continue
	Break           = tree.Break
	Return          = tree.Return
	VarDecl         = tree.VarDecl
	TypeDecl        = tree.TypeDecl
	FuncDecl        = tree.FuncDecl
	TranslationUnit = tree.TranslationUnit
)

// IdentifierNode accesses an identifier expression: operand 0 is the
// representation handle (lang/ident), operand 1 the lang/symbol record it
// resolved to at parse time, or pool.NoHandle if it named nothing bound in
// scope (the parser reports diag.UndefinedIdentifier in that case, but still
// emits the node so a partially-built tree remains walkable per spec.md §7).
type IdentifierNode struct{ tree.Node }

func AsIdentifier(n tree.Node) IdentifierNode { return IdentifierNode{n} }
func (n IdentifierNode) Repr() pool.Handle    { return pool.Handle(n.Operand(0)) }
func (n IdentifierNode) Record() pool.Handle  { return pool.Handle(n.Operand(1)) }
func (n IdentifierNode) Resolved() bool       { return n.Record() != pool.NoHandle }

// LiteralNode accesses a literal expression: operand 0 is the token kind
// that produced it (int/float/char/string), operand 1 the encoded value
// (the value itself for int/char literals, the math.Float64bits pattern for
// float literals, and always 0 for string literals, whose text the tree
// does not store; lang/compiler knows which given the token kind).
type LiteralNode struct{ tree.Node }

func AsLiteral(n tree.Node) LiteralNode { return LiteralNode{n} }
func (n LiteralNode) TokenKind() int    { return n.Operand(0) }
func (n LiteralNode) Value() int        { return n.Operand(1) }

// SubscriptNode accesses a[i]: operand 0 the array expression, operand 1
// the index expression.
type SubscriptNode struct{ tree.Node }

func AsSubscript(n tree.Node) SubscriptNode { return SubscriptNode{n} }
func (n SubscriptNode) Array() tree.Node    { return n.Child(0) }
func (n SubscriptNode) Index() tree.Node    { return n.Child(1) }

// CallNode accesses f(args...): operand 0 the callee, operand 1 the
// argument count, operands 2.. the argument expressions.
type CallNode struct{ tree.Node }

func AsCall(n tree.Node) CallNode    { return CallNode{n} }
func (n CallNode) Callee() tree.Node { return n.Child(0) }
func (n CallNode) ArgCount() int     { return n.Operand(1) }
func (n CallNode) Arg(i int) tree.Node {
	return n.Child(2 + i)
}

// MemberNode accesses s.f or s->f: operand 0 the struct expression,
// operand 1 the field representation handle, operand 2 a 0/1 flag for
// arrow-vs-dot access.
type MemberNode struct{ tree.Node }

func AsMember(n tree.Node) MemberNode   { return MemberNode{n} }
func (n MemberNode) Struct() tree.Node  { return n.Child(0) }
func (n MemberNode) Field() pool.Handle { return pool.Handle(n.Operand(1)) }
func (n MemberNode) Arrow() bool        { return n.Operand(2) != 0 }

// UnaryNode accesses a prefix/postfix unary expression: operand 0 the
// operator token, operand 1 a 0/1 prefix flag, operand 2 the operand.
type UnaryNode struct{ tree.Node }

func AsUnary(n tree.Node) UnaryNode     { return UnaryNode{n} }
func (n UnaryNode) Op() int             { return n.Operand(0) }
func (n UnaryNode) IsPrefix() bool      { return n.Operand(1) != 0 }
func (n UnaryNode) Operand1() tree.Node { return n.Child(2) }

// BinaryNode accesses lhs op rhs: operand 0 the operator token.
type BinaryNode struct{ tree.Node }

func AsBinary(n tree.Node) BinaryNode { return BinaryNode{n} }
func (n BinaryNode) Op() int          { return n.Operand(0) }
func (n BinaryNode) LHS() tree.Node   { return n.Child(1) }
func (n BinaryNode) RHS() tree.Node   { return n.Child(2) }

// TernaryNode accesses cond ? then : else.
type TernaryNode struct{ tree.Node }

func AsTernary(n tree.Node) TernaryNode { return TernaryNode{n} }
func (n TernaryNode) Cond() tree.Node   { return n.Child(0) }
func (n TernaryNode) Then() tree.Node   { return n.Child(1) }
func (n TernaryNode) Else() tree.Node   { return n.Child(2) }

// ListNode accesses a brace-enclosed initializer list: operand 0 the
// element count, operands 1.. the element expressions.
type ListNode struct{ tree.Node }

func AsList(n tree.Node) ListNode { return ListNode{n} }
func (n ListNode) Count() int     { return n.Operand(0) }
func (n ListNode) Elem(i int) tree.Node {
	return n.Child(1 + i)
}

// IfNode accesses if (cond) then [else else?]: operand 0 a present flag
// for the else branch.
type IfNode struct{ tree.Node }

func AsIf(n tree.Node) IfNode    { return IfNode{n} }
func (n IfNode) Cond() tree.Node { return n.Child(1) }
func (n IfNode) Then() tree.Node { return n.Child(2) }
func (n IfNode) HasElse() bool   { return n.Operand(0) != 0 }
func (n IfNode) Else() tree.Node { return n.Child(3) }

// WhileNode / DoNode access while/do-while loops.
type WhileNode struct{ tree.Node }

func AsWhile(n tree.Node) WhileNode { return WhileNode{n} }
func (n WhileNode) Cond() tree.Node { return n.Child(0) }
func (n WhileNode) Body() tree.Node { return n.Child(1) }

type DoNode struct{ tree.Node }

func AsDo(n tree.Node) DoNode    { return DoNode{n} }
func (n DoNode) Body() tree.Node { return n.Child(0) }
func (n DoNode) Cond() tree.Node { return n.Child(1) }

// ForNode accesses for (init?; cond?; step?) body: operands 0-2 are
// present flags for init/cond/step.
type ForNode struct{ tree.Node }

func AsFor(n tree.Node) ForNode   { return ForNode{n} }
func (n ForNode) HasInit() bool   { return n.Operand(0) != 0 }
func (n ForNode) HasCond() bool   { return n.Operand(1) != 0 }
func (n ForNode) HasStep() bool   { return n.Operand(2) != 0 }
func (n ForNode) Init() tree.Node { return n.Child(3) }
func (n ForNode) Cond() tree.Node { return n.Child(4) }
func (n ForNode) Step() tree.Node { return n.Child(5) }
func (n ForNode) Body() tree.Node { return n.Child(6) }

// SwitchNode accesses switch (cond) body.
type SwitchNode struct{ tree.Node }

func AsSwitch(n tree.Node) SwitchNode { return SwitchNode{n} }
func (n SwitchNode) Cond() tree.Node  { return n.Child(0) }
func (n SwitchNode) Body() tree.Node  { return n.Child(1) }

// CaseNode / DefaultNode access switch arms.
type CaseNode struct{ tree.Node }

func AsCase(n tree.Node) CaseNode   { return CaseNode{n} }
func (n CaseNode) Value() tree.Node { return n.Child(0) }
func (n CaseNode) Stmt() tree.Node  { return n.Child(1) }

type DefaultNode struct{ tree.Node }

func AsDefault(n tree.Node) DefaultNode { return DefaultNode{n} }
func (n DefaultNode) Stmt() tree.Node   { return n.Child(0) }

// LabeledNode accesses label: stmt: operand 0 the label representation
// handle, operand 1 the lang/symbol record the label resolved to at parse
// time (see GotoNode).
type LabeledNode struct{ tree.Node }

func AsLabeled(n tree.Node) LabeledNode  { return LabeledNode{n} }
func (n LabeledNode) Label() pool.Handle { return pool.Handle(n.Operand(0)) }
func (n LabeledNode) Record() pool.Handle { return pool.Handle(n.Operand(1)) }
func (n LabeledNode) Stmt() tree.Node    { return n.Child(2) }

// GotoNode accesses goto label;: operand 0 the label representation handle,
// operand 1 the lang/symbol record the label resolved to at parse time (a
// placeholder record if the goto forward-references a label not yet
// defined — lang/compiler patches the jump once it compiles that label).
type GotoNode struct{ tree.Node }

func AsGoto(n tree.Node) GotoNode      { return GotoNode{n} }
func (n GotoNode) Label() pool.Handle  { return pool.Handle(n.Operand(0)) }
func (n GotoNode) Record() pool.Handle { return pool.Handle(n.Operand(1)) }

// ReturnNode accesses return expr?;: operand 0 a present flag.
type ReturnNode struct{ tree.Node }

func AsReturn(n tree.Node) ReturnNode { return ReturnNode{n} }
func (n ReturnNode) HasValue() bool   { return n.Operand(0) != 0 }
func (n ReturnNode) Value() tree.Node { return n.Child(1) }

// CompoundNode accesses a { ... } block: operand 0 the statement count.
type CompoundNode struct{ tree.Node }

func AsCompound(n tree.Node) CompoundNode { return CompoundNode{n} }
func (n CompoundNode) Count() int         { return n.Operand(0) }
func (n CompoundNode) Stmt(i int) tree.Node {
	return n.Child(1 + i)
}

// ExprStmtNode accesses a bare expression statement.
type ExprStmtNode struct{ tree.Node }

func AsExprStmt(n tree.Node) ExprStmtNode { return ExprStmtNode{n} }
func (n ExprStmtNode) Expr() tree.Node    { return n.Child(0) }

// DeclStmtNode wraps a declaration used in statement position.
type DeclStmtNode struct{ tree.Node }

func AsDeclStmt(n tree.Node) DeclStmtNode { return DeclStmtNode{n} }
func (n DeclStmtNode) Decl() tree.Node    { return n.Child(0) }

// VarDeclNode accesses a variable declaration: operand 0 the
// representation handle, operand 1 the lang/symbol record it defined (or
// pool.NoHandle if the name collided with an existing definition), operand
// 2 a present flag for the initializer.
type VarDeclNode struct{ tree.Node }

func AsVarDecl(n tree.Node) VarDeclNode  { return VarDeclNode{n} }
func (n VarDeclNode) Repr() pool.Handle  { return pool.Handle(n.Operand(0)) }
func (n VarDeclNode) Record() pool.Handle { return pool.Handle(n.Operand(1)) }
func (n VarDeclNode) HasInit() bool      { return n.Operand(2) != 0 }
func (n VarDeclNode) Init() tree.Node    { return n.Child(3) }

// FuncDeclNode accesses a function declaration/definition: operand 0 the
// representation handle, operand 1 a present flag for the body (absent on
// a predeclaration), operand 2 the parameter count, operand 3 the frame
// size lang/symbol.Table.ExitFunc computed while parsing the body (0 on a
// predeclaration — lang/compiler never reads it in that case).
type FuncDeclNode struct{ tree.Node }

func AsFuncDecl(n tree.Node) FuncDeclNode { return FuncDeclNode{n} }
func (n FuncDeclNode) Repr() pool.Handle  { return pool.Handle(n.Operand(0)) }
func (n FuncDeclNode) HasBody() bool      { return n.Operand(1) != 0 }
func (n FuncDeclNode) ParamCount() int    { return n.Operand(2) }
func (n FuncDeclNode) FrameSize() int     { return n.Operand(3) }
func (n FuncDeclNode) Param(i int) tree.Node {
	return n.Child(4 + i)
}
func (n FuncDeclNode) Body() tree.Node {
	return n.Child(4 + n.ParamCount())
}

// TypeDeclNode accesses a typedef: operand 0 the representation handle.
type TypeDeclNode struct{ tree.Node }

func AsTypeDecl(n tree.Node) TypeDeclNode { return TypeDeclNode{n} }
func (n TypeDeclNode) Repr() pool.Handle  { return pool.Handle(n.Operand(0)) }

// TranslationUnitNode accesses the root of one compiled file: operand 0
// the top-level declaration count.
type TranslationUnitNode struct{ tree.Node }

func AsTranslationUnit(n tree.Node) TranslationUnitNode { return TranslationUnitNode{n} }
func (n TranslationUnitNode) Count() int                { return n.Operand(0) }
func (n TranslationUnitNode) Decl(i int) tree.Node {
	return n.Child(1 + i)
}
