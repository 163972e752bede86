// Package printer writes a human-readable dump of a parsed translation
// unit, the way the original RuC compiler's writer.c renders one AST node
// per line with indentation tracking nesting depth. It is a debugging aid
// for the parse command, not part of the compiled output.
package printer

import (
	"fmt"
	"io"

	"github.com/ructeam/ruc/lang/ast"
	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/mode"
	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/tree"
)

// Printer renders a translation unit to Output, resolving representation
// handles and type modes back to their spellings via idents/modes.
type Printer struct {
	Output io.Writer
	Idents *ident.Table
	Modes  *mode.Table
}

func (p *Printer) write(indent int, format string, args ...any) {
	for i := 0; i < indent; i++ {
		io.WriteString(p.Output, "  ")
	}
	fmt.Fprintf(p.Output, format, args...)
	io.WriteString(p.Output, "\n")
}

func (p *Printer) name(repr pool.Handle) string {
	if p.Idents == nil || repr == pool.NoHandle {
		return "<anon>"
	}
	return p.Idents.Spelling(repr)
}

// PrintUnit dumps every top-level declaration of unit.
func (p *Printer) PrintUnit(unit tree.Node) {
	tu := ast.AsTranslationUnit(unit)
	p.write(0, "TranslationUnit decls=%d", tu.Count())
	for i := 0; i < tu.Count(); i++ {
		p.printDecl(tu.Decl(i), 1)
	}
}

func (p *Printer) printDecl(n tree.Node, indent int) {
	switch n.Class() {
	case ast.FuncDecl:
		fd := ast.AsFuncDecl(n)
		p.write(indent, "FuncDecl %s params=%d hasBody=%v frameSize=%d",
			p.name(fd.Repr()), fd.ParamCount(), fd.HasBody(), fd.FrameSize())
		for i := 0; i < fd.ParamCount(); i++ {
			p.printDecl(fd.Param(i), indent+1)
		}
		if fd.HasBody() {
			p.printStmt(fd.Body(), indent+1)
		}
	case ast.VarDecl:
		vd := ast.AsVarDecl(n)
		p.write(indent, "VarDecl %s hasInit=%v", p.name(vd.Repr()), vd.HasInit())
		if vd.HasInit() {
			p.printExpr(vd.Init(), indent+1)
		}
	case ast.TypeDecl:
		td := ast.AsTypeDecl(n)
		p.write(indent, "TypeDecl %s", p.name(td.Repr()))
	default:
		p.write(indent, "<decl class=%d>", n.Class())
	}
}

func (p *Printer) printStmt(n tree.Node, indent int) {
	switch n.Class() {
	case ast.Compound:
		cmp := ast.AsCompound(n)
		p.write(indent, "Compound stmts=%d", cmp.Count())
		for i := 0; i < cmp.Count(); i++ {
			p.printStmt(cmp.Stmt(i), indent+1)
		}
	case ast.ExprStmt:
		p.write(indent, "ExprStmt")
		p.printExpr(ast.AsExprStmt(n).Expr(), indent+1)
	case ast.DeclStmt:
		p.write(indent, "DeclStmt")
		p.printDecl(ast.AsDeclStmt(n).Decl(), indent+1)
	case ast.Null:
		p.write(indent, "Null")
	case ast.If:
		iff := ast.AsIf(n)
		p.write(indent, "If hasElse=%v", iff.HasElse())
		p.printExpr(iff.Cond(), indent+1)
		p.printStmt(iff.Then(), indent+1)
		if iff.HasElse() {
			p.printStmt(iff.Else(), indent+1)
		}
	case ast.While:
		w := ast.AsWhile(n)
		p.write(indent, "While")
		p.printExpr(w.Cond(), indent+1)
		p.printStmt(w.Body(), indent+1)
	case ast.Do:
		d := ast.AsDo(n)
		p.write(indent, "Do")
		p.printStmt(d.Body(), indent+1)
		p.printExpr(d.Cond(), indent+1)
	case ast.For:
		f := ast.AsFor(n)
		p.write(indent, "For init=%v cond=%v step=%v", f.HasInit(), f.HasCond(), f.HasStep())
		if f.HasInit() {
			p.printExpr(f.Init(), indent+1)
		}
		if f.HasCond() {
			p.printExpr(f.Cond(), indent+1)
		}
		if f.HasStep() {
			p.printExpr(f.Step(), indent+1)
		}
		p.printStmt(f.Body(), indent+1)
	case ast.Switch:
		sw := ast.AsSwitch(n)
		p.write(indent, "Switch")
		p.printExpr(sw.Cond(), indent+1)
		p.printStmt(sw.Body(), indent+1)
	case ast.Case:
		c := ast.AsCase(n)
		p.write(indent, "Case")
		p.printExpr(c.Value(), indent+1)
		p.printStmt(c.Stmt(), indent+1)
	case ast.Default:
		p.write(indent, "Default")
		p.printStmt(ast.AsDefault(n).Stmt(), indent+1)
	case ast.Labeled:
		l := ast.AsLabeled(n)
		p.write(indent, "Labeled %s resolved=%v", p.name(l.Label()), l.Record() != 0)
		p.printStmt(l.Stmt(), indent+1)
	case ast.Goto:
		g := ast.AsGoto(n)
		p.write(indent, "Goto %s resolved=%v", p.name(g.Label()), g.Record() != 0)
	case ast.Return:
		r := ast.AsReturn(n)
		p.write(indent, "Return hasValue=%v", r.HasValue())
		if r.HasValue() {
			p.printExpr(r.Value(), indent+1)
		}
	case ast.Break:
		p.write(indent, "Break")
	case ast.Continue:
		p.write(indent, "Continue")
	default:
		p.write(indent, "<stmt class=%d>", n.Class())
	}
}

func (p *Printer) printExpr(n tree.Node, indent int) {
	if !n.IsValid() {
		p.write(indent, "<missing>")
		return
	}
	switch n.Class() {
	case ast.Identifier:
		id := ast.AsIdentifier(n)
		p.write(indent, "Identifier %s resolved=%v", p.name(id.Repr()), id.Resolved())
	case ast.Literal:
		lit := ast.AsLiteral(n)
		p.write(indent, "Literal kind=%d value=%d", lit.TokenKind(), lit.Value())
	case ast.Unary:
		u := ast.AsUnary(n)
		p.write(indent, "Unary op=%d prefix=%v", u.Op(), u.IsPrefix())
		p.printExpr(u.Operand1(), indent+1)
	case ast.Binary:
		b := ast.AsBinary(n)
		p.write(indent, "Binary op=%d", b.Op())
		p.printExpr(b.LHS(), indent+1)
		p.printExpr(b.RHS(), indent+1)
	case ast.Ternary:
		t := ast.AsTernary(n)
		p.write(indent, "Ternary")
		p.printExpr(t.Cond(), indent+1)
		p.printExpr(t.Then(), indent+1)
		p.printExpr(t.Else(), indent+1)
	case ast.Call:
		call := ast.AsCall(n)
		p.write(indent, "Call args=%d", call.ArgCount())
		p.printExpr(call.Callee(), indent+1)
		for i := 0; i < call.ArgCount(); i++ {
			p.printExpr(call.Arg(i), indent+1)
		}
	case ast.Subscript:
		s := ast.AsSubscript(n)
		p.write(indent, "Subscript")
		p.printExpr(s.Array(), indent+1)
		p.printExpr(s.Index(), indent+1)
	case ast.Member:
		m := ast.AsMember(n)
		p.write(indent, "Member %s arrow=%v", p.name(m.Field()), m.Arrow())
		p.printExpr(m.Struct(), indent+1)
	case ast.List:
		l := ast.AsList(n)
		p.write(indent, "List elems=%d", l.Count())
		for i := 0; i < l.Count(); i++ {
			p.printExpr(l.Elem(i), indent+1)
		}
	default:
		p.write(indent, "<expr class=%d>", n.Class())
	}
}
