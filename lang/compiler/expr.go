package compiler

import (
	"github.com/ructeam/ruc/lang/ast"
	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/token"
	"github.com/ructeam/ruc/lang/tree"
)

// compileExpr emits code that leaves exactly one value on the operand
// stack.
func (c *Compiler) compileExpr(n tree.Node) {
	switch n.Class() {
	case ast.Identifier:
		c.compileLoad(ast.AsIdentifier(n))

	case ast.Literal:
		c.compileLiteral(ast.AsLiteral(n))

	case ast.Unary:
		c.compileUnary(ast.AsUnary(n))

	case ast.Binary:
		c.compileBinary(ast.AsBinary(n))

	case ast.Ternary:
		c.compileTernary(ast.AsTernary(n))

	case ast.Call:
		c.compileCall(ast.AsCall(n))

	case ast.Subscript:
		// Array/pointer element addressing is outside this core's emitted
		// instruction set (spec.md §1 scopes the bytecode emitter to
		// scalars and control flow); both operands are still compiled for
		// their side effects so a partially-built program never panics.
		sub := ast.AsSubscript(n)
		c.compileExpr(sub.Array())
		c.emit(POP)
		c.compileExpr(sub.Index())
		c.emit(POP)
		c.emitArg(CONST_INT, 0)

	case ast.Member:
		mem := ast.AsMember(n)
		c.compileExpr(mem.Struct())
		c.emit(POP)
		c.emitArg(CONST_INT, 0)

	default:
		c.emitArg(CONST_INT, 0)
	}
}

func (c *Compiler) compileLoad(id ast.IdentifierNode) {
	rec := id.Record()
	if rec == pool.NoHandle {
		c.emitArg(CONST_INT, 0) // undefined identifier: diag already reported at parse time
		return
	}
	displ := c.syms.Displacement(rec)
	if displ < 0 {
		c.emitArg(LOAD_GLOBAL, displ)
	} else {
		c.emitArg(LOAD_LOCAL, displ)
	}
}

func (c *Compiler) compileStore(rec pool.Handle) {
	if rec == pool.NoHandle {
		return
	}
	displ := c.syms.Displacement(rec)
	if displ < 0 {
		c.emitArg(STORE_GLOBAL, displ)
	} else {
		c.emitArg(STORE_LOCAL, displ)
	}
}

func (c *Compiler) compileLiteral(lit ast.LiteralNode) {
	switch token.Token(lit.TokenKind()) {
	case token.FLOAT:
		c.emitArg(CONST_FLT, lit.Value())
	default: // INT, CHAR, STRING, ILLEGAL
		c.emitArg(CONST_INT, lit.Value())
	}
}

func (c *Compiler) compileUnary(u ast.UnaryNode) {
	op := token.Token(u.Op())
	switch op {
	case token.INC, token.DEC:
		c.compileIncDec(u)
		return
	}

	c.compileExpr(u.Operand1())
	switch op {
	case token.MINUS:
		c.emit(NEG)
	case token.TILDE:
		c.emit(BNOT)
	case token.BANG:
		c.emit(LOGNOT)
	case token.PLUS, token.STAR, token.AMP:
		// unary plus is a no-op; pointer deref/address-of are outside this
		// core's scalar instruction set (see compileExpr's Subscript case)
	}
}

// compileIncDec lowers ++x/x++/--x/x-- to a single PREINC/POSTINC/PREDEC/
// POSTDEC instruction carrying the target's displacement and storage
// class; only an identifier operand is supported (see compileExpr's
// Subscript/Member handling for the documented limitation elsewhere).
func (c *Compiler) compileIncDec(u ast.UnaryNode) {
	operand := u.Operand1()
	if operand.Class() != ast.Identifier {
		c.compileExpr(operand)
		return
	}
	rec := ast.AsIdentifier(operand).Record()
	if rec == pool.NoHandle {
		c.emitArg(CONST_INT, 0)
		return
	}
	displ := c.syms.Displacement(rec)
	isGlobal := 0
	if displ < 0 {
		isGlobal = 1
	}
	dec := token.Token(u.Op()) == token.DEC
	switch {
	case u.IsPrefix() && !dec:
		c.emitArg2(PREINC, displ, isGlobal)
	case u.IsPrefix() && dec:
		c.emitArg2(PREDEC, displ, isGlobal)
	case !u.IsPrefix() && !dec:
		c.emitArg2(POSTINC, displ, isGlobal)
	default:
		c.emitArg2(POSTDEC, displ, isGlobal)
	}
}

var assignOpBinary = map[token.Token]token.Token{
	token.PLUS_EQ:    token.PLUS,
	token.MINUS_EQ:   token.MINUS,
	token.STAR_EQ:    token.STAR,
	token.SLASH_EQ:   token.SLASH,
	token.PERCENT_EQ: token.PERCENT,
	token.AMP_EQ:     token.AMP,
	token.PIPE_EQ:    token.PIPE,
	token.CARET_EQ:   token.CARET,
	token.SHL_EQ:     token.SHL,
	token.SHR_EQ:     token.SHR,
}

func (c *Compiler) compileBinary(b ast.BinaryNode) {
	op := token.Token(b.Op())

	switch op {
	case token.ASSIGN:
		c.compileAssign(b, nil)
		return
	case token.COMMA:
		c.compileExpr(b.LHS())
		c.emit(POP)
		c.compileExpr(b.RHS())
		return
	case token.ANDAND:
		c.compileLogicalAnd(b)
		return
	case token.OROR:
		c.compileLogicalOr(b)
		return
	}
	if base, ok := assignOpBinary[op]; ok {
		c.compileAssign(b, &base)
		return
	}

	c.compileExpr(b.LHS())
	c.compileExpr(b.RHS())
	if opcode, ok := binaryOp[op]; ok {
		c.emit(opcode)
	}
}

// compileAssign handles `lhs = rhs` (base == nil) and `lhs op= rhs`
// (base names the underlying binary operator). Only an identifier lhs is
// fully lowered; other lvalues fall back to evaluating both sides for
// their side effects (matching compileExpr's Subscript/Member handling).
func (c *Compiler) compileAssign(b ast.BinaryNode, base *token.Token) {
	lhs := b.LHS()
	if lhs.Class() != ast.Identifier {
		c.compileExpr(lhs)
		c.emit(POP)
		c.compileExpr(b.RHS())
		return
	}
	id := ast.AsIdentifier(lhs)
	if base != nil {
		c.compileLoad(id)
		c.compileExpr(b.RHS())
		if opcode, ok := binaryOp[*base]; ok {
			c.emit(opcode)
		}
	} else {
		c.compileExpr(b.RHS())
	}
	c.compileStore(id.Record())
}

func (c *Compiler) compileLogicalAnd(b ast.BinaryNode) {
	c.compileExpr(b.LHS())
	shortCircuit := c.reserveJump(JZ)
	c.compileExpr(b.RHS())
	end := c.reserveJump(JMP)
	c.patchJump(shortCircuit, c.here())
	c.emitArg(CONST_INT, 0)
	c.patchJump(end, c.here())
}

func (c *Compiler) compileLogicalOr(b ast.BinaryNode) {
	c.compileExpr(b.LHS())
	shortCircuit := c.reserveJump(JZ)
	c.emitArg(CONST_INT, 1)
	skip := c.reserveJump(JMP)
	c.patchJump(shortCircuit, c.here())
	c.compileExpr(b.RHS())
	c.patchJump(skip, c.here())
}

func (c *Compiler) compileTernary(t ast.TernaryNode) {
	c.compileExpr(t.Cond())
	toElse := c.reserveJump(JZ)
	c.compileExpr(t.Then())
	toEnd := c.reserveJump(JMP)
	c.patchJump(toElse, c.here())
	c.compileExpr(t.Else())
	c.patchJump(toEnd, c.here())
}

func (c *Compiler) compileCall(call ast.CallNode) {
	for i := 0; i < call.ArgCount(); i++ {
		c.compileExpr(call.Arg(i))
	}
	idx := -1
	if call.Callee().Class() == ast.Identifier {
		repr := ast.AsIdentifier(call.Callee()).Repr()
		if ord, ok := c.funcOrdinal[repr]; ok {
			idx = ord
		}
	}
	c.emitArg2(CALL, idx, call.ArgCount())
}
