// Package compiler implements the bytecode emitter of spec.md §4.4/§6: it
// walks a checked AST (lang/tree, accessed through lang/ast) and appends to
// a single flat integer tape (lang/pool), laid out the way spec.md §6
// documents: a prologue slot holding the entry-point address, the text of
// every compiled function, a function address table indexed by declaration
// order, and a block of global initializer code.
//
// The instruction set emitted here (lang/compiler/opcode.go) is this core's
// own invention — the real VM's opcodes are specified elsewhere and are
// opaque to the compiler (spec.md §6) — but the emitter's structure (a
// pcomp/fcomp-style split between "compiling a program" and "compiling one
// function") follows the teacher's lang/compiler package.
package compiler

import (
	"github.com/ructeam/ruc/lang/ast"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/mode"
	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/symbol"
	"github.com/ructeam/ruc/lang/tree"
)

// Program is the compiled result: the flat tape plus the slot assignments
// spec.md §6 documents.
type Program struct {
	Code []int

	// Entry is the prologue slot's value: the code offset of main's first
	// instruction, its ENTER.
	Entry int

	// FuncAddrs is the function address table, indexed by the declaration
	// order of function *definitions* in the translation unit.
	FuncAddrs []int

	// GlobalInit is the code offset where global initializer code begins.
	GlobalInit int
}

// loopCtx tracks the patch sites of break/continue inside one loop, and the
// code address `continue` should jump to.
type loopCtx struct {
	breakPatches    []pool.Handle
	continuePatches []pool.Handle
	continueTarget  int
}

// Compiler walks one translation unit and appends its compiled form to an
// owned code pool.
type Compiler struct {
	syms  *symbol.Table
	modes *mode.Table
	sink  diag.Sink
	code  *pool.Pool

	funcOrdinal map[pool.Handle]int // representation handle -> declaration order

	// label bookkeeping, reset per function (lang/symbol scopes labels no
	// wider than the enclosing function either).
	labelAddr    map[pool.Handle]int
	pendingGotos map[pool.Handle][]pool.Handle

	loops []loopCtx
}

// New creates a bytecode emitter sharing the symbol/type tables a prior
// parse populated.
func New(syms *symbol.Table, modes *mode.Table, sink diag.Sink) *Compiler {
	return &Compiler{
		syms:        syms,
		modes:       modes,
		sink:        sink,
		code:        pool.New(4096, 0),
		funcOrdinal: make(map[pool.Handle]int),
	}
}

func (c *Compiler) here() int { return c.code.Len() }

func (c *Compiler) emit(op Opcode)           { c.code.Emit(int(op)) }
func (c *Compiler) emitArg(op Opcode, a int) { c.code.Emit(int(op)); c.code.Emit(a) }
func (c *Compiler) emitArg2(op Opcode, a, b int) {
	c.code.Emit(int(op))
	c.code.Emit(a)
	c.code.Emit(b)
}

// reserveJump emits op with a zero placeholder operand and returns the
// operand cell's offset, to be patched once the jump target is known.
func (c *Compiler) reserveJump(op Opcode) pool.Handle {
	c.code.Emit(int(op))
	return c.code.Emit(0)
}

func (c *Compiler) patchJump(at pool.Handle, target int) {
	c.code.Patch(at, target)
}

// Compile compiles one translation unit into a Program. unit must be the
// tree.TranslationUnit node lang/parser.Parser.ParseFile returns.
func (c *Compiler) Compile(unit tree.Node) *Program {
	tu := ast.AsTranslationUnit(unit)

	var defs []ast.FuncDeclNode
	for i := 0; i < tu.Count(); i++ {
		d := tu.Decl(i)
		if d.Class() == ast.FuncDecl {
			fd := ast.AsFuncDecl(d)
			if fd.HasBody() {
				c.funcOrdinal[fd.Repr()] = len(defs)
				defs = append(defs, fd)
			}
		}
	}

	prologue := c.code.Reserve(1)

	addrs := make([]int, len(defs))
	for i, fd := range defs {
		addrs[i] = c.here()
		c.compileFunction(fd)
	}

	funcTable := c.code.Reserve(len(addrs))
	for i, a := range addrs {
		c.code.Set(funcTable+pool.Handle(i), a)
	}

	globalInit := c.here()
	for i := 0; i < tu.Count(); i++ {
		d := tu.Decl(i)
		if d.Class() != ast.VarDecl {
			continue
		}
		vd := ast.AsVarDecl(d)
		if !vd.HasInit() || vd.Record() == pool.NoHandle {
			continue
		}
		c.compileExpr(vd.Init())
		c.emitArg(STORE_GLOBAL, c.syms.Displacement(vd.Record()))
		c.emit(POP)
	}

	entry := 0
	if ord, ok := c.funcOrdinal[c.syms.MainRepr()]; ok {
		entry = addrs[ord]
	}
	c.code.Set(prologue, entry)

	return &Program{
		Code:       c.code.Slice(0),
		Entry:      entry,
		FuncAddrs:  addrs,
		GlobalInit: globalInit,
	}
}

// compileFunction emits one function's prologue, body, and implicit return.
func (c *Compiler) compileFunction(fd ast.FuncDeclNode) {
	c.labelAddr = make(map[pool.Handle]int)
	c.pendingGotos = make(map[pool.Handle][]pool.Handle)

	c.emitArg(ENTER, fd.FrameSize())

	c.compileStmt(fd.Body())

	c.emit(RET)

	for rec, sites := range c.pendingGotos {
		addr, ok := c.labelAddr[rec]
		if !ok {
			continue // lang/sema.Check already reported this as an undefined-identifier
			// diagnostic against the pending label (symbol.Table.PendingLabels); a
			// caller that compiles anyway despite unresolved diagnostics gets a
			// JMP left pointing at its zero placeholder rather than a panic here.
		}
		for _, at := range sites {
			c.patchJump(at, addr)
		}
	}
}
