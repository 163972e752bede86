package parser

import (
	"github.com/ructeam/ruc/lang/ast"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/token"
	"github.com/ructeam/ruc/lang/tree"
)

// isTypeStart reports whether the current token can begin a type
// specifier, used to disambiguate a declaration from an expression
// statement.
func (p *Parser) isTypeStart() bool {
	switch p.kind() {
	case token.VOID, token.INT_KW, token.FLOAT_KW, token.CHAR_KW:
		return true
	default:
		return false
	}
}

// statement parses one statement.
func (p *Parser) statement() tree.Node {
	begin := p.pos_()
	switch p.kind() {
	case token.LBRACE:
		return p.compoundStmt()

	case token.IF:
		return p.ifStmt(begin)
	case token.WHILE:
		return p.whileStmt(begin)
	case token.DO:
		return p.doStmt(begin)
	case token.FOR:
		return p.forStmt(begin)
	case token.SWITCH:
		return p.switchStmt(begin)
	case token.CASE:
		return p.caseStmt(begin)
	case token.DEFAULT:
		return p.defaultStmt(begin)
	case token.GOTO:
		return p.gotoStmt(begin)
	case token.RETURN:
		return p.returnStmt(begin)
	case token.BREAK:
		p.advance()
		p.expect(token.SEMI)
		return p.tree.Commit(p.tree.NewNode(ast.Break, begin, p.pos_()))
	case token.CONTINUE:
		p.advance()
		p.expect(token.SEMI)
		return p.tree.Commit(p.tree.NewNode(ast.Continue, begin, p.pos_()))
	case token.SEMI:
		p.advance()
		return p.tree.Commit(p.tree.NewNode(ast.Null, begin, p.pos_()))

	case token.IDENT:
		// label: stmt, disambiguated from an expression statement by a
		// one-token lookahead for ':'.
		if p.toks[p.pos+1].Token == token.COLON {
			return p.labeledStmt(begin)
		}
		return p.exprStmt(begin)

	default:
		if p.isTypeStart() {
			d, _ := p.externalDecl()
			return p.tree.Commit(p.tree.NewNode(ast.DeclStmt, begin, p.pos_()).ChildOf(d))
		}
		return p.exprStmt(begin)
	}
}

func (p *Parser) compoundStmt() tree.Node {
	begin := p.pos_()
	p.expect(token.LBRACE)
	snap := p.syms.EnterBlock()
	var stmts []tree.Node
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmts = append(stmts, p.statement())
	}
	p.expect(token.RBRACE)
	p.syms.ExitBlock(snap)

	b := p.tree.NewNode(ast.Compound, begin, p.pos_()).Int(len(stmts))
	for _, s := range stmts {
		b.ChildOf(s)
	}
	return p.tree.Commit(b)
}

func (p *Parser) ifStmt(begin token.Pos) tree.Node {
	p.advance()
	p.expect(token.LPAREN)
	cond := p.expr()
	p.expect(token.RPAREN)
	then := p.statement()

	hasElse := 0
	var els tree.Node
	if p.at(token.ELSE) {
		p.advance()
		els = p.statement()
		hasElse = 1
	}
	b := p.tree.NewNode(ast.If, begin, p.pos_()).Int(hasElse).ChildOf(cond).ChildOf(then).OptionalChildOf(els, hasElse != 0)
	return p.tree.Commit(b)
}

func (p *Parser) whileStmt(begin token.Pos) tree.Node {
	p.advance()
	p.expect(token.LPAREN)
	cond := p.expr()
	p.expect(token.RPAREN)
	body := p.statement()
	return p.tree.Commit(p.tree.NewNode(ast.While, begin, p.pos_()).ChildOf(cond).ChildOf(body))
}

func (p *Parser) doStmt(begin token.Pos) tree.Node {
	p.advance()
	body := p.statement()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.expr()
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return p.tree.Commit(p.tree.NewNode(ast.Do, begin, p.pos_()).ChildOf(body).ChildOf(cond))
}

func (p *Parser) forStmt(begin token.Pos) tree.Node {
	p.advance()
	p.expect(token.LPAREN)

	snap := p.syms.EnterBlock()

	hasInit := !p.at(token.SEMI)
	var init tree.Node
	if hasInit {
		init = p.expr()
	}
	p.expect(token.SEMI)

	hasCond := !p.at(token.SEMI)
	var cond tree.Node
	if hasCond {
		cond = p.expr()
	}
	p.expect(token.SEMI)

	hasStep := !p.at(token.RPAREN)
	var step tree.Node
	if hasStep {
		step = p.expr()
	}
	p.expect(token.RPAREN)

	body := p.statement()
	p.syms.ExitBlock(snap)

	flagInit, flagCond, flagStep := 0, 0, 0
	if hasInit {
		flagInit = 1
	}
	if hasCond {
		flagCond = 1
	}
	if hasStep {
		flagStep = 1
	}
	b := p.tree.NewNode(ast.For, begin, p.pos_()).
		Int(flagInit).Int(flagCond).Int(flagStep).
		OptionalChildOf(init, hasInit).
		OptionalChildOf(cond, hasCond).
		OptionalChildOf(step, hasStep).
		ChildOf(body)
	return p.tree.Commit(b)
}

func (p *Parser) switchStmt(begin token.Pos) tree.Node {
	p.advance()
	p.expect(token.LPAREN)
	cond := p.expr()
	p.expect(token.RPAREN)
	body := p.statement()
	return p.tree.Commit(p.tree.NewNode(ast.Switch, begin, p.pos_()).ChildOf(cond).ChildOf(body))
}

func (p *Parser) caseStmt(begin token.Pos) tree.Node {
	p.advance()
	val := p.expr()
	p.expect(token.COLON)
	stmt := p.statement()
	return p.tree.Commit(p.tree.NewNode(ast.Case, begin, p.pos_()).ChildOf(val).ChildOf(stmt))
}

func (p *Parser) defaultStmt(begin token.Pos) tree.Node {
	p.advance()
	p.expect(token.COLON)
	stmt := p.statement()
	return p.tree.Commit(p.tree.NewNode(ast.Default, begin, p.pos_()).ChildOf(stmt))
}

func (p *Parser) labeledStmt(begin token.Pos) tree.Node {
	nameTok := p.advance()
	p.expect(token.COLON)
	repr := pool.Handle(nameTok.Value.Repr)
	stmt := p.statement()
	rec, ok := p.syms.DefineLabel(repr, int(stmt.Offset()))
	if !ok {
		p.sink.Report(diag.DuplicateDefinition, p.position())
	}
	return p.tree.Commit(p.tree.NewNode(ast.Labeled, begin, p.pos_()).Int(int(repr)).Int(int(rec)).ChildOf(stmt))
}

func (p *Parser) gotoStmt(begin token.Pos) tree.Node {
	p.advance()
	nameTok := p.expect(token.IDENT)
	p.expect(token.SEMI)
	repr := pool.Handle(nameTok.Value.Repr)
	rec := p.syms.ReferenceLabel(repr)
	return p.tree.Commit(p.tree.NewNode(ast.Goto, begin, p.pos_()).Int(int(repr)).Int(int(rec)))
}

func (p *Parser) returnStmt(begin token.Pos) tree.Node {
	p.advance()
	hasValue := !p.at(token.SEMI)
	var val tree.Node
	if hasValue {
		val = p.expr()
	}
	p.expect(token.SEMI)
	flag := 0
	if hasValue {
		flag = 1
	}
	return p.tree.Commit(p.tree.NewNode(ast.Return, begin, p.pos_()).Int(flag).OptionalChildOf(val, hasValue))
}

func (p *Parser) exprStmt(begin token.Pos) tree.Node {
	e := p.expr()
	p.expect(token.SEMI)
	return p.tree.Commit(p.tree.NewNode(ast.ExprStmt, begin, p.pos_()).ChildOf(e))
}
