package parser

import (
	"math"

	"github.com/ructeam/ruc/lang/ast"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/token"
	"github.com/ructeam/ruc/lang/tree"
)

// expr parses a comma expression: assignment { "," assignment }.
func (p *Parser) expr() tree.Node {
	n := p.assignment()
	for p.at(token.COMMA) {
		begin := p.pos_()
		p.advance()
		rhs := p.assignment()
		b := p.tree.NewNode(ast.Binary, begin, p.pos_()).Int(int(token.COMMA)).ChildOf(n).ChildOf(rhs)
		n = p.tree.Commit(b)
	}
	return n
}

var assignOps = map[token.Token]bool{
	token.ASSIGN: true, token.PLUS_EQ: true, token.MINUS_EQ: true,
	token.STAR_EQ: true, token.SLASH_EQ: true, token.PERCENT_EQ: true,
	token.AMP_EQ: true, token.PIPE_EQ: true, token.CARET_EQ: true,
	token.SHL_EQ: true, token.SHR_EQ: true,
}

// assignment parses ternary [ assignOp assignment ] (right-associative).
func (p *Parser) assignment() tree.Node {
	lhs := p.ternary()
	if assignOps[p.kind()] {
		op := p.kind()
		begin := p.pos_()
		p.advance()
		rhs := p.assignment()
		b := p.tree.NewNode(ast.Binary, begin, p.pos_()).Int(int(op)).ChildOf(lhs).ChildOf(rhs)
		return p.tree.Commit(b)
	}
	return lhs
}

// ternary parses logicalOr [ "?" expr ":" ternary ].
func (p *Parser) ternary() tree.Node {
	cond := p.logicalOr()
	if !p.at(token.QUESTION) {
		return cond
	}
	begin := p.pos_()
	p.advance()
	then := p.expr()
	p.expect(token.COLON)
	els := p.ternary()
	b := p.tree.NewNode(ast.Ternary, begin, p.pos_()).ChildOf(cond).ChildOf(then).ChildOf(els)
	return p.tree.Commit(b)
}

// binaryLevel is one precedence level: a left-to-right chain over a set
// of token operators, delegating to next for operands.
func (p *Parser) binaryLevel(next func() tree.Node, ops map[token.Token]bool) tree.Node {
	lhs := next()
	for ops[p.kind()] {
		op := p.kind()
		begin := p.pos_()
		p.advance()
		rhs := next()
		b := p.tree.NewNode(ast.Binary, begin, p.pos_()).Int(int(op)).ChildOf(lhs).ChildOf(rhs)
		lhs = p.tree.Commit(b)
	}
	return lhs
}

var orOrOps = map[token.Token]bool{token.OROR: true}
var andAndOps = map[token.Token]bool{token.ANDAND: true}
var bitOrOps = map[token.Token]bool{token.PIPE: true}
var bitXorOps = map[token.Token]bool{token.CARET: true}
var bitAndOps = map[token.Token]bool{token.AMP: true}
var equalityOps = map[token.Token]bool{token.EQL: true, token.NEQ: true}
var relationalOps = map[token.Token]bool{token.LT: true, token.GT: true, token.LE: true, token.GE: true}
var shiftOps = map[token.Token]bool{token.SHL: true, token.SHR: true}
var additiveOps = map[token.Token]bool{token.PLUS: true, token.MINUS: true}
var multiplicativeOps = map[token.Token]bool{token.STAR: true, token.SLASH: true, token.PERCENT: true}

func (p *Parser) logicalOr() tree.Node   { return p.binaryLevel(p.logicalAnd, orOrOps) }
func (p *Parser) logicalAnd() tree.Node  { return p.binaryLevel(p.bitOr, andAndOps) }
func (p *Parser) bitOr() tree.Node       { return p.binaryLevel(p.bitXor, bitOrOps) }
func (p *Parser) bitXor() tree.Node      { return p.binaryLevel(p.bitAnd, bitXorOps) }
func (p *Parser) bitAnd() tree.Node      { return p.binaryLevel(p.equality, bitAndOps) }
func (p *Parser) equality() tree.Node    { return p.binaryLevel(p.relational, equalityOps) }
func (p *Parser) relational() tree.Node  { return p.binaryLevel(p.shift, relationalOps) }
func (p *Parser) shift() tree.Node       { return p.binaryLevel(p.additive, shiftOps) }
func (p *Parser) additive() tree.Node    { return p.binaryLevel(p.multiplicative, additiveOps) }
func (p *Parser) multiplicative() tree.Node { return p.binaryLevel(p.unary, multiplicativeOps) }

var prefixOps = map[token.Token]bool{
	token.BANG: true, token.MINUS: true, token.PLUS: true, token.TILDE: true,
	token.STAR: true, token.AMP: true, token.INC: true, token.DEC: true,
}

// unary parses a prefix unary expression or falls through to postfix.
func (p *Parser) unary() tree.Node {
	if prefixOps[p.kind()] {
		op := p.kind()
		begin := p.pos_()
		p.advance()
		operand := p.unary()
		b := p.tree.NewNode(ast.Unary, begin, p.pos_()).Int(int(op)).Int(1).ChildOf(operand)
		return p.tree.Commit(b)
	}
	return p.postfix()
}

// postfix parses a primary expression followed by zero or more
// subscript/call/member/postfix-inc-dec suffixes.
func (p *Parser) postfix() tree.Node {
	n := p.primary()
	for {
		begin := p.pos_()
		switch p.kind() {
		case token.LBRACK:
			p.advance()
			idx := p.expr()
			p.expect(token.RBRACK)
			b := p.tree.NewNode(ast.Subscript, begin, p.pos_()).ChildOf(n).ChildOf(idx)
			n = p.tree.Commit(b)

		case token.LPAREN:
			p.advance()
			var args []tree.Node
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				args = append(args, p.assignment())
				if !p.at(token.COMMA) {
					break
				}
				p.advance()
			}
			p.expect(token.RPAREN)
			b := p.tree.NewNode(ast.Call, begin, p.pos_()).ChildOf(n).Int(len(args))
			for _, a := range args {
				b.ChildOf(a)
			}
			n = p.tree.Commit(b)

		case token.DOT, token.ARROW:
			arrow := p.kind() == token.ARROW
			p.advance()
			fieldTok := p.expect(token.IDENT)
			repr := pool.Handle(fieldTok.Value.Repr)
			arrowFlag := 0
			if arrow {
				arrowFlag = 1
			}
			b := p.tree.NewNode(ast.Member, begin, p.pos_()).ChildOf(n).Int(int(repr)).Int(arrowFlag)
			n = p.tree.Commit(b)

		case token.INC, token.DEC:
			op := p.kind()
			p.advance()
			b := p.tree.NewNode(ast.Unary, begin, p.pos_()).Int(int(op)).Int(0).ChildOf(n)
			n = p.tree.Commit(b)

		default:
			return n
		}
	}
}

// primary parses an identifier, literal, or parenthesized expression.
func (p *Parser) primary() tree.Node {
	begin := p.pos_()
	tv := p.cur()
	switch tv.Token {
	case token.IDENT:
		p.advance()
		repr := pool.Handle(tv.Value.Repr)
		rec, ok := p.syms.Resolve(repr)
		if !ok {
			p.sink.Report(diag.UndefinedIdentifier, p.position(), p.idents.Spelling(repr))
		}
		b := p.tree.NewNode(ast.Identifier, begin, p.pos_()).Int(int(repr)).Int(int(rec))
		return p.tree.Commit(b)

	case token.INT:
		p.advance()
		b := p.tree.NewNode(ast.Literal, begin, p.pos_()).SetType(p.modes.IntMode).Int(int(token.INT)).Int(int(tv.Value.Int))
		return p.tree.Commit(b)

	case token.FLOAT:
		p.advance()
		bits := int(math.Float64bits(tv.Value.Flt))
		b := p.tree.NewNode(ast.Literal, begin, p.pos_()).SetType(p.modes.FloatMode).Int(int(token.FLOAT)).Int(bits)
		return p.tree.Commit(b)

	case token.CHAR:
		p.advance()
		b := p.tree.NewNode(ast.Literal, begin, p.pos_()).SetType(p.modes.IntMode).Int(int(token.CHAR)).Int(int(tv.Value.Int))
		return p.tree.Commit(b)

	case token.STRING:
		p.advance()
		b := p.tree.NewNode(ast.Literal, begin, p.pos_()).Int(int(token.STRING)).Int(0)
		return p.tree.Commit(b)

	case token.LPAREN:
		p.advance()
		n := p.expr()
		p.expect(token.RPAREN)
		return n

	default:
		p.advance() // error recovery: always make progress
		b := p.tree.NewNode(ast.Literal, begin, p.pos_()).Int(int(token.ILLEGAL)).Int(0)
		return p.tree.Commit(b)
	}
}
