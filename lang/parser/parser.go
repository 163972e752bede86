// Package parser implements a recursive-descent parser for RuC's surface
// grammar (documented in lang/grammar/grammar.ebnf), building nodes into a
// lang/tree, interning identifiers via a lang/ident.Table, deduplicating
// types via a lang/mode.Table, and threading scope discipline through a
// lang/symbol.Table — the same four-pool fusion spec.md §3 describes,
// assembled into one syntax-directed pass the way the original RuC
// compiler's syntax.c does (this repo's lang/symbol and lang/mode are
// direct ports of that file's ident_add/mode_add family).
package parser

import (
	"github.com/ructeam/ruc/lang/ast"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/mode"
	"github.com/ructeam/ruc/lang/pool"
	"github.com/ructeam/ruc/lang/scanner"
	"github.com/ructeam/ruc/lang/symbol"
	"github.com/ructeam/ruc/lang/token"
	"github.com/ructeam/ruc/lang/tree"
)

// Parser consumes a pre-scanned token stream (the preprocessor has
// already expanded macros over it) and builds one translation unit.
type Parser struct {
	toks []scanner.TokenAndValue
	pos  int

	idents *ident.Table
	modes  *mode.Table
	syms   *symbol.Table
	tree   *tree.Tree
	sink   diag.Sink
	fset   *token.FileSet
}

// New creates a parser over a scanned token stream, sharing the given
// interning tables with every other file in the compilation unit.
func New(toks []scanner.TokenAndValue, idents *ident.Table, modes *mode.Table, syms *symbol.Table, tr *tree.Tree, sink diag.Sink, fset *token.FileSet) *Parser {
	return &Parser{toks: toks, idents: idents, modes: modes, syms: syms, tree: tr, sink: sink, fset: fset}
}

func (p *Parser) cur() scanner.TokenAndValue  { return p.toks[p.pos] }
func (p *Parser) kind() token.Token           { return p.toks[p.pos].Token }
func (p *Parser) pos_() token.Pos             { return p.toks[p.pos].Value.Pos }
func (p *Parser) position() token.Position    { return p.fset.Position(p.pos_()) }

func (p *Parser) advance() scanner.TokenAndValue {
	t := p.toks[p.pos]
	if t.Token != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Token) bool { return p.kind() == k }

func (p *Parser) expect(k token.Token) scanner.TokenAndValue {
	if !p.at(k) {
		p.sink.Report(diag.IllFormedType, p.position(), "expected "+k.String()+", got "+p.kind().String())
		return p.cur()
	}
	return p.advance()
}

// ParseFile parses one translation unit to completion and returns its
// root node.
func (p *Parser) ParseFile() tree.Node {
	begin := p.pos_()
	var decls []tree.Node
	for !p.at(token.EOF) {
		if d, ok := p.externalDecl(); ok {
			decls = append(decls, d)
		} else {
			p.advance() // error recovery: skip the offending token
		}
	}
	b := p.tree.NewNode(ast.TranslationUnit, begin, p.pos_()).Int(len(decls))
	for _, d := range decls {
		b.ChildOf(d)
	}
	return p.tree.Commit(b)
}

// externalDecl parses one top-level declaration: a function or a global
// variable/typedef.
func (p *Parser) externalDecl() (tree.Node, bool) {
	begin := p.pos_()
	if p.at(token.TYPEDEF) {
		return p.typeDecl(begin)
	}

	m, ok := p.typeSpec()
	if !ok {
		return tree.Node{}, false
	}
	if !p.at(token.IDENT) {
		p.sink.Report(diag.IllFormedType, p.position(), "expected identifier")
		return tree.Node{}, false
	}
	nameTok := p.advance()
	repr := pool.Handle(nameTok.Value.Repr)

	if p.at(token.LPAREN) {
		return p.funcDeclRest(begin, repr, m)
	}
	return p.varDeclRest(begin, repr, m)
}

// typeSpec parses a base type specifier followed by zero or more '*'
// pointer markers, and returns the resulting mode.
func (p *Parser) typeSpec() (pool.Handle, bool) {
	var base pool.Handle
	switch p.kind() {
	case token.VOID:
		p.advance()
		base = p.modes.IntMode // void carries no storage; treated as int-sized placeholder
	case token.INT_KW:
		p.advance()
		base = p.modes.IntMode
	case token.FLOAT_KW:
		p.advance()
		base = p.modes.FloatMode
	case token.CHAR_KW:
		p.advance()
		base = p.modes.IntMode
	default:
		return pool.NoHandle, false
	}
	for p.at(token.STAR) {
		p.advance()
		base = p.modes.AddPointer(base)
	}
	return base, true
}

// varDeclRest parses the remainder of a variable declaration after its
// type and name: an optional array suffix, an optional initializer, and
// the terminating semicolon.
func (p *Parser) varDeclRest(begin token.Pos, repr pool.Handle, m pool.Handle) (tree.Node, bool) {
	if p.at(token.LBRACK) {
		p.advance()
		length := 0
		if p.at(token.INT) {
			length = int(p.advance().Value.Int)
		}
		p.expect(token.RBRACK)
		m = p.modes.AddArray(m, length)
	}

	hasInit := p.at(token.ASSIGN)
	var init tree.Node
	if hasInit {
		p.advance()
		init = p.assignment()
	}
	p.expect(token.SEMI)

	rec, ok := p.syms.DefineVariable(repr, m)
	if !ok {
		p.sink.Report(diag.DuplicateDefinition, p.position())
	}

	b := p.tree.NewNode(ast.VarDecl, begin, p.pos_()).SetType(m).Int(int(repr)).Int(int(rec))
	if hasInit {
		b.Int(1).ChildOf(init)
	} else {
		b.Int(0).OptionalChildOf(tree.Node{}, false)
	}
	return p.tree.Commit(b), true
}

// typeDecl parses `typedef <type> <name>;`.
func (p *Parser) typeDecl(begin token.Pos) (tree.Node, bool) {
	p.advance() // 'typedef'
	m, ok := p.typeSpec()
	if !ok {
		return tree.Node{}, false
	}
	nameTok := p.expect(token.IDENT)
	repr := pool.Handle(nameTok.Value.Repr)
	p.expect(token.SEMI)

	if _, ok := p.syms.DefineTypeDef(repr, m, 0); !ok {
		p.sink.Report(diag.DuplicateDefinition, p.position())
	}
	b := p.tree.NewNode(ast.TypeDecl, begin, p.pos_()).SetType(m).Int(int(repr))
	return p.tree.Commit(b), true
}

// funcDeclRest parses the remainder of a function declaration/definition
// after its return type and name: a parenthesized parameter list and
// either a compound-statement body or a terminating semicolon
// (predeclaration).
func (p *Parser) funcDeclRest(begin token.Pos, repr pool.Handle, ret pool.Handle) (tree.Node, bool) {
	p.expect(token.LPAREN)

	snap := p.syms.EnterFunc()
	var paramModes []pool.Handle
	var paramNodes []tree.Node
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		pm, ok := p.typeSpec()
		if !ok {
			break
		}
		pnameTok := p.expect(token.IDENT)
		prepr := pool.Handle(pnameTok.Value.Repr)
		prec, ok := p.syms.DefineParam(prepr, pm)
		if !ok {
			p.sink.Report(diag.DuplicateDefinition, p.position())
		}
		paramModes = append(paramModes, pm)
		pb := p.tree.NewNode(ast.VarDecl, begin, p.pos_()).SetType(pm).Int(int(prepr)).Int(int(prec)).Int(0).OptionalChildOf(tree.Node{}, false)
		paramNodes = append(paramNodes, p.tree.Commit(pb))
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)

	fn := p.modes.AddFunction(ret, paramModes)

	if p.at(token.SEMI) {
		p.advance()
		p.syms.ExitFunc(snap)
		if _, ok := p.syms.DefineFunction(repr, fn, 0, true); !ok {
			p.sink.Report(diag.DuplicateDefinition, p.position())
		}
		b := p.tree.NewNode(ast.FuncDecl, begin, p.pos_()).SetType(fn).
			Int(int(repr)).Int(0).Int(len(paramNodes)).Int(0)
		for _, pn := range paramNodes {
			b.ChildOf(pn)
		}
		return p.tree.Commit(b), true
	}

	// A definition is bound in the enclosing scope so that it stays visible
	// after ExitFunc; the function scope is then re-entered and the
	// parameters re-bound in the same order, at the same displacements as
	// the records in paramNodes.
	p.syms.ExitFunc(snap)
	if _, ok := p.syms.DefineFunction(repr, fn, 0, false); !ok {
		p.sink.Report(diag.DuplicateDefinition, p.position())
	}
	snap = p.syms.EnterFunc()
	for i, pn := range paramNodes {
		p.syms.DefineParam(ast.AsVarDecl(pn).Repr(), paramModes[i])
	}
	body := p.compoundStmt()
	frameSize := p.syms.ExitFunc(snap)

	b := p.tree.NewNode(ast.FuncDecl, begin, p.pos_()).SetType(fn).
		Int(int(repr)).Int(1).Int(len(paramNodes)).Int(frameSize)
	for _, pn := range paramNodes {
		b.ChildOf(pn)
	}
	b.ChildOf(body)
	return p.tree.Commit(b), true
}
