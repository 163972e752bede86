// Package ruc ties together the four interning pools a compilation unit
// shares (lang/ident, lang/mode, lang/symbol, lang/macro) plus the AST tape
// (lang/tree) they feed into, the way spec.md §9's design notes describe:
// every phase takes these as explicit, caller-owned arguments rather than
// reaching for package-level globals, so nothing here is a singleton.
package ruc

import (
	"os"

	"github.com/ructeam/ruc/lang/compiler"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/macro"
	"github.com/ructeam/ruc/lang/mode"
	"github.com/ructeam/ruc/lang/parser"
	"github.com/ructeam/ruc/lang/preprocessor"
	"github.com/ructeam/ruc/lang/scanner"
	"github.com/ructeam/ruc/lang/sema"
	"github.com/ructeam/ruc/lang/symbol"
	"github.com/ructeam/ruc/lang/token"
	"github.com/ructeam/ruc/lang/tree"
)

// Context owns every pool one compilation of a single translation unit
// needs. Repeated CompileFile calls on one Context compile each file against
// the same pools; nothing here is shared process-wide.
type Context struct {
	Idents *ident.Table
	Modes  *mode.Table
	Syms   *symbol.Table
	Macros *macro.Store
	Tree   *tree.Tree
	FSet   *token.FileSet
	Sink   diag.Sink
}

// NewContext creates a fresh set of pools, bootstrapped with RuC's keyword
// list and a seeded `main` binding, ready for one file's preprocess/scan/
// parse/check/compile pipeline.
func NewContext(sink diag.Sink) *Context {
	idents := ident.New()
	idents.Bootstrap(keywordSpellings())
	main := idents.SeedMain()

	modes := mode.New()
	syms := symbol.New(idents, modes)
	syms.SetMain(main)

	macros := macro.New()
	macros.SeedKeywords(keywordSpellings())

	return &Context{
		Idents: idents,
		Modes:  modes,
		Syms:   syms,
		Macros: macros,
		Tree:   tree.New(),
		FSet:   token.NewFileSet(),
		Sink:   sink,
	}
}

func keywordSpellings() []string {
	out := make([]string, 0, len(token.Keywords))
	for _, k := range token.Keywords {
		out = append(out, k.String())
	}
	return out
}

// CompileFile runs the full pipeline over one source file: preprocess,
// scan, parse, semantic check, and bytecode emission.
func (c *Context) CompileFile(path string) (*compiler.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := preprocessor.Run(string(src), c.Macros, c.Sink)

	f := c.FSet.AddFile(path, -1, len(expanded))

	var s scanner.Scanner
	s.Init(f, []byte(expanded), c.Idents, func(pos token.Position, msg string) {
		c.Sink.Report(diag.IllFormedType, pos, msg)
	})

	var toks []scanner.TokenAndValue
	for {
		var v scanner.Value
		tok := s.Scan(&v)
		toks = append(toks, scanner.TokenAndValue{Token: tok, Value: v})
		if tok == token.EOF {
			break
		}
	}

	p := parser.New(toks, c.Idents, c.Modes, c.Syms, c.Tree, c.Sink, c.FSet)
	root := p.ParseFile()

	sema.Check(c.Syms, c.Sink, c.FSet.Position(root.Begin()))

	comp := compiler.New(c.Syms, c.Modes, c.Sink)
	return comp.Compile(root), nil
}
