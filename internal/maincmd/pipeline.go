package maincmd

import (
	"os"

	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/macro"
	"github.com/ructeam/ruc/lang/mode"
	"github.com/ructeam/ruc/lang/parser"
	"github.com/ructeam/ruc/lang/preprocessor"
	"github.com/ructeam/ruc/lang/scanner"
	"github.com/ructeam/ruc/lang/symbol"
	"github.com/ructeam/ruc/lang/token"
	"github.com/ructeam/ruc/lang/tree"
)

// unit bundles one parsed translation unit with the pools a later phase
// (lang/sema, lang/compiler) needs to keep working against it.
type unit struct {
	Root   tree.Node
	Idents *ident.Table
	Modes  *mode.Table
	Syms   *symbol.Table
	Macros *macro.Store
	Sink   *diag.ListSink
	FSet   *token.FileSet
}

func keywordSpellings() []string {
	out := make([]string, 0, len(token.Keywords))
	for _, k := range token.Keywords {
		out = append(out, k.String())
	}
	return out
}

// parseFile preprocesses, scans and parses one file into a fresh set of
// interning tables, shared by no other file (the CLI compiles each file as
// its own translation unit, same as lang/parser.Parser.ParseFile's
// contract). Macro expansion runs first, the same as
// ruc.Context.CompileFile, so parse, check, compile and disasm show the CLI
// user the same text the compiler actually sees; tokenize does not go
// through here and scans the raw file text.
func parseFile(path string) (*unit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	idents := ident.New()
	idents.Bootstrap(keywordSpellings())
	main := idents.SeedMain()

	modes := mode.New()
	syms := symbol.New(idents, modes)
	syms.SetMain(main)

	macros := macro.New()
	macros.SeedKeywords(keywordSpellings())
	tr := tree.New()
	sink := &diag.ListSink{}

	expanded := preprocessor.Run(string(src), macros, sink)

	fset := token.NewFileSet()
	f := fset.AddFile(path, -1, len(expanded))

	var s scanner.Scanner
	s.Init(f, []byte(expanded), idents, func(pos token.Position, msg string) {
		sink.Errors.Add(pos, msg)
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

	p := parser.New(toks, idents, modes, syms, tr, sink, fset)
	root := p.ParseFile()

	return &unit{Root: root, Idents: idents, Modes: modes, Syms: syms, Macros: macros, Sink: sink, FSet: fset}, nil
}
