package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/scanner"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	idents := ident.New()
	idents.Bootstrap(keywordSpellings())
	idents.SeedMain()

	fs, toksByFile, err := scanner.ScanFiles(ctx, idents, files...)
	for _, toks := range toksByFile {
		for _, tv := range toks {
			pos := fs.Position(tv.Value.Pos)
			fmt.Fprintf(stdio.Stdout, "%s: %s", pos, tv.Token)
			if tv.Value.Raw != "" {
				fmt.Fprintf(stdio.Stdout, " %q", tv.Value.Raw)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	if err != nil {
		diag.PrintError(stdio.Stderr, err)
	}
	return err
}
