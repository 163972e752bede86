package maincmd

import (
	"context"

	"github.com/mna/mainer"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/printer"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, args...)
}

func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, path := range files {
		u, err := parseFile(path)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		pr := printer.Printer{Output: stdio.Stdout, Idents: u.Idents, Modes: u.Modes}
		pr.PrintUnit(u.Root)
		if perr := u.Sink.Err(); perr != nil {
			diag.PrintError(stdio.Stderr, perr)
			if firstErr == nil {
				firstErr = perr
			}
		}
	}
	return firstErr
}
