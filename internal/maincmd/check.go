package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/sema"
)

func (c *Cmd) Check(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CheckFiles(ctx, stdio, args...)
}

// CheckFiles parses each file and reports parse and semantic diagnostics
// (spec.md §4.7's MainBound and empty-PendingPredeclarations invariants),
// without emitting bytecode.
func CheckFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, path := range files {
		u, err := parseFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		pos := u.FSet.Position(u.Root.Begin())
		sema.Check(u.Syms, u.Sink, pos)

		if serr := u.Sink.Err(); serr != nil {
			diag.PrintError(stdio.Stderr, serr)
			if firstErr == nil {
				firstErr = serr
			}
			continue
		}
		fmt.Fprintf(stdio.Stdout, "%s: ok\n", path)
	}
	return firstErr
}
