package maincmd

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/mna/mainer"
	"github.com/ructeam/ruc/lang/compiler"
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/sema"
	"github.com/ructeam/ruc/lang/vm"
)

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	prog, err := compileOne(stdio, args[0])
	if err != nil || prog == nil {
		return err
	}
	for _, cell := range prog.Code {
		if werr := binary.Write(stdio.Stdout, binary.LittleEndian, int64(cell)); werr != nil {
			return werr
		}
	}
	return nil
}

func (c *Cmd) Disasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	prog, err := compileOne(stdio, args[0])
	if err != nil || prog == nil {
		return err
	}
	return vm.Disassemble(stdio.Stdout, prog)
}

// compileOne runs the full parse/check/compile pipeline over a single file.
// It returns a nil *compiler.Program (and nil error) only when diagnostics
// were already printed and the caller should exit with a failure code.
func compileOne(stdio mainer.Stdio, path string) (*compiler.Program, error) {
	u, err := parseFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
		return nil, err
	}
	if perr := u.Sink.Err(); perr != nil {
		diag.PrintError(stdio.Stderr, perr)
		return nil, nil
	}

	pos := u.FSet.Position(u.Root.Begin())
	sema.Check(u.Syms, u.Sink, pos)
	if serr := u.Sink.Err(); serr != nil {
		diag.PrintError(stdio.Stderr, serr)
		return nil, nil
	}

	comp := compiler.New(u.Syms, u.Modes, u.Sink)
	prog := comp.Compile(u.Root)
	if cerr := u.Sink.Err(); cerr != nil {
		diag.PrintError(stdio.Stderr, cerr)
		return nil, nil
	}
	return prog, nil
}
