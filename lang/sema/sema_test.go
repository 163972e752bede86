package sema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/ident"
	"github.com/ructeam/ruc/lang/mode"
	"github.com/ructeam/ruc/lang/symbol"
	"github.com/ructeam/ruc/lang/token"
)

func newFixture() (*symbol.Table, *ident.Table, *mode.Table) {
	idents := ident.New()
	modes := mode.New()
	syms := symbol.New(idents, modes)
	return syms, idents, modes
}

func TestCheckPassesWhenMainDefinedAndNoPendingPredeclarations(t *testing.T) {
	syms, idents, modes := newFixture()
	main := idents.Intern("main")
	syms.SetMain(main)

	fn := modes.AddFunction(modes.IntMode, nil)
	_, ok := syms.DefineFunction(main, fn, 0, false)
	require.True(t, ok, "DefineFunction(main) failed")

	var sink diag.ListSink
	Check(syms, &sink, token.Position{})
	require.NoError(t, sink.Err())
}

func TestCheckReportsNoMain(t *testing.T) {
	syms, idents, _ := newFixture()
	syms.SetMain(idents.Intern("main"))

	var sink diag.ListSink
	Check(syms, &sink, token.Position{})
	require.Error(t, sink.Err(), "expected a no-main diagnostic")
}

func TestCheckReportsPendingPredeclaration(t *testing.T) {
	syms, idents, modes := newFixture()
	main := idents.Intern("main")
	syms.SetMain(main)
	_, ok := syms.DefineFunction(main, modes.AddFunction(modes.IntMode, nil), 0, false)
	require.True(t, ok, "DefineFunction(main) failed")

	f := idents.Intern("f")
	fn := modes.AddFunction(modes.IntMode, nil)
	_, ok = syms.DefineFunction(f, fn, 0, true)
	require.True(t, ok, "DefineFunction(f, predeclare) failed")

	var sink diag.ListSink
	Check(syms, &sink, token.Position{})
	require.Error(t, sink.Err(), "expected a predeclared-but-undefined diagnostic")
}

func TestCheckReportsUndefinedLabel(t *testing.T) {
	syms, idents, modes := newFixture()
	main := idents.Intern("main")
	syms.SetMain(main)
	_, ok := syms.DefineFunction(main, modes.AddFunction(modes.IntMode, nil), 0, false)
	require.True(t, ok, "DefineFunction(main) failed")

	snap := syms.EnterFunc()
	syms.ReferenceLabel(idents.Intern("done")) // goto done; with no matching label
	syms.ExitFunc(snap)

	var sink diag.ListSink
	Check(syms, &sink, token.Position{})
	require.Error(t, sink.Err(), "expected an undefined-identifier diagnostic for the unresolved label")
}

func TestCheckPassesWhenLabelIsDefined(t *testing.T) {
	syms, idents, modes := newFixture()
	main := idents.Intern("main")
	syms.SetMain(main)
	_, ok := syms.DefineFunction(main, modes.AddFunction(modes.IntMode, nil), 0, false)
	require.True(t, ok, "DefineFunction(main) failed")

	snap := syms.EnterFunc()
	done := idents.Intern("done")
	syms.ReferenceLabel(done)
	_, ok = syms.DefineLabel(done, 42)
	require.True(t, ok, "DefineLabel(done) failed")
	syms.ExitFunc(snap)

	var sink diag.ListSink
	Check(syms, &sink, token.Position{})
	require.NoError(t, sink.Err())
}
