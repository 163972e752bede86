// Package diag defines the diagnostic vocabulary shared by every phase of
// the compiler core. The core never formats messages itself (spec.md §6):
// it reports a Kind and optional arguments to a caller-supplied Sink, which
// is free to render them however the surrounding tool wants.
package diag

import (
	"fmt"
	"go/scanner"
	"go/token"
)

// Error and ErrorList are re-exported from go/scanner, the same re-export
// idiom the teacher uses for its own diagnostics: a sorted, positioned list
// of errors that already knows how to print itself.
type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
	Position  = token.Position
)

var PrintError = scanner.PrintError

// Kind identifies the category of a diagnostic without committing to any
// particular message text (spec.md §7).
type Kind uint8

const (
	_ Kind = iota
	NoMain
	PredeclaredButUndefined
	DuplicateDefinition
	BadScopeExit
	PoolExhausted
	IllFormedType
	UndefinedIdentifier
	ArityMismatch
	BadMacroDefinition
	UnterminatedMacroArgument
)

var kindNames = [...]string{
	NoMain:                    "no-main",
	PredeclaredButUndefined:   "predeclared-but-undefined",
	DuplicateDefinition:       "duplicate-definition",
	BadScopeExit:              "bad-scope-exit",
	PoolExhausted:             "pool-exhausted",
	IllFormedType:             "ill-formed-type",
	UndefinedIdentifier:       "undefined-identifier",
	ArityMismatch:             "arity-mismatch",
	BadMacroDefinition:        "bad-macro-definition",
	UnterminatedMacroArgument: "unterminated-macro-argument",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown-diagnostic"
	}
	return kindNames[k]
}

// Sink receives diagnostics from the core (spec.md §6: "the core calls into
// a caller-supplied error sink with an error kind and optional arguments; it
// never formats messages itself").
type Sink interface {
	Report(kind Kind, pos Position, args ...any)
}

// ListSink is the default Sink: it renders each diagnostic as "<kind>:
// <args...>" and appends it to an underlying go/scanner.ErrorList, ready for
// Sort and Err. It plays the same role as the resolver's r.errorf in the
// teacher repo, generalized to carry a Kind instead of only a free-form
// string.
type ListSink struct {
	Errors ErrorList
}

var _ Sink = (*ListSink)(nil)

func (s *ListSink) Report(kind Kind, pos Position, args ...any) {
	msg := kind.String()
	if len(args) > 0 {
		msg += ": " + fmt.Sprint(args...)
	}
	s.Errors.Add(pos, msg)
}

// Err returns the accumulated errors, sorted, or nil if there are none. It
// mirrors go/scanner.ErrorList.Err.
func (s *ListSink) Err() error {
	s.Errors.Sort()
	return s.Errors.Err()
}
