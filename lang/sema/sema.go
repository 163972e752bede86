// Package sema implements the semantic check of spec.md §4.7: a post-parse
// pass enforcing three global invariants over a lang/symbol.Table. It mutates
// nothing — a violation produces a diagnostic, the tree is left as-is for
// whatever downstream pass or tool wants to inspect it anyway.
package sema

import (
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/symbol"
	"github.com/ructeam/ruc/lang/token"
)

// Check enforces spec.md §4.7's global invariants:
//
//   - "main" has been bound to a function definition.
//   - the predeclaration list is empty (every declared function was
//     defined).
//   - the pending-label list is empty (every goto target was defined
//     somewhere in its function), per SPEC_FULL.md §3's "goto/label forward
//     references" supplement.
//
// pos is attached to every diagnostic raised here; callers typically pass
// the end-of-file position since none of these invariants names a single
// source location.
func Check(syms *symbol.Table, sink diag.Sink, pos token.Position) {
	if !syms.MainBound() {
		sink.Report(diag.NoMain, pos)
	}
	for _, repr := range syms.PendingPredeclarations() {
		sink.Report(diag.PredeclaredButUndefined, pos, repr)
	}
	for _, repr := range syms.PendingLabels() {
		sink.Report(diag.UndefinedIdentifier, pos, repr)
	}
}
