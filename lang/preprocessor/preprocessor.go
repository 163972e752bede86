// Package preprocessor performs macro substitution over the source text
// before it is scanned and parsed, consulting the shared macro store for
// macro names and inlining argument text in place of parameters (spec.md
// §4.5, scenario 5 of §8: "#define SQ(x) x*x then SQ(1+2) ... inlines
// 1+2*1+2" — textual substitution, no parenthesization, by design).
package preprocessor

import (
	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/macro"
	"github.com/ructeam/ruc/lang/scanner"
	"github.com/ructeam/ruc/lang/token"
)

// runeStream adapts a []rune slice to macro.CodeReader.
type runeStream struct {
	rs []rune
	i  int
}

func (r *runeStream) Peek() (rune, bool) {
	if r.i >= len(r.rs) {
		return 0, false
	}
	return r.rs[r.i], true
}
func (r *runeStream) Advance() { r.i++ }

// Expand rewrites a defined, object-like or function-like macro
// invocation's replacement text given the caller's argument texts,
// substituting each formal parameter occurrence with the corresponding
// actual argument text (plain textual substitution: spec.md explicitly
// documents no auto-parenthesization).
func Expand(store *macro.Store, index int, args []string) string {
	repl := store.Replacement(index)
	n := store.ParamCount(index)
	if n == 0 {
		return repl
	}

	paramIndex := make(map[string]int, n)
	for i := 0; i < n; i++ {
		paramIndex[store.Param(index, i)] = i
	}

	var out []rune
	rs := []rune(repl)
	for i := 0; i < len(rs); {
		if isIdentStart(rs[i]) {
			start := i
			for i < len(rs) && isIdentPart(rs[i]) {
				i++
			}
			word := string(rs[start:i])
			if pi, ok := paramIndex[word]; ok && pi < len(args) {
				out = append(out, []rune(args[pi])...)
				continue
			}
			out = append(out, rs[start:i]...)
			continue
		}
		out = append(out, rs[i])
		i++
	}
	return string(out)
}

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
func isIdentPart(r rune) bool {
	return isIdentStart(r) || ('0' <= r && r <= '9')
}

// Define registers an object-like or function-like #define, bootstrapping
// the store's trie/record/string layout (spec.md §4.5 "add"/"add_with_params").
// It reports diag.BadMacroDefinition if name collides with an existing
// binding.
func Define(store *macro.Store, sink diag.Sink, pos token.Position, name, replacement string, params []string) {
	var ok bool
	if len(params) == 0 {
		_, ok = store.Add(name, replacement)
	} else {
		_, ok = store.AddWithParams(name, replacement, params)
	}
	if !ok {
		sink.Report(diag.BadMacroDefinition, pos, name)
	}
}
