package preprocessor

import (
	"strings"

	"github.com/ructeam/ruc/lang/diag"
	"github.com/ructeam/ruc/lang/macro"
	"github.com/ructeam/ruc/lang/token"
)

// Run is the driver the parser's doc comment promises ("the preprocessor
// has already expanded macros over it"): a single textual pass that
// strips `#define` directives into store, then substitutes every
// remaining macro invocation with Expand's parameter-inlined text. It does
// not rescan its own output for nested macro references (spec.md's
// textual-substitution model is documented only for the one-level case in
// scenario 5); a macro whose replacement mentions another macro is left
// unexpanded a second time.
func Run(src string, store *macro.Store, sink diag.Sink) string {
	var body strings.Builder
	for _, line := range strings.Split(src, "\n") {
		if name, params, repl, ok := parseDefine(line); ok {
			Define(store, sink, token.Position{}, name, repl, params)
			body.WriteByte('\n') // preserve line numbering for later diagnostics
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	return substitute(body.String(), store, sink)
}

// parseDefine recognizes `#define NAME body` and `#define NAME(p1,p2) body`,
// trimmed of leading/trailing whitespace. It reports ok=false for any line
// that isn't a #define.
func parseDefine(line string) (name string, params []string, repl string, ok bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "#define") {
		return "", nil, "", false
	}
	rest := strings.TrimSpace(t[len("#define"):])
	if rest == "" {
		return "", nil, "", false
	}

	i := 0
	for i < len(rest) && isIdentPart(rune(rest[i])) {
		i++
	}
	name = rest[:i]
	if name == "" {
		return "", nil, "", false
	}
	rest = rest[i:]

	if strings.HasPrefix(rest, "(") {
		closeParen := strings.IndexByte(rest, ')')
		if closeParen < 0 {
			return "", nil, "", false
		}
		plist := rest[1:closeParen]
		if strings.TrimSpace(plist) != "" {
			for _, p := range strings.Split(plist, ",") {
				params = append(params, strings.TrimSpace(p))
			}
		}
		rest = rest[closeParen+1:]
	}

	repl = strings.TrimSpace(rest)
	return name, params, repl, true
}

// substitute replaces every macro invocation found in text, matching
// object-like macros outright and reading a parenthesized, comma-split
// argument list for function-like ones.
func substitute(text string, store *macro.Store, sink diag.Sink) string {
	rs := []rune(text)
	var out strings.Builder
	for i := 0; i < len(rs); {
		if !isIdentStart(rs[i]) {
			out.WriteRune(rs[i])
			i++
			continue
		}
		start := i
		for i < len(rs) && isIdentPart(rs[i]) {
			i++
		}
		name := string(rs[start:i])

		idx, found := store.GetIndex(name)
		if !found {
			out.WriteString(name)
			continue
		}

		if store.ParamCount(idx) == 0 {
			out.WriteString(Expand(store, idx, nil))
			continue
		}

		j := i
		for j < len(rs) && (rs[j] == ' ' || rs[j] == '\t') {
			j++
		}
		if j >= len(rs) || rs[j] != '(' {
			out.WriteString(name) // function-like macro named without a call: leave as-is
			continue
		}

		args, next, ok := readArgs(rs, j)
		if !ok {
			sink.Report(diag.UnterminatedMacroArgument, token.Position{}, name)
			out.WriteString(name)
			continue
		}
		out.WriteString(Expand(store, idx, args))
		i = next
	}
	return out.String()
}

// readArgs parses a comma-separated, parenthesis-balanced argument list
// starting at rs[open] == '(' and returns the arguments' raw text and the
// index just past the matching ')'.
func readArgs(rs []rune, open int) (args []string, next int, ok bool) {
	depth := 0
	var cur strings.Builder
	for i := open; i < len(rs); i++ {
		switch rs[i] {
		case '(':
			depth++
			if depth > 1 {
				cur.WriteRune(rs[i])
			}
		case ')':
			depth--
			if depth == 0 {
				args = append(args, strings.TrimSpace(cur.String()))
				return args, i + 1, true
			}
			cur.WriteRune(rs[i])
		case ',':
			if depth == 1 {
				args = append(args, strings.TrimSpace(cur.String()))
				cur.Reset()
			} else {
				cur.WriteRune(rs[i])
			}
		default:
			cur.WriteRune(rs[i])
		}
	}
	return nil, 0, false
}
