// Package literal extracts literal prefixes from regex patterns.
//
// This is a trimmed descendant of a fuller prefilter-extraction package: a
// batch regex engine can use extracted literals to skip over non-matching
// text with a fast substring search before ever running its automaton. A
// byte-at-a-time streaming searcher can't do that (there is no resident
// haystack to pre-scan), so only the AST-level extraction itself survives
// here, exposed as descriptive metadata on a compiled Pattern rather than as
// a prefilter.
package literal

import "regexp/syntax"

// Literal is a literal byte sequence extracted from a regex pattern.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// String renders l for debugging.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// ExtractPrefix returns the literal prefix of pattern as a Literal (e.g.
// Bytes "abc", Complete false for `abc[0-9]+`): Complete reports whether the
// pattern reduces entirely to that literal with no further variable
// structure. An unparseable pattern or one with no literal prefix (e.g. one
// starting with a character class or `.`) returns a zero Literal.
func ExtractPrefix(pattern string) Literal {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return Literal{}
	}
	re = re.Simplify()

	lit, exact := extractPrefix(re)
	return Literal{Bytes: []byte(string(lit)), Complete: exact}
}

// extractPrefix walks re's AST collecting a leading run of OpLiteral runes,
// returning whether the entire pattern was consumed as that run (exact).
func extractPrefix(re *syntax.Regexp) (lit []rune, exact bool) {
	switch re.Op {
	case syntax.OpLiteral:
		return append([]rune(nil), re.Rune...), true
	case syntax.OpConcat:
		var out []rune
		for i, sub := range re.Sub {
			subLit, subExact := extractPrefix(sub)
			out = append(out, subLit...)
			if !subExact {
				return out, false
			}
			if i == len(re.Sub)-1 {
				return out, true
			}
		}
		return out, true
	case syntax.OpCapture:
		return extractPrefix(re.Sub[0])
	case syntax.OpBeginText:
		return nil, true
	default:
		return nil, false
	}
}
