package nfa

import "testing"

// driveDFA is a tiny in-package subset-construction driver used only to
// exercise a compiled NFA end-to-end in these tests, without depending on
// the dfa package (which itself depends on nfa). It implements exactly the
// closure rules the dfa package implements, kept deliberately minimal. It
// reports whether a match state was reached at any point while consuming
// input (including before the first byte).
func driveDFA(t *testing.T, n *NFA, input []byte) bool {
	t.Helper()

	closure := func(seeds []StateID, atStart bool) (set []StateID, isMatch bool) {
		visited := make(map[StateID]bool)
		stack := append([]StateID(nil), seeds...)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if id == InvalidState || visited[id] {
				continue
			}
			visited[id] = true
			s := n.State(id)
			switch s.Kind() {
			case StateMatch:
				isMatch = true
				set = append(set, id)
			case StateFail, StateByteRange, StateSparse:
				set = append(set, id)
			case StateSplit:
				l, r := s.Split()
				stack = append(stack, l, r)
			case StateEpsilon:
				stack = append(stack, s.Epsilon())
			case StateLook:
				look, next := s.LookAssertion()
				switch look {
				case LookStartText, LookStartLine:
					if atStart {
						stack = append(stack, next)
					}
				case LookEndText, LookEndLine:
				case LookWordBoundary, LookNoWordBoundary:
					stack = append(stack, next)
				}
			}
		}
		return set, isMatch
	}

	set, matched := closure([]StateID{n.Start()}, true)
	for _, b := range input {
		var seeds []StateID
		for _, id := range set {
			s := n.State(id)
			switch s.Kind() {
			case StateByteRange:
				lo, hi, next := s.ByteRange()
				if b >= lo && b <= hi {
					seeds = append(seeds, next)
				}
			case StateSparse:
				for _, tr := range s.Sparse() {
					if b >= tr.Lo && b <= tr.Hi {
						seeds = append(seeds, tr.Next)
					}
				}
			}
		}
		var isMatch bool
		set, isMatch = closure(seeds, false)
		matched = matched || isMatch
	}
	return matched
}

func TestCompileUnanchoredFindsMatchAnywhere(t *testing.T) {
	forward, _, err := Compile("abc", DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !driveDFA(t, forward, []byte("xxxabcyyy")) {
		t.Fatal("expected unanchored forward NFA to match substring")
	}
	if driveDFA(t, forward, []byte("xxxxxxxxx")) {
		t.Fatal("expected no match")
	}
}

func TestCompilePlusLoop(t *testing.T) {
	forward, _, err := Compile("a+", DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !driveDFA(t, forward, []byte("aaaa")) {
		t.Fatal("expected a+ to match run of a's")
	}
	if driveDFA(t, forward, []byte("")) {
		t.Fatal("expected a+ not to match empty input")
	}
}

func TestCompileAlternateAndClass(t *testing.T) {
	forward, _, err := Compile("d[a-z]+g", DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !driveDFA(t, forward, []byte("xdogx")) {
		t.Fatal("expected d[a-z]+g to match 'dog'")
	}

	alt, _, err := Compile("cat|dog", DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !driveDFA(t, alt, []byte("xdogx")) {
		t.Fatal("expected cat|dog to match 'dog'")
	}
	if driveDFA(t, alt, []byte("xcowx")) {
		t.Fatal("expected cat|dog not to match 'cow'")
	}
}

func TestCompileRepeatBounded(t *testing.T) {
	forward, _, err := Compile("a{2,3}", DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !driveDFA(t, forward, []byte("aa")) {
		t.Fatal("expected a{2,3} to match 'aa'")
	}
	if driveDFA(t, forward, []byte("a")) {
		t.Fatal("expected a{2,3} not to match 'a' alone")
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	_, _, err := Compile("(unclosed", DefaultCompilerConfig())
	if err == nil {
		t.Fatal("expected an error for unclosed group")
	}
}
