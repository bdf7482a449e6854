package dfa

import (
	"testing"

	"github.com/coregx/ringsearch/nfa"
)

func drive(d *DFA, input []byte) (matched bool, dead bool) {
	state := d.StartState()
	if d.IsDeadState(state) {
		return false, true
	}
	if d.IsMatchState(state) {
		matched = true
	}
	for _, b := range input {
		state = d.NextState(state, b)
		if d.IsDeadState(state) {
			return matched, true
		}
		if d.IsMatchState(state) {
			matched = true
		}
	}
	return matched, false
}

func TestDeadStateIsStateZero(t *testing.T) {
	forward, _, err := nfa.Compile("abc", nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("nfa.Compile: %v", err)
	}
	d := Compile(forward)
	if !d.IsDeadState(DeadStateID) {
		t.Fatalf("IsDeadState(DeadStateID) = false, want true")
	}
	if d.IsMatchState(DeadStateID) {
		t.Fatalf("IsMatchState(DeadStateID) = true, want false")
	}
}

func TestNextStateMatchesLiteral(t *testing.T) {
	forward, _, err := nfa.Compile("abc", nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("nfa.Compile: %v", err)
	}
	d := Compile(forward)

	matched, dead := drive(d, []byte("xxabcyy"))
	if dead {
		t.Fatalf("unanchored 'abc' went dead scanning 'xxabcyy'")
	}
	if !matched {
		t.Fatal("expected 'abc' to match within 'xxabcyy'")
	}
}

func TestNextStateNoMatchOnUnrelatedInput(t *testing.T) {
	forward, _, err := nfa.Compile("abc", nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("nfa.Compile: %v", err)
	}
	d := Compile(forward)

	matched, _ := drive(d, []byte("xyz"))
	if matched {
		t.Fatal("expected no match for 'xyz' against pattern 'abc'")
	}
}

func TestPlusLoopStaysLive(t *testing.T) {
	forward, _, err := nfa.Compile("a+", nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("nfa.Compile: %v", err)
	}
	d := Compile(forward)

	state := d.StartState()
	for i, b := range []byte("aaaa") {
		state = d.NextState(state, b)
		if d.IsDeadState(state) {
			t.Fatalf("byte %d: unexpectedly dead", i)
		}
		if !d.IsMatchState(state) {
			t.Fatalf("byte %d: expected match state after consuming an 'a'", i)
		}
	}

	// The unanchored .*? prefix keeps the start alive at every position, so
	// a single unrelated byte shouldn't falsely report a match.
	fresh := Compile(forward)
	afterX := fresh.NextState(fresh.StartState(), 'x')
	if fresh.IsMatchState(afterX) {
		t.Fatal("expected no match immediately after a single 'x'")
	}
}

func TestStartAnchorOnlySatisfiedAtStart(t *testing.T) {
	// In the forward DFA, ^ is satisfied only in the closure StartState
	// computes, never in one NextState computes: "abc" fed from the start
	// matches, "xabc" does not. The reverse NFA folds look states into plain
	// epsilons, so its start state is live.
	forward, reverse, err := nfa.Compile("^abc", nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("nfa.Compile: %v", err)
	}
	fwd := Compile(forward)
	if matched, _ := drive(fwd, []byte("abc")); !matched {
		t.Fatal("expected ^abc to match 'abc' fed from the start")
	}
	if matched, _ := drive(fwd, []byte("xabc")); matched {
		t.Fatal("expected ^abc not to match 'abc' after a leading 'x'")
	}

	d := Compile(reverse)
	start := d.StartState()
	if d.IsDeadState(start) {
		t.Fatal("StartState for ^abc reverse DFA should not be dead")
	}
}

func TestIsMatchStateOnBareEmptyPattern(t *testing.T) {
	forward, _, err := nfa.Compile("", nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("nfa.Compile: %v", err)
	}
	d := Compile(forward)
	if !d.IsMatchState(d.StartState()) {
		t.Fatal("expected empty pattern to match at the start")
	}
}

func TestNextStateMemoizesPerByte(t *testing.T) {
	forward, _, err := nfa.Compile("a[bc]d", nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("nfa.Compile: %v", err)
	}
	d := Compile(forward)
	start := d.StartState()

	first := d.NextState(start, 'a')
	second := d.NextState(start, 'a')
	if first != second {
		t.Fatalf("NextState(start, 'a') not stable across calls: %d vs %d", first, second)
	}
}

func TestDeterminizationDedupesIdenticalClosures(t *testing.T) {
	// regexp/syntax folds "a|a" into the single literal "a". After an
	// unrelated byte the unanchored prefix rebuilds exactly the start
	// closure, which must be deduplicated to the start state's StateID.
	forward, _, err := nfa.Compile("a|a", nfa.DefaultCompilerConfig())
	if err != nil {
		t.Fatalf("nfa.Compile: %v", err)
	}
	d := Compile(forward)
	start := d.StartState()
	if next := d.NextState(start, 'z'); next != start {
		t.Fatalf("NextState(start, 'z') = %d, want the start state %d", next, start)
	}
	matched, dead := drive(d, []byte("za"))
	if dead {
		t.Fatal("unexpectedly dead")
	}
	if !matched {
		t.Fatal("expected 'a|a' to match")
	}
}
