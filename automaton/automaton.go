// Package automaton defines the abstract per-byte stepping interface the
// root searcher drives, and a string-to-Pattern compiler that wires the nfa
// and dfa packages together to satisfy it.
//
// The interface is deliberately minimal and position-oblivious: no haystack,
// no "where am I in the stream" argument. That is what makes it safe to
// drive with exactly one byte at a time from a ring buffer that never holds
// the whole input.
package automaton

import (
	"github.com/coregx/ringsearch/dfa"
	"github.com/coregx/ringsearch/literal"
	"github.com/coregx/ringsearch/nfa"
)

// StateID identifies a state within a single Automaton. Automatons do not
// share a StateID space: a StateID is only meaningful paired with the
// Automaton that produced it.
type StateID uint32

// Automaton is a deterministic, byte-driven state machine: the forward or
// reverse half of a compiled Pattern.
type Automaton interface {
	// StartState returns the state to begin matching from.
	StartState() StateID
	// NextState returns the state reached from state by consuming b.
	NextState(state StateID, b byte) StateID
	// IsMatchState reports whether state is an accepting state.
	IsMatchState(state StateID) bool
	// IsDeadState reports whether state can never lead to a match.
	IsDeadState(state StateID) bool
}

// Pattern is a compiled regular expression, ready to drive a streaming
// search: Forward steps byte-by-byte as input arrives, and Reverse recovers
// a match's start position by stepping byte-by-byte backwards through
// already-seen input once Forward signals a match has closed.
type Pattern struct {
	Forward Automaton
	Reverse Automaton

	source  string
	literal literal.Literal
}

// Source returns the pattern string this Pattern was compiled from.
func (p Pattern) Source() string { return p.source }

// LiteralPrefix returns the literal prefix extracted from the pattern
// (e.g. "abc" for `abc[0-9]+`) and whether the pattern reduces entirely to
// that literal (exact == true means the whole pattern is the literal, with
// no further variable structure).
func (p Pattern) LiteralPrefix() (prefix string, exact bool) {
	return string(p.literal.Bytes), p.literal.Complete
}

// Compile parses pattern and builds a Pattern from it. It returns a
// *CompileError wrapping the underlying nfa compilation failure on bad
// syntax; the root package translates this into its own InvalidPattern error
// when registering a pattern by string.
func Compile(pattern string) (Pattern, error) {
	forwardNFA, reverseNFA, err := nfa.Compile(pattern, nfa.DefaultCompilerConfig())
	if err != nil {
		return Pattern{}, &CompileError{Pattern: pattern, Err: err}
	}

	return Pattern{
		Forward: &dfaAutomaton{dfa.Compile(forwardNFA)},
		Reverse: &dfaAutomaton{dfa.Compile(reverseNFA)},
		source:  pattern,
		literal: literal.ExtractPrefix(pattern),
	}, nil
}

// dfaAutomaton adapts a *dfa.DFA (whose StateID is a distinct type) to the
// Automaton interface's StateID.
type dfaAutomaton struct {
	d *dfa.DFA
}

func (a *dfaAutomaton) StartState() StateID {
	return StateID(a.d.StartState())
}

func (a *dfaAutomaton) NextState(state StateID, b byte) StateID {
	return StateID(a.d.NextState(dfa.StateID(state), b))
}

func (a *dfaAutomaton) IsMatchState(state StateID) bool {
	return a.d.IsMatchState(dfa.StateID(state))
}

func (a *dfaAutomaton) IsDeadState(state StateID) bool {
	return a.d.IsDeadState(dfa.StateID(state))
}
