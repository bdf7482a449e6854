package ringsearch

import "github.com/coregx/ringsearch/automaton"

// slot is the per-registered-pattern state a Searcher advances on every
// Push: its compiled pattern, the forward DFA's current state, and the
// match-flag bookkeeping the edge-trigger policy (§4.2) depends on.
type slot struct {
	pattern automaton.Pattern

	forwardState automaton.StateID
	isMatch      bool
	wasMatch     bool
}

// newSlot initialises a slot as specified: forwardState at the forward
// automaton's start state, isMatch and wasMatch both false regardless of
// what the start state itself reports. Hard-coding isMatch false (rather
// than deriving it from IsMatchState(StartState())) is deliberate: it keeps
// the very first pushed byte from spuriously closing a match window that
// never actually opened.
func newSlot(p automaton.Pattern) slot {
	return slot{
		pattern:      p,
		forwardState: p.Forward.StartState(),
		isMatch:      false,
		wasMatch:     false,
	}
}

// advance steps the slot's forward DFA by one byte, applying the dead-state
// reset (§4.2) and updating the was-match/is-match bookkeeping the edge
// trigger needs.
func (s *slot) advance(b byte) {
	next := s.pattern.Forward.NextState(s.forwardState, b)
	isMatch := s.pattern.Forward.IsMatchState(next)
	if s.pattern.Forward.IsDeadState(next) {
		next = s.pattern.Forward.StartState()
	}
	s.wasMatch = s.isMatch
	s.isMatch = isMatch
	s.forwardState = next
}

// edgeTriggered reports whether this slot just closed a match: it was in a
// match state after the previous byte and is not after this one.
func (s *slot) edgeTriggered() bool {
	return s.wasMatch && !s.isMatch
}
