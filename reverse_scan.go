package ringsearch

import "github.com/coregx/ringsearch/automaton"

// rfindLen runs the reverse-scan start-recovery algorithm (§4.3) over the
// ring's retained bytes, newest to oldest, skipping the first `skip` bytes
// (the most-recently-pushed ones, which lie outside the match being
// recovered).
//
// It returns the length of the longest reverse run the reverse automaton
// accepts, and whether any length was found at all — the reverse DFA's
// start state itself may already be dead, in which case there is nothing to
// report. The reverse automaton's own matched-longest-run semantics (it
// keeps updating the candidate length as long as it stays alive, rather
// than stopping at the first match) is what gives the combined system
// leftmost-longest match behaviour; substituting "first match" here would
// be wrong.
func rfindLen(a automaton.Automaton, ring *Ring, skip int) (length int, ok bool) {
	head, tail := ring.AsSlices()
	total := len(head) + len(tail)

	byteAt := func(logicalIndex int) byte {
		if logicalIndex < len(head) {
			return head[logicalIndex]
		}
		return tail[logicalIndex-len(head)]
	}

	state := a.StartState()
	if a.IsDeadState(state) {
		return 0, false
	}
	if a.IsMatchState(state) {
		length, ok = 0, true
	}

	consumed := 0
	for p := total - 1 - skip; p >= 0; p-- {
		state = a.NextState(state, byteAt(p))
		consumed++
		if a.IsDeadState(state) {
			return length, ok
		}
		if a.IsMatchState(state) {
			length, ok = consumed, true
		}
	}
	return length, ok
}
