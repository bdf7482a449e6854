// Package dfa builds a lazily-determinized DFA over an *nfa.NFA via subset
// construction, exposing the per-byte stepping interface the root package's
// Searcher drives directly (see automaton.Automaton).
//
// Unlike a batch regex engine's lazy DFA, there is no haystack, no start
// table keyed on "what byte precedes this position", and no cache eviction:
// a streaming searcher holds a bounded, small number of compiled patterns for
// its whole lifetime, so the state cache simply grows monotonically. Dead
// transitions are cached exactly like live ones, mirroring the teacher's own
// dead-state caching.
package dfa

import "github.com/coregx/ringsearch/nfa"

// StateID identifies a DFA state within a single DFA's state table.
type StateID uint32

// DeadStateID is the permanent dead state: the empty epsilon-closure, never
// a match, every byte transition stays at DeadStateID. It is always the
// first state built for any DFA (see Compile).
const DeadStateID StateID = 0

// state is one determinized DFA state: an epsilon-closure of NFA states,
// memoized so identical closures reached by different paths collapse to the
// same StateID (classic subset-construction deduplication).
type state struct {
	id StateID

	// nfaStates is the full epsilon-closure membership (sorted, deduped),
	// including terminal Match/Fail/ByteRange/Sparse states reached. It is
	// also this state's dedup identity: computeStateKey hashes it.
	nfaStates []nfa.StateID
	isMatch   bool

	// transitions/computed memoize NextState per byte value, filled in
	// lazily on first use.
	transitions [256]StateID
	computed    [256]bool
}

// computeStateKey hashes a sorted, deduped slice of NFA state IDs with
// FNV-1a, giving a cheap dedup key for the state cache.
func computeStateKey(ids []nfa.StateID) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211

	h := uint64(offset64)
	for _, id := range ids {
		v := uint32(id)
		for i := 0; i < 4; i++ {
			h ^= uint64(byte(v))
			h *= prime64
			v >>= 8
		}
	}
	return h
}

// sortStateIDs sorts a small slice of NFA state IDs in place. Closure sets
// are typically tiny (single digits to low tens of states), so a plain
// insertion sort avoids the overhead of sort.Slice's interface dispatch.
func sortStateIDs(ids []nfa.StateID) {
	for i := 1; i < len(ids); i++ {
		v := ids[i]
		j := i - 1
		for j >= 0 && ids[j] > v {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = v
	}
}
