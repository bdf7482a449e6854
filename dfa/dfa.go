package dfa

import (
	"github.com/coregx/ringsearch/internal/conv"
	"github.com/coregx/ringsearch/internal/sparse"
	"github.com/coregx/ringsearch/nfa"
)

// Config configures a DFA's state cache.
type Config struct {
	// InitialCapacity pre-sizes the state table and cache. It is a hint,
	// not a limit: the cache grows without bound as new closures are
	// discovered, since a streaming searcher's pattern set is small and
	// long-lived rather than throwaway.
	InitialCapacity int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{InitialCapacity: 64}
}

// DFA is an on-demand, subset-constructed DFA over a single *nfa.NFA.
// States are determinized lazily: NextState computes and caches a state's
// byte transitions the first time each byte is asked for, not eagerly.
type DFA struct {
	n      *nfa.NFA
	config Config

	states []state
	cache  map[uint64]StateID

	// visited is reused across closure computations to avoid allocating a
	// fresh visited-set on every call.
	visited *sparse.Set
}

// Compile builds a DFA over n using default configuration.
func Compile(n *nfa.NFA) *DFA {
	return CompileWithConfig(n, DefaultConfig())
}

// CompileWithConfig builds a DFA over n with the given configuration.
func CompileWithConfig(n *nfa.NFA, config Config) *DFA {
	if config.InitialCapacity <= 0 {
		config = DefaultConfig()
	}
	d := &DFA{
		n:       n,
		config:  config,
		states:  make([]state, 0, config.InitialCapacity),
		cache:   make(map[uint64]StateID, config.InitialCapacity),
		visited: sparse.New(conv.IntToUint32(n.NumStates())),
	}
	// The empty closure is always state 0: every DFA built by this package
	// shares the DeadStateID convention.
	d.getOrCreate(nil, false)
	return d
}

// StartState returns the DFA state for the epsilon-closure of the NFA's
// start state, computed fresh on every call. Recomputing (rather than
// caching a single "the" start state) matters for patterns anchored with
// `^`/`\A`: that assertion is only satisfiable in the closure computed here,
// and the root package calls StartState again every time a dead-state reset
// occurs, which is exactly when a new "beginning" is semantically correct.
func (d *DFA) StartState() StateID {
	ids, isMatch := d.closure([]nfa.StateID{d.n.Start()}, true)
	return d.getOrCreate(ids, isMatch)
}

// NextState returns the state reached from id by consuming byte b.
func (d *DFA) NextState(id StateID, b byte) StateID {
	s := &d.states[id]
	if s.computed[b] {
		return s.transitions[b]
	}

	var seeds []nfa.StateID
	for _, nid := range s.nfaStates {
		st := d.n.State(nid)
		switch st.Kind() {
		case nfa.StateByteRange:
			lo, hi, next := st.ByteRange()
			if b >= lo && b <= hi && next != nfa.InvalidState {
				seeds = append(seeds, next)
			}
		case nfa.StateSparse:
			for _, t := range st.Sparse() {
				if b >= t.Lo && b <= t.Hi && t.Next != nfa.InvalidState {
					seeds = append(seeds, t.Next)
				}
			}
		}
	}

	ids, isMatch := d.closure(seeds, false)
	next := d.getOrCreate(ids, isMatch)

	// getOrCreate may have grown d.states (and so reallocated its backing
	// array), invalidating s; re-fetch before writing the memoized result.
	s = &d.states[id]
	s.transitions[b] = next
	s.computed[b] = true
	return next
}

// IsMatchState reports whether id's epsilon-closure contains a Match state.
func (d *DFA) IsMatchState(id StateID) bool {
	return d.states[id].isMatch
}

// IsDeadState reports whether id is the permanent dead state: an empty
// closure from which no byte can ever lead to a match.
func (d *DFA) IsDeadState(id StateID) bool {
	return len(d.states[id].nfaStates) == 0
}

// closure computes the epsilon-closure of seeds, returning the sorted,
// deduped set of states reached (Match/Fail/ByteRange/Sparse members; Split/
// Epsilon/Look are control-flow only and never appear in the result) and
// whether a Match state was reached.
//
// atStart gates `^`/`\A`/`\A`-style start assertions: they are satisfied
// only when atStart is true, which StartState passes and NextState never
// does. End assertions (`$`, `\z`) are never satisfied — see nfa.LookEndText
// — and `\b`/`\B` are always treated as satisfied no-ops.
func (d *DFA) closure(seeds []nfa.StateID, atStart bool) ([]nfa.StateID, bool) {
	d.visited.Clear()

	var result []nfa.StateID
	isMatch := false
	stack := append([]nfa.StateID(nil), seeds...)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == nfa.InvalidState || d.visited.Contains(uint32(id)) {
			continue
		}
		d.visited.Insert(uint32(id))

		st := d.n.State(id)
		switch st.Kind() {
		case nfa.StateMatch:
			isMatch = true
			result = append(result, id)
		case nfa.StateFail, nfa.StateByteRange, nfa.StateSparse:
			result = append(result, id)
		case nfa.StateSplit:
			left, right := st.Split()
			stack = append(stack, left, right)
		case nfa.StateEpsilon:
			stack = append(stack, st.Epsilon())
		case nfa.StateLook:
			look, next := st.LookAssertion()
			switch look {
			case nfa.LookStartText, nfa.LookStartLine:
				if atStart {
					stack = append(stack, next)
				}
			case nfa.LookEndText, nfa.LookEndLine:
				// Never satisfied; see nfa.LookEndText.
			case nfa.LookWordBoundary, nfa.LookNoWordBoundary:
				stack = append(stack, next)
			}
		}
	}

	sortStateIDs(result)
	return result, isMatch
}

// getOrCreate returns the StateID for a given closure, creating and caching
// a new one if this exact closure hasn't been seen before.
func (d *DFA) getOrCreate(ids []nfa.StateID, isMatch bool) StateID {
	key := computeStateKey(ids)
	if existing, ok := d.cache[key]; ok {
		return existing
	}

	id := StateID(conv.IntToUint32(len(d.states)))
	cp := make([]nfa.StateID, len(ids))
	copy(cp, ids)
	d.states = append(d.states, state{id: id, nfaStates: cp, isMatch: isMatch})
	d.cache[key] = id
	return id
}
