package nfa

// byteEdge records one incoming byte-consuming edge into a state, keyed by
// its target in the collection pass below.
type byteEdge struct {
	lo, hi byte
	from   StateID
}

// Reverse builds the reversal of forward: an NFA whose language is the set
// of reversed strings forward accepts. The streaming core uses this to
// recover a match's start position by scanning the ring buffer backwards
// from the position a forward match closed at (see the root package's
// reverse-scan recovery).
//
// Construction reassigns new state 1:1 with old state (new id == old id for
// every state forward defines), then rewrites each state's content to be
// the reverse of its incoming edges: an old edge S --label--> X becomes a
// new edge X --label--> S. The old start state becomes an accepting state in
// the new NFA (a reverse scan that reaches it has recovered the full match),
// and the old NFA's sole Match state becomes the new NFA's start (a reverse
// scan begins where the forward match ended).
//
// Look assertions are folded into the reverse topology as direction-agnostic
// epsilon edges: the assertion itself is not re-checked walking backwards.
// This mirrors the forward DFA's own simplified treatment of \b/\B (see the
// dfa package) and is harmless for the anchors exercised by the seed
// scenarios, none of which rely on reconstructing look-around while
// recovering a match start.
//
// A loop back to the old start state (e.g. the Split at the heart of `a+`)
// is preserved rather than discarded: the new state for the old start is
// built as Split(matchLeaf, continuation), so it is simultaneously a valid
// place to stop (a shorter match) and a place to keep extending backwards
// (a longer one). Naively replacing the old start with a bare Match state
// would silently break reversal for any pattern with a loop reachable from
// its own start.
func Reverse(forward *NFA) *NFA {
	n := forward.NumStates()

	oldMatch := InvalidState
	for i := 0; i < n; i++ {
		if forward.State(StateID(i)).Kind() == StateMatch {
			oldMatch = StateID(i)
			break
		}
	}
	oldStart := forward.Start()

	byteEdges := make([][]byteEdge, n)
	epsEdges := make([][]StateID, n)

	for i := 0; i < n; i++ {
		s := forward.State(StateID(i))
		switch s.Kind() {
		case StateByteRange:
			lo, hi, next := s.ByteRange()
			if next != InvalidState {
				byteEdges[next] = append(byteEdges[next], byteEdge{lo, hi, StateID(i)})
			}
		case StateSparse:
			for _, t := range s.Sparse() {
				if t.Next != InvalidState {
					byteEdges[t.Next] = append(byteEdges[t.Next], byteEdge{t.Lo, t.Hi, StateID(i)})
				}
			}
		case StateSplit:
			left, right := s.Split()
			if left != InvalidState {
				epsEdges[left] = append(epsEdges[left], StateID(i))
			}
			if right != InvalidState {
				epsEdges[right] = append(epsEdges[right], StateID(i))
			}
		case StateEpsilon:
			if next := s.Epsilon(); next != InvalidState {
				epsEdges[next] = append(epsEdges[next], StateID(i))
			}
		case StateLook:
			_, next := s.LookAssertion()
			if next != InvalidState {
				epsEdges[next] = append(epsEdges[next], StateID(i))
			}
		case StateMatch, StateFail:
			// No outgoing edges to record.
		}
	}

	b := NewBuilderWithCapacity(n + n/2)
	for i := 0; i < n; i++ {
		b.AddEpsilon(InvalidState) // reserve slot i, to be overwritten below
	}

	for i := 0; i < n; i++ {
		id := StateID(i)
		cont := buildContinuation(b, byteEdges[i], epsEdges[i])

		if id == oldStart {
			if cont == InvalidState {
				b.states[i] = State{id: id, kind: StateMatch}
				continue
			}
			matchLeaf := b.AddMatch()
			b.states[i] = State{id: id, kind: StateSplit, left: matchLeaf, right: cont}
			continue
		}

		if cont == InvalidState {
			b.states[i] = State{id: id, kind: StateFail}
			continue
		}
		copied := b.states[cont]
		copied.id = id
		b.states[i] = copied
	}

	if oldMatch == InvalidState {
		// No Match state means forward never accepts; build an NFA whose
		// start state is Fail.
		fail := b.AddFail()
		b.SetStart(fail)
		return b.Build()
	}
	b.SetStart(oldMatch)
	return b.Build()
}

// buildContinuation allocates the fresh state(s) representing "what to do
// next" when reversing through a state with the given incoming byte and
// epsilon edges, and returns its entry StateID, or InvalidState if there is
// nothing to continue with (the state had no incoming edges at all).
func buildContinuation(b *Builder, byteIn []byteEdge, epsIn []StateID) StateID {
	byteNode := InvalidState
	switch len(byteIn) {
	case 0:
	case 1:
		byteNode = b.AddByteRange(byteIn[0].lo, byteIn[0].hi, byteIn[0].from)
	default:
		transitions := make([]Transition, len(byteIn))
		for i, e := range byteIn {
			transitions[i] = Transition{Lo: e.lo, Hi: e.hi, Next: e.from}
		}
		byteNode = b.AddSparse(transitions)
	}

	epsNode := InvalidState
	switch len(epsIn) {
	case 0:
	case 1:
		epsNode = b.AddEpsilon(epsIn[0])
	default:
		entry := epsIn[len(epsIn)-1]
		for i := len(epsIn) - 2; i >= 0; i-- {
			entry = b.AddSplit(epsIn[i], entry)
		}
		epsNode = entry
	}

	switch {
	case byteNode != InvalidState && epsNode != InvalidState:
		return b.AddSplit(byteNode, epsNode)
	case byteNode != InvalidState:
		return byteNode
	case epsNode != InvalidState:
		return epsNode
	default:
		return InvalidState
	}
}
