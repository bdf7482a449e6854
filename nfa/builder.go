package nfa

// Builder constructs an NFA incrementally. States are appended in order, so
// a StateID is simply the index at which a state was added; forward
// references are resolved afterwards via Patch/PatchSplit.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates an empty Builder pre-sized for capacity
// states.
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
	}
}

func (b *Builder) add(s State) StateID {
	s.id = StateID(len(b.states))
	b.states = append(b.states, s)
	return s.id
}

// AddMatch adds an accepting state.
func (b *Builder) AddMatch() StateID {
	return b.add(State{kind: StateMatch})
}

// AddFail adds a dead state with no transitions.
func (b *Builder) AddFail() StateID {
	return b.add(State{kind: StateFail})
}

// AddByteRange adds a state consuming one byte in [lo, hi], moving to next.
// Pass next = InvalidState to patch it later with Patch.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	return b.add(State{kind: StateByteRange, lo: lo, hi: hi, next: next})
}

// AddSparse adds a state consuming one byte matching any of the given
// disjoint ranges (a character class). The slice is copied.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	cp := make([]Transition, len(transitions))
	copy(cp, transitions)
	return b.add(State{kind: StateSparse, transitions: cp})
}

// AddSplit adds an epsilon transition to two states (alternation or a
// quantifier's loop/exit choice).
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{kind: StateSplit, left: left, right: right})
}

// AddEpsilon adds a single epsilon transition to next.
// Pass next = InvalidState to patch it later with Patch.
func (b *Builder) AddEpsilon(next StateID) StateID {
	return b.add(State{kind: StateEpsilon, next: next})
}

// AddLook adds a zero-width assertion gating a single epsilon transition to
// next. Pass next = InvalidState to patch it later with Patch.
func (b *Builder) AddLook(look Look, next StateID) StateID {
	return b.add(State{kind: StateLook, look: look, next: next})
}

// Patch redirects the single outgoing target of a ByteRange, Epsilon, or
// Look state. It is an error to patch any other kind.
func (b *Builder) Patch(id, target StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "state id out of bounds", StateID: id}
	}
	s := &b.states[id]
	switch s.kind {
	case StateByteRange, StateEpsilon, StateLook:
		s.next = target
		return nil
	default:
		return &BuildError{Message: "cannot patch state of kind " + s.kind.String(), StateID: id}
	}
}

// PatchSplit redirects both targets of a Split state.
func (b *Builder) PatchSplit(id, left, right StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "state id out of bounds", StateID: id}
	}
	s := &b.states[id]
	if s.kind != StateSplit {
		return &BuildError{Message: "expected Split state, got " + s.kind.String(), StateID: id}
	}
	s.left, s.right = left, right
	return nil
}

// SetStart sets the NFA's start state.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// NumStates returns the number of states added so far.
func (b *Builder) NumStates() int {
	return len(b.states)
}

// Build finalizes the NFA. The Builder must not be reused afterwards.
func (b *Builder) Build() *NFA {
	return &NFA{states: b.states, start: b.start}
}
