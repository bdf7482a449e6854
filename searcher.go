package ringsearch

import (
	"bufio"
	"io"

	"github.com/coregx/ringsearch/automaton"
)

// Result pairs a reported Match with the search id of the pattern it
// closed for.
type Result struct {
	SearchID int
	Match    Match
}

// Searcher finds matches of one or more registered patterns in a byte
// stream of unbounded length, using bounded memory. See the package doc
// comment for the full protocol.
type Searcher struct {
	ring  *Ring
	slots []slot
}

// New creates an empty Searcher whose ring retains at most capacity bytes.
func New(capacity int) *Searcher {
	return &Searcher{ring: NewRing(capacity)}
}

// AddPattern registers an already-compiled pattern and returns its search
// id (0, 1, 2, ... in registration order).
//
// Patterns should be registered before the first Push. Registering one
// afterwards is not guarded against — it will not corrupt existing slots —
// but its interaction with in-flight matches is unspecified.
func (s *Searcher) AddPattern(p automaton.Pattern) int {
	id := len(s.slots)
	s.slots = append(s.slots, newSlot(p))
	return id
}

// AddPatternFromString compiles pattern and registers it, returning
// *InvalidPattern if compilation fails.
func (s *Searcher) AddPatternFromString(pattern string) (int, error) {
	p, err := automaton.Compile(pattern)
	if err != nil {
		return 0, &InvalidPattern{Pattern: pattern, Err: err}
	}
	return s.AddPattern(p), nil
}

// Push advances every registered pattern's forward DFA by one byte and
// records it in the ring. It does not itself report matches — call Matches
// afterwards to drain any that just closed.
func (s *Searcher) Push(b byte) {
	s.ring.PushByte(b)
	for i := range s.slots {
		s.slots[i].advance(b)
	}
}

// Matches drains the matches that closed on the most recent Push: one
// report per slot whose forward DFA just left a match state (was_match ==
// true, is_match == false), in ascending search-id order. Call it after
// every Push.
func (s *Searcher) Matches() []Result {
	position := s.ring.StreamPosition()
	var out []Result
	for id := range s.slots {
		sl := &s.slots[id]
		if !sl.edgeTriggered() {
			continue
		}
		length, ok := rfindLen(sl.pattern.Reverse, s.ring, 1)
		if !ok {
			continue
		}
		m := Match{End: position - 1}
		// The start is unknown only when the scan ran through every
		// retained byte before the trigger byte and older bytes were dropped.
		startLost := length == s.ring.Len()-1 && position > uint64(s.ring.Len())
		if !startLost {
			start := position - uint64(length) - 1
			m.Start = &start
		}
		out = append(out, Result{SearchID: id, Match: m})
	}
	return out
}

// FinalMatches drains the matches ending at the very last pushed byte: one
// report for every slot currently in a match state, regardless of whether
// an edge trigger has fired. Call it exactly once after all input has been
// pushed.
func (s *Searcher) FinalMatches() []Result {
	position := s.ring.StreamPosition()
	var out []Result
	for id := range s.slots {
		sl := &s.slots[id]
		if !sl.isMatch {
			continue
		}
		length, ok := rfindLen(sl.pattern.Reverse, s.ring, 0)
		if !ok {
			continue
		}
		m := Match{End: position}
		startLost := length == s.ring.Len() && position > uint64(s.ring.Len())
		if !startLost {
			start := position - uint64(length)
			m.Start = &start
		}
		out = append(out, Result{SearchID: id, Match: m})
	}
	return out
}

// MatchData returns the bytes of m still retained in the ring. The
// returned slices are borrowed from the ring and invalidated by the next
// Push.
func (s *Searcher) MatchData(m Match) MatchData {
	return s.ring.Window(m)
}

// Drive feeds every byte read from r through Push, invoking callback for
// each Result Matches yields, then does the same once more with
// FinalMatches once r is exhausted.
func (s *Searcher) Drive(r io.Reader, callback func(searchID int, m Match, data MatchData)) error {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		s.Push(b)
		for _, res := range s.Matches() {
			callback(res.SearchID, res.Match, s.MatchData(res.Match))
		}
	}
	for _, res := range s.FinalMatches() {
		callback(res.SearchID, res.Match, s.MatchData(res.Match))
	}
	return nil
}
