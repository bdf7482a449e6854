package ringsearch

import "bytes"

// Match reports a completed match's position in the stream.
//
// End is exclusive (one past the last matched byte). Start is inclusive and
// absent (nil) when the match's beginning has already been evicted from
// the ring — i.e. the match is longer than the searcher's capacity.
type Match struct {
	End   uint64
	Start *uint64
}

// HasStart reports whether the match's start position is still known.
func (m Match) HasStart() bool { return m.Start != nil }

// MatchData is the portion of a Match's bytes still retained in the ring,
// as two borrowed slices (head, tail) whose concatenation is the retained
// bytes in stream order. The slices are invalidated by the Searcher's next
// Push; copy them first (ToBytes) if they must outlive that call.
type MatchData struct {
	Head []byte
	Tail []byte
}

// Len returns the number of retained bytes.
func (d MatchData) Len() int { return len(d.Head) + len(d.Tail) }

// ToBytes copies the retained bytes into a single, independent slice.
func (d MatchData) ToBytes() []byte {
	out := make([]byte, 0, d.Len())
	out = append(out, d.Head...)
	out = append(out, d.Tail...)
	return out
}

// ToStringLossy copies the retained bytes into a string. Invalid UTF-8
// sequences are not specially handled — display rendering is explicitly out
// of scope for this package — the name is kept for continuity with the
// two-slice borrow/copy idiom this type is adapted from.
func (d MatchData) ToStringLossy() string {
	return string(d.ToBytes())
}

// Equal reports whether the retained bytes equal b exactly.
func (d MatchData) Equal(b []byte) bool {
	if d.Len() != len(b) {
		return false
	}
	return bytes.Equal(d.Head, b[:len(d.Head)]) && bytes.Equal(d.Tail, b[len(d.Head):])
}
