package ringsearch

// Ring is a fixed-capacity byte buffer holding the most recently pushed
// bytes, together with the running stream position (the total count of
// bytes ever pushed). When a push would exceed capacity, the oldest
// retained byte is dropped first.
//
// The buffer is stored contiguously with wraparound (a classic circular
// buffer), so its contents are exposed as two slices rather than one: one
// may wrap around the end of the backing array, the other covers what's
// left. Concatenating them (oldest first) yields the logical buffer.
type Ring struct {
	buf            []byte
	start          int // index of the oldest retained byte
	length         int // number of bytes currently retained, 0 <= length <= cap(buf)
	streamPosition uint64
}

// NewRing creates a Ring retaining at most capacity bytes.
func NewRing(capacity int) *Ring {
	return &Ring{buf: make([]byte, capacity)}
}

// Capacity returns the ring's maximum retained length.
func (r *Ring) Capacity() int { return len(r.buf) }

// Len returns the number of bytes currently retained.
func (r *Ring) Len() int { return r.length }

// StreamPosition returns the total number of bytes ever pushed.
func (r *Ring) StreamPosition() uint64 { return r.streamPosition }

// PushByte appends b, dropping the oldest retained byte first if the ring
// is already at capacity, and advances the stream position.
func (r *Ring) PushByte(b byte) {
	cap := len(r.buf)
	r.streamPosition++
	if cap == 0 {
		return
	}
	if r.length < cap {
		r.buf[(r.start+r.length)%cap] = b
		r.length++
		return
	}
	r.buf[r.start] = b
	r.start = (r.start + 1) % cap
}

// AsSlices returns the ring's contents as two contiguous slices; their
// concatenation (head then tail) is the logical buffer, oldest byte first.
// Either slice may be empty.
func (r *Ring) AsSlices() (head, tail []byte) {
	if r.length == 0 {
		return nil, nil
	}
	cap := len(r.buf)
	end := r.start + r.length
	if end <= cap {
		return r.buf[r.start:end], nil
	}
	return r.buf[r.start:cap], r.buf[:end-cap]
}

// Window computes the bytes of m still retained in the ring, as a
// MatchData. Out-of-window positions are clipped rather than causing a
// panic: a start before the window, or an end beyond the retained bytes,
// simply yields a shorter (possibly empty) result.
func (r *Ring) Window(m Match) MatchData {
	offset := r.streamPosition - uint64(r.length)

	start := offset
	if m.Start != nil {
		start = *m.Start
	}
	s := satSubU64(start, offset)
	e := satSubU64(m.End, offset)

	head, tail := r.AsSlices()
	hLen := uint64(len(head))

	hs := clampU64(s, hLen)
	he := clampU64(e, hLen)
	if he < hs {
		he = hs
	}

	ts := satSubU64(s, hLen)
	te := satSubU64(e, hLen)
	tLen := uint64(len(tail))
	ts = clampU64(ts, tLen)
	te = clampU64(te, tLen)
	if te < ts {
		te = ts
	}

	return MatchData{Head: head[hs:he], Tail: tail[ts:te]}
}

func satSubU64(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

func clampU64(v, max uint64) uint64 {
	if v > max {
		return max
	}
	return v
}
