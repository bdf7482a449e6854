package ringsearch

import (
	"bytes"
	"testing"
)

func TestRingAsSlicesWraparound(t *testing.T) {
	r := NewRing(4)
	for _, b := range []byte("abcdef") { // 6 bytes into a 4-byte ring
		r.PushByte(b)
	}
	head, tail := r.AsSlices()
	got := append(append([]byte(nil), head...), tail...)
	if !bytes.Equal(got, []byte("cdef")) {
		t.Fatalf("AsSlices() = %q, want %q", got, "cdef")
	}
	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", r.Len())
	}
	if r.StreamPosition() != 6 {
		t.Fatalf("StreamPosition() = %d, want 6", r.StreamPosition())
	}
}

func TestRingWindowClipsToRetainedBytes(t *testing.T) {
	r := NewRing(4)
	for _, b := range []byte("abcdef") {
		r.PushByte(b)
	}
	// Logical buffer is "cdef" at stream positions [2,6). A match spanning
	// [0, 5) (start before the retained window) should clip to "cde".
	start := uint64(0)
	m := Match{Start: &start, End: 5}
	data := r.Window(m)
	if !data.Equal([]byte("cde")) {
		t.Fatalf("Window() = %q, want %q", data.ToBytes(), "cde")
	}
}

func TestRingWindowNoStart(t *testing.T) {
	r := NewRing(4)
	for _, b := range []byte("abcdef") {
		r.PushByte(b)
	}
	m := Match{End: 6} // start = None: spec says this yields the whole window
	data := r.Window(m)
	if !data.Equal([]byte("cdef")) {
		t.Fatalf("Window() = %q, want %q", data.ToBytes(), "cdef")
	}
}

func TestRingPushByteDropsOldest(t *testing.T) {
	r := NewRing(2)
	r.PushByte('x')
	r.PushByte('y')
	r.PushByte('z')
	head, tail := r.AsSlices()
	got := append(append([]byte(nil), head...), tail...)
	if !bytes.Equal(got, []byte("yz")) {
		t.Fatalf("AsSlices() = %q, want %q", got, "yz")
	}
}

func TestRingEmpty(t *testing.T) {
	r := NewRing(4)
	head, tail := r.AsSlices()
	if len(head) != 0 || len(tail) != 0 {
		t.Fatalf("AsSlices() on empty ring = (%q, %q), want empty", head, tail)
	}
}
