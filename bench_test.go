package ringsearch

import "testing"

// BenchmarkPush measures the steady-state per-byte cost of driving a
// Searcher with several registered patterns once every DFA transition has
// already been determinized (warmed up before b.ResetTimer).
func BenchmarkPush(b *testing.B) {
	s := New(4096)
	for _, pattern := range []string{`d[a-z]+g`, `The`, `\.`, `a+b`} {
		if _, err := s.AddPatternFromString(pattern); err != nil {
			b.Fatalf("AddPatternFromString: %v", err)
		}
	}

	input := []byte("The lazy dog jumps over the brown fence near aaab.")
	// Warm the DFA caches so the benchmark measures steady-state transition
	// lookup, not first-encounter determinization.
	for _, bt := range input {
		s.Push(bt)
		s.Matches()
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Push(input[i%len(input)])
		s.Matches()
	}
}

// BenchmarkAddPatternFromString measures one-time pattern compilation cost
// (NFA construction, subset construction of the start state).
func BenchmarkAddPatternFromString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := New(64)
		if _, err := s.AddPatternFromString(`d[a-z]+g|The|a+b`); err != nil {
			b.Fatalf("AddPatternFromString: %v", err)
		}
	}
}
