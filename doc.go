// Package ringsearch implements a streaming multi-pattern regular-expression
// searcher: it finds matches of one or more registered patterns inside a
// byte stream of unbounded length using bounded memory, a ring buffer whose
// capacity is chosen by the caller.
//
// Bytes are fed one at a time through Push, which advances every
// registered pattern's forward DFA and records the byte in the ring. After
// each Push, Matches drains any reports whose match just closed (the DFA
// left a match state on this byte — the "edge trigger"). Once the input is
// exhausted, FinalMatches drains reports for patterns still mid-match at
// the last byte. For any reported Match, MatchData returns the matched
// bytes still retained in the ring as two borrowed slices, invalidated by
// the next Push.
//
// Pattern compilation — turning a regular-expression string into the paired
// forward/reverse automata the core drives — is handled by the automaton
// package; AddPattern accepts an already-compiled automaton.Pattern, and
// AddPatternFromString is a convenience wrapping automaton.Compile.
//
// Submatch/capture extraction, POSIX/leftmost-longest semantics beyond the
// edge-trigger policy above, Unicode-aware character classes beyond
// byte-range support, overlapping-match enumeration, backreferences, and a
// shared cross-pattern automaton are all out of scope: each registered
// pattern runs its own independent forward/reverse DFA pair.
package ringsearch
