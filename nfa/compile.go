package nfa

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"unicode/utf8"
)

var errTooComplex = errors.New("pattern nesting exceeds MaxRecursionDepth")

func errUnsupportedOp(op syntax.Op) error {
	return fmt.Errorf("unsupported regexp operator %v", op)
}

// CompilerConfig configures NFA compilation.
type CompilerConfig struct {
	// MaxRecursionDepth bounds the AST recursion depth during compilation,
	// guarding against pathological or adversarial patterns.
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns sensible defaults.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{MaxRecursionDepth: 250}
}

// Compile parses pattern with regexp/syntax and builds two NFAs from it:
//
//   - forward: the pattern with an unanchored `(?s:.)*?`-style prefix
//     spliced in, suitable for streaming search (a match may start at any
//     position, not just position 0 of whatever the caller has pushed).
//   - reverse: the reversal of the bare (unprefixed) pattern, used to
//     recover a match's start by scanning the ring buffer backwards.
//
// Byte-range and character-class support is ASCII/byte-oriented only:
// class bounds above U+00FF are clipped to 0xFF rather than expanded into
// multi-byte UTF-8 ranges. Literal runes are still encoded as their full
// UTF-8 byte sequence, so non-ASCII literal text matches correctly; only
// character classes spanning the non-ASCII range are approximated.
func Compile(pattern string, config CompilerConfig) (forward, reverse *NFA, err error) {
	if config.MaxRecursionDepth == 0 {
		config = DefaultCompilerConfig()
	}

	re, perr := syntax.Parse(pattern, syntax.Perl)
	if perr != nil {
		return nil, nil, &CompileError{Pattern: pattern, Err: perr}
	}
	re = re.Simplify()

	core, err := compileCore(re, config)
	if err != nil {
		return nil, nil, wrapPatternErr(pattern, err)
	}
	reverse = Reverse(core)

	forward, err = compileUnanchored(re, config)
	if err != nil {
		return nil, nil, wrapPatternErr(pattern, err)
	}
	return forward, reverse, nil
}

func wrapPatternErr(pattern string, err error) error {
	if ce, ok := err.(*CompileError); ok && ce.Pattern == "" {
		ce.Pattern = pattern
		return ce
	}
	return err
}

// compiler holds the transient state of a single Compile invocation.
type compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int
}

func newCompiler(config CompilerConfig) *compiler {
	return &compiler{config: config, builder: NewBuilder()}
}

// compileCore builds the bare, anchored NFA for re (no unanchored prefix).
func compileCore(re *syntax.Regexp, config CompilerConfig) (*NFA, error) {
	c := newCompiler(config)
	start, end, err := c.compile(re)
	if err != nil {
		return nil, err
	}
	match := c.builder.AddMatch()
	if err := c.builder.Patch(end, match); err != nil {
		return nil, &CompileError{Err: err}
	}
	c.builder.SetStart(start)
	return c.builder.Build(), nil
}

// compileUnanchored builds an NFA for re with a `(?s:.)*?` prefix spliced
// onto the front, so that a single pass over the input can start matching
// at any byte position.
func compileUnanchored(re *syntax.Regexp, config CompilerConfig) (*NFA, error) {
	c := newCompiler(config)
	coreStart, coreEnd, err := c.compile(re)
	if err != nil {
		return nil, err
	}
	match := c.builder.AddMatch()
	if err := c.builder.Patch(coreEnd, match); err != nil {
		return nil, &CompileError{Err: err}
	}
	prefixStart := c.addUnanchoredPrefix(coreStart)
	c.builder.SetStart(prefixStart)
	return c.builder.Build(), nil
}

// addUnanchoredPrefix splices a "consume any byte and try again, or proceed
// into next" loop in front of next, giving unanchored search semantics to
// an otherwise anchored fragment.
func (c *compiler) addUnanchoredPrefix(next StateID) StateID {
	split := c.builder.AddSplit(InvalidState, next)
	anyByte := c.builder.AddByteRange(0x00, 0xFF, split)
	_ = c.builder.PatchSplit(split, anyByte, next)
	return split
}

// compile recursively translates a syntax.Regexp into an NFA fragment,
// returning the fragment's start state and a patchable "end" state (one
// whose single outgoing target is still InvalidState).
func (c *compiler) compile(re *syntax.Regexp) (start, end StateID, err error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, &CompileError{Err: errTooComplex}
	}

	switch re.Op {
	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune)
	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune)
	case syntax.OpAnyChar:
		return c.compileClassRanges([]rune{0, utf8.MaxRune})
	case syntax.OpAnyCharNotNL:
		return c.compileClassRanges([]rune{0, '\n' - 1, '\n' + 1, utf8.MaxRune})
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0])
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0])
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0])
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max)
	case syntax.OpCapture:
		return c.compile(re.Sub[0])
	case syntax.OpBeginText:
		id := c.builder.AddLook(LookStartText, InvalidState)
		return id, id, nil
	case syntax.OpEndText:
		id := c.builder.AddLook(LookEndText, InvalidState)
		return id, id, nil
	case syntax.OpBeginLine:
		id := c.builder.AddLook(LookStartLine, InvalidState)
		return id, id, nil
	case syntax.OpEndLine:
		id := c.builder.AddLook(LookEndLine, InvalidState)
		return id, id, nil
	case syntax.OpWordBoundary:
		id := c.builder.AddLook(LookWordBoundary, InvalidState)
		return id, id, nil
	case syntax.OpNoWordBoundary:
		id := c.builder.AddLook(LookNoWordBoundary, InvalidState)
		return id, id, nil
	case syntax.OpEmptyMatch:
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	case syntax.OpNoMatch:
		id := c.builder.AddFail()
		return id, id, nil
	default:
		return InvalidState, InvalidState, &CompileError{Err: errUnsupportedOp(re.Op)}
	}
}

// compileLiteral chains one ByteRange state per UTF-8 byte of the literal's
// runes, so non-ASCII literal text still matches exactly.
func (c *compiler) compileLiteral(runes []rune) (start, end StateID, err error) {
	if len(runes) == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}

	var buf [utf8.UTFMax]byte
	first := InvalidState
	prev := InvalidState
	for _, r := range runes {
		n := utf8.EncodeRune(buf[:], r)
		for _, b := range buf[:n] {
			id := c.builder.AddByteRange(b, b, InvalidState)
			if prev != InvalidState {
				if err := c.builder.Patch(prev, id); err != nil {
					return InvalidState, InvalidState, &CompileError{Err: err}
				}
			}
			if first == InvalidState {
				first = id
			}
			prev = id
		}
	}
	return first, prev, nil
}

// compileCharClass builds a Sparse state from a char class's rune-range
// pairs, clipping anything above 0xFF down to the byte range. Ranges that
// clip away entirely are dropped; if every range drops, the class becomes
// an unreachable Fail state.
func (c *compiler) compileCharClass(ranges []rune) (start, end StateID, err error) {
	return c.compileClassRanges(ranges)
}

func (c *compiler) compileClassRanges(ranges []rune) (start, end StateID, err error) {
	var transitions []Transition
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo > 0xFF {
			continue
		}
		if hi > 0xFF {
			hi = 0xFF
		}
		transitions = append(transitions, Transition{Lo: byte(lo), Hi: byte(hi), Next: InvalidState})
	}

	if len(transitions) == 0 {
		id := c.builder.AddFail()
		return id, id, nil
	}
	if len(transitions) == 1 {
		id := c.builder.AddByteRange(transitions[0].Lo, transitions[0].Hi, InvalidState)
		return id, id, nil
	}
	id := c.builder.AddSparse(transitions)
	return id, id, nil
}

func (c *compiler) compileConcat(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}

	first, prevEnd, err := c.compile(subs[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, sub := range subs[1:] {
		subStart, subEnd, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(prevEnd, subStart); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		prevEnd = subEnd
	}
	return first, prevEnd, nil
}

func (c *compiler) compileAlternate(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		id := c.builder.AddFail()
		return id, id, nil
	}

	join := c.builder.AddEpsilon(InvalidState)

	starts := make([]StateID, len(subs))
	for i, sub := range subs {
		subStart, subEnd, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(subEnd, join); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		starts[i] = subStart
	}

	entry := starts[len(starts)-1]
	for i := len(starts) - 2; i >= 0; i-- {
		entry = c.builder.AddSplit(starts[i], entry)
	}
	return entry, join, nil
}

// compileStar compiles sub* (zero or more).
func (c *compiler) compileStar(sub *syntax.Regexp) (start, end StateID, err error) {
	exit := c.builder.AddEpsilon(InvalidState)
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	split := c.builder.AddSplit(subStart, exit)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}
	return split, exit, nil
}

// compilePlus compiles sub+ (one or more).
func (c *compiler) compilePlus(sub *syntax.Regexp) (start, end StateID, err error) {
	exit := c.builder.AddEpsilon(InvalidState)
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	split := c.builder.AddSplit(subStart, exit)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}
	return subStart, exit, nil
}

// compileQuest compiles sub? (zero or one).
func (c *compiler) compileQuest(sub *syntax.Regexp) (start, end StateID, err error) {
	exit := c.builder.AddEpsilon(InvalidState)
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.builder.Patch(subEnd, exit); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}
	split := c.builder.AddSplit(subStart, exit)
	return split, exit, nil
}

// compileRepeat compiles sub{min,max} by unrolling: min mandatory copies,
// followed either by a trailing `+`/`*`-style loop (max == -1, unbounded) or
// by a nested chain of max-min optional copies (bounded), each of which may
// be skipped independently but only from left to right (matching the
// standard a{2,4} == a a (a a?)? construction, not a a a? a? as two
// independent choices).
func (c *compiler) compileRepeat(sub *syntax.Regexp, minCount, maxCount int) (start, end StateID, err error) {
	if minCount == 0 && maxCount == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}

	if maxCount == -1 {
		if minCount == 0 {
			return c.compileStar(sub)
		}
		return c.compileBounded(sub, minCount-1, func() (StateID, StateID, error) {
			return c.compilePlus(sub)
		})
	}

	return c.compileBounded(sub, minCount, func() (StateID, StateID, error) {
		return c.compileOptionalChain(sub, maxCount-minCount)
	})
}

// compileOptionalChain compiles a nested chain of k optional copies of sub,
// where skipping copy i also skips every copy after it (a{0,k} without the
// preceding mandatory copies).
func (c *compiler) compileOptionalChain(sub *syntax.Regexp, k int) (start, end StateID, err error) {
	if k == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}

	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	restStart, restEnd, err := c.compileOptionalChain(sub, k-1)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.builder.Patch(subEnd, restStart); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}

	exit := c.builder.AddEpsilon(InvalidState)
	if err := c.builder.Patch(restEnd, exit); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}
	split := c.builder.AddSplit(subStart, exit)
	return split, exit, nil
}

// compileBounded concatenates n independent copies of sub, then appends the
// fragment tail() produces, if any. Each copy is compiled separately (rather
// than shared) since the Thompson construction has no notion of reusing a
// sub-fragment across iterations.
func (c *compiler) compileBounded(sub *syntax.Regexp, n int, tail func() (StateID, StateID, error)) (start, end StateID, err error) {
	if n == 0 {
		if tail != nil {
			return tail()
		}
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}

	var fragStart, fragEnd StateID
	for i := 0; i < n; i++ {
		s, e, cerr := c.compile(sub)
		if cerr != nil {
			return InvalidState, InvalidState, cerr
		}
		if i == 0 {
			fragStart = s
		} else if err := c.builder.Patch(fragEnd, s); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		fragEnd = e
	}

	if tail != nil {
		tailStart, tailEnd, terr := tail()
		if terr != nil {
			return InvalidState, InvalidState, terr
		}
		if err := c.builder.Patch(fragEnd, tailStart); err != nil {
			return InvalidState, InvalidState, &CompileError{Err: err}
		}
		return fragStart, tailEnd, nil
	}
	return fragStart, fragEnd, nil
}
