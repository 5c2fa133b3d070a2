package source

import "strings"

// CharStream is a lazy, immutable sequence of Unicode code points decoded
// from a source file. Reading never mutates the receiver: Read returns a
// new stream positioned one character further along, so a caller can hold
// onto an earlier stream value and resume from it (used by the lexer for
// multi-character lookahead without a separate peek buffer).
type CharStream struct {
	runes []rune
	idx   int
	pos   FilePosition
}

// NewCharStream decodes text (already UTF-8, already BOM-stripped by the
// caller) into a stream starting at line 1, column 1 of file.
func NewCharStream(file, text string) *CharStream {
	return &CharStream{runes: []rune(text), idx: 0, pos: NewFilePosition(file)}
}

// First returns the next character without consuming it. ok is false at
// end of stream.
func (s *CharStream) First() (ch rune, ok bool) {
	if s.idx >= len(s.runes) {
		return 0, false
	}
	return s.runes[s.idx], true
}

// Position returns the FilePosition of the character First would return
// (or the terminal position, at end of stream).
func (s *CharStream) Position() FilePosition {
	return s.pos
}

// AtEOF reports whether the stream has no more characters.
func (s *CharStream) AtEOF() bool {
	_, ok := s.First()
	return !ok
}

// Read consumes one character, returning it alongside the stream
// positioned just past it. Reading at end of stream returns the zero rune
// and the same stream unchanged.
func (s *CharStream) Read() (rune, *CharStream) {
	ch, ok := s.First()
	if !ok {
		return 0, s
	}
	return ch, &CharStream{runes: s.runes, idx: s.idx + 1, pos: s.pos.Advance(ch)}
}

// ForceRead reads up to n characters, returning fewer only at end of
// stream, alongside the stream positioned just past what was read.
func (s *CharStream) ForceRead(n int) (string, *CharStream) {
	var sb strings.Builder
	cur := s
	for i := 0; i < n; i++ {
		if cur.AtEOF() {
			break
		}
		var ch rune
		ch, cur = cur.Read()
		sb.WriteRune(ch)
	}
	return sb.String(), cur
}

// PeekN returns the nth character ahead (0 = First) without consuming
// anything, and whether it exists.
func (s *CharStream) PeekN(n int) (rune, bool) {
	idx := s.idx + n
	if idx < 0 || idx >= len(s.runes) {
		return 0, false
	}
	return s.runes[idx], true
}
