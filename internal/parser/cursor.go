package parser

import "github.com/nilolang/nilo/internal/lexer"

// Cursor is a mutable position over a fully materialized token slice.
// The spec's combinators are phrased over a lazy token stream; doing
// the same arbitrary backtracking the grammar needs (Select trying
// several alternatives, LeftAssoc's suffix probing) against a stream
// that must be re-derived on every rewind would mean re-lexing on every
// backtrack. Materializing the tokens once up front and moving a
// cursor index over the slice gets the same semantics — a parse never
// observes a token it didn't "pull" from the stream, in order — for the
// cost of one pass of the lexer instead of a potentially-quadratic
// number of re-derivations, so that is the tradeoff made here.
//
// Newline tokens carry no grammatical meaning in this language (there
// is no significant-whitespace or automatic-semicolon-insertion rule),
// so the cursor filters them out when it materializes the slice rather
// than making every grammar production skip them explicitly.
type Cursor struct {
	tokens []lexer.Token
	pos    int
}

// NewCursor filters Newline tokens out of toks and returns a Cursor
// starting at the first remaining token. A trailing EOF token is
// dropped as well, since Peek synthesizes EOF past the end of the slice.
func NewCursor(toks []lexer.Token) *Cursor {
	filtered := make([]lexer.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == lexer.Newline || t.Kind == lexer.EOF {
			continue
		}
		filtered = append(filtered, t)
	}
	return &Cursor{tokens: filtered}
}

// Peek returns the token at the current position without consuming it.
// Past the end of the slice it returns a synthetic EOF token.
func (c *Cursor) Peek() lexer.Token {
	if c.pos < len(c.tokens) {
		return c.tokens[c.pos]
	}
	if len(c.tokens) > 0 {
		last := c.tokens[len(c.tokens)-1]
		return lexer.Token{Kind: lexer.EOF, Range: last.Range}
	}
	return lexer.Token{Kind: lexer.EOF}
}

// PeekAt returns the token n positions ahead of the current one without
// consuming anything.
func (c *Cursor) PeekAt(n int) lexer.Token {
	idx := c.pos + n
	if idx < len(c.tokens) {
		return c.tokens[idx]
	}
	return c.Peek()
}

// Advance consumes and returns the current token. At EOF it returns the
// synthetic EOF token without moving the position further.
func (c *Cursor) Advance() lexer.Token {
	t := c.Peek()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return t
}

// Mark returns an opaque position usable with Reset to backtrack.
func (c *Cursor) Mark() int { return c.pos }

// Reset rewinds the cursor to a position previously returned by Mark.
func (c *Cursor) Reset(mark int) { c.pos = mark }

// AtEOF reports whether the cursor has consumed every token.
func (c *Cursor) AtEOF() bool { return c.pos >= len(c.tokens) }

// Previous returns the most recently consumed token, used to compute a
// production's ending position after Advance has already moved past it.
func (c *Cursor) Previous() lexer.Token {
	if c.pos == 0 {
		return lexer.Token{}
	}
	return c.tokens[c.pos-1]
}
