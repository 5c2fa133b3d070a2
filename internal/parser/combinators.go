// Package parser implements the recursive-descent parser of §4.4. This
// file defines a small set of generic combinator primitives (token
// match, sequence, select, repeat, optional, left-recursive suffix
// folding); the grammar productions in types_grammar.go,
// expressions_grammar.go, statements_grammar.go, declarations_grammar.go,
// and parser.go are hand-written methods that work on the Cursor
// directly and do not call these primitives.
//
// The grammar itself is wired as methods on *Parser rather than through
// an explicit forward-declare-then-register environment: parse_type,
// parse_expression, parse_statement, and parse_declaration are
// mutually recursive, and Go method dispatch (unlike a top-level
// function in a single-pass-parsed language) already resolves calls
// between methods regardless of declaration order, so the fixpoint
// wiring the spec describes for languages without that guarantee has no
// work left to do here.
package parser

import "github.com/nilolang/nilo/internal/lexer"

// Parse is a parser combinator: given a Cursor, it either consumes some
// tokens and returns a value, or leaves the cursor where it found it
// and reports failure. Every primitive below restores the cursor
// position on failure so callers can freely try alternatives.
type Parse[T any] func(c *Cursor) (T, bool)

// Token matches a single token of the given kind.
func Token(kind lexer.Kind) Parse[lexer.Token] {
	return func(c *Cursor) (lexer.Token, bool) {
		if c.Peek().Kind == kind {
			return c.Advance(), true
		}
		var zero lexer.Token
		return zero, false
	}
}

// TokenImage matches a single token of the given kind and exact image
// (used for keywords and punctuation, which the lexer does not tag with
// their own Kind values).
func TokenImage(kind lexer.Kind, image string) Parse[lexer.Token] {
	return func(c *Cursor) (lexer.Token, bool) {
		if t := c.Peek(); t.Kind == kind && t.Image == image {
			return c.Advance(), true
		}
		var zero lexer.Token
		return zero, false
	}
}

// MapP transforms a successful parse's value.
func MapP[A, B any](p Parse[A], f func(A) B) Parse[B] {
	return func(c *Cursor) (B, bool) {
		a, ok := p(c)
		var zero B
		if !ok {
			return zero, false
		}
		return f(a), true
	}
}

// Optional always succeeds: it returns the parse's value and true when
// p succeeds, or the zero value and false (distinguishable via the
// returned bool) when p fails, with the cursor left untouched either
// way.
func Optional[T any](p Parse[T]) Parse[T] {
	return func(c *Cursor) (T, bool) {
		mark := c.Mark()
		v, ok := p(c)
		if !ok {
			c.Reset(mark)
			var zero T
			return zero, false
		}
		return v, true
	}
}

// Select tries each alternative in order, committing to the first that
// succeeds and resetting the cursor between failed attempts.
func Select[T any](ps ...Parse[T]) Parse[T] {
	return func(c *Cursor) (T, bool) {
		for _, p := range ps {
			mark := c.Mark()
			v, ok := p(c)
			if ok {
				return v, true
			}
			c.Reset(mark)
		}
		var zero T
		return zero, false
	}
}

// Repeat applies p until it fails, collecting every successful result.
// Always succeeds, possibly with a nil/empty slice.
func Repeat[T any](p Parse[T]) Parse[[]T] {
	return func(c *Cursor) ([]T, bool) {
		var results []T
		for {
			mark := c.Mark()
			v, ok := p(c)
			if !ok {
				c.Reset(mark)
				break
			}
			results = append(results, v)
		}
		return results, true
	}
}

// SepBy parses zero or more occurrences of p separated by sep, with an
// optional trailing separator tolerated by the caller's choice of item
// parser if needed. Used for comma-separated lists (params, args, type
// arguments, struct fields).
func SepBy[T any, S any](item Parse[T], sep Parse[S]) Parse[[]T] {
	return func(c *Cursor) ([]T, bool) {
		var results []T
		first, ok := item(c)
		if !ok {
			return results, true
		}
		results = append(results, first)
		for {
			mark := c.Mark()
			if _, ok := sep(c); !ok {
				c.Reset(mark)
				break
			}
			v, ok := item(c)
			if !ok {
				c.Reset(mark)
				break
			}
			results = append(results, v)
		}
		return results, true
	}
}

// Seq2 sequences two parsers, failing (and rewinding) unless both
// succeed.
func Seq2[A, B, R any](pa Parse[A], pb Parse[B], combine func(A, B) R) Parse[R] {
	return func(c *Cursor) (R, bool) {
		mark := c.Mark()
		var zero R
		a, ok := pa(c)
		if !ok {
			return zero, false
		}
		b, ok := pb(c)
		if !ok {
			c.Reset(mark)
			return zero, false
		}
		return combine(a, b), true
	}
}

// Seq3 sequences three parsers.
func Seq3[A, B, C, R any](pa Parse[A], pb Parse[B], pc Parse[C], combine func(A, B, C) R) Parse[R] {
	return func(c *Cursor) (R, bool) {
		mark := c.Mark()
		var zero R
		a, ok := pa(c)
		if !ok {
			return zero, false
		}
		b, ok := pb(c)
		if !ok {
			c.Reset(mark)
			return zero, false
		}
		cc, ok := pc(c)
		if !ok {
			c.Reset(mark)
			return zero, false
		}
		return combine(a, b, cc), true
	}
}

// LeftAssoc parses base, then repeatedly tries suffix; each successful
// suffix returns a function that folds the accumulated left value into
// a new left value (used for left-associative binary operator chains
// and for postfix call/index/field-access chains). Termination (P3)
// relies on every suffix alternative consuming at least one token on
// success, which holds for all uses in this grammar since each suffix
// starts by consuming an operator or punctuation token.
func LeftAssoc[T any](base Parse[T], suffix Parse[func(T) T]) Parse[T] {
	return func(c *Cursor) (T, bool) {
		left, ok := base(c)
		if !ok {
			var zero T
			return zero, false
		}
		for {
			mark := c.Mark()
			f, ok := suffix(c)
			if !ok {
				c.Reset(mark)
				break
			}
			left = f(left)
		}
		return left, true
	}
}
