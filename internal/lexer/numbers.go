package lexer

import (
	"strconv"
	"strings"

	"github.com/nilolang/nilo/internal/source"
)

// scanNumber implements §4.2.1: hex/binary/decimal integers and decimal
// floats (fraction and/or exponent), values computed at lex time.
func (l *Lexer) scanNumber(start source.FilePosition) Token {
	first, _ := l.stream.First()

	if first == '0' {
		if next, ok := l.stream.PeekN(1); ok && (next == 'x' || next == 'X') {
			return l.scanRadixInt(start, 2, "0123456789abcdefABCDEF", func(s string) (int64, error) {
				return strconv.ParseInt(s, 16, 64)
			})
		}
		if next, ok := l.stream.PeekN(1); ok && (next == 'b' || next == 'B') {
			return l.scanRadixInt(start, 2, "01", func(s string) (int64, error) {
				return strconv.ParseInt(s, 2, 64)
			})
		}
	}

	var sb strings.Builder
	l.consumeDigitsInto(&sb)

	isFloat := false
	if ch, ok := l.stream.First(); ok && ch == '.' {
		if next, ok := l.stream.PeekN(1); ok && isDigit(next) {
			isFloat = true
			var r rune
			r, l.stream = l.stream.Read()
			sb.WriteRune(r)
			l.consumeDigitsInto(&sb)
		}
	}

	if ch, ok := l.stream.First(); ok && (ch == 'e' || ch == 'E') {
		if l.exponentFollows() {
			isFloat = true
			var r rune
			r, l.stream = l.stream.Read()
			sb.WriteRune(r)
			if sign, ok := l.stream.First(); ok && (sign == '+' || sign == '-') {
				r, l.stream = l.stream.Read()
				sb.WriteRune(r)
			}
			l.consumeDigitsInto(&sb)
		}
	}

	image := sb.String()
	rng := source.RangeFromImage(start, image)
	if isFloat {
		v, err := strconv.ParseFloat(image, 64)
		if err != nil {
			l.addError("invalid float literal "+image, rng)
			return Token{Kind: Illegal, Range: rng, Image: image}
		}
		return Token{Kind: FloatLiteral, Range: rng, Image: image, FloatValue: v}
	}
	v, err := strconv.ParseInt(image, 10, 64)
	if err != nil {
		l.addError("invalid integer literal "+image, rng)
		return Token{Kind: Illegal, Range: rng, Image: image}
	}
	return Token{Kind: IntegerLiteral, Range: rng, Image: image, IntValue: v}
}

// exponentFollows reports whether the 'e'/'E' at First() introduces a
// valid exponent (optionally signed digits), without consuming anything.
func (l *Lexer) exponentFollows() bool {
	idx := 1
	if ch, ok := l.stream.PeekN(idx); ok && (ch == '+' || ch == '-') {
		idx++
	}
	ch, ok := l.stream.PeekN(idx)
	return ok && isDigit(ch)
}

func (l *Lexer) consumeDigitsInto(sb *strings.Builder) {
	for {
		ch, ok := l.stream.First()
		if !ok || !isDigit(ch) {
			break
		}
		var r rune
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
	}
}

// scanRadixInt consumes the "0x"/"0b" prefix then a maximal run of chars
// in digitSet, parsing the whole image with parse.
func (l *Lexer) scanRadixInt(start source.FilePosition, prefixLen int, digitSet string, parse func(string) (int64, error)) Token {
	var sb strings.Builder
	prefix, rest := l.stream.ForceRead(prefixLen)
	l.stream = rest
	sb.WriteString(prefix)
	for {
		ch, ok := l.stream.First()
		if !ok || !strings.ContainsRune(digitSet, ch) {
			break
		}
		var r rune
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
	}
	image := sb.String()
	rng := source.RangeFromImage(start, image)
	digits := image[prefixLen:]
	if digits == "" {
		l.addError("malformed numeric literal "+image, rng)
		return Token{Kind: Illegal, Range: rng, Image: image}
	}
	v, err := parse(digits)
	if err != nil {
		l.addError("malformed numeric literal "+image, rng)
		return Token{Kind: Illegal, Range: rng, Image: image}
	}
	return Token{Kind: IntegerLiteral, Range: rng, Image: image, IntValue: v}
}
