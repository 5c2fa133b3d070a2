package lexer

import (
	"strconv"
	"strings"

	"github.com/nilolang/nilo/internal/source"
)

// scanString implements §4.2.2 for double-quoted string literals.
func (l *Lexer) scanString(start source.FilePosition) Token {
	var image strings.Builder
	var value strings.Builder

	var r rune
	r, l.stream = l.stream.Read() // opening quote
	image.WriteRune(r)

	for {
		ch, ok := l.stream.First()
		if !ok {
			l.addError("unterminated string literal", source.RangeFromImage(start, image.String()))
			return Token{Kind: Illegal, Range: source.RangeFromImage(start, image.String()), Image: image.String()}
		}
		if ch == '"' {
			r, l.stream = l.stream.Read()
			image.WriteRune(r)
			break
		}
		if ch == '\\' {
			raw, decoded, ok := l.scanEscape()
			if !ok {
				l.addError("unterminated string literal", source.RangeFromImage(start, image.String()))
				return Token{Kind: Illegal, Range: source.RangeFromImage(start, image.String()), Image: image.String()}
			}
			image.WriteString(raw)
			value.WriteRune(decoded)
			continue
		}
		r, l.stream = l.stream.Read()
		image.WriteRune(r)
		value.WriteRune(ch)
	}

	img := image.String()
	return Token{Kind: StringLiteral, Range: source.RangeFromImage(start, img), Image: img, StringValue: value.String()}
}

// scanChar implements §4.2.2 for single-quoted character literals: exactly
// one decoded character payload, empty or unterminated is fatal.
func (l *Lexer) scanChar(start source.FilePosition) Token {
	var image strings.Builder

	var r rune
	r, l.stream = l.stream.Read() // opening quote
	image.WriteRune(r)

	ch, ok := l.stream.First()
	if !ok || ch == '\'' {
		l.addError("empty character literal", source.RangeFromImage(start, image.String()))
		return Token{Kind: Illegal, Range: source.RangeFromImage(start, image.String()), Image: image.String()}
	}

	var payload rune
	if ch == '\\' {
		raw, decoded, ok := l.scanEscape()
		if !ok {
			l.addError("unterminated character literal", source.RangeFromImage(start, image.String()))
			return Token{Kind: Illegal, Range: source.RangeFromImage(start, image.String()), Image: image.String()}
		}
		image.WriteString(raw)
		payload = decoded
	} else {
		r, l.stream = l.stream.Read()
		image.WriteRune(r)
		payload = ch
	}

	closing, ok := l.stream.First()
	if !ok || closing != '\'' {
		l.addError("unterminated character literal", source.RangeFromImage(start, image.String()))
		return Token{Kind: Illegal, Range: source.RangeFromImage(start, image.String()), Image: image.String()}
	}
	r, l.stream = l.stream.Read()
	image.WriteRune(r)

	img := image.String()
	return Token{Kind: CharacterLiteral, Range: source.RangeFromImage(start, img), Image: img, CharValue: payload}
}

// scanEscape decodes one escape sequence starting at the current '\\'.
// Returns the raw source text consumed, the decoded rune, and whether a
// complete sequence was found before end of stream.
func (l *Lexer) scanEscape() (raw string, decoded rune, ok bool) {
	var sb strings.Builder
	var r rune
	r, l.stream = l.stream.Read() // '\'
	sb.WriteRune(r)

	ch, exists := l.stream.First()
	if !exists {
		return sb.String(), 0, false
	}

	switch ch {
	case 'n':
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
		return sb.String(), '\n', true
	case 'r':
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
		return sb.String(), '\r', true
	case 't':
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
		return sb.String(), '\t', true
	case 'f':
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
		return sb.String(), '\f', true
	case 'b':
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
		return sb.String(), '\b', true
	case 'v':
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
		return sb.String(), '\v', true
	case 'x':
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
		hex, rest := l.stream.ForceRead(2)
		if len(hex) < 2 {
			l.stream = rest
			sb.WriteString(hex)
			return sb.String(), 0, false
		}
		l.stream = rest
		sb.WriteString(hex)
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return sb.String(), 0, true
		}
		return sb.String(), rune(v), true
	case 'u':
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
		if next, ok := l.stream.First(); ok && next == '{' {
			r, l.stream = l.stream.Read()
			sb.WriteRune(r)
			var hexDigits strings.Builder
			for {
				c, ok := l.stream.First()
				if !ok {
					return sb.String(), 0, false
				}
				if c == '}' {
					r, l.stream = l.stream.Read()
					sb.WriteRune(r)
					break
				}
				r, l.stream = l.stream.Read()
				sb.WriteRune(r)
				hexDigits.WriteRune(c)
			}
			v, err := strconv.ParseUint(hexDigits.String(), 16, 32)
			if err != nil {
				return sb.String(), 0, true
			}
			return sb.String(), rune(v), true
		}
		hex, rest := l.stream.ForceRead(4)
		if len(hex) < 4 {
			l.stream = rest
			sb.WriteString(hex)
			return sb.String(), 0, false
		}
		l.stream = rest
		sb.WriteString(hex)
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return sb.String(), 0, true
		}
		return sb.String(), rune(v), true
	default:
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
		return sb.String(), ch, true
	}
}
