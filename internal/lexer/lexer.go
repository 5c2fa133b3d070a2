package lexer

import (
	"strings"

	"github.com/nilolang/nilo/internal/source"
)

// Mode selects which tokens NextToken surfaces. ModeIgnore (the default)
// elides Comment and Whitespace tokens; ModeRaw surfaces every token,
// which is what property P1 (lex round-trip) exercises.
type Mode int

const (
	ModeIgnore Mode = iota
	ModeRaw
)

// Error is a lexical diagnostic. Every Error is fatal for its module: the
// lexer halts token production after recording it (§7).
type Error struct {
	Message string
	Range   source.FileRange
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithRawMode makes NextToken surface Comment and Whitespace tokens
// instead of skipping them.
func WithRawMode() Option {
	return func(l *Lexer) { l.mode = ModeRaw }
}

// WithTracing enables emission of a human-readable trace of each token
// produced, collected via Trace(). Used by the `--trace` CLI flag.
func WithTracing() Option {
	return func(l *Lexer) { l.tracing = true }
}

// Lexer tokenizes a single source file lazily: each call to NextToken
// advances the underlying character stream and returns the next token.
type Lexer struct {
	stream  *source.CharStream
	mode    Mode
	errors  []Error
	halted  bool
	tracing bool
	trace   []string
}

// New creates a Lexer over text attributed to file. A leading UTF-8 BOM
// is stripped, matching common source-reading convention.
func New(file, text string, opts ...Option) *Lexer {
	if strings.HasPrefix(text, "\xef\xbb\xbf") {
		text = strings.TrimPrefix(text, "\xef\xbb\xbf")
	}
	l := &Lexer{stream: source.NewCharStream(file, text)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Errors returns all lexical errors recorded so far.
func (l *Lexer) Errors() []Error { return l.errors }

// Trace returns the accumulated trace lines when WithTracing was set.
func (l *Lexer) Trace() []string { return l.trace }

func (l *Lexer) addError(msg string, rng source.FileRange) {
	l.errors = append(l.errors, Error{Message: msg, Range: rng})
	l.halted = true
}

// NextToken returns the next token from the stream. Once a fatal lexical
// error has been recorded, every subsequent call returns an EOF token so
// callers can stop cleanly without special-casing the halt.
func (l *Lexer) NextToken() Token {
	for {
		tok := l.scanOne()
		if l.tracing {
			l.trace = append(l.trace, tok.Kind.String()+" "+tok.Image)
		}
		if l.mode == ModeIgnore && (tok.Kind == Comment || tok.Kind == Whitespace) {
			continue
		}
		return tok
	}
}

func (l *Lexer) scanOne() Token {
	if l.halted {
		return Token{Kind: EOF, Range: source.FileRange{Start: l.stream.Position(), End: l.stream.Position()}}
	}

	start := l.stream.Position()
	ch, ok := l.stream.First()
	if !ok {
		return Token{Kind: EOF, Range: source.FileRange{Start: start, End: start}}
	}

	// Rule 1: line comment.
	if ch == '/' {
		if next, ok := l.stream.PeekN(1); ok && next == '/' {
			return l.scanLineComment(start)
		}
		if next, ok := l.stream.PeekN(1); ok && next == '*' {
			return l.scanBlockComment(start)
		}
	}

	// Rule 3: identifier/reserved word.
	if isIdentStart(ch) {
		return l.scanIdentifier(start)
	}

	// Rule 4: numeric literal.
	if isDigit(ch) {
		return l.scanNumber(start)
	}

	// Rule 5: string literal.
	if ch == '"' {
		return l.scanString(start)
	}

	// Rule 6: character literal.
	if ch == '\'' {
		return l.scanChar(start)
	}

	// Rule 9: newline.
	if ch == '\n' {
		_, rest := l.stream.Read()
		l.stream = rest
		return Token{Kind: Newline, Range: source.RangeFromImage(start, "\n"), Image: "\n"}
	}
	if ch == '\r' {
		if next, ok := l.stream.PeekN(1); ok && next == '\n' {
			_, rest := l.stream.ForceRead(2)
			l.stream = rest
			return Token{Kind: Newline, Range: source.RangeFromImage(start, "\r\n"), Image: "\r\n"}
		}
	}

	// Rule 10: horizontal whitespace run.
	if ch == ' ' || ch == '\t' {
		return l.scanWhitespace(start)
	}

	// Rule 7: symbol characters (';' is special-cased to its own Semi kind).
	if isSymbolStart(ch) {
		return l.scanSymbol(start)
	}

	// Rule 8: operator run.
	if isOperatorChar(ch) {
		return l.scanOperator(start)
	}

	// Rule 11: invalid character.
	image, rest := l.stream.ForceRead(1)
	l.stream = rest
	l.addError("invalid character "+quoteRune(ch), source.RangeFromImage(start, image))
	return Token{Kind: Illegal, Range: source.RangeFromImage(start, image), Image: image}
}

func (l *Lexer) scanLineComment(start source.FilePosition) Token {
	var sb strings.Builder
	for {
		ch, ok := l.stream.First()
		if !ok || ch == '\n' {
			break
		}
		var r rune
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
	}
	return Token{Kind: Comment, Range: source.RangeFromImage(start, sb.String()), Image: sb.String()}
}

func (l *Lexer) scanBlockComment(start source.FilePosition) Token {
	var sb strings.Builder
	var r rune
	r, l.stream = l.stream.Read() // '/'
	sb.WriteRune(r)
	r, l.stream = l.stream.Read() // '*'
	sb.WriteRune(r)
	for {
		ch, ok := l.stream.First()
		if !ok {
			l.addError("unterminated comment", source.RangeFromImage(start, sb.String()))
			return Token{Kind: Illegal, Range: source.RangeFromImage(start, sb.String()), Image: sb.String()}
		}
		if ch == '*' {
			if next, ok := l.stream.PeekN(1); ok && next == '/' {
				var s string
				s, l.stream = l.stream.ForceRead(2)
				sb.WriteString(s)
				break
			}
		}
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
	}
	return Token{Kind: Comment, Range: source.RangeFromImage(start, sb.String()), Image: sb.String()}
}

func (l *Lexer) scanWhitespace(start source.FilePosition) Token {
	var sb strings.Builder
	for {
		ch, ok := l.stream.First()
		if !ok || (ch != ' ' && ch != '\t') {
			break
		}
		var r rune
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
	}
	return Token{Kind: Whitespace, Range: source.RangeFromImage(start, sb.String()), Image: sb.String()}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func (l *Lexer) scanIdentifier(start source.FilePosition) Token {
	var sb strings.Builder
	for {
		ch, ok := l.stream.First()
		if !ok || !isIdentPart(ch) {
			break
		}
		var r rune
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
	}
	image := sb.String()
	kind := Ident
	if ReservedWords[image] {
		kind = Reserved
	}
	return Token{Kind: kind, Range: source.RangeFromImage(start, image), Image: image}
}

const symbolChars = ":{}()[],=`.;"

func isSymbolStart(ch rune) bool {
	return strings.ContainsRune(symbolChars, ch)
}

func isOperatorChar(ch rune) bool {
	return strings.ContainsRune("~!$%^&*+-=|<>?/", ch)
}

func (l *Lexer) scanSymbol(start source.FilePosition) Token {
	ch, _ := l.stream.First()

	if ch == '=' {
		if next, ok := l.stream.PeekN(1); ok && next == '>' {
			image, rest := l.stream.ForceRead(2)
			l.stream = rest
			return Token{Kind: Symbol, Range: source.RangeFromImage(start, image), Image: image}
		}
		if next, ok := l.stream.PeekN(1); ok && isOperatorChar(next) {
			return l.scanOperator(start)
		}
	}

	image, rest := l.stream.ForceRead(1)
	l.stream = rest
	kind := Symbol
	if image == ";" {
		kind = Semi
	}
	return Token{Kind: kind, Range: source.RangeFromImage(start, image), Image: image}
}

func (l *Lexer) scanOperator(start source.FilePosition) Token {
	ch, _ := l.stream.First()
	// '<' and '>' are always emitted individually to keep angle-bracket
	// parsing (generics, comparisons) tractable (§4.2 rule 8).
	if ch == '<' || ch == '>' {
		image, rest := l.stream.ForceRead(1)
		l.stream = rest
		return Token{Kind: Oper, Range: source.RangeFromImage(start, image), Image: image}
	}

	var sb strings.Builder
	for {
		c, ok := l.stream.First()
		if !ok || !isOperatorChar(c) || c == '<' || c == '>' {
			break
		}
		var r rune
		r, l.stream = l.stream.Read()
		sb.WriteRune(r)
	}
	image := sb.String()
	return Token{Kind: Oper, Range: source.RangeFromImage(start, image), Image: image}
}

func quoteRune(ch rune) string {
	return "'" + string(ch) + "'"
}
