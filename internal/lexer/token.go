// Package lexer implements the lazy, position-tracking tokenizer for nilo
// source files: a character stream in, a stream of classified Tokens out.
package lexer

import "github.com/nilolang/nilo/internal/source"

// Kind classifies a Token.
type Kind int

const (
	Comment Kind = iota
	Ident
	Reserved
	IntegerLiteral
	FloatLiteral
	StringLiteral
	CharacterLiteral
	Oper
	Symbol
	Whitespace
	Newline
	Semi
	EOF
	Illegal
)

func (k Kind) String() string {
	switch k {
	case Comment:
		return "Comment"
	case Ident:
		return "Ident"
	case Reserved:
		return "Reserved"
	case IntegerLiteral:
		return "IntegerLiteral"
	case FloatLiteral:
		return "FloatLiteral"
	case StringLiteral:
		return "StringLiteral"
	case CharacterLiteral:
		return "CharacterLiteral"
	case Oper:
		return "Oper"
	case Symbol:
		return "Symbol"
	case Whitespace:
		return "Whitespace"
	case Newline:
		return "Newline"
	case Semi:
		return "Semi"
	case EOF:
		return "EOF"
	default:
		return "Illegal"
	}
}

// Token is one lexeme: its kind, its source range, the verbatim source
// image, and — for literals — the value the lexer computed.
type Token struct {
	Kind  Kind
	Range source.FileRange
	Image string

	IntValue    int64
	FloatValue  float64
	StringValue string
	CharValue   rune
}

// ReservedWords is the complete set of identifier-shaped tokens that are
// keywords rather than names, per §4.2 rule 3.
var ReservedWords = map[string]bool{
	"int": true, "i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"byte": true, "short": true, "integer": true, "long": true,
	"f32": true, "f64": true, "float": true, "double": true,
	"char": true, "string": true, "bool": true, "void": true, "any": true,

	"if": true, "else": true, "while": true, "do": true, "for": true,
	"in": true, "break": true, "continue": true, "return": true,
	"throw": true, "try": true, "catch": true, "finally": true,

	"func": true, "type": true, "const": true, "import": true,
	"export": true, "default": true, "from": true, "as": true,

	"true": true, "false": true,
}

// BuiltInTypeNames is the subset of ReservedWords that name a built-in
// type, any of which may appear as a Type base production.
var BuiltInTypeNames = map[string]bool{
	"int": true, "i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"byte": true, "short": true, "integer": true, "long": true,
	"f32": true, "f64": true, "float": true, "double": true,
	"char": true, "string": true, "bool": true, "void": true, "any": true,
}
