package checker

import "github.com/nilolang/nilo/internal/typesys"

// builtinTypes maps every reserved type keyword (internal/lexer's
// BuiltInTypeNames) onto the type-algebra value it denotes. The fourteen
// variants of §3 have no separate String or Void case, so `string`
// resolves to Array(Char) and `void` to the empty Tuple (a zero-arity
// product, i.e. the conventional encoding of "no meaningful value").
// Several keywords are width/signedness aliases of an `iN`/`uN`/`fN`
// entry rather than distinct types.
var builtinTypes = map[string]typesys.Type{
	"i8":  typesys.NewInteger(8, true),
	"i16": typesys.NewInteger(16, true),
	"i32": typesys.NewInteger(32, true),
	"i64": typesys.NewInteger(64, true),
	"int": typesys.NewInteger(32, true),

	"u8":  typesys.NewInteger(8, false),
	"u16": typesys.NewInteger(16, false),
	"u32": typesys.NewInteger(32, false),
	"u64": typesys.NewInteger(64, false),

	"byte":    typesys.NewInteger(8, false),
	"short":   typesys.NewInteger(16, true),
	"integer": typesys.NewInteger(32, true),
	"long":    typesys.NewInteger(64, true),

	"f32":    typesys.NewFloat(32),
	"f64":    typesys.NewFloat(64),
	"float":  typesys.NewFloat(32),
	"double": typesys.NewFloat(64),

	"char": typesys.Char,
	"bool": typesys.Bool,
	"any":  typesys.Any,
	"void": typesys.TupleType{},

	"string": typesys.ArrayType{Element: typesys.Char},
}
