// Package typesys implements the type algebra of §3/§4.7: the fourteen
// core type variants plus the Unknown/Recursive/Inferred/Namespace
// utility kinds, and the visitor-style operations (assignability,
// specification, inference, behavioral queries) that act on them.
//
// Each variant is its own Go type implementing the Type interface, so
// operations dispatch with an ordinary type switch rather than per-type
// method overrides — the "pattern matching on a sum type" alternative
// the design notes call out as preferable to boilerplate-heavy
// interfaces-with-one-method-per-variant.
package typesys

// Kind tags which of the eighteen variants a Type value is.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindChar
	KindBool
	KindArray
	KindStruct
	KindTuple
	KindFunction
	KindGeneric
	KindParam
	KindArg
	KindUnion
	KindAny
	KindNever
	KindUnknown
	KindRecursive
	KindInferred
	KindNamespace
)

// Type is satisfied by every variant. Values are immutable once
// constructed (§3 invariant e): operations that "modify" a type return a
// fresh value instead of mutating the receiver.
type Type interface {
	Kind() Kind
}

// Variance is how a type parameter's subtyping direction relates to its
// container's.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

// IntegerType is Integer(size, signed). Size is one of 8, 16, 32, 64, or
// 0 to mean unbounded (∞).
type IntegerType struct {
	Size   int
	Signed bool
}

func (IntegerType) Kind() Kind { return KindInteger }

// FloatType is Float(size). Size is 32 or 64.
type FloatType struct{ Size int }

func (FloatType) Kind() Kind { return KindFloat }

type CharType struct{}

func (CharType) Kind() Kind { return KindChar }

type BoolType struct{}

func (BoolType) Kind() Kind { return KindBool }

// ArrayType is Array(element).
type ArrayType struct{ Element Type }

func (ArrayType) Kind() Kind { return KindArray }

// StructField is one entry of a Struct's ordered field map.
type StructField struct {
	Name string
	Type Type
}

// StructType is Struct(fields), fields kept in declaration order.
type StructType struct{ Fields []StructField }

func (StructType) Kind() Kind { return KindStruct }

// Field looks up a field by name, preserving declaration order on ties
// (there should be none).
func (s StructType) Field(name string) (Type, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// TupleType is Tuple(members).
type TupleType struct{ Members []Type }

func (TupleType) Kind() Kind { return KindTuple }

// TypeParamEntry is one entry of a Function or Generic's ordered
// type-param map.
type TypeParamEntry struct {
	Name       string
	Variance   Variance
	Constraint Type // nil means unconstrained (effectively Any)
}

// FunctionType is Function(params, return, type-params).
type FunctionType struct {
	Params     []Type
	Return     Type
	TypeParams []TypeParamEntry
}

func (FunctionType) Kind() Kind { return KindFunction }

// IsGeneric reports whether the function has any type parameters.
func (f FunctionType) IsGeneric() bool { return len(f.TypeParams) > 0 }

// GenericType is Generic(type-params, body): a type scheme not yet
// applied to arguments.
type GenericType struct {
	TypeParams []TypeParamEntry
	Body       Type
}

func (GenericType) Kind() Kind { return KindGeneric }

// ParamType is Param(name, variance, constraint): an unsubstituted type
// parameter occurring inside a generic body.
type ParamType struct {
	Name       string
	Variance   Variance
	Constraint Type
}

func (ParamType) Kind() Kind { return KindParam }

// ArgType is Arg(variance, underlying): a type parameter after
// substitution, still carrying its variance for assignability.
type ArgType struct {
	Variance   Variance
	Underlying Type
}

func (ArgType) Kind() Kind { return KindArg }

// UnionType is Union(members).
type UnionType struct{ Members []Type }

func (UnionType) Kind() Kind { return KindUnion }

type AnyType struct{}

func (AnyType) Kind() Kind { return KindAny }

type NeverType struct{}

func (NeverType) Kind() Kind { return KindNever }

// UnknownType is the error sentinel: it behaves like Never for
// assignability but must never reach a user-facing message.
type UnknownType struct{}

func (UnknownType) Kind() Kind { return KindUnknown }

// TypeDeclRef is the minimal surface RecursiveType needs from the
// declaration that closes the cycle. It is satisfied structurally by
// pkg/ast's type-declaration node, which keeps typesys from importing
// ast (ast already imports typesys for the Type interface itself).
type TypeDeclRef interface {
	DeclName() string
	Resolved() Type
}

// RecursiveType is Recursive(pointer to declaration): the cycle-closing
// point of a recursive type.
type RecursiveType struct{ Decl TypeDeclRef }

func (RecursiveType) Kind() Kind { return KindRecursive }

// InferredType is the placeholder produced for lambda parameter/return
// types before context is known.
type InferredType struct{}

func (InferredType) Kind() Kind { return KindInferred }

// NamespaceType is the type of a wildcard-imported module: its members
// are that module's exports, reachable by qualified name.
type NamespaceType struct {
	ModuleID int
	Exports  map[string]Type
}

func (NamespaceType) Kind() Kind { return KindNamespace }

// Singletons for the variants with no data.
var (
	Any      Type = AnyType{}
	Never    Type = NeverType{}
	Unknown  Type = UnknownType{}
	Inferred Type = InferredType{}
	Bool     Type = BoolType{}
	Char     Type = CharType{}
)

// NewInteger constructs Integer(size, signed).
func NewInteger(size int, signed bool) Type { return IntegerType{Size: size, Signed: signed} }

// NewFloat constructs Float(size).
func NewFloat(size int) Type { return FloatType{Size: size} }
