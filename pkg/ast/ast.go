// Package ast defines the syntax tree produced by internal/parser and
// annotated in place by internal/checker. Every node embeds NodeInfo,
// which carries its source range and (after checking) its resolved
// Type — the "node carries its own type field" design noted as the
// default choice for languages with ordinary interior mutability,
// rather than a side table keyed by node identity.
package ast

import (
	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/internal/typesys"
)

// NodeInfo is embedded by every concrete node. Nodes are always used by
// pointer so the checker can call SetType to fill in ResolvedType once
// it has computed it.
type NodeInfo struct {
	Span         source.FileRange
	ResolvedType typesys.Type
}

func (n *NodeInfo) Range() source.FileRange { return n.Span }

// SetType records the type the checker computed for this node.
func (n *NodeInfo) SetType(t typesys.Type) { n.ResolvedType = t }

// Type returns the type a prior checker visit cached for this node, or
// nil if it has not been visited yet.
func (n *NodeInfo) Type() typesys.Type { return n.ResolvedType }

// Node is implemented by every tree node.
type Node interface {
	Range() source.FileRange
}

// Typed is implemented by every node kind the checker assigns exactly
// one resolved Type to (invariant (a) of §3): every TypeNode, Param,
// Expression, ConstDeclaration, FunctionDeclaration, and
// TypeDeclaration, via the NodeInfo each embeds.
type Typed interface {
	Type() typesys.Type
	SetType(typesys.Type)
}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	Typed
	exprNode()
}

// Statement is implemented by every statement node.
type Statement interface {
	Node
	stmtNode()
}

// TypeNode is implemented by every type-annotation node.
type TypeNode interface {
	Node
	Typed
	typeNode()
}

// Declaration is implemented by every top-level declaration. DeclName
// returns "" for anonymous declarations (an exported anonymous function
// expression, for instance).
type Declaration interface {
	Node
	Typed
	declNode()
	DeclName() string
}

// Param is a function or lambda parameter. Type is nil for a lambda
// parameter awaiting inference (the parser leaves its ResolvedType nil;
// the checker sets it from the call site's expected function type).
type Param struct {
	NodeInfo
	Name string
	Type TypeNode
}

// TypeParam is one entry of a function or type declaration's
// `<T, +U: Constraint>` type-parameter list.
type TypeParam struct {
	NodeInfo
	Name       string
	Variance   typesys.Variance
	Constraint TypeNode
}

// FieldInit is one `name: value` entry of a struct literal.
type FieldInit struct {
	NodeInfo
	Name  string
	Value Expression
}

// ModuleRoot is the top of one source file's syntax tree (§4.4/§4.5).
type ModuleRoot struct {
	NodeInfo
	File         string
	Imports      []*ImportDeclaration
	Declarations []Declaration
	Exports      []ExportItem
}

// ImportDeclaration is `import from Path: Name` (binds the whole
// module as a namespace under Name) or `import from Path: { a, b as c
// }` (binds individual exported names, possibly renamed).
type ImportDeclaration struct {
	NodeInfo
	Path  string
	Alias string         // non-empty for `import from Path: Name`
	Names []ImportedName // non-nil for `import from Path: { ... }`
}

// ImportedName is one `name` or `name as alias` entry of an
// `import from Path: { ... }` item list.
type ImportedName struct {
	NodeInfo
	Name  string
	Alias string // equals Name when no `as` clause is present
}

// LocalName is the name this import binds in the importing module's
// scope under the whole-module form.
func (i *ImportDeclaration) LocalName() string {
	return i.Alias
}
