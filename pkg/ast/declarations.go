package ast

import "github.com/nilolang/nilo/internal/typesys"

// This file holds the Declaration tagged union and the six export
// forms (§4.4/§4.5): a plain exported declaration, an exported default
// declaration, an exported default expression, a forward `export *
// from`, a forward `export { a, b as c } from`, and a local
// `export { a, b as c }` re-export list.

// FunctionDeclaration is `func R name<T>(R1 p1, ...) => body`. Name is
// "" for the anonymous form used by `export default func R(...) => {}`.
// Body is always one of Block, Expression, or Statement (FunctionBody).
type FunctionDeclaration struct {
	NodeInfo
	Name       string
	TypeParams []TypeParam
	Params     []Param
	ReturnType TypeNode // never nil: the grammar requires a return type
	Body       Node
}

func (*FunctionDeclaration) declNode()        {}
func (d *FunctionDeclaration) DeclName() string { return d.Name }

// TypeDeclaration is `type Name<T> = Definition`. It implements
// typesys.TypeDeclRef so a RecursiveType can close a cycle through it
// without typesys importing this package.
type TypeDeclaration struct {
	NodeInfo
	Name       string
	TypeParams []TypeParam
	Definition TypeNode
}

func (*TypeDeclaration) declNode()          {}
func (d *TypeDeclaration) DeclName() string { return d.Name }

// Resolved implements typesys.TypeDeclRef, giving a RecursiveType that
// points at this declaration a way to reach its checked definition.
func (d *TypeDeclaration) Resolved() typesys.Type { return d.ResolvedType }

// ConstDeclaration is `const name = value`; its type is always
// inferred from Value.
type ConstDeclaration struct {
	NodeInfo
	Name  string
	Value Expression
}

func (*ConstDeclaration) declNode()          {}
func (d *ConstDeclaration) DeclName() string { return d.Name }

// ExportItem is implemented by each of the six export forms.
type ExportItem interface {
	Node
	exportNode()
}

// ExportedName is one `name` or `name as alias` entry of an export
// list.
type ExportedName struct {
	NodeInfo
	Name  string
	Alias string // equals Name when no `as` clause is present
}

// ExportDeclaration is `export <declaration>`: the wrapped declaration
// is also added to ModuleRoot.Declarations so non-exported references
// within the module resolve normally.
type ExportDeclaration struct {
	NodeInfo
	Decl Declaration
}

func (*ExportDeclaration) exportNode() {}

// ExportDefaultDeclaration is `export default <declaration>` (the
// declaration may be anonymous, e.g. a default-exported function).
type ExportDefaultDeclaration struct {
	NodeInfo
	Decl Declaration
}

func (*ExportDefaultDeclaration) exportNode() {}

// ExportDefaultExpression is `export default <expr>` for a default
// export that is a bare value rather than a named declaration.
type ExportDefaultExpression struct {
	NodeInfo
	Value Expression
}

func (*ExportDefaultExpression) exportNode() {}

// ExportForwardAll is `export * from "path"`.
type ExportForwardAll struct {
	NodeInfo
	From string
}

func (*ExportForwardAll) exportNode() {}

// ExportForwardNamed is `export { a, b as c } from "path"`.
type ExportForwardNamed struct {
	NodeInfo
	Names []ExportedName
	From  string
}

func (*ExportForwardNamed) exportNode() {}

// ExportNamedList is `export { a, b as c }`, re-exporting bindings
// already visible in this module (an import, a local declaration, or
// both).
type ExportNamedList struct {
	NodeInfo
	Names []ExportedName
}

func (*ExportNamedList) exportNode() {}
