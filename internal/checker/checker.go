// Package checker implements §4.6: a visitor that walks every loaded
// module's declarations and attaches a typesys.Type to each typed node,
// collecting non-fatal resolution and type diagnostics along the way.
// Unlike the teacher's Analyzer, which replaces its single context on
// every function/lambda entry (discarding the enclosing scope), the
// checker here keeps an explicit stack of scope frames so nested
// declarations restore their outer scope on exit (§9 REDESIGN FLAG).
package checker

import (
	"github.com/nilolang/nilo/internal/loader"
	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/internal/typesys"
	"github.com/nilolang/nilo/pkg/ast"
	"golang.org/x/text/unicode/norm"
)

func identKey(name string) string { return norm.NFC.String(name) }

// Checker runs §4.6 over every module of a loader.Program.
type Checker struct {
	prog   *loader.Program
	module *loader.Module
	scope  *scopeStack
	ops    *typesys.OperatorTable

	diags []source.Diagnostic

	// done memoizes a declaration's computed type; resolving detects a
	// const/type cycle that would otherwise recurse forever.
	done      map[ast.Declaration]typesys.Type
	resolving map[ast.Declaration]bool
}

// New constructs a Checker over an already-loaded program.
func New(prog *loader.Program) *Checker {
	return &Checker{
		prog:      prog,
		ops:       typesys.NewOperatorTable(),
		done:      make(map[ast.Declaration]typesys.Type),
		resolving: make(map[ast.Declaration]bool),
	}
}

// Check type-checks every module in load order and returns the combined,
// ordered diagnostics list (loader diagnostics are not included; callers
// that want both concatenate Program.Diagnostics and this result before
// a final source.SortByModuleThenPosition pass, since the two passes'
// diagnostics interleave by source position within a module).
func (c *Checker) Check() []source.Diagnostic {
	for _, m := range c.prog.Modules {
		c.checkModule(m)
	}
	source.SortByModuleThenPosition(c.diags, c.moduleOf)
	return c.diags
}

func (c *Checker) moduleOf(file string) int {
	for _, m := range c.prog.Modules {
		if m.Path == file {
			return m.ID
		}
	}
	return len(c.prog.Modules)
}

func (c *Checker) checkModule(m *loader.Module) {
	c.withModule(m, func() {
		for _, decl := range m.Root.Declarations {
			// Route through declType rather than checkDecl directly so the
			// resolving guard is already armed before the first visit: a
			// self-referential type or const discovered while checking its
			// own definition needs c.resolving populated to close the cycle
			// (RecursiveType) or report it, not recurse forever.
			c.declType(m, decl)
		}
	})
}

// withModule runs fn with c.module and c.scope switched to m's
// top-level scope, restoring the caller's on return. Declarations are
// checked lazily and may belong to a module other than the one
// currently being walked top-to-bottom (an imported name referenced
// before its own module reaches the front of Program.Modules), so every
// declaration visit goes through this rather than assuming c.module is
// already correct.
func (c *Checker) withModule(m *loader.Module, fn func()) {
	savedModule, savedScope := c.module, c.scope
	c.module = m
	c.scope = newScopeStack()
	c.scope.pushBoundary()
	fn()
	c.module, c.scope = savedModule, savedScope
}

func (c *Checker) errorf(rng source.FileRange, message string) {
	c.diags = append(c.diags, source.NewError(c.module.Path, rng, message))
}

// declType returns decl's resolved type, computing and memoizing it on
// first visit regardless of which module owns decl or which module is
// currently in scope.
func (c *Checker) declType(owner *loader.Module, decl ast.Declaration) typesys.Type {
	if t, ok := c.done[decl]; ok {
		return t
	}
	if c.resolving[decl] {
		// A const/type cycle that isn't resolved through RecursiveType
		// (only TypeDeclaration closes cycles that way): report once and
		// break it with Unknown.
		c.errorf(decl.Range(), "circular definition: "+decl.DeclName())
		return typesys.Unknown
	}
	c.resolving[decl] = true
	defer delete(c.resolving, decl)

	var t typesys.Type
	if owner == c.module {
		t = c.checkDecl(decl)
	} else {
		c.withModule(owner, func() { t = c.checkDecl(decl) })
	}
	return t
}

func (c *Checker) checkDecl(decl ast.Declaration) typesys.Type {
	if t, ok := c.done[decl]; ok {
		return t
	}
	var t typesys.Type
	switch d := decl.(type) {
	case *ast.ConstDeclaration:
		t = c.checkConstDecl(d)
	case *ast.FunctionDeclaration:
		t = c.checkFunctionDecl(d)
	case *ast.TypeDeclaration:
		t = c.checkTypeDecl(d)
	default:
		t = typesys.Unknown
	}
	c.done[decl] = t
	return t
}

func (c *Checker) checkConstDecl(d *ast.ConstDeclaration) typesys.Type {
	t := c.checkExpr(d.Value)
	d.SetType(t)
	c.scope.defineConst(identKey(d.Name), t)
	return t
}

func (c *Checker) checkFunctionDecl(d *ast.FunctionDeclaration) typesys.Type {
	c.scope.pushBoundary()
	defer c.scope.pop()

	typeParams := make([]typesys.TypeParamEntry, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		var constraint typesys.Type
		if tp.Constraint != nil {
			constraint = c.resolveType(tp.Constraint)
		}
		entry := typesys.TypeParamEntry{Name: tp.Name, Variance: tp.Variance, Constraint: constraint}
		typeParams[i] = entry
		c.scope.defineTypeParam(identKey(tp.Name), typesys.ParamType{Name: tp.Name, Variance: tp.Variance, Constraint: constraint})
	}

	paramTypes := make([]typesys.Type, len(d.Params))
	for i := range d.Params {
		pt := c.resolveType(d.Params[i].Type)
		paramTypes[i] = pt
		d.Params[i].SetType(pt)
		c.scope.define(identKey(d.Params[i].Name), pt)
	}

	declaredReturn := c.resolveType(d.ReturnType)
	bodyType := c.checkFunctionBodyType(d.Body)
	if typed, ok := d.Body.(ast.Typed); ok {
		typed.SetType(bodyType)
	}
	if !typesys.AssignableFrom(declaredReturn, bodyType) {
		c.errorf(d.Body.Range(), "type mismatch: expected "+describe(declaredReturn)+", got "+describe(bodyType))
	}

	fnType := typesys.FunctionType{Params: paramTypes, Return: declaredReturn, TypeParams: typeParams}
	d.SetType(fnType)
	return fnType
}

func (c *Checker) checkTypeDecl(d *ast.TypeDeclaration) typesys.Type {
	if len(d.TypeParams) == 0 {
		t := c.resolveType(d.Definition)
		d.SetType(t)
		return t
	}

	c.scope.pushBoundary()
	defer c.scope.pop()

	typeParams := make([]typesys.TypeParamEntry, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		var constraint typesys.Type
		if tp.Constraint != nil {
			constraint = c.resolveType(tp.Constraint)
		}
		typeParams[i] = typesys.TypeParamEntry{Name: tp.Name, Variance: tp.Variance, Constraint: constraint}
		c.scope.defineTypeParam(identKey(tp.Name), typesys.ParamType{Name: tp.Name, Variance: tp.Variance, Constraint: constraint})
	}

	body := c.resolveType(d.Definition)
	t := typesys.GenericType{TypeParams: typeParams, Body: body}
	d.SetType(t)
	return t
}

// describe renders a type for a diagnostic message. Unknown never
// reaches a user-facing message (§9): render it as a neutral
// placeholder instead of leaking the sentinel name.
func describe(t typesys.Type) string {
	if _, ok := t.(typesys.UnknownType); ok {
		return "<unresolved>"
	}
	return kindName(t)
}

func kindName(t typesys.Type) string {
	switch v := t.(type) {
	case typesys.IntegerType:
		if v.Signed {
			if v.Size == 0 {
				return "int"
			}
			return "i" + itoa(v.Size)
		}
		if v.Size == 0 {
			return "uint"
		}
		return "u" + itoa(v.Size)
	case typesys.FloatType:
		return "f" + itoa(v.Size)
	case typesys.CharType:
		return "char"
	case typesys.BoolType:
		return "bool"
	case typesys.ArrayType:
		return "[" + kindName(v.Element) + "]"
	case typesys.TupleType:
		if len(v.Members) == 0 {
			return "void"
		}
		return "tuple"
	case typesys.StructType:
		return "struct"
	case typesys.FunctionType:
		return "function"
	case typesys.GenericType:
		return "generic"
	case typesys.ParamType:
		return v.Name
	case typesys.ArgType:
		return kindName(v.Underlying)
	case typesys.UnionType:
		return "union"
	case typesys.AnyType:
		return "any"
	case typesys.NeverType:
		return "never"
	case typesys.RecursiveType:
		return v.Decl.DeclName()
	case typesys.InferredType:
		return "inferred"
	case typesys.NamespaceType:
		return "namespace"
	default:
		return "<unresolved>"
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}
