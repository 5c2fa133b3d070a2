package checker

import (
	"github.com/nilolang/nilo/internal/loader"
	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/internal/typesys"
	"github.com/nilolang/nilo/pkg/ast"
)

// resolveIdent resolves a bare value-name reference against the local
// scope stack, then the current module's own declarations, then its
// imports, in that order.
func (c *Checker) resolveIdent(name string, rng source.FileRange) typesys.Type {
	key := identKey(name)

	if t, ok := c.scope.lookup(key); ok {
		return t
	}

	if decl, ok := c.module.Names[key]; ok {
		switch decl.(type) {
		case *ast.ConstDeclaration, *ast.FunctionDeclaration:
			return c.declType(c.module, decl)
		default:
			c.errorf(rng, "name not defined: "+name)
			return typesys.Unknown
		}
	}

	if imp, ok := c.module.Imports[key]; ok {
		if !imp.Valid {
			return typesys.Unknown // already diagnosed while binding imports
		}
		target := c.prog.Modules[imp.ModuleID]
		if imp.Wildcard {
			return c.namespaceType(imp.ModuleID, target)
		}
		return c.exportType(target, imp.ExportName, rng)
	}

	c.errorf(rng, "name not defined: "+name)
	return typesys.Unknown
}

// exportType returns the type of exportName as seen from target,
// resolving a declaration export through declType or a bare-expression
// export (`export default <expr>`) by checking it in target's context.
func (c *Checker) exportType(target *loader.Module, exportName string, rng source.FileRange) typesys.Type {
	binding, ok := target.Exports[identKey(exportName)]
	if !ok {
		c.errorf(rng, "module does not export: "+exportName)
		return typesys.Unknown
	}
	if binding.Decl != nil {
		return c.declType(target, binding.Decl)
	}
	if binding.Value != nil {
		var t typesys.Type
		c.withModule(target, func() { t = c.checkExpr(binding.Value) })
		return t
	}
	return typesys.Unknown
}

// namespaceType builds the Namespace(module-id, exports) type a
// wildcard-imported module's local alias resolves to (§4.6).
func (c *Checker) namespaceType(moduleID int, target *loader.Module) typesys.Type {
	exports := make(map[string]typesys.Type, len(target.Exports))
	for name, binding := range target.Exports {
		if binding.Decl != nil {
			exports[name] = c.declType(target, binding.Decl)
			continue
		}
		if binding.Value != nil {
			var t typesys.Type
			c.withModule(target, func() { t = c.checkExpr(binding.Value) })
			exports[name] = t
			continue
		}
		exports[name] = typesys.Unknown
	}
	return typesys.NamespaceType{ModuleID: moduleID, Exports: exports}
}

// namespaceMember looks a qualified-access name up against a Namespace
// type's export table.
func namespaceMember(ns typesys.NamespaceType, name string) (typesys.Type, bool) {
	t, ok := ns.Exports[identKey(name)]
	return t, ok
}
