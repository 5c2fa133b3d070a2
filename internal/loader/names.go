package loader

import (
	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/pkg/ast"
	"golang.org/x/text/unicode/norm"
)

// identKey is the comparison key used for declaration and export names:
// Unicode NFC normalization so two differently-composed but canonically
// equal identifiers (e.g. a precomposed vs. combining-mark accented
// letter) are treated as the same name, rather than a naive byte compare.
func identKey(name string) string {
	return norm.NFC.String(name)
}

// buildNameTables runs §4.5 step 3 over every loaded module: record
// (name -> declaration) for each top-level declaration, diagnosing a
// duplicate on the later declaration, then populate the non-forwarding
// export forms directly from the module's own export list.
func (l *Loader) buildNameTables() {
	for _, m := range l.modules {
		for _, decl := range m.Root.Declarations {
			name := decl.DeclName()
			if name == "" {
				continue
			}
			key := identKey(name)
			if _, dup := m.Names[key]; dup {
				l.diags = append(l.diags, source.NewError(m.Path, decl.Range(), "duplicate declaration: "+name))
				continue
			}
			m.Names[key] = decl
		}

		for _, item := range m.Root.Exports {
			switch e := item.(type) {
			case *ast.ExportDeclaration:
				m.Exports[identKey(e.Decl.DeclName())] = ExportBinding{Decl: e.Decl}
			case *ast.ExportDefaultDeclaration:
				m.Exports["default"] = ExportBinding{Decl: e.Decl}
			case *ast.ExportDefaultExpression:
				m.Exports["default"] = ExportBinding{Value: e.Value}
			case *ast.ExportNamedList:
				for _, en := range e.Names {
					key := identKey(en.Name)
					if decl, ok := m.Names[key]; ok {
						m.Exports[identKey(en.Alias)] = ExportBinding{Decl: decl}
						continue
					}
					if _, ok := importByLocalName(m.Root, en.Name); ok {
						m.Exports[identKey(en.Alias)] = ExportBinding{ImportName: en.Name}
						continue
					}
					l.diags = append(l.diags, source.NewError(m.Path, en.Range(), "export of undefined name: "+en.Name))
				}
			}
		}
	}

	for _, m := range l.modules {
		l.effectiveExports(m, make(map[int]bool))
	}
}

// effectiveExports resolves ExportForwardAll and ExportForwardNamed into
// m.Exports, recursing into the forwarded-from module first so a chain of
// re-exports resolves transitively. A module revisited while still being
// resolved (an export cycle) is returned as-is rather than recursed into
// again.
func (l *Loader) effectiveExports(m *Module, visiting map[int]bool) map[string]ExportBinding {
	if m == nil || m.resolved || visiting[m.ID] {
		if m == nil {
			return nil
		}
		return m.Exports
	}
	visiting[m.ID] = true
	defer delete(visiting, m.ID)

	for _, item := range m.Root.Exports {
		switch fwd := item.(type) {
		case *ast.ExportForwardAll:
			target := l.forwardTarget(m.Path, fwd.From)
			if target == nil {
				l.diags = append(l.diags, source.NewError(m.Path, fwd.Range(), "cannot resolve export-forward module: "+fwd.From))
				continue
			}
			src := l.effectiveExports(target, visiting)
			for name, binding := range src {
				m.Exports[name] = binding
			}
		case *ast.ExportForwardNamed:
			target := l.forwardTarget(m.Path, fwd.From)
			if target == nil {
				l.diags = append(l.diags, source.NewError(m.Path, fwd.Range(), "cannot resolve export-forward module: "+fwd.From))
				continue
			}
			src := l.effectiveExports(target, visiting)
			for _, en := range fwd.Names {
				binding, ok := src[identKey(en.Name)]
				if !ok {
					l.diags = append(l.diags, source.NewError(m.Path, en.Range(), "module does not export: "+en.Name))
					continue
				}
				m.Exports[identKey(en.Alias)] = binding
			}
		}
	}

	m.resolved = true
	return m.Exports
}

func (l *Loader) forwardTarget(fromPath, importPath string) *Module {
	resolved, ok := l.resolveImportPath(fromPath, importPath)
	if !ok {
		return nil
	}
	return l.byPath[resolved]
}

// importByLocalName finds the import declaration that binds name as its
// local name, used to tell a local re-export of an import apart from an
// export of an undefined name.
func importByLocalName(root *ast.ModuleRoot, name string) (*ast.ImportDeclaration, bool) {
	for _, imp := range root.Imports {
		if imp.LocalName() == name {
			return imp, true
		}
		for _, nm := range imp.Names {
			if nm.Alias == name {
				return imp, true
			}
		}
	}
	return nil, false
}
