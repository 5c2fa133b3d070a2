package loader

import "github.com/nilolang/nilo/internal/source"

// bindImports runs §4.5 step 4: for each import, resolve the imported
// module and validate every requested name against its export table,
// recording alias -> (module id, export name) in the importing module's
// Imports table. An unresolved module, a name it does not export, or a
// re-exported name that itself never resolved all produce a diagnostic;
// the affected binding is left invalid so the checker can type it
// Unknown rather than cascade further errors.
func (l *Loader) bindImports() {
	for _, m := range l.modules {
		for _, imp := range m.Root.Imports {
			resolved, ok := l.resolveImportPath(m.Path, imp.Path)
			if !ok {
				continue // already diagnosed while loading
			}
			target := l.byPath[resolved]
			if target == nil {
				continue
			}

			switch {
			case len(imp.Names) == 0:
				m.Imports[identKey(imp.LocalName())] = ImportBinding{ModuleID: target.ID, Wildcard: true, Valid: true}
			default:
				for _, nm := range imp.Names {
					if _, ok := target.Exports[identKey(nm.Name)]; !ok {
						l.diags = append(l.diags, source.NewError(m.Path, nm.Range(), "module does not export: "+nm.Name))
						m.Imports[identKey(nm.Alias)] = ImportBinding{ModuleID: target.ID, ExportName: nm.Name, Valid: false}
						continue
					}
					m.Imports[identKey(nm.Alias)] = ImportBinding{ModuleID: target.ID, ExportName: nm.Name, Valid: true}
				}
			}
		}
	}

	for _, m := range l.modules {
		for exportName, binding := range m.Exports {
			if binding.ImportName == "" {
				continue
			}
			resolved := l.resolveImportedExport(m, binding.ImportName)
			m.Exports[exportName] = resolved
		}
	}
}

// resolveImportedExport finds the ExportBinding that a local `export {
// name }` re-export of an imported name ultimately refers to.
func (l *Loader) resolveImportedExport(m *Module, localName string) ExportBinding {
	imp, ok := m.Imports[identKey(localName)]
	if !ok || !imp.Valid || imp.Wildcard {
		return ExportBinding{}
	}
	if imp.ModuleID < 0 || imp.ModuleID >= len(l.modules) {
		return ExportBinding{}
	}
	target := l.modules[imp.ModuleID]
	resolved, ok := target.Exports[identKey(imp.ExportName)]
	if !ok {
		return ExportBinding{}
	}
	return resolved
}
