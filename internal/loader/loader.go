// Package loader builds a Program from an entry-point module path: a
// depth-first walk of the import graph (§4.5), followed by per-module
// name-table and export-table construction, followed by import binding.
// Every module is read and parsed at most once; diagnostics are emitted
// in module-load order, matching §5's ordering guarantee.
package loader

import (
	"path"
	"strings"

	"github.com/nilolang/nilo/internal/lexer"
	"github.com/nilolang/nilo/internal/parser"
	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/pkg/ast"
)

// FileSystem is the one operation the loader consumes from the outside
// per §6(a): reading a module's full source text. Import-path resolution
// (§6(b)) is owned by the Loader itself (resolveImportPath) so that the
// package-root registry stays an explicit constructor argument rather
// than living behind this interface.
type FileSystem interface {
	ReadFile(path string) (string, error)
}

// ExportBinding is what a module's export table maps one exported name
// to: a declaration (ExportDeclaration, ExportDefaultDeclaration under
// the name "default"), a bare value (ExportDefaultExpression, also under
// "default"), or a reference to one of this module's own imports
// (`export { importedName }`), resolved once bindImports has run.
type ExportBinding struct {
	Decl       ast.Declaration
	Value      ast.Expression
	ImportName string // non-empty: resolve through m.Imports[ImportName] instead
}

// ImportBinding is what a module's import table maps one locally-bound
// name to. Valid is false when the import could not be resolved or
// named a non-existent export; the checker binds such names to
// typesys.Unknown rather than failing the module (§4.5 failure
// behavior).
type ImportBinding struct {
	ModuleID   int
	ExportName string
	Wildcard   bool
	Valid      bool
}

// Module is one parsed, name-resolved source file.
type Module struct {
	ID      int
	Path    string
	Root    *ast.ModuleRoot
	Names   map[string]ast.Declaration
	Exports map[string]ExportBinding
	Imports map[string]ImportBinding

	resolved bool // export-forward resolution already ran (cycle/memo guard)
}

// Program is the result of loading an entry-point module and its
// transitive imports.
type Program struct {
	Modules     []*Module
	Diagnostics []source.Diagnostic
}

// Loader walks an import graph over an injected FileSystem and
// package-root registry, producing a Program.
type Loader struct {
	fs    FileSystem
	roots map[string]string

	modules []*Module
	byPath  map[string]*Module
	diags   []source.Diagnostic
}

// New constructs a Loader over fs, resolving package-qualified import
// paths (those not starting with "." or "..") against roots (package
// name -> root directory).
func New(fs FileSystem, roots map[string]string) *Loader {
	return &Loader{fs: fs, roots: roots, byPath: make(map[string]*Module)}
}

// Load parses entryPath and its transitive imports into a Program. Module
// ids reflect first-reach order (§5).
func (l *Loader) Load(entryPath string) *Program {
	l.loadModule(entryPath, l.normalizePath(entryPath))
	l.buildNameTables()
	l.bindImports()
	source.SortByModuleThenPosition(l.diags, l.moduleOf)
	return &Program{Modules: l.modules, Diagnostics: l.diags}
}

func (l *Loader) moduleOf(file string) int {
	if m, ok := l.byPath[file]; ok {
		return m.ID
	}
	return len(l.modules)
}

func (l *Loader) normalizePath(p string) string {
	if !strings.HasSuffix(p, ".nilo") {
		p += ".nilo"
	}
	return path.Clean(p)
}

// loadModule reads, lexes, and parses the file at resolvedPath and
// recurses into every import and export-forward it names. Already-loaded
// paths are reused rather than re-read, so mutual imports terminate.
func (l *Loader) loadModule(originalPath, resolvedPath string) *Module {
	if m, ok := l.byPath[resolvedPath]; ok {
		return m
	}

	text, err := l.fs.ReadFile(resolvedPath)
	if err != nil {
		l.diags = append(l.diags, source.NewError(originalPath, source.FileRange{}, "module not found: "+originalPath))
		return nil
	}

	lx := lexer.New(resolvedPath, text)
	var toks []lexer.Token
	for {
		tok := lx.NextToken()
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}

	root, perrs := parser.ParseModule(resolvedPath, toks)
	for _, e := range lx.Errors() {
		l.diags = append(l.diags, source.NewError(resolvedPath, e.Range, e.Message))
	}
	for _, e := range perrs {
		l.diags = append(l.diags, source.NewError(resolvedPath, e.Range, e.Message))
	}

	m := &Module{
		ID:      len(l.modules),
		Path:    resolvedPath,
		Root:    root,
		Names:   make(map[string]ast.Declaration),
		Exports: make(map[string]ExportBinding),
		Imports: make(map[string]ImportBinding),
	}
	l.modules = append(l.modules, m)
	l.byPath[resolvedPath] = m

	for _, imp := range root.Imports {
		if target, ok := l.resolveImportPath(resolvedPath, imp.Path); ok {
			l.loadModule(imp.Path, target)
		} else {
			l.diags = append(l.diags, source.NewError(resolvedPath, imp.Range(), "cannot resolve import: "+imp.Path))
		}
	}
	for _, item := range root.Exports {
		switch fwd := item.(type) {
		case *ast.ExportForwardAll:
			if target, ok := l.resolveImportPath(resolvedPath, fwd.From); ok {
				l.loadModule(fwd.From, target)
			} else {
				l.diags = append(l.diags, source.NewError(resolvedPath, fwd.Range(), "cannot resolve import: "+fwd.From))
			}
		case *ast.ExportForwardNamed:
			if target, ok := l.resolveImportPath(resolvedPath, fwd.From); ok {
				l.loadModule(fwd.From, target)
			} else {
				l.diags = append(l.diags, source.NewError(resolvedPath, fwd.Range(), "cannot resolve import: "+fwd.From))
			}
		}
	}
	return m
}

// resolveImportPath implements §6(b): a leading "." or ".." makes
// importPath relative to fromPath's directory; otherwise its first path
// segment names a package in the root registry.
func (l *Loader) resolveImportPath(fromPath, importPath string) (string, bool) {
	if strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../") {
		return l.normalizePath(path.Join(path.Dir(fromPath), importPath)), true
	}
	segs := strings.SplitN(importPath, "/", 2)
	root, ok := l.roots[segs[0]]
	if !ok {
		return "", false
	}
	if len(segs) == 1 {
		return l.normalizePath(root), true
	}
	return l.normalizePath(path.Join(root, segs[1])), true
}
