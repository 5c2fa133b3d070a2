package parser

import (
	"github.com/nilolang/nilo/internal/lexer"
	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/pkg/ast"
)

// Error is a syntactic diagnostic. Like a lexical Error, every parse
// Error is fatal for its module (§7): parsing of the module halts at
// the first one, and the diagnostic is retained while the module's
// declarations are left empty so sibling modules can still be loaded
// and checked.
type Error struct {
	Message string
	Range   source.FileRange
}

// Parser drives the grammar productions over a token Cursor, in the
// teacher's style of a single stateful struct with one method per
// production rather than a table-driven or generated parser.
type Parser struct {
	c      *Cursor
	file   string
	errors []Error
	halted bool
}

// New constructs a Parser over file's already-lexed tokens.
func New(file string, tokens []lexer.Token) *Parser {
	return &Parser{c: NewCursor(tokens), file: file}
}

// Errors returns every parse error recorded so far.
func (p *Parser) Errors() []Error { return p.errors }

func (p *Parser) fail(msg string, rng source.FileRange) {
	if p.halted {
		return
	}
	p.errors = append(p.errors, Error{Message: msg, Range: rng})
	p.halted = true
}

func (p *Parser) here() source.FileRange {
	t := p.c.Peek()
	return t.Range
}

// ParseModule parses a complete source file into a ModuleRoot. On a
// fatal error it returns a ModuleRoot with no declarations alongside
// the recorded diagnostics, per §7's halt-this-module-only contract.
func ParseModule(file string, tokens []lexer.Token) (*ast.ModuleRoot, []Error) {
	p := New(file, tokens)
	root := p.parseModuleRoot()
	return root, p.errors
}

func (p *Parser) parseModuleRoot() *ast.ModuleRoot {
	start := p.here()
	root := &ast.ModuleRoot{File: p.file}

	for !p.halted && !p.c.AtEOF() {
		if p.c.Peek().Kind == lexer.Reserved && (p.c.Peek().Image == "import" || p.c.Peek().Image == "from") {
			imp, ok := p.parseImport()
			if !ok {
				p.fail("expected import declaration", p.here())
				break
			}
			root.Imports = append(root.Imports, imp)
			continue
		}
		if p.c.Peek().Kind == lexer.Reserved && p.c.Peek().Image == "export" {
			item, ok := p.parseExport()
			if !ok {
				p.fail("expected export declaration", p.here())
				break
			}
			root.Exports = append(root.Exports, item)
			if decl := declFromExport(item); decl != nil {
				root.Declarations = append(root.Declarations, decl)
			}
			continue
		}
		decl, ok := p.parseDeclaration()
		if !ok {
			p.fail("expected declaration", p.here())
			break
		}
		root.Declarations = append(root.Declarations, decl)
	}

	if p.halted {
		root.Declarations = nil
		root.Exports = nil
	}

	root.Span = source.FileRange{Start: start.Start, End: p.here().End}
	return root
}

func declFromExport(item ast.ExportItem) ast.Declaration {
	switch v := item.(type) {
	case *ast.ExportDeclaration:
		return v.Decl
	case *ast.ExportDefaultDeclaration:
		return v.Decl
	default:
		return nil
	}
}
