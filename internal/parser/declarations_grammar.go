package parser

import (
	"github.com/nilolang/nilo/internal/lexer"
	"github.com/nilolang/nilo/pkg/ast"
)

// parseDeclaration is the parse_declaration entry point: func, type, or
// const at module scope.
func (p *Parser) parseDeclaration() (ast.Declaration, bool) {
	t := p.c.Peek()
	if t.Kind != lexer.Reserved {
		return nil, false
	}
	switch t.Image {
	case "func":
		return p.parseFunctionDeclaration()
	case "type":
		return p.parseTypeDeclaration()
	case "const":
		return p.parseConstDeclaration()
	}
	return nil, false
}

// parseFunctionDeclaration parses
// `func R [name] [<T>](R1 p1, R2 p2, ...) => Body`. The return type
// comes first, before the name, and each parameter is type-first with
// no colon. Name is empty for the anonymous form used by
// `export default func R(...) => body`.
func (p *Parser) parseFunctionDeclaration() (ast.Declaration, bool) {
	start := p.here()
	p.c.Advance() // 'func'

	retType, ok := p.parseType()
	if !ok {
		p.fail("expected return type after 'func'", p.here())
		return nil, false
	}

	name := ""
	if p.atKind(lexer.Ident) {
		nameTok, _ := p.eatKind(lexer.Ident)
		name = nameTok.Image
	}

	var typeParams []ast.TypeParam
	if p.at(lexer.Oper, "<") {
		p.c.Advance()
		tps, ok := p.parseTypeParamList()
		if !ok || !p.consumeOper(">") {
			p.fail("expected type parameter list", p.here())
			return nil, false
		}
		typeParams = tps
	}

	if !p.consumeSymbol("(") {
		p.fail("expected '(' after function name", p.here())
		return nil, false
	}
	var params []ast.Param
	if !p.at(lexer.Symbol, ")") {
		for {
			ptype, ok := p.parseType()
			if !ok {
				p.fail("expected parameter type", p.here())
				return nil, false
			}
			nameTok, ok := p.eatKind(lexer.Ident)
			if !ok {
				p.fail("expected parameter name", p.here())
				return nil, false
			}
			params = append(params, ast.Param{
				NodeInfo: ast.NodeInfo{Span: spanFrom(ptype.Range(), nameTok.Range)},
				Name:     nameTok.Image,
				Type:     ptype,
			})
			if p.consumeSymbol(",") {
				continue
			}
			break
		}
	}
	if !p.consumeSymbol(")") {
		p.fail("expected ')'", p.here())
		return nil, false
	}

	if !p.consumeSymbol("=>") {
		p.fail("expected '=>' after parameter list", p.here())
		return nil, false
	}

	body, ok := p.parseFunctionBody()
	if !ok {
		p.fail("expected function body", p.here())
		return nil, false
	}

	return &ast.FunctionDeclaration{
		NodeInfo:   ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		Name:       name,
		TypeParams: typeParams,
		Params:     params,
		ReturnType: retType,
		Body:       body,
	}, true
}

// parseFunctionBody parses `FunctionBody := Block | Expression |
// Statement`, trying Block first so an empty block `{}` is never
// mistaken for an empty struct literal.
func (p *Parser) parseFunctionBody() (ast.Node, bool) {
	if p.at(lexer.Symbol, "{") {
		blk, ok := p.parseBlockStatement()
		if !ok {
			return nil, false
		}
		return blk, true
	}
	mark := p.c.Mark()
	if expr, ok := p.parseExpression(); ok {
		return expr, true
	}
	p.c.Reset(mark)
	stmt, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	return stmt, true
}

func (p *Parser) parseTypeDeclaration() (ast.Declaration, bool) {
	start := p.here()
	p.c.Advance() // 'type'
	nameTok, ok := p.eatKind(lexer.Ident)
	if !ok {
		p.fail("expected type name", p.here())
		return nil, false
	}
	var typeParams []ast.TypeParam
	if p.at(lexer.Oper, "<") {
		p.c.Advance()
		tps, ok := p.parseTypeParamList()
		if !ok || !p.consumeOper(">") {
			p.fail("expected type parameter list", p.here())
			return nil, false
		}
		typeParams = tps
	}
	if !p.consumeSymbol("=") {
		p.fail("expected '=' after type name", p.here())
		return nil, false
	}
	def, ok := p.parseType()
	if !ok {
		p.fail("expected type definition", p.here())
		return nil, false
	}
	return &ast.TypeDeclaration{
		NodeInfo:   ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		Name:       nameTok.Image,
		TypeParams: typeParams,
		Definition: def,
	}, true
}

// parseConstDeclaration parses `const name = value` (§4.4): the
// constant's type is always inferred from value, never declared.
func (p *Parser) parseConstDeclaration() (ast.Declaration, bool) {
	start := p.here()
	p.c.Advance() // 'const'
	nameTok, ok := p.eatKind(lexer.Ident)
	if !ok {
		p.fail("expected const name", p.here())
		return nil, false
	}
	if !p.consumeSymbol("=") {
		p.fail("expected '=' after const name", p.here())
		return nil, false
	}
	value, ok := p.parseExpression()
	if !ok {
		p.fail("expected const value", p.here())
		return nil, false
	}
	return &ast.ConstDeclaration{
		NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		Name:     nameTok.Image,
		Value:    value,
	}, true
}

// parseImport parses `import from "path": name` (whole-module
// namespace bind) or `import from "path": { a, b as c }` (named
// imports).
func (p *Parser) parseImport() (*ast.ImportDeclaration, bool) {
	start := p.here()

	if !p.atReserved("import") {
		return nil, false
	}
	p.c.Advance()
	if _, ok := p.eatReserved("from"); !ok {
		p.fail("expected 'from' after 'import'", p.here())
		return nil, false
	}
	pathTok, ok := p.eatKind(lexer.StringLiteral)
	if !ok {
		p.fail("expected import path string", p.here())
		return nil, false
	}
	if !p.consumeSymbol(":") {
		p.fail("expected ':' after import path", p.here())
		return nil, false
	}

	if p.at(lexer.Symbol, "{") {
		p.c.Advance()
		names, ok := p.parseImportedNames()
		if !ok {
			return nil, false
		}
		if !p.consumeSymbol("}") {
			p.fail("expected '}'", p.here())
			return nil, false
		}
		return &ast.ImportDeclaration{
			NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
			Path:     pathTok.StringValue,
			Names:    names,
		}, true
	}

	nameTok, ok := p.eatKind(lexer.Ident)
	if !ok {
		p.fail("expected a name or '{' after ':'", p.here())
		return nil, false
	}
	return &ast.ImportDeclaration{
		NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		Path:     pathTok.StringValue,
		Alias:    nameTok.Image,
	}, true
}

func (p *Parser) parseImportedNames() ([]ast.ImportedName, bool) {
	var names []ast.ImportedName
	for {
		nameTok, ok := p.eatKind(lexer.Ident)
		if !ok {
			p.fail("expected imported name", p.here())
			return nil, false
		}
		alias := nameTok.Image
		if _, ok := p.eatReserved("as"); ok {
			aliasTok, ok := p.eatKind(lexer.Ident)
			if !ok {
				p.fail("expected alias after 'as'", p.here())
				return nil, false
			}
			alias = aliasTok.Image
		}
		names = append(names, ast.ImportedName{
			NodeInfo: ast.NodeInfo{Span: spanFrom(nameTok.Range, p.lastRange())},
			Name:     nameTok.Image,
			Alias:    alias,
		})
		if p.consumeSymbol(",") {
			continue
		}
		break
	}
	return names, true
}

// parseExport parses one of the six export forms (§4.4/§4.5): a plain
// exported declaration, an exported default declaration, an exported
// default expression, `export * from`, `export { ... } from`, and a
// local `export { ... }` re-export list.
func (p *Parser) parseExport() (ast.ExportItem, bool) {
	start := p.here()
	p.c.Advance() // 'export'

	if _, ok := p.eatReserved("default"); ok {
		if decl, ok := p.tryParseDeclarationHead(); ok {
			return &ast.ExportDefaultDeclaration{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Decl: decl}, true
		}
		value, ok := p.parseExpression()
		if !ok {
			p.fail("expected default export value", p.here())
			return nil, false
		}
		return &ast.ExportDefaultExpression{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Value: value}, true
	}

	if p.consumeOper("*") {
		if _, ok := p.eatReserved("from"); !ok {
			p.fail("expected 'from'", p.here())
			return nil, false
		}
		pathTok, ok := p.eatKind(lexer.StringLiteral)
		if !ok {
			p.fail("expected import path string", p.here())
			return nil, false
		}
		return &ast.ExportForwardAll{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, From: pathTok.StringValue}, true
	}

	if p.at(lexer.Symbol, "{") {
		p.c.Advance()
		var names []ast.ExportedName
		if !p.at(lexer.Symbol, "}") {
			for {
				nameTok, ok := p.eatKind(lexer.Ident)
				if !ok {
					p.fail("expected exported name", p.here())
					return nil, false
				}
				alias := nameTok.Image
				if _, ok := p.eatReserved("as"); ok {
					aliasTok, ok := p.eatKind(lexer.Ident)
					if !ok {
						p.fail("expected alias after 'as'", p.here())
						return nil, false
					}
					alias = aliasTok.Image
				}
				names = append(names, ast.ExportedName{
					NodeInfo: ast.NodeInfo{Span: spanFrom(nameTok.Range, p.lastRange())},
					Name:     nameTok.Image,
					Alias:    alias,
				})
				if p.consumeSymbol(",") {
					continue
				}
				break
			}
		}
		if !p.consumeSymbol("}") {
			p.fail("expected '}'", p.here())
			return nil, false
		}
		if _, ok := p.eatReserved("from"); ok {
			pathTok, ok := p.eatKind(lexer.StringLiteral)
			if !ok {
				p.fail("expected import path string", p.here())
				return nil, false
			}
			return &ast.ExportForwardNamed{
				NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
				Names:    names,
				From:     pathTok.StringValue,
			}, true
		}
		return &ast.ExportNamedList{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Names: names}, true
	}

	decl, ok := p.parseDeclaration()
	if !ok {
		p.fail("expected declaration after 'export'", p.here())
		return nil, false
	}
	return &ast.ExportDeclaration{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Decl: decl}, true
}

func (p *Parser) tryParseDeclarationHead() (ast.Declaration, bool) {
	t := p.c.Peek()
	if t.Kind != lexer.Reserved {
		return nil, false
	}
	switch t.Image {
	case "func", "type", "const":
		return p.parseDeclaration()
	}
	return nil, false
}
