package parser

import (
	"github.com/nilolang/nilo/internal/lexer"
	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/internal/typesys"
	"github.com/nilolang/nilo/pkg/ast"
)

// parseType is the parse_type entry point: a union of one or more
// postfix types joined by '|'.
func (p *Parser) parseType() (ast.TypeNode, bool) {
	start := p.here()
	first, ok := p.parsePostfixType()
	if !ok {
		return nil, false
	}
	members := []ast.TypeNode{first}
	for p.at(lexer.Oper, "|") {
		p.c.Advance()
		next, ok := p.parsePostfixType()
		if !ok {
			p.fail("expected type after '|'", p.here())
			return nil, false
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return first, true
	}
	return &ast.UnionTypeNode{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Members: members}, true
}

// parsePostfixType parses a primary type followed by zero or more
// explicit generic applications, `Base<Arg1, Arg2>`.
func (p *Parser) parsePostfixType() (ast.TypeNode, bool) {
	start := p.here()
	base, ok := p.parsePrimaryType()
	if !ok {
		return nil, false
	}
	for p.at(lexer.Oper, "<") {
		mark := p.c.Mark()
		p.c.Advance()
		args, ok := p.parseTypeArgList()
		if !ok || !p.consumeOper(">") {
			p.c.Reset(mark)
			break
		}
		base = &ast.SpecificTypeNode{
			NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
			Base:     base,
			Args:     args,
		}
	}
	return base, true
}

func (p *Parser) parsePrimaryType() (ast.TypeNode, bool) {
	start := p.here()
	t := p.c.Peek()

	if t.Kind == lexer.Reserved && lexer.BuiltInTypeNames[t.Image] {
		p.c.Advance()
		return &ast.BuiltInTypeNode{NodeInfo: ast.NodeInfo{Span: t.Range}, Name: t.Image}, true
	}

	if t.Kind == lexer.Ident {
		p.c.Advance()
		if p.consumeSymbol(".") {
			member, ok := p.eatKind(lexer.Ident)
			if !ok {
				p.fail("expected member name after '.'", p.here())
				return nil, false
			}
			return &ast.NamespaceAccessTypeNode{
				NodeInfo:  ast.NodeInfo{Span: spanFrom(start, member.Range)},
				Namespace: t.Image,
				Member:    member.Image,
			}, true
		}
		return &ast.IdentifierTypeNode{NodeInfo: ast.NodeInfo{Span: t.Range}, Name: t.Image}, true
	}

	if p.consumeSymbol("[") {
		elem, ok := p.parseType()
		if !ok {
			p.fail("expected element type", p.here())
			return nil, false
		}
		if !p.consumeSymbol("]") {
			p.fail("expected ']'", p.here())
			return nil, false
		}
		return &ast.ArrayTypeNode{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Element: elem}, true
	}

	if p.at(lexer.Symbol, "{") {
		return p.parseStructType(start)
	}

	if p.at(lexer.Oper, "<") || p.at(lexer.Symbol, "(") {
		return p.parseFunctionOrGroupedType(start)
	}

	return nil, false
}

func (p *Parser) parseStructType(start source.FileRange) (ast.TypeNode, bool) {
	p.c.Advance() // '{'
	var fields []ast.StructFieldNode
	if !p.at(lexer.Symbol, "}") {
		for {
			nameTok, ok := p.eatKind(lexer.Ident)
			if !ok {
				p.fail("expected field name", p.here())
				return nil, false
			}
			if !p.consumeSymbol(":") {
				p.fail("expected ':' after field name", p.here())
				return nil, false
			}
			fieldType, ok := p.parseType()
			if !ok {
				p.fail("expected field type", p.here())
				return nil, false
			}
			fields = append(fields, ast.StructFieldNode{
				NodeInfo: ast.NodeInfo{Span: spanFrom(nameTok.Range, p.lastRange())},
				Name:     nameTok.Image,
				Type:     fieldType,
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
	return &ast.StructTypeNode{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Fields: fields}, true
}

// parseFunctionOrGroupedType handles the ambiguity between a function
// type `<T>(P1, P2) => R` and a parenthesized or tuple type `(T1, T2)`:
// it speculatively parses the function-type shape and falls back to
// parseGroupedType if the tell-tale '=>' never shows up.
func (p *Parser) parseFunctionOrGroupedType(start source.FileRange) (ast.TypeNode, bool) {
	mark := p.c.Mark()

	var typeParams []ast.TypeParam
	if p.at(lexer.Oper, "<") {
		p.c.Advance()
		tps, ok := p.parseTypeParamList()
		if !ok || !p.consumeOper(">") {
			p.c.Reset(mark)
			return p.parseGroupedType(start)
		}
		typeParams = tps
	}

	if !p.at(lexer.Symbol, "(") {
		p.c.Reset(mark)
		return p.parseGroupedType(start)
	}
	p.c.Advance()

	var params []ast.TypeNode
	if !p.at(lexer.Symbol, ")") {
		for {
			pt, ok := p.parseType()
			if !ok {
				p.c.Reset(mark)
				return p.parseGroupedType(start)
			}
			params = append(params, pt)
			if p.consumeSymbol(",") {
				continue
			}
			break
		}
	}
	if !p.consumeSymbol(")") {
		p.c.Reset(mark)
		return p.parseGroupedType(start)
	}
	if !p.consumeSymbol("=>") {
		p.c.Reset(mark)
		return p.parseGroupedType(start)
	}
	ret, ok := p.parseType()
	if !ok {
		p.fail("expected return type after '=>'", p.here())
		return nil, false
	}
	return &ast.FunctionTypeNode{
		NodeInfo:   ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		TypeParams: typeParams,
		Params:     params,
		Return:     ret,
	}, true
}

// parseGroupedType parses `(T)` (a ParenthesizedTypeNode) or `(T1, T2,
// ...)` (a TupleTypeNode) once parseFunctionOrGroupedType has ruled out
// the function-type shape.
func (p *Parser) parseGroupedType(start source.FileRange) (ast.TypeNode, bool) {
	if !p.consumeSymbol("(") {
		return nil, false
	}
	var members []ast.TypeNode
	if !p.at(lexer.Symbol, ")") {
		for {
			t, ok := p.parseType()
			if !ok {
				p.fail("expected type", p.here())
				return nil, false
			}
			members = append(members, t)
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
	span := spanFrom(start, p.lastRange())
	if len(members) == 1 {
		return &ast.ParenthesizedTypeNode{NodeInfo: ast.NodeInfo{Span: span}, Inner: members[0]}, true
	}
	return &ast.TupleTypeNode{NodeInfo: ast.NodeInfo{Span: span}, Members: members}, true
}

func (p *Parser) parseTypeArgList() ([]ast.TypeNode, bool) {
	var args []ast.TypeNode
	if p.at(lexer.Oper, ">") {
		return args, true
	}
	for {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args = append(args, t)
		if p.consumeSymbol(",") {
			continue
		}
		break
	}
	return args, true
}

func (p *Parser) parseTypeParamList() ([]ast.TypeParam, bool) {
	var params []ast.TypeParam
	if p.at(lexer.Oper, ">") {
		return params, true
	}
	for {
		start := p.here()
		variance := typesys.Invariant
		if p.consumeOper("+") {
			variance = typesys.Covariant
		} else if p.consumeOper("-") {
			variance = typesys.Contravariant
		}
		nameTok, ok := p.eatKind(lexer.Ident)
		if !ok {
			return nil, false
		}
		var constraint ast.TypeNode
		if p.consumeSymbol(":") {
			c, ok := p.parseType()
			if !ok {
				return nil, false
			}
			constraint = c
		}
		params = append(params, ast.TypeParam{
			NodeInfo:   ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
			Name:       nameTok.Image,
			Variance:   variance,
			Constraint: constraint,
		})
		if p.consumeSymbol(",") {
			continue
		}
		break
	}
	return params, true
}
