package parser

import (
	"github.com/nilolang/nilo/internal/lexer"
	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/pkg/ast"
)

// parseExpression is the parse_expression entry point. var-decl and
// lambda are tried first since both start with a token sequence that
// would otherwise be mistaken for a lower-precedence expression (an
// identifier, or an open paren that also starts a parenthesized/tuple
// expression); both back out cleanly via Cursor.Reset on mismatch.
func (p *Parser) parseExpression() (ast.Expression, bool) {
	if e, ok := p.tryParseVarDecl(); ok {
		return e, true
	}
	if e, ok := p.tryParseLambda(); ok {
		return e, true
	}
	return p.parseOr()
}

// tryParseVarDecl parses `const name[: Type] = value` in expression
// position: a local binding whose value is the expression's value. The
// same `const` keyword introduces a module-level ConstDeclaration;
// which production applies is decided by where the parser is called
// from (parseDeclaration vs. parseExpression).
func (p *Parser) tryParseVarDecl() (ast.Expression, bool) {
	if !p.atReserved("const") {
		return nil, false
	}
	mark := p.c.Mark()
	start := p.here()
	p.c.Advance()
	nameTok, ok := p.eatKind(lexer.Ident)
	if !ok {
		p.c.Reset(mark)
		return nil, false
	}
	var typeAnn ast.TypeNode
	if p.consumeSymbol(":") {
		t, ok := p.parseType()
		if !ok {
			p.c.Reset(mark)
			return nil, false
		}
		typeAnn = t
	}
	if !p.consumeSymbol("=") {
		p.c.Reset(mark)
		return nil, false
	}
	value, ok := p.parseExpression()
	if !ok {
		p.fail("expected expression after '='", p.here())
		return nil, false
	}
	return &ast.VarDeclExpr{
		NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		Name:     nameTok.Image,
		Type:     typeAnn,
		Value:    value,
	}, true
}

// tryParseLambda parses `(params)[: R] => body`, the single-parameter
// shorthand `name => body`, and the generic form `<T>(params) => body`.
func (p *Parser) tryParseLambda() (ast.Expression, bool) {
	start := p.here()
	mark := p.c.Mark()

	var typeParams []ast.TypeParam
	if p.at(lexer.Oper, "<") {
		p.c.Advance()
		tps, ok := p.parseTypeParamList()
		if !ok || !p.consumeOper(">") {
			p.c.Reset(mark)
			return nil, false
		}
		typeParams = tps
	}

	var params []ast.Param
	switch {
	case p.at(lexer.Symbol, "("):
		p.c.Advance()
		if !p.at(lexer.Symbol, ")") {
			for {
				nameTok, ok := p.eatKind(lexer.Ident)
				if !ok {
					p.c.Reset(mark)
					return nil, false
				}
				var typeAnn ast.TypeNode
				if p.consumeSymbol(":") {
					t, ok := p.parseType()
					if !ok {
						p.c.Reset(mark)
						return nil, false
					}
					typeAnn = t
				}
				params = append(params, ast.Param{
					NodeInfo: ast.NodeInfo{Span: spanFrom(nameTok.Range, p.lastRange())},
					Name:     nameTok.Image,
					Type:     typeAnn,
				})
				if p.consumeSymbol(",") {
					continue
				}
				break
			}
		}
		if !p.consumeSymbol(")") {
			p.c.Reset(mark)
			return nil, false
		}
	case len(typeParams) == 0 && p.atKind(lexer.Ident):
		nameTok, _ := p.eatKind(lexer.Ident)
		params = append(params, ast.Param{NodeInfo: ast.NodeInfo{Span: nameTok.Range}, Name: nameTok.Image})
	default:
		p.c.Reset(mark)
		return nil, false
	}

	var retType ast.TypeNode
	if p.consumeSymbol(":") {
		t, ok := p.parseType()
		if !ok {
			p.c.Reset(mark)
			return nil, false
		}
		retType = t
	}

	if !p.consumeSymbol("=>") {
		p.c.Reset(mark)
		return nil, false
	}
	body, ok := p.parseExpression()
	if !ok {
		p.fail("expected lambda body after '=>'", p.here())
		return nil, false
	}
	return &ast.LambdaExpr{
		NodeInfo:   ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		TypeParams: typeParams,
		Params:     params,
		ReturnType: retType,
		Body:       body,
	}, true
}

func (p *Parser) parseOr() (ast.Expression, bool) {
	return p.parseSimpleLeftAssoc([]string{"||"}, p.parseAnd)
}

func (p *Parser) parseAnd() (ast.Expression, bool) {
	return p.parseSimpleLeftAssoc([]string{"&&"}, p.parseEquality)
}

func (p *Parser) parseEquality() (ast.Expression, bool) {
	return p.parseSimpleLeftAssoc([]string{"==", "!="}, p.parseRelational)
}

// parseRelational handles '<', '>', '<=', '>='. The lexer always emits
// '<' and '>' as lone one-character tokens (§4.2 rule 8, kept that way
// so generic-application brackets stay easy to parse); '<=' and '>='
// are recovered here by checking for an immediately adjacent '=' token
// (zero gap between ranges) rather than at the lexer.
func (p *Parser) parseRelational() (ast.Expression, bool) {
	left, ok := p.parseAdditive()
	if !ok {
		return nil, false
	}
	for {
		op, matched := p.matchRelationalOp()
		if !matched {
			break
		}
		right, ok := p.parseAdditive()
		if !ok {
			p.fail("expected expression after '"+op+"'", p.here())
			return nil, false
		}
		left = &ast.BinaryExpr{
			NodeInfo: ast.NodeInfo{Span: spanFrom(left.Range(), p.lastRange())},
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}
	return left, true
}

func (p *Parser) matchRelationalOp() (string, bool) {
	t := p.c.Peek()
	if t.Kind != lexer.Oper || (t.Image != "<" && t.Image != ">") {
		return "", false
	}
	p.c.Advance()
	if eq := p.c.Peek(); eq.Kind == lexer.Symbol && eq.Image == "=" && eq.Range.Start == t.Range.End {
		p.c.Advance()
		return t.Image + "=", true
	}
	return t.Image, true
}

func (p *Parser) parseAdditive() (ast.Expression, bool) {
	return p.parseSimpleLeftAssoc([]string{"+", "-"}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expression, bool) {
	return p.parseSimpleLeftAssoc([]string{"*", "/", "%"}, p.parseUnary)
}

// parseSimpleLeftAssoc folds a chain of same-precedence infix operators
// (each a single Oper token whose image is one of ops) into a
// left-associative BinaryExpr tree.
func (p *Parser) parseSimpleLeftAssoc(ops []string, next func() (ast.Expression, bool)) (ast.Expression, bool) {
	left, ok := next()
	if !ok {
		return nil, false
	}
	for {
		matched := ""
		if p.atKind(lexer.Oper) {
			img := p.c.Peek().Image
			for _, op := range ops {
				if op == img {
					matched = op
					break
				}
			}
		}
		if matched == "" {
			break
		}
		p.c.Advance()
		right, ok := next()
		if !ok {
			p.fail("expected expression after '"+matched+"'", p.here())
			return nil, false
		}
		left = &ast.BinaryExpr{
			NodeInfo: ast.NodeInfo{Span: spanFrom(left.Range(), p.lastRange())},
			Op:       matched,
			Left:     left,
			Right:    right,
		}
	}
	return left, true
}

func (p *Parser) parseUnary() (ast.Expression, bool) {
	if p.atKind(lexer.Oper) {
		img := p.c.Peek().Image
		if img == "-" || img == "!" {
			start := p.here()
			p.c.Advance()
			operand, ok := p.parseUnary()
			if !ok {
				p.fail("expected operand after '"+img+"'", p.here())
				return nil, false
			}
			return &ast.UnaryExpr{
				NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
				Op:       img,
				Operand:  operand,
			}, true
		}
	}
	return p.parsePostfix()
}

// parsePostfix folds field access, indexing, and call chains onto a
// primary expression.
func (p *Parser) parsePostfix() (ast.Expression, bool) {
	start := p.here()
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch {
		case p.consumeSymbol("."):
			fieldTok, ok := p.eatKind(lexer.Ident)
			if !ok {
				p.fail("expected field name after '.'", p.here())
				return nil, false
			}
			expr = &ast.FieldAccessExpr{
				NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
				Target:   expr,
				Field:    fieldTok.Image,
			}
		case p.consumeSymbol("["):
			idx, ok := p.parseExpression()
			if !ok {
				p.fail("expected index expression", p.here())
				return nil, false
			}
			if !p.consumeSymbol("]") {
				p.fail("expected ']'", p.here())
				return nil, false
			}
			expr = &ast.ArrayAccessExpr{
				NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
				Array:    expr,
				Index:    idx,
			}
		case p.at(lexer.Symbol, "(") || p.at(lexer.Oper, "<"):
			var typeArgs []ast.TypeNode
			if p.at(lexer.Oper, "<") {
				mark := p.c.Mark()
				p.c.Advance()
				args, ok := p.parseTypeArgList()
				if !ok || !p.consumeOper(">") || !p.at(lexer.Symbol, "(") {
					p.c.Reset(mark)
				} else {
					typeArgs = args
				}
			}
			if !p.at(lexer.Symbol, "(") {
				return expr, true
			}
			p.c.Advance()
			var args []ast.Expression
			if !p.at(lexer.Symbol, ")") {
				for {
					a, ok := p.parseExpression()
					if !ok {
						p.fail("expected argument expression", p.here())
						return nil, false
					}
					args = append(args, a)
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
			expr = &ast.ApplicationExpr{
				NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
				Callee:   expr,
				TypeArgs: typeArgs,
				Args:     args,
			}
		default:
			return expr, true
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, bool) {
	t := p.c.Peek()
	switch t.Kind {
	case lexer.IntegerLiteral:
		p.c.Advance()
		return &ast.IntegerLiteralExpr{NodeInfo: ast.NodeInfo{Span: t.Range}, Value: t.IntValue}, true
	case lexer.FloatLiteral:
		p.c.Advance()
		return &ast.FloatLiteralExpr{NodeInfo: ast.NodeInfo{Span: t.Range}, Value: t.FloatValue}, true
	case lexer.StringLiteral:
		p.c.Advance()
		return &ast.StringLiteralExpr{NodeInfo: ast.NodeInfo{Span: t.Range}, Value: t.StringValue}, true
	case lexer.CharacterLiteral:
		p.c.Advance()
		return &ast.CharLiteralExpr{NodeInfo: ast.NodeInfo{Span: t.Range}, Value: t.CharValue}, true
	case lexer.Reserved:
		switch t.Image {
		case "true":
			p.c.Advance()
			return &ast.BoolLiteralExpr{NodeInfo: ast.NodeInfo{Span: t.Range}, Value: true}, true
		case "false":
			p.c.Advance()
			return &ast.BoolLiteralExpr{NodeInfo: ast.NodeInfo{Span: t.Range}, Value: false}, true
		case "if":
			return p.tryParseIfElse()
		}
		return nil, false
	case lexer.Ident:
		p.c.Advance()
		// `Name { field: ... }` is a struct literal; `cond { ... }` as in
		// `while cond { body }` leaves the brace to the enclosing statement.
		if p.at(lexer.Symbol, "{") && p.c.PeekAt(1).Kind == lexer.Ident &&
			p.c.PeekAt(2).Kind == lexer.Symbol && p.c.PeekAt(2).Image == ":" {
			return p.parseStructLiteral(&ast.IdentifierTypeNode{NodeInfo: ast.NodeInfo{Span: t.Range}, Name: t.Image}, t.Range)
		}
		return &ast.IdentifierExpr{NodeInfo: ast.NodeInfo{Span: t.Range}, Name: t.Image}, true
	case lexer.Symbol:
		switch t.Image {
		case "(":
			return p.parseParenOrTuple()
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseStructLiteral(nil, t.Range)
		}
	}
	return nil, false
}

func (p *Parser) tryParseIfElse() (ast.Expression, bool) {
	start := p.here()
	p.c.Advance() // 'if'
	cond, ok := p.parseExpression()
	if !ok {
		p.fail("expected condition after 'if'", p.here())
		return nil, false
	}
	thenExpr, ok := p.parseBlockOrExpr()
	if !ok {
		p.fail("expected 'then' branch", p.here())
		return nil, false
	}
	if _, ok := p.eatReserved("else"); !ok {
		p.fail("expected 'else'", p.here())
		return nil, false
	}
	elseExpr, ok := p.parseBlockOrExpr()
	if !ok {
		p.fail("expected 'else' branch", p.here())
		return nil, false
	}
	return &ast.IfElseExpr{
		NodeInfo:  ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		Condition: cond,
		Then:      thenExpr,
		Else:      elseExpr,
	}, true
}

func (p *Parser) parseBlockOrExpr() (ast.Expression, bool) {
	if p.at(lexer.Symbol, "{") {
		block, ok := p.parseBlockStatement()
		if !ok {
			return nil, false
		}
		return &ast.BlockExpr{NodeInfo: ast.NodeInfo{Span: block.Range()}, Block: block}, true
	}
	return p.parseExpression()
}

func (p *Parser) parseParenOrTuple() (ast.Expression, bool) {
	start := p.here()
	p.c.Advance() // '('
	var elems []ast.Expression
	if !p.at(lexer.Symbol, ")") {
		for {
			e, ok := p.parseExpression()
			if !ok {
				p.fail("expected expression", p.here())
				return nil, false
			}
			elems = append(elems, e)
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
	if len(elems) == 1 {
		return &ast.ParenthesizedExpr{NodeInfo: ast.NodeInfo{Span: span}, Inner: elems[0]}, true
	}
	return &ast.TupleLiteralExpr{NodeInfo: ast.NodeInfo{Span: span}, Elements: elems}, true
}

func (p *Parser) parseArrayLiteral() (ast.Expression, bool) {
	start := p.here()
	p.c.Advance() // '['
	var elems []ast.Expression
	if !p.at(lexer.Symbol, "]") {
		for {
			e, ok := p.parseExpression()
			if !ok {
				p.fail("expected expression", p.here())
				return nil, false
			}
			elems = append(elems, e)
			if p.consumeSymbol(",") {
				continue
			}
			break
		}
	}
	if !p.consumeSymbol("]") {
		p.fail("expected ']'", p.here())
		return nil, false
	}
	return &ast.ArrayLiteralExpr{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Elements: elems}, true
}

func (p *Parser) parseStructLiteral(typeRef ast.TypeNode, start source.FileRange) (ast.Expression, bool) {
	p.c.Advance() // '{'
	var fields []ast.FieldInit
	if !p.at(lexer.Symbol, "}") {
		for {
			nameTok, ok := p.eatKind(lexer.Ident)
			if !ok {
				p.fail("expected field name", p.here())
				return nil, false
			}
			if !p.consumeSymbol(":") {
				p.fail("expected ':'", p.here())
				return nil, false
			}
			value, ok := p.parseExpression()
			if !ok {
				p.fail("expected field value", p.here())
				return nil, false
			}
			fields = append(fields, ast.FieldInit{
				NodeInfo: ast.NodeInfo{Span: spanFrom(nameTok.Range, p.lastRange())},
				Name:     nameTok.Image,
				Value:    value,
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
	return &ast.StructLiteralExpr{
		NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		TypeRef:  typeRef,
		Fields:   fields,
	}, true
}
