package parser

import (
	"github.com/nilolang/nilo/internal/lexer"
	"github.com/nilolang/nilo/pkg/ast"
)

func (p *Parser) consumeSemi() bool {
	if p.atKind(lexer.Semi) {
		p.c.Advance()
		return true
	}
	return false
}

// parseStatement is the parse_statement entry point.
func (p *Parser) parseStatement() (ast.Statement, bool) {
	t := p.c.Peek()
	if t.Kind == lexer.Symbol && t.Image == "{" {
		return p.parseBlockStatement()
	}
	if t.Kind == lexer.Reserved {
		switch t.Image {
		case "for":
			return p.parseFor()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoWhile()
		case "try":
			return p.parseTryCatch()
		case "return":
			return p.parseReturn()
		case "throw":
			return p.parseThrow()
		case "break":
			p.c.Advance()
			return &ast.BreakStatement{NodeInfo: ast.NodeInfo{Span: t.Range}}, true
		case "continue":
			p.c.Advance()
			return &ast.ContinueStatement{NodeInfo: ast.NodeInfo{Span: t.Range}}, true
		}
	}
	start := p.here()
	expr, ok := p.parseExpression()
	if !ok {
		return nil, false
	}
	return &ast.ExpressionStatement{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Expr: expr}, true
}

// parseBlockStatement parses `{ stmt stmt ... }`. A Semi token between
// statements is accepted but never required.
func (p *Parser) parseBlockStatement() (*ast.BlockStatement, bool) {
	start := p.here()
	if !p.consumeSymbol("{") {
		return nil, false
	}
	var stmts []ast.Statement
	for !p.at(lexer.Symbol, "}") && !p.c.AtEOF() {
		s, ok := p.parseStatement()
		if !ok {
			p.fail("expected statement", p.here())
			return nil, false
		}
		stmts = append(stmts, s)
		p.consumeSemi()
	}
	if !p.consumeSymbol("}") {
		p.fail("expected '}'", p.here())
		return nil, false
	}
	return &ast.BlockStatement{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Statements: stmts}, true
}

func (p *Parser) parseFor() (ast.Statement, bool) {
	start := p.here()
	p.c.Advance() // 'for'
	nameTok, ok := p.eatKind(lexer.Ident)
	if !ok {
		p.fail("expected loop variable name", p.here())
		return nil, false
	}
	if _, ok := p.eatReserved("in"); !ok {
		p.fail("expected 'in'", p.here())
		return nil, false
	}
	iterable, ok := p.parseExpression()
	if !ok {
		p.fail("expected iterable expression", p.here())
		return nil, false
	}
	body, ok := p.parseStatement()
	if !ok {
		p.fail("expected loop body", p.here())
		return nil, false
	}
	return &ast.ForStatement{
		NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		VarName:  nameTok.Image,
		Iterable: iterable,
		Body:     body,
	}, true
}

func (p *Parser) parseWhile() (ast.Statement, bool) {
	start := p.here()
	p.c.Advance() // 'while'
	cond, ok := p.parseExpression()
	if !ok {
		p.fail("expected condition", p.here())
		return nil, false
	}
	body, ok := p.parseStatement()
	if !ok {
		p.fail("expected loop body", p.here())
		return nil, false
	}
	return &ast.WhileStatement{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Condition: cond, Body: body}, true
}

func (p *Parser) parseDoWhile() (ast.Statement, bool) {
	start := p.here()
	p.c.Advance() // 'do'
	body, ok := p.parseStatement()
	if !ok {
		p.fail("expected loop body", p.here())
		return nil, false
	}
	if _, ok := p.eatReserved("while"); !ok {
		p.fail("expected 'while'", p.here())
		return nil, false
	}
	cond, ok := p.parseExpression()
	if !ok {
		p.fail("expected condition", p.here())
		return nil, false
	}
	return &ast.DoWhileStatement{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Body: body, Condition: cond}, true
}

func (p *Parser) parseTryCatch() (ast.Statement, bool) {
	start := p.here()
	p.c.Advance() // 'try'
	tryBody, ok := p.parseStatement()
	if !ok {
		p.fail("expected try body", p.here())
		return nil, false
	}
	if _, ok := p.eatReserved("catch"); !ok {
		p.fail("expected 'catch'", p.here())
		return nil, false
	}
	if !p.consumeSymbol("(") {
		p.fail("expected '(' after 'catch'", p.here())
		return nil, false
	}
	nameTok, ok := p.eatKind(lexer.Ident)
	if !ok {
		p.fail("expected catch parameter name", p.here())
		return nil, false
	}
	var typeAnn ast.TypeNode
	if p.consumeSymbol(":") {
		t, ok := p.parseType()
		if !ok {
			p.fail("expected catch parameter type", p.here())
			return nil, false
		}
		typeAnn = t
	}
	if !p.consumeSymbol(")") {
		p.fail("expected ')'", p.here())
		return nil, false
	}
	catchBody, ok := p.parseStatement()
	if !ok {
		p.fail("expected catch body", p.here())
		return nil, false
	}
	var finallyBody ast.Statement
	if _, ok := p.eatReserved("finally"); ok {
		fb, ok := p.parseStatement()
		if !ok {
			p.fail("expected finally body", p.here())
			return nil, false
		}
		finallyBody = fb
	}
	return &ast.TryCatchStatement{
		NodeInfo:   ast.NodeInfo{Span: spanFrom(start, p.lastRange())},
		Try:        tryBody,
		CatchParam: ast.Param{NodeInfo: ast.NodeInfo{Span: nameTok.Range}, Name: nameTok.Image, Type: typeAnn},
		Catch:      catchBody,
		Finally:    finallyBody,
	}, true
}

func (p *Parser) parseReturn() (ast.Statement, bool) {
	start := p.here()
	p.c.Advance() // 'return'
	var value ast.Expression
	if !p.at(lexer.Symbol, "}") && !p.atKind(lexer.Semi) && !p.c.AtEOF() {
		if v, ok := p.parseExpression(); ok {
			value = v
		}
	}
	return &ast.ReturnStatement{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Value: value}, true
}

func (p *Parser) parseThrow() (ast.Statement, bool) {
	start := p.here()
	p.c.Advance() // 'throw'
	value, ok := p.parseExpression()
	if !ok {
		p.fail("expected expression after 'throw'", p.here())
		return nil, false
	}
	return &ast.ThrowStatement{NodeInfo: ast.NodeInfo{Span: spanFrom(start, p.lastRange())}, Value: value}, true
}
