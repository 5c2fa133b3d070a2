package parser

import (
	"github.com/nilolang/nilo/internal/lexer"
	"github.com/nilolang/nilo/internal/source"
)

func spanFrom(start, end source.FileRange) source.FileRange {
	return source.FileRange{Start: start.Start, End: end.End}
}

func (p *Parser) lastRange() source.FileRange { return p.c.Previous().Range }

func (p *Parser) at(kind lexer.Kind, image string) bool {
	t := p.c.Peek()
	return t.Kind == kind && t.Image == image
}

func (p *Parser) atKind(kind lexer.Kind) bool { return p.c.Peek().Kind == kind }

func (p *Parser) atReserved(word string) bool {
	t := p.c.Peek()
	return t.Kind == lexer.Reserved && t.Image == word
}

func (p *Parser) eat(kind lexer.Kind, image string) (lexer.Token, bool) {
	if p.at(kind, image) {
		return p.c.Advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) eatKind(kind lexer.Kind) (lexer.Token, bool) {
	if p.atKind(kind) {
		return p.c.Advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) eatReserved(word string) (lexer.Token, bool) {
	if p.atReserved(word) {
		return p.c.Advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) consumeSymbol(image string) bool {
	_, ok := p.eat(lexer.Symbol, image)
	return ok
}

func (p *Parser) consumeOper(image string) bool {
	_, ok := p.eat(lexer.Oper, image)
	return ok
}
