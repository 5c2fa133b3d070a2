package parser

import (
	"testing"

	"github.com/nilolang/nilo/internal/lexer"
	"github.com/nilolang/nilo/pkg/ast"
)

func lexAll(t *testing.T, src string) []lexer.Token {
	t.Helper()
	l := lexer.New("t.nilo", src)
	var toks []lexer.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}
	if errs := l.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	return toks
}

func parseExprString(t *testing.T, src string) ast.Expression {
	t.Helper()
	p := New("t.nilo", lexAll(t, src))
	expr, ok := p.parseExpression()
	if !ok {
		t.Fatalf("parseExpression(%q) failed: %v", src, p.Errors())
	}
	return expr
}

func parseTypeString(t *testing.T, src string) ast.TypeNode {
	t.Helper()
	p := New("t.nilo", lexAll(t, src))
	typ, ok := p.parseType()
	if !ok {
		t.Fatalf("parseType(%q) failed: %v", src, p.Errors())
	}
	return typ
}

func TestParseFunctionTypeVsTupleTypeVsParenType(t *testing.T) {
	switch typ := parseTypeString(t, "(int, int) => bool").(type) {
	case *ast.FunctionTypeNode:
		if len(typ.Params) != 2 {
			t.Fatalf("expected 2 params, got %d", len(typ.Params))
		}
	default:
		t.Fatalf("expected FunctionTypeNode, got %T", typ)
	}

	switch typ := parseTypeString(t, "(int, float)").(type) {
	case *ast.TupleTypeNode:
		if len(typ.Members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(typ.Members))
		}
	default:
		t.Fatalf("expected TupleTypeNode, got %T", typ)
	}

	switch typ := parseTypeString(t, "(int)").(type) {
	case *ast.ParenthesizedTypeNode:
		if _, ok := typ.Inner.(*ast.BuiltInTypeNode); !ok {
			t.Fatalf("expected builtin inner type, got %T", typ.Inner)
		}
	default:
		t.Fatalf("expected ParenthesizedTypeNode, got %T", typ)
	}
}

func TestParseUnionType(t *testing.T) {
	typ, ok := parseTypeString(t, "int | string").(*ast.UnionTypeNode)
	if !ok {
		t.Fatalf("expected UnionTypeNode, got %T", typ)
	}
	if len(typ.Members) != 2 {
		t.Fatalf("expected 2 union members, got %d", len(typ.Members))
	}
}

func TestParseLambdaVsParenExpr(t *testing.T) {
	switch e := parseExprString(t, "(x: int, y: int) => x").(type) {
	case *ast.LambdaExpr:
		if len(e.Params) != 2 {
			t.Fatalf("expected 2 lambda params, got %d", len(e.Params))
		}
	default:
		t.Fatalf("expected LambdaExpr, got %T", e)
	}

	switch e := parseExprString(t, "(1, 2)").(type) {
	case *ast.TupleLiteralExpr:
		if len(e.Elements) != 2 {
			t.Fatalf("expected 2 tuple elements, got %d", len(e.Elements))
		}
	default:
		t.Fatalf("expected TupleLiteralExpr, got %T", e)
	}

	switch e := parseExprString(t, "(1)").(type) {
	case *ast.ParenthesizedExpr:
	default:
		t.Fatalf("expected ParenthesizedExpr, got %T", e)
	}

	switch e := parseExprString(t, "x => x").(type) {
	case *ast.LambdaExpr:
		if len(e.Params) != 1 || e.Params[0].Name != "x" {
			t.Fatalf("expected single shorthand param 'x', got %+v", e.Params)
		}
	default:
		t.Fatalf("expected LambdaExpr, got %T", e)
	}
}

func TestParseRelationalOperatorRecovery(t *testing.T) {
	e, ok := parseExprString(t, "a <= b").(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got different type")
	}
	if e.Op != "<=" {
		t.Fatalf("expected op '<=', got %q", e.Op)
	}

	e, ok = parseExprString(t, "a >= b").(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got different type")
	}
	if e.Op != ">=" {
		t.Fatalf("expected op '>=', got %q", e.Op)
	}

	e, ok = parseExprString(t, "a < b").(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got different type")
	}
	if e.Op != "<" {
		t.Fatalf("expected op '<', got %q", e.Op)
	}
}

func TestParseImportForms(t *testing.T) {
	root, errs := ParseModule("t.nilo", lexAll(t, `import from "list": List`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(root.Imports) != 1 || root.Imports[0].LocalName() != "List" {
		t.Fatalf("expected one import aliased List, got %+v", root.Imports)
	}

	root, errs = ParseModule("t.nilo", lexAll(t, `import from "list": { map, filter as keep }`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(root.Imports) != 1 || len(root.Imports[0].Names) != 2 {
		t.Fatalf("expected one import with 2 names, got %+v", root.Imports)
	}
	if root.Imports[0].Names[1].Alias != "keep" {
		t.Fatalf("expected second name aliased 'keep', got %+v", root.Imports[0].Names[1])
	}
}

func TestParseExportForms(t *testing.T) {
	root, errs := ParseModule("t.nilo", lexAll(t, `export const answer = 42`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := root.Exports[0].(*ast.ExportDeclaration); !ok {
		t.Fatalf("expected ExportDeclaration, got %T", root.Exports[0])
	}
	if len(root.Declarations) != 1 {
		t.Fatalf("expected exported decl also added to Declarations, got %d", len(root.Declarations))
	}

	root, errs = ParseModule("t.nilo", lexAll(t, `export default func int(int x) => { return x }`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl, ok := root.Exports[0].(*ast.ExportDefaultDeclaration)
	if !ok {
		t.Fatalf("expected ExportDefaultDeclaration, got %T", root.Exports[0])
	}
	if decl.Decl.DeclName() != "" {
		t.Fatalf("expected anonymous default function, got name %q", decl.Decl.DeclName())
	}

	root, errs = ParseModule("t.nilo", lexAll(t, `export default 42`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := root.Exports[0].(*ast.ExportDefaultExpression); !ok {
		t.Fatalf("expected ExportDefaultExpression, got %T", root.Exports[0])
	}

	root, errs = ParseModule("t.nilo", lexAll(t, `export * from "list"`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fwd, ok := root.Exports[0].(*ast.ExportForwardAll)
	if !ok || fwd.From != "list" {
		t.Fatalf("expected ExportForwardAll from 'list', got %+v", root.Exports[0])
	}

	root, errs = ParseModule("t.nilo", lexAll(t, `export { map, filter as keep } from "list"`))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	named, ok := root.Exports[0].(*ast.ExportForwardNamed)
	if !ok || len(named.Names) != 2 || named.From != "list" {
		t.Fatalf("expected ExportForwardNamed with 2 names from 'list', got %+v", root.Exports[0])
	}

	root, errs = ParseModule("t.nilo", lexAll(t, "const total = 1\nexport { total }"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	list, ok := root.Exports[0].(*ast.ExportNamedList)
	if !ok || len(list.Names) != 1 || list.Names[0].Name != "total" {
		t.Fatalf("expected ExportNamedList with 'total', got %+v", root.Exports[0])
	}
}

func TestParseModuleHaltsOnFirstError(t *testing.T) {
	root, errs := ParseModule("t.nilo", lexAll(t, "const x ="))
	if len(errs) != 1 {
		t.Fatalf("expected exactly one fatal error, got %d: %v", len(errs), errs)
	}
	if root.Declarations != nil {
		t.Fatalf("expected nil Declarations on halted module, got %v", root.Declarations)
	}
}

func TestParseTypeDeclarationAndConstDeclaration(t *testing.T) {
	root, errs := ParseModule("t.nilo", lexAll(t, "type Pair<T> = (T, T)\nconst zero = 0"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(root.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(root.Declarations))
	}
	typeDecl, ok := root.Declarations[0].(*ast.TypeDeclaration)
	if !ok || typeDecl.Name != "Pair" || len(typeDecl.TypeParams) != 1 {
		t.Fatalf("expected TypeDeclaration 'Pair' with 1 type param, got %+v", root.Declarations[0])
	}
	constDecl, ok := root.Declarations[1].(*ast.ConstDeclaration)
	if !ok || constDecl.Name != "zero" {
		t.Fatalf("expected ConstDeclaration 'zero', got %+v", root.Declarations[1])
	}
}

func TestParseForWhileDoWhileTryCatch(t *testing.T) {
	src := `func void main() => {
		for item in items { x }
		while cond { y }
		do { z } while cond
		try { risky() } catch (e: String) { handle(e) } finally { cleanup() }
	}`
	root, errs := ParseModule("t.nilo", lexAll(t, src))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn, ok := root.Declarations[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected FunctionDeclaration, got %T", root.Declarations[0])
	}
	body, ok := fn.Body.(*ast.BlockStatement)
	if !ok {
		t.Fatalf("expected block function body, got %T", fn.Body)
	}
	if len(body.Statements) != 4 {
		t.Fatalf("expected 4 statements in body, got %d", len(body.Statements))
	}
	if _, ok := body.Statements[0].(*ast.ForStatement); !ok {
		t.Fatalf("expected ForStatement, got %T", body.Statements[0])
	}
	if _, ok := body.Statements[1].(*ast.WhileStatement); !ok {
		t.Fatalf("expected WhileStatement, got %T", body.Statements[1])
	}
	if _, ok := body.Statements[2].(*ast.DoWhileStatement); !ok {
		t.Fatalf("expected DoWhileStatement, got %T", body.Statements[2])
	}
	tc, ok := body.Statements[3].(*ast.TryCatchStatement)
	if !ok {
		t.Fatalf("expected TryCatchStatement, got %T", body.Statements[3])
	}
	if tc.Finally == nil {
		t.Fatalf("expected non-nil Finally clause")
	}
}
