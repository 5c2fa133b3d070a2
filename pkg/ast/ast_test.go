package ast

import (
	"testing"

	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/internal/typesys"
)

func TestNodeInfoRangePromoted(t *testing.T) {
	rng := source.FileRange{Start: source.NewFilePosition("t.nilo"), End: source.NewFilePosition("t.nilo")}
	n := &IdentifierExpr{NodeInfo: NodeInfo{Span: rng}, Name: "x"}
	if n.Range() != rng {
		t.Fatalf("expected range to be promoted from NodeInfo")
	}
}

func TestSetTypeMutatesInPlace(t *testing.T) {
	n := &IntegerLiteralExpr{Value: 42}
	n.SetType(typesys.NewInteger(32, true))
	if n.ResolvedType != typesys.NewInteger(32, true) {
		t.Fatalf("expected SetType to record resolved type, got %#v", n.ResolvedType)
	}
}

func TestTypeDeclarationSatisfiesTypeDeclRef(t *testing.T) {
	decl := &TypeDeclaration{Name: "IntList"}
	decl.SetType(typesys.ArrayType{Element: typesys.NewInteger(32, true)})
	var ref typesys.TypeDeclRef = decl
	if ref.DeclName() != "IntList" {
		t.Fatalf("expected DeclName to round-trip, got %q", ref.DeclName())
	}
	if _, ok := ref.Resolved().(typesys.ArrayType); !ok {
		t.Fatalf("expected Resolved to expose the checked definition, got %#v", ref.Resolved())
	}
}

func TestExportItemVariantsImplementInterface(t *testing.T) {
	var items []ExportItem
	items = append(items, &ExportDeclaration{})
	items = append(items, &ExportDefaultDeclaration{})
	items = append(items, &ExportDefaultExpression{})
	items = append(items, &ExportForwardAll{From: "./other"})
	items = append(items, &ExportForwardNamed{From: "./other"})
	items = append(items, &ExportNamedList{})
	if len(items) != 6 {
		t.Fatalf("expected all six export forms to satisfy ExportItem")
	}
}
