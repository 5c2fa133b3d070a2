package checker

import (
	"testing"

	"github.com/nilolang/nilo/internal/loader"
	"github.com/nilolang/nilo/internal/loader/memfs"
	"github.com/nilolang/nilo/internal/source"
	"github.com/nilolang/nilo/internal/typesys"
	"github.com/nilolang/nilo/pkg/ast"
)

func checkSource(t *testing.T, src string) (*loader.Program, []source.Diagnostic) {
	t.Helper()
	fs := memfs.New(map[string]string{"main.nilo": src})
	prog := loader.New(fs, nil).Load("main.nilo")
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected loader diagnostics: %v", prog.Diagnostics)
	}
	diags := New(prog).Check()
	return prog, diags
}

func declByName(root *ast.ModuleRoot, name string) ast.Declaration {
	for _, d := range root.Declarations {
		if d.DeclName() == name {
			return d
		}
	}
	return nil
}

func TestHexLiteralTypesAsU8(t *testing.T) {
	prog, diags := checkSource(t, "const x = 0xFF")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decl := declByName(prog.Modules[0].Root, "x").(*ast.ConstDeclaration)
	integer, ok := decl.Value.Type().(typesys.IntegerType)
	if !ok || integer.Size != 8 || integer.Signed {
		t.Fatalf("expected Integer(8, false), got %#v", decl.Value.Type())
	}
}

func TestFloatFromExponentLiteral(t *testing.T) {
	prog, diags := checkSource(t, "const x = 1.5e2")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decl := declByName(prog.Modules[0].Root, "x").(*ast.ConstDeclaration)
	if _, ok := decl.Type().(typesys.FloatType); !ok {
		t.Fatalf("expected Float, got %#v", decl.Type())
	}
}

func TestFunctionAssignabilityContravariantParamsCovariantReturn(t *testing.T) {
	src := `
func f32 add(i32 a, i32 b) => a + b
func void accept((i64, i64) => f64 binding) => {}
func void use() => { accept(add) }
`
	_, diags := checkSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestGenericInference(t *testing.T) {
	src := `
func T identity<T>(T x) => x
const y = identity(42)
`
	prog, diags := checkSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decl := declByName(prog.Modules[0].Root, "y").(*ast.ConstDeclaration)
	app := decl.Value.(*ast.ApplicationExpr)
	integer, ok := app.Type().(typesys.IntegerType)
	if !ok || integer.Size != 8 || integer.Signed {
		t.Fatalf("expected inferred return type Integer(8, false), got %#v", app.Type())
	}
}

func TestUnionAssignability(t *testing.T) {
	okSrc := `
func void take(int | bool x) => {}
func void use() => { take(1) }
`
	_, diags := checkSource(t, okSrc)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	badSrc := `
func void take(int | bool x) => {}
func void use() => { take('c') }
`
	_, diags = checkSource(t, badSrc)
	if len(diags) == 0 {
		t.Fatalf("expected a type-mismatch diagnostic for char into (int|bool)")
	}
}

func TestBreakOutsideLoopDiagnoses(t *testing.T) {
	src := `
func void run() => {
	break
}
`
	prog, diags := checkSource(t, src)
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %v", len(diags), diags)
	}
	decl := declByName(prog.Modules[0].Root, "run").(*ast.FunctionDeclaration)
	body := decl.Body.(ast.Typed)
	if _, ok := body.Type().(typesys.NeverType); !ok {
		t.Fatalf("expected function body to type as Never, got %#v", body.Type())
	}
}

func TestLambdaTwoPhaseResolutionFromCallSite(t *testing.T) {
	src := `
func int applyToOne((int) => int f) => { return f(1) }
const result = applyToOne((x) => x + 1)
`
	_, diags := checkSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestStructAssignabilityAllowsExtraFields(t *testing.T) {
	src := `
type Point = { x: int, y: int }
func void takePoint(Point p) => {}
func void use() => { takePoint(Point { x: 1, y: 2, z: 3 }) }
`
	_, diags := checkSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestRecursiveTypeDeclarationResolves(t *testing.T) {
	src := `
type List<T> = { head: T, tail: List<T> }
const ignore = 1
`
	_, diags := checkSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestImportedNameResolvesAcrossModules(t *testing.T) {
	fs := memfs.New(map[string]string{
		"main.nilo": `
import from "./util": { twice }
const y = twice(21)
`,
		"util.nilo": `
export func int twice(int x) => { return x + x }
`,
	})
	prog := loader.New(fs, nil).Load("main.nilo")
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected loader diagnostics: %v", prog.Diagnostics)
	}
	diags := New(prog).Check()
	if len(diags) != 0 {
		t.Fatalf("unexpected checker diagnostics: %v", diags)
	}
}
