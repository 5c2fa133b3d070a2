package loader

import (
	"testing"

	"github.com/nilolang/nilo/internal/loader/memfs"
)

func TestLoadSingleModuleNoImports(t *testing.T) {
	fs := memfs.New(map[string]string{
		"main.nilo": `const answer = 42`,
	})
	prog := New(fs, nil).Load("main.nilo")
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", prog.Diagnostics)
	}
	if len(prog.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(prog.Modules))
	}
	if _, ok := prog.Modules[0].Names["answer"]; !ok {
		t.Fatalf("expected 'answer' in module's name table")
	}
}

func TestLoadTransitiveImportAssignsIDsInFirstReachOrder(t *testing.T) {
	fs := memfs.New(map[string]string{
		"main.nilo": `
			import from "./list": List
			const x = 1`,
		"list.nilo": `
			import from "./util": Util
			export const map = 1`,
		"util.nilo": `export const id = 1`,
	})
	prog := New(fs, nil).Load("main.nilo")
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", prog.Diagnostics)
	}
	if len(prog.Modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(prog.Modules))
	}
	if prog.Modules[0].Path != "main.nilo" || prog.Modules[1].Path != "list.nilo" || prog.Modules[2].Path != "util.nilo" {
		t.Fatalf("unexpected module order: %v", []string{prog.Modules[0].Path, prog.Modules[1].Path, prog.Modules[2].Path})
	}
}

func TestLoadNamedImportBindsAgainstExportTable(t *testing.T) {
	fs := memfs.New(map[string]string{
		"main.nilo": `import from "./list": { map, filter as keep }`,
		"list.nilo": `
			export const map = 1
			export const filter = 1`,
	})
	prog := New(fs, nil).Load("main.nilo")
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", prog.Diagnostics)
	}
	main := prog.Modules[0]
	mapBinding, ok := main.Imports["map"]
	if !ok || !mapBinding.Valid || mapBinding.ExportName != "map" {
		t.Fatalf("expected valid 'map' import binding, got %+v", main.Imports)
	}
	keepBinding, ok := main.Imports["keep"]
	if !ok || !keepBinding.Valid || keepBinding.ExportName != "filter" {
		t.Fatalf("expected valid 'keep' import binding aliasing 'filter', got %+v", main.Imports)
	}
}

func TestLoadImportOfNonExportedNameDiagnoses(t *testing.T) {
	fs := memfs.New(map[string]string{
		"main.nilo": `import from "./list": { nonexistent }`,
		"list.nilo": `export const map = 1`,
	})
	prog := New(fs, nil).Load("main.nilo")
	if len(prog.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(prog.Diagnostics), prog.Diagnostics)
	}
	main := prog.Modules[0]
	binding, ok := main.Imports["nonexistent"]
	if !ok || binding.Valid {
		t.Fatalf("expected invalid import binding, got %+v", binding)
	}
}

func TestLoadMissingModuleDiagnoses(t *testing.T) {
	fs := memfs.New(map[string]string{
		"main.nilo": `import from "./missing": M`,
	})
	prog := New(fs, nil).Load("main.nilo")
	if len(prog.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(prog.Diagnostics), prog.Diagnostics)
	}
}

func TestLoadDuplicateDeclarationDiagnoses(t *testing.T) {
	fs := memfs.New(map[string]string{
		"main.nilo": "const x = 1\nconst x = 2",
	})
	prog := New(fs, nil).Load("main.nilo")
	if len(prog.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(prog.Diagnostics), prog.Diagnostics)
	}
}

func TestLoadExportForwardAllResolvesTransitively(t *testing.T) {
	fs := memfs.New(map[string]string{
		"main.nilo":     `import from "./reexport": { id }`,
		"reexport.nilo": `export * from "./util"`,
		"util.nilo":     `export const id = 1`,
	})
	prog := New(fs, nil).Load("main.nilo")
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", prog.Diagnostics)
	}
	main := prog.Modules[0]
	binding, ok := main.Imports["id"]
	if !ok || !binding.Valid {
		t.Fatalf("expected valid 'id' import via export-forward chain, got %+v", main.Imports)
	}
}

func TestLoadPackageRootRegistry(t *testing.T) {
	fs := memfs.New(map[string]string{
		"main.nilo":     `import from "stdlist": { map }`,
		"lib/list.nilo": `export const map = 1`,
	})
	prog := New(fs, map[string]string{"stdlist": "lib/list"}).Load("main.nilo")
	if len(prog.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", prog.Diagnostics)
	}
	if len(prog.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(prog.Modules))
	}
}
