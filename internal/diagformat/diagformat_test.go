package diagformat_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/nilolang/nilo/internal/diagformat"
	"github.com/nilolang/nilo/internal/source"
)

func pos(line, col int) source.FilePosition {
	return source.FilePosition{File: "main.nilo", Line: line, Column: col}
}

func TestFormatSingleDiagnostic(t *testing.T) {
	files := diagformat.SourceSet(map[string]string{
		"main.nilo": "const flag: bool = 42\n",
	})
	d := source.NewError("main.nilo", source.FileRange{Start: pos(1, 20), End: pos(1, 22)}, "type mismatch: expected bool, got u8")
	snaps.MatchSnapshot(t, "single", diagformat.Format(d, files))
}

func TestFormatAllMultipleDiagnostics(t *testing.T) {
	files := diagformat.SourceSet(map[string]string{
		"main.nilo": "const x: any = missing\nconst y: any = also_missing\n",
	})
	diags := []source.Diagnostic{
		source.NewError("main.nilo", source.FileRange{Start: pos(1, 16), End: pos(1, 23)}, "name not defined: missing"),
		source.NewError("main.nilo", source.FileRange{Start: pos(2, 16), End: pos(2, 28)}, "name not defined: also_missing"),
	}
	snaps.MatchSnapshot(t, "batch", diagformat.FormatAll(diags, files))
}

func TestFormatAllEmpty(t *testing.T) {
	if got := diagformat.FormatAll(nil, diagformat.SourceSet(nil)); got != "" {
		t.Fatalf("expected empty string for no diagnostics, got %q", got)
	}
}
