package checker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/nilolang/nilo/internal/loader"
	"github.com/nilolang/nilo/internal/loader/memfs"
	"github.com/nilolang/nilo/internal/source"
)

// dumpDiagnostics renders a reduced form of what the diagformat package
// prints, without the file:line:column header and the source-line
// caret: one line per diagnostic, severity and message only, so the
// snapshot stays stable
// across incidental FileRange offset changes.
func dumpDiagnostics(diags []source.Diagnostic) string {
	if len(diags) == 0 {
		return "(no diagnostics)\n"
	}
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, "%s: %s\n", d.Severity, d.Message)
	}
	return b.String()
}

func runGolden(t *testing.T, name, src string) {
	t.Helper()
	fs := memfs.New(map[string]string{"main.nilo": src})
	prog := loader.New(fs, nil).Load("main.nilo")
	all := append([]source.Diagnostic{}, prog.Diagnostics...)
	all = append(all, New(prog).Check()...)
	snaps.MatchSnapshot(t, name, dumpDiagnostics(all))
}

func TestGoldenDiagnostics(t *testing.T) {
	runGolden(t, "clean_program", `
const limit = 100
func i32 square(i32 x) => x * x
const value = square(limit)
`)

	runGolden(t, "arg_type_mismatch", `
func void take(bool x) => {}
func void use() => { take(42) }
`)

	runGolden(t, "undefined_name", `
const x = missing
`)

	runGolden(t, "break_outside_loop", `
func void run() => {
	break
}
`)

	runGolden(t, "invalid_arg_count", `
func i32 add(i32 a, i32 b) => a + b
func void use() => { add(1) }
`)

	runGolden(t, "union_mismatch", `
func void take(int | bool x) => {}
func void use() => { take('c') }
`)

	runGolden(t, "not_invokable", `
const n = 5
func void use() => { n(1) }
`)
}
