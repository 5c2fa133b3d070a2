package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nilolang/nilo/internal/checker"
	"github.com/nilolang/nilo/internal/diagformat"
	"github.com/nilolang/nilo/internal/loader"
	"github.com/nilolang/nilo/internal/loader/osfs"
	"github.com/nilolang/nilo/internal/source"
	"github.com/spf13/cobra"
)

var checkRoots []string

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Load, resolve, and type-check a nilo module and its imports",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringArrayVar(&checkRoots, "root", nil, "package-root mapping name=dir, repeatable")
}

func runCheck(cmd *cobra.Command, args []string) error {
	entry := args[0]

	roots, err := parseRoots(checkRoots)
	if err != nil {
		return err
	}

	prog := loader.New(osfs.New(), roots).Load(entry)
	diags := append([]source.Diagnostic{}, prog.Diagnostics...)
	diags = append(diags, checker.New(prog).Check()...)

	if len(diags) == 0 {
		fmt.Printf("%s: ok (%d module(s))\n", entry, len(prog.Modules))
		return nil
	}

	files := diagformat.SourceSet(loadSourceTexts(prog))
	fmt.Print(diagformat.FormatAll(diags, files))
	fmt.Println()
	return fmt.Errorf("%d diagnostic(s)", len(diags))
}

func parseRoots(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	roots := make(map[string]string, len(entries))
	for _, e := range entries {
		name, dir, ok := splitRootFlag(e)
		if !ok {
			return nil, fmt.Errorf("invalid --root value %q, expected name=dir", e)
		}
		roots[name] = dir
	}
	return roots, nil
}

func splitRootFlag(s string) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// loadSourceTexts re-reads every loaded module's text from disk so
// diagformat can render a source-line caret; the loader itself discards
// the raw text once a module is parsed.
func loadSourceTexts(prog *loader.Program) map[string]string {
	texts := make(map[string]string, len(prog.Modules))
	for _, m := range prog.Modules {
		data, err := os.ReadFile(m.Path)
		if err != nil {
			continue
		}
		texts[filepath.Clean(m.Path)] = string(data)
		texts[m.Path] = string(data)
	}
	return texts
}
