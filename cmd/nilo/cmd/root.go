// Package cmd implements the nilo CLI's command tree: lex, parse, and
// check subcommands over the core lexer/parser/loader/checker packages,
// grounded on the teacher's cmd/dwscript/cmd layout.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "nilo",
	Short: "nilo compiler frontend",
	Long: `nilo is a statically-typed, mostly-functional language.

This CLI drives the frontend stages - lexing, parsing, module loading,
and type checking - without ever running or compiling a program.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
