package cmd

import (
	"fmt"
	"os"

	"github.com/nilolang/nilo/internal/lexer"
	"github.com/nilolang/nilo/internal/parser"
	"github.com/nilolang/nilo/pkg/ast"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a nilo source file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	lx := lexer.New(path, string(content))
	var toks []lexer.Token
	for {
		tok := lx.NextToken()
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}

	root, errs := parser.ParseModule(path, toks)
	for _, e := range lx.Errors() {
		fmt.Fprintf(os.Stderr, "error: %s: %s\n", e.Range, e.Message)
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "error: %s: %s\n", e.Range, e.Message)
	}
	if len(lx.Errors()) > 0 || len(errs) > 0 {
		return fmt.Errorf("parsing failed")
	}

	dumpModuleRoot(root)
	return nil
}

func dumpModuleRoot(root *ast.ModuleRoot) {
	fmt.Printf("ModuleRoot %s (%d imports, %d declarations, %d exports)\n", root.File, len(root.Imports), len(root.Declarations), len(root.Exports))
	for _, imp := range root.Imports {
		fmt.Printf("  import %q\n", imp.Path)
	}
	for _, decl := range root.Declarations {
		dumpDecl(decl, 1)
	}
}

func dumpDecl(decl ast.Declaration, indent int) {
	pad := indentStr(indent)
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		fmt.Printf("%sFunctionDeclaration %s (%d params)\n", pad, d.Name, len(d.Params))
	case *ast.TypeDeclaration:
		fmt.Printf("%sTypeDeclaration %s\n", pad, d.Name)
	case *ast.ConstDeclaration:
		fmt.Printf("%sConstDeclaration %s\n", pad, d.Name)
	default:
		fmt.Printf("%s%T\n", pad, decl)
	}
}

func indentStr(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "  "
	}
	return s
}
