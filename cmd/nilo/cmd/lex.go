package cmd

import (
	"fmt"
	"os"

	"github.com/nilolang/nilo/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexShowPos bool
	lexTrace   bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a nilo source file",
	Long: `Tokenize a nilo file and print the resulting tokens.

Examples:
  nilo lex script.nilo
  nilo lex --show-pos script.nilo
  nilo lex --trace script.nilo`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexTrace, "trace", false, "print the lexer's internal trace before the token list")
}

func runLex(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var opts []lexer.Option
	if lexTrace {
		opts = append(opts, lexer.WithTracing())
	}
	lx := lexer.New(path, string(content), opts...)

	var tokens []lexer.Token
	for {
		tok := lx.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}

	if lexTrace {
		for _, line := range lx.Trace() {
			fmt.Println(line)
		}
		fmt.Println("---")
	}

	for _, tok := range tokens {
		printToken(tok)
	}

	if errs := lx.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "error: %s: %s\n", e.Range, e.Message)
		}
		return fmt.Errorf("found %d lexical error(s)", len(errs))
	}
	return nil
}

func printToken(tok lexer.Token) {
	output := fmt.Sprintf("[%-14s]", tok.Kind)
	if tok.Kind == lexer.EOF {
		output += " EOF"
	} else {
		output += fmt.Sprintf(" %q", tok.Image)
	}
	if lexShowPos {
		output += fmt.Sprintf(" @%s", tok.Range.Start)
	}
	fmt.Println(output)
}
