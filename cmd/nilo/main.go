// Command nilo drives the compiler frontend's lex/parse/check stages
// from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/nilolang/nilo/cmd/nilo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
