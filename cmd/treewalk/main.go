// Command treewalk is the CLI entry point for the interpreter: it either
// runs a source file to completion or, given no arguments, drops into a
// REPL (spec.md section 6).
package main

import (
	"fmt"
	"os"

	"github.com/samdecook/treewalk/cmd/treewalk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
