// Command nebula runs a Nebula source file: nebula <path>. It exits 1
// and prints a red "nebula error: " prefix (the exact ANSI-red prefix
// the interpreter this was distilled from wrote directly to stdout,
// reproduced here via go-mix's own fatih/color usage) on any lexing,
// parsing, or evaluation failure, and 0 otherwise.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/nebula-lang/nebula/eval"
	"github.com/nebula-lang/nebula/parser"
)

var errColor = color.New(color.FgRed)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "nebula: usage: nebula <path>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		errColor.Fprint(os.Stdout, "nebula error: ")
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source file: %q", path)
	}

	p, err := parser.NewParser(string(src))
	if err != nil {
		return err
	}
	stmts, err := p.Parse()
	if err != nil {
		return err
	}

	ev := eval.NewEvaluator()
	_, err = ev.Run(stmts)
	return err
}
