// The rexdot command compiles a pattern and prints its state graph in
// GraphViz syntax.
//
// Example:
//
//	$ rexdot '(ab)+c' | dot -Tsvg -o automaton.svg
package main

import (
	"fmt"
	"os"

	"github.com/mccute/rex"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s pattern\n", os.Args[0])
		os.Exit(1)
	}

	r, err := rex.Compile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't compile pattern %q: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	if err := r.WriteDot(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't write Dot output: %v\n", err)
		os.Exit(1)
	}
}
