// The rexgen command compiles a pattern and generates a standalone Go source
// file containing the automaton as a state table and an accept function.
//
// Example:
//
//	$ rexgen -name Semver -pkg match -o semver_match.go '\d+\.\d+\.\d+'
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mccute/rex"
)

func main() {
	name := flag.String("name", "Pattern", "base name for the generated function and table")
	pkg := flag.String("pkg", "main", "package name of the generated file")
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] pattern\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	pattern := flag.Arg(0)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Couldn't create %q: %v\n", *out, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := rex.Generate(w, pattern, *pkg, *name); err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't generate matcher for %q: %v\n", pattern, err)
		os.Exit(1)
	}
}
