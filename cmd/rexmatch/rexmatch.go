// The rexmatch command compiles a pattern and reports, for each input
// argument, whether the pattern accepts it.
//
// Example:
//
//	$ rexmatch 'a+b*' ab aaabbbb abba
//	ab: accept
//	aaabbbb: accept
//	abba: reject
package main

import (
	"fmt"
	"os"

	"github.com/mccute/rex"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s pattern input [input ...]\n", os.Args[0])
		os.Exit(1)
	}

	r, err := rex.Compile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't compile pattern %q: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	reject := false
	for _, input := range os.Args[2:] {
		if r.Accept(input) {
			fmt.Printf("%s: accept\n", input)
		} else {
			fmt.Printf("%s: reject\n", input)
			reject = true
		}
	}
	if reject {
		os.Exit(1)
	}
}
