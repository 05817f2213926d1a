// Command grishex is the CLI front end for the Grishex toolchain: lex,
// parse, compile, disassemble, and run contracts.
package main

import (
	"fmt"
	"os"

	"github.com/grishinium/grishex/cmd/grishex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
