// main is the entry point for the vidgrade CLI.
package main

import (
	"fmt"
	"os"

	"github.com/vidgrade/vidgrade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
