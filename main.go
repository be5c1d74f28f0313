// This is the main-driver for our compiler.
package main

import (
	"fmt"
	"os"

	"github.com/japi012/zilac/cmd"
)

func main() {
	root := cmd.NewRootCommand()
	if err := root.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "zila: %s\n", msg)
		}
		os.Exit(1)
	}
}
