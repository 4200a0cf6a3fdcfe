// ABOUTME: Entry point for route-econ CLI
// ABOUTME: Command-line tool for computing and querying route economics

package main

import (
	"fmt"
	"os"

	"github.com/markalston/route-economics/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
