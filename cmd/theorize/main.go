// Command theorize launches a script-driven test suite.
package main

import (
	"os"

	"github.com/roach88/theorize/internal/cli"
)

func main() {
	os.Exit(cli.NewLauncher(os.Stdout, os.Stderr).Execute(os.Args[1:]))
}
