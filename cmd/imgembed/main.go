// Command imgembed resizes, selects and deletes the ![[image]] embeds of
// markdown documents, from the shell, from acme, or in a preview window.
package main

import (
	"fmt"
	"os"

	"github.com/rjkroege/imgembed/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "imgembed:", err)
		os.Exit(1)
	}
}
