// Command dupfind finds duplicate files under a directory by comparing their content.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/dupfind/internal/cli"
)

// version is set at build time.
//
//nolint:gochecknoglobals // Set by ldflags
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}
