package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrlokans/bookshelf/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	root := cli.NewRootCommand(fmt.Sprintf("%s (%s)", Version, Commit))
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
