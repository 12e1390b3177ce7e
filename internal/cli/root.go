// Package cli defines the bookshelf command line: "serve" runs the HTTP API
// and "export" writes the library as markdown notes.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
)

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "bookshelf",
		Short: "A personal reading log with quotes",
		Long: `Bookshelf keeps the books you read, their authors, genres and the
quotes you saved from them, and serves them over a JSON API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(config.NewConfig(), version)
		},
	}

	root.AddCommand(newServeCommand(version), newExportCommand())
	return root
}

func newServeCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(config.NewConfig(), version)
		},
	}
}
