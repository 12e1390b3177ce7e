package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entrypoint"
	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/usecase"
)

type exportOptions struct {
	DatabasePath string
	OutputDir    string
}

func newExportCommand() *cobra.Command {
	cfg := config.NewConfig()
	opts := exportOptions{
		DatabasePath: cfg.Database.Path,
		OutputDir:    cfg.Export.Dir,
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every book and its quotes as markdown notes",
		Long: `Writes one markdown file per book, with YAML frontmatter, into the
output directory. Existing files for the same book are overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg := cfg.Database
			dbCfg.Path = opts.DatabasePath
			return runExport(cmd, dbCfg, opts.OutputDir)
		},
	}

	cmd.Flags().StringVar(&opts.DatabasePath, "db", opts.DatabasePath, "Path to the reading log database")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", opts.OutputDir, "Directory for the markdown files")
	return cmd
}

func runExport(cmd *cobra.Command, dbCfg config.Database, outputDir string) error {
	db, err := entrypoint.OpenDatabase(dbCfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	lister := usecase.NewGetFilteredBooks(books.NewRepository(db))
	result, err := exporters.ExportLibrary(cmd.Context(), lister, outputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d books and %d quotes to %s\n",
		result.BooksProcessed, result.QuotesProcessed, outputDir)
	if result.BooksFailed > 0 {
		return fmt.Errorf("%d books failed to export", result.BooksFailed)
	}
	return nil
}
