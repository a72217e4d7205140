package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/importer"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/ofx"
)

func importCmd() *cobra.Command {
	var (
		taxYear int
		format  string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import expenses from a CSV or OFX/QFX file",
		Long: `Import reads expenses from a bank export and stores them in the ledger.
Records already imported are skipped by content hash, so re-importing
the same file is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			if format == "" {
				switch strings.ToLower(filepath.Ext(path)) {
				case ".ofx", ".qfx":
					format = "ofx"
				default:
					format = "csv"
				}
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer func() { _ = file.Close() }()

			var expenses []model.ExpenseRecord
			switch format {
			case "csv":
				reader := importer.NewCSVReader()
				reader.ShowProgress = true
				expenses, err = reader.Read(file)
			case "ofx":
				expenses, err = ofx.NewParser().ParseFile(ctx, file)
			default:
				return fmt.Errorf("%w %q (want csv or ofx)", common.ErrUnknownFormat, format)
			}
			if err != nil {
				return err
			}

			if taxYear == 0 {
				taxYear = currentTaxYear(time.Now())
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			inserted, err := store.SaveExpenses(ctx, taxYear, expenses)
			if err != nil {
				return err
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf(
				"Imported %d expenses into tax year %d (%d duplicates skipped)",
				inserted, taxYear, len(expenses)-inserted)))
			return nil
		},
	}

	cmd.Flags().IntVar(&taxYear, "year", 0, "tax year to import into (default: current)")
	cmd.Flags().StringVar(&format, "format", "", "file format: csv or ofx (default: by extension)")

	return cmd
}
