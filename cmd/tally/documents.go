package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/docpattern"
)

func documentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Track document uploads and detect missing documents",
	}

	cmd.AddCommand(documentsTrackCmd())
	cmd.AddCommand(documentsStatusCmd())

	return cmd
}

func documentsTrackCmd() *cobra.Command {
	var (
		docType string
		source  string
		date    string
	)

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Record a document upload",
		Long: `Track records that a document arrived, for example a bank statement or
payslip. Over time tally learns each document's cadence and can warn
you when one goes missing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			uploadedAt := time.Now()
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
				}
				uploadedAt = parsed
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveUpload(ctx, docpattern.UploadRecord{
				ID:           uuid.NewString(),
				DocumentType: docType,
				Source:       source,
				UploadedAt:   uploadedAt,
			}); err != nil {
				return err
			}

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s from %s on %s",
				docType, source, uploadedAt.Format("2 Jan 2006"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", "", "document type, e.g. bank_statement (required)")
	cmd.Flags().StringVar(&source, "source", "", "document source, e.g. your bank's name (required)")
	cmd.Flags().StringVar(&date, "date", "", "upload date YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func documentsStatusCmd() *cobra.Command {
	var (
		lookAheadDays int
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show upload patterns, overdue and upcoming documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			uploads, err := store.GetUploads(ctx)
			if err != nil {
				return err
			}

			result := docpattern.NewDetector().Analyze(uploads, lookAheadDays)

			if asJSON {
				return printJSON(cmd, result)
			}
			cmd.Println(cli.RenderPatterns(&result))
			return nil
		},
	}

	cmd.Flags().IntVar(&lookAheadDays, "window", 30, "days ahead to list expected documents")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full analysis as JSON")

	return cmd
}
