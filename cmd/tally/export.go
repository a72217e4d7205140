package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/completeness"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/engine"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reports for your accountant",
	}

	cmd.AddCommand(exportOptimizationCmd())
	cmd.AddCommand(exportChecklistCmd())

	return cmd
}

func exportOptimizationCmd() *cobra.Command {
	var (
		profilePath string
		taxYear     int
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "optimization",
		Short: "Export the optimization review as plain text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			profile, err := config.LoadProfile(profilePath)
			if err != nil {
				return err
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if taxYear == 0 {
				taxYear = currentTaxYear(time.Now())
			}
			current, err := store.GetHistory(ctx, taxYear)
			if err != nil {
				return err
			}
			allHistory, err := store.GetAllHistories(ctx)
			if err != nil {
				return err
			}

			result := engine.New().Run(profile.Optimization(), *current, allHistory)
			return writeExport(cmd, outPath, engine.ExportForAccountant(result, time.Now()))
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "taxpayer profile YAML file (required)")
	cmd.Flags().IntVar(&taxYear, "year", 0, "tax year (default: current)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func exportChecklistCmd() *cobra.Command {
	var (
		profilePath string
		returnPath  string
		taxYear     int
		outPath     string
		summary     bool
	)

	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Export the completeness checklist or accountant summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := config.LoadProfile(profilePath)
			if err != nil {
				return err
			}
			returnData, err := config.LoadReturn(returnPath)
			if err != nil {
				return err
			}

			if taxYear == 0 {
				taxYear = currentTaxYear(time.Now())
			}
			opportunities, err := opportunitiesForChecklist(cmd, profile, taxYear)
			if err != nil {
				return err
			}

			report := completeness.NewGenerator().Generate(completeness.Input{
				Profile:                   profile.Checklist(),
				Income:                    returnData.IncomeData(),
				Deductions:                returnData.DeductionData(),
				Opportunities:             opportunities,
				ImplementedOpportunityIDs: returnData.ImplementedOpportunities,
				TaxWithheld:               returnData.TaxWithheld,
				Offsets:                   returnData.Offsets,
			})

			text := completeness.ChecklistExport(report)
			if summary {
				text = completeness.AccountantSummary(report)
			}
			return writeExport(cmd, outPath, text)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "taxpayer profile YAML file (required)")
	cmd.Flags().StringVar(&returnPath, "return", "", "in-progress return data YAML file (required)")
	cmd.Flags().IntVar(&taxYear, "year", 0, "tax year (default: current)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&summary, "summary", false, "export the accountant summary instead of the checklist")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("return")

	return cmd
}

func writeExport(cmd *cobra.Command, outPath, text string) error {
	if outPath == "" {
		cmd.Println(text)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(text), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	cmd.Println(cli.FormatSuccess("Exported to " + outPath))
	return nil
}
