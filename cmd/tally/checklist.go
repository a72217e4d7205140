package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/completeness"
	"github.com/tallyhq/tally/internal/config"
)

func checklistCmd() *cobra.Command {
	var (
		profilePath string
		returnPath  string
		taxYear     int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Check how ready your tax return is to lodge",
		Long: `Checklist scores your in-progress return for completeness, flags
documents that appear to be missing, estimates your refund or bill,
and rates the audit risk of what you are about to claim.`,
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

			if asJSON {
				return printJSON(cmd, report)
			}
			cmd.Println(cli.RenderCompleteness(&report))
			return nil
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "taxpayer profile YAML file (required)")
	cmd.Flags().StringVar(&returnPath, "return", "", "in-progress return data YAML file (required)")
	cmd.Flags().IntVar(&taxYear, "year", 0, "tax year (default: current)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full report as JSON")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("return")

	return cmd
}
