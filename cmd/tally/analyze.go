package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/engine"
	"github.com/tallyhq/tally/internal/model"
)

func analyzeCmd() *cobra.Command {
	var (
		profilePath  string
		taxYear      int
		showRankings bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Find tax optimization opportunities in your expense ledger",
		Long: `Analyze runs every detection rule over your stored expenses and profile,
looking for missed deductions, year-over-year anomalies, and timing
opportunities before you lodge.`,
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
				return fmt.Errorf("failed to load tax year %d: %w", taxYear, err)
			}
			allHistory, err := store.GetAllHistories(ctx)
			if err != nil {
				return fmt.Errorf("failed to load expense history: %w", err)
			}

			result := engine.New().Run(profile.Optimization(), *current, allHistory)

			if asJSON {
				return printJSON(cmd, result)
			}

			cmd.Println(cli.RenderOptimizations(&result))
			if showRankings {
				cmd.Println(cli.RenderRankings(result.RuleRankings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "taxpayer profile YAML file (required)")
	cmd.Flags().IntVar(&taxYear, "year", 0, "tax year to analyze (default: current)")
	cmd.Flags().BoolVar(&showRankings, "rankings", false, "show per-rule relevance ranking")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full result as JSON")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// opportunitiesForChecklist reruns the optimization engine so the checklist
// can score uptake against current findings.
func opportunitiesForChecklist(cmd *cobra.Command, profile *config.Profile, taxYear int) ([]model.OptimizationOpportunity, error) {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	current, err := store.GetHistory(ctx, taxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax year %d: %w", taxYear, err)
	}
	allHistory, err := store.GetAllHistories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense history: %w", err)
	}

	result := engine.New().Run(profile.Optimization(), *current, allHistory)
	return result.Opportunities, nil
}
