package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli"
)

func expensesCmd() *cobra.Command {
	var taxYear int

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Summarize stored expenses by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if taxYear == 0 {
				taxYear = currentTaxYear(time.Now())
			}

			history, err := store.GetHistory(ctx, taxYear)
			if err != nil {
				return err
			}

			cmd.Println(cli.FormatTitle(fmt.Sprintf("Expenses for tax year %d", taxYear)))
			if len(history.Expenses) == 0 {
				cmd.Println(cli.FormatInfo("No expenses on record. Import a bank export with: tally import"))
				return nil
			}

			totals := make(map[string]float64)
			counts := make(map[string]int)
			for _, e := range history.Expenses {
				totals[e.Category] += e.Amount
				counts[e.Category]++
			}

			categories := make([]string, 0, len(totals))
			for category := range totals {
				categories = append(categories, category)
			}
			sort.Slice(categories, func(i, j int) bool {
				return totals[categories[i]] > totals[categories[j]]
			})

			for _, category := range categories {
				cmd.Printf("  %-24s %4d records  $%10.2f\n", category, counts[category], totals[category])
			}
			cmd.Println()
			cmd.Println(cli.StyleSuccess(fmt.Sprintf("Total deductible spend: $%.2f across %d records",
				history.TotalDeductions, len(history.Expenses))))
			return nil
		},
	}

	cmd.Flags().IntVar(&taxYear, "year", 0, "tax year to summarize (default: current)")

	return cmd
}
