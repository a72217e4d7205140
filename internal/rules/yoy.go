package rules

import (
	"fmt"

	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/yoy"
)

// Half of the collapsed prior-year spend is assumed recoverable; the rest may
// be a genuine drop in spending.
const yoyRecoverableFactor = 0.5

// yoyAnomalyRule flags categories whose spend collapsed against last year,
// suggesting records that were kept then but are missing now. It fires only
// when at least one high-severity anomaly exists.
func yoyAnomalyRule() Rule {
	return Rule{
		ID:       "YOY-001",
		Name:     "Year-over-year deduction collapse",
		Category: "Record keeping",
		Priority: model.PriorityHigh,
		Relevance: func(_ model.UserProfile, history model.ExpenseHistory) float64 {
			if len(history.Expenses) == 0 {
				return 0.1
			}
			return 0.6
		},
		Check: func(in Inputs) *model.OptimizationOpportunity {
			anomalies := yoy.DetectAnomalies(in.Current, in.Context.YoYComparisons)

			var highSeverityPrior float64
			var highCount int
			for _, a := range anomalies {
				if a.Severity == model.PriorityHigh {
					highSeverityPrior += a.PreviousTotal
					highCount++
				}
			}
			if highCount == 0 {
				return nil
			}

			estimate := round2(highSeverityPrior * yoyRecoverableFactor)
			savings := in.Tax.Savings(estimate, in.Profile.TaxableIncome)

			evidence := make([]string, 0, highCount)
			for _, a := range anomalies {
				if a.Severity == model.PriorityHigh {
					evidence = append(evidence, fmt.Sprintf(
						"%s dropped from $%.2f to $%.2f", a.Category, a.PreviousTotal, a.CurrentTotal))
				}
			}
			score := scored(in, "YOY-001", 0.5, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeYoYAnomaly,
				Category: "Record keeping",
				Title:    fmt.Sprintf("%d deduction categories collapsed since last year", highCount),
				Description: fmt.Sprintf(
					"Categories you claimed heavily last year have almost vanished this year. If your circumstances have not changed, around $%.2f of deductions may simply be unrecorded.",
					estimate),
				EstimatedSavings: savings,
				Confidence:       score.Tier(),
				Priority:         model.PriorityHigh,
				HeuristicScore:   score,
				YoYComparison:    anomalies,
				TaxImpact:        fmt.Sprintf("Recovering these categories would save about $%.2f.", savings),
				ActionItems: []string{
					"Compare last year's receipts against this year's records",
					"Check whether any recurring expenses stopped being logged",
				},
			}
		},
	}
}
