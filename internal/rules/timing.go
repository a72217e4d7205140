package rules

import (
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/model"
)

// Assumed prepayable amount for the end-of-year timing suggestion.
const timingPrepayEstimate = 500.0

// timingRule suggests bringing forward deductible spend before 30 June. It
// only fires in May and June, and only when some work expense already exists
// this year.
func timingRule() Rule {
	return Rule{
		ID:       "TIM-001",
		Name:     "End of financial year timing opportunity",
		Category: "Timing",
		Priority: model.PriorityMedium,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			month := in.Now.Month()
			if month != time.May && month != time.June {
				return nil
			}
			if !ledger.HasExpensesInCategories(in.Current, workExpenseKeywords) {
				return nil
			}

			savings := in.Tax.Savings(timingPrepayEstimate, in.Profile.TaxableIncome)
			evidence := []string{
				fmt.Sprintf("analysis run in %s with work expenses on record", month),
			}
			score := scored(in, "TIM-001", 0.4, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeTiming,
				Category: "Timing",
				Title:    "Bring forward deductions before 30 June",
				Description: fmt.Sprintf(
					"The financial year ends soon. Prepaying subscriptions, buying planned equipment under $300, or topping up donations before 30 June moves around $%.0f of deductions into this return.",
					timingPrepayEstimate),
				EstimatedSavings: savings,
				Confidence:       score.Tier(),
				Priority:         model.PriorityMedium,
				HeuristicScore:   score,
				TaxImpact:        fmt.Sprintf("Bringing $%.0f forward would save about $%.2f this year.", timingPrepayEstimate, savings),
				ActionItems: []string{
					"List renewals and memberships due in July or August",
					"Buy planned sub-$300 equipment before 30 June",
				},
			}
		},
	}
}
