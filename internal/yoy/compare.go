// Package yoy aligns per-category deduction totals across tax years and flags
// categories whose spend collapsed relative to the prior year.
package yoy

import (
	"sort"

	"github.com/tallyhq/tally/internal/model"
)

// Anomaly trigger thresholds. A category is anomalous when its prior-year
// total exceeded the floor and this year's total fell below the ratio.
const (
	priorTotalFloor    = 500.0
	collapseRatio      = 0.3
	highSeverityDrop   = -0.7
	mediumSeverityDrop = -0.5
)

// BuildComparisons produces one per-year category summary for each supplied
// history, sorted by tax year descending.
func BuildComparisons(allHistory []model.ExpenseHistory) []model.YearOverYearComparison {
	comparisons := make([]model.YearOverYearComparison, 0, len(allHistory))
	for _, history := range allHistory {
		comparisons = append(comparisons, model.YearOverYearComparison{
			TaxYear:        history.TaxYear,
			CategoryTotals: categoryTotals(history),
			ExpenseCount:   len(history.Expenses),
			TotalClaimed:   history.TotalDeductions,
		})
	}
	sort.Slice(comparisons, func(i, j int) bool {
		return comparisons[i].TaxYear > comparisons[j].TaxYear
	})
	return comparisons
}

// DetectAnomalies flags categories that collapsed versus the immediately
// preceding tax year. Only that single prior year is consulted even when more
// history is available; recent-year focus is intentional.
func DetectAnomalies(current model.ExpenseHistory, comparisons []model.YearOverYearComparison) []model.YoYAnomaly {
	var prior *model.YearOverYearComparison
	for i := range comparisons {
		if comparisons[i].TaxYear == current.TaxYear-1 {
			prior = &comparisons[i]
			break
		}
	}
	if prior == nil {
		return nil
	}

	currentTotals := categoryTotals(current)

	categories := make([]string, 0, len(prior.CategoryTotals))
	for category := range prior.CategoryTotals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var anomalies []model.YoYAnomaly
	for _, category := range categories {
		priorTotal := prior.CategoryTotals[category]
		if priorTotal <= priorTotalFloor {
			continue
		}
		currentTotal := currentTotals[category]
		if currentTotal >= priorTotal*collapseRatio {
			continue
		}

		change := (currentTotal - priorTotal) / priorTotal
		anomalies = append(anomalies, model.YoYAnomaly{
			Category:      category,
			PreviousYear:  prior.TaxYear,
			PreviousTotal: priorTotal,
			CurrentTotal:  currentTotal,
			Change:        change,
			Severity:      severityFor(change),
		})
	}
	return anomalies
}

func severityFor(change float64) model.Priority {
	switch {
	case change < highSeverityDrop:
		return model.PriorityHigh
	case change < mediumSeverityDrop:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

func categoryTotals(history model.ExpenseHistory) map[string]float64 {
	totals := make(map[string]float64, len(history.Expenses))
	for _, e := range history.Expenses {
		totals[e.Category] += e.Amount
	}
	return totals
}
