package yoy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/model"
)

func historyWith(taxYear int, totals map[string]float64) model.ExpenseHistory {
	var expenses []model.ExpenseRecord
	var total float64
	for category, amount := range totals {
		expenses = append(expenses, model.ExpenseRecord{Category: category, Amount: amount})
		total += amount
	}
	return model.ExpenseHistory{
		TaxYear:         taxYear,
		Expenses:        expenses,
		TotalDeductions: total,
	}
}

func TestBuildComparisonsSortedDescending(t *testing.T) {
	comparisons := BuildComparisons([]model.ExpenseHistory{
		historyWith(2023, map[string]float64{"vehicle": 100}),
		historyWith(2025, map[string]float64{"vehicle": 300}),
		historyWith(2024, map[string]float64{"vehicle": 200}),
	})

	require.Len(t, comparisons, 3)
	assert.Equal(t, 2025, comparisons[0].TaxYear)
	assert.Equal(t, 2024, comparisons[1].TaxYear)
	assert.Equal(t, 2023, comparisons[2].TaxYear)
	assert.InDelta(t, 300.0, comparisons[0].CategoryTotals["vehicle"], 0.001)
	assert.Equal(t, 1, comparisons[0].ExpenseCount)
}

func TestDetectAnomaliesFlagsCollapse(t *testing.T) {
	current := historyWith(2025, map[string]float64{"travel": 100})
	comparisons := BuildComparisons([]model.ExpenseHistory{
		historyWith(2024, map[string]float64{"travel": 1000}),
	})

	anomalies := DetectAnomalies(current, comparisons)
	require.Len(t, anomalies, 1)

	a := anomalies[0]
	assert.Equal(t, "travel", a.Category)
	assert.Equal(t, 2024, a.PreviousYear)
	assert.InDelta(t, 1000.0, a.PreviousTotal, 0.001)
	assert.InDelta(t, 100.0, a.CurrentTotal, 0.001)
	assert.InDelta(t, -0.9, a.Change, 0.001)
	assert.Equal(t, model.PriorityHigh, a.Severity)
}

func TestDetectAnomaliesThresholds(t *testing.T) {
	tests := []struct {
		name         string
		priorTotal   float64
		currentTotal float64
		wantAnomaly  bool
	}{
		{"prior under floor skipped", 500, 0, false},
		{"current above collapse ratio", 1000, 300, false},
		{"just below collapse ratio", 1000, 299, true},
		{"fully vanished", 600, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := historyWith(2025, map[string]float64{"tools": tt.currentTotal})
			comparisons := BuildComparisons([]model.ExpenseHistory{
				historyWith(2024, map[string]float64{"tools": tt.priorTotal}),
			})

			anomalies := DetectAnomalies(current, comparisons)
			if tt.wantAnomaly {
				assert.Len(t, anomalies, 1)
			} else {
				assert.Empty(t, anomalies)
			}
		})
	}
}

func TestDetectAnomaliesOnlyImmediatePriorYear(t *testing.T) {
	current := historyWith(2025, map[string]float64{})
	// Only 2023 history exists; no 2024 comparison means no anomalies.
	comparisons := BuildComparisons([]model.ExpenseHistory{
		historyWith(2023, map[string]float64{"travel": 5000}),
	})

	assert.Empty(t, DetectAnomalies(current, comparisons))
}

func TestDetectAnomaliesDeterministicOrder(t *testing.T) {
	current := historyWith(2025, map[string]float64{})
	comparisons := BuildComparisons([]model.ExpenseHistory{
		historyWith(2024, map[string]float64{"zebra": 1000, "alpha": 800, "mid": 900}),
	})

	anomalies := DetectAnomalies(current, comparisons)
	require.Len(t, anomalies, 3)
	assert.Equal(t, "alpha", anomalies[0].Category)
	assert.Equal(t, "mid", anomalies[1].Category)
	assert.Equal(t, "zebra", anomalies[2].Category)
}
