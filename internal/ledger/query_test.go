package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tallyhq/tally/internal/model"
)

func expense(date string, category, subcategory string, amount float64) model.ExpenseRecord {
	d, _ := time.Parse("2006-01-02", date)
	return model.ExpenseRecord{
		Date:        d,
		Category:    category,
		Subcategory: subcategory,
		Amount:      amount,
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		name     string
		record   model.ExpenseRecord
		keywords []string
		want     bool
	}{
		{
			name:     "category substring match",
			record:   expense("2025-01-10", "Motor Vehicle", "", 50),
			keywords: []string{"vehicle"},
			want:     true,
		},
		{
			name:     "case insensitive",
			record:   expense("2025-01-10", "CAR expenses", "", 50),
			keywords: []string{"car"},
			want:     true,
		},
		{
			name:     "subcategory match",
			record:   expense("2025-01-10", "work", "home office", 50),
			keywords: []string{"home office"},
			want:     true,
		},
		{
			name:     "no match",
			record:   expense("2025-01-10", "groceries", "", 50),
			keywords: []string{"vehicle", "car"},
			want:     false,
		},
		{
			name:     "empty keyword ignored",
			record:   expense("2025-01-10", "groceries", "", 50),
			keywords: []string{""},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesAny(tt.record, tt.keywords))
		})
	}
}

func TestCategoryAggregates(t *testing.T) {
	history := model.ExpenseHistory{
		TaxYear: 2025,
		Expenses: []model.ExpenseRecord{
			expense("2025-01-10", "vehicle", "fuel", 120),
			expense("2025-02-15", "vehicle", "rego", 800),
			expense("2025-03-01", "phone", "", 60),
		},
	}

	assert.True(t, HasExpensesInCategories(history, []string{"vehicle"}))
	assert.False(t, HasExpensesInCategories(history, []string{"uniform"}))
	assert.InDelta(t, 920.0, CategoryTotal(history, []string{"vehicle"}), 0.001)
	assert.Equal(t, 2, CategoryCount(history, []string{"vehicle"}))
	assert.Equal(t, 0, CategoryCount(history, []string{"donation"}))
}

func TestMonthlyDistribution(t *testing.T) {
	history := model.ExpenseHistory{
		Expenses: []model.ExpenseRecord{
			expense("2025-01-10", "vehicle", "", 100),
			expense("2025-01-20", "phone", "", 50),
			expense("2025-12-01", "tools", "", 200),
		},
	}

	buckets := MonthlyDistribution(history)
	assert.InDelta(t, 150.0, buckets[0], 0.001)
	assert.InDelta(t, 200.0, buckets[11], 0.001)
	assert.Zero(t, buckets[5])
}

func TestQuarterlyPattern(t *testing.T) {
	history := model.ExpenseHistory{
		Expenses: []model.ExpenseRecord{
			expense("2025-01-10", "vehicle", "", 100),
			expense("2025-04-10", "vehicle", "", 200),
			expense("2025-06-10", "phone", "", 50),
			expense("2025-10-10", "tools", "", 300),
		},
	}

	quarters := QuarterlyPattern(history)
	assert.InDelta(t, 100.0, quarters[0], 0.001)
	assert.InDelta(t, 250.0, quarters[1], 0.001)
	assert.Zero(t, quarters[2])
	assert.InDelta(t, 300.0, quarters[3], 0.001)
}
