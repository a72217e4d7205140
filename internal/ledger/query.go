// Package ledger provides filtering and aggregation helpers over an expense
// history. Category matching is deliberately loose: case-insensitive substring
// against both category and subcategory, so callers must expect false
// positives on ambiguous keywords. The detection rules are tuned against this
// behavior; do not tighten it to exact matching.
package ledger

import (
	"strings"

	"github.com/tallyhq/tally/internal/model"
)

// MatchesAny reports whether a record's category or subcategory contains any
// of the given keywords, case-insensitively.
func MatchesAny(record model.ExpenseRecord, keywords []string) bool {
	category := strings.ToLower(record.Category)
	subcategory := strings.ToLower(record.Subcategory)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(category, kw) || strings.Contains(subcategory, kw) {
			return true
		}
	}
	return false
}

// HasExpensesInCategories reports whether any record matches the keywords.
func HasExpensesInCategories(history model.ExpenseHistory, keywords []string) bool {
	for _, e := range history.Expenses {
		if MatchesAny(e, keywords) {
			return true
		}
	}
	return false
}

// CategoryTotal sums the amounts of all matching records.
func CategoryTotal(history model.ExpenseHistory, keywords []string) float64 {
	var total float64
	for _, e := range history.Expenses {
		if MatchesAny(e, keywords) {
			total += e.Amount
		}
	}
	return total
}

// CategoryCount counts the matching records.
func CategoryCount(history model.ExpenseHistory, keywords []string) int {
	var count int
	for _, e := range history.Expenses {
		if MatchesAny(e, keywords) {
			count++
		}
	}
	return count
}

// MonthlyDistribution buckets total amounts by calendar month, index 0–11.
func MonthlyDistribution(history model.ExpenseHistory) [12]float64 {
	var buckets [12]float64
	for _, e := range history.Expenses {
		buckets[int(e.Date.Month())-1] += e.Amount
	}
	return buckets
}

// QuarterlyPattern buckets total amounts by calendar quarter, index 0–3.
func QuarterlyPattern(history model.ExpenseHistory) [4]float64 {
	var buckets [4]float64
	for _, e := range history.Expenses {
		buckets[(int(e.Date.Month())-1)/3] += e.Amount
	}
	return buckets
}
