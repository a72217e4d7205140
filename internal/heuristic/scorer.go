// Package heuristic combines rule evidence into a composite confidence score.
package heuristic

import (
	"strings"

	"github.com/tallyhq/tally/internal/model"
)

// IndustryBenchmarks maps an industry keyword to its typical
// deductions-to-income ratio. Keys are matched case-insensitively by
// substring so free-text industry values like "Residential Construction"
// still resolve.
var IndustryBenchmarks = map[string]float64{
	"construction": 0.050,
	"mining":       0.050,
	"transport":    0.045,
	"education":    0.040,
	"real estate":  0.040,
	"healthcare":   0.035,
	"hospitality":  0.030,
	"technology":   0.030,
	"retail":       0.025,
	"finance":      0.025,
}

// BenchmarkFor returns the deduction-ratio benchmark for an industry string,
// or 0 and false when the industry is unset or unrecognized.
func BenchmarkFor(industry string) (float64, bool) {
	industry = strings.ToLower(industry)
	if industry == "" {
		return 0, false
	}
	for key, ratio := range IndustryBenchmarks {
		if strings.Contains(industry, key) {
			return ratio, true
		}
	}
	return 0, false
}

// Score builds the composite confidence breakdown for a rule detection. The
// function is pure: identical inputs always produce identical scores.
func Score(profile model.UserProfile, history model.ExpenseHistory, evidence []string, baseConfidence float64, ruleID string) model.HeuristicScore {
	score := model.HeuristicScore{
		RuleID:    ruleID,
		BaseScore: baseConfidence,
	}

	score.EvidenceBonus = float64(len(evidence)) * 0.1
	if score.EvidenceBonus > 0.3 {
		score.EvidenceBonus = 0.3
	}

	strength := float64(len(history.Expenses)) / 50
	if strength > 1.0 {
		strength = 1.0
	}
	score.PatternStrength = strength * 0.3

	score.HistoricalConsistency = historicalConsistency(profile, history)
	score.IndustryRelevance = industryRelevance(profile, history)

	final := score.BaseScore + score.EvidenceBonus + score.PatternStrength +
		score.HistoricalConsistency + score.IndustryRelevance
	if final > 1.0 {
		final = 1.0
	}
	score.FinalScore = final

	return score
}

// historicalConsistency rewards a deduction ratio that tracks last year's.
// The prior year's income is assumed to have been 95% of the current year's
// when not otherwise known; see the product notes before relying on this.
func historicalConsistency(profile model.UserProfile, history model.ExpenseHistory) float64 {
	if profile.PreviousYearDeductions == nil || *profile.PreviousYearDeductions <= 0 {
		return 0
	}
	if profile.TaxableIncome <= 0 {
		return 0
	}

	currentRatio := history.TotalDeductions / profile.TaxableIncome
	previousRatio := *profile.PreviousYearDeductions / (profile.TaxableIncome * 0.95)

	diff := currentRatio - previousRatio
	if diff < 0 {
		diff = -diff
	}

	consistency := 0.2 - diff
	if consistency < 0 {
		consistency = 0
	}
	return consistency
}

// industryRelevance boosts confidence when the taxpayer claims well below the
// benchmark ratio for their industry: under half the benchmark earns the full
// boost, under the benchmark a partial one.
func industryRelevance(profile model.UserProfile, history model.ExpenseHistory) float64 {
	const baseline = 0.1

	benchmark, ok := BenchmarkFor(profile.Industry)
	if !ok || profile.TaxableIncome <= 0 {
		return baseline
	}

	actualRatio := history.TotalDeductions / profile.TaxableIncome
	switch {
	case actualRatio < benchmark/2:
		return 0.3
	case actualRatio < benchmark:
		return 0.2
	default:
		return baseline
	}
}
