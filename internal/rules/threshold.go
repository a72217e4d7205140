package rules

import (
	"fmt"
	"math"

	"github.com/tallyhq/tally/internal/heuristic"
	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/model"
)

// Thresholds for the aggregate-based rules.
const (
	logbookTotalFloor    = 2000.0
	logbookEntryCeiling  = 5
	logbookUpliftFactor  = 0.3
	quarterAverageFloor  = 500.0
	quarterGapRatio      = 0.1
	benchmarkClaimFactor = 0.5
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// vehicleLogbookGapRule fires when substantial car spend is spread over too
// few entries to support the logbook method, suggesting under-claiming.
func vehicleLogbookGapRule() Rule {
	return Rule{
		ID:       "VEH-001",
		Name:     "Vehicle logbook method likely under-claimed",
		Category: "D1 - Work-related car expenses",
		Priority: model.PriorityHigh,
		Relevance: func(_ model.UserProfile, history model.ExpenseHistory) float64 {
			total := ledger.CategoryTotal(history, vehicleKeywords)
			if total <= 0 {
				return 0.1
			}
			relevance := total / 5000
			if relevance > 1 {
				relevance = 1
			}
			return relevance
		},
		Check: func(in Inputs) *model.OptimizationOpportunity {
			total := ledger.CategoryTotal(in.Current, vehicleKeywords)
			count := ledger.CategoryCount(in.Current, vehicleKeywords)
			if total <= logbookTotalFloor || count >= logbookEntryCeiling {
				return nil
			}

			estimate := round2(total * logbookUpliftFactor)
			savings := in.Tax.Savings(estimate, in.Profile.TaxableIncome)

			evidence := []string{
				fmt.Sprintf("$%.2f of vehicle expenses across only %d entries", total, count),
			}
			score := scored(in, "VEH-001", 0.55, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeBetterMethod,
				Category: "D1 - Work-related car expenses",
				Title:    "Switch to the logbook method for car expenses",
				Description: fmt.Sprintf(
					"You have $%.2f of vehicle expenses in just %d entries, which suggests large running costs. A 12-week logbook typically lifts the claim by about 30%%, roughly $%.2f more.",
					total, count, estimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityHigh,
				HeuristicScore:      score,
				RegulatoryReference: "ATO logbook method",
				TaxImpact:           fmt.Sprintf("An extra $%.2f of deductions would save about $%.2f.", estimate, savings),
				ActionItems: []string{
					"Keep a logbook for a representative 12-week period",
					"Record odometer readings at the start and end of the year",
				},
			}
		},
	}
}

// industryBenchmarkRule fires when the claimed deduction ratio falls well
// below the benchmark for the taxpayer's industry.
func industryBenchmarkRule() Rule {
	return Rule{
		ID:       "IND-001",
		Name:     "Deductions below industry benchmark",
		Category: "General deductions",
		Priority: model.PriorityMedium,
		Relevance: func(profile model.UserProfile, history model.ExpenseHistory) float64 {
			benchmark, ok := heuristic.BenchmarkFor(profile.Industry)
			if !ok || profile.TaxableIncome <= 0 {
				return 0.1
			}
			ratio := history.TotalDeductions / profile.TaxableIncome
			if ratio >= benchmark {
				return 0.2
			}
			return 0.8
		},
		Check: func(in Inputs) *model.OptimizationOpportunity {
			benchmark, ok := heuristic.BenchmarkFor(in.Profile.Industry)
			if !ok || in.Profile.TaxableIncome <= 0 {
				return nil
			}

			ratio := in.Current.TotalDeductions / in.Profile.TaxableIncome
			if ratio >= benchmark/2 {
				return nil
			}

			gap := in.Profile.TaxableIncome*benchmark - in.Current.TotalDeductions
			estimate := round2(gap * benchmarkClaimFactor)
			savings := in.Tax.Savings(estimate, in.Profile.TaxableIncome)

			evidence := []string{
				fmt.Sprintf("deduction ratio %.3f is under half the %.3f benchmark for %s", ratio, benchmark, in.Profile.Industry),
			}
			score := scored(in, "IND-001", 0.45, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypeIndustrySpecific,
				Category: "General deductions",
				Title:    "Your deductions trail your industry",
				Description: fmt.Sprintf(
					"Workers in %s typically claim %.1f%% of income in deductions; you have claimed %.1f%%. Around $%.2f of commonly claimed expenses may be missing.",
					in.Profile.Industry, benchmark*100, ratio*100, estimate),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityMedium,
				HeuristicScore:      score,
				RegulatoryReference: "ATO occupation guides",
				TaxImpact:           fmt.Sprintf("Closing half the gap would save about $%.2f.", savings),
				ActionItems: []string{
					"Review the ATO occupation guide for your industry",
					"Walk through a typical work week listing out-of-pocket costs",
				},
			}
		},
	}
}

// quarterlyGapRule fires when one quarter's spend collapses against the
// four-quarter average, which usually means a quarter of lost receipts.
func quarterlyGapRule() Rule {
	return Rule{
		ID:       "QTR-001",
		Name:     "Quarter with missing expense records",
		Category: "Record keeping",
		Priority: model.PriorityMedium,
		Check: func(in Inputs) *model.OptimizationOpportunity {
			quarters := ledger.QuarterlyPattern(in.Current)

			var total float64
			for _, q := range quarters {
				total += q
			}
			average := total / 4
			if average <= quarterAverageFloor {
				return nil
			}

			gapQuarter := -1
			for i, q := range quarters {
				if q < average*quarterGapRatio {
					gapQuarter = i
					break
				}
			}
			if gapQuarter < 0 {
				return nil
			}

			estimate := round2(average - quarters[gapQuarter])
			savings := in.Tax.Savings(estimate, in.Profile.TaxableIncome)

			evidence := []string{
				fmt.Sprintf("Q%d total $%.2f against a $%.2f quarterly average", gapQuarter+1, quarters[gapQuarter], average),
			}
			score := scored(in, "QTR-001", 0.4, evidence)

			return &model.OptimizationOpportunity{
				Type:     model.TypePatternGap,
				Category: "Record keeping",
				Title:    fmt.Sprintf("Q%d expenses look incomplete", gapQuarter+1),
				Description: fmt.Sprintf(
					"Your expenses average $%.2f per quarter, but Q%d has only $%.2f recorded. A quarter of receipts may be missing from your records.",
					average, gapQuarter+1, quarters[gapQuarter]),
				EstimatedSavings:    savings,
				Confidence:          score.Tier(),
				Priority:            model.PriorityMedium,
				HeuristicScore:      score,
				TaxImpact:           fmt.Sprintf("Recovering the missing quarter would save about $%.2f.", savings),
				ActionItems: []string{
					fmt.Sprintf("Re-check bank statements for Q%d", gapQuarter+1),
					"Search email for receipts in the gap months",
				},
			}
		},
	}
}
