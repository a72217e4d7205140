package completeness

import (
	"fmt"

	"github.com/tallyhq/tally/internal/model"
)

// Risk scoring starts from a neutral base and accumulates named factors.
// Scores below 40 are low risk, below 70 medium, otherwise high.
const (
	riskBaseScore        = 50.0
	riskLowCeiling       = 40.0
	riskMediumCeiling    = 70.0
	highDeductionRatio   = 0.10
	modestDeductionRatio = 0.03
	missingDocPenalty    = 5.0
	missingDocPenaltyCap = 15.0
)

func assessRisk(in Input, incomeChecks []model.IncomeCheck, deductionChecks []model.DeductionCheck, missingDocs []model.MissingDocument) model.RiskAssessment {
	assessment := model.RiskAssessment{Score: riskBaseScore}

	add := func(name, description string, impact model.RiskImpact, delta float64) {
		assessment.Factors = append(assessment.Factors, model.RiskFactor{
			Name:        name,
			Description: description,
			Impact:      impact,
			Delta:       delta,
		})
		assessment.Score += delta
	}

	var income, deductions float64
	for _, data := range in.Income {
		income += data.Amount
	}
	for _, data := range in.Deductions {
		deductions += data.ClaimedAmount
	}

	if income > 0 {
		ratio := deductions / income
		switch {
		case ratio > highDeductionRatio:
			add("high_deduction_ratio",
				fmt.Sprintf("Deductions are %.1f%% of income, above the %.0f%% attention threshold.", ratio*100, highDeductionRatio*100),
				model.ImpactNegative, 15)
		case ratio < modestDeductionRatio && deductions > 0:
			add("modest_deduction_ratio",
				fmt.Sprintf("Deductions are a modest %.1f%% of income.", ratio*100),
				model.ImpactPositive, -5)
		}
	}

	var unreceipted int
	for _, check := range deductionChecks {
		if check.ClaimedAmount > 0 && check.ReceiptCount == 0 {
			unreceipted++
		}
	}
	if unreceipted > 0 {
		add("unreceipted_claims",
			fmt.Sprintf("%d claimed categories have no receipts on file.", unreceipted),
			model.ImpactNegative, 10)
	}

	if len(missingDocs) > 0 {
		penalty := float64(len(missingDocs)) * missingDocPenalty
		if penalty > missingDocPenaltyCap {
			penalty = missingDocPenaltyCap
		}
		add("missing_documents",
			fmt.Sprintf("%d expected documents are missing.", len(missingDocs)),
			model.ImpactNegative, penalty)
	}

	var requiredMissing int
	for _, check := range incomeChecks {
		if check.Required && check.Status == model.StatusMissing {
			requiredMissing++
		}
	}
	for _, check := range deductionChecks {
		if check.Required && check.Status == model.StatusMissing {
			requiredMissing++
		}
	}
	if requiredMissing > 0 {
		add("required_items_missing",
			fmt.Sprintf("%d required checklist items are still missing.", requiredMissing),
			model.ImpactNegative, 10)
	}

	if in.Profile.LodgedLastYear {
		add("lodgment_history", "Lodged on time last year.", model.ImpactPositive, -10)
	} else {
		add("no_lodgment_history", "No prior-year lodgment on record.", model.ImpactNegative, 5)
	}

	if in.Profile.HasPrivateHealth {
		add("private_health_cover", "Private health cover held for the full year.", model.ImpactPositive, -5)
	} else {
		add("no_private_health", "No private health cover declared.", model.ImpactNeutral, 0)
	}

	if assessment.Score < 0 {
		assessment.Score = 0
	}
	if assessment.Score > 100 {
		assessment.Score = 100
	}

	switch {
	case assessment.Score < riskLowCeiling:
		assessment.Level = model.RiskLow
	case assessment.Score < riskMediumCeiling:
		assessment.Level = model.RiskMedium
	default:
		assessment.Level = model.RiskHigh
	}

	return assessment
}
