package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/tax"
	"github.com/tallyhq/tally/internal/yoy"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func inputs(profile model.UserProfile, history model.ExpenseHistory) Inputs {
	return Inputs{
		Now:     date("2025-03-15"),
		Profile: profile,
		Current: history,
		Tax:     tax.DefaultTable(),
	}
}

func expense(dateStr, category string, amount float64) model.ExpenseRecord {
	return model.ExpenseRecord{Date: date(dateStr), Category: category, Amount: amount}
}

func TestHomeOfficeRule(t *testing.T) {
	tests := []struct {
		name        string
		arrangement model.WorkArrangement
		expenses    []model.ExpenseRecord
		wantSavings float64
		wantTrigger bool
	}{
		{
			name:        "remote worker with no claims",
			arrangement: model.WorkRemote,
			wantTrigger: true,
			wantSavings: 450, // $1500 at the 30% marginal rate
		},
		{
			name:        "hybrid worker with no claims",
			arrangement: model.WorkHybrid,
			wantTrigger: true,
			wantSavings: 240, // $800 at 30%
		},
		{
			name:        "office worker never triggers",
			arrangement: model.WorkOffice,
			wantTrigger: false,
		},
		{
			name:        "existing home office claim suppresses",
			arrangement: model.WorkRemote,
			expenses:    []model.ExpenseRecord{expense("2025-01-10", "home office", 200)},
			wantTrigger: false,
		},
	}

	rule := homeOfficeRule()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := model.UserProfile{
				TaxableIncome:   80000,
				WorkArrangement: tt.arrangement,
			}
			history := model.ExpenseHistory{TaxYear: 2025, Expenses: tt.expenses}

			opp := rule.Check(inputs(profile, history))
			if !tt.wantTrigger {
				assert.Nil(t, opp)
				return
			}

			require.NotNil(t, opp)
			assert.Equal(t, model.TypeMissingDeduction, opp.Type)
			assert.Equal(t, model.PriorityCritical, opp.Priority)
			assert.InDelta(t, tt.wantSavings, opp.EstimatedSavings, 0.001)
			require.NotNil(t, opp.HeuristicScore)
			assert.Equal(t, "WFH-001", opp.HeuristicScore.RuleID)
		})
	}
}

func TestHomeOfficeConfidence(t *testing.T) {
	profile := model.UserProfile{TaxableIncome: 80000, WorkArrangement: model.WorkRemote}
	history := model.ExpenseHistory{TaxYear: 2025}

	opp := homeOfficeRule().Check(inputs(profile, history))
	require.NotNil(t, opp)

	// base 0.6 + two evidence items 0.2 + industry baseline 0.1
	assert.InDelta(t, 0.9, opp.HeuristicScore.FinalScore, 1e-9)
	assert.Equal(t, model.ConfidenceHigh, opp.Confidence)
}

func TestVehicleLogbookGapRule(t *testing.T) {
	tests := []struct {
		name        string
		expenses    []model.ExpenseRecord
		wantSavings float64
		wantTrigger bool
	}{
		{
			name: "large spend in few entries",
			expenses: []model.ExpenseRecord{
				expense("2025-01-10", "vehicle", 900),
				expense("2025-02-10", "vehicle", 800),
				expense("2025-03-10", "vehicle", 800),
			},
			wantTrigger: true,
			wantSavings: 225, // 2500 * 0.3 uplift at 30%
		},
		{
			name: "total at the floor does not trigger",
			expenses: []model.ExpenseRecord{
				expense("2025-01-10", "vehicle", 2000),
			},
			wantTrigger: false,
		},
		{
			name: "enough entries for a supported claim",
			expenses: []model.ExpenseRecord{
				expense("2025-01-10", "vehicle", 500),
				expense("2025-02-10", "vehicle", 500),
				expense("2025-03-10", "vehicle", 500),
				expense("2025-04-10", "vehicle", 500),
				expense("2025-05-10", "vehicle", 500),
			},
			wantTrigger: false,
		},
	}

	rule := vehicleLogbookGapRule()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := model.UserProfile{TaxableIncome: 80000}
			history := model.ExpenseHistory{TaxYear: 2025, Expenses: tt.expenses}

			opp := rule.Check(inputs(profile, history))
			if !tt.wantTrigger {
				assert.Nil(t, opp)
				return
			}
			require.NotNil(t, opp)
			assert.Equal(t, model.TypeBetterMethod, opp.Type)
			assert.InDelta(t, tt.wantSavings, opp.EstimatedSavings, 0.001)
		})
	}
}

func TestVehicleMissingRule(t *testing.T) {
	profile := model.UserProfile{TaxableIncome: 80000, HasVehicle: true}
	history := model.ExpenseHistory{TaxYear: 2025}

	opp := vehicleMissingRule().Check(inputs(profile, history))
	require.NotNil(t, opp)
	assert.InDelta(t, 300.0, opp.EstimatedSavings, 0.001) // $1000 at 30%

	profile.HasVehicle = false
	assert.Nil(t, vehicleMissingRule().Check(inputs(profile, history)))
}

func TestOccupationGatedRules(t *testing.T) {
	tests := []struct {
		name       string
		rule       Rule
		occupation string
		triggers   bool
	}{
		{"uniform for nurse", uniformRule(), "Registered Nurse", true},
		{"uniform for developer", uniformRule(), "Software Developer", false},
		{"tools for electrician", toolsRule(), "Electrician", true},
		{"tools for accountant", toolsRule(), "Accountant", false},
		{"travel for sales rep", workTravelRule(), "Sales Representative", true},
		{"subscriptions for engineer", subscriptionsRule(), "Engineer", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := model.UserProfile{TaxableIncome: 55000, Occupation: tt.occupation}
			history := model.ExpenseHistory{TaxYear: 2025}

			opp := tt.rule.Check(inputs(profile, history))
			if tt.triggers {
				assert.NotNil(t, opp)
			} else {
				assert.Nil(t, opp)
			}
		})
	}
}

func TestIncomeGatedRules(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		income   float64
		triggers bool
	}{
		{"income protection above floor", incomeProtectionRule(), 90000, true},
		{"income protection at floor", incomeProtectionRule(), 80000, false},
		{"donations above floor", donationsRule(), 60000, true},
		{"donations at floor", donationsRule(), 50000, false},
		{"super above floor", superContributionRule(), 150000, true},
		{"super at floor", superContributionRule(), 100000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := model.UserProfile{TaxableIncome: tt.income}
			history := model.ExpenseHistory{TaxYear: 2025}

			opp := tt.rule.Check(inputs(profile, history))
			if tt.triggers {
				assert.NotNil(t, opp)
			} else {
				assert.Nil(t, opp)
			}
		})
	}
}

func TestSuperContributionSavings(t *testing.T) {
	profile := model.UserProfile{TaxableIncome: 150000}
	history := model.ExpenseHistory{TaxYear: 2025}

	opp := superContributionRule().Check(inputs(profile, history))
	require.NotNil(t, opp)
	// $5000 at the 22% spread between the 37% marginal rate and 15% fund tax.
	assert.InDelta(t, 1100.0, opp.EstimatedSavings, 0.001)
}

func TestInvestmentGatedRules(t *testing.T) {
	tests := []struct {
		name       string
		rule       Rule
		investment model.InvestmentType
	}{
		{"crypto records", cryptoRecordsRule(), model.InvestmentCrypto},
		{"capital works", capitalWorksRule(), model.InvestmentProperty},
		{"share deductions", shareDeductionsRule(), model.InvestmentShares},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := model.ExpenseHistory{TaxYear: 2025}

			with := model.UserProfile{
				TaxableIncome:   80000,
				InvestmentTypes: []model.InvestmentType{tt.investment},
			}
			assert.NotNil(t, tt.rule.Check(inputs(with, history)))

			without := model.UserProfile{TaxableIncome: 80000}
			assert.Nil(t, tt.rule.Check(inputs(without, history)))
		})
	}
}

func TestTaxAgentFeeRule(t *testing.T) {
	history := model.ExpenseHistory{TaxYear: 2025}

	prev := 3000.0
	profile := model.UserProfile{TaxableIncome: 80000, PreviousYearDeductions: &prev}
	assert.NotNil(t, taxAgentFeeRule().Check(inputs(profile, history)))

	profile.PreviousYearDeductions = nil
	assert.Nil(t, taxAgentFeeRule().Check(inputs(profile, history)))
}

func TestPhoneInternetRule(t *testing.T) {
	history := model.ExpenseHistory{TaxYear: 2025}

	remote := model.UserProfile{TaxableIncome: 80000, WorkArrangement: model.WorkRemote}
	assert.NotNil(t, phoneInternetRule().Check(inputs(remote, history)))

	office := model.UserProfile{TaxableIncome: 80000, WorkArrangement: model.WorkOffice}
	assert.Nil(t, phoneInternetRule().Check(inputs(office, history)))
}

func TestIndustryBenchmarkRule(t *testing.T) {
	profile := model.UserProfile{TaxableIncome: 100000, Industry: "technology"}
	history := model.ExpenseHistory{TaxYear: 2025, TotalDeductions: 1000}

	opp := industryBenchmarkRule().Check(inputs(profile, history))
	require.NotNil(t, opp)
	assert.Equal(t, model.TypeIndustrySpecific, opp.Type)
	// Gap to the 3% benchmark is $2000; half claimed at 30% saves $300.
	assert.InDelta(t, 300.0, opp.EstimatedSavings, 0.001)

	// At or above half the benchmark nothing fires.
	history.TotalDeductions = 1500
	assert.Nil(t, industryBenchmarkRule().Check(inputs(profile, history)))
}

func TestQuarterlyGapRule(t *testing.T) {
	profile := model.UserProfile{TaxableIncome: 80000}
	history := model.ExpenseHistory{
		TaxYear: 2025,
		Expenses: []model.ExpenseRecord{
			expense("2025-01-15", "vehicle", 1000),
			expense("2025-04-15", "vehicle", 1000),
			expense("2025-07-15", "vehicle", 1000),
			expense("2025-10-15", "vehicle", 50),
		},
	}

	opp := quarterlyGapRule().Check(inputs(profile, history))
	require.NotNil(t, opp)
	assert.Equal(t, model.TypePatternGap, opp.Type)
	// Q4 is $712.50 below the $762.50 average; at 30% that is $213.75.
	assert.InDelta(t, 213.75, opp.EstimatedSavings, 0.001)
}

func TestQuarterlyGapRuleLowVolume(t *testing.T) {
	profile := model.UserProfile{TaxableIncome: 80000}
	history := model.ExpenseHistory{
		TaxYear: 2025,
		Expenses: []model.ExpenseRecord{
			expense("2025-01-15", "vehicle", 600),
		},
	}

	// Average under the floor; sparse ledgers never flag gaps.
	assert.Nil(t, quarterlyGapRule().Check(inputs(profile, history)))
}

func TestYoYAnomalyRule(t *testing.T) {
	current := model.ExpenseHistory{
		TaxYear: 2025,
		Expenses: []model.ExpenseRecord{
			expense("2025-01-15", "travel", 100),
		},
	}
	prior := model.ExpenseHistory{
		TaxYear: 2024,
		Expenses: []model.ExpenseRecord{
			expense("2024-03-15", "travel", 1000),
		},
		TotalDeductions: 1000,
	}

	in := inputs(model.UserProfile{TaxableIncome: 80000}, current)
	in.Context.YoYComparisons = yoy.BuildComparisons([]model.ExpenseHistory{prior, current})

	opp := yoyAnomalyRule().Check(in)
	require.NotNil(t, opp)
	assert.Equal(t, model.TypeYoYAnomaly, opp.Type)
	require.Len(t, opp.YoYComparison, 1)
	assert.Equal(t, "travel", opp.YoYComparison[0].Category)
	// Half the collapsed $1000 at 30%.
	assert.InDelta(t, 150.0, opp.EstimatedSavings, 0.001)
}

func TestYoYAnomalyRuleNoPriorYear(t *testing.T) {
	current := model.ExpenseHistory{TaxYear: 2025}
	in := inputs(model.UserProfile{TaxableIncome: 80000}, current)

	assert.Nil(t, yoyAnomalyRule().Check(in))
}

func TestTimingRule(t *testing.T) {
	history := model.ExpenseHistory{
		TaxYear: 2025,
		Expenses: []model.ExpenseRecord{
			expense("2025-02-15", "work travel", 300),
		},
	}
	profile := model.UserProfile{TaxableIncome: 80000}

	tests := []struct {
		now      string
		triggers bool
	}{
		{"2025-05-20", true},
		{"2025-06-20", true},
		{"2025-07-20", false},
		{"2025-03-20", false},
	}

	for _, tt := range tests {
		t.Run(tt.now, func(t *testing.T) {
			in := inputs(profile, history)
			in.Now = date(tt.now)

			opp := timingRule().Check(in)
			if tt.triggers {
				require.NotNil(t, opp)
				assert.Equal(t, model.TypeTiming, opp.Type)
			} else {
				assert.Nil(t, opp)
			}
		})
	}
}

func TestTimingRuleNeedsWorkExpenses(t *testing.T) {
	in := inputs(model.UserProfile{TaxableIncome: 80000}, model.ExpenseHistory{TaxYear: 2025})
	in.Now = date("2025-05-20")

	assert.Nil(t, timingRule().Check(in))
}

func TestAllRulesHaveUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range All() {
		assert.NotEmpty(t, rule.ID)
		assert.NotEmpty(t, rule.Name)
		assert.False(t, seen[rule.ID], "duplicate rule id %s", rule.ID)
		seen[rule.ID] = true
	}
	assert.Len(t, seen, 20)
}

func TestOccupationMatches(t *testing.T) {
	assert.True(t, occupationMatches("Senior Nurse Practitioner", uniformOccupations))
	assert.True(t, occupationMatches("ELECTRICIAN", toolsOccupations))
	assert.False(t, occupationMatches("", uniformOccupations))
	assert.False(t, occupationMatches("florist", toolsOccupations))
}
