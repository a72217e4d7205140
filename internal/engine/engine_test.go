package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/rules"
)

func fixedClock() time.Time {
	return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func testEngine(opts ...Option) *Engine {
	base := []Option{
		WithClock(fixedClock),
		WithIDGenerator(func(ruleID string) string { return ruleID + "-test" }),
	}
	return New(append(base, opts...)...)
}

func remoteProfile() model.UserProfile {
	return model.UserProfile{
		Occupation:      "Software Developer",
		TaxableIncome:   80000,
		WorkArrangement: model.WorkRemote,
	}
}

func TestRunProducesOpportunities(t *testing.T) {
	e := testEngine()

	result := e.Run(remoteProfile(), model.ExpenseHistory{TaxYear: 2025}, nil)

	require.NotEmpty(t, result.Opportunities)
	assert.Len(t, result.RuleRankings, 20)
	assert.Positive(t, result.TotalPotentialSavings)

	// The critical home office finding for a remote worker sorts first.
	first := result.Opportunities[0]
	assert.Equal(t, model.PriorityCritical, first.Priority)
	assert.Equal(t, "WFH-001-test", first.ID)
}

func TestRunDeterministic(t *testing.T) {
	e := testEngine()
	profile := remoteProfile()
	history := model.ExpenseHistory{TaxYear: 2025}

	first := e.Run(profile, history, nil)
	second := e.Run(profile, history, nil)
	assert.Equal(t, first, second)
}

func TestRunSortInvariant(t *testing.T) {
	e := testEngine()
	profile := remoteProfile()
	profile.HasVehicle = true
	profile.IsStudying = true
	profile.InvestmentTypes = []model.InvestmentType{model.InvestmentCrypto, model.InvestmentShares}

	result := e.Run(profile, model.ExpenseHistory{TaxYear: 2025}, nil)
	require.NotEmpty(t, result.Opportunities)

	for i := 1; i < len(result.Opportunities); i++ {
		prev, cur := result.Opportunities[i-1], result.Opportunities[i]
		require.LessOrEqual(t, prev.Priority.Rank(), cur.Priority.Rank())
		if prev.Priority.Rank() == cur.Priority.Rank() {
			require.GreaterOrEqual(t, relevanceOf(prev), relevanceOf(cur))
		}
	}
}

func TestRunSurvivesPanickingRule(t *testing.T) {
	panicking := rules.Rule{
		ID:       "BAD-001",
		Name:     "Always panics",
		Category: "test",
		Priority: model.PriorityLow,
		Check: func(_ rules.Inputs) *model.OptimizationOpportunity {
			panic("boom")
		},
	}
	triggering := rules.Rule{
		ID:       "OK-001",
		Name:     "Always triggers",
		Category: "test",
		Priority: model.PriorityLow,
		Check: func(_ rules.Inputs) *model.OptimizationOpportunity {
			return &model.OptimizationOpportunity{
				Type:     model.TypeMissingDeduction,
				Title:    "ok",
				Priority: model.PriorityLow,
			}
		},
	}

	e := testEngine(WithRules([]rules.Rule{panicking, triggering}))
	result := e.Run(remoteProfile(), model.ExpenseHistory{TaxYear: 2025}, nil)

	require.Len(t, result.Opportunities, 1)
	assert.Equal(t, "OK-001-test", result.Opportunities[0].ID)
}

func TestRankingsIncludeEveryRule(t *testing.T) {
	e := testEngine()
	result := e.Run(model.UserProfile{TaxableIncome: 40000}, model.ExpenseHistory{TaxYear: 2025}, nil)

	assert.Len(t, result.RuleRankings, 20)
	for i := 1; i < len(result.RuleRankings); i++ {
		assert.GreaterOrEqual(t,
			result.RuleRankings[i-1].RelevanceScore,
			result.RuleRankings[i].RelevanceScore)
	}
}

func TestRankingOccupationBonus(t *testing.T) {
	e := testEngine()

	tradie := model.UserProfile{Occupation: "Electrician", TaxableIncome: 70000}
	office := model.UserProfile{Occupation: "Analyst", TaxableIncome: 70000}

	rankingFor := func(profile model.UserProfile, ruleID string) model.RuleRanking {
		result := e.Run(profile, model.ExpenseHistory{TaxYear: 2025}, nil)
		for _, r := range result.RuleRankings {
			if r.RuleID == ruleID {
				return r
			}
		}
		t.Fatalf("rule %s not ranked", ruleID)
		return model.RuleRanking{}
	}

	withBonus := rankingFor(tradie, "TLS-001")
	withoutBonus := rankingFor(office, "TLS-001")
	assert.Greater(t, withBonus.RelevanceScore, withoutBonus.RelevanceScore)
}

func TestRankingMarksTriggeredRules(t *testing.T) {
	e := testEngine()
	result := e.Run(remoteProfile(), model.ExpenseHistory{TaxYear: 2025}, nil)

	triggered := make(map[string]bool)
	for _, opp := range result.Opportunities {
		require.NotNil(t, opp.RelevanceScore)
		triggered[opp.HeuristicScore.RuleID] = true
	}
	for _, r := range result.RuleRankings {
		if triggered[r.RuleID] {
			assert.True(t, r.Triggered, "rule %s should be marked triggered", r.RuleID)
		}
	}
}

func TestSummaryAggregates(t *testing.T) {
	e := testEngine()
	result := e.Run(remoteProfile(), model.ExpenseHistory{TaxYear: 2025}, nil)

	var total int
	for _, count := range result.Summary.ByPriority {
		total += count
	}
	assert.Equal(t, len(result.Opportunities), total)
	assert.Greater(t, result.Summary.AverageConfidence, 0.0)
	assert.LessOrEqual(t, result.Summary.AverageConfidence, 1.0)
}

func TestDefaultIDGeneratorEmbedsMillis(t *testing.T) {
	e := New(WithClock(fixedClock))
	result := e.Run(remoteProfile(), model.ExpenseHistory{TaxYear: 2025}, nil)

	require.NotEmpty(t, result.Opportunities)
	assert.Contains(t, result.Opportunities[0].ID, "WFH-001-")
}

func TestOccupationHints(t *testing.T) {
	hints := occupationHints("Delivery Driver")
	assert.True(t, hints["D1 - Work-related car expenses"])

	assert.Empty(t, occupationHints("florist"))
}
