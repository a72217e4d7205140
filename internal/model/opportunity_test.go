package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 0, PriorityCritical.Rank())
	assert.Equal(t, 1, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 3, PriorityLow.Rank())
	assert.Equal(t, 4, Priority("bogus").Rank())
}

func TestHeuristicScoreTier(t *testing.T) {
	tests := []struct {
		score float64
		want  ConfidenceTier
	}{
		{0.9, ConfidenceHigh},
		{0.75, ConfidenceHigh},
		{0.74, ConfidenceMedium},
		{0.5, ConfidenceMedium},
		{0.49, ConfidenceLow},
		{0, ConfidenceLow},
	}
	for _, tt := range tests {
		got := HeuristicScore{FinalScore: tt.score}.Tier()
		assert.Equal(t, tt.want, got, "score %.2f", tt.score)
	}
}

func TestUserProfileValidate(t *testing.T) {
	valid := UserProfile{
		Occupation:      "Software Developer",
		TaxableIncome:   80000,
		WorkArrangement: WorkRemote,
		EmploymentType:  EmploymentFullTime,
	}
	assert.NoError(t, valid.Validate())

	// Empty enums are allowed.
	assert.NoError(t, (&UserProfile{}).Validate())

	bad := valid
	bad.WorkArrangement = "underwater"
	assert.ErrorContains(t, bad.Validate(), "unknown work arrangement")

	bad = valid
	bad.EmploymentType = "gig"
	assert.ErrorContains(t, bad.Validate(), "unknown employment type")

	bad = valid
	bad.TaxableIncome = -5
	assert.ErrorContains(t, bad.Validate(), "must not be negative")

	negative := -1.0
	bad = valid
	bad.PreviousYearDeductions = &negative
	assert.ErrorContains(t, bad.Validate(), "previous year deductions")
}

func TestHasInvestmentType(t *testing.T) {
	p := UserProfile{InvestmentTypes: []InvestmentType{InvestmentShares, InvestmentCrypto}}
	assert.True(t, p.HasInvestmentType(InvestmentCrypto))
	assert.False(t, p.HasInvestmentType(InvestmentProperty))
}
