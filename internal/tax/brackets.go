// Package tax implements progressive tax arithmetic over an injected bracket table.
package tax

import (
	"fmt"
	"math"
)

// Bracket is one progressive tax band. Limit is the upper bound of taxable
// income covered by the band; the final bracket uses an infinite limit.
type Bracket struct {
	Limit float64 `json:"limit"`
	Rate  float64 `json:"rate"`
}

// Table is an ordered set of brackets plus the flat levy and surcharge
// parameters applied by the payable calculation. Tables are immutable once
// constructed; concurrent calculations may share one freely.
type Table struct {
	Brackets           []Bracket
	LevyRate           float64
	SurchargeRate      float64
	SurchargeThreshold float64
}

// DefaultTable returns the Australian resident 2024-25 bracket table with the
// 2% Medicare levy and the simplified single-tier private health surcharge.
func DefaultTable() Table {
	return Table{
		Brackets: []Bracket{
			{Limit: 18200, Rate: 0},
			{Limit: 45000, Rate: 0.16},
			{Limit: 135000, Rate: 0.30},
			{Limit: 190000, Rate: 0.37},
			{Limit: math.Inf(1), Rate: 0.45},
		},
		LevyRate:           0.02,
		SurchargeRate:      0.01,
		SurchargeThreshold: 90000,
	}
}

// Validate ensures bracket limits are strictly increasing and the table ends
// with an unbounded bracket.
func (t Table) Validate() error {
	if len(t.Brackets) == 0 {
		return fmt.Errorf("bracket table is empty")
	}
	prev := math.Inf(-1)
	for i, b := range t.Brackets {
		if b.Limit <= prev {
			return fmt.Errorf("bracket limits must be strictly increasing, got %.2f at index %d", b.Limit, i)
		}
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("bracket rate must be in [0, 1], got %.4f at index %d", b.Rate, i)
		}
		prev = b.Limit
	}
	if !math.IsInf(t.Brackets[len(t.Brackets)-1].Limit, 1) {
		return fmt.Errorf("final bracket must have an infinite limit")
	}
	return nil
}

// MarginalRate returns the rate of the first bracket whose limit covers the
// given income. Negative incomes are clamped to zero.
func (t Table) MarginalRate(income float64) float64 {
	if income < 0 {
		income = 0
	}
	for _, b := range t.Brackets {
		if income <= b.Limit {
			return b.Rate
		}
	}
	return t.Brackets[len(t.Brackets)-1].Rate
}

// Savings estimates the tax saved by an additional deduction at the taxpayer's
// marginal rate, rounded to cents.
func (t Table) Savings(deduction, taxableIncome float64) float64 {
	return round2(deduction * t.MarginalRate(taxableIncome))
}

// BaseTax walks the bracket table accumulating tax per band, the standard
// progressive step function. Income is clamped to zero before computing.
func (t Table) BaseTax(income float64) float64 {
	if income < 0 {
		income = 0
	}
	var tax float64
	lower := 0.0
	for _, b := range t.Brackets {
		if income <= lower {
			break
		}
		upper := math.Min(income, b.Limit)
		tax += (upper - lower) * b.Rate
		lower = b.Limit
	}
	return round2(tax)
}

// Payable computes total tax: base tax plus the flat levy, plus the surcharge
// when the taxpayer has no private cover and income exceeds the threshold.
func (t Table) Payable(income float64, hasPrivateHealth bool) float64 {
	if income < 0 {
		income = 0
	}
	total := t.BaseTax(income) + income*t.LevyRate
	if !hasPrivateHealth && income > t.SurchargeThreshold {
		total += income * t.SurchargeRate
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
