// Package completeness generates tax-return readiness reports: checklist
// coverage, a tax-payable estimate, missing-document detection, and an
// audit-risk assessment. It is independent of the optimization engine and
// only consumes an already-computed opportunity list.
package completeness

import "github.com/tallyhq/tally/internal/model"

// incomeSource is one entry in the fixed income-source catalog.
type incomeSource struct {
	ID       string
	Label    string
	Required bool
}

// incomeCatalog is the fixed set of income sources every report checks.
// Required-ness of rental and dividends is upgraded per profile at runtime.
var incomeCatalog = []incomeSource{
	{ID: "salary", Label: "Salary and wages", Required: true},
	{ID: "interest", Label: "Bank interest", Required: true},
	{ID: "dividends", Label: "Dividends"},
	{ID: "rental", Label: "Rental income"},
	{ID: "capital_gains", Label: "Capital gains (shares, crypto, property)"},
	{ID: "government", Label: "Government payments"},
	{ID: "business", Label: "Business and contractor income"},
}

// deductionCategory is one entry in the D1–D15 deduction catalog.
type deductionCategory struct {
	ID    string
	Label string
}

// deductionCatalog mirrors the ATO's D1–D15 deduction classifications. No
// category is required by default; D1 is upgraded for vehicle owners and D4
// for taxpayers currently studying.
var deductionCatalog = []deductionCategory{
	{ID: "D1", Label: "Work-related car expenses"},
	{ID: "D2", Label: "Work-related travel expenses"},
	{ID: "D3", Label: "Work-related clothing expenses"},
	{ID: "D4", Label: "Self-education expenses"},
	{ID: "D5", Label: "Other work-related expenses"},
	{ID: "D6", Label: "Low value pool deduction"},
	{ID: "D7", Label: "Interest deductions"},
	{ID: "D8", Label: "Dividend deductions"},
	{ID: "D9", Label: "Gifts and donations"},
	{ID: "D10", Label: "Cost of managing tax affairs"},
	{ID: "D11", Label: "Deductible amount of UPP of a foreign pension"},
	{ID: "D12", Label: "Personal superannuation contributions"},
	{ID: "D13", Label: "Deduction for project pool"},
	{ID: "D14", Label: "Forestry managed investment scheme"},
	{ID: "D15", Label: "Other deductions"},
}

// incomeRequired applies per-profile upgrades to catalog required-ness.
func incomeRequired(source incomeSource, profile model.UserTaxProfile) bool {
	switch source.ID {
	case "rental":
		return source.Required || profile.HasRentalProperty
	case "dividends":
		return source.Required || profile.HasInvestmentType(model.InvestmentShares)
	default:
		return source.Required
	}
}

// deductionRequired applies per-profile upgrades to catalog required-ness.
func deductionRequired(category deductionCategory, profile model.UserTaxProfile) bool {
	switch category.ID {
	case "D1":
		return profile.HasVehicle
	case "D4":
		return profile.IsStudying
	default:
		return false
	}
}
