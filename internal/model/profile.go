// Package model defines the core data structures for the tally engines.
package model

import (
	"fmt"
)

// WorkArrangement describes where a taxpayer performs their work.
type WorkArrangement string

// Work arrangement constants.
const (
	WorkOffice WorkArrangement = "office"
	WorkHybrid WorkArrangement = "hybrid"
	WorkRemote WorkArrangement = "remote"
	WorkMixed  WorkArrangement = "mixed"
)

// EmploymentType describes the taxpayer's employment basis.
type EmploymentType string

// Employment type constants.
const (
	EmploymentFullTime     EmploymentType = "full-time"
	EmploymentPartTime     EmploymentType = "part-time"
	EmploymentCasual       EmploymentType = "casual"
	EmploymentContractor   EmploymentType = "contractor"
	EmploymentSelfEmployed EmploymentType = "self-employed"
)

// InvestmentType describes a class of investment held by the taxpayer.
type InvestmentType string

// Investment type constants.
const (
	InvestmentShares   InvestmentType = "shares"
	InvestmentProperty InvestmentType = "property"
	InvestmentCrypto   InvestmentType = "crypto"
	InvestmentBonds    InvestmentType = "bonds"
	InvestmentOther    InvestmentType = "other"
)

// UserProfile is the declared taxpayer profile supplied fresh for each
// optimization run. Rules match occupation and industry by case-insensitive
// substring, so both are free text.
type UserProfile struct {
	Occupation             string           `json:"occupation"`
	Industry               string           `json:"industry,omitempty"`
	State                  string           `json:"state,omitempty"`
	WorkArrangement        WorkArrangement  `json:"work_arrangement"`
	EmploymentType         EmploymentType   `json:"employment_type"`
	InvestmentTypes        []InvestmentType `json:"investment_types,omitempty"`
	TaxableIncome          float64          `json:"taxable_income"`
	PreviousYearDeductions *float64         `json:"previous_year_deductions,omitempty"`
	Age                    int              `json:"age"`
	HasVehicle             bool             `json:"has_vehicle"`
	HasInvestments         bool             `json:"has_investments"`
	IsStudying             bool             `json:"is_studying"`
}

// HasInvestmentType reports whether the profile declares the given investment class.
func (p *UserProfile) HasInvestmentType(t InvestmentType) bool {
	for _, it := range p.InvestmentTypes {
		if it == t {
			return true
		}
	}
	return false
}

// Validate ensures the profile has valid data.
func (p *UserProfile) Validate() error {
	if p.TaxableIncome < 0 {
		return fmt.Errorf("taxable income must not be negative, got %.2f", p.TaxableIncome)
	}

	switch p.WorkArrangement {
	case WorkOffice, WorkHybrid, WorkRemote, WorkMixed, "":
	default:
		return fmt.Errorf("unknown work arrangement %q", p.WorkArrangement)
	}

	switch p.EmploymentType {
	case EmploymentFullTime, EmploymentPartTime, EmploymentCasual, EmploymentContractor, EmploymentSelfEmployed, "":
	default:
		return fmt.Errorf("unknown employment type %q", p.EmploymentType)
	}

	if p.PreviousYearDeductions != nil && *p.PreviousYearDeductions < 0 {
		return fmt.Errorf("previous year deductions must not be negative")
	}

	return nil
}
