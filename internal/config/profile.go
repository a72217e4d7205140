package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/tallyhq/tally/internal/model"
)

// Profile is the taxpayer profile file loaded from YAML. One file feeds both
// engines; each accessor maps it onto the model that engine consumes.
type Profile struct {
	Occupation             string   `mapstructure:"occupation"`
	Industry               string   `mapstructure:"industry"`
	State                  string   `mapstructure:"state"`
	WorkArrangement        string   `mapstructure:"work_arrangement"`
	EmploymentType         string   `mapstructure:"employment_type"`
	InvestmentTypes        []string `mapstructure:"investment_types"`
	TaxableIncome          float64  `mapstructure:"taxable_income"`
	PreviousYearDeductions *float64 `mapstructure:"previous_year_deductions"`
	Age                    int      `mapstructure:"age"`
	HasVehicle             bool     `mapstructure:"has_vehicle"`
	HasInvestments         bool     `mapstructure:"has_investments"`
	HasRentalProperty      bool     `mapstructure:"has_rental_property"`
	IsStudying             bool     `mapstructure:"is_studying"`
	HasPrivateHealth       bool     `mapstructure:"has_private_health"`
	LodgedLastYear         bool     `mapstructure:"lodged_last_year"`
}

// LoadProfile reads a taxpayer profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(ExpandPath(path))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	optimization := profile.Optimization()
	if err := optimization.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return &profile, nil
}

func (p *Profile) investmentTypes() []model.InvestmentType {
	types := make([]model.InvestmentType, 0, len(p.InvestmentTypes))
	for _, t := range p.InvestmentTypes {
		types = append(types, model.InvestmentType(t))
	}
	return types
}

// Optimization maps the profile onto the rule engine's input model.
func (p *Profile) Optimization() model.UserProfile {
	return model.UserProfile{
		Occupation:             p.Occupation,
		Industry:               p.Industry,
		State:                  p.State,
		WorkArrangement:        model.WorkArrangement(p.WorkArrangement),
		EmploymentType:         model.EmploymentType(p.EmploymentType),
		InvestmentTypes:        p.investmentTypes(),
		TaxableIncome:          p.TaxableIncome,
		PreviousYearDeductions: p.PreviousYearDeductions,
		Age:                    p.Age,
		HasVehicle:             p.HasVehicle,
		HasInvestments:         p.HasInvestments,
		IsStudying:             p.IsStudying,
	}
}

// Checklist maps the profile onto the completeness engine's input model.
func (p *Profile) Checklist() model.UserTaxProfile {
	return model.UserTaxProfile{
		Occupation:        p.Occupation,
		State:             p.State,
		EmploymentType:    model.EmploymentType(p.EmploymentType),
		WorkArrangement:   model.WorkArrangement(p.WorkArrangement),
		InvestmentTypes:   p.investmentTypes(),
		Age:               p.Age,
		HasInvestments:    p.HasInvestments,
		HasRentalProperty: p.HasRentalProperty,
		HasVehicle:        p.HasVehicle,
		IsStudying:        p.IsStudying,
		HasPrivateHealth:  p.HasPrivateHealth,
		LodgedLastYear:    p.LodgedLastYear,
	}
}
