package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/tallyhq/tally/internal/model"
)

// IncomeEntry is one income source in a return data file.
type IncomeEntry struct {
	Amount          float64 `mapstructure:"amount"`
	PriorYearAmount float64 `mapstructure:"prior_year_amount"`
	DocumentCount   int     `mapstructure:"document_count"`
}

// DeductionEntry is one deduction category in a return data file.
type DeductionEntry struct {
	ClaimedAmount     float64 `mapstructure:"claimed_amount"`
	PotentialAmount   float64 `mapstructure:"potential_amount"`
	ReceiptCount      int     `mapstructure:"receipt_count"`
	WorkpaperComplete bool    `mapstructure:"workpaper_complete"`
}

// ReturnData is the in-progress return loaded from YAML for the completeness
// checklist. Income keys are catalog ids ("salary", "dividends", ...),
// deduction keys are D1-D15.
type ReturnData struct {
	Income                   map[string]IncomeEntry    `mapstructure:"income"`
	Deductions               map[string]DeductionEntry `mapstructure:"deductions"`
	TaxWithheld              float64                   `mapstructure:"tax_withheld"`
	Offsets                  float64                   `mapstructure:"offsets"`
	ImplementedOpportunities []string                  `mapstructure:"implemented_opportunities"`
}

// LoadReturn reads in-progress return data from a YAML file.
func LoadReturn(path string) (*ReturnData, error) {
	v := viper.New()
	v.SetConfigFile(ExpandPath(path))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read return data %s: %w", path, err)
	}

	var data ReturnData
	if err := v.Unmarshal(&data); err != nil {
		return nil, fmt.Errorf("failed to parse return data %s: %w", path, err)
	}
	return &data, nil
}

// IncomeData maps the file entries onto the completeness engine's input model.
func (r *ReturnData) IncomeData() map[string]model.IncomeData {
	income := make(map[string]model.IncomeData, len(r.Income))
	for id, entry := range r.Income {
		income[id] = model.IncomeData{
			Amount:          entry.Amount,
			PriorYearAmount: entry.PriorYearAmount,
			DocumentCount:   entry.DocumentCount,
		}
	}
	return income
}

// DeductionData maps the file entries onto the completeness engine's input model.
func (r *ReturnData) DeductionData() map[string]model.DeductionData {
	deductions := make(map[string]model.DeductionData, len(r.Deductions))
	// Viper lowercases map keys, so "D5" arrives as "d5". The catalog uses
	// upper-case category ids.
	for id, entry := range r.Deductions {
		deductions[strings.ToUpper(id)] = model.DeductionData{
			ClaimedAmount:     entry.ClaimedAmount,
			PotentialAmount:   entry.PotentialAmount,
			ReceiptCount:      entry.ReceiptCount,
			WorkpaperComplete: entry.WorkpaperComplete,
		}
	}
	return deductions
}
