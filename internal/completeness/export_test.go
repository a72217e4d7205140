package completeness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tallyhq/tally/internal/model"
)

func TestChecklistExport(t *testing.T) {
	in := completeInput()
	in.Profile.HasRentalProperty = true

	text := ChecklistExport(generator().Generate(in))

	assert.Contains(t, text, "TAX RETURN CHECKLIST")
	assert.Contains(t, text, "Generated: 1 June 2025")
	assert.Contains(t, text, "[x] Salary and wages ($90000.00)")
	assert.Contains(t, text, "[ ] Rental income")
	assert.Contains(t, text, "MISSING DOCUMENTS")
	assert.Contains(t, text, "Rental income statement")
	// Sources with no data and no requirement stay off the checklist.
	assert.NotContains(t, text, "Government payments")
}

func TestAccountantSummary(t *testing.T) {
	in := completeInput()
	in.Income = map[string]model.IncomeData{
		"salary": {Amount: 90000, DocumentCount: 1},
	}
	in.Deductions = nil
	in.TaxWithheld = 25000

	text := AccountantSummary(generator().Generate(in))

	assert.Contains(t, text, "CLIENT TAX POSITION SUMMARY")
	assert.Contains(t, text, "Gross income:      $90000.00")
	assert.Contains(t, text, "Estimated refund:")
	assert.Contains(t, text, "AUDIT RISK: LOW")
	assert.Contains(t, text, "Lodged on time last year.")
}

func TestAccountantSummaryOwing(t *testing.T) {
	in := completeInput()
	in.TaxWithheld = 0

	text := AccountantSummary(generator().Generate(in))
	assert.Contains(t, text, "Estimated owing:")
	assert.NotContains(t, text, "Estimated refund:")
}
