package completeness

import (
	"fmt"
	"strings"

	"github.com/tallyhq/tally/internal/model"
)

// ChecklistExport renders the report as a plain-text checklist for the user.
func ChecklistExport(report model.CompletenessReport) string {
	var b strings.Builder

	b.WriteString("TAX RETURN CHECKLIST\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", report.GeneratedAt.Format("2 January 2006")))
	b.WriteString(fmt.Sprintf("Readiness: %d/100 (%s)\n", report.Score.Overall, report.Score.ColorStatus))
	b.WriteString(fmt.Sprintf("Estimated time to finish: %d minutes\n", report.EstimatedCompletionMins))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString("INCOME\n")
	for _, check := range report.IncomeChecks {
		if check.Status == model.StatusNotApplicable {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s", statusMark(check.Status), check.Label))
		if check.Amount > 0 {
			b.WriteString(fmt.Sprintf(" ($%.2f)", check.Amount))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nDEDUCTIONS\n")
	for _, check := range report.DeductionChecks {
		if check.Status == model.StatusNotApplicable {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s", statusMark(check.Status), check.Label))
		if check.ClaimedAmount > 0 {
			b.WriteString(fmt.Sprintf(" ($%.2f, %d receipts)", check.ClaimedAmount, check.ReceiptCount))
		}
		b.WriteString("\n")
	}

	if len(report.MissingDocuments) > 0 {
		b.WriteString("\nMISSING DOCUMENTS\n")
		for _, doc := range report.MissingDocuments {
			b.WriteString(fmt.Sprintf("  [ ] %s - %s\n", doc.DocumentType, doc.DetectionReason))
		}
	}

	return b.String()
}

// AccountantSummary renders the report as a handover summary: estimate, risk
// position and outstanding items, in plain text.
func AccountantSummary(report model.CompletenessReport) string {
	var b strings.Builder

	b.WriteString("CLIENT TAX POSITION SUMMARY\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", report.GeneratedAt.Format("2 January 2006")))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	est := report.TaxEstimate
	b.WriteString("TAX ESTIMATE\n")
	b.WriteString(fmt.Sprintf("  Gross income:      $%.2f\n", est.TaxableIncome))
	b.WriteString(fmt.Sprintf("  Total deductions:  $%.2f\n", est.TotalDeductions))
	b.WriteString(fmt.Sprintf("  Net income:        $%.2f\n", est.NetIncome))
	b.WriteString(fmt.Sprintf("  Base tax:          $%.2f\n", est.BaseTax))
	b.WriteString(fmt.Sprintf("  Medicare levy:     $%.2f\n", est.MedicareLevy))
	if est.Surcharge > 0 {
		b.WriteString(fmt.Sprintf("  MLS surcharge:     $%.2f\n", est.Surcharge))
	}
	b.WriteString(fmt.Sprintf("  Withheld:          $%.2f\n", est.TaxWithheld))
	if est.EstimatedResult >= 0 {
		b.WriteString(fmt.Sprintf("  Estimated refund:  $%.2f\n", est.EstimatedResult))
	} else {
		b.WriteString(fmt.Sprintf("  Estimated owing:   $%.2f\n", -est.EstimatedResult))
	}

	b.WriteString(fmt.Sprintf("\nAUDIT RISK: %s (score %.0f)\n", strings.ToUpper(string(report.Risk.Level)), report.Risk.Score))
	for _, factor := range report.Risk.Factors {
		b.WriteString(fmt.Sprintf("  [%s] %s\n", factor.Impact, factor.Description))
	}

	if report.OptimizationTotalSavings > 0 {
		b.WriteString(fmt.Sprintf("\nUnactioned optimization savings: $%.2f\n", report.OptimizationTotalSavings))
	}

	if len(report.MissingDocuments) > 0 {
		b.WriteString("\nOUTSTANDING DOCUMENTS\n")
		for _, doc := range report.MissingDocuments {
			b.WriteString(fmt.Sprintf("  - %s (%s)\n", doc.DocumentType, doc.Priority))
		}
	}

	return b.String()
}

func statusMark(status model.ChecklistStatus) string {
	switch status {
	case model.StatusComplete:
		return "[x]"
	case model.StatusPartial:
		return "[~]"
	default:
		return "[ ]"
	}
}
