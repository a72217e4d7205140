package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/tallyhq/tally/internal/model"
)

// ExportForAccountant renders an optimization result as plain text suitable
// for handing to an accountant. The format is presentation convenience, not a
// versioned protocol.
func ExportForAccountant(result model.OptimizationResult, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("TAX OPTIMIZATION REVIEW\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", generatedAt.Format("2 January 2006")))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Opportunities found: %d\n", len(result.Opportunities)))
	b.WriteString(fmt.Sprintf("Total potential savings: $%.2f\n", result.TotalPotentialSavings))
	if result.Summary.YoYAnomalyCount > 0 {
		b.WriteString(fmt.Sprintf("Year-over-year anomalies: %d\n", result.Summary.YoYAnomalyCount))
	}
	b.WriteString("\n")

	for i, opp := range result.Opportunities {
		b.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, strings.ToUpper(string(opp.Priority)), opp.Title))
		b.WriteString(fmt.Sprintf("   Category: %s\n", opp.Category))
		b.WriteString(fmt.Sprintf("   Estimated savings: $%.2f (confidence: %s)\n", opp.EstimatedSavings, opp.Confidence))
		b.WriteString(fmt.Sprintf("   %s\n", opp.Description))
		if opp.RegulatoryReference != "" {
			b.WriteString(fmt.Sprintf("   Reference: %s\n", opp.RegulatoryReference))
		}
		for _, action := range opp.ActionItems {
			b.WriteString(fmt.Sprintf("   - %s\n", action))
		}
		b.WriteString("\n")
	}

	if len(result.Opportunities) == 0 {
		b.WriteString("No missed deductions detected. Records look complete.\n")
	}

	return b.String()
}
