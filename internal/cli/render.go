package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tallyhq/tally/internal/docpattern"
	"github.com/tallyhq/tally/internal/model"
)

func priorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityCritical, model.PriorityHigh:
		return ErrorStyle
	case model.PriorityMedium:
		return WarningStyle
	default:
		return SubtleStyle
	}
}

func trafficLightStyle(t model.TrafficLight) lipgloss.Style {
	switch t {
	case model.StatusGreen:
		return SuccessStyle
	case model.StatusAmber:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// RenderOptimizations formats an engine run for the terminal.
func RenderOptimizations(result *model.OptimizationResult) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Tax Optimization Opportunities"))
	b.WriteString("\n\n")

	if len(result.Opportunities) == 0 {
		b.WriteString(FormatInfo("No optimization opportunities detected."))
		b.WriteString("\n")
		return b.String()
	}

	for i, opp := range result.Opportunities {
		badge := priorityStyle(opp.Priority).Render(strings.ToUpper(string(opp.Priority)))
		b.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, badge, BoldStyle.Render(opp.Title)))
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("   %s · %s confidence", opp.Category, opp.Confidence)))
		b.WriteString("\n")
		b.WriteString("   " + opp.Description + "\n")
		if opp.EstimatedSavings > 0 {
			b.WriteString("   " + SuccessStyle.Render(fmt.Sprintf("Estimated savings: $%.2f", opp.EstimatedSavings)))
			b.WriteString("\n")
		}
		for _, action := range opp.ActionItems {
			b.WriteString(SubtleStyle.Render("   • " + action))
			b.WriteString("\n")
		}
		if opp.RegulatoryReference != "" {
			b.WriteString(SubtleStyle.Render("   Ref: " + opp.RegulatoryReference))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d opportunities · total potential savings $%.2f",
		len(result.Opportunities), result.TotalPotentialSavings)
	if result.Summary.YoYAnomalyCount > 0 {
		summary += fmt.Sprintf(" · %d year-over-year anomalies", result.Summary.YoYAnomalyCount)
	}
	b.WriteString(RenderBox(ChartIcon+" Summary", summary))
	b.WriteString("\n")

	return b.String()
}

// RenderRankings formats the per-rule relevance ranking.
func RenderRankings(rankings []model.RuleRanking) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Rule Relevance Ranking"))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-10s %-38s %9s %10s", "RULE", "NAME", "RELEVANCE", "TRIGGERED")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, r := range rankings {
		mark := SubtleStyle.Render("-")
		if r.Triggered {
			mark = SuccessStyle.Render(SuccessIcon)
		}
		b.WriteString(fmt.Sprintf("%-10s %-38s %9.0f %10s\n",
			r.RuleID, truncate(r.RuleName, 38), r.RelevanceScore, mark))
	}

	return b.String()
}

// RenderCompleteness formats a completeness report for the terminal.
func RenderCompleteness(report *model.CompletenessReport) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Return Completeness"))
	b.WriteString("\n\n")

	light := trafficLightStyle(report.Score.ColorStatus)
	b.WriteString(RenderBox(ChartIcon+" Readiness",
		fmt.Sprintf("Overall: %s\nIncome %.0f%% · Deductions %.0f%% · Documents %.0f%% · Optimization %.0f%%",
			light.Render(fmt.Sprintf("%d%% (%s)", report.Score.Overall, report.Score.ColorStatus)),
			report.Score.Income, report.Score.Deductions,
			report.Score.Documents, report.Score.Optimization)))
	b.WriteString("\n\n")

	b.WriteString(SubtitleStyle.Render("Income sources"))
	b.WriteString("\n")
	for _, check := range report.IncomeChecks {
		b.WriteString(checklistLine(string(check.Status), check.Label, check.Amount))
	}

	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Deductions"))
	b.WriteString("\n")
	for _, check := range report.DeductionChecks {
		b.WriteString(checklistLine(string(check.Status), check.Label, check.ClaimedAmount))
	}

	if len(report.MissingDocuments) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarning(fmt.Sprintf("%d documents appear to be missing:", len(report.MissingDocuments))))
		b.WriteString("\n")
		for _, doc := range report.MissingDocuments {
			badge := priorityStyle(doc.Priority).Render(strings.ToUpper(string(doc.Priority)))
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", badge, doc.DocumentType, doc.DetectionReason))
		}
	}

	b.WriteString("\n")
	riskStyle := SuccessStyle
	switch report.Risk.Level {
	case model.RiskHigh:
		riskStyle = ErrorStyle
	case model.RiskMedium:
		riskStyle = WarningStyle
	}
	estimate := report.TaxEstimate
	resultLabel := "refund"
	resultAmount := estimate.EstimatedResult
	if resultAmount < 0 {
		resultLabel = "owing"
		resultAmount = -resultAmount
	}
	b.WriteString(RenderBox(MoneyIcon+" Estimate",
		fmt.Sprintf("Net income $%.2f · tax payable $%.2f · estimated %s $%.2f\nAudit risk: %s · est. time to finish: %d min",
			estimate.NetIncome, estimate.BaseTax+estimate.MedicareLevy+estimate.Surcharge,
			resultLabel, resultAmount,
			riskStyle.Render(string(report.Risk.Level)), report.EstimatedCompletionMins)))
	b.WriteString("\n")

	return b.String()
}

func checklistLine(status, label string, amount float64) string {
	var mark string
	switch model.ChecklistStatus(status) {
	case model.StatusComplete:
		mark = SuccessStyle.Render(SuccessIcon)
	case model.StatusPartial:
		mark = WarningStyle.Render("~")
	case model.StatusMissing:
		mark = ErrorStyle.Render(ErrorIcon)
	default:
		mark = SubtleStyle.Render("-")
	}
	line := fmt.Sprintf("  %s %s", mark, label)
	if amount > 0 {
		line += SubtleStyle.Render(fmt.Sprintf(" ($%.2f)", amount))
	}
	return line + "\n"
}

// RenderPatterns formats an upload pattern analysis for the terminal.
func RenderPatterns(result *docpattern.PatternAnalysisResult) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Document Upload Patterns"))
	b.WriteString("\n\n")

	if len(result.Patterns) == 0 {
		b.WriteString(FormatInfo("No upload history to analyze yet."))
		b.WriteString("\n")
		return b.String()
	}

	for _, p := range result.Patterns {
		b.WriteString(fmt.Sprintf("%s %s (%s)\n",
			CalendarIcon, BoldStyle.Render(p.DocumentType), p.Source))
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %s · %s · confidence %s (%.0f)",
			p.Frequency, p.Stability, p.ConfidenceLevel, p.Confidence)))
		b.WriteString("\n")
		if p.Frequency.Periodic() {
			b.WriteString(fmt.Sprintf("  Next expected: %s\n", p.NextExpectedDate.Format("2 Jan 2006")))
		}
		b.WriteString("\n")
	}

	for _, m := range result.Missing {
		b.WriteString(FormatWarning(fmt.Sprintf("%s from %s is %d days overdue (expected %s)",
			m.Pattern.DocumentType, m.Pattern.Source, m.DaysOverdue,
			m.ExpectedDate.Format("2 Jan 2006"))))
		b.WriteString("\n")
	}

	for _, e := range result.Expected {
		b.WriteString(FormatInfo(fmt.Sprintf("%s from %s due in %d days (%s)",
			e.Pattern.DocumentType, e.Pattern.Source, e.DaysUntilDue,
			e.ExpectedDate.Format("2 Jan 2006"))))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
