// Package rules holds the detection rule set for the optimization engine.
//
// Each rule is independent and order-insensitive: it inspects the profile and
// expense history for one absence or anomaly and emits at most one
// opportunity. Rules never gate on their relevance score; every rule is
// always evaluated and relevance only affects ranking.
package rules

import (
	"time"

	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/tax"
)

// Inputs bundles everything a rule may inspect during evaluation. All fields
// are read-only to rules; Context is built once per engine run and shared.
type Inputs struct {
	Now        time.Time
	Profile    model.UserProfile
	Current    model.ExpenseHistory
	AllHistory []model.ExpenseHistory
	Context    model.RuleContext
	Tax        tax.Table
}

// CheckFunc inspects the inputs and returns an opportunity, or nil when the
// rule does not apply. The engine assigns the opportunity ID.
type CheckFunc func(in Inputs) *model.OptimizationOpportunity

// RelevanceFunc scores how relevant a rule is to this taxpayer, in [0, 1].
// Used only for ranking, never for suppressing evaluation.
type RelevanceFunc func(profile model.UserProfile, history model.ExpenseHistory) float64

// Rule is one detection rule. Rules are plain values in a flat registry so
// they can be added or removed without touching the orchestrator.
type Rule struct {
	Check     CheckFunc
	Relevance RelevanceFunc
	ID        string
	Name      string
	Category  string
	Priority  model.Priority
}

// All returns the full detection rule set.
func All() []Rule {
	return []Rule{
		homeOfficeRule(),
		vehicleLogbookGapRule(),
		vehicleMissingRule(),
		selfEducationRule(),
		uniformRule(),
		workTravelRule(),
		toolsRule(),
		subscriptionsRule(),
		incomeProtectionRule(),
		cryptoRecordsRule(),
		capitalWorksRule(),
		shareDeductionsRule(),
		phoneInternetRule(),
		donationsRule(),
		taxAgentFeeRule(),
		superContributionRule(),
		industryBenchmarkRule(),
		quarterlyGapRule(),
		yoyAnomalyRule(),
		timingRule(),
	}
}
