package model

// OpportunityType classifies what kind of finding a rule emitted.
type OpportunityType string

// Opportunity type constants.
const (
	TypeMissingDeduction OpportunityType = "missing_deduction"
	TypeBetterMethod     OpportunityType = "better_method"
	TypeTiming           OpportunityType = "timing"
	TypeCategorization   OpportunityType = "categorization"
	TypePatternGap       OpportunityType = "pattern_gap"
	TypeYoYAnomaly       OpportunityType = "yoy_anomaly"
	TypeIndustrySpecific OpportunityType = "industry_specific"
)

// Priority ranks how urgently an opportunity should be reviewed.
type Priority string

// Priority constants, from most to least urgent.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the sort index of a priority; lower sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// ConfidenceTier buckets a continuous confidence score for display.
type ConfidenceTier string

// Confidence tier constants.
const (
	ConfidenceHigh   ConfidenceTier = "high"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceLow    ConfidenceTier = "low"
)

// HeuristicScore is the composite confidence breakdown attached to a detection.
// FinalScore is the sum of the components clamped to [0, 1].
type HeuristicScore struct {
	RuleID                string  `json:"rule_id"`
	BaseScore             float64 `json:"base_score"`
	EvidenceBonus         float64 `json:"evidence_bonus"`
	PatternStrength       float64 `json:"pattern_strength"`
	HistoricalConsistency float64 `json:"historical_consistency"`
	IndustryRelevance     float64 `json:"industry_relevance"`
	FinalScore            float64 `json:"final_score"`
}

// Tier derives the discrete confidence tier from the final score.
func (s HeuristicScore) Tier() ConfidenceTier {
	switch {
	case s.FinalScore >= 0.75:
		return ConfidenceHigh
	case s.FinalScore >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// YearOverYearComparison holds one tax year's per-category deduction totals.
type YearOverYearComparison struct {
	CategoryTotals map[string]float64 `json:"category_totals"`
	TaxYear        int                `json:"tax_year"`
	ExpenseCount   int                `json:"expense_count"`
	TotalClaimed   float64            `json:"total_claimed"`
}

// YoYAnomaly flags a category whose spend collapsed relative to the prior year.
type YoYAnomaly struct {
	Category      string   `json:"category"`
	Severity      Priority `json:"severity"`
	PreviousYear  int      `json:"previous_year"`
	PreviousTotal float64  `json:"previous_total"`
	CurrentTotal  float64  `json:"current_total"`
	Change        float64  `json:"change"`
}

// OptimizationOpportunity is one emitted finding from the rule engine. It is a
// pure output value: never mutated after creation and never persisted by the
// engines themselves.
type OptimizationOpportunity struct {
	ID                  string          `json:"id"`
	Type                OpportunityType `json:"type"`
	Category            string          `json:"category"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	TaxImpact           string          `json:"tax_impact"`
	RegulatoryReference string          `json:"regulatory_reference,omitempty"`
	ActionItems         []string        `json:"action_items"`
	YoYComparison       []YoYAnomaly    `json:"yoy_comparison,omitempty"`
	HeuristicScore      *HeuristicScore `json:"heuristic_score,omitempty"`
	RelevanceScore      *float64        `json:"relevance_score,omitempty"`
	EstimatedSavings    float64         `json:"estimated_savings"`
	Confidence          ConfidenceTier  `json:"confidence"`
	Priority            Priority        `json:"priority"`
}

// RuleContext carries shared precomputed data handed read-only to every rule.
type RuleContext struct {
	IndustryAverages     map[string]float64       `json:"industry_averages,omitempty"`
	OccupationBenchmarks map[string][]string      `json:"occupation_benchmarks,omitempty"`
	YoYComparisons       []YearOverYearComparison `json:"yoy_comparisons,omitempty"`
}

// PatternMatch records, informationally, that a rule triggered during a run.
type PatternMatch struct {
	RuleID   string   `json:"rule_id"`
	RuleName string   `json:"rule_name"`
	Category string   `json:"category"`
	Priority Priority `json:"priority"`
}

// RuleRanking reports a rule's relevance for this profile, whether or not it
// triggered. Every rule appears in the ranking.
type RuleRanking struct {
	RuleID          string   `json:"rule_id"`
	RuleName        string   `json:"rule_name"`
	Category        string   `json:"category"`
	Priority        Priority `json:"priority"`
	RelevanceScore  float64  `json:"relevance_score"`
	EstimatedImpact float64  `json:"estimated_impact"`
	Triggered       bool     `json:"triggered"`
}

// OptimizationSummary aggregates counts over a run's opportunities.
type OptimizationSummary struct {
	ByPriority        map[Priority]int        `json:"by_priority"`
	ByCategory        map[string]int          `json:"by_category"`
	ByType            map[OpportunityType]int `json:"by_type"`
	AverageConfidence float64                 `json:"average_confidence"`
	YoYAnomalyCount   int                     `json:"yoy_anomaly_count"`
}

// OptimizationResult is the full output of one engine run. Opportunities are
// sorted by priority rank ascending, then relevance score descending.
type OptimizationResult struct {
	Opportunities         []OptimizationOpportunity `json:"opportunities"`
	DetectedPatterns      []PatternMatch            `json:"detected_patterns"`
	RuleRankings          []RuleRanking             `json:"rule_rankings"`
	YoYComparisons        []YearOverYearComparison  `json:"yoy_comparisons"`
	Summary               OptimizationSummary       `json:"summary"`
	TotalPotentialSavings float64                   `json:"total_potential_savings"`
}
