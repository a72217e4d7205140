// Package engine orchestrates the detection rule set into a ranked
// optimization report.
package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/tallyhq/tally/internal/heuristic"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/rules"
	"github.com/tallyhq/tally/internal/tax"
	"github.com/tallyhq/tally/internal/yoy"
)

// Relevance ranking weights. A rule's own relevance function contributes up
// to 40 points (20 when it has none), an occupation match 25, priority up to
// 20, and available prior-year data 5, capped at 100.
const (
	relevanceFnWeight    = 40.0
	relevanceDefault     = 20.0
	occupationMatchBonus = 25.0
	priorYearBonus       = 5.0
	relevanceCap         = 100.0
)

var priorityBonus = map[model.Priority]float64{
	model.PriorityCritical: 20,
	model.PriorityHigh:     15,
	model.PriorityMedium:   10,
	model.PriorityLow:      5,
}

// IDGenerator mints an opportunity id for a triggered rule. The production
// default embeds wall-clock millis; tests inject a deterministic generator.
type IDGenerator func(ruleID string) string

// Clock supplies the current time to time-sensitive rules.
type Clock func() time.Time

// Engine runs every detection rule over a profile and ledger. Engines hold
// only immutable configuration, so one instance may serve concurrent runs.
type Engine struct {
	clock Clock
	idgen IDGenerator
	rules []rules.Rule
	table tax.Table
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock.
func WithClock(clock Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithIDGenerator overrides the opportunity id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(e *Engine) { e.idgen = gen }
}

// WithRules overrides the detection rule set.
func WithRules(ruleSet []rules.Rule) Option {
	return func(e *Engine) { e.rules = ruleSet }
}

// WithTaxTable overrides the bracket table.
func WithTaxTable(table tax.Table) Option {
	return func(e *Engine) { e.table = table }
}

// New creates an engine with the full rule set, the default bracket table,
// and the wall clock.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules: rules.All(),
		table: tax.DefaultTable(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.idgen == nil {
		clock := e.clock
		e.idgen = func(ruleID string) string {
			return fmt.Sprintf("%s-%d", ruleID, clock().UnixMilli())
		}
	}
	return e
}

// Run evaluates every rule and returns the aggregated, ranked result. A rule
// panicking is logged and treated as a non-trigger; the run always returns a
// complete result for well-formed input.
func (e *Engine) Run(profile model.UserProfile, history model.ExpenseHistory, allHistory []model.ExpenseHistory) model.OptimizationResult {
	comparisons := yoy.BuildComparisons(allHistory)

	ruleCtx := model.RuleContext{
		YoYComparisons:       comparisons,
		IndustryAverages:     heuristic.IndustryBenchmarks,
		OccupationBenchmarks: occupationBenchmarks,
	}

	in := rules.Inputs{
		Now:        e.clock(),
		Profile:    profile,
		Current:    history,
		AllHistory: allHistory,
		Context:    ruleCtx,
		Tax:        e.table,
	}

	rankings := e.rankRules(profile, history)
	rankIndex := make(map[string]int, len(rankings))
	for i, r := range rankings {
		rankIndex[r.RuleID] = i
	}

	var opportunities []model.OptimizationOpportunity
	var patterns []model.PatternMatch

	for _, rule := range e.rules {
		opp := evaluateRule(rule, in)
		if opp == nil {
			continue
		}

		opp.ID = e.idgen(rule.ID)
		if i, ok := rankIndex[rule.ID]; ok {
			relevance := rankings[i].RelevanceScore
			opp.RelevanceScore = &relevance
			rankings[i].Triggered = true
			rankings[i].EstimatedImpact = opp.EstimatedSavings
		}

		opportunities = append(opportunities, *opp)
		patterns = append(patterns, model.PatternMatch{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Category: rule.Category,
			Priority: rule.Priority,
		})
	}

	sortOpportunities(opportunities)

	return model.OptimizationResult{
		Opportunities:         opportunities,
		DetectedPatterns:      patterns,
		RuleRankings:          rankings,
		YoYComparisons:        comparisons,
		Summary:               summarize(opportunities),
		TotalPotentialSavings: totalSavings(opportunities),
	}
}

// evaluateRule runs one rule's check, converting a panic into a non-trigger
// so a single bad rule cannot abort the batch.
func evaluateRule(rule rules.Rule, in rules.Inputs) (opp *model.OptimizationOpportunity) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("detection rule failed, skipping",
				"rule_id", rule.ID,
				"panic", r)
			opp = nil
		}
	}()
	return rule.Check(in)
}

// rankRules scores every rule's relevance to this taxpayer, triggered or not,
// sorted by relevance descending.
func (e *Engine) rankRules(profile model.UserProfile, history model.ExpenseHistory) []model.RuleRanking {
	hints := occupationHints(profile.Occupation)

	rankings := make([]model.RuleRanking, 0, len(e.rules))
	for _, rule := range e.rules {
		score := relevanceDefault
		if rule.Relevance != nil {
			score = rule.Relevance(profile, history) * relevanceFnWeight
		}
		if hints[rule.Category] {
			score += occupationMatchBonus
		}
		score += priorityBonus[rule.Priority]
		if profile.PreviousYearDeductions != nil {
			score += priorYearBonus
		}
		if score > relevanceCap {
			score = relevanceCap
		}

		rankings = append(rankings, model.RuleRanking{
			RuleID:         rule.ID,
			RuleName:       rule.Name,
			Category:       rule.Category,
			Priority:       rule.Priority,
			RelevanceScore: score,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].RelevanceScore > rankings[j].RelevanceScore
	})
	return rankings
}

// sortOpportunities orders by priority rank ascending, then relevance
// descending within a priority.
func sortOpportunities(opportunities []model.OptimizationOpportunity) {
	sort.SliceStable(opportunities, func(i, j int) bool {
		ri, rj := opportunities[i].Priority.Rank(), opportunities[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return relevanceOf(opportunities[i]) > relevanceOf(opportunities[j])
	})
}

func relevanceOf(opp model.OptimizationOpportunity) float64 {
	if opp.RelevanceScore == nil {
		return 0
	}
	return *opp.RelevanceScore
}

func totalSavings(opportunities []model.OptimizationOpportunity) float64 {
	var total float64
	for _, opp := range opportunities {
		total += opp.EstimatedSavings
	}
	return total
}

func summarize(opportunities []model.OptimizationOpportunity) model.OptimizationSummary {
	summary := model.OptimizationSummary{
		ByPriority: make(map[model.Priority]int),
		ByCategory: make(map[string]int),
		ByType:     make(map[model.OpportunityType]int),
	}

	var confidenceSum float64
	var confidenceCount int
	for _, opp := range opportunities {
		summary.ByPriority[opp.Priority]++
		summary.ByCategory[opp.Category]++
		summary.ByType[opp.Type]++
		if opp.Type == model.TypeYoYAnomaly {
			summary.YoYAnomalyCount++
		}
		if opp.HeuristicScore != nil {
			confidenceSum += opp.HeuristicScore.FinalScore
			confidenceCount++
		}
	}
	if confidenceCount > 0 {
		summary.AverageConfidence = confidenceSum / float64(confidenceCount)
	}
	return summary
}
