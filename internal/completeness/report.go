package completeness

import (
	"fmt"
	"math"
	"time"

	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/tax"
)

// minutesPerItem is the assumed effort for each outstanding checklist item or
// missing document when estimating completion time.
const minutesPerItem = 5

// Input bundles the caller-supplied data for one report. Income and
// Deductions are keyed by catalog id ("salary", "D1", ...). Opportunities
// come from a prior optimization run; ImplementedOpportunityIDs marks which
// of them the user has acted on.
type Input struct {
	Profile                   model.UserTaxProfile
	Income                    map[string]model.IncomeData
	Deductions                map[string]model.DeductionData
	Opportunities             []model.OptimizationOpportunity
	ImplementedOpportunityIDs []string
	TaxWithheld               float64
	Offsets                   float64
}

// Generator builds completeness reports. It holds only immutable
// configuration and may serve concurrent callers.
type Generator struct {
	clock func() time.Time
	table tax.Table
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the wall clock used for report timestamps.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) { g.clock = clock }
}

// WithTaxTable overrides the bracket table used for the tax estimate.
func WithTaxTable(table tax.Table) Option {
	return func(g *Generator) { g.table = table }
}

// NewGenerator creates a generator with the default bracket table.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		table: tax.DefaultTable(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the full completeness report. It never fails: absent data
// degrades to missing or not-applicable statuses, and every section of the
// report is always populated.
func (g *Generator) Generate(in Input) model.CompletenessReport {
	incomeChecks := buildIncomeChecks(in)
	deductionChecks := buildDeductionChecks(in)
	missingDocs := detectMissingDocuments(in)

	report := model.CompletenessReport{
		GeneratedAt:      g.clock(),
		IncomeChecks:     incomeChecks,
		DeductionChecks:  deductionChecks,
		MissingDocuments: missingDocs,
		TaxEstimate:      g.estimateTax(in),
		Risk:             assessRisk(in, incomeChecks, deductionChecks, missingDocs),
		Score:            buildScore(in, incomeChecks, deductionChecks, missingDocs),
	}

	outstanding := len(missingDocs)
	for _, check := range incomeChecks {
		if check.Status != model.StatusComplete && check.Status != model.StatusNotApplicable {
			outstanding++
		}
	}
	for _, check := range deductionChecks {
		if check.Status != model.StatusComplete && check.Status != model.StatusNotApplicable {
			outstanding++
		}
	}
	report.EstimatedCompletionMins = outstanding * minutesPerItem

	for _, opp := range in.Opportunities {
		report.OptimizationTotalSavings += opp.EstimatedSavings
	}

	return report
}

// buildIncomeChecks derives one check per catalog income source. A source
// with an amount and documents is complete, with an amount but no documents
// partial, required but absent missing, otherwise not applicable.
func buildIncomeChecks(in Input) []model.IncomeCheck {
	checks := make([]model.IncomeCheck, 0, len(incomeCatalog))
	for _, source := range incomeCatalog {
		data := in.Income[source.ID]
		required := incomeRequired(source, in.Profile)

		var status model.ChecklistStatus
		switch {
		case data.Amount > 0 && data.DocumentCount > 0:
			status = model.StatusComplete
		case data.Amount > 0:
			status = model.StatusPartial
		case required:
			status = model.StatusMissing
		default:
			status = model.StatusNotApplicable
		}

		checks = append(checks, model.IncomeCheck{
			SourceID:      source.ID,
			Label:         source.Label,
			Status:        status,
			Amount:        data.Amount,
			DocumentCount: data.DocumentCount,
			Required:      required,
		})
	}
	return checks
}

// buildDeductionChecks derives one check per D1–D15 category. A claimed
// category with a complete workpaper and receipts is complete, claimed
// without either partial, required but unclaimed missing, otherwise not
// applicable.
func buildDeductionChecks(in Input) []model.DeductionCheck {
	checks := make([]model.DeductionCheck, 0, len(deductionCatalog))
	for _, category := range deductionCatalog {
		data := in.Deductions[category.ID]
		required := deductionRequired(category, in.Profile)

		var status model.ChecklistStatus
		switch {
		case data.ClaimedAmount > 0 && data.WorkpaperComplete && data.ReceiptCount > 0:
			status = model.StatusComplete
		case data.ClaimedAmount > 0:
			status = model.StatusPartial
		case required:
			status = model.StatusMissing
		default:
			status = model.StatusNotApplicable
		}

		checks = append(checks, model.DeductionCheck{
			CategoryID:      category.ID,
			Label:           fmt.Sprintf("%s - %s", category.ID, category.Label),
			Status:          status,
			ClaimedAmount:   data.ClaimedAmount,
			PotentialAmount: data.PotentialAmount,
			ReceiptCount:    data.ReceiptCount,
			Required:        required,
		})
	}
	return checks
}

// detectMissingDocuments applies the fixed pattern rules for documents that
// should exist given the profile and claims but do not.
func detectMissingDocuments(in Input) []model.MissingDocument {
	var docs []model.MissingDocument

	if dividends := in.Income["dividends"]; dividends.PriorYearAmount > 0 && dividends.Amount == 0 {
		docs = append(docs, model.MissingDocument{
			DocumentType:    "Dividend statements",
			Category:        "dividends",
			Priority:        model.PriorityHigh,
			DetectionReason: fmt.Sprintf("You declared $%.2f of dividends last year but none this year.", dividends.PriorYearAmount),
		})
	}

	if car := in.Deductions["D1"]; car.ClaimedAmount > 2000 && car.ReceiptCount < 2 {
		docs = append(docs, model.MissingDocument{
			DocumentType:    "Vehicle expense receipts",
			Category:        "D1",
			Priority:        model.PriorityHigh,
			DetectionReason: fmt.Sprintf("$%.2f of car expenses claimed with only %d receipts on file.", car.ClaimedAmount, car.ReceiptCount),
		})
	}

	if in.Profile.WorkArrangement == model.WorkRemote || in.Profile.WorkArrangement == model.WorkHybrid {
		if wfh := in.Deductions["D5"]; wfh.ReceiptCount < 3 {
			docs = append(docs, model.MissingDocument{
				DocumentType:    "Working from home records",
				Category:        "D5",
				Priority:        model.PriorityMedium,
				DetectionReason: fmt.Sprintf("You work %s but have only %d working-from-home receipts.", in.Profile.WorkArrangement, wfh.ReceiptCount),
			})
		}
	}

	if in.Profile.HasRentalProperty && in.Income["rental"].Amount == 0 {
		docs = append(docs, model.MissingDocument{
			DocumentType:    "Rental income statement",
			Category:        "rental",
			Priority:        model.PriorityHigh,
			DetectionReason: "A rental property is declared but no rental income has been entered.",
		})
	}

	if in.Profile.HasInvestmentType(model.InvestmentCrypto) {
		if gains := in.Income["capital_gains"]; gains.Amount == 0 && gains.DocumentCount == 0 {
			docs = append(docs, model.MissingDocument{
				DocumentType:    "Crypto transaction history",
				Category:        "capital_gains",
				Priority:        model.PriorityMedium,
				DetectionReason: "Crypto is declared as an investment type but no disposal records exist.",
			})
		}
	}

	return docs
}

// estimateTax applies the progressive calculation to total income less total
// claimed deductions, then nets withholding and offsets.
func (g *Generator) estimateTax(in Input) model.TaxEstimate {
	var income float64
	for _, data := range in.Income {
		income += data.Amount
	}
	var deductions float64
	for _, data := range in.Deductions {
		deductions += data.ClaimedAmount
	}

	net := income - deductions
	if net < 0 {
		net = 0
	}

	estimate := model.TaxEstimate{
		TaxableIncome:   income,
		TotalDeductions: deductions,
		NetIncome:       net,
		BaseTax:         g.table.BaseTax(net),
		MedicareLevy:    round2(net * g.table.LevyRate),
		Offsets:         in.Offsets,
		TaxWithheld:     in.TaxWithheld,
	}
	if !in.Profile.HasPrivateHealth && net > g.table.SurchargeThreshold {
		estimate.Surcharge = round2(net * g.table.SurchargeRate)
	}

	payable := estimate.BaseTax + estimate.MedicareLevy + estimate.Surcharge - in.Offsets
	if payable < 0 {
		payable = 0
	}
	estimate.EstimatedResult = round2(in.TaxWithheld - payable)

	return estimate
}

// buildScore blends the four completion ratios at 25% each and buckets the
// overall score into red (<50), amber (<80) or green.
func buildScore(in Input, incomeChecks []model.IncomeCheck, deductionChecks []model.DeductionCheck, missingDocs []model.MissingDocument) model.CompletenessScore {
	score := model.CompletenessScore{
		Income:       incomeCompletion(incomeChecks),
		Deductions:   deductionCompletion(deductionChecks),
		Documents:    receiptCoverage(deductionChecks, missingDocs),
		Optimization: optimizationUptake(in),
	}

	score.Overall = int(math.Round(0.25 * (score.Income + score.Deductions + score.Documents + score.Optimization)))
	switch {
	case score.Overall < 50:
		score.ColorStatus = model.StatusRed
	case score.Overall < 80:
		score.ColorStatus = model.StatusAmber
	default:
		score.ColorStatus = model.StatusGreen
	}
	return score
}

func incomeCompletion(checks []model.IncomeCheck) float64 {
	var applicable, complete int
	for _, check := range checks {
		if check.Status == model.StatusNotApplicable {
			continue
		}
		applicable++
		if check.Status == model.StatusComplete {
			complete++
		}
	}
	if applicable == 0 {
		return 100
	}
	return float64(complete) / float64(applicable) * 100
}

func deductionCompletion(checks []model.DeductionCheck) float64 {
	var applicable, complete int
	for _, check := range checks {
		if check.Status == model.StatusNotApplicable {
			continue
		}
		applicable++
		if check.Status == model.StatusComplete {
			complete++
		}
	}
	if applicable == 0 {
		return 100
	}
	return float64(complete) / float64(applicable) * 100
}

// receiptCoverage is the share of claimed categories backed by at least one
// receipt, with a flat penalty per missing document.
func receiptCoverage(checks []model.DeductionCheck, missingDocs []model.MissingDocument) float64 {
	var claimed, covered int
	for _, check := range checks {
		if check.ClaimedAmount <= 0 {
			continue
		}
		claimed++
		if check.ReceiptCount > 0 {
			covered++
		}
	}

	coverage := 100.0
	if claimed > 0 {
		coverage = float64(covered) / float64(claimed) * 100
	}

	coverage -= float64(len(missingDocs)) * 10
	if coverage < 0 {
		coverage = 0
	}
	return coverage
}

func optimizationUptake(in Input) float64 {
	if len(in.Opportunities) == 0 {
		return 100
	}
	implemented := make(map[string]bool, len(in.ImplementedOpportunityIDs))
	for _, id := range in.ImplementedOpportunityIDs {
		implemented[id] = true
	}
	var acted int
	for _, opp := range in.Opportunities {
		if implemented[opp.ID] {
			acted++
		}
	}
	return float64(acted) / float64(len(in.Opportunities)) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
