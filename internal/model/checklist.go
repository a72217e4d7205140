package model

import "time"

// UserTaxProfile is the declared profile consumed by the completeness engine.
// It is a parallel, independent model from UserProfile; the two engines do not
// share inputs.
type UserTaxProfile struct {
	Occupation        string           `json:"occupation"`
	State             string           `json:"state,omitempty"`
	EmploymentType    EmploymentType   `json:"employment_type"`
	WorkArrangement   WorkArrangement  `json:"work_arrangement"`
	InvestmentTypes   []InvestmentType `json:"investment_types,omitempty"`
	Age               int              `json:"age"`
	HasInvestments    bool             `json:"has_investments"`
	HasRentalProperty bool             `json:"has_rental_property"`
	HasVehicle        bool             `json:"has_vehicle"`
	IsStudying        bool             `json:"is_studying"`
	HasPrivateHealth  bool             `json:"has_private_health"`
	LodgedLastYear    bool             `json:"lodged_last_year"`
}

// HasInvestmentType reports whether the profile declares the given investment class.
func (p *UserTaxProfile) HasInvestmentType(t InvestmentType) bool {
	for _, it := range p.InvestmentTypes {
		if it == t {
			return true
		}
	}
	return false
}

// ChecklistStatus is the completion state of a single checklist item.
type ChecklistStatus string

// Checklist status constants.
const (
	StatusComplete      ChecklistStatus = "complete"
	StatusMissing       ChecklistStatus = "missing"
	StatusPartial       ChecklistStatus = "partial"
	StatusNotApplicable ChecklistStatus = "not_applicable"
)

// IncomeData is the caller-supplied summary for one income source.
type IncomeData struct {
	Amount          float64 `json:"amount"`
	PriorYearAmount float64 `json:"prior_year_amount,omitempty"`
	DocumentCount   int     `json:"document_count"`
}

// DeductionData is the caller-supplied summary for one deduction category.
type DeductionData struct {
	ClaimedAmount     float64 `json:"claimed_amount"`
	PotentialAmount   float64 `json:"potential_amount,omitempty"`
	ReceiptCount      int     `json:"receipt_count"`
	WorkpaperComplete bool    `json:"workpaper_complete"`
}

// IncomeCheck is one income-source checklist entry in a completeness report.
type IncomeCheck struct {
	SourceID      string          `json:"source_id"`
	Label         string          `json:"label"`
	Status        ChecklistStatus `json:"status"`
	Amount        float64         `json:"amount"`
	DocumentCount int             `json:"document_count"`
	Required      bool            `json:"required"`
}

// DeductionCheck is one deduction-category checklist entry (D1–D15).
type DeductionCheck struct {
	CategoryID      string          `json:"category_id"`
	Label           string          `json:"label"`
	Status          ChecklistStatus `json:"status"`
	ClaimedAmount   float64         `json:"claimed_amount"`
	PotentialAmount float64         `json:"potential_amount"`
	ReceiptCount    int             `json:"receipt_count"`
	Required        bool            `json:"required"`
}

// MissingDocument flags a document the report believes should exist but does not.
type MissingDocument struct {
	DocumentType    string   `json:"document_type"`
	Category        string   `json:"category"`
	DetectionReason string   `json:"detection_reason"`
	Priority        Priority `json:"priority"`
}

// TrafficLight buckets an overall completeness score for display.
type TrafficLight string

// Traffic light constants.
const (
	StatusRed   TrafficLight = "red"
	StatusAmber TrafficLight = "amber"
	StatusGreen TrafficLight = "green"
)

// CompletenessScore is the weighted readiness score. Overall blends the four
// components at 25% each and is bucketed red (<50), amber (<80), green.
type CompletenessScore struct {
	Income       float64      `json:"income"`
	Deductions   float64      `json:"deductions"`
	Documents    float64      `json:"documents"`
	Optimization float64      `json:"optimization"`
	Overall      int          `json:"overall"`
	ColorStatus  TrafficLight `json:"color_status"`
}

// RiskImpact tags whether a risk factor raises, lowers, or leaves the score.
type RiskImpact string

// Risk impact constants.
const (
	ImpactPositive RiskImpact = "positive"
	ImpactNegative RiskImpact = "negative"
	ImpactNeutral  RiskImpact = "neutral"
)

// RiskLevel is the discrete audit-risk tier.
type RiskLevel string

// Risk level constants.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskFactor is one named contribution to the audit-risk score.
type RiskFactor struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Impact      RiskImpact `json:"impact"`
	Delta       float64    `json:"delta"`
}

// RiskAssessment accumulates factors from a base score of 50. Scores below 40
// are low risk, below 70 medium, otherwise high.
type RiskAssessment struct {
	Factors []RiskFactor `json:"factors"`
	Score   float64      `json:"score"`
	Level   RiskLevel    `json:"level"`
}

// TaxEstimate is the simplified payable calculation embedded in a report.
type TaxEstimate struct {
	TaxableIncome   float64 `json:"taxable_income"`
	TotalDeductions float64 `json:"total_deductions"`
	NetIncome       float64 `json:"net_income"`
	BaseTax         float64 `json:"base_tax"`
	MedicareLevy    float64 `json:"medicare_levy"`
	Surcharge       float64 `json:"surcharge"`
	Offsets         float64 `json:"offsets"`
	TaxWithheld     float64 `json:"tax_withheld"`
	EstimatedResult float64 `json:"estimated_result"` // positive = refund, negative = owing
}

// CompletenessReport is the full output of the completeness/risk engine.
type CompletenessReport struct {
	GeneratedAt              time.Time         `json:"generated_at"`
	IncomeChecks             []IncomeCheck     `json:"income_checks"`
	DeductionChecks          []DeductionCheck  `json:"deduction_checks"`
	MissingDocuments         []MissingDocument `json:"missing_documents"`
	Score                    CompletenessScore `json:"score"`
	TaxEstimate              TaxEstimate       `json:"tax_estimate"`
	Risk                     RiskAssessment    `json:"risk"`
	EstimatedCompletionMins  int               `json:"estimated_completion_minutes"`
	OptimizationTotalSavings float64           `json:"optimization_total_savings"`
}
