// Package docpattern infers upload periodicity from historical document
// upload timestamps and predicts when the next document is due.
package docpattern

import "time"

// UploadRecord is one timestamped document upload. Uploads are grouped by
// (DocumentType, Source) before analysis.
type UploadRecord struct {
	UploadedAt   time.Time `json:"uploaded_at"`
	ID           string    `json:"id"`
	DocumentType string    `json:"document_type"`
	Source       string    `json:"source"`
}

// Frequency is an inferred upload cadence bucket.
type Frequency string

// Frequency constants.
const (
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencyHalfYearly Frequency = "half_yearly"
	FrequencyYearly     Frequency = "yearly"
	FrequencyIrregular  Frequency = "irregular"
	FrequencyUnknown    Frequency = "unknown"
)

// Periodic reports whether the frequency is a real periodic bucket rather
// than irregular or unknown.
func (f Frequency) Periodic() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly:
		return true
	}
	return false
}

// Stability classifies how settled a pattern's cadence is.
type Stability string

// Stability constants.
const (
	StabilityStable   Stability = "stable"
	StabilityChanging Stability = "changing"
	StabilityVolatile Stability = "volatile"
)

// ConfidenceLevel buckets a 0–100 pattern confidence score.
type ConfidenceLevel string

// Confidence level constants.
const (
	ConfidenceHigh    ConfidenceLevel = "high"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceVeryLow ConfidenceLevel = "very_low"
)

// IntervalStats summarizes the day gaps between consecutive uploads.
type IntervalStats struct {
	MeanDays               float64 `json:"mean_days"`
	StdDevDays             float64 `json:"std_dev_days"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
	ConsistencyScore       float64 `json:"consistency_score"`
}

// PatternChange records a historical shift in upload cadence, detected by
// comparing the first and second halves of the interval sequence.
type PatternChange struct {
	From               Frequency `json:"from"`
	To                 Frequency `json:"to"`
	FirstHalfMeanDays  float64   `json:"first_half_mean_days"`
	SecondHalfMeanDays float64   `json:"second_half_mean_days"`
}

// DocumentPattern is the inferred periodicity for one (documentType, source)
// upload stream.
type DocumentPattern struct {
	LastUpload       time.Time       `json:"last_upload"`
	NextExpectedDate time.Time       `json:"next_expected_date"`
	DocumentType     string          `json:"document_type"`
	Source           string          `json:"source"`
	Frequency        Frequency       `json:"frequency"`
	Stability        Stability       `json:"stability"`
	ConfidenceLevel  ConfidenceLevel `json:"confidence_level"`
	ActiveMonths     []time.Month    `json:"active_months,omitempty"`
	Changes          []PatternChange `json:"changes,omitempty"`
	Intervals        IntervalStats   `json:"intervals"`
	Confidence       float64         `json:"confidence"`
	DayOfMonth       int             `json:"day_of_month"`
	GracePeriodDays  int             `json:"grace_period_days"`
	UploadCount      int             `json:"upload_count"`
}

// MissingDocument is a pattern whose expected upload is overdue.
type MissingDocument struct {
	ExpectedDate time.Time       `json:"expected_date"`
	Pattern      DocumentPattern `json:"pattern"`
	DaysOverdue  int             `json:"days_overdue"`
	IsMissing    bool            `json:"is_missing"`
}

// ExpectedDocument is a pattern whose next upload falls inside a look-ahead
// window.
type ExpectedDocument struct {
	ExpectedDate time.Time       `json:"expected_date"`
	Pattern      DocumentPattern `json:"pattern"`
	DaysUntilDue int             `json:"days_until_due"`
}

// PatternAnalysisResult bundles everything derived from one upload history.
type PatternAnalysisResult struct {
	Patterns []DocumentPattern  `json:"patterns"`
	Missing  []MissingDocument  `json:"missing"`
	Expected []ExpectedDocument `json:"expected"`
}
