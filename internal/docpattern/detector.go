package docpattern

import (
	"math"
	"sort"
	"strings"
	"time"
)

// frequencyBands are the fixed mean-interval ranges, in days, that map to a
// periodic frequency, each with the minimum upload count needed before the
// classification is accepted.
var frequencyBands = []struct {
	Frequency  Frequency
	MinDays    float64
	MaxDays    float64
	MinUploads int
}{
	{FrequencyMonthly, 25, 40, 3},
	{FrequencyQuarterly, 80, 100, 3},
	{FrequencyHalfYearly, 170, 200, 2},
	{FrequencyYearly, 350, 380, 2},
}

// gracePeriods is the fixed per-frequency grace, in days, before an expected
// document is considered missing.
var gracePeriods = map[Frequency]int{
	FrequencyMonthly:    5,
	FrequencyQuarterly:  10,
	FrequencyHalfYearly: 14,
	FrequencyYearly:     21,
	FrequencyIrregular:  14,
	FrequencyUnknown:    7,
}

// nominalPeriodDays is the fallback period length used when no interval data
// is available to advance by.
var nominalPeriodDays = map[Frequency]int{
	FrequencyMonthly:    30,
	FrequencyQuarterly:  91,
	FrequencyHalfYearly: 182,
	FrequencyYearly:     365,
	FrequencyIrregular:  30,
	FrequencyUnknown:    30,
}

// minUploadsFor is the band minimum used in the confidence formula.
var minUploadsFor = map[Frequency]int{
	FrequencyMonthly:    3,
	FrequencyQuarterly:  3,
	FrequencyHalfYearly: 2,
	FrequencyYearly:     2,
	FrequencyIrregular:  3,
	FrequencyUnknown:    3,
}

// Irregularity threshold on the coefficient of variation.
const irregularCV = 0.5

// A day-of-month must account for at least half the uploads before the next
// expected date snaps to it.
const dayOfMonthSnapShare = 0.5

// Detector infers upload patterns. The clock is injectable so prediction and
// overdue detection are reproducible in tests.
type Detector struct {
	clock func() time.Time
}

// Option configures a Detector.
type Option func(*Detector)

// WithClock overrides the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(d *Detector) { d.clock = clock }
}

// NewDetector creates a detector using the wall clock.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{clock: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectPattern infers the upload pattern for one (documentType, source)
// stream. Returns nil when no uploads are supplied.
func (d *Detector) DetectPattern(documentType, source string, uploads []UploadRecord) *DocumentPattern {
	if len(uploads) == 0 {
		return nil
	}

	sorted := make([]UploadRecord, len(uploads))
	copy(sorted, uploads)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UploadedAt.Before(sorted[j].UploadedAt)
	})

	intervals := intervalsOf(sorted)
	stats := statsOf(intervals)
	frequency := classify(documentType, len(sorted), stats)
	changes := detectChanges(intervals)

	pattern := &DocumentPattern{
		DocumentType:    documentType,
		Source:          source,
		Frequency:       frequency,
		Intervals:       stats,
		Changes:         changes,
		Stability:       stabilityOf(changes, intervals, stats),
		UploadCount:     len(sorted),
		LastUpload:      sorted[len(sorted)-1].UploadedAt,
		GracePeriodDays: gracePeriods[frequency],
	}

	day, share := dominantDayOfMonth(sorted)
	pattern.DayOfMonth = day
	if frequency != FrequencyMonthly {
		pattern.ActiveMonths = observedMonths(sorted)
	}

	pattern.Confidence = confidenceScore(len(sorted), frequency, stats)
	pattern.ConfidenceLevel = confidenceLevelOf(pattern.Confidence)
	pattern.NextExpectedDate = d.nextExpected(pattern, day, share)

	return pattern
}

// DetectMissing returns the patterns whose expected upload is overdue as of
// the given date: the date is past the expected date plus the grace period
// and no newer upload exists.
func (d *Detector) DetectMissing(patterns []DocumentPattern, asOf time.Time) []MissingDocument {
	var missing []MissingDocument
	for _, pattern := range patterns {
		if pattern.NextExpectedDate.IsZero() {
			continue
		}
		deadline := pattern.NextExpectedDate.AddDate(0, 0, pattern.GracePeriodDays)
		if !asOf.After(deadline) {
			continue
		}
		missing = append(missing, MissingDocument{
			Pattern:      pattern,
			ExpectedDate: pattern.NextExpectedDate,
			DaysOverdue:  int(asOf.Sub(pattern.NextExpectedDate).Hours() / 24),
			IsMissing:    true,
		})
	}
	sort.Slice(missing, func(i, j int) bool {
		return missing[i].DaysOverdue > missing[j].DaysOverdue
	})
	return missing
}

// ExpectedWithin returns the patterns whose next expected date falls inside
// the look-ahead window, sorted soonest first.
func (d *Detector) ExpectedWithin(patterns []DocumentPattern, asOf time.Time, lookAheadDays int) []ExpectedDocument {
	horizon := asOf.AddDate(0, 0, lookAheadDays)
	var expected []ExpectedDocument
	for _, pattern := range patterns {
		next := pattern.NextExpectedDate
		if next.IsZero() || next.Before(asOf) || next.After(horizon) {
			continue
		}
		expected = append(expected, ExpectedDocument{
			Pattern:      pattern,
			ExpectedDate: next,
			DaysUntilDue: int(next.Sub(asOf).Hours() / 24),
		})
	}
	sort.Slice(expected, func(i, j int) bool {
		return expected[i].ExpectedDate.Before(expected[j].ExpectedDate)
	})
	return expected
}

// Analyze groups raw uploads by (documentType, source), detects a pattern for
// each stream, and derives missing and upcoming documents.
func (d *Detector) Analyze(uploads []UploadRecord, lookAheadDays int) PatternAnalysisResult {
	type streamKey struct{ docType, source string }
	streams := make(map[streamKey][]UploadRecord)
	var order []streamKey
	for _, upload := range uploads {
		key := streamKey{upload.DocumentType, upload.Source}
		if _, seen := streams[key]; !seen {
			order = append(order, key)
		}
		streams[key] = append(streams[key], upload)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].docType != order[j].docType {
			return order[i].docType < order[j].docType
		}
		return order[i].source < order[j].source
	})

	var result PatternAnalysisResult
	for _, key := range order {
		if pattern := d.DetectPattern(key.docType, key.source, streams[key]); pattern != nil {
			result.Patterns = append(result.Patterns, *pattern)
		}
	}

	now := d.clock()
	result.Missing = d.DetectMissing(result.Patterns, now)
	result.Expected = d.ExpectedWithin(result.Patterns, now, lookAheadDays)
	return result
}

func intervalsOf(sorted []UploadRecord) []float64 {
	if len(sorted) < 2 {
		return nil
	}
	intervals := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		intervals = append(intervals, sorted[i].UploadedAt.Sub(sorted[i-1].UploadedAt).Hours()/24)
	}
	return intervals
}

func statsOf(intervals []float64) IntervalStats {
	if len(intervals) == 0 {
		return IntervalStats{}
	}

	var sum float64
	for _, v := range intervals {
		sum += v
	}
	mean := sum / float64(len(intervals))

	var sqDiff float64
	for _, v := range intervals {
		sqDiff += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(sqDiff / float64(len(intervals)))

	var cv float64
	if mean > 0 {
		cv = stddev / mean
	}

	consistency := 1 - cv
	if consistency < 0 {
		consistency = 0
	}
	if consistency > 1 {
		consistency = 1
	}

	return IntervalStats{
		MeanDays:               mean,
		StdDevDays:             stddev,
		CoefficientOfVariation: cv,
		ConsistencyScore:       consistency,
	}
}

// classify maps the mean interval to a frequency band, falling back to
// irregularity and then to document-type hints.
func classify(documentType string, uploadCount int, stats IntervalStats) Frequency {
	if uploadCount >= 2 {
		for _, band := range frequencyBands {
			if stats.MeanDays >= band.MinDays && stats.MeanDays <= band.MaxDays && uploadCount >= band.MinUploads {
				return band.Frequency
			}
		}
	}

	if stats.CoefficientOfVariation > irregularCV && uploadCount >= 3 {
		return FrequencyIrregular
	}

	docType := strings.ToLower(documentType)
	switch {
	case strings.Contains(docType, "bank statement") && uploadCount >= 3:
		return FrequencyMonthly
	case strings.Contains(docType, "payg") && uploadCount >= 1:
		return FrequencyYearly
	}

	return FrequencyUnknown
}

// detectChanges compares the mean interval of the first and second halves of
// the interval sequence. A relative shift over 30% that crosses a frequency
// band boundary is recorded.
func detectChanges(intervals []float64) []PatternChange {
	if len(intervals) < 4 {
		return nil
	}

	half := len(intervals) / 2
	firstMean := meanOf(intervals[:half])
	secondMean := meanOf(intervals[half:])
	if firstMean <= 0 {
		return nil
	}

	relative := math.Abs(secondMean-firstMean) / firstMean
	if relative <= 0.3 {
		return nil
	}

	from := bandFor(firstMean)
	to := bandFor(secondMean)
	if from == to {
		return nil
	}

	return []PatternChange{{
		From:               from,
		To:                 to,
		FirstHalfMeanDays:  firstMean,
		SecondHalfMeanDays: secondMean,
	}}
}

func bandFor(meanDays float64) Frequency {
	for _, band := range frequencyBands {
		if meanDays >= band.MinDays && meanDays <= band.MaxDays {
			return band.Frequency
		}
	}
	return FrequencyIrregular
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stabilityOf(changes []PatternChange, intervals []float64, stats IntervalStats) Stability {
	switch {
	case len(changes) > 0:
		return StabilityChanging
	case len(intervals) < 3:
		return StabilityVolatile
	case stats.CoefficientOfVariation < 0.2:
		return StabilityStable
	case stats.CoefficientOfVariation < irregularCV:
		return StabilityChanging
	default:
		return StabilityVolatile
	}
}

// dominantDayOfMonth returns the most common upload day and its share of all
// uploads. Ties resolve to the earliest day.
func dominantDayOfMonth(sorted []UploadRecord) (int, float64) {
	counts := make(map[int]int)
	for _, upload := range sorted {
		counts[upload.UploadedAt.Day()]++
	}
	best, bestCount := 0, 0
	for day := 1; day <= 31; day++ {
		if counts[day] > bestCount {
			best, bestCount = day, counts[day]
		}
	}
	return best, float64(bestCount) / float64(len(sorted))
}

func observedMonths(sorted []UploadRecord) []time.Month {
	seen := make(map[time.Month]bool)
	for _, upload := range sorted {
		seen[upload.UploadedAt.Month()] = true
	}
	months := make([]time.Month, 0, len(seen))
	for m := time.January; m <= time.December; m++ {
		if seen[m] {
			months = append(months, m)
		}
	}
	return months
}

// confidenceScore blends upload volume, interval consistency, a periodicity
// bonus and an irregularity penalty into a 0–100 score.
func confidenceScore(uploadCount int, frequency Frequency, stats IntervalStats) float64 {
	minRequired := minUploadsFor[frequency]
	volume := float64(uploadCount) / float64(minRequired) * 30
	if volume > 30 {
		volume = 30
	}

	score := volume + stats.ConsistencyScore*40
	if frequency.Periodic() {
		score += 20
	}
	if stats.CoefficientOfVariation > irregularCV {
		score -= 15
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func confidenceLevelOf(score float64) ConfidenceLevel {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 60:
		return ConfidenceMedium
	case score >= 40:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// nextExpected advances the last upload by one period of the detected
// frequency, re-advancing only when the naive result is more than a full
// period stale, then snaps to the dominant day-of-month when the pattern
// consistently hits one.
func (d *Detector) nextExpected(pattern *DocumentPattern, day int, dayShare float64) time.Time {
	period := periodDays(pattern)
	next := pattern.LastUpload.AddDate(0, 0, period)

	now := d.clock()
	for now.Sub(next) > time.Duration(period)*24*time.Hour {
		next = next.AddDate(0, 0, period)
	}

	if pattern.Frequency.Periodic() && day > 0 && dayShare >= dayOfMonthSnapShare {
		snapped := snapToDay(next, day)
		// Snapping can land on or before the last upload when the naive
		// date sits late in the month. Roll forward a month in that case.
		if !snapped.After(pattern.LastUpload) {
			snapped = snapToDay(next.AddDate(0, 1, 0), day)
		}
		next = snapped
	}
	return next
}

func periodDays(pattern *DocumentPattern) int {
	if pattern.Frequency.Periodic() || pattern.Intervals.MeanDays <= 0 {
		return nominalPeriodDays[pattern.Frequency]
	}
	days := int(math.Round(pattern.Intervals.MeanDays))
	if days < 1 {
		days = 1
	}
	return days
}

func snapToDay(t time.Time, day int) time.Time {
	year, month, _ := t.Date()
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
