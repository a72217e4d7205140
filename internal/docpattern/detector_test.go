package docpattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock() time.Time {
	return day(2025, time.June, 1)
}

func detector() *Detector {
	return NewDetector(WithClock(fixedClock))
}

func uploadsAt(docType, source string, dates ...time.Time) []UploadRecord {
	uploads := make([]UploadRecord, 0, len(dates))
	for i, date := range dates {
		uploads = append(uploads, UploadRecord{
			ID:           docType + "-" + string(rune('a'+i)),
			DocumentType: docType,
			Source:       source,
			UploadedAt:   date,
		})
	}
	return uploads
}

func TestDetectPatternMonthly(t *testing.T) {
	uploads := uploadsAt("Bank Statement", "anz",
		day(2025, time.January, 15),
		day(2025, time.February, 15),
		day(2025, time.March, 15),
		day(2025, time.April, 15),
	)

	pattern := detector().DetectPattern("Bank Statement", "anz", uploads)
	require.NotNil(t, pattern)

	assert.Equal(t, FrequencyMonthly, pattern.Frequency)
	assert.Equal(t, StabilityStable, pattern.Stability)
	assert.Equal(t, 4, pattern.UploadCount)
	assert.Equal(t, 15, pattern.DayOfMonth)
	assert.Equal(t, 5, pattern.GracePeriodDays)
	assert.InDelta(t, 30.0, pattern.Intervals.MeanDays, 0.001)
	assert.Greater(t, pattern.Confidence, 80.0)
	assert.Equal(t, ConfidenceHigh, pattern.ConfidenceLevel)
	// One nominal period after the last upload, snapped to the 15th.
	assert.Equal(t, day(2025, time.May, 15), pattern.NextExpectedDate)
}

func TestDetectPatternEmpty(t *testing.T) {
	assert.Nil(t, detector().DetectPattern("Bank Statement", "anz", nil))
}

func TestDetectPatternUnsortedInput(t *testing.T) {
	uploads := uploadsAt("Bank Statement", "anz",
		day(2025, time.March, 15),
		day(2025, time.January, 15),
		day(2025, time.April, 15),
		day(2025, time.February, 15),
	)

	pattern := detector().DetectPattern("Bank Statement", "anz", uploads)
	require.NotNil(t, pattern)
	assert.Equal(t, FrequencyMonthly, pattern.Frequency)
	assert.Equal(t, day(2025, time.April, 15), pattern.LastUpload)
}

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  Frequency
	}{
		{
			name: "quarterly",
			dates: []time.Time{
				day(2024, time.July, 1), day(2024, time.September, 29), day(2024, time.December, 28),
			},
			want: FrequencyQuarterly,
		},
		{
			name: "half yearly from two uploads",
			dates: []time.Time{
				day(2024, time.July, 1), day(2024, time.December, 30),
			},
			want: FrequencyHalfYearly,
		},
		{
			name: "yearly from two uploads",
			dates: []time.Time{
				day(2023, time.July, 14), day(2024, time.July, 14),
			},
			want: FrequencyYearly,
		},
		{
			name: "interval outside every band",
			dates: []time.Time{
				day(2025, time.January, 1), day(2025, time.March, 2),
			},
			want: FrequencyUnknown,
		},
		{
			name: "erratic gaps",
			dates: []time.Time{
				day(2025, time.January, 1), day(2025, time.January, 4),
				day(2025, time.June, 3), day(2025, time.June, 13),
			},
			want: FrequencyIrregular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := detector().DetectPattern("Receipt", "upload", uploadsAt("Receipt", "upload", tt.dates...))
			require.NotNil(t, pattern)
			assert.Equal(t, tt.want, pattern.Frequency)
		})
	}
}

func TestClassifyDocumentTypeHints(t *testing.T) {
	t.Run("payg summary needs a single upload", func(t *testing.T) {
		pattern := detector().DetectPattern("PAYG Payment Summary", "employer",
			uploadsAt("PAYG Payment Summary", "employer", day(2024, time.July, 14)))
		require.NotNil(t, pattern)

		assert.Equal(t, FrequencyYearly, pattern.Frequency)
		// 15 volume + 0 consistency + 20 periodic bonus.
		assert.InDelta(t, 35.0, pattern.Confidence, 0.001)
		assert.Equal(t, ConfidenceVeryLow, pattern.ConfidenceLevel)
	})

	t.Run("bank statement defaults to monthly", func(t *testing.T) {
		// Gaps of 50 and 55 days fit no band but the type hint applies.
		pattern := detector().DetectPattern("Bank Statement - ANZ", "anz",
			uploadsAt("Bank Statement - ANZ", "anz",
				day(2025, time.January, 1), day(2025, time.February, 20), day(2025, time.April, 16)))
		require.NotNil(t, pattern)
		assert.Equal(t, FrequencyMonthly, pattern.Frequency)
	})
}

func TestDetectPatternChange(t *testing.T) {
	// Four monthly gaps followed by four quarterly gaps.
	dates := []time.Time{day(2023, time.January, 1)}
	for i := 0; i < 4; i++ {
		dates = append(dates, dates[len(dates)-1].AddDate(0, 0, 30))
	}
	for i := 0; i < 4; i++ {
		dates = append(dates, dates[len(dates)-1].AddDate(0, 0, 90))
	}

	pattern := detector().DetectPattern("Invoice", "agency", uploadsAt("Invoice", "agency", dates...))
	require.NotNil(t, pattern)
	require.Len(t, pattern.Changes, 1)

	change := pattern.Changes[0]
	assert.Equal(t, FrequencyMonthly, change.From)
	assert.Equal(t, FrequencyQuarterly, change.To)
	assert.InDelta(t, 30.0, change.FirstHalfMeanDays, 0.001)
	assert.InDelta(t, 90.0, change.SecondHalfMeanDays, 0.001)
	assert.Equal(t, StabilityChanging, pattern.Stability)
}

func TestNextExpectedReAdvancesStalePatterns(t *testing.T) {
	// Last upload over a year before the clock. The naive next date is
	// re-advanced period by period until it lands within one period of now.
	uploads := uploadsAt("Bank Statement", "anz",
		day(2024, time.January, 15),
		day(2024, time.February, 15),
		day(2024, time.March, 15),
	)

	pattern := detector().DetectPattern("Bank Statement", "anz", uploads)
	require.NotNil(t, pattern)
	assert.Equal(t, FrequencyMonthly, pattern.Frequency)
	assert.Equal(t, day(2025, time.May, 15), pattern.NextExpectedDate)
}

func TestNextExpectedNoSnapWithoutDominantDay(t *testing.T) {
	uploads := uploadsAt("Bank Statement", "anz",
		day(2025, time.January, 3),
		day(2025, time.February, 5),
		day(2025, time.March, 8),
		day(2025, time.April, 10),
	)

	pattern := detector().DetectPattern("Bank Statement", "anz", uploads)
	require.NotNil(t, pattern)
	assert.Equal(t, FrequencyMonthly, pattern.Frequency)
	assert.Equal(t, day(2025, time.May, 10), pattern.NextExpectedDate)
}

func TestDetectMissing(t *testing.T) {
	overdue := DocumentPattern{
		DocumentType:     "Bank Statement",
		NextExpectedDate: day(2025, time.May, 15),
		GracePeriodDays:  5,
	}
	moreOverdue := DocumentPattern{
		DocumentType:     "Invoice",
		NextExpectedDate: day(2025, time.April, 1),
		GracePeriodDays:  10,
	}
	withinGrace := DocumentPattern{
		DocumentType:     "Receipt",
		NextExpectedDate: day(2025, time.May, 30),
		GracePeriodDays:  5,
	}

	missing := detector().DetectMissing([]DocumentPattern{overdue, withinGrace, moreOverdue}, fixedClock())
	require.Len(t, missing, 2)

	// Most overdue first.
	assert.Equal(t, "Invoice", missing[0].Pattern.DocumentType)
	assert.Equal(t, 61, missing[0].DaysOverdue)
	assert.Equal(t, "Bank Statement", missing[1].Pattern.DocumentType)
	assert.Equal(t, 17, missing[1].DaysOverdue)
	assert.True(t, missing[0].IsMissing)
}

func TestExpectedWithin(t *testing.T) {
	soon := DocumentPattern{
		DocumentType:     "Bank Statement",
		NextExpectedDate: day(2025, time.June, 15),
	}
	later := DocumentPattern{
		DocumentType:     "Quarterly Statement",
		NextExpectedDate: day(2025, time.June, 25),
	}
	beyond := DocumentPattern{
		DocumentType:     "PAYG Payment Summary",
		NextExpectedDate: day(2025, time.August, 1),
	}
	past := DocumentPattern{
		DocumentType:     "Invoice",
		NextExpectedDate: day(2025, time.May, 1),
	}

	expected := detector().ExpectedWithin([]DocumentPattern{later, beyond, soon, past}, fixedClock(), 30)
	require.Len(t, expected, 2)
	assert.Equal(t, "Bank Statement", expected[0].Pattern.DocumentType)
	assert.Equal(t, 14, expected[0].DaysUntilDue)
	assert.Equal(t, "Quarterly Statement", expected[1].Pattern.DocumentType)
}

func TestAnalyzeGroupsStreams(t *testing.T) {
	var uploads []UploadRecord
	uploads = append(uploads, uploadsAt("Bank Statement", "anz",
		day(2025, time.February, 15), day(2025, time.March, 15), day(2025, time.April, 15))...)
	uploads = append(uploads, uploadsAt("Bank Statement", "cba",
		day(2025, time.March, 1), day(2025, time.April, 1), day(2025, time.May, 1))...)
	uploads = append(uploads, uploadsAt("PAYG Payment Summary", "employer",
		day(2024, time.July, 14))...)

	result := detector().Analyze(uploads, 60)

	require.Len(t, result.Patterns, 3)
	assert.Equal(t, "anz", result.Patterns[0].Source)
	assert.Equal(t, "cba", result.Patterns[1].Source)
	assert.Equal(t, "PAYG Payment Summary", result.Patterns[2].DocumentType)

	// The anz stream expected May 15 is overdue past its 5-day grace; the
	// cba stream expected June 1 is not.
	require.Len(t, result.Missing, 1)
	assert.Equal(t, "anz", result.Missing[0].Pattern.Source)

	var expectedTypes []string
	for _, e := range result.Expected {
		expectedTypes = append(expectedTypes, e.Pattern.DocumentType+"/"+e.Pattern.Source)
	}
	assert.Contains(t, expectedTypes, "Bank Statement/cba")
}

func TestAnalyzeDeterministic(t *testing.T) {
	uploads := append(
		uploadsAt("Bank Statement", "cba", day(2025, time.March, 1), day(2025, time.April, 1), day(2025, time.May, 1)),
		uploadsAt("Bank Statement", "anz", day(2025, time.March, 2), day(2025, time.April, 2), day(2025, time.May, 2))...,
	)

	first := detector().Analyze(uploads, 30)
	second := detector().Analyze(uploads, 30)
	assert.Equal(t, first, second)
}

func TestIntervalStats(t *testing.T) {
	stats := statsOf([]float64{30, 30, 30})
	assert.InDelta(t, 30.0, stats.MeanDays, 0.001)
	assert.Zero(t, stats.StdDevDays)
	assert.Zero(t, stats.CoefficientOfVariation)
	assert.InDelta(t, 1.0, stats.ConsistencyScore, 0.001)

	assert.Equal(t, IntervalStats{}, statsOf(nil))
}

func TestSnapToDayClampsShortMonths(t *testing.T) {
	snapped := snapToDay(day(2025, time.February, 10), 31)
	assert.Equal(t, day(2025, time.February, 28), snapped)
}
