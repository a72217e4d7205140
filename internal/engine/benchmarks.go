package engine

import "strings"

// occupationBenchmarks maps an occupation keyword to the deduction categories
// that occupation most commonly claims. Used to boost rule relevance when a
// rule's category matches the taxpayer's line of work. Static and read-only;
// concurrent runs share it safely.
var occupationBenchmarks = map[string][]string{
	"nurse":       {"D3 - Work-related clothing expenses", "D4 - Self-education expenses"},
	"teacher":     {"D4 - Self-education expenses", "D5 - Other work-related expenses"},
	"builder":     {"D1 - Work-related car expenses", "D3 - Work-related clothing expenses", "D5 - Other work-related expenses"},
	"electrician": {"D1 - Work-related car expenses", "D5 - Other work-related expenses"},
	"plumber":     {"D1 - Work-related car expenses", "D5 - Other work-related expenses"},
	"mechanic":    {"D3 - Work-related clothing expenses", "D5 - Other work-related expenses"},
	"driver":      {"D1 - Work-related car expenses", "D2 - Work-related travel expenses"},
	"sales":       {"D1 - Work-related car expenses", "D2 - Work-related travel expenses"},
	"consultant":  {"D2 - Work-related travel expenses", "D5 - Other work-related expenses"},
	"engineer":    {"D4 - Self-education expenses", "D5 - Other work-related expenses"},
	"accountant":  {"D5 - Other work-related expenses", "D10 - Cost of managing tax affairs"},
	"chef":        {"D3 - Work-related clothing expenses", "D5 - Other work-related expenses"},
	"doctor":      {"D4 - Self-education expenses", "D5 - Other work-related expenses"},
	"developer":   {"D5 - Other work-related expenses"},
}

// occupationHints resolves the category set for an occupation by substring
// match, so "registered nurse" still maps through "nurse".
func occupationHints(occupation string) map[string]bool {
	hints := make(map[string]bool)
	occupation = strings.ToLower(occupation)
	if occupation == "" {
		return hints
	}
	for keyword, categories := range occupationBenchmarks {
		if strings.Contains(occupation, keyword) {
			for _, c := range categories {
				hints[c] = true
			}
		}
	}
	return hints
}
