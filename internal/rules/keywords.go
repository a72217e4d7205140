package rules

import "strings"

// Category keyword lists used for substring matching against expense
// categories and subcategories. Matching is deliberately loose; rules are
// tuned against substring behavior.
var (
	homeOfficeKeywords   = []string{"home office", "wfh", "working from home", "d5"}
	vehicleKeywords      = []string{"car", "vehicle", "motor", "logbook", "d1"}
	educationKeywords    = []string{"self-education", "education", "course", "tuition", "d4"}
	uniformKeywords      = []string{"uniform", "clothing", "laundry", "protective", "d3"}
	travelKeywords       = []string{"travel", "accommodation", "flight", "d2"}
	toolsKeywords        = []string{"tools", "equipment"}
	subscriptionKeywords = []string{"subscription", "membership", "union", "professional body"}
	insuranceKeywords    = []string{"income protection", "insurance premium"}
	cryptoKeywords       = []string{"crypto", "cryptocurrency", "digital asset"}
	capitalWorksKeywords = []string{"capital works", "depreciation", "d6"}
	shareKeywords        = []string{"dividend", "share", "brokerage", "d8"}
	phoneKeywords        = []string{"phone", "internet", "mobile", "data"}
	donationKeywords     = []string{"donation", "gift", "charity", "d9"}
	taxAffairsKeywords   = []string{"tax agent", "accountant", "tax affairs", "d10"}
	superKeywords        = []string{"super", "superannuation", "d12"}
	workExpenseKeywords  = []string{"d1", "d2", "d3", "d4", "d5", "work"}
)

// Occupations whose dress or duties typically support uniform and laundry
// claims.
var uniformOccupations = []string{
	"nurse", "chef", "cook", "police", "security", "mechanic",
	"builder", "electrician", "plumber", "hospitality", "retail", "cleaner",
}

// Occupations that routinely travel for work.
var travelOccupations = []string{
	"sales", "consultant", "representative", "tradesperson", "surveyor",
	"inspector", "driver", "journalist",
}

// Occupations that typically claim tools and equipment.
var toolsOccupations = []string{
	"carpenter", "builder", "electrician", "plumber", "mechanic",
	"chef", "hairdresser", "technician", "tradesperson",
}

// Occupations with common professional memberships or union dues.
var subscriptionOccupations = []string{
	"engineer", "accountant", "lawyer", "doctor", "nurse", "teacher",
	"architect", "surveyor", "pharmacist",
}

// occupationMatches reports whether the occupation contains any of the given
// keywords, case-insensitively.
func occupationMatches(occupation string, keywords []string) bool {
	occupation = strings.ToLower(occupation)
	if occupation == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(occupation, kw) {
			return true
		}
	}
	return false
}
