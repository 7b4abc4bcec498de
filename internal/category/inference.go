// Package category provides rule-based category inference from transaction
// text fragments.
package category

import "strings"

// Fallback categories returned when no keyword tier matches.
const (
	CategoryTransfer      = "transfer"
	CategoryCash          = "cash"
	CategoryMiscellaneous = "miscellaneous"
)

// Keyword tier base weights. An exact match of the entire cleaned text
// doubles the tier weight.
const (
	weightHigh      = 3
	weightMedium    = 2
	weightLow       = 1
	exactMultiplier = 2
)

// keywordTiers holds the keyword lists for one category. High carries brand
// names, Medium generic terms, Low weak signals.
type keywordTiers struct {
	Name   string
	High   []string
	Medium []string
	Low    []string
}

// categories is the fixed enumeration; earlier entries win score ties.
var categories = []keywordTiers{
	{
		Name:   "food",
		High:   []string{"swiggy", "zomato", "dominos", "mcdonalds", "kfc"},
		Medium: []string{"restaurant", "cafe", "pizza", "food"},
		Low:    []string{"meal", "snack"},
	},
	{
		Name:   "transport",
		High:   []string{"uber", "ola"},
		Medium: []string{"metro", "taxi", "bus", "cab"},
		Low:    []string{"auto", "travel", "commute"},
	},
	{
		Name:   "fuel",
		High:   []string{"bharat petroleum", "indian oil"},
		Medium: []string{"petrol", "fuel", "diesel"},
		Low:    []string{"pump"},
	},
	{
		Name:   "shopping",
		High:   []string{"amazon", "flipkart", "myntra"},
		Medium: []string{"mall", "store", "shopping"},
		Low:    []string{"purchase", "retail"},
	},
	{
		Name:   "utility",
		High:   []string{"electricity", "broadband"},
		Medium: []string{"internet", "wifi", "water"},
		Low:    []string{"bill", "gas", "phone"},
	},
	{
		Name:   "medical",
		High:   []string{"apollo", "fortis"},
		Medium: []string{"hospital", "pharmacy", "doctor", "clinic"},
		Low:    []string{"medical", "health"},
	},
	{
		Name:   "entertainment",
		High:   []string{"netflix", "spotify"},
		Medium: []string{"movie", "game", "youtube"},
		Low:    []string{"music", "ticket"},
	},
	{
		Name:   "finance",
		High:   []string{"zerodha"},
		Medium: []string{"loan", "emi", "insurance", "mutual"},
		Low:    []string{"investment", "interest"},
	},
}

// Transfer and cash override keywords checked when no category keyword matched.
var (
	transferKeywords = []string{"transfer", "friend", "family"}
	cashKeywords     = []string{"atm", "withdrawal", "cash"}
)

// Infer maps a text fragment to a category label. It is a pure, deterministic
// function: keyword tiers are scored (exact matches of the whole cleaned text
// count double), the highest-scoring category wins, and ties break toward the
// first-declared category. Text matching nothing falls through the transfer
// and cash overrides to "miscellaneous".
func Infer(text string) string {
	clean := strings.ToLower(strings.TrimSpace(text))
	if clean == "" {
		return CategoryMiscellaneous
	}

	best := ""
	bestScore := 0
	for _, cat := range categories {
		score := scoreTier(clean, cat.High, weightHigh) +
			scoreTier(clean, cat.Medium, weightMedium) +
			scoreTier(clean, cat.Low, weightLow)
		if score > bestScore {
			best = cat.Name
			bestScore = score
		}
	}
	if bestScore > 0 {
		return best
	}

	if containsAny(clean, transferKeywords) {
		return CategoryTransfer
	}
	if containsAny(clean, cashKeywords) {
		return CategoryCash
	}
	return CategoryMiscellaneous
}

func scoreTier(clean string, keywords []string, weight int) int {
	score := 0
	for _, kw := range keywords {
		if !strings.Contains(clean, kw) {
			continue
		}
		if clean == kw {
			score += weight * exactMultiplier
		} else {
			score += weight
		}
	}
	return score
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
