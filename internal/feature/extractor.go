// Package feature extracts structured features from raw transactions for the
// suggestion pipeline.
package feature

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/ledgermind/ledgermind/internal/config"
	"github.com/ledgermind/ledgermind/internal/model"
)

// Bag is the feature set computed for one transaction. Bags are produced
// fresh per transaction and never mutated afterwards.
type Bag struct {
	// Lexical features
	DescriptionLength int     `json:"description_length"`
	WordCount         int     `json:"word_count"`
	HasNumbers        bool    `json:"has_numbers"`
	HasSpecialChars   bool    `json:"has_special_chars"`
	UppercaseRatio    float64 `json:"uppercase_ratio"`

	// Amount features
	Amount        float64 `json:"amount"`
	AmountLog     float64 `json:"amount_log"`
	AmountRounded float64 `json:"amount_rounded"`
	IsRoundAmount bool    `json:"is_round_amount"`
	IsDebit       bool    `json:"is_debit"`
	IsCredit      bool    `json:"is_credit"`

	// Reference features
	HasReference    bool `json:"has_reference"`
	ReferenceLength int  `json:"reference_length"`

	// Temporal features
	DayOfWeek    int  `json:"day_of_week"`
	DayOfMonth   int  `json:"day_of_month"`
	Month        int  `json:"month"`
	Quarter      int  `json:"quarter"`
	Hour         int  `json:"hour"`
	IsWeekend    bool `json:"is_weekend"`
	IsMonthStart bool `json:"is_month_start"`
	IsMonthEnd   bool `json:"is_month_end"`

	// Merchant keyword features
	IsFood          bool `json:"is_food"`
	IsFuel          bool `json:"is_fuel"`
	IsShopping      bool `json:"is_shopping"`
	IsTransport     bool `json:"is_transport"`
	IsUtility       bool `json:"is_utility"`
	IsMedical       bool `json:"is_medical"`
	IsEntertainment bool `json:"is_entertainment"`

	// Extracted text patterns
	TextPatterns []string `json:"text_patterns"`
}

// merchantIndicators maps each merchant category flag to its keyword list.
var merchantIndicators = map[string][]string{
	"food":          {"swiggy", "zomato", "food", "restaurant", "cafe", "dominos", "pizza"},
	"fuel":          {"petrol", "fuel", "gas", "bp", "shell", "bharat petroleum"},
	"shopping":      {"amazon", "flipkart", "myntra", "mall", "store"},
	"transport":     {"uber", "ola", "metro", "bus", "taxi", "auto"},
	"utility":       {"electricity", "water", "gas", "phone", "internet", "wifi"},
	"medical":       {"hospital", "pharmacy", "medical", "doctor", "clinic"},
	"entertainment": {"movie", "netflix", "spotify", "game", "youtube"},
}

// railKeywords are the payment-rail markers that delimit merchant text.
var railKeywords = []string{"upi", "neft", "imps", "rtgs", "payment", "transfer"}

// stopWords are filtered out of extracted text patterns.
var stopWords = map[string]bool{
	"to": true, "from": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "for": true, "with": true, "by": true,
	"upi": true, "neft": true, "imps": true, "rtgs": true,
	"payment": true, "transfer": true, "transaction": true, "bank": true,
	"ltd": true, "pvt": true, "india": true, "indian": true,
	"new": true, "old": true, "good": true, "bad": true, "big": true, "small": true,
	"paytm": true, "phonepe": true, "gpay": true, "googlepay": true,
	"delivery": true, "order": true, "bill": true, "fund": true, "amount": true,
	"debit": true, "credit": true, "wallet": true, "recharge": true,
}

// knownBrands are merchant names recalled directly from descriptions.
var knownBrands = []string{
	"swiggy", "zomato", "uber", "ola", "amazon", "flipkart", "myntra",
	"dominos", "mcdonalds", "kfc", "subway", "netflix", "spotify",
	"airtel", "jio", "vodafone", "apollo", "fortis", "zerodha",
}

var (
	upiMerchantRe = regexp.MustCompile(`^upi[.-]?([a-z]+)`)
	payToRe       = regexp.MustCompile(`pay\s+to\s+([a-z]+)`)
	emailTokenRe  = regexp.MustCompile(`[a-z0-9]+@[a-z]+`)
	phoneTokenRe  = regexp.MustCompile(`\b[0-9]{10}\b`)
	tokenRe       = regexp.MustCompile(`[a-z0-9]+`)
	alphaTokenRe  = regexp.MustCompile(`^[a-z]+$`)
)

// maxTextPatterns caps the extracted pattern set per transaction.
const maxTextPatterns = 5

// Extractor turns transactions into feature bags.
type Extractor struct {
	minPatternLength     int
	maxPatternLength     int
	minDescriptionLength int
}

// NewExtractor creates a feature extractor with the given bounds.
func NewExtractor(cfg config.FeatureExtraction) *Extractor {
	return &Extractor{
		minPatternLength:     cfg.MinPatternLength,
		maxPatternLength:     cfg.MaxPatternLength,
		minDescriptionLength: cfg.MinDescriptionLength,
	}
}

// Extract computes the full feature bag for a transaction. It never fails:
// missing fields resolve to zero values and a missing date resolves to now.
func (e *Extractor) Extract(txn model.Transaction) Bag {
	description := strings.TrimSpace(txn.Description)
	amount := txn.Amount()

	date := txn.Date
	if date.IsZero() {
		date = time.Now()
	}

	bag := Bag{
		DescriptionLength: len(description),
		WordCount:         len(strings.Fields(description)),
		HasNumbers:        strings.ContainsFunc(description, unicode.IsDigit),
		HasSpecialChars:   hasSpecialChars(description),
		UppercaseRatio:    uppercaseRatio(description),

		Amount:        amount,
		AmountRounded: math.Round(amount/10) * 10,
		IsDebit:       txn.IsDebit(),
		IsCredit:      txn.IsCredit(),

		HasReference:    txn.ReferenceNumber != "",
		ReferenceLength: len(txn.ReferenceNumber),

		DayOfMonth:   date.Day(),
		Month:        int(date.Month()),
		Quarter:      (int(date.Month())-1)/3 + 1,
		IsMonthStart: date.Day() <= 5,
		IsMonthEnd:   date.Day() >= 25,

		TextPatterns: e.TextPatterns(description),
	}

	if amount > 0 {
		bag.AmountLog = math.Log1p(amount)
		bag.IsRoundAmount = math.Mod(amount, 100) == 0
	}

	// Monday is day 0
	bag.DayOfWeek = (int(date.Weekday()) + 6) % 7
	bag.IsWeekend = bag.DayOfWeek >= 5

	bag.Hour = date.Hour()
	if date.Hour() == 0 && date.Minute() == 0 && date.Second() == 0 {
		// Date-only sources carry no time component; noon is the neutral default.
		bag.Hour = 12
	}

	lower := strings.ToLower(description)
	bag.IsFood = containsAny(lower, merchantIndicators["food"])
	bag.IsFuel = containsAny(lower, merchantIndicators["fuel"])
	bag.IsShopping = containsAny(lower, merchantIndicators["shopping"])
	bag.IsTransport = containsAny(lower, merchantIndicators["transport"])
	bag.IsUtility = containsAny(lower, merchantIndicators["utility"])
	bag.IsMedical = containsAny(lower, merchantIndicators["medical"])
	bag.IsEntertainment = containsAny(lower, merchantIndicators["entertainment"])

	return bag
}

// TextPatterns extracts a deduplicated set of meaningful pattern strings from
// a transaction description. Descriptions shorter than the configured minimum
// yield no patterns.
func (e *Extractor) TextPatterns(description string) []string {
	description = strings.TrimSpace(description)
	if len(description) < e.minDescriptionLength {
		return nil
	}

	lower := strings.ToLower(description)
	var candidates []string

	// Merchant text preceding a payment-rail keyword
	for _, rail := range railKeywords {
		idx := strings.Index(lower, rail)
		if idx <= 0 {
			continue
		}
		for _, word := range tokenRe.FindAllString(lower[:idx], -1) {
			if !stopWords[word] {
				candidates = append(candidates, word)
			}
		}
	}

	// Merchant names embedded in UPI-style and "pay to" descriptions
	if m := upiMerchantRe.FindStringSubmatch(lower); m != nil && len(m[1]) >= 3 {
		candidates = append(candidates, m[1])
	}
	if m := payToRe.FindStringSubmatch(lower); m != nil && len(m[1]) >= 3 {
		candidates = append(candidates, m[1])
	}

	// Email-like handles and phone-like digit runs
	candidates = append(candidates, emailTokenRe.FindAllString(lower, -1)...)
	candidates = append(candidates, phoneTokenRe.FindAllString(lower, -1)...)

	// Remaining meaningful words
	for _, word := range tokenRe.FindAllString(lower, -1) {
		if len(word) >= 3 && alphaTokenRe.MatchString(word) && !stopWords[word] {
			candidates = append(candidates, word)
		}
	}

	// Known merchant brands anywhere in the description
	for _, brand := range knownBrands {
		if strings.Contains(lower, brand) {
			candidates = append(candidates, brand)
		}
	}

	// Dedup preserving order, then apply the length window
	seen := make(map[string]bool, len(candidates))
	patterns := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		if len(c) < e.minPatternLength || len(c) > e.maxPatternLength {
			continue
		}
		patterns = append(patterns, c)
		if len(patterns) == maxTextPatterns {
			break
		}
	}

	return patterns
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func hasSpecialChars(text string) bool {
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) && r != '_' {
			return true
		}
	}
	return false
}

func uppercaseRatio(text string) float64 {
	var letters, upper int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}
