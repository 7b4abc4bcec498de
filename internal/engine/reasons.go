package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ledgermind/ledgermind/internal/model"
)

// reasonForCategory builds the human-readable explanation attached to a
// category suggestion.
func reasonForCategory(txn model.Transaction, categoryName string) string {
	description := strings.ToLower(txn.Description)
	amount := txn.Amount()

	var reasons []string

	switch categoryName {
	case "food":
		if strings.Contains(description, "swiggy") || strings.Contains(description, "zomato") {
			reasons = append(reasons, "food delivery service detected")
		}
	case "transport":
		if strings.Contains(description, "uber") || strings.Contains(description, "ola") {
			reasons = append(reasons, "ride-sharing service detected")
		}
	case "shopping":
		if strings.Contains(description, "amazon") || strings.Contains(description, "flipkart") {
			reasons = append(reasons, "e-commerce platform detected")
		}
	}

	if amount > highAmountThreshold {
		reasons = append(reasons, "high amount suggests significant purchase")
	} else if amount < smallAmountThreshold {
		reasons = append(reasons, "small amount suggests routine expense")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "analysis of transaction patterns")
	}

	return capitalize(strings.Join(reasons, "; "))
}

// reasonHistorical explains a similarity-based suggestion.
func reasonHistorical(matchCount int) string {
	return fmt.Sprintf("Matched %d similar historical transaction(s)", matchCount)
}

// reasonTemplates returns candidate reason texts for a category.
func reasonTemplates(description, categoryName string) []string {
	merchant := merchantName(description)

	switch strings.ToLower(categoryName) {
	case "food":
		return []string{
			fmt.Sprintf("Food delivery from %s", merchant),
			fmt.Sprintf("Restaurant payment - %s", merchant),
			fmt.Sprintf("Food expenses - %s", categoryName),
		}
	case "transport":
		return []string{
			fmt.Sprintf("Transportation via %s", merchant),
			fmt.Sprintf("Travel expense - %s", categoryName),
			"Commute cost",
		}
	case "shopping":
		return []string{
			fmt.Sprintf("Online purchase from %s", merchant),
			fmt.Sprintf("Shopping expense - %s", categoryName),
			"Retail purchase",
		}
	case "utility":
		return []string{
			"Utility bill payment",
			fmt.Sprintf("Service payment - %s", categoryName),
			"Monthly utility expense",
		}
	default:
		return []string{
			fmt.Sprintf("Payment for %s", categoryName),
			fmt.Sprintf("Expense related to %s", categoryName),
			fmt.Sprintf("Transaction - %s", categoryName),
		}
	}
}

// merchantName picks the first plausible merchant word from a description.
func merchantName(description string) string {
	for _, word := range strings.Fields(description) {
		if len(word) > 3 && isAlpha(word) {
			return capitalize(strings.ToLower(word))
		}
	}
	return "merchant"
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
