package model

import (
	"fmt"
	"sort"
)

// SuggestionSource identifies which subsystem produced a suggestion.
type SuggestionSource string

const (
	// SourceMLClassification marks suggestions from the trained statistical classifier.
	SourceMLClassification SuggestionSource = "ml_classification"
	// SourcePatternAnalysis marks suggestions derived from extracted text patterns.
	SourcePatternAnalysis SuggestionSource = "pattern_analysis"
	// SourceSimilarityAnalysis marks suggestions derived from similarity matching.
	SourceSimilarityAnalysis SuggestionSource = "similarity_analysis"
	// SourceTemplateGeneration marks suggestions produced from reason templates.
	SourceTemplateGeneration SuggestionSource = "template_generation"
)

// CategorySuggestion is a single candidate category with its confidence and
// a human-readable explanation of why it was proposed.
type CategorySuggestion struct {
	Category   string
	Reasoning  string
	Source     SuggestionSource
	Confidence float64
}

// Validate ensures the suggestion carries valid data.
func (s *CategorySuggestion) Validate() error {
	if s.Category == "" {
		return fmt.Errorf("category name is required")
	}
	if s.Confidence < 0.0 || s.Confidence > 1.0 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %.2f", s.Confidence)
	}
	return nil
}

// CategorySuggestions is a slice of CategorySuggestion that supports ranking.
type CategorySuggestions []CategorySuggestion

// Len implements sort.Interface.
func (s CategorySuggestions) Len() int { return len(s) }

// Less implements sort.Interface - higher confidence comes first.
func (s CategorySuggestions) Less(i, j int) bool {
	if s[i].Confidence != s[j].Confidence {
		return s[i].Confidence > s[j].Confidence
	}
	// Equal confidence sorts by category name for deterministic output
	return s[i].Category < s[j].Category
}

// Swap implements sort.Interface.
func (s CategorySuggestions) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Sort orders the suggestions by confidence in descending order.
func (s CategorySuggestions) Sort() { sort.Sort(s) }

// TopN returns the N highest-confidence suggestions.
func (s CategorySuggestions) TopN(n int) CategorySuggestions {
	if n <= 0 {
		return CategorySuggestions{}
	}
	s.Sort()
	if n > len(s) {
		n = len(s)
	}
	result := make(CategorySuggestions, n)
	copy(result, s[:n])
	return result
}

// ReasonSuggestion is a candidate free-text reason for a transaction.
type ReasonSuggestion struct {
	Reason     string
	Reasoning  string
	Source     SuggestionSource
	Confidence float64
}

// PatternSuggestion is a candidate matching pattern synthesized from a group
// of similar transaction descriptions.
type PatternSuggestion struct {
	Pattern    string
	Reasoning  string
	Source     SuggestionSource
	Confidence float64
}

// SuggestionSummary aggregates every suggestion type for one transaction.
type SuggestionSummary struct {
	RegexPattern      *PatternSuggestion
	Categories        CategorySuggestions
	EnumCategories    CategorySuggestions
	Reasons           []ReasonSuggestion
	OverallConfidence float64
}
