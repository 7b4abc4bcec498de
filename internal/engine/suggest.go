package engine

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledgermind/ledgermind/internal/category"
	"github.com/ledgermind/ledgermind/internal/common"
	"github.com/ledgermind/ledgermind/internal/model"
)

// SuggestEnumCategory suggests enumerated category labels for a description,
// from its extracted text patterns and from fuzzy matches against any
// caller-supplied existing patterns.
func (e *Engine) SuggestEnumCategory(_ context.Context, description string, existingPatterns []string) model.CategorySuggestions {
	if !e.cfg.Enabled {
		return nil
	}

	var suggestions model.CategorySuggestions

	patterns := e.extractor.TextPatterns(description)
	if len(patterns) > enumPatternLimit {
		patterns = patterns[:enumPatternLimit]
	}
	for _, pattern := range patterns {
		if len(pattern) < 3 {
			continue
		}
		confidence := 0.5
		if len(pattern) > 5 {
			confidence = 0.7
		}
		suggestions = append(suggestions, model.CategorySuggestion{
			Category:   category.Infer(pattern),
			Confidence: confidence,
			Reasoning:  fmt.Sprintf("Pattern %q extracted from transaction description", pattern),
			Source:     model.SourcePatternAnalysis,
		})
	}

	if len(existingPatterns) > 0 {
		matches := e.similarity.FuzzyRank(description, existingPatterns)
		if len(matches) > similarityMatchLimit {
			matches = matches[:similarityMatchLimit]
		}
		for _, match := range matches {
			suggestions = append(suggestions, model.CategorySuggestion{
				Category:   category.Infer(match.Text),
				Confidence: match.Score * similarityConfidenceScale,
				Reasoning:  fmt.Sprintf("Similar to existing pattern %q (%.2f similarity)", match.Text, match.Score),
				Source:     model.SourceSimilarityAnalysis,
			})
		}
	}

	return suggestions.TopN(maxEnumSuggestions)
}

// SuggestRegexPattern synthesizes a matching pattern from the description and
// its similar neighbors. Returns nil when no common pattern exists.
func (e *Engine) SuggestRegexPattern(_ context.Context, description string, similar []string) *model.PatternSuggestion {
	if !e.cfg.Enabled {
		return nil
	}

	descriptions := append([]string{description}, similar...)
	pattern, ok := e.similarity.SuggestPattern(descriptions)
	if !ok {
		return nil
	}

	return &model.PatternSuggestion{
		Pattern:    pattern,
		Confidence: e.patternConfidence(pattern, descriptions),
		Reasoning:  fmt.Sprintf("Pattern derived from %d similar transaction(s)", len(descriptions)),
		Source:     model.SourcePatternAnalysis,
	}
}

// patternConfidence scores a synthesized pattern by how many of the source
// descriptions it matches, with a small bonus for longer (more specific)
// patterns. Patterns that fail to compile score a fixed low default.
func (e *Engine) patternConfidence(pattern string, descriptions []string) float64 {
	if len(descriptions) == 0 {
		return invalidPatternConfidence
	}

	matched := 0
	for _, desc := range descriptions {
		ok, err := common.MatchPattern(pattern, desc)
		if err != nil {
			return invalidPatternConfidence
		}
		if ok {
			matched++
		}
	}
	matchRatio := float64(matched) / float64(len(descriptions))

	complexity := len(strings.ReplaceAll(strings.ReplaceAll(pattern, ".*", ""), "|", ""))
	bonus := math.Min(0.2, float64(complexity)*0.01)

	confidence := matchRatio*0.8 + bonus
	return math.Min(1.0, math.Max(0.1, confidence))
}

// SuggestReason generates candidate free-text reasons for a transaction in a
// given category from per-category templates.
func (e *Engine) SuggestReason(_ context.Context, txn model.Transaction, categoryName string) []model.ReasonSuggestion {
	if !e.cfg.Enabled {
		return nil
	}

	templates := reasonTemplates(txn.Description, categoryName)
	if len(templates) > maxReasonSuggestions {
		templates = templates[:maxReasonSuggestions]
	}

	suggestions := make([]model.ReasonSuggestion, 0, len(templates))
	for _, template := range templates {
		suggestions = append(suggestions, model.ReasonSuggestion{
			Reason:     template,
			Confidence: 0.6,
			Reasoning:  fmt.Sprintf("Generated based on transaction context and %q category", categoryName),
			Source:     model.SourceTemplateGeneration,
		})
	}
	return suggestions
}
