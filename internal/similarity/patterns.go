package similarity

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	patternTokenRe = regexp.MustCompile(`[a-z0-9]+`)
	digitTokenRe   = regexp.MustCompile(`[0-9]`)
	emailPatternRe = regexp.MustCompile(`[a-z0-9]+@[a-z]+`)
)

// maxAlternation bounds how many common patterns a suggested regex combines.
const maxAlternation = 3

// CommonPatterns finds the patterns shared across a group of descriptions:
// words common to all of them, plus numeric or email-like tokens recurring in
// at least half (minimum 2). Fewer than 2 descriptions yield nothing.
func (e *Engine) CommonPatterns(descriptions []string) []string {
	if len(descriptions) < 2 {
		return nil
	}

	clean := make([]string, len(descriptions))
	for i, desc := range descriptions {
		clean[i] = CleanDescription(desc)
	}

	// Words present in every description
	common := make(map[string]bool)
	for i, desc := range clean {
		words := make(map[string]bool)
		for _, w := range patternTokenRe.FindAllString(desc, -1) {
			words[w] = true
		}
		if i == 0 {
			common = words
			continue
		}
		for w := range common {
			if !words[w] {
				delete(common, w)
			}
		}
	}

	// Numeric and email-like tokens recurring across descriptions
	tokenDocs := make(map[string]int)
	for _, desc := range clean {
		seen := make(map[string]bool)
		for _, tok := range patternTokenRe.FindAllString(desc, -1) {
			if digitTokenRe.MatchString(tok) {
				seen[tok] = true
			}
		}
		for _, tok := range emailPatternRe.FindAllString(desc, -1) {
			seen[tok] = true
		}
		for tok := range seen {
			tokenDocs[tok]++
		}
	}

	minOccurrences := (len(descriptions) + 1) / 2
	if minOccurrences < 2 {
		minOccurrences = 2
	}

	merged := make(map[string]bool, len(common))
	for w := range common {
		merged[w] = true
	}
	for tok, count := range tokenDocs {
		if count >= minOccurrences {
			merged[tok] = true
		}
	}

	patterns := make([]string, 0, len(merged))
	for p := range merged {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

// SuggestPattern synthesizes a regex that matches the given descriptions from
// their common patterns. Metacharacters in the source patterns are escaped so
// the result always compiles and matches literally. The second return value
// is false when no pattern can be derived.
func (e *Engine) SuggestPattern(descriptions []string) (string, bool) {
	if len(descriptions) == 0 {
		return "", false
	}

	if len(descriptions) == 1 {
		clean := CleanDescription(descriptions[0])
		if clean == "" {
			return "", false
		}
		return fmt.Sprintf(".*%s.*", regexp.QuoteMeta(clean)), true
	}

	patterns := e.CommonPatterns(descriptions)
	if len(patterns) == 0 {
		return "", false
	}

	if len(patterns) == 1 {
		return fmt.Sprintf(".*%s.*", regexp.QuoteMeta(strings.ToLower(patterns[0]))), true
	}

	if len(patterns) > maxAlternation {
		patterns = patterns[:maxAlternation]
	}
	escaped := make([]string, len(patterns))
	for i, p := range patterns {
		escaped[i] = regexp.QuoteMeta(strings.ToLower(p))
	}
	return fmt.Sprintf(".*(%s).*", strings.Join(escaped, "|")), true
}
