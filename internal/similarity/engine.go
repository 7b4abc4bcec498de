// Package similarity computes fuzzy and semantic similarity between
// transaction descriptions and synthesizes matching patterns from them.
package similarity

import (
	"regexp"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/ledgermind/ledgermind/internal/config"
)

// noiseWords are stripped from descriptions before comparison.
var noiseWords = []string{"payment", "transaction", "transfer", "upi", "neft", "imps"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Match pairs a candidate text with its similarity score in [0, 1].
type Match struct {
	Text  string
	Score float64
}

// MerchantMatch pairs a known merchant pattern and its category with a score.
type MerchantMatch struct {
	Pattern  string
	Category string
	Score    float64
}

// Engine scores similarity between descriptions using fuzzy string metrics
// and TF-IDF cosine similarity.
type Engine struct {
	fuzzyThreshold  float64
	cosineThreshold float64
	tfidf           config.TFIDF
}

// NewEngine creates a similarity engine with the given thresholds and
// vectorizer settings.
func NewEngine(sim config.Similarity, tfidf config.TFIDF) *Engine {
	return &Engine{
		fuzzyThreshold:  sim.FuzzyThreshold,
		cosineThreshold: sim.CosineThreshold,
		tfidf:           tfidf,
	}
}

// FuzzyRank scores every candidate against the target using fuzzy string
// matching and returns candidates at or above the fuzzy threshold, sorted by
// descending score. An empty target or candidate list yields no matches.
func (e *Engine) FuzzyRank(target string, candidates []string) []Match {
	if target == "" || len(candidates) == 0 {
		return nil
	}

	targetClean := CleanDescription(target)
	var matches []Match

	for _, candidate := range candidates {
		score := fuzzyScore(targetClean, CleanDescription(candidate))
		if score >= e.fuzzyThreshold {
			matches = append(matches, Match{Text: candidate, Score: score})
		}
	}

	sortMatches(matches)
	return matches
}

// MerchantRank scores known merchant patterns against the target description.
// A pattern literally contained in the target scores 1.0; otherwise the best
// substring alignment is used, kept only at or above the fuzzy threshold.
func (e *Engine) MerchantRank(target string, merchants map[string]string) []MerchantMatch {
	if target == "" || len(merchants) == 0 {
		return nil
	}

	targetClean := CleanDescription(target)
	var matches []MerchantMatch

	for pattern, category := range merchants {
		patternClean := CleanDescription(pattern)

		if patternClean != "" && strings.Contains(targetClean, patternClean) {
			matches = append(matches, MerchantMatch{Pattern: pattern, Category: category, Score: 1.0})
			continue
		}

		score := float64(fuzzy.PartialRatio(patternClean, targetClean)) / 100.0
		if score >= e.fuzzyThreshold {
			matches = append(matches, MerchantMatch{Pattern: pattern, Category: category, Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Pattern < matches[j].Pattern
	})
	return matches
}

// SemanticRank ranks candidates by TF-IDF cosine similarity to the target,
// keeping entries at or above the cosine threshold.
func (e *Engine) SemanticRank(target string, candidates []string) []Match {
	if target == "" || len(candidates) == 0 {
		return nil
	}

	all := append([]string{target}, candidates...)
	matrix := e.SemanticMatrix(all)

	var matches []Match
	for i, candidate := range candidates {
		score := matrix.At(0, i+1)
		if score >= e.cosineThreshold {
			matches = append(matches, Match{Text: candidate, Score: score})
		}
	}

	sortMatches(matches)
	return matches
}

// fuzzyScore is the maximum of the exact-alignment, best-substring-alignment
// and token-order-insensitive ratios, normalized to [0, 1].
func fuzzyScore(a, b string) float64 {
	ratio := fuzzy.Ratio(a, b)
	if partial := fuzzy.PartialRatio(a, b); partial > ratio {
		ratio = partial
	}
	if tokenSort := fuzzy.TokenSortRatio(a, b); tokenSort > ratio {
		ratio = tokenSort
	}
	return float64(ratio) / 100.0
}

func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Text < matches[j].Text
	})
}

// CleanDescription normalizes a description for comparison: lower-cased,
// noise words removed, whitespace collapsed.
func CleanDescription(description string) string {
	if description == "" {
		return ""
	}

	clean := strings.ToLower(strings.TrimSpace(description))
	clean = whitespaceRe.ReplaceAllString(clean, " ")

	for _, noise := range noiseWords {
		clean = strings.ReplaceAll(clean, noise, " ")
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(clean, " "))
}
