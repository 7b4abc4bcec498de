package engine

import "context"

// HistoricalMatch is a category observed on a transaction similar to the one
// being suggested for, with its similarity score in [0, 1].
type HistoricalMatch struct {
	Category string
	Score    float64
}

// HistoricalMatcher looks up categories of historically similar transactions.
// It is an optional collaborator: the engine degrades gracefully without one.
type HistoricalMatcher interface {
	FindSimilarHistorical(ctx context.Context, description string) ([]HistoricalMatch, error)
}
