// Package engine orchestrates the suggestion pipeline: it fans a transaction
// out to the similarity, rule and statistical sources, merges their candidate
// suggestions into one ranked list, and feeds user feedback back into the
// statistical classifier.
package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgermind/ledgermind/internal/classifier"
	"github.com/ledgermind/ledgermind/internal/common"
	"github.com/ledgermind/ledgermind/internal/config"
	"github.com/ledgermind/ledgermind/internal/feature"
	"github.com/ledgermind/ledgermind/internal/model"
	"github.com/ledgermind/ledgermind/internal/similarity"
)

const (
	// Rule-based suggestion confidences.
	merchantRuleConfidence = 0.8
	amountRuleConfidence   = 0.6
	highAmountThreshold    = 10000.0
	smallAmountThreshold   = 100.0

	// Retraining schedule.
	retrainInterval    = 10
	minTrainingRecords = 5

	// Per-type suggestion caps.
	maxEnumSuggestions   = 3
	maxReasonSuggestions = 3
	enumPatternLimit     = 3
	similarityMatchLimit = 2

	// Similarity-derived enum suggestions are discounted against rule hits.
	similarityConfidenceScale = 0.8

	// Confidence assigned to patterns that fail to compile or match.
	invalidPatternConfidence = 0.3
)

// Engine is the suggestion orchestrator. One instance owns its training
// corpus and classifier state for the lifetime of the process.
type Engine struct {
	classifier classifier.Classifier
	history    HistoricalMatcher
	extractor  *feature.Extractor
	similarity *similarity.Engine
	corpus     []model.FeedbackRecord
	cfg        config.ML
	mu         sync.Mutex
}

// New creates a suggestion engine. history may be nil, in which case
// similarity-based historical suggestions are simply absent.
func New(cfg config.Config, cls classifier.Classifier, history HistoricalMatcher) *Engine {
	return &Engine{
		cfg:        cfg.ML,
		classifier: cls,
		history:    history,
		extractor:  feature.NewExtractor(cfg.ML.FeatureExtraction),
		similarity: similarity.NewEngine(cfg.ML.Similarity, cfg.ML.Models.TFIDF),
	}
}

// Enabled reports whether the engine produces suggestions at all.
func (e *Engine) Enabled() bool {
	return e.cfg.Enabled
}

// SuggestCategory returns ranked category suggestions for a transaction,
// merged across the similarity, statistical and rule-based sources. Each
// category appears once, carrying the maximum confidence any source gave it.
func (e *Engine) SuggestCategory(ctx context.Context, txn model.Transaction) model.CategorySuggestions {
	if !e.cfg.Enabled {
		return nil
	}

	bag := e.extractor.Extract(txn)

	var candidates model.CategorySuggestions
	candidates = append(candidates, e.historicalSuggestions(ctx, txn)...)
	candidates = append(candidates, e.classifierSuggestions(txn)...)
	candidates = append(candidates, e.ruleSuggestions(txn, bag)...)

	return mergeByCategory(candidates).TopN(e.cfg.MaxSuggestions)
}

// historicalSuggestions derives category candidates from transactions the
// optional external store considers similar. Lookup failures degrade to no
// suggestions from this source.
func (e *Engine) historicalSuggestions(ctx context.Context, txn model.Transaction) model.CategorySuggestions {
	if e.history == nil || txn.Description == "" {
		return nil
	}

	matches, err := e.history.FindSimilarHistorical(ctx, txn.Description)
	if err != nil {
		common.LogError(err, "Historical lookup failed", common.Fields{"description": txn.Description})
		return nil
	}

	byCategory := make(map[string][]similarity.HistoricalMatch)
	for _, m := range matches {
		if m.Category == "" {
			continue
		}
		byCategory[m.Category] = append(byCategory[m.Category], similarity.HistoricalMatch{
			Similarity:    m.Score,
			RecencyWeight: 1.0,
			SuccessRate:   1.0,
		})
	}

	var suggestions model.CategorySuggestions
	for cat, hist := range byCategory {
		suggestions = append(suggestions, model.CategorySuggestion{
			Category:   cat,
			Confidence: similarity.MerchantConfidence(hist),
			Reasoning:  reasonHistorical(len(hist)),
			Source:     model.SourceSimilarityAnalysis,
		})
	}
	return suggestions
}

// classifierSuggestions asks the statistical classifier, keeping predictions
// at or above the configured confidence threshold. An untrained model
// contributes nothing.
func (e *Engine) classifierSuggestions(txn model.Transaction) model.CategorySuggestions {
	if e.classifier == nil || !e.classifier.Trained() {
		return nil
	}

	var suggestions model.CategorySuggestions
	for _, pred := range e.classifier.PredictProba(txn.Description) {
		if pred.Probability < e.cfg.ConfidenceThreshold {
			continue
		}
		suggestions = append(suggestions, model.CategorySuggestion{
			Category:   pred.Label,
			Confidence: pred.Probability,
			Reasoning:  reasonForCategory(txn, pred.Label),
			Source:     model.SourceMLClassification,
		})
	}
	return suggestions
}

// ruleSuggestions maps merchant keyword flags and amount bands to fixed-
// confidence candidates.
func (e *Engine) ruleSuggestions(txn model.Transaction, bag feature.Bag) model.CategorySuggestions {
	var suggestions model.CategorySuggestions

	add := func(flag bool, category string) {
		if !flag {
			return
		}
		suggestions = append(suggestions, model.CategorySuggestion{
			Category:   category,
			Confidence: merchantRuleConfidence,
			Reasoning:  reasonForCategory(txn, category),
			Source:     model.SourcePatternAnalysis,
		})
	}
	add(bag.IsFood, "food")
	add(bag.IsFuel, "fuel")
	add(bag.IsShopping, "shopping")
	add(bag.IsTransport, "transport")
	add(bag.IsUtility, "utility")
	add(bag.IsMedical, "medical")
	add(bag.IsEntertainment, "entertainment")

	if bag.Amount > highAmountThreshold {
		suggestions = append(suggestions, model.CategorySuggestion{
			Category:   "investment",
			Confidence: amountRuleConfidence,
			Reasoning:  reasonForCategory(txn, "investment"),
			Source:     model.SourcePatternAnalysis,
		})
	} else if bag.Amount < smallAmountThreshold {
		suggestions = append(suggestions, model.CategorySuggestion{
			Category:   "miscellaneous",
			Confidence: amountRuleConfidence,
			Reasoning:  reasonForCategory(txn, "miscellaneous"),
			Source:     model.SourcePatternAnalysis,
		})
	}

	return suggestions
}

// mergeByCategory deduplicates candidates by category name, keeping the
// maximum confidence seen for each, and returns them ranked.
func mergeByCategory(candidates model.CategorySuggestions) model.CategorySuggestions {
	best := make(map[string]model.CategorySuggestion, len(candidates))
	for _, c := range candidates {
		existing, ok := best[c.Category]
		if !ok || c.Confidence > existing.Confidence {
			best[c.Category] = c
		}
	}

	merged := make(model.CategorySuggestions, 0, len(best))
	for _, s := range best {
		merged = append(merged, s)
	}
	merged.Sort()
	return merged
}

// ProvideFeedback appends the review outcome for a suggestion to the training
// corpus and periodically retrains the statistical classifier. Retraining
// failures are swallowed: the classifier keeps its previous state. The
// appended record is returned so callers may persist it.
func (e *Engine) ProvideFeedback(_ context.Context, txn model.Transaction, suggestionType, suggestedValue string, action model.UserAction, finalValue string) model.FeedbackRecord {
	if !e.cfg.Enabled {
		return model.FeedbackRecord{}
	}

	snapshot, err := json.Marshal(e.extractor.Extract(txn))
	if err != nil {
		snapshot = nil
	}

	record := model.FeedbackRecord{
		ID:               uuid.NewString(),
		CreatedAt:        time.Now(),
		Fingerprint:      txn.Fingerprint(),
		SuggestionType:   suggestionType,
		SuggestedValue:   suggestedValue,
		FinalValue:       finalValue,
		Description:      txn.Description,
		FeaturesSnapshot: string(snapshot),
		UserAction:       action,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.corpus = append(e.corpus, record)
	if len(e.corpus)%retrainInterval == 0 {
		e.maybeRetrain()
	}

	return record
}

// maybeRetrain refits the classifier from accepted category feedback.
// Callers must hold e.mu.
func (e *Engine) maybeRetrain() {
	if e.classifier == nil {
		return
	}

	var examples []classifier.Example
	for _, rec := range e.corpus {
		if rec.UserAction != model.ActionAccepted || rec.SuggestionType != model.SuggestionTypeCategory {
			continue
		}
		label := rec.ChosenValue()
		if rec.Description == "" || label == "" {
			continue
		}
		examples = append(examples, classifier.Example{Text: rec.Description, Label: label})
	}

	if len(examples) < minTrainingRecords {
		common.LogDebug("Skipping retrain", common.Fields{"qualifying_records": len(examples)})
		return
	}

	if err := e.classifier.Train(examples); err != nil {
		common.LogError(err, "Classifier retrain failed", common.Fields{"corpus_size": len(e.corpus)})
		return
	}
	slog.Info("Retrained classifier", "examples", len(examples), "corpus_size", len(e.corpus))
}

// CorpusSize returns the number of feedback records accumulated so far.
func (e *Engine) CorpusSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.corpus)
}

// Summary gathers every suggestion type for a transaction and computes the
// overall confidence as the unweighted mean of all produced confidences.
func (e *Engine) Summary(ctx context.Context, txn model.Transaction) model.SuggestionSummary {
	if !e.cfg.Enabled {
		return model.SuggestionSummary{}
	}

	summary := model.SuggestionSummary{
		Categories:     e.SuggestCategory(ctx, txn),
		EnumCategories: e.SuggestEnumCategory(ctx, txn.Description, nil),
		RegexPattern:   e.SuggestRegexPattern(ctx, txn.Description, nil),
	}
	if len(summary.Categories) > 0 {
		summary.Reasons = e.SuggestReason(ctx, txn, summary.Categories[0].Category)
	}

	var confidences []float64
	for _, s := range summary.Categories {
		confidences = append(confidences, s.Confidence)
	}
	for _, s := range summary.EnumCategories {
		confidences = append(confidences, s.Confidence)
	}
	if summary.RegexPattern != nil {
		confidences = append(confidences, summary.RegexPattern.Confidence)
	}

	if len(confidences) > 0 {
		var sum float64
		for _, c := range confidences {
			sum += c
		}
		summary.OverallConfidence = sum / float64(len(confidences))
	}

	return summary
}
