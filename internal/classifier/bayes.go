package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jbrukh/bayesian"

	"github.com/ledgermind/ledgermind/internal/common"
	"github.com/ledgermind/ledgermind/internal/config"
)

// Ensure BayesClassifier implements the Classifier interface.
var _ Classifier = (*BayesClassifier)(nil)

// BayesClassifier is a Naive Bayes text classifier with TF-IDF term
// weighting. It starts untrained and stays usable (returning no predictions)
// until the first successful Train call. Documents are tokenized into word
// n-grams over the configured vectorizer range.
type BayesClassifier struct {
	model    *bayesian.Classifier
	classes  []bayesian.Class
	ngramMin int
	ngramMax int
}

// NewBayesClassifier creates an untrained classifier using the vectorizer's
// n-gram range for tokenization.
func NewBayesClassifier(cfg config.TFIDF) *BayesClassifier {
	ngramMin := cfg.NgramMin
	if ngramMin < 1 {
		ngramMin = 1
	}
	ngramMax := cfg.NgramMax
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}
	return &BayesClassifier{ngramMin: ngramMin, ngramMax: ngramMax}
}

// Train fits the classifier on the given examples. The underlying model
// requires at least two distinct labels; training sets that cannot satisfy
// that leave the previous fit untouched and return an error.
func (c *BayesClassifier) Train(examples []Example) error {
	if len(examples) == 0 {
		return fmt.Errorf("%w: no training examples", common.ErrInsufficientData)
	}

	seen := make(map[string]bool)
	var classes []bayesian.Class
	for _, ex := range examples {
		if ex.Label == "" || seen[ex.Label] {
			continue
		}
		seen[ex.Label] = true
		classes = append(classes, bayesian.Class(ex.Label))
	}
	if len(classes) < 2 {
		return fmt.Errorf("%w: need at least 2 distinct labels, got %d", common.ErrInsufficientData, len(classes))
	}

	model := bayesian.NewClassifierTfIdf(classes...)
	for _, ex := range examples {
		words := c.tokenize(ex.Text)
		if len(words) == 0 || ex.Label == "" {
			continue
		}
		model.Learn(words, bayesian.Class(ex.Label))
	}
	model.ConvertTermsFreqToTfIdf()

	c.model = model
	c.classes = classes
	return nil
}

// PredictProba returns every known label ranked by descending probability.
// An untrained model or empty input yields nil.
func (c *BayesClassifier) PredictProba(text string) []Prediction {
	if c.model == nil {
		return nil
	}
	words := c.tokenize(text)
	if len(words) == 0 {
		return nil
	}

	scores, _, _ := c.model.ProbScores(words)

	predictions := make([]Prediction, 0, len(scores))
	for i, score := range scores {
		predictions = append(predictions, Prediction{
			Label:       string(c.classes[i]),
			Probability: score,
		})
	}

	sort.Slice(predictions, func(i, j int) bool {
		if predictions[i].Probability != predictions[j].Probability {
			return predictions[i].Probability > predictions[j].Probability
		}
		return predictions[i].Label < predictions[j].Label
	})
	return predictions
}

// Trained reports whether a model has been fit.
func (c *BayesClassifier) Trained() bool {
	return c.model != nil
}

// tokenize produces word n-grams over the configured range.
func (c *BayesClassifier) tokenize(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	var terms []string
	for size := c.ngramMin; size <= c.ngramMax; size++ {
		if size > len(words) {
			continue
		}
		for i := 0; i+size <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+size], " "))
		}
	}
	return terms
}
