// Package classifier defines the trainable text classifier contract used by
// the suggestion engine, together with a Naive Bayes implementation.
package classifier

// Example is one labeled training pair.
type Example struct {
	Text  string
	Label string
}

// Prediction is one candidate label with its probability.
type Prediction struct {
	Label       string
	Probability float64
}

// Classifier is the statistical text classifier contract. Implementations
// are replaceable black boxes; the engine only depends on this interface.
type Classifier interface {
	// Train fits the model on the given examples, replacing any prior fit.
	Train(examples []Example) error
	// PredictProba returns candidate labels ranked by descending
	// probability, or nil when the model is not trained.
	PredictProba(text string) []Prediction
	// Trained reports whether the model has been successfully fit.
	Trained() bool
}
