// Package config provides configuration for the suggestion engine.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ledgermind/ledgermind/internal/common"
)

// Defaults for every tunable. A partial configuration is always valid;
// anything unset falls back to these values.
const (
	DefaultConfidenceThreshold  = 0.6
	DefaultMaxSuggestions       = 5
	DefaultMinPatternLength     = 3
	DefaultMaxPatternLength     = 50
	DefaultMinDescriptionLength = 5
	DefaultFuzzyThreshold       = 0.8
	DefaultCosineThreshold      = 0.7
	DefaultTFIDFMaxFeatures     = 1000
	DefaultTFIDFMinDocFreq      = 2
	DefaultTFIDFMaxDocFreq      = 0.8
	DefaultNgramMin             = 1
	DefaultNgramMax             = 2
)

// Config is the full configuration surface for the application.
type Config struct {
	Storage Storage
	Logging Logging
	ML      ML
}

// ML configures the suggestion engine itself.
type ML struct {
	FeatureExtraction   FeatureExtraction
	Similarity          Similarity
	Models              Models
	ConfidenceThreshold float64
	MaxSuggestions      int
	Enabled             bool
}

// FeatureExtraction bounds the text-pattern extraction window.
type FeatureExtraction struct {
	MinPatternLength     int
	MaxPatternLength     int
	MinDescriptionLength int
}

// Similarity holds the fuzzy and semantic match thresholds.
type Similarity struct {
	FuzzyThreshold  float64
	CosineThreshold float64
}

// Models holds statistical classifier hyperparameters. The Naive Bayes
// smoothing itself is fixed by the underlying library and not configurable.
type Models struct {
	TFIDF TFIDF
}

// TFIDF configures the term-frequency vectorizer.
type TFIDF struct {
	MaxFeatures int
	MinDocFreq  int
	MaxDocFreq  float64
	NgramMin    int
	NgramMax    int
}

// Storage configures the optional feedback store.
type Storage struct {
	Path string
}

// Logging configures the slog handler.
type Logging struct {
	Level  string
	Format string
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ML: ML{
			Enabled:             true,
			ConfidenceThreshold: DefaultConfidenceThreshold,
			MaxSuggestions:      DefaultMaxSuggestions,
			FeatureExtraction: FeatureExtraction{
				MinPatternLength:     DefaultMinPatternLength,
				MaxPatternLength:     DefaultMaxPatternLength,
				MinDescriptionLength: DefaultMinDescriptionLength,
			},
			Similarity: Similarity{
				FuzzyThreshold:  DefaultFuzzyThreshold,
				CosineThreshold: DefaultCosineThreshold,
			},
			Models: Models{
				TFIDF: TFIDF{
					MaxFeatures: DefaultTFIDFMaxFeatures,
					MinDocFreq:  DefaultTFIDFMinDocFreq,
					MaxDocFreq:  DefaultTFIDFMaxDocFreq,
					NgramMin:    DefaultNgramMin,
					NgramMax:    DefaultNgramMax,
				},
			},
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds a Config from Viper, starting from defaults and overlaying any
// values present in the config file or LEDGERMIND_* environment variables.
func Load() (Config, error) {
	cfg := Default()

	if viper.IsSet("ml.enabled") {
		cfg.ML.Enabled = viper.GetBool("ml.enabled")
	}
	if viper.IsSet("ml.confidence_threshold") {
		cfg.ML.ConfidenceThreshold = viper.GetFloat64("ml.confidence_threshold")
	}
	if viper.IsSet("ml.max_suggestions") {
		cfg.ML.MaxSuggestions = viper.GetInt("ml.max_suggestions")
	}
	if viper.IsSet("ml.feature_extraction.min_pattern_length") {
		cfg.ML.FeatureExtraction.MinPatternLength = viper.GetInt("ml.feature_extraction.min_pattern_length")
	}
	if viper.IsSet("ml.feature_extraction.max_pattern_length") {
		cfg.ML.FeatureExtraction.MaxPatternLength = viper.GetInt("ml.feature_extraction.max_pattern_length")
	}
	if viper.IsSet("ml.feature_extraction.min_description_length") {
		cfg.ML.FeatureExtraction.MinDescriptionLength = viper.GetInt("ml.feature_extraction.min_description_length")
	}
	if viper.IsSet("ml.similarity.fuzzy_threshold") {
		cfg.ML.Similarity.FuzzyThreshold = viper.GetFloat64("ml.similarity.fuzzy_threshold")
	}
	if viper.IsSet("ml.similarity.cosine_threshold") {
		cfg.ML.Similarity.CosineThreshold = viper.GetFloat64("ml.similarity.cosine_threshold")
	}
	if viper.IsSet("ml.models.tfidf.max_features") {
		cfg.ML.Models.TFIDF.MaxFeatures = viper.GetInt("ml.models.tfidf.max_features")
	}
	if viper.IsSet("ml.models.tfidf.min_df") {
		cfg.ML.Models.TFIDF.MinDocFreq = viper.GetInt("ml.models.tfidf.min_df")
	}
	if viper.IsSet("ml.models.tfidf.max_df") {
		cfg.ML.Models.TFIDF.MaxDocFreq = viper.GetFloat64("ml.models.tfidf.max_df")
	}
	if viper.IsSet("ml.models.tfidf.ngram_min") {
		cfg.ML.Models.TFIDF.NgramMin = viper.GetInt("ml.models.tfidf.ngram_min")
	}
	if viper.IsSet("ml.models.tfidf.ngram_max") {
		cfg.ML.Models.TFIDF.NgramMax = viper.GetInt("ml.models.tfidf.ngram_max")
	}
	if v := viper.GetString("storage.path"); v != "" {
		cfg.Storage.Path = v
	}
	if v := viper.GetString("logging.level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("logging.format"); v != "" {
		cfg.Logging.Format = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.ML.ConfidenceThreshold < 0 || c.ML.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: confidence threshold must be between 0 and 1, got %.2f", common.ErrInvalidConfig, c.ML.ConfidenceThreshold)
	}
	if c.ML.Similarity.FuzzyThreshold < 0 || c.ML.Similarity.FuzzyThreshold > 1 {
		return fmt.Errorf("%w: fuzzy threshold must be between 0 and 1, got %.2f", common.ErrInvalidConfig, c.ML.Similarity.FuzzyThreshold)
	}
	if c.ML.Similarity.CosineThreshold < 0 || c.ML.Similarity.CosineThreshold > 1 {
		return fmt.Errorf("%w: cosine threshold must be between 0 and 1, got %.2f", common.ErrInvalidConfig, c.ML.Similarity.CosineThreshold)
	}
	if c.ML.MaxSuggestions <= 0 {
		return fmt.Errorf("%w: max suggestions must be positive, got %d", common.ErrInvalidConfig, c.ML.MaxSuggestions)
	}
	if c.ML.FeatureExtraction.MinPatternLength > c.ML.FeatureExtraction.MaxPatternLength {
		return fmt.Errorf("%w: min pattern length must not exceed max pattern length", common.ErrInvalidConfig)
	}
	if c.ML.Models.TFIDF.NgramMin < 1 || c.ML.Models.TFIDF.NgramMax < c.ML.Models.TFIDF.NgramMin {
		return fmt.Errorf("%w: invalid ngram range [%d, %d]", common.ErrInvalidConfig, c.ML.Models.TFIDF.NgramMin, c.ML.Models.TFIDF.NgramMax)
	}
	return nil
}
