package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermind/ledgermind/internal/common"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.ML.Enabled)
	assert.InDelta(t, DefaultConfidenceThreshold, cfg.ML.ConfidenceThreshold, 0.001)
	assert.Equal(t, DefaultMaxSuggestions, cfg.ML.MaxSuggestions)
	assert.Equal(t, DefaultTFIDFMaxFeatures, cfg.ML.Models.TFIDF.MaxFeatures)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverlaysViperValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("ml.confidence_threshold", 0.75)
	viper.Set("ml.max_suggestions", 3)
	viper.Set("ml.similarity.fuzzy_threshold", 0.9)
	viper.Set("storage.path", "/tmp/feedback.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 0.75, cfg.ML.ConfidenceThreshold, 0.001)
	assert.Equal(t, 3, cfg.ML.MaxSuggestions)
	assert.InDelta(t, 0.9, cfg.ML.Similarity.FuzzyThreshold, 0.001)
	assert.Equal(t, "/tmp/feedback.db", cfg.Storage.Path)

	// Untouched keys keep their defaults
	assert.InDelta(t, DefaultCosineThreshold, cfg.ML.Similarity.CosineThreshold, 0.001)
	assert.Equal(t, DefaultTFIDFMinDocFreq, cfg.ML.Models.TFIDF.MinDocFreq)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("ml.confidence_threshold", 1.5)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		mutate  func(*Config)
		name    string
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(_ *Config) {},
		},
		{
			name:    "confidence threshold out of range",
			mutate:  func(c *Config) { c.ML.ConfidenceThreshold = -0.1 },
			wantErr: true,
		},
		{
			name:    "fuzzy threshold out of range",
			mutate:  func(c *Config) { c.ML.Similarity.FuzzyThreshold = 2.0 },
			wantErr: true,
		},
		{
			name:    "max suggestions must be positive",
			mutate:  func(c *Config) { c.ML.MaxSuggestions = 0 },
			wantErr: true,
		},
		{
			name:    "inverted pattern length window",
			mutate:  func(c *Config) { c.ML.FeatureExtraction.MinPatternLength = 100 },
			wantErr: true,
		},
		{
			name:    "inverted ngram range",
			mutate:  func(c *Config) { c.ML.Models.TFIDF.NgramMin = 3 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
