package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySuggestionsSort(t *testing.T) {
	suggestions := CategorySuggestions{
		{Category: "transport", Confidence: 0.6},
		{Category: "food", Confidence: 0.9},
		{Category: "shopping", Confidence: 0.6},
	}

	suggestions.Sort()

	assert.Equal(t, "food", suggestions[0].Category)
	// Equal confidences break ties alphabetically
	assert.Equal(t, "shopping", suggestions[1].Category)
	assert.Equal(t, "transport", suggestions[2].Category)
}

func TestCategorySuggestionsTopN(t *testing.T) {
	suggestions := CategorySuggestions{
		{Category: "food", Confidence: 0.9},
		{Category: "transport", Confidence: 0.6},
		{Category: "shopping", Confidence: 0.3},
	}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "fewer than available", n: 2, want: 2},
		{name: "more than available", n: 10, want: 3},
		{name: "zero", n: 0, want: 0},
		{name: "negative", n: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := suggestions.TopN(tt.n)
			assert.Len(t, top, tt.want)
			if tt.want > 0 {
				assert.Equal(t, "food", top[0].Category)
			}
		})
	}
}

func TestCategorySuggestionValidate(t *testing.T) {
	tests := []struct {
		name       string
		suggestion CategorySuggestion
		wantErr    bool
	}{
		{
			name:       "valid",
			suggestion: CategorySuggestion{Category: "food", Confidence: 0.8},
		},
		{
			name:       "missing category",
			suggestion: CategorySuggestion{Confidence: 0.8},
			wantErr:    true,
		},
		{
			name:       "confidence too high",
			suggestion: CategorySuggestion{Category: "food", Confidence: 1.5},
			wantErr:    true,
		},
		{
			name:       "confidence negative",
			suggestion: CategorySuggestion{Category: "food", Confidence: -0.1},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.suggestion.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
