package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackRecordChosenValue(t *testing.T) {
	tests := []struct {
		name   string
		record FeedbackRecord
		want   string
	}{
		{
			name:   "accepted keeps suggested value",
			record: FeedbackRecord{SuggestedValue: "food", UserAction: ActionAccepted},
			want:   "food",
		},
		{
			name:   "modified prefers final value",
			record: FeedbackRecord{SuggestedValue: "shopping", FinalValue: "fuel", UserAction: ActionModified},
			want:   "fuel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.ChosenValue())
		})
	}
}

func TestFeedbackRecordValidate(t *testing.T) {
	valid := FeedbackRecord{
		Fingerprint:    "abc123",
		SuggestionType: SuggestionTypeCategory,
		SuggestedValue: "food",
		UserAction:     ActionAccepted,
	}
	assert.NoError(t, valid.Validate())

	missingFingerprint := valid
	missingFingerprint.Fingerprint = ""
	assert.Error(t, missingFingerprint.Validate())

	missingType := valid
	missingType.SuggestionType = ""
	assert.Error(t, missingType.Validate())

	badAction := valid
	badAction.UserAction = "shrugged"
	assert.Error(t, badAction.Validate())
}
