package model

import (
	"fmt"
	"time"
)

// UserAction describes what the user did with a suggestion.
type UserAction string

const (
	// ActionAccepted means the suggestion was taken as-is.
	ActionAccepted UserAction = "accepted"
	// ActionRejected means the suggestion was discarded.
	ActionRejected UserAction = "rejected"
	// ActionModified means the user replaced the suggested value.
	ActionModified UserAction = "modified"
)

// Suggestion types recorded with feedback.
const (
	SuggestionTypeCategory     = "category"
	SuggestionTypeEnumCategory = "enum_category"
	SuggestionTypeRegexPattern = "regex_pattern"
	SuggestionTypeReason       = "reason"
)

// FeedbackRecord captures the outcome of one suggestion review. Records are
// appended to the engine's training corpus and optionally persisted.
type FeedbackRecord struct {
	CreatedAt        time.Time
	ID               string
	Fingerprint      string
	SuggestionType   string
	SuggestedValue   string
	FinalValue       string
	Description      string
	FeaturesSnapshot string
	UserAction       UserAction
}

// ChosenValue returns the value the user ended up with: the final value when
// the suggestion was modified, otherwise the suggested value.
func (r *FeedbackRecord) ChosenValue() string {
	if r.FinalValue != "" {
		return r.FinalValue
	}
	return r.SuggestedValue
}

// Validate ensures the record has valid data.
func (r *FeedbackRecord) Validate() error {
	if r.Fingerprint == "" {
		return fmt.Errorf("transaction fingerprint is required")
	}
	if r.SuggestionType == "" {
		return fmt.Errorf("suggestion type is required")
	}
	switch r.UserAction {
	case ActionAccepted, ActionRejected, ActionModified:
	default:
		return fmt.Errorf("invalid user action %q", r.UserAction)
	}
	return nil
}
