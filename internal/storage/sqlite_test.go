package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermind/ledgermind/internal/common"
	"github.com/ledgermind/ledgermind/internal/config"
	"github.com/ledgermind/ledgermind/internal/model"
	"github.com/ledgermind/ledgermind/internal/similarity"
)

func newTestStore(t *testing.T) *FeedbackStore {
	t.Helper()

	cfg := config.Default()
	matcher := similarity.NewEngine(cfg.ML.Similarity, cfg.ML.Models.TFIDF)

	store, err := NewFeedbackStore(filepath.Join(t.TempDir(), "feedback.db"), matcher)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func testRecord(id, description, category string, action model.UserAction) model.FeedbackRecord {
	return model.FeedbackRecord{
		ID:             id,
		CreatedAt:      time.Now(),
		Fingerprint:    "fp-" + id,
		SuggestionType: model.SuggestionTypeCategory,
		SuggestedValue: category,
		Description:    description,
		UserAction:     action,
	}
}

func TestNewFeedbackStoreValidation(t *testing.T) {
	cfg := config.Default()
	matcher := similarity.NewEngine(cfg.ML.Similarity, cfg.ML.Models.TFIDF)

	_, err := NewFeedbackStore("", matcher)
	assert.Error(t, err)

	_, err = NewFeedbackStore(filepath.Join(t.TempDir(), "feedback.db"), nil)
	assert.Error(t, err)
}

func TestSaveFeedback(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.SaveFeedback(ctx, testRecord("r1", "swiggy order bangalore", "food", model.ActionAccepted))
	assert.NoError(t, err)
}

func TestSaveFeedbackRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	record := testRecord("r1", "swiggy order bangalore", "food", model.ActionAccepted)
	require.NoError(t, store.SaveFeedback(ctx, record))

	err := store.SaveFeedback(ctx, record)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestSaveFeedbackRejectsInvalidRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	invalid := testRecord("r1", "swiggy order", "food", model.ActionAccepted)
	invalid.Fingerprint = ""
	assert.Error(t, store.SaveFeedback(ctx, invalid))

	missingID := testRecord("", "swiggy order", "food", model.ActionAccepted)
	assert.Error(t, store.SaveFeedback(ctx, missingID))
}

func TestSaveFeedbackRejectsCancelledContext(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.SaveFeedback(ctx, testRecord("r1", "swiggy order", "food", model.ActionAccepted))
	assert.Error(t, err)
}

func TestFindSimilarHistorical(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveFeedback(ctx, testRecord("r1", "swiggy order bangalore", "food", model.ActionAccepted)))
	require.NoError(t, store.SaveFeedback(ctx, testRecord("r2", "electricity bill mumbai", "utility", model.ActionAccepted)))

	matches, err := store.FindSimilarHistorical(ctx, "swiggy order")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "food", matches[0].Category)
	assert.GreaterOrEqual(t, matches[0].Score, 0.8)
}

func TestFindSimilarHistoricalIgnoresRejectedFeedback(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveFeedback(ctx, testRecord("r1", "swiggy order bangalore", "food", model.ActionRejected)))

	matches, err := store.FindSimilarHistorical(ctx, "swiggy order")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindSimilarHistoricalPrefersFinalValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	record := testRecord("r1", "swiggy order bangalore", "shopping", model.ActionAccepted)
	record.FinalValue = "food"
	require.NoError(t, store.SaveFeedback(ctx, record))

	matches, err := store.FindSimilarHistorical(ctx, "swiggy order")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "food", matches[0].Category)
}

func TestFindSimilarHistoricalLatestCategorizationWins(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	older := testRecord("r1", "swiggy order bangalore", "shopping", model.ActionAccepted)
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.SaveFeedback(ctx, older))
	require.NoError(t, store.SaveFeedback(ctx, testRecord("r2", "swiggy order bangalore", "food", model.ActionAccepted)))

	matches, err := store.FindSimilarHistorical(ctx, "swiggy order")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "food", matches[0].Category)
}

func TestFindSimilarHistoricalEmptyDescription(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	matches, err := store.FindSimilarHistorical(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, matches)
}

func TestFeedbackStoreAccumulates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		record := testRecord(fmt.Sprintf("r%d", i), "swiggy order bangalore", "food", model.ActionAccepted)
		require.NoError(t, store.SaveFeedback(ctx, record))
	}

	// Identical descriptions collapse to one match
	matches, err := store.FindSimilarHistorical(ctx, "swiggy order bangalore")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
