// Package storage persists suggestion feedback and serves historical
// similarity lookups over it, backed by SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/ledgermind/ledgermind/internal/common"
	"github.com/ledgermind/ledgermind/internal/engine"
	"github.com/ledgermind/ledgermind/internal/model"
	"github.com/ledgermind/ledgermind/internal/similarity"
)

// Ensure FeedbackStore satisfies the engine's optional collaborator contract.
var _ engine.HistoricalMatcher = (*FeedbackStore)(nil)

// FeedbackStore implements feedback persistence and historical matching
// using SQLite.
type FeedbackStore struct {
	db      *sql.DB
	matcher *similarity.Engine
	dbPath  string
}

// NewFeedbackStore creates a new SQLite feedback store.
func NewFeedbackStore(dbPath string, matcher *similarity.Engine) (*FeedbackStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}
	if matcher == nil {
		return nil, fmt.Errorf("similarity matcher is required")
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &FeedbackStore{
		db:      db,
		matcher: matcher,
		dbPath:  dbPath,
	}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate creates the feedback schema when it does not exist yet.
func (s *FeedbackStore) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS ml_feedback (
		id TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		suggestion_type TEXT NOT NULL,
		suggested_value TEXT NOT NULL,
		user_action TEXT NOT NULL,
		final_value TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		features_snapshot TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_ml_feedback_action_type
		ON ml_feedback(user_action, suggestion_type);
	CREATE INDEX IF NOT EXISTS idx_ml_feedback_fingerprint
		ON ml_feedback(fingerprint);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create feedback schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *FeedbackStore) Close() error {
	return s.db.Close()
}

// SaveFeedback persists one feedback record.
func (s *FeedbackStore) SaveFeedback(ctx context.Context, record model.FeedbackRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid feedback record: %w", err)
	}
	if err := validateString(record.ID, "record ID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ml_feedback
			(id, fingerprint, suggestion_type, suggested_value, user_action,
			 final_value, description, features_snapshot, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Fingerprint,
		record.SuggestionType,
		record.SuggestedValue,
		string(record.UserAction),
		record.FinalValue,
		record.Description,
		record.FeaturesSnapshot,
		record.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: feedback record %s", common.ErrDuplicateEntry, record.ID)
		}
		return fmt.Errorf("failed to save feedback record: %w", err)
	}
	return nil
}

// FindSimilarHistorical returns categories of accepted feedback whose
// descriptions are similar to the given one, with their similarity scores.
func (s *FeedbackStore) FindSimilarHistorical(ctx context.Context, description string) ([]engine.HistoricalMatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT description,
		       CASE WHEN final_value != '' THEN final_value ELSE suggested_value END
		FROM ml_feedback
		WHERE user_action = ? AND suggestion_type = ? AND description != ''
		ORDER BY created_at`,
		string(model.ActionAccepted),
		model.SuggestionTypeCategory,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query historical feedback: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categoryFor := make(map[string]string)
	var descriptions []string
	for rows.Next() {
		var desc, cat string
		if err := rows.Scan(&desc, &cat); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		if _, seen := categoryFor[desc]; !seen {
			descriptions = append(descriptions, desc)
		}
		// Latest categorization of a description wins
		categoryFor[desc] = cat
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback rows: %w", err)
	}

	var matches []engine.HistoricalMatch
	for _, m := range s.matcher.FuzzyRank(description, descriptions) {
		matches = append(matches, engine.HistoricalMatch{
			Category: categoryFor[m.Text],
			Score:    m.Score,
		})
	}
	return matches, nil
}
