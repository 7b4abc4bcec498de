package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgermind/ledgermind/internal/classifier"
	"github.com/ledgermind/ledgermind/internal/common"
	"github.com/ledgermind/ledgermind/internal/config"
	"github.com/ledgermind/ledgermind/internal/engine"
	"github.com/ledgermind/ledgermind/internal/model"
	"github.com/ledgermind/ledgermind/internal/similarity"
	"github.com/ledgermind/ledgermind/internal/storage"
)

// transactionFlags holds the flag values shared by commands that operate on a
// single transaction.
type transactionFlags struct {
	description string
	date        string
	reference   string
	debit       float64
	credit      float64
}

func registerTransactionFlags(cmd *cobra.Command, flags *transactionFlags) {
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "transaction description (required)")
	cmd.Flags().Float64Var(&flags.debit, "debit", 0, "debit amount")
	cmd.Flags().Float64Var(&flags.credit, "credit", 0, "credit amount")
	cmd.Flags().StringVar(&flags.date, "date", "", "transaction date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&flags.reference, "ref", "", "reference number")
	_ = cmd.MarkFlagRequired("description")
}

// transaction builds a model.Transaction from the parsed flags. Amounts are
// only set when their flag was explicitly passed, so a zero debit stays
// distinguishable from an absent one.
func (f *transactionFlags) transaction(cmd *cobra.Command) (model.Transaction, error) {
	txn := model.Transaction{
		Description:     f.description,
		ReferenceNumber: f.reference,
	}

	if cmd.Flags().Changed("debit") {
		debit := f.debit
		txn.DebitAmount = &debit
	}
	if cmd.Flags().Changed("credit") {
		credit := f.credit
		txn.CreditAmount = &credit
	}

	if f.date != "" {
		date, err := parseDate(f.date)
		if err != nil {
			return model.Transaction{}, err
		}
		txn.Date = date
	}

	return txn, nil
}

func parseDate(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", value)
	}
	return date, nil
}

// buildEngine wires the suggestion engine from configuration. When a storage
// path is configured the SQLite feedback store backs historical matching;
// otherwise the engine runs without history. The returned store may be nil.
func buildEngine(cfg config.Config) (*engine.Engine, *storage.FeedbackStore, error) {
	var store *storage.FeedbackStore
	if cfg.Storage.Path != "" {
		matcher := similarity.NewEngine(cfg.ML.Similarity, cfg.ML.Models.TFIDF)
		var err error
		store, err = storage.NewFeedbackStore(cfg.Storage.Path, matcher)
		if err != nil {
			return nil, nil, common.NewUserError("failed to open feedback store", err)
		}
	}

	var history engine.HistoricalMatcher
	if store != nil {
		history = store
	}

	return engine.New(cfg, classifier.NewBayesClassifier(cfg.ML.Models.TFIDF), history), store, nil
}
