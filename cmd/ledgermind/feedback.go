package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgermind/ledgermind/internal/cli"
	"github.com/ledgermind/ledgermind/internal/config"
	"github.com/ledgermind/ledgermind/internal/model"
)

func feedbackCmd() *cobra.Command {
	var (
		txnFlags       transactionFlags
		suggestionType string
		suggestedValue string
		finalValue     string
		action         string
	)

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Record the outcome of a suggestion",
		Long: `Record whether a suggestion was accepted, rejected or modified. Accepted
category feedback becomes training data for the statistical classifier.`,
		Example: `  ledgermind feedback -d "UPI-SWIGGY-DELIVERY" --suggested food --action accepted
  ledgermind feedback -d "FUEL STATION HP" --suggested shopping --action modified --final fuel`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			switch suggestionType {
			case model.SuggestionTypeCategory, model.SuggestionTypeEnumCategory,
				model.SuggestionTypeRegexPattern, model.SuggestionTypeReason:
			default:
				return fmt.Errorf("invalid suggestion type %q", suggestionType)
			}

			userAction := model.UserAction(action)
			switch userAction {
			case model.ActionAccepted, model.ActionRejected, model.ActionModified:
			default:
				return fmt.Errorf("invalid action %q: expected accepted, rejected or modified", action)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			txn, err := txnFlags.transaction(cmd)
			if err != nil {
				return err
			}

			eng, store, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			if store != nil {
				defer func() { _ = store.Close() }()
			}

			if !eng.Enabled() {
				fmt.Println(cli.FormatWarning("Suggestions are disabled in configuration"))
				return nil
			}

			record := eng.ProvideFeedback(ctx, txn, suggestionType, suggestedValue, userAction, finalValue)

			if store != nil {
				if err := store.SaveFeedback(ctx, record); err != nil {
					return fmt.Errorf("failed to persist feedback: %w", err)
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s feedback for %q", action, txn.Description)))
			} else {
				fmt.Println(cli.FormatWarning("No storage path configured; feedback not persisted"))
			}

			return nil
		},
	}

	registerTransactionFlags(cmd, &txnFlags)
	cmd.Flags().StringVar(&suggestionType, "type", model.SuggestionTypeCategory, "suggestion type (category, enum_category, regex_pattern, reason)")
	cmd.Flags().StringVar(&suggestedValue, "suggested", "", "value that was suggested (required)")
	cmd.Flags().StringVar(&finalValue, "final", "", "value the user chose instead, when modified")
	cmd.Flags().StringVar(&action, "action", "", "what the user did (accepted, rejected, modified)")
	_ = cmd.MarkFlagRequired("suggested")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}
