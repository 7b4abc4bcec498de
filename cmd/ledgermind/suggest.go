package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgermind/ledgermind/internal/cli"
	"github.com/ledgermind/ledgermind/internal/config"
	"github.com/ledgermind/ledgermind/internal/model"
)

func suggestCmd() *cobra.Command {
	var (
		txnFlags transactionFlags
		similar  []string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest categories for a transaction",
		Long: `Analyze a transaction description and print ranked category suggestions,
an enumerated category guess, a matching regex pattern, and candidate reasons.`,
		Example: `  ledgermind suggest -d "UPI-SWIGGY-DELIVERY-9876543210@PAYTM" --debit 450
  ledgermind suggest -d "AMAZON PAY INDIA" --debit 1299 --date 2024-03-15`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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

			summary := eng.Summary(ctx, txn)
			fmt.Println(renderSummary(txn, summary))

			if len(similar) > 0 {
				if pattern := eng.SuggestRegexPattern(ctx, txn.Description, similar); pattern != nil {
					fmt.Println(cli.BoldStyle.Render("Pattern from similar transactions:"))
					fmt.Printf("  %s (%s)\n", pattern.Pattern, cli.FormatConfidence(pattern.Confidence))
				}
			}

			return nil
		},
	}

	registerTransactionFlags(cmd, &txnFlags)
	cmd.Flags().StringSliceVar(&similar, "similar", nil, "descriptions of similar transactions for pattern synthesis")

	return cmd
}

// renderSummary formats a suggestion summary for terminal output.
func renderSummary(txn model.Transaction, summary model.SuggestionSummary) string {
	var b strings.Builder

	b.WriteString(cli.FormatTitle("Suggestions for: " + txn.Description))
	b.WriteString("\n\n")

	if len(summary.Categories) == 0 {
		b.WriteString(cli.InfoStyle.Render("No category suggestions."))
		b.WriteString("\n")
	} else {
		b.WriteString(cli.BoldStyle.Render("Categories:"))
		b.WriteString("\n")
		for i, s := range summary.Categories {
			b.WriteString(fmt.Sprintf("  %d. %s (%s, %s)\n",
				i+1, s.Category, cli.FormatConfidence(s.Confidence), s.Source))
			b.WriteString(cli.SubtleStyle.Render("     " + s.Reasoning))
			b.WriteString("\n")
		}
	}

	if len(summary.EnumCategories) > 0 {
		b.WriteString("\n")
		b.WriteString(cli.BoldStyle.Render("Enumerated categories:"))
		b.WriteString("\n")
		for _, s := range summary.EnumCategories {
			b.WriteString(fmt.Sprintf("  - %s (%s)\n", s.Category, cli.FormatConfidence(s.Confidence)))
		}
	}

	if summary.RegexPattern != nil {
		b.WriteString("\n")
		b.WriteString(cli.BoldStyle.Render("Matching pattern:"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s (%s)\n",
			summary.RegexPattern.Pattern, cli.FormatConfidence(summary.RegexPattern.Confidence)))
	}

	if len(summary.Reasons) > 0 {
		b.WriteString("\n")
		b.WriteString(cli.BoldStyle.Render("Suggested reasons:"))
		b.WriteString("\n")
		for _, r := range summary.Reasons {
			b.WriteString(fmt.Sprintf("  - %s\n", r.Reason))
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Overall confidence: %s", cli.FormatConfidence(summary.OverallConfidence)))

	return b.String()
}
