package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/report"
)

func discoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover [files...]",
		Short: "Find unknown merchants and suggest categorization rules",
		Long: `Discover runs rule matching over the batch and clusters the
transactions no rule matched, proposing a pattern and merchant name for each
cluster. The output is advisory: paste the rows you want into your rule file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDiscover,
	}

	cmd.Flags().StringP("rules", "r", "", "rule file (overrides config)")
	cmd.Flags().StringP("format", "f", "auto", "input format (auto, csv, amex, boa, ofx)")
	cmd.Flags().IntP("limit", "l", 20, "maximum suggestions to print (0 for all)")

	return cmd
}

func runDiscover(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("rules"); path != "" {
		settings.RuleFile = path
	}

	rules, err := loadRules(settings.RuleFile)
	if err != nil {
		return err
	}

	eng, err := engine.New(rules, engine.Config{
		Now:           time.Now(),
		HomeLocations: settings.HomeLocations,
	})
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	txns, err := loadTransactionFiles(args, format, settings.DecimalSeparator)
	if err != nil {
		return err
	}

	analysis, err := eng.Analyze(txns)
	if err != nil {
		return err
	}

	suggestions := analysis.Suggestions
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	fmt.Print(report.Suggestions(suggestions))
	return nil
}
