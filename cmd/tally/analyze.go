package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/tally/internal/classify"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Classify spending patterns from statement files or the local database",
		Long: `Analyze runs the full pipeline over a batch of transactions: rule
matching, travel detection, per-merchant aggregation and temporal
classification. With file arguments it parses the given statements; without
any it reads previously imported transactions from the local database.`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("rules", "r", "", "rule file (overrides config)")
	cmd.Flags().StringP("format", "f", "auto", "input format (auto, csv, amex, boa, ofx)")
	cmd.Flags().Bool("traces", false, "show the per-merchant decision trace")
	cmd.Flags().Bool("save", false, "persist this run's classifications to the database")
	cmd.Flags().String("as-of", "", "anchor date for relative rule modifiers (format: 2006-01-02, default today)")

	_ = viper.BindPFlag("rules.path", cmd.Flags().Lookup("rules"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := config.Load()
	if err != nil {
		return err
	}

	rules, err := loadRules(settings.RuleFile)
	if err != nil {
		return err
	}

	now := time.Now()
	if asOf, _ := cmd.Flags().GetString("as-of"); asOf != "" {
		now, err = time.Parse("2006-01-02", asOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date: %w", err)
		}
	}

	eng, err := engine.New(rules, engine.Config{
		Now:           now,
		HomeLocations: settings.HomeLocations,
		Thresholds: classify.Thresholds{
			BillRatio:       settings.Thresholds.BillRatio,
			MinActiveMonths: settings.Thresholds.MinActiveMonths,
			ConsistencyCV:   settings.Thresholds.ConsistencyCV,
		},
	})
	if err != nil {
		return err
	}

	var txns []model.Transaction
	if len(args) > 0 {
		format, _ := cmd.Flags().GetString("format")
		txns, err = loadTransactionFiles(args, format, settings.DecimalSeparator)
	} else {
		var store *storage.SQLiteStorage
		store, err = storage.NewSQLiteStorage(settings.DatabasePath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		txns, err = store.GetTransactions(ctx, service.TransactionFilter{})
	}
	if err != nil {
		return err
	}

	analysis, err := eng.Analyze(txns)
	if err != nil {
		return err
	}

	showTraces, _ := cmd.Flags().GetBool("traces")
	fmt.Print(report.Summary(analysis, report.Options{
		ShowTraces:   showTraces,
		TravelLabels: settings.TravelLabels,
	}))

	if save, _ := cmd.Flags().GetBool("save"); save {
		store, err := storage.NewSQLiteStorage(settings.DatabasePath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		if err := store.SaveRun(ctx, now, analysis.Classifications); err != nil {
			return err
		}
	}

	return nil
}
