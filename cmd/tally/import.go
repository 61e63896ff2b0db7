package main

import (
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/merchant"
	"github.com/Veraticus/tally/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Import statement files into the local database",
		Long: `Import parses statement files and stores normalized transactions in the
local database for later analysis. Transactions are deduplicated
automatically by content hash.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("format", "f", "auto", "input format (auto, csv, amex, boa, ofx)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := config.Load()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	txns, err := loadTransactionFiles(args, format, settings.DecimalSeparator)
	if err != nil {
		return err
	}

	// Clean descriptions at import time so the database carries both forms.
	bar := progressbar.Default(int64(len(txns)), "normalizing")
	for i := range txns {
		txns[i].CleanedDescription = merchant.CleanDescription(txns[i].RawDescription)
		if txns[i].Location == "" {
			txns[i].Location = merchant.ExtractLocation(txns[i].RawDescription)
		}
		_ = bar.Add(1)
	}

	store, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(ctx, txns); err != nil {
		return err
	}

	slog.Info("import complete", "files", len(args), "transactions", len(txns))
	return nil
}
