package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/ingest"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/rule"
)

// loadTransactionFiles parses each input file, picking a parser from the
// format flag or, when set to auto, from the file name.
func loadTransactionFiles(paths []string, format, decimalSeparator string) ([]model.Transaction, error) {
	var all []model.Transaction

	for _, path := range paths {
		f, err := os.Open(config.ExpandPath(path))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}

		var txns []model.Transaction
		switch resolveFormat(format, path) {
		case "amex":
			txns, err = ingest.ParseAmex(f)
		case "boa":
			txns, err = ingest.ParseBoa(f)
		case "ofx":
			txns, err = ingest.ParseOFX(f)
		default:
			txns, err = ingest.ParseCSV(f, ingest.FormatSpec{
				DateColumn:        0,
				DescriptionColumn: 1,
				AmountColumn:      2,
				LocationColumn:    -1,
				HasHeader:         true,
				DecimalSeparator:  decimalSeparator,
			})
		}
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		all = append(all, txns...)
	}

	return all, nil
}

func resolveFormat(format, path string) string {
	if format != "" && format != "auto" {
		return format
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return "ofx"
	case ".txt":
		return "boa"
	}

	name := strings.ToLower(filepath.Base(path))
	if strings.Contains(name, "amex") {
		return "amex"
	}
	return "csv"
}

// loadRules reads the user's rule file and appends the built-in baseline
// rules after it, so user rules always win. A missing rule file is not an
// error; matching then falls through to the baseline and discovery.
func loadRules(path string) ([]model.Rule, error) {
	var user []model.Rule
	if path != "" {
		path = config.ExpandPath(path)
		if _, err := os.Stat(path); err == nil {
			user, err = rule.LoadFile(path, model.RuleSourceUser)
			if err != nil {
				return nil, err
			}
		}
	}
	return append(user, rule.BuiltinRules()...), nil
}
