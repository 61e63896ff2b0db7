// Package config loads application settings from Viper-backed configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/tally/internal/classify"
)

// Settings holds the user-tunable inputs threaded into the analysis engine.
type Settings struct {
	RuleFile         string
	DatabasePath     string
	HomeLocations    []string
	TravelLabels     map[string]string // location code -> display name
	DecimalSeparator string
	Thresholds       classify.Thresholds
}

// Load reads settings from Viper. Viper must already have its config file
// read; unset keys fall back to defaults (classification thresholds default
// inside the classifier).
func Load() (*Settings, error) {
	s := &Settings{
		RuleFile:         ExpandPath(viper.GetString("rules.path")),
		DatabasePath:     ExpandPath(viper.GetString("storage.path")),
		HomeLocations:    viper.GetStringSlice("travel.home_locations"),
		TravelLabels:     viper.GetStringMapString("travel.labels"),
		DecimalSeparator: viper.GetString("format.decimal_separator"),
		Thresholds: classify.Thresholds{
			BillRatio:       viper.GetFloat64("classification.bill_threshold"),
			MinActiveMonths: viper.GetInt("classification.min_active_months"),
			ConsistencyCV:   viper.GetFloat64("classification.consistency_cv"),
		},
	}

	if s.DatabasePath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			s.DatabasePath = filepath.Join(home, ".local", "share", "tally", "tally.db")
		}
	}

	return s, nil
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
