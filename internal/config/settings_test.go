package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("rules.path", "/tmp/rules.csv")
	viper.Set("storage.path", "/tmp/tally.db")
	viper.Set("travel.home_locations", []string{"WA", "OR"})
	viper.Set("travel.labels", map[string]string{"jp": "Japan trip"})
	viper.Set("classification.bill_threshold", 0.6)
	viper.Set("classification.min_active_months", 4)

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/rules.csv", s.RuleFile)
	assert.Equal(t, "/tmp/tally.db", s.DatabasePath)
	assert.Equal(t, []string{"WA", "OR"}, s.HomeLocations)
	assert.Equal(t, "Japan trip", s.TravelLabels["jp"])
	assert.InDelta(t, 0.6, s.Thresholds.BillRatio, 0.001)
	assert.Equal(t, 4, s.Thresholds.MinActiveMonths)
	// Unset thresholds stay zero; the classifier applies its defaults.
	assert.Zero(t, s.Thresholds.ConsistencyCV)
}

func TestLoad_DefaultDatabasePath(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	s, err := Load()
	require.NoError(t, err)
	assert.Contains(t, s.DatabasePath, filepath.Join("tally", "tally.db"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"absolute untouched", "/etc/tally.yaml", "/etc/tally.yaml"},
		{"tilde slash", "~/rules.csv", filepath.Join(home, "rules.csv")},
		{"bare tilde", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestExpandPath_EnvVars(t *testing.T) {
	t.Setenv("TALLY_TEST_DIR", "/data")
	assert.Equal(t, "/data/rules.csv", ExpandPath("$TALLY_TEST_DIR/rules.csv"))
}
