package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/tally/internal/model"
)

func txnsAt(locations ...string) []model.Transaction {
	txns := make([]model.Transaction, len(locations))
	for i, loc := range locations {
		txns[i] = model.Transaction{Location: loc}
	}
	return txns
}

func TestTravelDetector_IsTravel(t *testing.T) {
	detector := NewTravelDetector([]string{"WA", "or"})

	tests := []struct {
		name     string
		location string
		want     bool
	}{
		{"home state", "WA", false},
		{"home state lowercase config", "OR", false},
		{"home state mixed case input", "wa", false},
		{"away domestic", "CA", true},
		{"away international", "GBR", true},
		{"no location", "", false},
		{"whitespace only", "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.IsTravel(tt.location))
		})
	}
}

func TestDetectHome(t *testing.T) {
	txns := txnsAt("WA", "CA", "WA", "", "wa", "CA", "", "")
	assert.Equal(t, "WA", DetectHome(txns))
}

func TestDetectHome_Empty(t *testing.T) {
	assert.Equal(t, "", DetectHome(nil))
	assert.Equal(t, "", DetectHome(txnsAt("", "", "")))
}

func TestDetectHome_TieBreaksLexically(t *testing.T) {
	assert.Equal(t, "OR", DetectHome(txnsAt("WA", "OR", "OR", "WA")))
}
