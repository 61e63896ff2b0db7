package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"apple pay prefix", "APLPAY STARBUCKS #4411", "STARBUCKS #4411"},
		{"square prefix", "SQ *BLUE BOTTLE COFFEE", "BLUE BOTTLE COFFEE"},
		{"toast prefix", "TST* PIZZERIA OTTO", "PIZZERIA OTTO"},
		{"paypal prefix", "PP*SPOTIFY", "SPOTIFY"},
		{"google pay prefix", "GOOGLE *YOUTUBE TV", "YOUTUBE TV"},
		{"doordash prefix", "BT*DD*TACO TRUCK", "TACO TRUCK"},
		{"statement DES suffix", "ACME CORP DES:PAYROLL ID:12345", "ACME CORP"},
		{"confirmation suffix", "TRANSFER Confirmation# 998877", "TRANSFER"},
		{"trailing state after wide gap", "WHOLEFDS PRT 10291   OR", "WHOLEFDS PRT 10291"},
		{"whitespace collapsed", "TRADER   JOE'S  #145", "TRADER JOE'S #145"},
		{"untouched description", "NETFLIX.COM", "NETFLIX.COM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.input))
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips numbers and title-cases", "STARBUCKS STORE 04411", "Starbucks Store"},
		{"caps at three words", "THE CORNER BAKERY CAFE LLC", "The Corner Bakery"},
		{"processor prefix removed first", "SQ *BLUE BOTTLE", "Blue Bottle"},
		{"digits only", "4411 9982", "Unknown"},
		{"empty", "", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractName(tt.input))
		})
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing state code", "STARBUCKS STORE 04411 WA", "WA"},
		{"no location", "NETFLIX.COM", ""},
		{"lowercase tail is not a code", "coffee shop wa", ""},
		{"mid-string code ignored", "WA FERRY TERMINAL PARKING", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLocation(tt.input))
		})
	}
}
