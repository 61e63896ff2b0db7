package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func txn(date string, description string, amount string, source string) Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return Transaction{
		Date:           d,
		RawDescription: description,
		Amount:         decimal.RequireFromString(amount),
		Source:         source,
	}
}

func TestGenerateHash(t *testing.T) {
	base := txn("2025-01-15", "STARBUCKS STORE 04411", "5.75", "amex")

	t.Run("stable across calls", func(t *testing.T) {
		assert.Equal(t, base.GenerateHash(), base.GenerateHash())
	})

	t.Run("amount representation does not matter", func(t *testing.T) {
		other := txn("2025-01-15", "STARBUCKS STORE 04411", "5.750", "amex")
		assert.Equal(t, base.GenerateHash(), other.GenerateHash())
	})

	t.Run("any field change changes the hash", func(t *testing.T) {
		variants := []Transaction{
			txn("2025-01-16", "STARBUCKS STORE 04411", "5.75", "amex"),
			txn("2025-01-15", "STARBUCKS STORE 04412", "5.75", "amex"),
			txn("2025-01-15", "STARBUCKS STORE 04411", "5.76", "amex"),
			txn("2025-01-15", "STARBUCKS STORE 04411", "5.75", "boa"),
		}
		for _, v := range variants {
			assert.NotEqual(t, base.GenerateHash(), v.GenerateHash())
		}
	})
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", txn("2025-03-31", "X", "1", "test").MonthKey())
	assert.Equal(t, "2024-12", txn("2024-12-01", "X", "1", "test").MonthKey())
}

func TestMerchantKey(t *testing.T) {
	assert.Equal(t, "costco", MerchantKey("Costco"))
	assert.Equal(t, "costco gas", MerchantKey("  Costco Gas "))
	assert.Equal(t, MerchantKey("NETFLIX"), MerchantKey("netflix"))
}
