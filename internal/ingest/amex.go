package ingest

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/Veraticus/tally/internal/model"
)

// amexRow is one line of an AMEX activity export.
type amexRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
}

// ParseAmex parses an AMEX CSV export. AMEX exports may use negative amounts
// for charges; all non-zero rows are normalized to positive money-out
// amounts, and zero rows are skipped.
func ParseAmex(r io.Reader) ([]model.Transaction, error) {
	var rows []*amexRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse AMEX CSV: %w", err)
	}

	var txns []model.Transaction
	for _, row := range rows {
		amount, err := ParseAmount(row.Amount, ".")
		if err != nil {
			continue
		}
		if amount.IsZero() {
			continue
		}

		date, err := time.Parse("01/02/2006", row.Date)
		if err != nil {
			continue
		}

		txn := model.Transaction{
			Date:           date,
			RawDescription: row.Description,
			Amount:         amount.Abs(),
			Source:         "AMEX",
		}
		txn.Hash = txn.GenerateHash()
		txn.ID = txn.Hash[:16]
		txns = append(txns, txn)
	}

	return txns, nil
}
