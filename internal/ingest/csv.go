package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

// FormatSpec maps the columns of an arbitrary CSV export. Column indexes are
// zero-based; optional columns use -1.
type FormatSpec struct {
	DateColumn        int
	DateLayout        string // Go time layout; defaults to 01/02/2006
	AmountColumn      int
	DescriptionColumn int
	LocationColumn    int    // -1 when the export has no location column
	Source            string // Feed name stamped on each transaction
	DecimalSeparator  string // "." (default) or ","
	HasHeader         bool
	NegateAmount      bool // Flip signs for exports where charges are negative
}

// ParseCSV parses a CSV export using a column-mapping format spec. Rows whose
// date or amount cannot be parsed are skipped; zero amounts are skipped.
func ParseCSV(r io.Reader, spec FormatSpec) ([]model.Transaction, error) {
	if spec.DateLayout == "" {
		spec.DateLayout = "01/02/2006"
	}
	if spec.DecimalSeparator == "" {
		spec.DecimalSeparator = "."
	}
	if spec.Source == "" {
		spec.Source = "CSV"
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if spec.HasHeader && len(records) > 0 {
		records = records[1:]
	}

	maxCol := spec.DateColumn
	for _, c := range []int{spec.AmountColumn, spec.DescriptionColumn, spec.LocationColumn} {
		if c > maxCol {
			maxCol = c
		}
	}

	var txns []model.Transaction
	for _, record := range records {
		if len(record) <= maxCol {
			continue
		}

		date, err := time.Parse(spec.DateLayout, record[spec.DateColumn])
		if err != nil {
			continue
		}

		amount, err := ParseAmount(record[spec.AmountColumn], spec.DecimalSeparator)
		if err != nil || amount.IsZero() {
			continue
		}
		if spec.NegateAmount {
			amount = amount.Neg()
		}

		txn := model.Transaction{
			Date:           date,
			RawDescription: record[spec.DescriptionColumn],
			Amount:         amount,
			Source:         spec.Source,
		}
		if spec.LocationColumn >= 0 {
			txn.Location = record[spec.LocationColumn]
		}
		txn.Hash = txn.GenerateHash()
		txn.ID = txn.Hash[:16]
		txns = append(txns, txn)
	}

	return txns, nil
}
