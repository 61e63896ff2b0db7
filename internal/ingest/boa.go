package ingest

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/Veraticus/tally/internal/model"
)

// Fixed-column statement line: MM/DD/YYYY  Description  Amount  Balance.
var boaLine = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.+?)\s+(-?[\d,]+\.\d{2})\s+(-?[\d,]+\.\d{2})$`)

// ParseBoa parses a Bank of America fixed-column statement. Statement debits
// are negative; they are flipped to positive money-out amounts, and credits
// (deposits, refunds) are skipped. Lines that do not fit the column layout
// are ignored.
func ParseBoa(r io.Reader) ([]model.Transaction, error) {
	var txns []model.Transaction

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := boaLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		date, err := time.Parse("01/02/2006", m[1])
		if err != nil {
			continue
		}

		amount, err := ParseAmount(m[3], ".")
		if err != nil {
			continue
		}
		if amount.Sign() >= 0 {
			continue
		}

		txn := model.Transaction{
			Date:           date,
			RawDescription: m[2],
			Amount:         amount.Abs(),
			Source:         "BOA",
		}
		txn.Hash = txn.GenerateHash()
		txn.ID = txn.Hash[:16]
		txns = append(txns, txn)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statement: %w", err)
	}

	return txns, nil
}
