package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/model"
)

var (
	severityCase = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	unclosedTag  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in real-world OFX files:
// leading whitespace before the header, mixed-case SEVERITY values, and
// SGML-style tags missing their closing bracket.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityCase.ReplaceAllStringFunc(content, strings.ToUpper)
	content = unclosedTag.ReplaceAllString(content, "$1>")
	return content
}

// ParseOFX parses an OFX/QFX statement download. Bank and credit card
// statements are both handled; debit amounts (negative in OFX) are
// normalized to positive money-out values.
func ParseOFX(r io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var txns []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			bankStmts++
			for _, ofxTx := range stmt.BankTranList.Transactions {
				txns = append(txns, convertOFX(ofxTx))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			ccStmts++
			for _, ofxTx := range stmt.BankTranList.Transactions {
				txns = append(txns, convertOFX(ofxTx))
			}
		}
	}

	slog.Debug("parsed OFX file",
		"transactions", len(txns),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return txns, nil
}

func convertOFX(ofxTx ofxgo.Transaction) model.Transaction {
	// OFX uses negative amounts for debits.
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2).Neg()

	description := string(ofxTx.Name)
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		description = string(ofxTx.Payee.Name)
	} else if ofxTx.Memo != "" && isGenericDescription(description) {
		description = string(ofxTx.Memo)
	}

	txn := model.Transaction{
		ID:             string(ofxTx.FiTID),
		Date:           ofxTx.DtPosted.Time,
		RawDescription: strings.TrimSpace(description),
		Amount:         amount,
		Source:         "OFX",
	}
	txn.Hash = txn.GenerateHash()
	if txn.ID == "" {
		txn.ID = txn.Hash[:16]
	}
	return txn
}

// isGenericDescription checks if a transaction name carries no merchant
// information, in which case the memo field is preferred.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
