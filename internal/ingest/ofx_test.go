package ingest

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20250101120000[0:GMT]
<DTEND>20250131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250115120000[0:GMT]
<TRNAMT>-54.12
<FITID>2025011501
<NAME>TRADER JOES #145
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250120120000[0:GMT]
<TRNAMT>-15.99
<FITID>2025012001
<NAME>DEBIT
<MEMO>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20250131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseOFX(t *testing.T) {
	txns, err := ParseOFX(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	// OFX debits are negative; money out is positive here.
	assert.Equal(t, "TRADER JOES #145", txns[0].RawDescription)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("54.12")), "got %s", txns[0].Amount)
	assert.Equal(t, "2025011501", txns[0].ID)
	assert.Equal(t, "OFX", txns[0].Source)
	assert.Equal(t, 2025, txns[0].Date.Year())

	// A generic NAME falls back to the memo.
	assert.Equal(t, "NETFLIX.COM", txns[1].RawDescription)
}

func TestParseOFX_ToleratesSloppyFiles(t *testing.T) {
	// Leading whitespace before the header shows up in real bank downloads.
	sloppy := "\n  " + sampleBankOFX

	txns, err := ParseOFX(strings.NewReader(sloppy))
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestParseOFX_Garbage(t *testing.T) {
	_, err := ParseOFX(strings.NewReader("this is not an OFX file"))
	assert.Error(t, err)
}

func TestPreprocessOFX(t *testing.T) {
	input := "  \n<OFX>\n<SEVERITY>Info</SEVERITY>\n<DTSERVER\n"
	got := preprocessOFX(input)
	assert.True(t, strings.HasPrefix(got, "<OFX>"))
	assert.Contains(t, got, "<SEVERITY>INFO</SEVERITY>")
	assert.Contains(t, got, "<DTSERVER>")
}

func TestIsGenericDescription(t *testing.T) {
	assert.True(t, isGenericDescription("DEBIT"))
	assert.True(t, isGenericDescription("Purchase"))
	assert.False(t, isGenericDescription("TRADER JOES"))
}
