package parser

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chaseExport = `Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
DEBIT,06/15/2023,"GROCERY STORE #12",-100.00,DEBIT_CARD,1200.00,,
DEBIT,  06/20/2023, RENT,  -50.00,ACH_DEBIT,1150.00,,
CREDIT,07/01/2023,PAYROLL,2000.00,ACH_CREDIT,3150.00,,
DEBIT,07/01/2023,COFFEE
`

func newTestParser() *Parser {
	return New(log.New(io.Discard))
}

func TestParseStatementCSV(t *testing.T) {
	stmt, err := newTestParser().ParseStatementCSV([]byte(chaseExport))
	require.NoError(t, err)

	assert.Equal(t, []string{"Details", "Posting Date", "Description", "Amount", "Type", "Balance", "Check or Slip #"}, stmt.Header)
	require.Len(t, stmt.Records, 4)

	assert.Equal(t, "06/15/2023", stmt.Records[0]["Posting Date"])
	assert.Equal(t, "-100.00", stmt.Records[0]["Amount"])
	assert.Equal(t, "GROCERY STORE #12", stmt.Records[0]["Description"])

	// leading whitespace after the delimiter is dropped
	assert.Equal(t, "06/20/2023", stmt.Records[1]["Posting Date"])
	assert.Equal(t, "-50.00", stmt.Records[1]["Amount"])

	// short rows keep only the columns they have
	_, ok := stmt.Records[3]["Amount"]
	assert.False(t, ok)
}

func TestParseStatementCSV_HeaderBOM(t *testing.T) {
	stmt, err := newTestParser().ParseStatementCSV([]byte("\ufeffPosting Date , Amount\n01/02/2024,-1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Posting Date", "Amount"}, stmt.Header)
	assert.Equal(t, "-1", stmt.Records[0]["Amount"])
}

func TestParseStatementCSV_Empty(t *testing.T) {
	_, err := newTestParser().ParseStatementCSV(nil)
	assert.ErrorIs(t, err, ErrEmptyStatement)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Chase1234_Activity.CSV")
	require.NoError(t, os.WriteFile(path, []byte(chaseExport), 0644))

	stmt, err := newTestParser().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, stmt.Source)
	assert.Len(t, stmt.Records, 4)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := newTestParser().LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestProcessBytes_Unsupported(t *testing.T) {
	_, err := newTestParser().ProcessBytes([]byte("x"), "statement.xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDetectType(t *testing.T) {
	cases := map[string]FileType{
		"activity.csv":  StatementCSV,
		"ACTIVITY.CSV":  StatementCSV,
		"activity":      StatementCSV,
		"activity.txt":  StatementCSV,
		"activity.xls":  StatementXLS,
		"activity.xlsx": "",
	}
	for name, want := range cases {
		assert.Equal(t, want, detectType(name), name)
	}
}

func TestNewStatement_IgnoresUnnamedColumns(t *testing.T) {
	stmt, err := newStatement([][]string{{"Posting Date", "", "Amount"}, {"01/02/2024", "junk", "-3", "extra"}})
	require.NoError(t, err)
	assert.Equal(t, 2, len(stmt.Records[0]))
	assert.Equal(t, "-3", stmt.Records[0]["Amount"])
}

func TestBlank(t *testing.T) {
	assert.True(t, blank([]string{"", "  "}))
	assert.True(t, blank(nil))
	assert.False(t, blank([]string{"", "Amount"}))
}
