package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/yurifrl/burnrate/pkg/models"
)

// ParseStatementCSV parses a comma separated statement export with a header
// row, e.g. "Details,Posting Date,Description,Amount,Type,Balance".
func (p *Parser) ParseStatementCSV(data []byte) (*models.Statement, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // exports often carry a trailing comma
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
	}

	stmt, err := newStatement(records)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("statement csv parsed", "columns", stmt.Header, "records", len(stmt.Records))
	return stmt, nil
}
