package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/yurifrl/burnrate/pkg/models"
)

const maxXLSRows = 100000

// ParseStatementXLS reads legacy Excel exports that carry the same columns
// as the CSV export. Leading blank rows before the header are skipped.
func (p *Parser) ParseStatementXLS(data []byte) (*models.Statement, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(maxXLSRows)
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyStatement
	}

	stmt, err := newStatement(rows)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("statement xls parsed", "columns", stmt.Header, "records", len(stmt.Records))
	return stmt, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
