package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/burnrate/pkg/models"
)

var (
	ErrInputIO         = errors.New("cannot read statement")
	ErrEmptyStatement  = errors.New("statement has no header row")
	ErrMalformedCSV    = errors.New("malformed statement csv")
	ErrUnsupportedType = errors.New("unsupported statement type")
)

type FileType string

const (
	StatementCSV FileType = "statement_csv"
	StatementXLS FileType = "statement_xls"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// LoadFile reads the statement at path and returns its raw rows.
func (p *Parser) LoadFile(path string) (*models.Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInputIO, path, err)
	}

	stmt, err := p.ProcessBytes(data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	stmt.Source = path
	return stmt, nil
}

func (p *Parser) ProcessBytes(data []byte, filename string) (*models.Statement, error) {
	fileType := detectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	switch fileType {
	case StatementCSV:
		return p.ParseStatementCSV(data)
	case StatementXLS:
		return p.ParseStatementXLS(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filename)
	}
}

// detectType falls back to CSV for unknown extensions since most bank
// exports are served as .csv, .txt or without an extension at all.
func detectType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return StatementXLS
	case ".xlsx":
		return ""
	default:
		return StatementCSV
	}
}

// newStatement pairs every row with the header. Cells beyond the header are
// ignored and short rows simply miss the trailing keys.
func newStatement(rows [][]string) (*models.Statement, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyStatement
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = cleanHeader(h)
	}

	stmt := &models.Statement{
		Header:  header,
		Records: make([]models.Record, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		rec := make(models.Record, len(header))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			if header[i] == "" {
				continue
			}
			rec[header[i]] = cell
		}
		stmt.Records = append(stmt.Records, rec)
	}
	return stmt, nil
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}
