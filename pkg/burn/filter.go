package burn

import (
	"errors"
	"fmt"

	"github.com/yurifrl/burnrate/pkg/models"
)

const (
	ColumnPostingDate = "Posting Date"
	ColumnAmount      = "Amount"
)

var ErrMissingColumn = errors.New("statement is missing a required column")

// Transactions coerces statement records into typed transactions. Rows that
// fail coercion are dropped and counted; only a missing column is fatal.
func (c *Calculator) Transactions(stmt *models.Statement) ([]models.Transaction, models.Stats, error) {
	stats := models.Stats{Rows: len(stmt.Records)}

	dateCol, ok := stmt.Column(ColumnPostingDate)
	if !ok {
		return nil, stats, fmt.Errorf("%w: %q", ErrMissingColumn, ColumnPostingDate)
	}
	amountCol, ok := stmt.Column(ColumnAmount)
	if !ok {
		return nil, stats, fmt.Errorf("%w: %q", ErrMissingColumn, ColumnAmount)
	}

	txs := make([]models.Transaction, 0, len(stmt.Records))
	for i, rec := range stmt.Records {
		// +2: one for the header, one for 1-based line numbers
		line := i + 2
		tx, err := models.NewTransaction().
			WithLayouts(c.layouts).
			SetPostingDate(rec[dateCol]).
			SetAmount(rec[amountCol]).
			SetLineNumber(line).
			Build()
		if err != nil {
			c.logger.Debug("dropping row", "line", line, "err", err)
			stats.Dropped++
			continue
		}
		txs = append(txs, tx)
	}
	return txs, stats, nil
}

// Filter keeps debits posted inside the window. Credits and refunds never
// count as spend.
func Filter(txs []models.Transaction, window models.Window) ([]models.Transaction, models.Stats) {
	var stats models.Stats
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.IsDebit() {
			stats.Credits++
			continue
		}
		if !window.Contains(tx.PostingDate) {
			stats.OutWindow++
			continue
		}
		out = append(out, tx)
	}
	stats.Included = len(out)
	return out, stats
}
