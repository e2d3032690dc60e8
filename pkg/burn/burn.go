// Package burn turns a raw statement into monthly spend over the trailing
// twelve complete months and the average monthly spend, the burn rate.
package burn

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/yurifrl/burnrate/pkg/models"
)

type Calculator struct {
	logger  *log.Logger
	layouts []string
}

// New returns a Calculator parsing posting dates with layouts, or with
// models.DefaultDateLayouts when layouts is empty.
func New(logger *log.Logger, layouts []string) *Calculator {
	if len(layouts) == 0 {
		layouts = models.DefaultDateLayouts
	}
	return &Calculator{
		logger:  logger,
		layouts: layouts,
	}
}

// Build computes the report for stmt as seen on today.
func (c *Calculator) Build(stmt *models.Statement, today time.Time) (*models.Report, error) {
	txs, stats, err := c.Transactions(stmt)
	if err != nil {
		return nil, err
	}

	window := NewWindow(today)
	spend, filtered := Filter(txs, window)
	stats.Credits = filtered.Credits
	stats.OutWindow = filtered.OutWindow
	stats.Included = filtered.Included

	buckets, avg := Aggregate(spend)

	rep := &models.Report{
		ID:          uuid.NewString(),
		Source:      stmt.Source,
		GeneratedAt: today,
		Window:      window,
		Buckets:     buckets,
		AverageBurn: avg,
		Total:       Total(buckets),
		Stats:       stats,
		Warnings:    Diagnose(txs, buckets, window),
	}

	c.logger.Info("burn rate computed",
		"months", len(buckets),
		"average", avg.StringFixed(Places),
		"included", stats.Included,
		"dropped", stats.Dropped,
		"credits", stats.Credits,
		"window_start", window.Start.Format(time.DateOnly),
		"window_end", window.End.Format(time.DateOnly),
	)
	for _, w := range rep.Warnings {
		c.logger.Warn(w)
	}
	return rep, nil
}

// Diagnose reports conditions that make the average burn misleading. It
// never alters the figures.
func Diagnose(txs []models.Transaction, buckets []models.MonthBucket, window models.Window) []string {
	if len(buckets) == 0 {
		return nil
	}

	var warnings []string

	if first, ok := earliest(txs); ok && first.After(window.Start) && !first.After(window.End) && first.Day() != 1 {
		warnings = append(warnings, fmt.Sprintf(
			"statement history starts on %s: %s is a partial month and skews the average burn",
			first.Format(time.DateOnly), models.MonthLabel(first.Year(), first.Month())))
	}

	if n := len(buckets); n < MonthsInWindow {
		warnings = append(warnings, fmt.Sprintf(
			"only %d of %d months have spend; the average burn is taken over %d months", n, MonthsInWindow, n))
	}
	return warnings
}

func earliest(txs []models.Transaction) (time.Time, bool) {
	var first time.Time
	for _, tx := range txs {
		if first.IsZero() || tx.PostingDate.Before(first) {
			first = tx.PostingDate
		}
	}
	return first, !first.IsZero()
}
