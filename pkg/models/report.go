package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// MonthBucket holds the spend of one calendar month.
type MonthBucket struct {
	Year  int
	Month time.Month
	Label string
	Spend decimal.Decimal
	Count int
}

// Fields returns the bucket as a CSV row: label, spend, transaction count.
func (b MonthBucket) Fields() []string {
	return []string{b.Label, b.Spend.StringFixed(2), strconv.Itoa(b.Count)}
}

// MonthLabel formats a month as "March 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %04d", month.String(), year)
}

// Window is the trailing range of complete calendar months a report covers.
// Start is exclusive, End is inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the window, compared by calendar date.
func (w Window) Contains(d time.Time) bool {
	d = DateOnly(d)
	return d.After(w.Start) && !d.After(w.End)
}

// Stats counts what happened to statement rows on the way to the report.
type Stats struct {
	Rows      int `yaml:"rows"`
	Dropped   int `yaml:"dropped"`
	Credits   int `yaml:"credits"`
	OutWindow int `yaml:"out_of_window"`
	Included  int `yaml:"included"`
}

// Report is the result of one burn rate computation.
type Report struct {
	ID          string
	Source      string
	GeneratedAt time.Time
	Window      Window
	Buckets     []MonthBucket
	AverageBurn decimal.Decimal
	Total       decimal.Decimal
	Stats       Stats
	Warnings    []string
}

// HasData reports whether any month produced spend. Without data the
// average burn is zero and carries no meaning.
func (r *Report) HasData() bool {
	return len(r.Buckets) > 0
}
