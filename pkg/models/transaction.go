package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid posting date")
)

// DefaultDateLayouts are tried in order when a posting date is parsed.
// Bank exports use US ordering, so month-first wins over day-first.
var DefaultDateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"2006/01/02",
	"01-02-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// Transaction is a single statement line after coercion. Amount keeps the
// sign of the statement: negative is money leaving the account.
type Transaction struct {
	PostingDate time.Time
	Amount      decimal.Decimal
	Line        int
}

// Spend returns the amount as outgoing spend: debits become positive.
func (t Transaction) Spend() decimal.Decimal {
	return t.Amount.Neg()
}

// IsDebit reports whether the transaction moved money out of the account.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// TransactionBuilder collects raw statement values and coerces them on Build.
type TransactionBuilder struct {
	tx      Transaction
	layouts []string
	err     error
}

func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{layouts: DefaultDateLayouts}
}

// WithLayouts overrides the date layouts used by SetPostingDate. It must be
// called before SetPostingDate.
func (b *TransactionBuilder) WithLayouts(layouts []string) *TransactionBuilder {
	if len(layouts) > 0 {
		b.layouts = layouts
	}
	return b
}

func (b *TransactionBuilder) SetPostingDate(raw string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	d, err := ParseDate(raw, b.layouts)
	if err != nil {
		b.err = err
		return b
	}
	b.tx.PostingDate = d
	return b
}

func (b *TransactionBuilder) SetAmount(raw string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	a, err := ParseAmount(raw)
	if err != nil {
		b.err = err
		return b
	}
	b.tx.Amount = a
	return b
}

func (b *TransactionBuilder) SetLineNumber(line int) *TransactionBuilder {
	b.tx.Line = line
	return b
}

func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, b.err
	}
	if b.tx.PostingDate.IsZero() {
		return Transaction{}, fmt.Errorf("%w: missing", ErrInvalidDate)
	}
	return b.tx, nil
}

// ParseAmount parses a signed decimal string such as "-42.50" or "10".
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return d, nil
}

// ParseDate parses raw with the first matching layout and truncates the
// result to a UTC calendar date.
func ParseDate(raw string, layouts []string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// DateOnly drops the clock part of t and pins it to UTC.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
