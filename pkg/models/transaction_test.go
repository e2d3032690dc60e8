package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionBuilder(t *testing.T) {
	tx, err := NewTransaction().
		SetPostingDate("06/15/2023").
		SetAmount("-42.50").
		SetLineNumber(3).
		Build()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC), tx.PostingDate)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-42.50")))
	assert.True(t, tx.Spend().Equal(decimal.RequireFromString("42.50")))
	assert.True(t, tx.IsDebit())
	assert.Equal(t, 3, tx.Line)
}

func TestTransactionBuilder_CoercionErrors(t *testing.T) {
	cases := []struct {
		name   string
		date   string
		amount string
		want   error
	}{
		{"non numeric amount", "06/15/2023", "abc", ErrInvalidAmount},
		{"empty amount", "06/15/2023", "", ErrInvalidAmount},
		{"bad date", "15th June", "-1.00", ErrInvalidDate},
		{"empty date", "  ", "-1.00", ErrInvalidDate},
		{"date checked first", "nope", "nope", ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTransaction().SetPostingDate(tc.date).SetAmount(tc.amount).Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestTransactionBuilder_MissingDate(t *testing.T) {
	_, err := NewTransaction().SetAmount("-1").Build()
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"03/05/2024", "3/5/2024", "2024-03-05", "2024/03/05", " 2024-03-05 13:45:00 "} {
		got, err := ParseDate(raw, DefaultDateLayouts)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseDate_CustomLayouts(t *testing.T) {
	got, err := NewTransaction().
		WithLayouts([]string{"02.01.2006"}).
		SetPostingDate("05.03.2024").
		SetAmount("1").
		Build()
	require.NoError(t, err)
	assert.Equal(t, time.March, got.PostingDate.Month())
}

func TestParseAmount(t *testing.T) {
	for raw, want := range map[string]string{
		"-42.50": "-42.5",
		"10":     "10",
		" -7 ":   "-7",
	} {
		got, err := ParseAmount(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got.String(), raw)
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{
		Start: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
	}
	assert.False(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.Start.AddDate(0, 0, 1)))
	assert.True(t, w.Contains(w.End))
	assert.True(t, w.Contains(w.End.Add(23*time.Hour)))
	assert.False(t, w.Contains(w.End.AddDate(0, 0, 1)))
}

func TestStatementColumn(t *testing.T) {
	s := &Statement{Header: []string{"Details", " Posting Date", "AMOUNT"}}

	col, ok := s.Column("Posting Date")
	assert.True(t, ok)
	assert.Equal(t, " Posting Date", col)

	col, ok = s.Column("amount")
	assert.True(t, ok)
	assert.Equal(t, "AMOUNT", col)

	_, ok = s.Column("Balance")
	assert.False(t, ok)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "March 2024", MonthLabel(2024, time.March))
	assert.Equal(t, "January 0999", MonthLabel(999, time.January))
}
