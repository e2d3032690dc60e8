package burn

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yurifrl/burnrate/pkg/models"
)

// Places is the rounding precision of every reported amount.
const Places = 2

type monthKey struct {
	year  int
	month time.Month
}

func (k monthKey) before(o monthKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}
	return k.month < o.month
}

// Aggregate groups debits by posting month and returns one bucket per month
// with spend, in chronological order, plus the average over those buckets.
//
// Months without spend produce no bucket, so the average divides by the
// number of active months rather than by twelve. Totals and the average are
// rounded once, half away from zero.
func Aggregate(txs []models.Transaction) ([]models.MonthBucket, decimal.Decimal) {
	totals := make(map[monthKey]decimal.Decimal)
	counts := make(map[monthKey]int)
	for _, tx := range txs {
		k := monthKey{tx.PostingDate.Year(), tx.PostingDate.Month()}
		totals[k] = totals[k].Add(tx.Spend())
		counts[k]++
	}
	if len(totals) == 0 {
		return nil, decimal.Zero
	}

	keys := make([]monthKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })

	buckets := make([]models.MonthBucket, 0, len(keys))
	sum := decimal.Zero
	for _, k := range keys {
		sum = sum.Add(totals[k])
		buckets = append(buckets, models.MonthBucket{
			Year:  k.year,
			Month: k.month,
			Label: models.MonthLabel(k.year, k.month),
			Spend: totals[k].Round(Places),
			Count: counts[k],
		})
	}

	avg := sum.Div(decimal.NewFromInt(int64(len(buckets)))).Round(Places)
	return buckets, avg
}

// Total sums bucket spend.
func Total(buckets []models.MonthBucket) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range buckets {
		sum = sum.Add(b.Spend)
	}
	return sum
}
