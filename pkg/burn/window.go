package burn

import (
	"time"

	"github.com/yurifrl/burnrate/pkg/models"
)

// MonthsInWindow is the length of the trailing window.
const MonthsInWindow = 12

// NewWindow returns the trailing window of the twelve calendar months
// completed before today. The month in progress is never part of it.
//
// The lower bound is exclusive, so the first day of the oldest month falls
// outside the window.
func NewWindow(today time.Time) models.Window {
	beginningOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return models.Window{
		Start: beginningOfMonth.AddDate(-1, 0, 0),
		End:   beginningOfMonth.AddDate(0, 0, -1),
	}
}
