package pipeline

import (
	"time"

	"github.com/theirongolddev/selforge/internal/model"
)

// Countdowns returns the days left in the weekly and monthly result cycles.
// The cycles run from the local day of start (Unix milliseconds) in blocks
// of 7 and 30 days, and the last day of a cycle reads 0. Without a start the
// weekly count runs to next Monday and the monthly one to the 1st.
func Countdowns(start *int64, now time.Time) model.Countdown {
	if start == nil || *start <= 0 {
		wd := int(now.Weekday())
		weekly := 8 - wd
		if wd == 0 {
			weekly = 1
		}
		lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
		return model.Countdown{Weekly: weekly, Monthly: lastDay - now.Day() + 1}
	}

	elapsed := max(daysBetween(time.UnixMilli(*start).In(now.Location()), now), 0)
	return model.Countdown{
		Weekly:    6 - elapsed%7,
		Monthly:   29 - elapsed%30,
		FromStart: true,
	}
}

// daysBetween counts calendar days from a to b in b's location. Dates are
// compared through UTC so DST shifts do not bend the count.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
