package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// window is a half-open time range [Start, End) used for stats comparison.
type window struct {
	Start time.Time
	End   time.Time
}

// periodWindows computes the current window for a period token and the
// immediately preceding window of the same kind.
//
//	week    — rolling trailing 7 days
//	month   — calendar month-to-date
//	quarter — calendar quarter-to-date
//	year    — calendar year-to-date
//
// The previous window always has the full nominal length (e.g. the whole
// previous calendar month), so a record exactly 8 days old falls in the
// previous week window, not the current one.
func periodWindows(period string, now time.Time) (current, previous window) {
	switch period {
	case "week":
		weekAgo := now.AddDate(0, 0, -7)
		current = window{Start: weekAgo, End: now}
		previous = window{Start: now.AddDate(0, 0, -14), End: weekAgo}
	case "quarter":
		qStart := quarterStart(now)
		current = window{Start: qStart, End: now}
		previous = window{Start: qStart.AddDate(0, -3, 0), End: qStart}
	case "year":
		yStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		current = window{Start: yStart, End: now}
		previous = window{Start: yStart.AddDate(-1, 0, 0), End: yStart}
	default: // month
		mStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		current = window{Start: mStart, End: now}
		previous = window{Start: mStart.AddDate(0, -1, 0), End: mStart}
	}
	return current, previous
}

func quarterStart(t time.Time) time.Time {
	q := (int(t.Month()) - 1) / 3
	return time.Date(t.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, t.Location())
}

// growthPercent is the relative change between the current and previous
// period totals, as a percentage rounded to 2 decimals. A zero previous total
// yields 100 when the current total is positive and 0 otherwise — the same
// policy for every subsystem.
func growthPercent(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	g, _ := current.Sub(previous).
		Div(previous).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return g
}

const dateLayout = "2006-01-02"

// parseDateRange turns optional startDate/endDate strings (YYYY-MM-DD) into a
// half-open [from, to) range. The end date is inclusive: the returned upper
// bound is the start of the following day. Both bounds must be present for the
// range to apply; otherwise the range is unbounded (nil, nil).
func parseDateRange(startDate, endDate string) (from, to *time.Time, err error) {
	if startDate == "" || endDate == "" {
		return nil, nil, nil
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid startDate %q: expected YYYY-MM-DD", startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid endDate %q: expected YYYY-MM-DD", endDate)
	}
	if end.Before(start) {
		return nil, nil, fmt.Errorf("endDate %s precedes startDate %s", endDate, startDate)
	}
	endExclusive := end.AddDate(0, 0, 1)
	return &start, &endExclusive, nil
}
