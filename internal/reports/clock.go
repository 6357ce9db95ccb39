package reports

import (
	"time"

	"github.com/teampulse/daily-report-api/internal/constants"
)

// DayBounds returns the start and end of the local calendar day containing t.
// Every day-window computation in the service goes through here.
func DayBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// RangeStart maps a report-range token to the start of its lookback window:
// day looks back one full day (the "since yesterday" report), week seven
// days, month thirty. The start is always truncated to midnight. Unknown or
// missing tokens fall back to week; there is no error path.
func RangeStart(rng string, now time.Time) time.Time {
	var days int
	switch rng {
	case constants.RangeDay:
		days = 1
	case constants.RangeMonth:
		days = 30
	case constants.RangeWeek:
		days = 7
	default:
		days = 7
	}

	start, _ := DayBounds(now.AddDate(0, 0, -days))
	return start
}
