package util

import "time"

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CalculateActualDate returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year int, month time.Month, targetDay int) time.Time {
	// Get last day of month by going to day 0 of next month
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// AddPeriod advances a date by one payment period using calendar
// arithmetic. Monthly and yearly steps clamp at month end, so Jan 31
// monthly becomes Feb 28/29 rather than rolling into March.
func AddPeriod(t time.Time, frequency string) time.Time {
	switch frequency {
	case "daily":
		return t.AddDate(0, 0, 1)
	case "weekly":
		return t.AddDate(0, 0, 7)
	case "yearly":
		return CalculateActualDate(t.Year()+1, t.Month(), t.Day())
	default: // monthly
		year, month := t.Year(), t.Month()
		if month == time.December {
			return CalculateActualDate(year+1, time.January, t.Day())
		}
		return CalculateActualDate(year, month+1, t.Day())
	}
}

// MonthsAgo returns the first day of the month `n` months before now.
func MonthsAgo(now time.Time, n int) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -n, 0)
}
