package dateutil

import (
	"fmt"
	"time"
)

// DayLayout is the "YYYY-MM-DD" layout used by every dataset
const DayLayout = "2006-01-02"

// Day returns the civil day (year, month, day) of date at noon UTC.
// Day arithmetic on the result never crosses a daylight-saving boundary.
func Day(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// EndOfDay returns the end of the day (23:59:59.999) for the given date
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999999999, date.Location())
}

// MondayBased returns days since Monday: Monday=0 ... Sunday=6
func MondayBased(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// StartOfWeek returns the Monday of the week for the given date
func StartOfWeek(date time.Time) time.Time {
	return StartOfDay(date.AddDate(0, 0, -MondayBased(date)))
}

// EndOfWeek returns the Sunday of the week for the given date
func EndOfWeek(date time.Time) time.Time {
	monday := StartOfWeek(date)
	sunday := monday.AddDate(0, 0, 6)
	return EndOfDay(sunday)
}

// Noon returns noon of date's civil day, in date's own location.
// Range bounds stored at midnight (an exclusive all-day end) do not catch it.
func Noon(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
}

// DaysInMonth returns the number of days of the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// FormatDay renders date as YYYY-MM-DD in its own location
func FormatDay(date time.Time) string {
	return date.Format(DayLayout)
}

// FormatDayIn renders the civil day that date falls on in loc.
// A nil loc keeps the date's own location.
func FormatDayIn(date time.Time, loc *time.Location) string {
	if loc == nil {
		return FormatDay(date)
	}
	return date.In(loc).Format(DayLayout)
}

// ParseDate parses date string in various formats.
// Date-only formats are interpreted in loc (UTC when nil).
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	formats := []string{
		DayLayout,
		"02/01/2006",
		"02.01.2006",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, loc); err == nil {
			return t, nil
		}
	}

	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// Today returns today's date (start of day) in loc
func Today(loc *time.Location) time.Time {
	now := time.Now()
	if loc != nil {
		now = now.In(loc)
	}
	return StartOfDay(now)
}
