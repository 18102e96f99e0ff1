// Package calendar builds Monday-first month grids for display.
package calendar

import (
	"time"

	"github.com/fzed51/week-number/pkg/dateutil"
)

// Day represents one cell of a month grid
type Day struct {
	Date       time.Time `json:"date"`
	DayOfMonth int       `json:"day"`
	InMonth    bool      `json:"in_month"` // false for leading/trailing days of adjacent months
	WeekNumber int       `json:"week_number"`
}

// Week represents one row of a month grid, Monday first
type Week struct {
	Number int    `json:"number"`
	Days   [7]Day `json:"days"`
}

// Month represents calendar grid for a month
type Month struct {
	Label string     `json:"label"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks []Week     `json:"weeks"`
}

// Contains reports whether t falls on one of the week's days
func (w Week) Contains(t time.Time) bool {
	for _, d := range w.Days {
		if dateutil.IsSameDay(d.Date, t) {
			return true
		}
	}
	return false
}

// Days returns every cell of the grid in display order
func (m Month) Days() []Day {
	days := make([]Day, 0, len(m.Weeks)*7)
	for _, w := range m.Weeks {
		days = append(days, w.Days[:]...)
	}
	return days
}

// First returns the first day of the grid (a Monday)
func (m Month) First() time.Time {
	if len(m.Weeks) == 0 {
		return time.Time{}
	}
	return m.Weeks[0].Days[0].Date
}

// Last returns the last day of the grid (a Sunday)
func (m Month) Last() time.Time {
	if len(m.Weeks) == 0 {
		return time.Time{}
	}
	return m.Weeks[len(m.Weeks)-1].Days[6].Date
}
