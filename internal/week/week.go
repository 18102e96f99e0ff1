// Package week computes ISO-8601 week numbers and week boundaries.
package week

import (
	"math"
	"time"

	"github.com/fzed51/week-number/pkg/dateutil"
)

const day = 24 * time.Hour

// Number returns the ISO-8601 week number of date.
// Only the civil day of date matters; the time of day and zone are ignored.
func Number(date time.Time) int {
	thursday := thursdayOf(dateutil.Day(date))

	// Jan 4th always falls in week 1
	jan4 := time.Date(thursday.Year(), time.January, 4, 12, 0, 0, 0, time.UTC)
	firstThursday := thursdayOf(jan4)

	weeks := math.Round(float64(thursday.Sub(firstThursday)) / float64(7*day))
	return int(weeks) + 1
}

// Year returns the ISO year that Number(date) belongs to.
func Year(date time.Time) int {
	return thursdayOf(dateutil.Day(date)).Year()
}

// DateRange returns the Monday and Sunday of the given week of year.
// Week 1 starts on the Monday on/before January 1st. Any positive week yields
// a well-formed pair, with no check that the year actually has that many weeks.
func DateRange(week, year int) (start, end time.Time) {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	firstMonday := jan1.AddDate(0, 0, -dateutil.MondayBased(jan1))

	start = firstMonday.AddDate(0, 0, (week-1)*7)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// Weeks returns how many ISO weeks the year has, 52 or 53.
func Weeks(year int) int {
	jan1 := time.Date(year, time.January, 1, 12, 0, 0, 0, time.UTC).Weekday()
	switch {
	case jan1 == time.Thursday:
		return 53
	case jan1 == time.Wednesday && isLeap(year):
		return 53
	default:
		return 52
	}
}

func thursdayOf(noon time.Time) time.Time {
	return noon.AddDate(0, 0, 3-dateutil.MondayBased(noon))
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
