package calendar

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var monthNames = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// indexed by time.Weekday, Sunday first
var dayNames = [7]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

// ShortDayNames are the grid column headers, Monday first
var ShortDayNames = [7]string{"Lu", "Ma", "Me", "Je", "Ve", "Sa", "Di"}

// MonthName returns the lower-case French name of m
func MonthName(m time.Month) string {
	return monthNames[(int(m)+11)%12]
}

// MonthLabel returns the capitalised French name of m, as shown in grid headers
func MonthLabel(m time.Month) string {
	// Casers keep state, so one per call
	return cases.Title(language.French).String(MonthName(m))
}

// WeekdayName returns the lower-case French name of d
func WeekdayName(d time.Weekday) string {
	return dayNames[d%7]
}

// FormatLong renders t as "lundi 1 janvier 2024"
func FormatLong(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", WeekdayName(t.Weekday()), t.Day(), MonthName(t.Month()), t.Year())
}
