package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fzed51/week-number/internal/calendar"
	"github.com/fzed51/week-number/internal/holiday"
	"github.com/fzed51/week-number/internal/vacation"
	"github.com/fzed51/week-number/internal/week"
	"github.com/fzed51/week-number/pkg/dateutil"
)

// renderMonth prints grid as text. The selected day is bracketed and its row
// marked with '>', holidays are flagged with '*' and vacation days with 'v'.
func renderMonth(w io.Writer, grid calendar.Month, holidays *holiday.Index, vacations *vacation.Index, selected time.Time) {
	fmt.Fprintf(w, "%s %d\n", grid.Label, grid.Year)
	header := " Sem"
	for _, name := range calendar.ShortDayNames {
		header += fmt.Sprintf("%5s", name)
	}
	fmt.Fprintln(w, header)

	for _, wk := range grid.Weeks {
		selectedRow := wk.Contains(selected)

		var row strings.Builder
		if selectedRow {
			fmt.Fprintf(&row, ">%3d", wk.Number)
		} else {
			fmt.Fprintf(&row, "%4d", wk.Number)
		}

		for _, d := range wk.Days {
			isSelected := selectedRow && dateutil.IsSameDay(d.Date, selected)
			row.WriteString(dayCell(d, holidays.IsHoliday(d.Date), vacations.IsWithin(dateutil.Noon(d.Date)), isSelected))
		}
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}

	var legend []string
	for _, d := range grid.Days() {
		if name, ok := holidays.Name(d.Date); ok && d.InMonth {
			legend = append(legend, fmt.Sprintf("  %2d %s", d.DayOfMonth, name))
		}
	}

	if len(legend) > 0 {
		fmt.Fprintln(w)
		for _, line := range legend {
			fmt.Fprintln(w, line)
		}
	}
}

func dayCell(d calendar.Day, isHoliday, onVacation, selected bool) string {
	if !d.InMonth {
		return "    ."
	}

	if selected {
		return fmt.Sprintf("%5s", fmt.Sprintf("[%d]", d.DayOfMonth))
	}

	marker := " "
	switch {
	case isHoliday:
		marker = "*"
	case onVacation:
		marker = "v"
	}
	return fmt.Sprintf("%4d%s", d.DayOfMonth, marker)
}

func renderWeek(w io.Writer, date time.Time, number, isoYear int) {
	start, end := dateutil.StartOfWeek(date), dateutil.EndOfWeek(date)

	fmt.Fprintf(w, "%s : semaine %d (%d)\n", calendar.FormatLong(date), number, isoYear)
	fmt.Fprintf(w, "du %s au %s\n", calendar.FormatLong(start), calendar.FormatLong(end))
}

// renderWeekRange prints the dates of week number of year, rejecting week
// numbers the year does not have
func renderWeekRange(w io.Writer, number, year int) error {
	if weeks := week.Weeks(year); number < 1 || number > weeks {
		return fmt.Errorf("week %d does not exist: %d has %d weeks", number, year, weeks)
	}

	start, end := week.DateRange(number, year)
	fmt.Fprintf(w, "semaine %d (%d) : du %s au %s\n",
		number, year, calendar.FormatLong(start), calendar.FormatLong(end))
	return nil
}

func renderPeriods(w io.Writer, periods []vacation.Period, loc *time.Location) {
	if len(periods) == 0 {
		fmt.Fprintln(w, "Aucune période à venir")
		return
	}

	for _, p := range periods {
		fmt.Fprintf(w, "%s -> %s  %s\n",
			dateutil.FormatDayIn(p.Start, loc),
			dateutil.FormatDayIn(p.End, loc),
			p.Summary)
	}
}
