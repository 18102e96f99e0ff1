package calendar

import (
	"time"

	"github.com/fzed51/week-number/internal/week"
	"github.com/fzed51/week-number/pkg/dateutil"
)

// MonthGrid returns the display grid of the month containing date.
// The grid starts on the Monday on/before the 1st and ends on the Sunday
// on/after the last day, so every week is complete.
func MonthGrid(date time.Time) Month {
	year, month, loc := date.Year(), date.Month(), date.Location()

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := time.Date(year, month, dateutil.DaysInMonth(year, month), 0, 0, 0, 0, loc)

	lead := dateutil.MondayBased(first)
	trail := 6 - dateutil.MondayBased(last)
	total := lead + last.Day() + trail

	grid := Month{
		Label: MonthLabel(month),
		Year:  year,
		Month: month,
		Weeks: make([]Week, 0, total/7),
	}

	for offset := -lead; offset < last.Day()+trail; offset += 7 {
		monday := time.Date(year, month, 1+offset, 0, 0, 0, 0, loc)
		w := Week{Number: week.Number(monday)}

		for i := range w.Days {
			d := time.Date(year, month, 1+offset+i, 0, 0, 0, 0, loc)
			w.Days[i] = Day{
				Date:       d,
				DayOfMonth: d.Day(),
				InMonth:    d.Year() == year && d.Month() == month,
				WeekNumber: w.Number,
			}
		}

		grid.Weeks = append(grid.Weeks, w)
	}

	return grid
}
