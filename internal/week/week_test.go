package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  int
	}{
		{"2024 starts on a Monday", date(2024, 1, 1), 1},
		{"2023-01-01 is in week 52 of 2022", date(2023, 1, 1), 52},
		{"2025-01-01 is week 1", date(2025, 1, 1), 1},
		{"Sunday closes week 1", date(2025, 1, 5), 1},
		{"Monday opens week 2", date(2025, 1, 6), 2},
		{"2021-01-03 is in week 53 of 2020", date(2021, 1, 3), 53},
		{"2024-12-30 is week 1 of 2025", date(2024, 12, 30), 1},
		{"Leap day 2024", date(2024, 2, 29), 9},
		{"Mid June 2024", date(2024, 6, 15), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.input))
		})
	}
}

func TestNumber_IgnoresTimeOfDayAndZone(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// night of the spring DST switch
	late := time.Date(2024, 3, 31, 23, 59, 0, 0, paris)
	early := time.Date(2024, 3, 31, 0, 1, 0, 0, paris)

	assert.Equal(t, 13, Number(late))
	assert.Equal(t, 13, Number(early))
}

func TestNumber_Jan4IsAlwaysWeek1(t *testing.T) {
	for y := 1990; y <= 2060; y++ {
		assert.Equal(t, 1, Number(date(y, 1, 4)), "year %d", y)
	}
}

func TestNumber_MatchesStdlibISOWeek(t *testing.T) {
	d := date(2015, 1, 1)
	end := date(2035, 12, 31)

	for !d.After(end) {
		isoYear, isoWeek := d.ISOWeek()
		require.Equal(t, isoWeek, Number(d), "week of %s", d.Format("2006-01-02"))
		require.Equal(t, isoYear, Year(d), "year of %s", d.Format("2006-01-02"))
		d = d.AddDate(0, 0, 1)
	}
}

func TestNumber_ConsecutiveDays(t *testing.T) {
	d := date(2019, 1, 1)
	end := date(2030, 12, 31)

	for d.Before(end) {
		cur := Number(d)
		next := Number(d.AddDate(0, 0, 1))

		if next != cur && next != cur+1 {
			require.Equal(t, 1, next, "wrap at %s must restart at 1", d.Format("2006-01-02"))
			require.Contains(t, []int{52, 53}, cur)
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestDateRange(t *testing.T) {
	start, end := DateRange(1, 2024)

	assert.Equal(t, date(2024, 1, 1), start)
	assert.Equal(t, date(2024, 1, 7), end)
	assert.Equal(t, time.Monday, start.Weekday())
}

func TestDateRange_Week53(t *testing.T) {
	start, end := DateRange(53, 2020)

	assert.Equal(t, 2020, start.Year())
	assert.Equal(t, date(2020, 12, 28), start)
	assert.Equal(t, date(2021, 1, 3), end)
}

func TestDateRange_SundayNewYear(t *testing.T) {
	// Jan 1st 2023 is a Sunday: the Monday on/before it is in 2022
	start, _ := DateRange(1, 2023)
	assert.Equal(t, date(2022, 12, 26), start)

	start, end := DateRange(25, 2023)
	assert.Equal(t, 2023, start.Year())
	assert.Equal(t, 2023, end.Year())
}

func TestDateRange_Shape(t *testing.T) {
	for y := 2000; y <= 2040; y++ {
		for w := 1; w <= 53; w++ {
			start, end := DateRange(w, y)

			require.Equal(t, time.Monday, start.Weekday(), "week %d/%d", w, y)
			require.Equal(t, 6*24*time.Hour, end.Sub(start), "week %d/%d", w, y)
		}
	}
}

func TestDateRange_ConsistentWithNumber(t *testing.T) {
	start, end := DateRange(25, 2024)

	assert.Equal(t, Number(start), Number(end))
	assert.Equal(t, 25, Number(start))
}

func TestWeeks(t *testing.T) {
	for y := 1990; y <= 2060; y++ {
		_, want := date(y, 12, 28).ISOWeek()
		assert.Equal(t, want, Weeks(y), "year %d", y)
	}

	assert.Equal(t, 53, Weeks(2020))
	assert.Equal(t, 53, Weeks(2026))
	assert.Equal(t, 52, Weeks(2024))
}
