package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzed51/week-number/internal/calendar"
	"github.com/fzed51/week-number/internal/holiday"
	"github.com/fzed51/week-number/internal/vacation"
)

func TestRenderMonth(t *testing.T) {
	date := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	holidays := holiday.NewIndex(holiday.Generate(2024, 2024), holiday.WithLocation(time.UTC))
	vacations := vacation.NewIndex([]vacation.Period{{
		Summary: "Pont de l'Ascension",
		Start:   time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 5, 12, 23, 59, 0, 0, time.UTC),
	}})

	var buf bytes.Buffer
	renderMonth(&buf, calendar.MonthGrid(date), holidays, vacations, date)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 7)

	assert.Equal(t, "Mai 2024", lines[0])
	assert.Equal(t, " Sem   Lu   Ma   Me   Je   Ve   Sa   Di", lines[1])

	// May 1st 2024 is a Wednesday
	assert.Equal(t, "  18    .    .   1*   2    3    4    5", lines[2])
	// Ascension on the 9th is selected, the bridge days are vacation
	assert.Equal(t, "> 19   6    7    8*  [9]  10v  11v  12v", lines[3])

	out := buf.String()
	assert.Contains(t, out, "   1 Fête du Travail")
	assert.Contains(t, out, "   8 Fête de la Victoire")
	assert.Contains(t, out, "   9 Ascension")
	assert.Contains(t, out, "  20 Lundi de Pentecôte")
}

func TestRenderMonth_VacationEndIsExclusive(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// An all-day feed event ending on Nov 4th is stored as midnight Paris
	vacations := vacation.NewIndex([]vacation.Period{{
		Summary: "Vacances de la Toussaint",
		Start:   time.Date(2024, 10, 19, 0, 0, 0, 0, paris).UTC(),
		End:     time.Date(2024, 11, 4, 0, 0, 0, 0, paris).UTC(),
	}})
	holidays := holiday.NewIndex(nil)
	date := time.Date(2024, 11, 20, 0, 0, 0, 0, paris)

	var buf bytes.Buffer
	renderMonth(&buf, calendar.MonthGrid(date), holidays, vacations, date)

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	// Nov 1st 2024 is a Friday; the 4th is the first school day
	assert.Equal(t, "  44    .    .    .    .   1v   2v   3v", lines[2])
	assert.Equal(t, "  45   4    5    6    7    8    9   10", lines[3])
}

func TestRenderPeriods(t *testing.T) {
	var buf bytes.Buffer
	renderPeriods(&buf, nil, time.UTC)
	assert.Equal(t, "Aucune période à venir\n", buf.String())

	buf.Reset()
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	renderPeriods(&buf, []vacation.Period{{
		Summary: "Vacances de Printemps",
		Start:   time.Date(2025, 4, 4, 22, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 4, 21, 21, 59, 0, 0, time.UTC),
	}}, paris)
	assert.Equal(t, "2025-04-05 -> 2025-04-21  Vacances de Printemps\n", buf.String())
}

func TestRenderWeek(t *testing.T) {
	var buf bytes.Buffer
	date := time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC)
	renderWeek(&buf, date, 53, 2020)

	assert.Equal(t,
		"dimanche 3 janvier 2021 : semaine 53 (2020)\ndu lundi 28 décembre 2020 au dimanche 3 janvier 2021\n",
		buf.String())
}

func TestRenderWeekRange(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderWeekRange(&buf, 53, 2020))
	assert.Equal(t, "semaine 53 (2020) : du lundi 28 décembre 2020 au dimanche 3 janvier 2021\n", buf.String())

	buf.Reset()
	err := renderWeekRange(&buf, 53, 2021)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2021 has 52 weeks")
	assert.Empty(t, buf.String())
}

func TestParseDateFlag(t *testing.T) {
	date, err := parseDateFlag("14/07/2024", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC), date)

	_, err = parseDateFlag("quatorze juillet", time.UTC)
	assert.Error(t, err)
}
