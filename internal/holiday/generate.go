package holiday

import (
	"sort"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/fr"

	"github.com/fzed51/week-number/pkg/dateutil"
)

// rule identifies an observance: a fixed month/day, or an offset from Easter
// Sunday when month is zero
type rule struct {
	month  time.Month
	day    int
	offset int
}

// localNames are the names written to the dataset, one per French observance
var localNames = map[rule]string{
	{month: time.January, day: 1}:   "Nouvel An",
	{offset: 1}:                     "Lundi de Pâques",
	{month: time.May, day: 1}:       "Fête du Travail",
	{month: time.May, day: 8}:       "Fête de la Victoire",
	{offset: 39}:                    "Ascension",
	{offset: 50}:                    "Lundi de Pentecôte",
	{month: time.July, day: 14}:     "Fête Nationale",
	{month: time.August, day: 15}:   "Assomption",
	{month: time.November, day: 1}:  "Toussaint",
	{month: time.November, day: 11}: "Armistice",
	{month: time.December, day: 25}: "Noël",
}

var easterSunday = &cal.Holiday{Name: "Pâques", Func: cal.CalcEasterOffset}

func ruleOf(h *cal.Holiday) rule {
	if h.Month == 0 {
		return rule{offset: h.Offset}
	}
	return rule{month: h.Month, day: h.Day}
}

// Easter returns Easter Sunday of year
func Easter(year int) time.Time {
	actual, _ := easterSunday.Calc(year)
	return actual
}

// ForYear returns the French public holidays of year, sorted by date.
// When a movable feast lands on a fixed one, the fixed one comes first.
func ForYear(year int) []Holiday {
	type entry struct {
		Holiday
		movable bool
	}

	entries := make([]entry, 0, len(localNames))
	for _, h := range fr.Holidays {
		r := ruleOf(h)
		name, ok := localNames[r]
		if !ok {
			continue
		}

		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		entries = append(entries, entry{
			Holiday: Holiday{Date: dateutil.FormatDay(actual), Name: name},
			movable: r.month == 0,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return !entries[i].movable && entries[j].movable
	})

	holidays := make([]Holiday, len(entries))
	for i, e := range entries {
		holidays[i] = e.Holiday
	}
	return holidays
}

// Generate builds the dataset for every year in [from, to]
func Generate(from, to int) Dataset {
	if to < from {
		return Dataset{}
	}

	data := make(Dataset, to-from+1)
	for year := from; year <= to; year++ {
		data[year] = ForYear(year)
	}
	return data
}
