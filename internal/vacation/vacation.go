// Package vacation answers school-vacation lookups against a flat list of
// date ranges, and builds that list from an iCalendar feed.
package vacation

import (
	"sort"
	"time"
	_ "time/tzdata" // civil zone must not depend on the host's zoneinfo
)

// DefaultZone is the civil calendar used for per-year filtering
const DefaultZone = "Europe/Paris"

// Period represents one vacation period, both bounds inclusive
type Period struct {
	Summary  string    `json:"summary"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location,omitempty"`
}

// Contains reports whether t lies within [Start, End]
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Index answers range queries over periods sorted by start.
// It never mutates its periods after construction.
type Index struct {
	periods []Period
	loc     *time.Location
}

// Option configures an Index
type Option func(*Index)

// WithLocation sets the civil zone InYear uses
func WithLocation(loc *time.Location) Option {
	return func(idx *Index) {
		if loc != nil {
			idx.loc = loc
		}
	}
}

// NewIndex creates an Index over a copy of periods, sorted by start
func NewIndex(periods []Period, opts ...Option) *Index {
	sorted := make([]Period, len(periods))
	copy(sorted, periods)
	sortByStart(sorted)

	idx := &Index{periods: sorted, loc: civilZone(DefaultZone)}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// IsWithin checks if date falls inside any vacation period
func (idx *Index) IsWithin(date time.Time) bool {
	_, ok := idx.Current(date)
	return ok
}

// Current returns the first period containing date
func (idx *Index) Current(date time.Time) (Period, bool) {
	for _, p := range idx.periods {
		if p.Contains(date) {
			return p, true
		}
	}
	return Period{}, false
}

// Upcoming returns up to count periods starting strictly after from
func (idx *Index) Upcoming(from time.Time, count int) []Period {
	out := []Period{}
	if count <= 0 {
		return out
	}

	for _, p := range idx.periods {
		if p.Start.After(from) {
			out = append(out, p)
			if len(out) == count {
				break
			}
		}
	}
	return out
}

// InYear returns the periods whose start falls within the civil year
func (idx *Index) InYear(year int) []Period {
	out := []Period{}
	for _, p := range idx.periods {
		if p.Start.In(idx.loc).Year() == year {
			out = append(out, p)
		}
	}
	return out
}

// All returns a copy of every period, sorted by start
func (idx *Index) All() []Period {
	out := make([]Period, len(idx.periods))
	copy(out, idx.periods)
	return out
}

// Len returns the number of periods
func (idx *Index) Len() int {
	return len(idx.periods)
}

func sortByStart(periods []Period) {
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})
}

func civilZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// unreachable with time/tzdata linked in
		return time.UTC
	}
	return loc
}
