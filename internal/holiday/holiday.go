// Package holiday answers public-holiday lookups against a precomputed
// year-indexed dataset, and generates that dataset for France.
package holiday

import (
	"time"
	_ "time/tzdata" // civil zone must not depend on the host's zoneinfo

	"github.com/fzed51/week-number/pkg/dateutil"
)

// DefaultZone is the civil calendar the dataset was generated in
const DefaultZone = "Europe/Paris"

// Holiday represents a single public holiday
type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"localName"`
}

// Dataset maps a year to its holidays, sorted by date
type Dataset map[int][]Holiday

// Index looks up holidays by civil date. It never mutates its dataset.
type Index struct {
	data Dataset
	loc  *time.Location
}

// Option configures an Index
type Option func(*Index)

// WithLocation renders dates in loc instead of Europe/Paris
func WithLocation(loc *time.Location) Option {
	return func(idx *Index) {
		if loc != nil {
			idx.loc = loc
		}
	}
}

// NewIndex creates an Index over data. A nil dataset behaves as empty.
func NewIndex(data Dataset, opts ...Option) *Index {
	if data == nil {
		data = Dataset{}
	}

	idx := &Index{data: data, loc: civilZone(DefaultZone)}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// IsHoliday checks if the given date is a public holiday
func (idx *Index) IsHoliday(date time.Time) bool {
	_, ok := idx.Name(date)
	return ok
}

// Name returns the holiday name of date, or false when it is not a holiday
func (idx *Index) Name(date time.Time) (string, bool) {
	civil := date.In(idx.loc)
	key := dateutil.FormatDay(civil)

	for _, h := range idx.data[civil.Year()] {
		if h.Date == key {
			return h.Name, true
		}
	}
	return "", false
}

// Year returns a copy of the holidays of year
func (idx *Index) Year(year int) []Holiday {
	list := idx.data[year]
	out := make([]Holiday, len(list))
	copy(out, list)
	return out
}

func civilZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// unreachable with time/tzdata linked in
		return time.UTC
	}
	return loc
}
