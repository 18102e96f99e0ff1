package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fzed51/week-number/internal/calendar"
	"github.com/fzed51/week-number/internal/holiday"
	"github.com/fzed51/week-number/internal/vacation"
	"github.com/fzed51/week-number/internal/week"
	"github.com/fzed51/week-number/pkg/dateutil"
)

const defaultUpcoming = 3

// Handler holds the read-only indexes shared by every request
type Handler struct {
	holidays  *holiday.Index
	vacations *vacation.Index
	loc       *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler creates a new Handler; nil indexes behave as empty datasets
func NewHandler(holidays *holiday.Index, vacations *vacation.Index, loc *time.Location, logger *zap.Logger) *Handler {
	if holidays == nil {
		holidays = holiday.NewIndex(nil)
	}
	if vacations == nil {
		vacations = vacation.NewIndex(nil)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Handler{
		holidays:  holidays,
		vacations: vacations,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

// WeekResponse describes the week a date falls in
type WeekResponse struct {
	Date       string `json:"date"`
	Week       int    `json:"week"`
	ISOYear    int    `json:"iso_year"`
	Start      string `json:"start"`
	End        string `json:"end"`
	StartLabel string `json:"start_label"`
	EndLabel   string `json:"end_label"`
}

// DayResponse is one decorated grid cell
type DayResponse struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	InMonth  bool   `json:"in_month"`
	Selected bool   `json:"selected"`
	Holiday  string `json:"holiday,omitempty"`
	Vacation bool   `json:"vacation"`
}

// WeekRowResponse is one grid row
type WeekRowResponse struct {
	Number int           `json:"number"`
	Days   []DayResponse `json:"days"`
}

// MonthResponse is a decorated month grid
type MonthResponse struct {
	Label string            `json:"label"`
	Year  int               `json:"year"`
	Month int               `json:"month"`
	First string            `json:"first"` // Monday of the first row
	Last  string            `json:"last"`  // Sunday of the last row
	Weeks []WeekRowResponse `json:"weeks"`
}

// HolidayResponse answers a single-date holiday lookup
type HolidayResponse struct {
	Date    string `json:"date"`
	Holiday bool   `json:"holiday"`
	Name    string `json:"name,omitempty"`
}

// VacationResponse answers a single-date vacation lookup
type VacationResponse struct {
	Date     string           `json:"date"`
	Vacation bool             `json:"vacation"`
	Period   *vacation.Period `json:"period,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetWeek returns the week number and boundaries of ?date (today by default),
// or the boundaries of ?week and ?year when both are given
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("week") != "" || q.Get("year") != "" {
		h.getWeekByNumber(w, q.Get("week"), q.Get("year"))
		return
	}

	date, err := h.dateParam(r)
	if err != nil {
		h.badRequest(w, "invalid date", err)
		return
	}

	start, end := dateutil.StartOfWeek(date), dateutil.StartOfDay(dateutil.EndOfWeek(date))

	writeJSON(w, http.StatusOK, WeekResponse{
		Date:       dateutil.FormatDay(date),
		Week:       week.Number(date),
		ISOYear:    week.Year(date),
		Start:      dateutil.FormatDay(start),
		End:        dateutil.FormatDay(end),
		StartLabel: calendar.FormatLong(start),
		EndLabel:   calendar.FormatLong(end),
	})
}

func (h *Handler) getWeekByNumber(w http.ResponseWriter, rawWeek, rawYear string) {
	number, err := strconv.Atoi(rawWeek)
	if err != nil || number < 1 {
		h.badRequest(w, "invalid week", fmt.Errorf("week must be a positive integer, got %q", rawWeek))
		return
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		h.badRequest(w, "invalid year", err)
		return
	}
	if weeks := week.Weeks(year); number > weeks {
		h.badRequest(w, "invalid week", fmt.Errorf("%d has %d weeks", year, weeks))
		return
	}

	start, end := week.DateRange(number, year)

	writeJSON(w, http.StatusOK, WeekResponse{
		Date:       dateutil.FormatDay(start),
		Week:       number,
		ISOYear:    year,
		Start:      dateutil.FormatDay(start),
		End:        dateutil.FormatDay(end),
		StartLabel: calendar.FormatLong(start),
		EndLabel:   calendar.FormatLong(end),
	})
}

// GetMonth returns the month grid of ?date with holiday and vacation flags
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		h.badRequest(w, "invalid date", err)
		return
	}

	grid := calendar.MonthGrid(date)
	resp := MonthResponse{
		Label: grid.Label,
		Year:  grid.Year,
		Month: int(grid.Month),
		First: dateutil.FormatDay(grid.First()),
		Last:  dateutil.FormatDay(grid.Last()),
		Weeks: make([]WeekRowResponse, 0, len(grid.Weeks)),
	}

	for _, wk := range grid.Weeks {
		selectedRow := wk.Contains(date)
		row := WeekRowResponse{Number: wk.Number, Days: make([]DayResponse, 0, len(wk.Days))}
		for _, d := range wk.Days {
			name, _ := h.holidays.Name(d.Date)
			row.Days = append(row.Days, DayResponse{
				Date:     dateutil.FormatDay(d.Date),
				Day:      d.DayOfMonth,
				InMonth:  d.InMonth,
				Selected: selectedRow && dateutil.IsSameDay(d.Date, date),
				Holiday:  name,
				Vacation: h.vacations.IsWithin(dateutil.Noon(d.Date)),
			})
		}
		resp.Weeks = append(resp.Weeks, row)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetHoliday tells whether ?date is a public holiday
func (h *Handler) GetHoliday(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		h.badRequest(w, "invalid date", err)
		return
	}

	name, ok := h.holidays.Name(date)
	writeJSON(w, http.StatusOK, HolidayResponse{
		Date:    dateutil.FormatDay(date),
		Holiday: ok,
		Name:    name,
	})
}

// ListHolidays returns the holidays of {year}
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.badRequest(w, "invalid year", err)
		return
	}

	writeJSON(w, http.StatusOK, h.holidays.Year(year))
}

// GetVacation tells whether ?date is inside a school vacation
func (h *Handler) GetVacation(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r)
	if err != nil {
		h.badRequest(w, "invalid date", err)
		return
	}

	resp := VacationResponse{Date: dateutil.FormatDay(date)}
	if p, ok := h.vacations.Current(dateutil.Noon(date)); ok {
		resp.Vacation = true
		resp.Period = &p
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListVacations returns the periods starting in ?year, or every period
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		writeJSON(w, http.StatusOK, h.vacations.All())
		return
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		h.badRequest(w, "invalid year", err)
		return
	}
	writeJSON(w, http.StatusOK, h.vacations.InYear(year))
}

// UpcomingVacations returns the next ?count periods (3 by default)
func (h *Handler) UpcomingVacations(w http.ResponseWriter, r *http.Request) {
	count := defaultUpcoming
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.badRequest(w, "invalid count", fmt.Errorf("count must be a non-negative integer, got %q", raw))
			return
		}
		count = n
	}

	writeJSON(w, http.StatusOK, h.vacations.Upcoming(h.now(), count))
}

// dateParam reads ?date in the civil zone, defaulting to today
func (h *Handler) dateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return dateutil.StartOfDay(h.now().In(h.loc)), nil
	}

	date, err := dateutil.ParseDate(raw, h.loc)
	if err != nil {
		return time.Time{}, err
	}
	return date.In(h.loc), nil
}

func (h *Handler) badRequest(w http.ResponseWriter, message string, err error) {
	h.logger.Debug("Rejected request", zap.String("reason", message), zap.Error(err))
	writeError(w, http.StatusBadRequest, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
