package vacation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/emersion/go-ical"
	"go.uber.org/zap"
)

const (
	// DefaultFeedURL is the French school calendar for zone B
	DefaultFeedURL     = "https://fr.ftp.opendatasoft.com/openscol/fr-en-calendrier-scolaire/Zone-B.ics"
	defaultHTTPTimeout = 30 * time.Second
	maxFeedSize        = 10 << 20

	untitledSummary = "Événement sans titre"
)

// Fetcher retrieves the raw calendar feed
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher implements Fetcher over HTTP(S)
type HTTPFetcher struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPFetcher creates a new HTTPFetcher; a zero timeout uses the default
func NewHTTPFetcher(timeout time.Duration, logger *zap.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads the feed, capping the body size
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported feed scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	f.logger.Debug("Fetching vacation feed",
		zap.String("url", u.Scheme+"://"+u.Host+u.Path))

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, maxFeedSize),
		Closer: resp.Body,
	}, nil
}

type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// ParseICS flattens every VEVENT of an iCalendar stream into periods.
// Floating and all-day times are read in loc.
func ParseICS(r io.Reader, loc *time.Location) ([]Period, error) {
	if loc == nil {
		loc = time.UTC
	}

	periods := []Period{}
	dec := ical.NewDecoder(r)

	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, event := range cal.Events() {
			p, err := periodFromEvent(event, loc)
			if err != nil {
				return nil, err
			}
			periods = append(periods, p)
		}
	}

	sortByStart(periods)
	return periods, nil
}

func periodFromEvent(event ical.Event, loc *time.Location) (Period, error) {
	summary, err := event.Props.Text(ical.PropSummary)
	if err != nil {
		return Period{}, fmt.Errorf("invalid event summary: %w", err)
	}
	if summary == "" {
		summary = untitledSummary
	}

	location, err := event.Props.Text(ical.PropLocation)
	if err != nil {
		return Period{}, fmt.Errorf("invalid event location: %w", err)
	}

	start, err := event.DateTimeStart(loc)
	if err != nil {
		return Period{}, fmt.Errorf("invalid start of %q: %w", summary, err)
	}

	end, err := event.DateTimeEnd(loc)
	if err != nil {
		return Period{}, fmt.Errorf("invalid end of %q: %w", summary, err)
	}

	return Period{
		Summary:  summary,
		Start:    start.UTC(),
		End:      end.UTC(),
		Location: location,
	}, nil
}

// Sync downloads and flattens the feed at feedURL
func Sync(ctx context.Context, fetcher Fetcher, feedURL string, loc *time.Location, logger *zap.Logger) ([]Period, error) {
	body, err := fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	periods, err := ParseICS(body, loc)
	if err != nil {
		return nil, err
	}

	logger.Info("Vacation feed converted",
		zap.Int("periods", len(periods)))

	return periods, nil
}
