// Package omdb looks up canonical movie metadata from the OMDb API.
package omdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/metrics"
)

const breakerName = "omdb-api"

// StatusError reports a non-200 answer from OMDb. It unwraps to
// domain.ErrNoMatch so callers treat it like any other miss.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("omdb returned status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return domain.ErrNoMatch
}

// response mirrors the subset of the OMDb payload we consume.
type response struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	IMDBRating string `json:"imdbRating"`
	Poster     string `json:"Poster"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Client implements domain.MetadataFetcher against OMDb. Requests are bound
// to the caller's context; there is no retry and no response cache.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[*domain.MovieMetadata]
}

// NewClient creates an OMDb client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*domain.MovieMetadata](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A title OMDb does not know is a healthy answer, and a request the
		// caller abandoned says nothing about OMDb.
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < http.StatusInternalServerError
			}
			return err == nil || errors.Is(err, domain.ErrNoMatch)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		cb:         cb,
	}
}

// FetchMetadata queries OMDb by exact title. It returns domain.ErrNoMatch
// when OMDb has no such title or answers with a non-200 status, and
// domain.ErrLookupUnavailable when OMDb cannot be reached.
func (c *Client) FetchMetadata(ctx context.Context, title string) (*domain.MovieMetadata, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrNoMatch
	}

	start := time.Now()
	meta, err := c.cb.Execute(func() (*domain.MovieMetadata, error) {
		return c.fetch(ctx, title)
	})
	elapsed := time.Since(start)

	switch {
	case err == nil:
		metrics.RecordMetadataLookup("match", elapsed)
		return meta, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordMetadataLookup("rejected", 0)
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, err)
	case errors.Is(err, domain.ErrNoMatch):
		metrics.RecordMetadataLookup("no_match", elapsed)
		return nil, err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		metrics.RecordMetadataLookup("canceled", elapsed)
		return nil, err
	default:
		metrics.RecordMetadataLookup("error", elapsed)
		return nil, err
	}
}

func (c *Client) fetch(ctx context.Context, title string) (*domain.MovieMetadata, error) {
	q := url.Values{}
	q.Set("t", title)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrLookupUnavailable, err)
	}

	if body.Response != "True" {
		slog.Debug("omdb no match", "title", title, "reason", body.Error)
		return nil, domain.ErrNoMatch
	}

	return toMetadata(body), nil
}

func toMetadata(r response) *domain.MovieMetadata {
	return &domain.MovieMetadata{
		Title:     notAvailable(r.Title),
		Director:  notAvailable(r.Director),
		Year:      parseYear(r.Year),
		Rating:    parseRating(r.IMDBRating),
		PosterURL: notAvailable(r.Poster),
	}
}

// notAvailable maps OMDb's "N/A" placeholder to an empty string.
func notAvailable(s string) string {
	s = strings.TrimSpace(s)
	if s == "N/A" {
		return ""
	}
	return s
}

// parseYear reads the leading digits, so series ranges like "2008–2013"
// yield their first year.
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return year
}

func parseRating(s string) float64 {
	rating, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return rating
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
