package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/msomdec/moviweb/internal/domain"
)

// MovieForm carries the raw movie form fields as submitted.
type MovieForm struct {
	Title    string
	Director string
	Year     string
	Rating   string
	UserID   string
}

type movieInput struct {
	UserID   int64   `validate:"gt=0" label:"owner"`
	Title    string  `validate:"required,max=200"`
	Director string  `validate:"max=200"`
	Year     int     `validate:"omitempty,min=1878,max=2100"`
	Rating   float64 `validate:"gte=0,lte=10"`
}

// MovieService handles movie CRUD and optional metadata enrichment.
type MovieService struct {
	movies  domain.MovieRepository
	fetcher domain.MetadataFetcher
}

// NewMovieService creates a new MovieService. A nil fetcher disables enrichment.
func NewMovieService(movies domain.MovieRepository, fetcher domain.MetadataFetcher) *MovieService {
	return &MovieService{movies: movies, fetcher: fetcher}
}

// EnrichmentEnabled reports whether a metadata fetcher is configured.
func (s *MovieService) EnrichmentEnabled() bool {
	return s.fetcher != nil
}

// ListByUser returns the movies owned by a user.
func (s *MovieService) ListByUser(ctx context.Context, userID int64) ([]domain.Movie, error) {
	return s.movies.ListByUser(ctx, userID)
}

// GetByID returns the movie or domain.ErrNotFound.
func (s *MovieService) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	return s.movies.GetByID(ctx, id)
}

// Create stores a new movie from the submitted form. When lookup is set and
// enrichment is enabled, the title is looked up first and a miss aborts the
// create with domain.ErrNoMatch. Year and rating are only checked once the
// lookup has run, so a value OMDb replaces is never rejected.
func (s *MovieService) Create(ctx context.Context, form MovieForm, lookup bool) (*domain.Movie, error) {
	p := parseMovieForm(form)

	var poster string
	if lookup && s.fetcher != nil {
		if err := p.withoutNumbers().validate(); err != nil {
			return nil, err
		}
		meta, err := s.fetcher.FetchMetadata(ctx, p.in.Title)
		if err != nil {
			return nil, fmt.Errorf("fetch metadata for %q: %w", p.in.Title, err)
		}
		p.enrich(meta)
		poster = meta.PosterURL
		slog.Debug("movie enriched", "title", p.in.Title, "year", p.in.Year)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	movie := &domain.Movie{
		UserID:    p.in.UserID,
		Title:     p.in.Title,
		Director:  p.in.Director,
		Year:      p.in.Year,
		Rating:    p.in.Rating,
		PosterURL: poster,
	}
	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}
	return movie, nil
}

// Update overwrites every field of an existing movie, including its owner.
// The stored poster is kept.
func (s *MovieService) Update(ctx context.Context, id int64, form MovieForm) (*domain.Movie, error) {
	p := parseMovieForm(form)
	if err := p.validate(); err != nil {
		return nil, err
	}

	movie, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.UserID = p.in.UserID
	movie.Title = p.in.Title
	movie.Director = p.in.Director
	movie.Year = p.in.Year
	movie.Rating = p.in.Rating

	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	return movie, nil
}

// Delete removes a movie. It returns domain.ErrNotFound for unknown ids.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	return s.movies.Delete(ctx, id)
}

// Preview looks up metadata for a title without storing anything.
func (s *MovieService) Preview(ctx context.Context, title string) (*domain.MovieMetadata, error) {
	if s.fetcher == nil {
		return nil, domain.ErrLookupUnavailable
	}
	return s.fetcher.FetchMetadata(ctx, title)
}

// parsedMovie is a movie form converted to typed fields. Year and rating
// parse failures are held apart because enrichment may still supply them.
type parsedMovie struct {
	in        movieInput
	errs      []error
	yearErr   error
	ratingErr error
}

func parseMovieForm(form MovieForm) parsedMovie {
	p := parsedMovie{in: movieInput{
		Title:    strings.TrimSpace(form.Title),
		Director: strings.TrimSpace(form.Director),
	}}

	if v := strings.TrimSpace(form.UserID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.errs = append(p.errs, errors.New("owner is invalid"))
		}
		p.in.UserID = id
	}
	if v := strings.TrimSpace(form.Year); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			p.yearErr = errors.New("year must be a whole number")
		}
		p.in.Year = year
	}
	if v := strings.TrimSpace(form.Rating); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.ratingErr = errors.New("rating must be a number")
		}
		p.in.Rating = rating
	}
	return p
}

// withoutNumbers drops year and rating so the fields a lookup needs can be
// checked on their own.
func (p parsedMovie) withoutNumbers() parsedMovie {
	p.in.Year, p.in.Rating = 0, 0
	p.yearErr, p.ratingErr = nil, nil
	return p
}

// enrich lets looked-up values win, keeping the submitted value for any
// field the lookup left empty.
func (p *parsedMovie) enrich(meta *domain.MovieMetadata) {
	if meta.Title != "" {
		p.in.Title = meta.Title
	}
	if meta.Director != "" {
		p.in.Director = meta.Director
	}
	if meta.Year != 0 {
		p.in.Year, p.yearErr = meta.Year, nil
	}
	if meta.Rating != 0 {
		p.in.Rating, p.ratingErr = meta.Rating, nil
	}
}

func (p parsedMovie) validate() error {
	errs := p.errs
	for _, err := range []error{p.yearErr, p.ratingErr} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return validateStruct(p.in)
}
