package service_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/repository/sqlite"
	"github.com/msomdec/moviweb/internal/service"
)

func setupMovies(t *testing.T, fetcher domain.MetadataFetcher) (*service.MovieService, *sqlite.DB, *domain.User) {
	t.Helper()
	db := newTestDB(t)
	user, err := service.NewUserService(db.Users()).Create(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return service.NewMovieService(db.Movies(), fetcher), db, user
}

func formFor(userID int64, title string) service.MovieForm {
	return service.MovieForm{
		Title:    title,
		Director: "Submitted Director",
		Year:     "1999",
		Rating:   "6.5",
		UserID:   strconv.FormatInt(userID, 10),
	}
}

func TestMovieService_CreateWithoutEnrichment(t *testing.T) {
	movies, _, user := setupMovies(t, nil)
	ctx := context.Background()

	if movies.EnrichmentEnabled() {
		t.Fatal("expected enrichment disabled with nil fetcher")
	}

	movie, err := movies.Create(ctx, formFor(user.ID, "The Matrix"), true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if movie.Title != "The Matrix" || movie.Director != "Submitted Director" || movie.Year != 1999 || movie.Rating != 6.5 {
		t.Fatalf("expected submitted fields, got %+v", movie)
	}

	list, err := movies.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].ID != movie.ID {
		t.Fatalf("expected created movie in list, got %+v", list)
	}
}

func TestMovieService_CreateEnrichedOverridesSubmitted(t *testing.T) {
	fetcher := &stubFetcher{meta: &domain.MovieMetadata{
		Title:     "The Matrix",
		Director:  "Lana Wachowski, Lilly Wachowski",
		Year:      1999,
		Rating:    8.7,
		PosterURL: "https://example.com/matrix.jpg",
	}}
	movies, _, user := setupMovies(t, fetcher)

	form := formFor(user.ID, "the matrix")
	form.Year = "2000"
	movie, err := movies.Create(context.Background(), form, true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(fetcher.titles) != 1 || fetcher.titles[0] != "the matrix" {
		t.Fatalf("expected one lookup for the submitted title, got %v", fetcher.titles)
	}
	if movie.Title != "The Matrix" || movie.Director != "Lana Wachowski, Lilly Wachowski" ||
		movie.Year != 1999 || movie.Rating != 8.7 || movie.PosterURL != "https://example.com/matrix.jpg" {
		t.Fatalf("expected enriched fields, got %+v", movie)
	}
}

func TestMovieService_CreateEnrichedFallsBackForMissingFields(t *testing.T) {
	fetcher := &stubFetcher{meta: &domain.MovieMetadata{Title: "Obscure Film"}}
	movies, _, user := setupMovies(t, fetcher)

	movie, err := movies.Create(context.Background(), formFor(user.ID, "obscure film"), true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if movie.Title != "Obscure Film" {
		t.Errorf("expected enriched title, got %q", movie.Title)
	}
	if movie.Director != "Submitted Director" || movie.Year != 1999 || movie.Rating != 6.5 {
		t.Errorf("expected submitted fallbacks, got %+v", movie)
	}
}

func TestMovieService_CreateEnrichedReplacesMalformedNumbers(t *testing.T) {
	fetcher := &stubFetcher{meta: &domain.MovieMetadata{Title: "Alien", Year: 1979, Rating: 8.5}}
	movies, _, user := setupMovies(t, fetcher)

	form := formFor(user.ID, "alien")
	form.Year = "late seventies"
	form.Rating = "great"
	movie, err := movies.Create(context.Background(), form, true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if movie.Year != 1979 || movie.Rating != 8.5 {
		t.Fatalf("expected looked-up year and rating, got %+v", movie)
	}
}

func TestMovieService_CreateEnrichedKeepsErrorForFieldNotReplaced(t *testing.T) {
	fetcher := &stubFetcher{meta: &domain.MovieMetadata{Title: "Alien", Rating: 8.5}}
	movies, _, user := setupMovies(t, fetcher)

	form := formFor(user.ID, "alien")
	form.Year = "late seventies"
	_, err := movies.Create(context.Background(), form, true)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "year must be a whole number") {
		t.Fatalf("expected year message, got %q", err.Error())
	}
	if len(fetcher.titles) != 1 {
		t.Fatalf("expected one lookup, got %v", fetcher.titles)
	}
}

func TestMovieService_CreateEnrichedRejectsMissingTitleBeforeLookup(t *testing.T) {
	fetcher := &stubFetcher{meta: &domain.MovieMetadata{Title: "Alien"}}
	movies, _, user := setupMovies(t, fetcher)

	_, err := movies.Create(context.Background(), formFor(user.ID, "  "), true)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(fetcher.titles) != 0 {
		t.Fatalf("expected no lookup for a blank title, got %v", fetcher.titles)
	}
}

func TestMovieService_CreateNoMatchCreatesNothing(t *testing.T) {
	fetcher := &stubFetcher{err: domain.ErrNoMatch}
	movies, _, user := setupMovies(t, fetcher)
	ctx := context.Background()

	_, err := movies.Create(ctx, formFor(user.ID, "Not A Real Movie"), true)
	if !errors.Is(err, domain.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}

	list, err := movies.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no movies after a miss, got %d", len(list))
	}
}

func TestMovieService_CreateLookupSkipped(t *testing.T) {
	fetcher := &stubFetcher{err: domain.ErrNoMatch}
	movies, _, user := setupMovies(t, fetcher)

	movie, err := movies.Create(context.Background(), formFor(user.ID, "Home Video"), false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(fetcher.titles) != 0 {
		t.Fatalf("expected no lookup, got %v", fetcher.titles)
	}
	if movie.Title != "Home Video" {
		t.Fatalf("unexpected title %q", movie.Title)
	}
}

func TestMovieService_CreateUnknownUser(t *testing.T) {
	movies, _, _ := setupMovies(t, nil)

	_, err := movies.Create(context.Background(), formFor(999, "Orphan"), false)
	if !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestMovieService_CreateValidation(t *testing.T) {
	movies, _, user := setupMovies(t, nil)
	uid := strconv.FormatInt(user.ID, 10)

	tests := []struct {
		name    string
		form    service.MovieForm
		wantMsg string
	}{
		{"missing title", service.MovieForm{UserID: uid}, "title is required"},
		{"missing owner", service.MovieForm{Title: "X"}, "owner must be greater than 0"},
		{"bad owner", service.MovieForm{Title: "X", UserID: "abc"}, "owner is invalid"},
		{"bad year", service.MovieForm{Title: "X", UserID: uid, Year: "soon"}, "year must be a whole number"},
		{"year range", service.MovieForm{Title: "X", UserID: uid, Year: "1500"}, "year must be at least 1878"},
		{"bad rating", service.MovieForm{Title: "X", UserID: uid, Rating: "great"}, "rating must be a number"},
		{"rating range", service.MovieForm{Title: "X", UserID: uid, Rating: "11"}, "rating must be at most 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := movies.Create(context.Background(), tt.form, false)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestMovieService_UpdateOverwritesAllFields(t *testing.T) {
	movies, db, alice := setupMovies(t, nil)
	ctx := context.Background()

	bob, err := service.NewUserService(db.Users()).Create(ctx, "Bob")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}
	target, err := movies.Create(ctx, formFor(alice.ID, "Heat"), false)
	if err != nil {
		t.Fatalf("create target: %v", err)
	}
	other, err := movies.Create(ctx, formFor(alice.ID, "Ronin"), false)
	if err != nil {
		t.Fatalf("create other: %v", err)
	}

	updated, err := movies.Update(ctx, target.ID, service.MovieForm{
		Title:    "Heat (1995)",
		Director: "Michael Mann",
		Year:     "1995",
		Rating:   "8.3",
		UserID:   strconv.FormatInt(bob.ID, 10),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.UserID != bob.ID || updated.Title != "Heat (1995)" || updated.Director != "Michael Mann" ||
		updated.Year != 1995 || updated.Rating != 8.3 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	bobMovies, _ := movies.ListByUser(ctx, bob.ID)
	if len(bobMovies) != 1 || bobMovies[0].ID != target.ID {
		t.Fatalf("expected target under new owner, got %+v", bobMovies)
	}

	untouched, err := movies.GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetByID other: %v", err)
	}
	if untouched.Title != "Ronin" || untouched.UserID != alice.ID {
		t.Fatalf("other movie changed: %+v", untouched)
	}
}

func TestMovieService_UpdateNotFound(t *testing.T) {
	movies, _, user := setupMovies(t, nil)

	_, err := movies.Update(context.Background(), 12345, formFor(user.ID, "Ghost"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMovieService_Delete(t *testing.T) {
	movies, _, user := setupMovies(t, nil)
	ctx := context.Background()

	movie, err := movies.Create(ctx, formFor(user.ID, "Heat"), false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := movies.Delete(ctx, movie.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := movies.GetByID(ctx, movie.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMovieService_PreviewDisabled(t *testing.T) {
	movies, _, _ := setupMovies(t, nil)

	if _, err := movies.Preview(context.Background(), "Heat"); !errors.Is(err, domain.ErrLookupUnavailable) {
		t.Fatalf("expected ErrLookupUnavailable, got %v", err)
	}
}
