package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/repository/sqlite"
)

func createTestUser(t *testing.T, db *sqlite.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{Name: name}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createTestMovie(t *testing.T, db *sqlite.DB, userID int64, title string) *domain.Movie {
	t.Helper()
	movie := &domain.Movie{
		UserID:   userID,
		Title:    title,
		Director: "Some Director",
		Year:     2001,
		Rating:   7.5,
	}
	if err := db.Movies().Create(context.Background(), movie); err != nil {
		t.Fatalf("create movie %s: %v", title, err)
	}
	return movie
}

func TestMovieRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewMovieRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "Alice")

	movie := &domain.Movie{
		UserID:    user.ID,
		Title:     "Inception",
		Director:  "Christopher Nolan",
		Year:      2010,
		Rating:    8.8,
		PosterURL: "https://example.com/inception.jpg",
	}
	if err := repo.Create(ctx, movie); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if movie.ID == 0 {
		t.Fatal("expected movie ID to be set after create")
	}

	movies, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(movies))
	}
	got := movies[0]
	if got.Title != "Inception" || got.Director != "Christopher Nolan" || got.Year != 2010 || got.Rating != 8.8 {
		t.Fatalf("unexpected movie fields: %+v", got)
	}
	if got.PosterURL != "https://example.com/inception.jpg" {
		t.Fatalf("expected poster to be stored, got %q", got.PosterURL)
	}
}

func TestMovieRepository_CreateUnknownUser(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewMovieRepository(db)

	err := repo.Create(context.Background(), &domain.Movie{UserID: 404, Title: "Ghost"})
	if !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestMovieRepository_ListByUserIsolated(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewMovieRepository(db)
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")
	createTestMovie(t, db, alice.ID, "Alien")
	createTestMovie(t, db, bob.ID, "Brazil")

	movies, err := repo.ListByUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Alien" {
		t.Fatalf("expected only Alien for Alice, got %+v", movies)
	}
}

func TestMovieRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewMovieRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "Alice")
	bob := createTestUser(t, db, "Bob")
	target := createTestMovie(t, db, alice.ID, "Alien")
	other := createTestMovie(t, db, alice.ID, "Aliens")

	target.Title = "Alien (Director's Cut)"
	target.Director = "Ridley Scott"
	target.Year = 1979
	target.Rating = 8.5
	target.UserID = bob.ID
	if err := repo.Update(ctx, target); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Alien (Director's Cut)" || got.Director != "Ridley Scott" ||
		got.Year != 1979 || got.Rating != 8.5 || got.UserID != bob.ID {
		t.Fatalf("update not applied: %+v", got)
	}

	untouched, err := repo.GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetByID other: %v", err)
	}
	if untouched.Title != "Aliens" || untouched.UserID != alice.ID || untouched.Year != 2001 {
		t.Fatalf("other movie changed: %+v", untouched)
	}
}

func TestMovieRepository_UpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewMovieRepository(db)
	user := createTestUser(t, db, "Alice")

	err := repo.Update(context.Background(), &domain.Movie{ID: 9999, UserID: user.ID, Title: "Nope"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMovieRepository_UpdateUnknownOwner(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewMovieRepository(db)
	user := createTestUser(t, db, "Alice")
	movie := createTestMovie(t, db, user.ID, "Alien")

	movie.UserID = 777
	if err := repo.Update(context.Background(), movie); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}

	got, err := repo.GetByID(context.Background(), movie.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.UserID != user.ID {
		t.Fatalf("expected owner to stay %d, got %d", user.ID, got.UserID)
	}
}

func TestMovieRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewMovieRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "Alice")
	movie := createTestMovie(t, db, user.ID, "Alien")

	if err := repo.Delete(ctx, movie.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, movie.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, movie.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}
