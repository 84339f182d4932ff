package domain

import (
	"context"
	"time"
)

// Movie is a single film record owned by exactly one user.
type Movie struct {
	ID        int64
	UserID    int64
	Title     string
	Director  string
	Year      int
	Rating    float64
	PosterURL string // Set only when the movie was enriched
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MovieRepository defines persistence operations for movies.
type MovieRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]Movie, error)
	GetByID(ctx context.Context, id int64) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	// Update overwrites every field of the movie, including its owner.
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int64) error
}
