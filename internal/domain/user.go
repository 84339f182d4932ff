package domain

import (
	"context"
	"time"
)

// User owns a collection of movies.
type User struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, user *User) error
}
