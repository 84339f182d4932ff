package domain

import "context"

// Database defines lifecycle operations for the underlying database.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
