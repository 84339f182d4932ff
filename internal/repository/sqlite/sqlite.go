package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/moviweb/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle and hands out the per-entity repositories.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Movies must always reference an existing user.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// A single connection keeps the PRAGMAs above in effect for every query.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies any pending embedded migrations.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.MigrateCount(ctx)
	return err
}

// MigrateCount applies pending migrations and reports how many ran.
func (d *DB) MigrateCount(ctx context.Context) (int, error) {
	return migrations.Run(ctx, d.SqlDB)
}

// Ping verifies the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.SqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// Users returns a UserRepository backed by this database.
func (d *DB) Users() *UserRepository {
	return NewUserRepository(d)
}

// Movies returns a MovieRepository backed by this database.
func (d *DB) Movies() *MovieRepository {
	return NewMovieRepository(d)
}
