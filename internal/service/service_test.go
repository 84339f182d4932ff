package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// stubFetcher returns a fixed result and remembers the titles it was asked for.
type stubFetcher struct {
	mu     sync.Mutex
	meta   *domain.MovieMetadata
	err    error
	titles []string
}

func (f *stubFetcher) FetchMetadata(_ context.Context, title string) (*domain.MovieMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	if f.err != nil {
		return nil, f.err
	}
	m := *f.meta
	return &m, nil
}
