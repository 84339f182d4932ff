package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/handler"
	"github.com/msomdec/moviweb/internal/repository/sqlite"
	"github.com/msomdec/moviweb/internal/service"
)

const testSecret = "test-secret-for-handler-tests"

type testApp struct {
	srv    *httptest.Server
	db     *sqlite.DB
	client *http.Client
}

// newTestApp starts the full route set against a fresh database. A nil
// fetcher disables enrichment.
func newTestApp(t *testing.T, fetcher domain.MetadataFetcher) *testApp {
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

	flash, err := service.NewFlashService(testSecret)
	if err != nil {
		t.Fatalf("NewFlashService: %v", err)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux,
		service.NewUserService(db.Users()),
		service.NewMovieService(db.Movies(), fetcher),
		flash, db, false)

	srv := httptest.NewServer(handler.Wrap(mux))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}

	return &testApp{srv: srv, db: db, client: client}
}

func (a *testApp) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := a.client.Get(a.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := a.client.PostForm(a.srv.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (a *testApp) createUser(t *testing.T, name string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name}
	if err := a.db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	return u
}

func (a *testApp) createMovie(t *testing.T, userID int64, title string) *domain.Movie {
	t.Helper()
	m := &domain.Movie{UserID: userID, Title: title, Director: "Someone", Year: 1999, Rating: 7}
	if err := a.db.Movies().Create(context.Background(), m); err != nil {
		t.Fatalf("Create movie: %v", err)
	}
	return m
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

// stubFetcher returns a fixed result for every title.
type stubFetcher struct {
	meta  *domain.MovieMetadata
	err   error
	calls int
}

func (f *stubFetcher) FetchMetadata(_ context.Context, _ string) (*domain.MovieMetadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	m := *f.meta
	return &m, nil
}
