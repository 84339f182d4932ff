package handler_test

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
)

func TestHandleList_EmptyStore(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := app.get(t, "/")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "Users List") {
		t.Fatal("expected 'Users List' title")
	}
	if !strings.Contains(body, "No users yet.") {
		t.Fatal("expected empty state")
	}
}

func TestHandleList_ShowsUsers(t *testing.T) {
	app := newTestApp(t, nil)
	alice := app.createUser(t, "Alice")
	app.createUser(t, "Bob")

	_, body := app.get(t, "/")
	if !strings.Contains(body, "Alice") || !strings.Contains(body, "Bob") {
		t.Fatal("expected both users listed")
	}
	if !strings.Contains(body, `href="/user/`+strconv.FormatInt(alice.ID, 10)+`/movies"`) {
		t.Fatal("expected link to Alice's movies")
	}
}

func TestHandleUserMovies_UnknownUser(t *testing.T) {
	app := newTestApp(t, nil)

	for _, path := range []string{"/user/999/movies", "/user/abc/movies", "/user/0/movies"} {
		status, body := app.get(t, path)
		if status != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, status)
		}
		if !strings.Contains(body, "404") {
			t.Fatalf("%s: expected 404 page", path)
		}
	}
}

func TestHandleUserMovies_ListsOnlyOwnedMovies(t *testing.T) {
	app := newTestApp(t, nil)
	alice := app.createUser(t, "Alice")
	bob := app.createUser(t, "Bob")
	app.createMovie(t, alice.ID, "Alien")
	app.createMovie(t, bob.ID, "Heat")

	status, body := app.get(t, "/user/"+strconv.FormatInt(alice.ID, 10)+"/movies")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "Alien") {
		t.Fatal("expected Alice's movie")
	}
	if strings.Contains(body, "Heat") {
		t.Fatal("did not expect Bob's movie")
	}
}

func TestHandleAddUser_RedirectsWithFlash(t *testing.T) {
	app := newTestApp(t, nil)

	resp := app.post(t, "/add_user", url.Values{"name": {"Alice"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %s", loc)
	}

	_, body := app.get(t, "/")
	if !strings.Contains(body, "User added successfully!") {
		t.Fatal("expected success notice after redirect")
	}
	if !strings.Contains(body, "Alice") {
		t.Fatal("expected new user listed")
	}

	// The notice is consumed by the first render.
	_, body = app.get(t, "/")
	if strings.Contains(body, "User added successfully!") {
		t.Fatal("expected notice to be shown only once")
	}

	users, err := app.db.Users().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Fatalf("expected exactly Alice stored, got %+v", users)
	}
}

func TestHandleAddUser_InvalidName(t *testing.T) {
	app := newTestApp(t, nil)

	resp := app.post(t, "/add_user", url.Values{"name": {"   "}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Error adding user") {
		t.Fatal("expected error notice")
	}
	if !strings.Contains(body, "is-danger") {
		t.Fatal("expected error styling")
	}

	users, err := app.db.Users().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users stored, got %d", len(users))
	}
}

func TestHandleAddUser_KeepsSubmittedValue(t *testing.T) {
	app := newTestApp(t, nil)

	long := strings.Repeat("x", 101)
	resp := app.post(t, "/add_user", url.Values{"name": {long}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if !strings.Contains(readBody(t, resp), `value="`+long+`"`) {
		t.Fatal("expected submitted name redisplayed")
	}
}

func TestHandleAddUserForm(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := app.get(t, "/add_user")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, `action="/add_user"`) {
		t.Fatal("expected add user form")
	}
}

func TestUnknownPath(t *testing.T) {
	app := newTestApp(t, nil)

	status, _ := app.get(t, "/nonexistent")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestTamperedFlashIgnored(t *testing.T) {
	app := newTestApp(t, nil)

	req, err := http.NewRequest(http.MethodGet, app.srv.URL+"/", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: "flash", Value: "not-a-token"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if strings.Contains(readBody(t, resp), `id="notice"`) {
		t.Fatal("expected no notice for tampered cookie")
	}
}
