package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/view"
)

// render writes a templ component as an HTML page with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}

// HandleNotFound renders the 404 page for any unmatched path.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, view.NotFoundPage())
}

func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "request_id", RequestIDFromContext(r.Context()))
	render(w, r, http.StatusInternalServerError, view.ServerErrorPage())
}

// pathID parses the {id} path value. ok is false for anything that cannot be
// a stored identifier.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// inputProblem returns the human-readable part of a validation error.
func inputProblem(err error) string {
	if errors.Is(err, domain.ErrUnknownUser) {
		return "the selected user does not exist"
	}
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrInvalidInput.Error()+": "); i >= 0 {
		msg = msg[i+len(domain.ErrInvalidInput.Error())+2:]
	}
	return strings.ReplaceAll(msg, "\n", "; ")
}

func errorNotice(msg string) domain.Notice {
	return domain.Notice{Kind: domain.NoticeError, Message: msg}
}

func successNotice(msg string) domain.Notice {
	return domain.Notice{Kind: domain.NoticeSuccess, Message: msg}
}

func userMoviesPath(userID int64) string {
	return "/user/" + strconv.FormatInt(userID, 10) + "/movies"
}
