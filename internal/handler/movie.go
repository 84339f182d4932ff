package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/service"
	"github.com/msomdec/moviweb/internal/view"
)

// MovieHandler handles adding, editing, deleting and previewing movies.
type MovieHandler struct {
	users   *service.UserService
	movies  *service.MovieService
	notices *flashCookies
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(users *service.UserService, movies *service.MovieService, notices *flashCookies) *MovieHandler {
	return &MovieHandler{users: users, movies: movies, notices: notices}
}

// previewSignals mirrors the datastar signals bound on the add-movie form.
type previewSignals struct {
	Title string `json:"title"`
}

// HandleAddForm renders the add-movie form. A user_id query parameter
// preselects the owner.
func (h *MovieHandler) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	notice := h.notices.pop(w, r)

	users, err := h.users.List(r.Context())
	if err != nil {
		serverError(w, r, "list users", err)
		return
	}

	form := view.MovieForm{
		UserID: r.URL.Query().Get("user_id"),
		Lookup: h.movies.EnrichmentEnabled(),
	}
	render(w, r, http.StatusOK, view.AddMoviePage(users, form, h.movies.EnrichmentEnabled(), notice))
}

// HandleAdd creates a movie, enriching it first when requested, and
// redirects to the owner's movie list.
func (h *MovieHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := movieFormFromRequest(r)
	form.Lookup = r.FormValue("lookup") != ""

	movie, err := h.movies.Create(r.Context(), toServiceForm(form), form.Lookup)
	if err != nil {
		status, notice := addMovieFailure(r, err)
		h.renderAddForm(w, r, status, form, notice)
		return
	}

	slog.Info("movie added", "movie_id", movie.ID, "user_id", movie.UserID)
	h.notices.set(w, successNotice("Movie added successfully!"))
	http.Redirect(w, r, userMoviesPath(movie.UserID), http.StatusSeeOther)
}

// HandlePreview answers the datastar lookup button with a metadata card
// patched into #movie-preview. Nothing is stored.
func (h *MovieHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var signals previewSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	meta, err := h.movies.Preview(r.Context(), signals.Title)
	message := ""
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNoMatch):
		message = "Movie not found."
	case errors.Is(err, domain.ErrLookupUnavailable):
		slog.Warn("movie preview unavailable", "error", err)
		message = "Movie lookup is unavailable right now."
	default:
		slog.Error("movie preview", "error", err)
		message = "Movie lookup failed."
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(view.MoviePreview(meta, message)); err != nil {
		slog.Error("patch movie preview", "error", err)
	}
}

// HandleUpdateForm renders the edit form for an existing movie.
func (h *MovieHandler) HandleUpdateForm(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.lookupMovie(w, r)
	if !ok {
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		serverError(w, r, "list users", err)
		return
	}

	render(w, r, http.StatusOK, view.UpdateMoviePage(*movie, users, view.MovieFormFrom(*movie), h.notices.pop(w, r)))
}

// HandleUpdate overwrites a movie and redirects to its (possibly new) owner's list.
func (h *MovieHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.lookupMovie(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := movieFormFromRequest(r)

	updated, err := h.movies.Update(r.Context(), movie.ID, toServiceForm(form))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			HandleNotFound(w, r)
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownUser):
			h.renderUpdateForm(w, r, http.StatusUnprocessableEntity, *movie, form,
				errorNotice("Error updating movie: "+inputProblem(err)))
		default:
			slog.Error("update movie", "movie_id", movie.ID, "error", err, "request_id", RequestIDFromContext(r.Context()))
			h.renderUpdateForm(w, r, http.StatusInternalServerError, *movie, form, errorNotice("Error updating movie."))
		}
		return
	}

	slog.Info("movie updated", "movie_id", updated.ID, "user_id", updated.UserID)
	h.notices.set(w, successNotice("Movie updated successfully!"))
	http.Redirect(w, r, userMoviesPath(updated.UserID), http.StatusSeeOther)
}

// HandleDelete removes a movie and always redirects to the owner's list.
func (h *MovieHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.lookupMovie(w, r)
	if !ok {
		return
	}

	if err := h.movies.Delete(r.Context(), movie.ID); err != nil {
		slog.Error("delete movie", "movie_id", movie.ID, "error", err, "request_id", RequestIDFromContext(r.Context()))
		h.notices.set(w, errorNotice("Error deleting movie."))
	} else {
		slog.Info("movie deleted", "movie_id", movie.ID)
		h.notices.set(w, successNotice("Movie deleted successfully!"))
	}

	http.Redirect(w, r, userMoviesPath(movie.UserID), http.StatusSeeOther)
}

// lookupMovie resolves the {id} path value, writing the 404 or 500 page
// itself when no movie can be returned.
func (h *MovieHandler) lookupMovie(w http.ResponseWriter, r *http.Request) (*domain.Movie, bool) {
	id, ok := pathID(r)
	if !ok {
		HandleNotFound(w, r)
		return nil, false
	}

	movie, err := h.movies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			HandleNotFound(w, r)
			return nil, false
		}
		serverError(w, r, "get movie", err)
		return nil, false
	}
	return movie, true
}

func (h *MovieHandler) renderAddForm(w http.ResponseWriter, r *http.Request, status int, form view.MovieForm, notice domain.Notice) {
	users, err := h.users.List(r.Context())
	if err != nil {
		serverError(w, r, "list users", err)
		return
	}
	render(w, r, status, view.AddMoviePage(users, form, h.movies.EnrichmentEnabled(), notice))
}

func (h *MovieHandler) renderUpdateForm(w http.ResponseWriter, r *http.Request, status int, movie domain.Movie, form view.MovieForm, notice domain.Notice) {
	users, err := h.users.List(r.Context())
	if err != nil {
		serverError(w, r, "list users", err)
		return
	}
	render(w, r, status, view.UpdateMoviePage(movie, users, form, notice))
}

// addMovieFailure maps a create error to a response status and notice.
func addMovieFailure(r *http.Request, err error) (int, domain.Notice) {
	switch {
	case errors.Is(err, domain.ErrNoMatch):
		return http.StatusUnprocessableEntity, errorNotice("Movie not found.")
	case errors.Is(err, domain.ErrLookupUnavailable):
		slog.Warn("movie lookup unavailable", "error", err)
		return http.StatusServiceUnavailable, errorNotice("Movie lookup is unavailable right now. Try again or add the movie without lookup.")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownUser):
		return http.StatusUnprocessableEntity, errorNotice("Error adding movie: " + inputProblem(err))
	default:
		slog.Error("create movie", "error", err, "request_id", RequestIDFromContext(r.Context()))
		return http.StatusInternalServerError, errorNotice("Error adding movie.")
	}
}

func movieFormFromRequest(r *http.Request) view.MovieForm {
	return view.MovieForm{
		Title:    r.FormValue("title"),
		Director: r.FormValue("director"),
		Year:     r.FormValue("year"),
		Rating:   r.FormValue("rating"),
		UserID:   r.FormValue("user_id"),
	}
}

func toServiceForm(f view.MovieForm) service.MovieForm {
	return service.MovieForm{
		Title:    f.Title,
		Director: f.Director,
		Year:     f.Year,
		Rating:   f.Rating,
		UserID:   f.UserID,
	}
}
