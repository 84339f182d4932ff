package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/service"
	"github.com/msomdec/moviweb/internal/view"
)

// UserHandler handles the user list and add-user pages.
type UserHandler struct {
	users   *service.UserService
	movies  *service.MovieService
	notices *flashCookies
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, movies *service.MovieService, notices *flashCookies) *UserHandler {
	return &UserHandler{users: users, movies: movies, notices: notices}
}

// HandleList renders every user.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	notice := h.notices.pop(w, r)

	users, err := h.users.List(r.Context())
	if err != nil {
		serverError(w, r, "list users", err)
		return
	}

	render(w, r, http.StatusOK, view.UsersPage(users, notice))
}

// HandleUserMovies renders the movies owned by one user.
func (h *UserHandler) HandleUserMovies(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		HandleNotFound(w, r)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			HandleNotFound(w, r)
			return
		}
		serverError(w, r, "get user", err)
		return
	}

	movies, err := h.movies.ListByUser(r.Context(), user.ID)
	if err != nil {
		serverError(w, r, "list user movies", err)
		return
	}

	render(w, r, http.StatusOK, view.UserMoviesPage(*user, movies, h.notices.pop(w, r)))
}

// HandleAddForm renders the empty add-user form.
func (h *UserHandler) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.AddUserPage(view.UserForm{}, h.notices.pop(w, r)))
}

// HandleAdd creates a user and redirects to the user list.
func (h *UserHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := view.UserForm{Name: r.FormValue("name")}

	user, err := h.users.Create(r.Context(), form.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			render(w, r, http.StatusUnprocessableEntity,
				view.AddUserPage(form, errorNotice("Error adding user: "+inputProblem(err))))
			return
		}
		slog.Error("create user", "error", err, "request_id", RequestIDFromContext(r.Context()))
		render(w, r, http.StatusInternalServerError, view.AddUserPage(form, errorNotice("Error adding user.")))
		return
	}

	slog.Info("user added", "user_id", user.ID)
	h.notices.set(w, successNotice("User added successfully!"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
