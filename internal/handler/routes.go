package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, users *service.UserService, movies *service.MovieService, flash *service.FlashService, db domain.Database, cookieSecure bool) {
	notices := newFlashCookies(flash, cookieSecure)
	userHandler := NewUserHandler(users, movies, notices)
	movieHandler := NewMovieHandler(users, movies, notices)
	healthHandler := NewHealthHandler(db)

	mux.HandleFunc("GET /healthz", healthHandler.HandleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /{$}", userHandler.HandleList)
	mux.HandleFunc("GET /user/{id}/movies", userHandler.HandleUserMovies)
	mux.HandleFunc("GET /add_user", userHandler.HandleAddForm)
	mux.HandleFunc("POST /add_user", userHandler.HandleAdd)

	mux.HandleFunc("GET /add_movie", movieHandler.HandleAddForm)
	mux.HandleFunc("POST /add_movie", movieHandler.HandleAdd)
	mux.HandleFunc("GET /add_movie/preview", movieHandler.HandlePreview)
	mux.HandleFunc("GET /update_movie/{id}", movieHandler.HandleUpdateForm)
	mux.HandleFunc("POST /update_movie/{id}", movieHandler.HandleUpdate)
	mux.HandleFunc("POST /delete_movie/{id}", movieHandler.HandleDelete)

	mux.HandleFunc("/", HandleNotFound)
}
