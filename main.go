package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/msomdec/moviweb/internal/config"
	"github.com/msomdec/moviweb/internal/domain"
	"github.com/msomdec/moviweb/internal/handler"
	"github.com/msomdec/moviweb/internal/logging"
	"github.com/msomdec/moviweb/internal/omdb"
	"github.com/msomdec/moviweb/internal/repository/sqlite"
	"github.com/msomdec/moviweb/internal/service"
)

func main() {
	app := &cli.Command{
		Name:  "moviweb",
		Usage: "Track users and their favourite movies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Sources: cli.EnvVars(config.ConfigPathEnvVar),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply pending database migrations and exit",
				Action: migrate,
			},
		},
		Action: serve,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the default logger.
func setup(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging, os.Stdout, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return cfg, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sqlite.DB, error) {
	db, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	applied, err := db.MigrateCount(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied", "path", cfg.Database.Path, "applied", applied)
	return db, nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	return db.Close()
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var fetcher domain.MetadataFetcher
	if cfg.OMDb.EnrichmentEnabled() {
		fetcher = omdb.NewClient(cfg.OMDb.URL, cfg.OMDb.APIKey, nil)
		slog.Info("movie enrichment enabled", "url", cfg.OMDb.URL)
	} else {
		slog.Warn("OMDB_API_KEY not set, movie enrichment disabled")
	}

	flashService, err := service.NewFlashService(cfg.Security.SecretKey)
	if err != nil {
		return err
	}
	userService := service.NewUserService(db.Users())
	movieService := service.NewMovieService(db.Movies(), fetcher)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, userService, movieService, flashService, db, cfg.Security.CookieSecure)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler.Wrap(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
