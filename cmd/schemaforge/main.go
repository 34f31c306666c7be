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

	"schemaforge/internal/api"
	"schemaforge/internal/api/associations"
	"schemaforge/internal/api/events"
	"schemaforge/internal/api/exports"
	"schemaforge/internal/api/objects"
	"schemaforge/internal/api/templates"
	"schemaforge/internal/config"
	"schemaforge/internal/coordinator"
	"schemaforge/internal/database"
	"schemaforge/internal/persist"
	"schemaforge/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	s := store.New(db)

	var persister persist.Persister = persist.Local{}
	if cfg.SyncURL != "" {
		persister = persist.NewClient(cfg.SyncURL)
		slog.Info("using remote persistence collaborator", "url", cfg.SyncURL)
	}
	coord := coordinator.New(s, persister)

	mux := http.NewServeMux()

	objects.RegisterRoutes(mux, s, coord)
	associations.RegisterRoutes(mux, s, coord)
	events.RegisterRoutes(mux)
	templates.RegisterRoutes(mux)
	exports.RegisterRoutes(mux, s)

	// Catch-all: return 404 in the standard error format.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(cfg.AuthToken),
		api.JSONContentType(),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting schemaforge server", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
