package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the session's tally and game records over HTTP.
type Server struct {
	logger   *slog.Logger
	handlers *handlers
}

func New(logger *slog.Logger, sessionID string, tallies tallyReader, games gameReader) *Server {
	log := logger.With("component", "rest")

	return &Server{
		logger: log,
		handlers: &handlers{
			logger:    log,
			sessionID: sessionID,
			tallies:   tallies,
			games:     games,
		},
	}
}

func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", pingHandler)
	router.Get("/tally", that.handlers.getTally)
	router.Get("/games", that.handlers.listGames)
	router.Get("/games/{id}", that.handlers.getGame)

	return router
}

// Start serves on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
