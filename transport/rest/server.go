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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the HTTP API. The sessions and participants routes are only
// mounted when their readers are given, so without the redis mirror they answer 404.
func NewRouter(
	logger *slog.Logger,
	sessions sessionReader,
	participants participantReader,
	gatherer prometheus.Gatherer,
	allowedOrigins []string,
) http.Handler {
	logger = logger.With("component", "rest")

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", NewPingHandler().PingHandler)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if sessions != nil {
		router.Get("/sessions/{id}", NewSessionHandler(logger, sessions).GetSession)
	}

	if participants != nil {
		router.Get("/participants/{id}/session", NewParticipantHandler(logger, participants).GetParticipantSession)
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(router)
}

// Start serves handler on port until ctx is done.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
