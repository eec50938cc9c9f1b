// Package rest exposes the catalog over HTTP: the /api/scp resource, the
// image upload endpoints, health probes and Prometheus metrics.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/logging"
	"github.com/gorilla/mux"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Handlers    *Handlers
	Health      *HealthHandler
	Metrics     *Metrics
	Logger      logging.Logger
	SecretKey   string
	CORSOrigins string
}

// NewRouter builds the full handler tree.
func NewRouter(c RouterConfig) http.Handler {
	router := mux.NewRouter()
	router.Use(c.Metrics.Middleware)

	guard := RequireToken(c.SecretKey, c.Logger)
	h := c.Handlers

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/scp", h.ListEntries).Methods(http.MethodGet)
	api.HandleFunc("/scp/{id}", h.GetEntry).Methods(http.MethodGet)
	api.Handle("/scp", guard(http.HandlerFunc(h.CreateEntry))).Methods(http.MethodPost)
	api.Handle("/scp/{id}", guard(http.HandlerFunc(h.UpdateEntry))).Methods(http.MethodPut)
	api.Handle("/scp/{id}", guard(http.HandlerFunc(h.DeleteEntry))).Methods(http.MethodDelete)

	api.Handle("/images", guard(http.HandlerFunc(h.RequestUpload))).Methods(http.MethodPost)
	api.Handle("/images/{name}/sign", guard(http.HandlerFunc(h.SignImage))).Methods(http.MethodPost)

	router.HandleFunc("/healthz", c.Health.Live).Methods(http.MethodGet)
	router.HandleFunc("/readyz", c.Health.Ready).Methods(http.MethodGet)
	router.Handle("/metrics", c.Metrics.Handler()).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})

	return Chain(Recovery(c.Logger), RequestID, Logger(c.Logger), CORS(c.CORSOrigins))(router)
}

// Server is an http.Server bound to the catalog router.
type Server struct {
	httpServer      *http.Server
	logger          logging.Logger
	shutdownTimeout time.Duration
}

// NewServer builds the HTTP server. When logger is slog backed, net/http's
// own error output (TLS handshakes, handler panics) goes through it too.
func NewServer(addr string, handler http.Handler, logger logging.Logger, shutdownTimeout time.Duration) *Server {
	hs := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if sl, ok := logger.(interface{ Slog() *slog.Logger }); ok {
		hs.ErrorLog = slog.NewLogLogger(sl.Slog().Handler(), slog.LevelWarn)
	}

	return &Server{
		httpServer:      hs,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info(ctx, "http server shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
