// Package server wires the dashboard, the JSON APIs and the metrics endpoint
// into one HTTP server with request logging and graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pfrederiksen/wc-dashboard/internal/config"
	"github.com/pfrederiksen/wc-dashboard/internal/dashboard"
	"github.com/pfrederiksen/wc-dashboard/internal/dataset"
	"github.com/pfrederiksen/wc-dashboard/internal/logger"
	"github.com/pfrederiksen/wc-dashboard/internal/metrics"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
)

// Route paths
const (
	PathIndex   = "/"
	PathUpdate  = "/_dash-update"
	PathWS      = "/ws"
	PathFinals  = "/api/finals"
	PathWins    = "/api/wins"
	PathStats   = "/api/stats"
	PathHealth  = "/health"
	PathMetrics = "/metrics"
)

var routes = []string{PathIndex, PathUpdate, PathWS, PathFinals, PathWins, PathStats, PathHealth, PathMetrics}

// Server serves one immutable dataset
type Server struct {
	cfg      config.Config
	data     *dataset.Dataset
	log      *logger.Logger
	recorder *metrics.Recorder
	handler  http.Handler
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Finals    int       `json:"finals"`
	Countries int       `json:"countries"`
	SourceURL string    `json:"source_url"`
	BuiltAt   time.Time `json:"built_at"`
}

// New builds the handler tree for ds. A nil log uses the default logger.
func New(cfg config.Config, ds *dataset.Dataset, log *logger.Logger) (*Server, error) {
	if ds == nil {
		return nil, errors.New("dataset is required")
	}
	if log == nil {
		log = logger.Default()
	}

	dash, err := dashboard.New(ds, log)
	if err != nil {
		return nil, fmt.Errorf("building dashboard: %w", err)
	}

	recorder := metrics.NewRecorder()
	recorder.SetDatasetSize(ds.Finals.Len(), ds.Wins.Len())

	dash.Registry().OnDispatch(func(input string, d time.Duration, err error) {
		recorder.RecordDispatch(input, d, err)
		if err != nil {
			log.Debug("callback failed", logger.Fields{"input": input, "error": err.Error()})
		}
	})

	s := &Server{
		cfg:      cfg,
		data:     ds,
		log:      log,
		recorder: recorder,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(PathIndex, dash.Index)
	mux.HandleFunc(PathUpdate, dash.Update)
	mux.HandleFunc(PathWS, dash.WebSocket)
	mux.HandleFunc(PathFinals, dash.Finals)
	mux.HandleFunc(PathWins, dash.Wins)
	mux.HandleFunc(PathStats, s.stats)
	mux.HandleFunc(PathHealth, s.health)
	mux.Handle(PathMetrics, recorder.Handler())

	s.handler = loggingMiddleware(log, recorder, mux)
	return s, nil
}

// Handler returns the root handler, including middleware
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the Prometheus recorder
func (s *Server) Metrics() *metrics.Recorder {
	return s.recorder
}

// Run listens on the configured port and serves until ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server starting", logger.Fields{"addr": ln.Addr().String()})
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received", nil)

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("graceful shutdown failed", nil, err)
		return fmt.Errorf("shutting down: %w", err)
	}

	s.log.Info("shutdown complete", nil)
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Finals:    s.data.Finals.Len(),
		Countries: s.data.Wins.Len(),
		SourceURL: s.data.SourceURL,
		BuiltAt:   s.data.BuiltAt,
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, logger.StatsSnapshot())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
