package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/msto63/ecsfault/foundation/core/log"
	"github.com/msto63/ecsfault/pkg/core/config"
	"github.com/msto63/ecsfault/pkg/core/health"
	"github.com/msto63/ecsfault/pkg/core/version"
)

// Server exposes the hub over HTTP
type Server struct {
	cfg    config.FeedConfig
	hub    *Hub
	logger *log.Logger
	health *health.Registry
}

// NewServer creates a feed server for hub
func NewServer(cfg config.FeedConfig, hub *Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.GetDefault()
	}
	if cfg.Path == "" {
		cfg.Path = "/faults"
	}
	s := &Server{
		cfg:    cfg,
		hub:    hub,
		logger: logger.WithName("feed"),
		health: health.NewRegistry("ecsfault-feed", version.Feed),
	}
	s.health.Register(health.NewChecker("hub", s.checkHub))
	return s
}

// RegisterCheck adds a check to the /health report
func (s *Server) RegisterCheck(c health.Checker) {
	s.health.Register(c)
}

// checkHub reports degraded while subscribers miss records
func (s *Server) checkHub(ctx context.Context) health.CheckResult {
	result := health.CheckResult{
		Status: health.StatusHealthy,
		Details: map[string]interface{}{
			"subscribers": s.hub.Subscribers(),
			"dropped":     s.hub.Dropped(),
		},
	}
	if s.hub.Dropped() > 0 {
		result.Status = health.StatusDegraded
		result.Message = "slow subscribers are missing faults"
	}
	return result
}

// Handler returns the HTTP routes of the feed
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, NewHandler(s.hub, s.logger))
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report := s.health.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if report.Status == health.StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(report)
}

// ListenAndServe serves the feed until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the feed on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("fault feed listening", log.String("addr", ln.Addr().String()), log.String("path", s.cfg.Path))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down fault feed")
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down feed: %w", err)
	}
	return nil
}
