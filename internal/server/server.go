// Package server provides the HTTP REST API for the career advisor.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/career-advisor/internal/observability"
	"github.com/jonathan/career-advisor/internal/recommend"
	"github.com/jonathan/career-advisor/internal/server/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sweeper removes expired sessions and reports how many remain
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	engine      *recommend.Engine
	sweeper     Sweeper
	logger      *zap.Logger
	metrics     *observability.Metrics
	rateLimiter *ratelimit.Limiter
	cfg         Config
}

// Config holds server configuration
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	SweepInterval   time.Duration
	RateLimit       *ratelimit.Config // nil loads the RATE_LIMIT_* environment
}

// New creates a new server instance. sweeper may be nil when sessions expire
// on their own.
func New(cfg Config, engine *recommend.Engine, sweeper Sweeper, metrics *observability.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 << 20
	}
	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}

	s := &Server{
		engine:      engine,
		sweeper:     sweeper,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: ratelimit.NewLimiter(rl),
		cfg:         cfg,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped router
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Conversation
	mux.HandleFunc("POST /api/ai/chat", s.handleChat)
	mux.HandleFunc("POST /api/ai/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/ai/session/{sessionId}", s.handleSessionHistory)
	mux.HandleFunc("DELETE /api/ai/session/{sessionId}", s.handleClearSession)

	// Recommendations and catalog
	mux.HandleFunc("POST /api/ai/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /api/ai/jobs/search", s.handleSearchJobs)
	mux.HandleFunc("POST /api/ai/resources", s.handleResources)
	mux.HandleFunc("POST /api/ai/mentorship", s.handleMentorship)
	mux.HandleFunc("GET /api/ai/mentorship/platforms", s.handlePlatforms)

	// CV analysis
	mux.HandleFunc("POST /api/cv/analyze", s.handleAnalyzeCV)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start serves HTTP and sweeps expired sessions until ctx is cancelled, then
// shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if s.sweeper != nil && s.cfg.SweepInterval > 0 {
		g.Go(func() error {
			s.runSweeper(gCtx)
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down server")

		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		s.rateLimiter.Stop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}

// runSweeper periodically drops expired sessions and publishes the live count
func (s *Server) runSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Server) sweepOnce(ctx context.Context) {
	removed, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.logger.Warn("session sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Debug("expired sessions removed", zap.Int("count", removed))
	}

	live, err := s.sweeper.Count(ctx)
	if err != nil {
		s.logger.Warn("session count failed", zap.Error(err))
		return
	}
	s.metrics.ActiveSessions.Set(float64(live))
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status code and writes it. Server errors are
// logged and their details hidden from the client.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(fallback,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		s.errorResponse(w, status, fallback)
		return
	}
	s.errorResponse(w, status, publicMessage(err))
}
