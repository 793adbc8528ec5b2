// Package server provides the HTTP JSON API over résumé evaluation, ranking and calibration.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/server/middleware"
	"github.com/jonathan/resume-ranker/internal/server/ratelimit"
	"github.com/jonathan/resume-ranker/internal/types"
)

// maxBodyBytes bounds request bodies; a full batch of 500 résumés fits comfortably
const maxBodyBytes = 16 << 20

// RunStore persists ranking runs
type RunStore interface {
	SaveRankingRun(ctx context.Context, run *types.RankingRun) error
	GetRankingRun(ctx context.Context, id uuid.UUID) (*types.RankingRun, error)
}

// Options holds server configuration
type Options struct {
	Port           int
	Workers        int
	MinResumeChars int
	RateLimit      *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	evaluator   *ranking.Evaluator
	store       RunStore
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
	opts        Options
}

// New creates a server. store may be nil, in which case runs are not persisted.
func New(opts Options, evaluator *ranking.Evaluator, store RunStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		evaluator:   evaluator,
		store:       store,
		rateLimiter: ratelimit.NewLimiter(opts.RateLimit),
		logger:      logger,
		opts:        opts,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /evaluate", s.handleEvaluate)
	mux.HandleFunc("POST /rank", s.handleRank)
	mux.HandleFunc("POST /calibrate", s.handleCalibrate)
	mux.HandleFunc("GET /rankings/{id}", s.handleGetRanking)
	mux.HandleFunc("GET /taxonomy/{term}", s.handleTaxonomy)

	var handler http.Handler = mux
	handler = s.withCORS(handler)
	handler = s.withRateLimit(handler)
	handler = middleware.Recover(s.logger)(handler)
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID(handler)
	return handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exhausted their token bucket
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP; forwarded headers are not trusted
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   info.Limit,
	}
	if info.RetryAfter > 0 {
		seconds := max(int(info.RetryAfter.Seconds()), 1)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps an error onto its status code
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r)))
	}
	s.errorResponse(w, status, err.Error())
}
