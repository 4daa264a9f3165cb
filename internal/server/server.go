// Package server provides the HTTP REST API for the Rolodex.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/rolodex/internal/config"
	"github.com/jonathan/rolodex/internal/server/middleware"
	"github.com/jonathan/rolodex/internal/server/ratelimit"
	"go.uber.org/zap"
)

// publicPaths skip the dev gate.
var publicPaths = []string{"/health", "/auth/login"}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       Store
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	gate        config.DevGateConfig
	sessions    *SessionService // nil when the dev gate is disabled
	pageSize    int
	now         func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithRateLimiter replaces the limiter loaded from RATE_LIMIT_* variables.
func WithRateLimiter(l *ratelimit.Limiter) Option {
	return func(s *Server) { s.rateLimiter = l }
}

// WithClock overrides the server clock.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a new server instance
func New(cfg *config.Config, store Store, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		store:      store,
		logger:     logger,
		gate:       cfg.DevGate,
		pageSize:   cfg.PageSize,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}
	if s.gate.Enabled() {
		s.sessions = NewSessionService(s.gate.Secret, s.gate.SessionTTL())
		s.sessions.now = s.now
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	// Contacts
	mux.HandleFunc("GET /contacts", s.handleListContacts)
	mux.HandleFunc("POST /contacts", s.handleCreateContact)
	mux.HandleFunc("GET /contacts/export", s.handleExportContacts)
	mux.HandleFunc("POST /contacts/import", s.handleImportContacts)
	mux.HandleFunc("GET /contacts/{id}", s.handleGetContact)
	mux.HandleFunc("PUT /contacts/{id}", s.handleUpdateContact)
	mux.HandleFunc("DELETE /contacts/{id}", s.handleDeleteContact)

	// Events
	mux.HandleFunc("GET /events", s.handleListEvents)
	mux.HandleFunc("POST /events", s.handleCreateEvent)
	mux.HandleFunc("GET /events/{id}", s.handleGetEvent)
	mux.HandleFunc("PUT /events/{id}", s.handleUpdateEvent)
	mux.HandleFunc("DELETE /events/{id}", s.handleDeleteEvent)
	mux.HandleFunc("GET /events/{id}/attendees", s.handleListAttendees)
	mux.HandleFunc("POST /events/{id}/attendees", s.handleAddAttendee)
	mux.HandleFunc("DELETE /events/{id}/attendees/{contact_id}", s.handleRemoveAttendee)

	// Relationship pipeline
	mux.HandleFunc("GET /pipeline", s.handleListPipeline)
	mux.HandleFunc("POST /pipeline", s.handleCreatePipelineEntry)
	mux.HandleFunc("GET /pipeline/actions", s.handlePipelineActions)
	mux.HandleFunc("GET /pipeline/{id}", s.handleGetPipelineEntry)
	mux.HandleFunc("PUT /pipeline/{id}", s.handleUpdatePipelineEntry)
	mux.HandleFunc("DELETE /pipeline/{id}", s.handleDeletePipelineEntry)
	mux.HandleFunc("POST /pipeline/{id}/next-action", s.handlePipelineNextAction)

	// CTO club
	mux.HandleFunc("GET /cto-club", s.handleListCTO)
	mux.HandleFunc("POST /cto-club", s.handleCreateCTOEntry)
	mux.HandleFunc("GET /cto-club/actions", s.handleCTOActions)
	mux.HandleFunc("GET /cto-club/{id}", s.handleGetCTOEntry)
	mux.HandleFunc("PUT /cto-club/{id}", s.handleUpdateCTOEntry)
	mux.HandleFunc("DELETE /cto-club/{id}", s.handleDeleteCTOEntry)
	mux.HandleFunc("POST /cto-club/{id}/next-action", s.handleCTONextAction)

	// VIPs
	mux.HandleFunc("GET /vips", s.handleListVIPs)
	mux.HandleFunc("POST /vips", s.handleCreateVIP)
	mux.HandleFunc("GET /vips/{id}", s.handleGetVIP)
	mux.HandleFunc("PUT /vips/{id}", s.handleUpdateVIP)
	mux.HandleFunc("DELETE /vips/{id}", s.handleDeleteVIP)
	mux.HandleFunc("POST /vips/{id}/touch", s.handleTouchVIP)

	// Projects and tasks
	mux.HandleFunc("GET /projects", s.handleListProjects)
	mux.HandleFunc("POST /projects", s.handleCreateProject)
	mux.HandleFunc("GET /projects/{id}", s.handleGetProject)
	mux.HandleFunc("PUT /projects/{id}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("GET /projects/{id}/tasks", s.handleListTasks)
	mux.HandleFunc("POST /projects/{id}/tasks", s.handleCreateTask)
	mux.HandleFunc("PUT /tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("POST /tasks/{id}/complete", s.handleCompleteTask)

	// Global search
	mux.HandleFunc("GET /search", s.handleSearch)

	var h http.Handler = mux
	if s.sessions != nil {
		h = middleware.RequireSession(s.sessions, publicPaths...)(h)
	}
	s.handler = s.withRateLimit(s.withLogging(s.withCORS(h)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			zap.String("addr", s.httpServer.Addr),
			zap.Bool("dev_gate", s.sessions != nil))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "ok"}
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warn("health check: database unreachable", zap.Error(err))
		status["status"] = "degraded"
		status["database"] = "unreachable"
		s.jsonResponse(w, http.StatusServiceUnavailable, status)
		return
	}
	s.jsonResponse(w, http.StatusOK, status)
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

// handleError maps err to a status code. Internal errors are logged and hidden
// from the client.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// pathID parses a UUID path parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a UUID"}
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: key, Message: "must be a non-negative integer"}
	}
	return n, nil
}

// clientID extracts the client identifier (IP address) from the request.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// retryAfterSeconds rounds d up to whole seconds, never below one.
func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		secs := retryAfterSeconds(info.RetryAfter)
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
