package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/internal/logging"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/observability"
	"github.com/aretw0/roster/pkg/schema"
	"github.com/aretw0/roster/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps action payloads.
const maxBodyBytes = 64 << 10

// Server exposes a session.Manager over HTTP.
type Server struct {
	Sessions *session.Manager

	logger   *slog.Logger
	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records request metrics into m and serves gatherer on GET /metrics.
func WithMetrics(m *observability.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// NewHandler creates the HTTP handler for the session manager.
func NewHandler(sessions *session.Manager, opts ...Option) (http.Handler, error) {
	s := &Server{
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	validator, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(openapiSpec)
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validator.middleware)
		r.Get("/sessions", s.ListSessions)
		r.Delete("/sessions/{id}", s.DeleteSession)
		r.Get("/sessions/{id}/state", s.GetState)
		r.Post("/sessions/{id}/actions", s.SendAction)
		r.Get("/sessions/{id}/events", s.SubscribeEvents)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// observe logs and measures every request by its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(r.Method, route, status, time.Since(start))
		}
		s.logger.Debug("http request", "method", r.Method, "route", route, "status", status, "duration", time.Since(start))
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":     "roster-http",
		"version": strings.TrimSpace(roster.Version),
		"actions": schema.Kinds(),
	})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "List failed", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "Delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetState handles GET /sessions/{id}/state.
// It reports the live state of an open session, the stored snapshot otherwise.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := s.Sessions.Current(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.fail(w, "Load failed", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SendAction handles POST /sessions/{id}/actions.
func (s *Server) SendAction(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var body map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("SendAction: Invalid request body", "err", err)
		return
	}

	action, err := schema.Decode(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		s.logger.Warn("SendAction: Action rejected", "session_id", sessionID, "err", err)
		return
	}

	state, err := s.Sessions.Dispatch(r.Context(), sessionID, action)
	if err != nil {
		s.fail(w, "Dispatch failed", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
// The first event describes the whole current state; each later one is a StateDiff.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	sessionID := chi.URLParam(r, "id")
	diffs, err := s.Sessions.Subscribe(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "Subscribe failed", err)
		return
	}

	var watch []string
	if raw := r.URL.Query().Get("watch"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			watch = append(watch, strings.TrimSpace(field))
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: Subscribed", "session_id", sessionID)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: Client disconnected", "session_id", sessionID)
			return
		case diff, ok := <-diffs:
			if !ok {
				return
			}
			if !matches(diff, watch) {
				continue
			}
			payload, err := json.Marshal(diff)
			if err != nil {
				s.logger.Error("SSE: Diff encode failed", "err", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// matches reports whether diff touches any of the watched fields.
func matches(diff domain.StateDiff, watch []string) bool {
	if len(watch) == 0 {
		return true
	}
	for _, field := range watch {
		switch field {
		case "contacts":
			if len(diff.Added)+len(diff.Updated)+len(diff.Removed) > 0 {
				return true
			}
		case "destination":
			if diff.Destination != nil || diff.Editor != nil || diff.TargetID != nil {
				return true
			}
		}
	}
	return false
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), http.StatusInternalServerError)
	s.logger.Error(msg, "err", err)
}

type apiError struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func errorBody(err error) apiError {
	body := apiError{Error: err.Error()}
	for _, fe := range schema.ValidationErrors(err) {
		body.Fields = append(body.Fields, fe.Error())
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
