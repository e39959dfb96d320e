package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Engine is the query surface served under /automata.
type Engine interface {
	List(ctx context.Context) ([]string, error)
	Automaton(ctx context.Context, id string) (*dfa.Automaton, error)
	Delta(ctx context.Context, id, state, symbol string) (string, error)
	Extended(ctx context.Context, id, state string, word []string) (domain.Outcome, error)
	Trace(ctx context.Context, id, state string, word []string) ([]domain.Step, domain.Outcome, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// Sessions is the interactive surface served under /sessions.
type Sessions interface {
	Start(ctx context.Context, sessionID, automatonID string, word []string) (*domain.Run, error)
	Step(ctx context.Context, sessionID string) (*domain.Run, error)
	Load(ctx context.Context, sessionID string) (*domain.Run, error)
	Delete(ctx context.Context, sessionID string) error
}

// Server holds the handler dependencies.
type Server struct {
	Engine   Engine
	Sessions Sessions

	logger  *slog.Logger
	metrics http.Handler
	events  *hub
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h (typically promhttp.Handler) at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler. sessions may be nil, in which case the
// /sessions routes are not mounted.
func NewHandler(engine Engine, sessions Sessions, opts ...Option) http.Handler {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = newHub(engine.Watch)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", s.ListAutomata)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetAutomaton)
			r.Post("/delta", s.Delta)
			r.Post("/extended", s.Extended)
			r.Post("/trace", s.Trace)
		})
	})

	if sessions != nil {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.StartSession)
			r.Get("/{id}", s.GetSession)
			r.Post("/{id}/step", s.StepSession)
			r.Delete("/{id}", s.DeleteSession)
		})
	}

	r.Get("/events", s.SubscribeEvents)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return r
}

// DeltaRequest is the body of POST /automata/{id}/delta.
type DeltaRequest struct {
	State  string `json:"state"`
	Symbol string `json:"symbol"`
}

// WordRequest is the body of the whole-word endpoints. Word takes precedence;
// Input is split into single-character symbols.
type WordRequest struct {
	State string   `json:"state,omitempty"`
	Word  []string `json:"word,omitempty"`
	Input string   `json:"input,omitempty"`
}

func (r WordRequest) symbols() []string {
	if r.Word != nil {
		return r.Word
	}
	return domain.SplitWord(r.Input)
}

// TraceResponse is the body returned by POST /automata/{id}/trace.
type TraceResponse struct {
	Steps []domain.Step `json:"steps"`
	domain.Outcome
}

// StartSessionRequest is the body of POST /sessions.
type StartSessionRequest struct {
	SessionID   string `json:"session_id,omitempty"`
	AutomatonID string `json:"automaton_id"`
	WordRequest
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListAutomata handles GET /automata.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetAutomaton handles GET /automata/{id}.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	a, err := s.Engine.Automaton(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Definition())
}

// Delta handles POST /automata/{id}/delta.
func (s *Server) Delta(w http.ResponseWriter, r *http.Request) {
	var body DeltaRequest
	if !s.decode(w, r, &body) {
		return
	}
	next, err := s.Engine.Delta(r.Context(), chi.URLParam(r, "id"), body.State, body.Symbol)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": next})
}

// Extended handles POST /automata/{id}/extended.
func (s *Server) Extended(w http.ResponseWriter, r *http.Request) {
	var body WordRequest
	if !s.decode(w, r, &body) {
		return
	}
	out, err := s.Engine.Extended(r.Context(), chi.URLParam(r, "id"), body.State, body.symbols())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Trace handles POST /automata/{id}/trace.
func (s *Server) Trace(w http.ResponseWriter, r *http.Request) {
	var body WordRequest
	if !s.decode(w, r, &body) {
		return
	}
	steps, out, err := s.Engine.Trace(r.Context(), chi.URLParam(r, "id"), body.State, body.symbols())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TraceResponse{Steps: steps, Outcome: out})
}

// StartSession handles POST /sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body StartSessionRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.AutomatonID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "automaton_id is required"})
		return
	}
	if body.SessionID == "" {
		body.SessionID = uuid.NewString()
	}

	run, err := s.Sessions.Start(r.Context(), body.SessionID, body.AutomatonID, body.symbols())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	run, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// StepSession handles POST /sessions/{id}/step.
func (s *Server) StepSession(w http.ResponseWriter, r *http.Request) {
	run, err := s.Sessions.Step(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles GET /events (SSE), streaming the ID of every
// definition that changes on disk. All subscribers share one engine watch.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, stop, err := s.events.subscribe()
	if err != nil {
		writeJSON(w, http.StatusNotImplemented, ErrorResponse{Error: err.Error()})
		return
	}
	defer stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: changed\ndata: %s\n\n", id)
			flusher.Flush()
		}
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("Request rejected", "path", r.URL.Path, "status", code, "error", err)
	}
	writeJSON(w, code, ErrorResponse{Error: err.Error()})
}

// StatusFor maps the domain error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUndefinedTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRunFinished):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAutomaton),
		errors.Is(err, domain.ErrUnknownState),
		errors.Is(err, domain.ErrUnknownSymbol):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
