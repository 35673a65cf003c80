package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/fsmd"
	"github.com/aretw0/fsmd/internal/logging"
	"github.com/aretw0/fsmd/internal/render"
	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/aretw0/fsmd/pkg/graph"
	"github.com/aretw0/fsmd/pkg/loader"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var rawSpec []byte

// MaxBodyBytes bounds the size of a /render request body.
const MaxBodyBytes = 1 << 20

// Engine renders FSM descriptions.
type Engine interface {
	Encode(ctx context.Context, desc domain.FSMDescription, format string, opts graph.Options) ([]byte, error)
}

// Server serves the FSMD HTTP API.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics http.Handler

	schema *openapi3.Schema
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	s := &Server{Engine: engine, Logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	schema, err := loadSchema(rawSpec, "FSM")
	if err != nil {
		return nil, err
	}
	s.schema = schema

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(enableCORS)

	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Post("/render", s.Render)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r, nil
}

func loadSchema(spec []byte, name string) (*openapi3.Schema, error) {
	l := openapi3.NewLoader()
	doc, err := l.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("OpenAPI document has no %q schema", name)
	}
	return ref.Value, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "fsmd-http",
		"version": strings.TrimSpace(fsmd.Version),
		"formats": strings.Join(domain.Formats, ","),
	})
}

// Render handles POST /render.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = domain.FormatSVG
	}
	epsilon, err := boolParam(q.Get("epsilon"))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid epsilon parameter: %w", err))
		return
	}
	strict, err := boolParam(q.Get("strict"))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid strict parameter: %w", err))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.fail(w, r, status, fmt.Errorf("could not read request body: %w", err))
		return
	}
	if err := s.validate(body); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	desc, err := loader.Parse(body, "request")
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	out, err := s.Engine.Encode(r.Context(), desc, format, graph.Options{Epsilon: epsilon, Strict: strict})
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", desc.Filename+"."+format))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// validate checks body against the FSM schema of the OpenAPI document.
func (s *Server) validate(body []byte) error {
	var doc any
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return &domain.MalformedInputError{Source: "request", Reason: "not a valid YAML or JSON document", Err: err}
	}

	// Round-trip through JSON so numbers and maps have the shapes the validator expects.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return &domain.MalformedInputError{Source: "request", Reason: "document cannot be represented as JSON", Err: err}
	}
	var value any
	if err := json.Unmarshal(normalized, &value); err != nil {
		return &domain.MalformedInputError{Source: "request", Reason: "document cannot be represented as JSON", Err: err}
	}

	if err := s.schema.VisitJSON(value); err != nil {
		return &domain.MalformedInputError{Source: "request", Reason: "does not match the FSM schema", Err: err}
	}
	return nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := RequestIDFrom(r.Context())
	if status >= http.StatusInternalServerError {
		s.Logger.Error("Request failed", "request_id", id, "status", status, "error", err)
	} else {
		s.Logger.Warn("Request rejected", "request_id", id, "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "request_id": id})
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	var (
		malformed  *domain.MalformedInputError
		transition *domain.MalformedTransitionError
		unknown    *domain.UnknownStateError
		missing    *domain.RendererUnavailableError
		failed     *domain.RenderFailureError
	)
	switch {
	case errors.As(err, &malformed), errors.As(err, &transition), errors.As(err, &unknown),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.As(err, &missing):
		return http.StatusServiceUnavailable
	case errors.As(err, &failed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
