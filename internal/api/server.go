// Package api implements the HTTP layer of the email generator.
// Handlers are methods on *Server. Each handler file is responsible for one
// route group and only imports the dependencies it actually uses.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nyashahama/email-generator/internal/compose"
	"github.com/nyashahama/email-generator/internal/web"
)

// GenerateEmailPath is the single generation route.
const GenerateEmailPath = "/api/generate-email"

// Config holds values read from configuration at startup.
type Config struct {
	// Production restricts CORS to a wildcard without credentials.
	Production bool

	// RequestTimeout bounds each generation, including the upstream model
	// call. Zero disables it.
	RequestTimeout time.Duration
}

// Composer is what the generation handler needs from the compose package.
// *compose.Composer satisfies it.
type Composer interface {
	Compose(ctx context.Context, req compose.Request) (string, error)
	Configured() bool
}

// Server holds all shared dependencies. It keeps no per-request state.
type Server struct {
	composer Composer
	pages    *web.Renderer

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.Server.
func NewServer(composer Composer, pages *web.Renderer, cfg Config, logger *slog.Logger) http.Handler {
	s := &Server{
		composer: composer,
		pages:    pages,
		cfg:      cfg,
		logger:   logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(s.corsMiddleware)

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/healthz", s.handleHealth)

	// ── Form ──────────────────────────────────────────────────────────────────
	r.Get("/", s.handleIndex)
	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))

	// ── API ───────────────────────────────────────────────────────────────────
	r.Post(GenerateEmailPath, s.handleGenerateEmail)

	return r
}

type healthResponse struct {
	Status    string `json:"status"`
	Generator bool   `json:"generator"`
}

// handleHealth reports liveness and whether a provider credential is set.
// A missing credential does not make the service unhealthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Generator: s.composer.Configured(),
	})
}
