package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nyashahama/email-generator/internal/ai"
	"github.com/nyashahama/email-generator/internal/compose"
	"github.com/nyashahama/email-generator/internal/htmx"
	"github.com/nyashahama/email-generator/internal/logger"
	"github.com/nyashahama/email-generator/internal/web"
)

// Client-facing error messages. Internal detail never goes past these.
const (
	msgMissingFields  = "Missing required fields"
	msgNoCredential   = "API key is missing in environment variables"
	msgNoContent      = "No email content generated"
	msgInternalServer = "Internal Server Error"
)

// ─── POST /api/generate-email ─────────────────────────────────────────────────

type generateEmailResponse struct {
	Email string `json:"email"`
}

// handleGenerateEmail validates the request, asks the composer for one
// email and returns it. Requests from the htmx form get HTML fragments with
// the same status codes; everyone else gets JSON.
func (s *Server) handleGenerateEmail(w http.ResponseWriter, r *http.Request) {
	genID := newGenerationID()
	w.Header().Set(generationIDHeader, genID)
	ctx := logger.WithAttrs(r.Context(), slog.String("generation_id", genID))
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	// An unreadable body is an unexpected failure, not a validation one.
	var req compose.Request
	if err := decode(w, r, &req); err != nil {
		s.logger.ErrorContext(ctx, "generate: error decoding request body",
			"error", err,
			"path", r.URL.Path,
		)
		s.fail(w, r, http.StatusInternalServerError, msgInternalServer)
		return
	}

	email, err := s.composer.Compose(ctx, req)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "generate: email generated", "chars", len(email))
		s.succeed(w, r, email)

	case errors.Is(err, compose.ErrMissingFields):
		var verr *compose.ValidationError
		if errors.As(err, &verr) {
			s.logger.DebugContext(ctx, "generate: missing fields", "fields", verr.Fields)
		}
		s.fail(w, r, http.StatusBadRequest, msgMissingFields)

	case errors.Is(err, ai.ErrNoCredential):
		s.logger.WarnContext(ctx, "generate: no provider credential configured")
		s.fail(w, r, http.StatusBadRequest, msgNoCredential)

	case errors.Is(err, ai.ErrEmptyContent):
		s.logger.WarnContext(ctx, "generate: model returned no content", "error", err)
		s.fail(w, r, http.StatusInternalServerError, msgNoContent)

	default:
		s.logger.ErrorContext(ctx, "generate: error generating email",
			"error", err,
			"path", r.URL.Path,
		)
		s.fail(w, r, http.StatusInternalServerError, msgInternalServer)
	}
}

// succeed writes the generated email as JSON or as the result fragment.
func (s *Server) succeed(w http.ResponseWriter, r *http.Request, email string) {
	if !htmx.IsHTMX(r) {
		respond(w, http.StatusOK, generateEmailResponse{Email: email})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	retargetResult(w, r)
	htmx.Trigger(w, web.GeneratedEvent)
	w.WriteHeader(http.StatusOK)
	if err := s.pages.Result(w, email); err != nil {
		s.logger.ErrorContext(r.Context(), "render result fragment", "error", err)
	}
}

// fail writes the JSON error envelope, or for htmx the static error
// fragment. The status code is the same either way.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	if !htmx.IsHTMX(r) {
		respondErr(w, status, message)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	retargetResult(w, r)
	htmx.Reswap(w, htmx.SwapInnerHTML)
	w.WriteHeader(status)
	if err := s.pages.Error(w); err != nil {
		s.logger.ErrorContext(r.Context(), "render error fragment", "error", err)
	}
}

// retargetResult points the swap at the result container when the request
// named some other target.
func retargetResult(w http.ResponseWriter, r *http.Request) {
	if htmx.Target(r) != web.ResultID {
		htmx.Retarget(w, "#"+web.ResultID)
	}
}
