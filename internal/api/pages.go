package api

import (
	"bytes"
	"net/http"

	"github.com/nyashahama/email-generator/internal/compose"
	"github.com/nyashahama/email-generator/internal/web"
)

const pageTitle = "Email Generator"

// ─── GET / ────────────────────────────────────────────────────────────────────

// handleIndex renders the form page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := s.pages.Page(&buf, web.PageData{
		Title:    pageTitle,
		Endpoint: GenerateEmailPath,
		Purposes: compose.Purposes,
	})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render index page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Security-Policy", pageCSP)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
