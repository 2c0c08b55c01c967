package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/email-generator/internal/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, flush := logger.New(logger.Options{Env: "production", Output: &buf})
	defer flush()

	log.Info("hello", "k", "v")

	m := decodeLine(t, &buf)
	assert.Equal(t, "hello", m["msg"])
	assert.Equal(t, "v", m["k"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, _ := logger.New(logger.Options{Env: "production", Level: "warn", Output: &buf})

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestRequestIDExtractor(t *testing.T) {
	var buf bytes.Buffer
	log, _ := logger.New(logger.Options{Env: "production", Output: &buf}, logger.RequestID())

	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetReqID(r.Context())
		log.InfoContext(r.Context(), "in handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, decodeLine(t, &buf)["request_id"])
}

func TestAttrsExtractor(t *testing.T) {
	var buf bytes.Buffer
	log, _ := logger.New(logger.Options{Env: "production", Output: &buf}, logger.Attrs(), nil)

	ctx := logger.WithAttrs(context.Background(), slog.String("generation_id", "g-1"))
	ctx = logger.WithAttrs(ctx, slog.String("provider", "gemini"))
	log.InfoContext(ctx, "generated")

	m := decodeLine(t, &buf)
	assert.Equal(t, "g-1", m["generation_id"])
	assert.Equal(t, "gemini", m["provider"])
}

func TestAttrsExtractor_NoAttrs(t *testing.T) {
	var buf bytes.Buffer
	log, _ := logger.New(logger.Options{Env: "production", Output: &buf}, logger.Attrs())

	log.InfoContext(context.Background(), "plain")

	m := decodeLine(t, &buf)
	assert.NotContains(t, m, "generation_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}
