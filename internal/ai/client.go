// Package ai defines the interface for text generation and provides Gemini,
// Anthropic and DeepSeek implementations plus a fallback wrapper.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrEmptyContent means the provider answered successfully but the
	// response carried no usable text.
	ErrEmptyContent = errors.New("ai: no content generated")

	// ErrNoCredential means no provider API key is configured.
	ErrNoCredential = errors.New("ai: no provider credential configured")
)

// Prompt is a single human-role message plus the output bound.
type Prompt struct {
	Text      string
	MaxTokens int
}

// Generator is the interface the compose package uses to produce text.
// Tests inject a stub that returns canned responses.
type Generator interface {
	// Generate sends one request to the provider and waits for the full
	// response. Implementations must be safe to call concurrently.
	//
	// ErrEmptyContent (possibly wrapped) signals a successful call with
	// nothing usable in it. Any other error means the call itself failed.
	Generate(ctx context.Context, p Prompt) (string, error)
}

// maxResponseBytes caps how much of a provider response body is read.
const maxResponseBytes = 1 << 20

const defaultTimeout = 90 * time.Second

// Option configures a provider client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides the provider API root, e.g. for tests or a proxy.
// An empty u keeps the default.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		if u != "" {
			o.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithTimeout sets the per-call timeout on the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.httpClient = &http.Client{Timeout: d}
		}
	}
}

func buildOptions(defaultBaseURL string, opts []Option) clientOptions {
	o := clientOptions{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// postJSON marshals reqBody, POSTs it to url with the given headers and
// returns the status code and the (capped) response body.
func postJSON(ctx context.Context, c *http.Client, url string, headers map[string]string, reqBody any) (int, []byte, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}

	return resp.StatusCode, respBytes, nil
}
