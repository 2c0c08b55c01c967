package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const defaultAnthropicBaseURL = "https://api.anthropic.com/v1"

// AnthropicClient is the Generator backed by the Anthropic Messages API.
type AnthropicClient struct {
	apiKey string
	model  string
	opts   clientOptions
}

// NewAnthropicClient returns a Generator that calls the Anthropic API.
//   - apiKey: your ANTHROPIC_API_KEY
//   - model:  e.g. "claude-3-5-haiku-latest"
func NewAnthropicClient(apiKey, model string, opts ...Option) *AnthropicClient {
	return &AnthropicClient{
		apiKey: apiKey,
		model:  model,
		opts:   buildOptions(defaultAnthropicBaseURL, opts),
	}
}

// ─── ANTHROPIC API SHAPES ─────────────────────────────────────────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ─── IMPLEMENTATION ───────────────────────────────────────────────────────────

// Generate sends one request to the Anthropic Messages API and returns the
// concatenated text blocks.
func (c *AnthropicClient) Generate(ctx context.Context, p Prompt) (string, error) {
	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: p.MaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: p.Text},
		},
	}

	status, respBytes, err := postJSON(ctx, c.opts.httpClient, c.opts.baseURL+"/messages",
		map[string]string{
			"x-api-key":         c.apiKey,
			"anthropic-version": "2023-06-01",
		},
		reqBody,
	)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("anthropic: unmarshal response (status %d): %w", status, err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("anthropic: API error %s: %s", parsed.Error.Type, parsed.Error.Message)
	}

	if status != http.StatusOK {
		return "", fmt.Errorf("anthropic: unexpected status %d: %.200s", status, string(respBytes))
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("anthropic: stop reason %q: %w", parsed.StopReason, ErrEmptyContent)
	}

	return sb.String(), nil
}
