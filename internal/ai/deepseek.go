package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const defaultDeepSeekBaseURL = "https://api.deepseek.com/v1"

// DeepSeekClient is the Generator backed by the DeepSeek API.
// DeepSeek exposes an OpenAI-compatible /chat/completions endpoint, so the
// request/response shapes are standard OpenAI chat format — not Anthropic's.
type DeepSeekClient struct {
	apiKey string
	model  string
	opts   clientOptions
}

// NewDeepSeekClient returns a Generator that calls the DeepSeek API.
//   - apiKey: your DEEPSEEK_API_KEY
//   - model:  e.g. "deepseek-chat"
func NewDeepSeekClient(apiKey, model string, opts ...Option) *DeepSeekClient {
	return &DeepSeekClient{
		apiKey: apiKey,
		model:  model,
		opts:   buildOptions(defaultDeepSeekBaseURL, opts),
	}
}

// ─── OPENAI-COMPATIBLE API SHAPES ────────────────────────────────────────────

type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// ─── IMPLEMENTATION ───────────────────────────────────────────────────────────

// Generate sends one request to the DeepSeek chat completions endpoint and
// returns the content of the first choice.
func (c *DeepSeekClient) Generate(ctx context.Context, p Prompt) (string, error) {
	reqBody := openAIRequest{
		Model:     c.model,
		MaxTokens: p.MaxTokens,
		Messages: []openAIMessage{
			{Role: "user", Content: p.Text},
		},
	}

	status, respBytes, err := postJSON(ctx, c.opts.httpClient, c.opts.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + c.apiKey},
		reqBody,
	)
	if err != nil {
		return "", fmt.Errorf("deepseek: %w", err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("deepseek: unmarshal response (status %d): %w", status, err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("deepseek: API error %s: %s", parsed.Error.Type, parsed.Error.Message)
	}

	if status != http.StatusOK {
		return "", fmt.Errorf("deepseek: unexpected status %d: %.200s", status, string(respBytes))
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("deepseek: no choices: %w", ErrEmptyContent)
	}

	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("deepseek: finish reason %q: %w", parsed.Choices[0].FinishReason, ErrEmptyContent)
	}

	return content, nil
}
