package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient is the Generator backed by the Google Gemini generateContent API.
type GeminiClient struct {
	apiKey string
	model  string
	opts   clientOptions
}

// NewGeminiClient returns a Generator that calls the Gemini API.
//   - apiKey: your GEMINI_API_KEY
//   - model:  e.g. "gemini-1.5-flash"
func NewGeminiClient(apiKey, model string, opts ...Option) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		model:  strings.TrimPrefix(strings.TrimSpace(model), "models/"),
		opts:   buildOptions(defaultGeminiBaseURL, opts),
	}
}

// ─── GEMINI API SHAPES ────────────────────────────────────────────────────────

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ─── IMPLEMENTATION ───────────────────────────────────────────────────────────

// Generate sends the prompt as a single user turn and joins the text parts
// of the first candidate.
func (c *GeminiClient) Generate(ctx context.Context, p Prompt) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: p.Text}}},
		},
		GenerationConfig: geminiGenerationConfig{MaxOutputTokens: p.MaxTokens},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.opts.baseURL, c.model)
	status, respBytes, err := postJSON(ctx, c.opts.httpClient, url,
		map[string]string{"x-goog-api-key": c.apiKey},
		reqBody,
	)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("gemini: unmarshal response (status %d): %w", status, err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("gemini: API error %s: %s", parsed.Error.Status, parsed.Error.Message)
	}

	if status != http.StatusOK {
		return "", fmt.Errorf("gemini: unexpected status %d: %.200s", status, string(respBytes))
	}

	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates: %w", ErrEmptyContent)
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("gemini: finish reason %q: %w", parsed.Candidates[0].FinishReason, ErrEmptyContent)
	}

	return sb.String(), nil
}
