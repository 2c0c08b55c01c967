package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyashahama/email-generator/internal/ai"
)

// Composer validates requests and asks a Generator for the email text.
// It holds no per-request state and is safe for concurrent use.
type Composer struct {
	gen       ai.Generator
	maxTokens int
}

// NewComposer returns a Composer. gen may be nil when no provider credential
// is configured; Compose then fails with ai.ErrNoCredential.
func NewComposer(gen ai.Generator, maxTokens int) *Composer {
	return &Composer{gen: gen, maxTokens: maxTokens}
}

// Configured reports whether a generator is available.
func (c *Composer) Configured() bool {
	return c.gen != nil
}

// Compose runs one request through validate → build prompt → generate.
// The generated text is returned as-is.
//
// Errors, in the order they are checked:
//   - *ValidationError (matches ErrMissingFields): a required field is empty.
//   - ai.ErrNoCredential: no generator is configured.
//   - ai.ErrEmptyContent (wrapped): the model returned nothing usable.
//   - anything else: the call failed.
//
// The first two are detected before any external call.
func (c *Composer) Compose(ctx context.Context, req Request) (string, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}

	if c.gen == nil {
		return "", ai.ErrNoCredential
	}

	text, err := c.gen.Generate(ctx, ai.Prompt{
		Text:      BuildPrompt(req),
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("compose: generate: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("compose: %w", ai.ErrEmptyContent)
	}

	return text, nil
}
