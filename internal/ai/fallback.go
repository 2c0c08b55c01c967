package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// fallbackGenerator wraps two Generator implementations. It calls the primary
// first; if that returns an error it logs the failure and tries the secondary.
type fallbackGenerator struct {
	primary   Generator
	secondary Generator
	logger    *slog.Logger
}

// NewFallback returns a Generator that calls primary and, on failure,
// falls back to secondary. Either argument may be nil — if primary is nil
// it goes straight to secondary; if secondary is nil and primary fails, the
// primary error is returned wrapped. Once ctx is done or the primary hit a
// deadline, the secondary is never called.
func NewFallback(primary, secondary Generator, logger *slog.Logger) Generator {
	return &fallbackGenerator{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Generate tries the primary Generator. If it fails and a secondary is
// configured, it logs the primary error and tries the secondary.
func (f *fallbackGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	if f.primary == nil && f.secondary == nil {
		return "", ErrNoCredential
	}

	if f.primary != nil {
		text, err := f.primary.Generate(ctx, p)
		if err == nil {
			return text, nil
		}
		// The secondary would only inherit a dead context.
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		f.logger.WarnContext(ctx, "ai: primary generator failed, trying secondary",
			"error", err,
			"empty_content", errors.Is(err, ErrEmptyContent),
		)
		if f.secondary == nil {
			return "", fmt.Errorf("ai: primary failed and no secondary configured: %w", err)
		}
	}

	return f.secondary.Generate(ctx, p)
}
