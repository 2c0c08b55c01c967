package ai

import (
	"log/slog"

	"github.com/nyashahama/email-generator/internal/config"
)

// NewFromConfig builds the Generator described by cfg and returns the names
// of the providers it calls, in order.
//
// By default only cfg.Provider is used, so every request makes exactly one
// upstream call. With cfg.Fallback set, every other provider that has a key
// is chained behind it in the order gemini, anthropic, deepseek.
//
// Returns ErrNoCredential when no usable provider has a key.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (Generator, []string, error) {
	order := []string{cfg.Provider}
	if cfg.Fallback {
		for _, name := range []string{config.ProviderGemini, config.ProviderAnthropic, config.ProviderDeepSeek} {
			if name != cfg.Provider {
				order = append(order, name)
			}
		}
	}

	var chain []Generator
	var names []string
	for _, name := range order {
		if g := newProvider(cfg, name); g != nil {
			chain = append(chain, g)
			names = append(names, name)
		}
	}

	if len(chain) == 0 {
		return nil, nil, ErrNoCredential
	}

	// Build from the tail so the first entry is tried first.
	gen := chain[len(chain)-1]
	for i := len(chain) - 2; i >= 0; i-- {
		gen = NewFallback(chain[i], gen, logger)
	}

	return gen, names, nil
}

// newProvider returns the client for name, or nil when it has no key.
func newProvider(cfg *config.Config, name string) Generator {
	key := cfg.APIKey(name)
	if key == "" {
		return nil
	}

	timeout := WithTimeout(cfg.GenerationTimeout)
	switch name {
	case config.ProviderGemini:
		return NewGeminiClient(key, cfg.GeminiModel, timeout, WithBaseURL(cfg.GeminiBaseURL))
	case config.ProviderAnthropic:
		return NewAnthropicClient(key, cfg.AnthropicModel, timeout, WithBaseURL(cfg.AnthropicBaseURL))
	case config.ProviderDeepSeek:
		return NewDeepSeekClient(key, cfg.DeepSeekModel, timeout, WithBaseURL(cfg.DeepSeekBaseURL))
	}
	return nil
}
