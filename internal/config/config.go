// Package config loads and validates all configuration at startup.
// Every other package receives typed values; nothing else reads os.Getenv.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported text generation providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderDeepSeek  = "deepseek"
)

// Config is the fully-parsed application configuration.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port     string `yaml:"port"`     // default "8080"
	Env      string `yaml:"env"`      // "development" | "staging" | "production"
	LogLevel string `yaml:"logLevel"` // debug | info | warn | error

	// ── Observability ─────────────────────────────────────────────────────────
	SentryDSN string `yaml:"sentryDSN"` // optional; empty disables Sentry

	// ── Generation ────────────────────────────────────────────────────────────
	// Provider handles every request. With Fallback set, the other providers
	// that have a key are tried in turn when it fails; off by default so a
	// request makes exactly one upstream call.
	Provider        string `yaml:"provider"`        // default "gemini"
	Fallback        bool   `yaml:"fallback"`        // default false
	MaxOutputTokens int    `yaml:"maxOutputTokens"` // default 2048

	GenerationTimeout time.Duration `yaml:"generationTimeout"` // per upstream call, default 90s
	RequestTimeout    time.Duration `yaml:"requestTimeout"`    // per HTTP request, default 2m

	// ── Gemini ────────────────────────────────────────────────────────────────
	GeminiAPIKey  string `yaml:"geminiAPIKey"`
	GeminiModel   string `yaml:"geminiModel"`   // default "gemini-1.5-flash"
	GeminiBaseURL string `yaml:"geminiBaseURL"` // optional API root override

	// ── Anthropic ─────────────────────────────────────────────────────────────
	AnthropicAPIKey  string `yaml:"anthropicAPIKey"`
	AnthropicModel   string `yaml:"anthropicModel"`   // default "claude-3-5-haiku-latest"
	AnthropicBaseURL string `yaml:"anthropicBaseURL"` // optional API root override

	// ── DeepSeek ──────────────────────────────────────────────────────────────
	DeepSeekAPIKey  string `yaml:"deepseekAPIKey"`
	DeepSeekModel   string `yaml:"deepseekModel"`   // default "deepseek-chat"
	DeepSeekBaseURL string `yaml:"deepseekBaseURL"` // optional API root override
}

// Defaults returns the configuration used when neither the config file nor
// the environment sets a value.
func Defaults() Config {
	return Config{
		Port:              "8080",
		Env:               "development",
		LogLevel:          "info",
		Provider:          ProviderGemini,
		MaxOutputTokens:   2048,
		GenerationTimeout: 90 * time.Second,
		RequestTimeout:    2 * time.Minute,
		GeminiModel:       "gemini-1.5-flash",
		AnthropicModel:    "claude-3-5-haiku-latest",
		DeepSeekModel:     "deepseek-chat",
	}
}

// Load builds the Config in three layers: defaults, then the YAML file named
// by CONFIG_FILE (if any), then environment variables. A .env file in the
// working directory is loaded first when present, so plain `go run
// ./cmd/server` works in development. Real environment variables always take
// precedence over .env values.
//
// A missing provider credential is not an error here. The server still
// starts and reports the problem per request; see HasCredential.
func Load() (*Config, error) {
	// godotenv.Load never overrides variables that are already set.
	_ = godotenv.Load()

	c := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := c.loadFile(path); err != nil {
			return nil, err
		}
	}
	c.applyEnv()

	return &c, c.validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Env = getEnv("ENV", c.Env)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.SentryDSN = getEnv("SENTRY_DSN", c.SentryDSN)
	c.Provider = strings.ToLower(getEnv("AI_PROVIDER", c.Provider))
	c.Fallback = getEnvAsBool("AI_FALLBACK", c.Fallback)
	c.MaxOutputTokens = getEnvAsInt("MAX_OUTPUT_TOKENS", c.MaxOutputTokens)
	c.GenerationTimeout = getEnvAsDuration("GENERATION_TIMEOUT", c.GenerationTimeout)
	c.RequestTimeout = getEnvAsDuration("REQUEST_TIMEOUT", c.RequestTimeout)
	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnv("GEMINI_MODEL", c.GeminiModel)
	c.GeminiBaseURL = getEnv("GEMINI_BASE_URL", c.GeminiBaseURL)
	c.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", c.AnthropicAPIKey)
	c.AnthropicModel = getEnv("ANTHROPIC_MODEL", c.AnthropicModel)
	c.AnthropicBaseURL = getEnv("ANTHROPIC_BASE_URL", c.AnthropicBaseURL)
	c.DeepSeekAPIKey = getEnv("DEEPSEEK_API_KEY", c.DeepSeekAPIKey)
	c.DeepSeekModel = getEnv("DEEPSEEK_MODEL", c.DeepSeekModel)
	c.DeepSeekBaseURL = getEnv("DEEPSEEK_BASE_URL", c.DeepSeekBaseURL)
}

func (c *Config) validate() error {
	var errs []error

	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT: %q", c.Port))
	}

	switch c.Env {
	case "development", "staging", "production":
	default:
		errs = append(errs, fmt.Errorf("invalid ENV: %q", c.Env))
	}

	switch c.Provider {
	case ProviderGemini, ProviderAnthropic, ProviderDeepSeek:
	default:
		errs = append(errs, fmt.Errorf("invalid AI_PROVIDER: %q", c.Provider))
	}

	if c.MaxOutputTokens <= 0 {
		errs = append(errs, errors.New("MAX_OUTPUT_TOKENS must be positive"))
	}
	if c.GenerationTimeout <= 0 {
		errs = append(errs, errors.New("GENERATION_TIMEOUT must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

// APIKey returns the key configured for provider, or "" when it has none.
func (c *Config) APIKey(provider string) string {
	switch provider {
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderDeepSeek:
		return c.DeepSeekAPIKey
	}
	return ""
}

// HasCredential reports whether a generation request can reach a provider:
// the configured Provider has a key or, with Fallback, any provider does.
func (c *Config) HasCredential() bool {
	if c.APIKey(c.Provider) != "" {
		return true
	}
	return c.Fallback && (c.GeminiAPIKey != "" || c.AnthropicAPIKey != "" || c.DeepSeekAPIKey != "")
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key))); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts a plain integer (seconds) or Go duration syntax:
// "30s", "5m", "1h".
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(value) * time.Second
	}
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	return defaultValue
}
