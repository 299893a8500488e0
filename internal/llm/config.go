package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds LLM provider configuration.
type Config struct {
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// ProviderConfig is the per-provider connection setting.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional endpoint override
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Selected returns the settings of the configured provider.
func (c Config) Selected() ProviderConfig {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderGemini:
		return c.Gemini
	case ProviderOpenRouter:
		return c.OpenRouter
	}
	return ProviderConfig{Model: ProviderMock}
}

// envPrefix names the BLOCKMATH_<PROVIDER>_* variables of each provider.
var envPrefix = map[string]string{
	ProviderAnthropic:  "BLOCKMATH_ANTHROPIC",
	ProviderOpenAI:     "BLOCKMATH_OPENAI",
	ProviderGemini:     "BLOCKMATH_GEMINI",
	ProviderOpenRouter: "BLOCKMATH_OPENROUTER",
}

// ConfigFromEnv overlays BLOCKMATH_* environment variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("BLOCKMATH_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	for _, target := range []struct {
		name string
		pc   *ProviderConfig
	}{
		{ProviderAnthropic, &cfg.Anthropic},
		{ProviderOpenAI, &cfg.OpenAI},
		{ProviderGemini, &cfg.Gemini},
		{ProviderOpenRouter, &cfg.OpenRouter},
	} {
		prefix := envPrefix[target.name]
		if v := os.Getenv(prefix + "_API_KEY"); v != "" {
			target.pc.APIKey = v
		}
		if v := os.Getenv(prefix + "_MODEL"); v != "" {
			target.pc.Model = v
		}
		if v := os.Getenv(prefix + "_BASE_URL"); v != "" {
			target.pc.BaseURL = v
		}
	}

	if v := os.Getenv("BLOCKMATH_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring BLOCKMATH_LLM_TIMEOUT=%q: %v\n", v, err)
		}
	}
	return cfg
}

// DiscoverConfig looks for the vendors' standard API key variables
// (Gemini, OpenAI, Anthropic, OpenRouter in that order) and returns a
// Config for the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, c := range []struct {
		env  string
		name string
		pc   *ProviderConfig
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter},
	} {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.name
			c.pc.APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	prefix, ok := envPrefix[c.Provider]
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Selected().APIKey == "" {
		return fmt.Errorf("%s_API_KEY is required for the %s provider", prefix, c.Provider)
	}
	return nil
}
