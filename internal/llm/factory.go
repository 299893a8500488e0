package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/blockmath/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → timeout → retry → logging → base. A nil repo disables logging.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	sel := cfg.Selected()
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(sel)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(sel)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(sel)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, sel)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if repo != nil {
		p = WithLogging(p, cfg.Provider, repo)
	}
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}

// NewProviderFromEnv resolves configuration from BLOCKMATH_* variables,
// falling back to the vendors' standard key variables. It returns
// (nil, nil) when no provider is configured, so callers can run without
// an LLM.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			if os.Getenv("BLOCKMATH_LLM_PROVIDER") != "" {
				return nil, err
			}
			return nil, nil
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, repo)
}
