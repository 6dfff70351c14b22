package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haowjy/meridian-llm-go/providers/anthropic"
	"github.com/haowjy/meridian-llm-go/providers/lorem"
	"github.com/haowjy/meridian-llm-go/providers/openrouter"

	"conversa/internal/capabilities"
	"conversa/internal/config"
	"conversa/internal/domain"
	"conversa/internal/domain/services"
	"conversa/internal/service/llm/adapters"
)

// ProviderFactory creates the model provider named by a model string
type ProviderFactory struct {
	config   *config.Config
	registry *capabilities.Registry
	logger   *slog.Logger
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config, registry *capabilities.Registry, logger *slog.Logger) *ProviderFactory {
	return &ProviderFactory{
		config:   cfg,
		registry: registry,
		logger:   logger,
	}
}

// CreateDefault creates the provider for DEFAULT_MODEL
func (f *ProviderFactory) CreateDefault(ctx context.Context) (services.ModelProvider, error) {
	return f.Create(ctx, f.config.DefaultModel)
}

// Create resolves modelStr to a provider and checks it against the catalog.
//
// Supported providers:
//   - "gemini" - Google Gemini via generative-ai-go
//   - "openai" - OpenAI chat completions
//   - "anthropic" - Claude models via meridian-llm-go
//   - "openrouter" - any OpenRouter route via meridian-llm-go
//   - "lorem" - offline mock (no API key required)
func (f *ProviderFactory) Create(ctx context.Context, modelStr string) (services.ModelProvider, error) {
	info, err := capabilities.ParseModel(modelStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	caps, err := f.registry.GetModelCapabilities(info.Provider, info.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	system := f.config.SystemPrompt
	if system != "" && !caps.SupportsSystemPrompt {
		f.logger.Warn("model does not take a system prompt, ignoring SYSTEM_PROMPT", "model", info.Model)
		system = ""
	}

	apiKey := f.config.APIKeyFor(info.Provider)
	if info.Provider != capabilities.ProviderLorem && apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured for provider %s", domain.ErrConfiguration, info.Provider)
	}

	f.logger.Info("model provider ready",
		"provider", info.Provider,
		"model", info.Model,
		"system_prompt", system != "",
	)

	switch info.Provider {
	case capabilities.ProviderGemini:
		adapter, err := adapters.NewGeminiAdapter(ctx, apiKey, info.Model, system, "")
		if err != nil {
			return nil, err
		}
		return adapter, nil

	case capabilities.ProviderOpenAI:
		return adapters.NewOpenAIAdapter(apiKey, info.Model, system), nil

	case capabilities.ProviderAnthropic:
		provider, err := anthropic.NewProvider(apiKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
		}
		return adapters.NewMeridianAdapter(provider, info.Model, system), nil

	case capabilities.ProviderOpenRouter:
		provider, err := openrouter.NewProvider(apiKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenRouter provider: %w", err)
		}
		return adapters.NewMeridianAdapter(provider, info.Model, system), nil

	case capabilities.ProviderLorem:
		return adapters.NewMeridianAdapter(lorem.NewProvider(), info.Model, system), nil

	default:
		return nil, fmt.Errorf("%w: unsupported provider: %s", domain.ErrConfiguration, info.Provider)
	}
}
