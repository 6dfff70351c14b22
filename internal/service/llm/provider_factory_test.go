package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversa/internal/capabilities"
	"conversa/internal/config"
	"conversa/internal/domain"
	"conversa/internal/logging"
)

func newFactory(t *testing.T, cfg *config.Config) *ProviderFactory {
	t.Helper()
	registry, err := capabilities.NewRegistry()
	require.NoError(t, err)
	return NewProviderFactory(cfg, registry, logging.Discard())
}

func TestProviderFactoryCreate(t *testing.T) {
	cfg := &config.Config{OpenAIAPIKey: "sk-test"}
	f := newFactory(t, cfg)

	tests := []struct {
		name     string
		model    string
		provider string
	}{
		{"lorem needs no key", "lorem-fast", "lorem"},
		{"openai inferred from prefix", "gpt-4o-mini", "openai"},
		{"explicit provider", "openai/gpt-4o", "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.Create(context.Background(), tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.provider, p.Name())
		})
	}
}

func TestProviderFactoryErrors(t *testing.T) {
	f := newFactory(t, &config.Config{})

	tests := []struct {
		name  string
		model string
	}{
		{"empty model", ""},
		{"unknown prefix", "llama-3"},
		{"model missing from catalog", "gemini-0.1-nope"},
		{"missing api key", "claude-haiku-4-5"},
		{"unknown provider", "bedrock/claude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Create(context.Background(), tt.model)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfiguration), "got %v", err)
		})
	}
}

func TestProviderFactoryCreateDefault(t *testing.T) {
	f := newFactory(t, &config.Config{DefaultModel: "lorem-slow", SystemPrompt: "ignored by lorem"})

	p, err := f.CreateDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lorem-slow", p.Model())
}
