package capabilities

import (
	"fmt"
	"strings"
)

// ModelInfo contains parsed provider and model information
type ModelInfo struct {
	Provider string // Provider name: "gemini", "openai", "anthropic", "openrouter", "lorem"
	Model    string // Model identifier for that provider
}

// ParseModel extracts provider information from a model string
//
// Supported formats:
//   - "gemini-1.5-flash" → {Provider: "gemini", Model: "gemini-1.5-flash"}
//   - "gpt-4o" → {Provider: "openai", Model: "gpt-4o"}
//   - "claude-haiku-4-5" → {Provider: "anthropic", Model: "claude-haiku-4-5"}
//   - "openrouter/anthropic/claude-haiku-4-5" → {Provider: "openrouter", Model: "anthropic/claude-haiku-4-5"}
//
// If the string contains "/" the provider is everything before the first "/".
// Otherwise it is inferred from the model prefix.
func ParseModel(modelStr string) (*ModelInfo, error) {
	modelStr = strings.TrimSpace(modelStr)
	if modelStr == "" {
		return nil, fmt.Errorf("model string cannot be empty")
	}

	if strings.Contains(modelStr, "/") {
		parts := strings.SplitN(modelStr, "/", 2)
		provider, model := parts[0], parts[1]

		if provider == "" {
			return nil, fmt.Errorf("provider cannot be empty in model string: %s", modelStr)
		}
		if model == "" {
			return nil, fmt.Errorf("model cannot be empty in model string: %s", modelStr)
		}

		return &ModelInfo{Provider: provider, Model: model}, nil
	}

	provider := inferProvider(modelStr)
	if provider == "" {
		return nil, fmt.Errorf("unable to infer provider from model: %s", modelStr)
	}

	return &ModelInfo{Provider: provider, Model: modelStr}, nil
}

// inferProvider infers the provider from model name prefix
func inferProvider(model string) string {
	modelLower := strings.ToLower(model)

	switch {
	case strings.HasPrefix(modelLower, "gemini-"):
		return ProviderGemini
	case strings.HasPrefix(modelLower, "gpt-"), strings.HasPrefix(modelLower, "o1-"), strings.HasPrefix(modelLower, "o3-"):
		return ProviderOpenAI
	case strings.HasPrefix(modelLower, "claude-"):
		return ProviderAnthropic
	case strings.HasPrefix(modelLower, "lorem-"):
		return ProviderLorem
	default:
		return ""
	}
}
