package capabilities

import (
	"testing"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		name         string
		modelStr     string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{
			name:         "gemini flash",
			modelStr:     "gemini-1.5-flash",
			wantProvider: "gemini",
			wantModel:    "gemini-1.5-flash",
		},
		{
			name:         "surrounding whitespace is ignored",
			modelStr:     "  gemini-2.5-pro ",
			wantProvider: "gemini",
			wantModel:    "gemini-2.5-pro",
		},
		{
			name:         "gpt model",
			modelStr:     "gpt-4o",
			wantProvider: "openai",
			wantModel:    "gpt-4o",
		},
		{
			name:         "claude model",
			modelStr:     "claude-haiku-4-5",
			wantProvider: "anthropic",
			wantModel:    "claude-haiku-4-5",
		},
		{
			name:         "openrouter with full path",
			modelStr:     "openrouter/anthropic/claude-haiku-4-5",
			wantProvider: "openrouter",
			wantModel:    "anthropic/claude-haiku-4-5",
		},
		{
			name:         "lorem mock",
			modelStr:     "lorem-fast",
			wantProvider: "lorem",
			wantModel:    "lorem-fast",
		},
		{
			name:     "empty string",
			modelStr: "",
			wantErr:  true,
		},
		{
			name:     "unknown model prefix",
			modelStr: "unknown-model-123",
			wantErr:  true,
		},
		{
			name:     "provider without model",
			modelStr: "gemini/",
			wantErr:  true,
		},
		{
			name:     "model without provider",
			modelStr: "/gemini-1.5-flash",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModel(tt.modelStr)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseModel() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("ParseModel() unexpected error: %v", err)
				return
			}

			if got.Provider != tt.wantProvider {
				t.Errorf("ParseModel() provider = %v, want %v", got.Provider, tt.wantProvider)
			}

			if got.Model != tt.wantModel {
				t.Errorf("ParseModel() model = %v, want %v", got.Model, tt.wantModel)
			}
		})
	}
}
