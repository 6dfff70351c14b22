package services

import (
	"context"

	"conversa/internal/domain/models"
)

// ModelProvider invokes a generative language model synchronously.
// Implementations return an empty string when the model produced no text;
// substituting the fallback reply is the caller's job.
type ModelProvider interface {
	// GenerateReply sends history (oldest first) followed by prompt
	GenerateReply(ctx context.Context, history []models.Message, prompt string) (string, error)

	// Name returns the provider name (e.g. "gemini")
	Name() string

	// Model returns the model identifier requests are sent to
	Model() string
}
