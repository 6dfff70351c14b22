package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"conversa/internal/domain/models"
)

// GeminiAdapter answers through a Gemini chat session seeded with the
// replayed history
type GeminiAdapter struct {
	client *genai.Client
	model  string
	system string
}

// NewGeminiAdapter creates a client for apiKey. baseURL is optional and
// only set by tests or proxies.
func NewGeminiAdapter(ctx context.Context, apiKey, model, system, baseURL string) (*GeminiAdapter, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(baseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiAdapter{client: client, model: model, system: system}, nil
}

func (a *GeminiAdapter) Name() string  { return "gemini" }
func (a *GeminiAdapter) Model() string { return a.model }

// GenerateReply starts a chat with history and sends prompt. A response
// blocked by safety filters counts as no text.
func (a *GeminiAdapter) GenerateReply(ctx context.Context, history []models.Message, prompt string) (string, error) {
	model := a.client.GenerativeModel(a.model)
	if a.system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(a.system)}}
	}

	cs := model.StartChat()
	cs.History = toGeminiHistory(history)

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", nil
		}
		return "", err
	}

	return geminiText(resp), nil
}

// Close releases the underlying client
func (a *GeminiAdapter) Close() error {
	return a.client.Close()
}

// toGeminiHistory keeps the stored roles, which already match Gemini's
// user/model vocabulary
func toGeminiHistory(history []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		contents = append(contents, &genai.Content{
			Role:  string(m.Role),
			Parts: []genai.Part{genai.Text(m.Text)},
		})
	}
	return contents
}

// geminiText concatenates the text parts of the first candidate
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
