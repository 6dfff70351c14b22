package adapters

import (
	"context"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"

	"conversa/internal/domain/models"
)

// OpenAIAdapter answers through the chat completions API
type OpenAIAdapter struct {
	client openai.Client
	model  string
	system string
}

// NewOpenAIAdapter creates a client for apiKey. Extra options go after the
// key (base URL, retries).
func NewOpenAIAdapter(apiKey, model, system string, opts ...oaioption.RequestOption) *OpenAIAdapter {
	opts = append([]oaioption.RequestOption{oaioption.WithAPIKey(apiKey)}, opts...)
	return &OpenAIAdapter{
		client: openai.NewClient(opts...),
		model:  model,
		system: system,
	}
}

func (a *OpenAIAdapter) Name() string  { return "openai" }
func (a *OpenAIAdapter) Model() string { return a.model }

// GenerateReply sends system, history and prompt as one completion request
func (a *OpenAIAdapter) GenerateReply(ctx context.Context, history []models.Message, prompt string) (string, error) {
	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: toOpenAIMessages(a.system, history, prompt),
		Model:    openai.ChatModel(a.model),
	})
	if err != nil {
		return "", err
	}

	if completion == nil || len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

// toOpenAIMessages maps the model role to assistant
func toOpenAIMessages(system string, history []models.Message, prompt string) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	for _, m := range history {
		if m.Role == models.RoleModel {
			messages = append(messages, openai.AssistantMessage(m.Text))
		} else {
			messages = append(messages, openai.UserMessage(m.Text))
		}
	}
	return append(messages, openai.UserMessage(prompt))
}
