package adapters

import (
	"context"
	"strings"

	llmprovider "github.com/haowjy/meridian-llm-go"

	"conversa/internal/domain/models"
)

const (
	blockTypeText = "text"
	roleAssistant = "assistant"
)

// MeridianAdapter wraps a meridian-llm-go provider (Anthropic, OpenRouter,
// Lorem) and converts between stored messages and library blocks
type MeridianAdapter struct {
	provider llmprovider.Provider
	model    string
	system   string
}

// NewMeridianAdapter creates an adapter from an existing library provider
func NewMeridianAdapter(provider llmprovider.Provider, model, system string) *MeridianAdapter {
	return &MeridianAdapter{provider: provider, model: model, system: system}
}

// Name returns the provider name.
func (a *MeridianAdapter) Name() string {
	return a.provider.Name().String()
}

func (a *MeridianAdapter) Model() string { return a.model }

// GenerateReply issues one non-streaming request and joins the text blocks
func (a *MeridianAdapter) GenerateReply(ctx context.Context, history []models.Message, prompt string) (string, error) {
	resp, err := a.provider.GenerateResponse(ctx, toLibraryRequest(a.model, a.system, history, prompt))
	if err != nil {
		return "", err
	}
	return libraryText(resp), nil
}

// toLibraryRequest builds one text block per message, model becoming assistant
func toLibraryRequest(model, system string, history []models.Message, prompt string) *llmprovider.GenerateRequest {
	messages := make([]llmprovider.Message, 0, len(history)+1)
	for _, m := range history {
		role := string(m.Role)
		if m.Role == models.RoleModel {
			role = roleAssistant
		}
		messages = append(messages, textMessage(role, m.Text))
	}
	messages = append(messages, textMessage(string(models.RoleUser), prompt))

	req := &llmprovider.GenerateRequest{
		Messages: messages,
		Model:    model,
	}
	if system != "" {
		req.Params = &llmprovider.RequestParams{System: &system}
	}
	return req
}

func textMessage(role, text string) llmprovider.Message {
	return llmprovider.Message{
		Role: role,
		Blocks: []*llmprovider.Block{{
			BlockType:   blockTypeText,
			Sequence:    0,
			TextContent: &text,
		}},
	}
}

// libraryText joins text blocks, skipping thinking and tool blocks
func libraryText(resp *llmprovider.GenerateResponse) string {
	if resp == nil {
		return ""
	}

	var sb strings.Builder
	for _, block := range resp.Blocks {
		if block == nil || block.BlockType != blockTypeText || block.TextContent == nil {
			continue
		}
		sb.WriteString(*block.TextContent)
	}
	return sb.String()
}
