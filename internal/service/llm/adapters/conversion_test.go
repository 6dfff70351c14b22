package adapters

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	llmprovider "github.com/haowjy/meridian-llm-go"

	"conversa/internal/domain/models"
)

func exchange() []models.Message {
	return []models.Message{
		{Role: models.RoleUser, Text: "oi"},
		{Role: models.RoleModel, Text: "olá, como posso ajudar?"},
	}
}

func TestToGeminiHistory(t *testing.T) {
	got := toGeminiHistory(exchange())

	if len(got) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(got))
	}
	if got[0].Role != "user" || got[1].Role != "model" {
		t.Errorf("unexpected roles %q, %q", got[0].Role, got[1].Role)
	}
	if text, ok := got[1].Parts[0].(genai.Text); !ok || string(text) != "olá, como posso ajudar?" {
		t.Errorf("unexpected part %#v", got[1].Parts[0])
	}
}

func TestGeminiText(t *testing.T) {
	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		expected string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"candidate without content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{
			name: "text parts joined",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("Olá, "), genai.Text("mundo")}},
			}}},
			expected: "Olá, mundo",
		},
		{
			name: "non text parts skipped",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.FunctionCall{Name: "f"}, genai.Text("ok")}},
			}}},
			expected: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := geminiText(tt.resp); got != tt.expected {
				t.Errorf("geminiText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestToLibraryRequest(t *testing.T) {
	req := toLibraryRequest("claude-haiku-4-5", "", exchange(), "e agora?")

	if req.Model != "claude-haiku-4-5" {
		t.Errorf("unexpected model %q", req.Model)
	}
	if req.Params != nil {
		t.Errorf("expected no params without a system prompt")
	}

	wantRoles := []string{"user", "assistant", "user"}
	if len(req.Messages) != len(wantRoles) {
		t.Fatalf("expected %d messages, got %d", len(wantRoles), len(req.Messages))
	}
	for i, role := range wantRoles {
		if req.Messages[i].Role != role {
			t.Errorf("message %d: role %q, want %q", i, req.Messages[i].Role, role)
		}
	}

	last := req.Messages[2].Blocks[0]
	if last.BlockType != "text" || last.TextContent == nil || *last.TextContent != "e agora?" {
		t.Errorf("unexpected prompt block %#v", last)
	}
}

func TestToLibraryRequestSystemPrompt(t *testing.T) {
	req := toLibraryRequest("lorem-fast", "Responda em português.", nil, "oi")

	if req.Params == nil || req.Params.System == nil {
		t.Fatal("expected system prompt in params")
	}
	if *req.Params.System != "Responda em português." {
		t.Errorf("unexpected system prompt %q", *req.Params.System)
	}
}

func TestLibraryText(t *testing.T) {
	hello, world, thought := "Olá", " mundo", "pensando"

	resp := &llmprovider.GenerateResponse{Blocks: []*llmprovider.Block{
		{BlockType: "thinking", TextContent: &thought},
		{BlockType: "text", TextContent: &hello},
		nil,
		{BlockType: "text"},
		{BlockType: "text", TextContent: &world},
	}}

	if got := libraryText(resp); got != "Olá mundo" {
		t.Errorf("libraryText() = %q", got)
	}
	if got := libraryText(nil); got != "" {
		t.Errorf("libraryText(nil) = %q", got)
	}
}
