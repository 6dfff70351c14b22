package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversa/internal/domain/models"
	"conversa/internal/logging"
	"conversa/internal/repository/memory"
	"conversa/internal/service"
)

const fixtureYAML = `
arvore:
  Projeto A:
    Pasta 1: [chat-1, chat-2]
conversas:
  - projeto: Projeto A
    pasta: Pasta 1
    chat_id: chat-1
    mensagens:
      - role: user
        texto: Oi
      - role: model
        texto: Olá!
      - role: user
        texto: Tudo bem?
      - role: model
        texto: Tudo ótimo.
`

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	require.Len(t, f.Conversations, 1)
	conv := f.Conversations[0]
	assert.Equal(t, models.ConversationPath{Project: "Projeto A", Folder: "Pasta 1", ChatID: "chat-1"}, conv.ConversationPath)
	assert.Len(t, conv.Messages, 4)
	assert.Contains(t, f.Structure, "Projeto A")
}

func TestParseFixtureRejectsBrokenPairs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"odd count", `
conversas:
  - {projeto: p, pasta: f, chat_id: c, mensagens: [{role: user, texto: a}]}
`},
		{"model first", `
conversas:
  - {projeto: p, pasta: f, chat_id: c, mensagens: [{role: model, texto: a}, {role: user, texto: b}]}
`},
		{"missing chat id", `
conversas:
  - {projeto: p, pasta: f, mensagens: []}
`},
		{"slash in segment", `
conversas:
  - {projeto: a/b, pasta: f, chat_id: c, mensagens: []}
`},
		{"unknown role", `
conversas:
  - {projeto: p, pasta: f, chat_id: c, mensagens: [{role: user, texto: a}, {role: assistant, texto: b}]}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadExampleFixture(t *testing.T) {
	f, err := LoadFixture("../../fixtures/exemplo.yaml")
	require.NoError(t, err)
	assert.Len(t, f.Conversations, 1)
	assert.Contains(t, f.Structure, "Projeto Exemplo")
}

func TestParseFixtureEmpty(t *testing.T) {
	f, err := ParseFixture(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, f.Structure)
	assert.Empty(t, f.Conversations)
}

func TestSeed(t *testing.T) {
	logger := logging.Discard()
	store := memory.NewStore()
	structureService := service.NewStructureService(store, logger)
	historyService := service.NewHistoryService(store, logger)

	f, err := ParseFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	result, err := NewSeeder(structureService, historyService, logger).Seed(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, &Result{StructureSaved: true, Conversations: 1, Messages: 4}, result)

	history, err := historyService.GetHistory(context.Background(), f.Conversations[0].ConversationPath)
	require.NoError(t, err)
	assert.Equal(t, []models.HistoryEntry{
		{Role: models.RoleUser, Text: "Oi"},
		{Role: models.RoleModel, Text: "Olá!"},
		{Role: models.RoleUser, Text: "Tudo bem?"},
		{Role: models.RoleModel, Text: "Tudo ótimo."},
	}, history)

	tree, err := structureService.LoadStructure(context.Background())
	require.NoError(t, err)
	assert.Contains(t, tree, "Projeto A")
}
