package services

import (
	"context"

	"conversa/internal/domain/models"
)

// HistoryService reads conversation history
type HistoryService interface {
	// GetHistory returns every message of the path, oldest first
	GetHistory(ctx context.Context, path models.ConversationPath) ([]models.HistoryEntry, error)

	// GetRecentHistory returns the latest limit messages, oldest first
	GetRecentHistory(ctx context.Context, path models.ConversationPath, limit int) ([]models.Message, error)

	// AppendExchange stamps and persists one user prompt and its model reply
	AppendExchange(ctx context.Context, path models.ConversationPath, prompt, reply string) ([]models.Message, error)
}

// ChatService composes history, model invocation and persistence
type ChatService interface {
	// SendMessage validates the prompt, replays bounded history to the model,
	// persists the exchange and returns the reply text
	SendMessage(ctx context.Context, req *SendMessageRequest) (*SendMessageResponse, error)
}

// SendMessageRequest is the DTO for POST /enviar_mensagem
type SendMessageRequest struct {
	Project string `json:"projeto"`
	Folder  string `json:"pasta"`
	ChatID  string `json:"chat_id"`
	Prompt  string `json:"prompt"`
}

// Path returns the conversation addressed by the request
func (r *SendMessageRequest) Path() models.ConversationPath {
	return models.ConversationPath{Project: r.Project, Folder: r.Folder, ChatID: r.ChatID}
}

// SendMessageResponse is the DTO returned by POST /enviar_mensagem
type SendMessageResponse struct {
	Reply string `json:"resposta"`
}
