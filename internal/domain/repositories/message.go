package repositories

import (
	"context"

	"conversa/internal/domain/models"
)

// MessageRepository persists conversation messages. Messages are append-only:
// there is no update or delete.
type MessageRepository interface {
	// List returns every message of the path in ascending timestamp order
	List(ctx context.Context, path models.ConversationPath) ([]models.Message, error)

	// ListRecent returns the latest limit messages of the path, ascending.
	// Implementations query descending with a limit and reverse the page.
	ListRecent(ctx context.Context, path models.ConversationPath, limit int) ([]models.Message, error)

	// Append writes all messages in one batch. Callers stamp ID and Timestamp.
	Append(ctx context.Context, path models.ConversationPath, messages []models.Message) error
}
