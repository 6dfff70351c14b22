package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
	"conversa/internal/domain/services"
)

type historyService struct {
	repo   repositories.MessageRepository
	clock  *stamper
	logger *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(repo repositories.MessageRepository, logger *slog.Logger) services.HistoryService {
	return &historyService{
		repo:   repo,
		clock:  newStamper(),
		logger: logger,
	}
}

// GetHistory returns the whole conversation as {role, texto} entries
func (s *historyService) GetHistory(ctx context.Context, path models.ConversationPath) ([]models.HistoryEntry, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	messages, err := s.repo.List(ctx, path)
	if err != nil {
		return nil, err
	}
	return models.ToHistory(messages), nil
}

// GetRecentHistory returns at most limit messages, oldest first
func (s *historyService) GetRecentHistory(ctx context.Context, path models.ConversationPath, limit int) ([]models.Message, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	return s.repo.ListRecent(ctx, path, limit)
}

// AppendExchange writes the prompt and the reply as one batch. The user
// message is always stamped before the model message.
func (s *historyService) AppendExchange(ctx context.Context, path models.ConversationPath, prompt, reply string) ([]models.Message, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	pair := []models.Message{
		{ID: uuid.NewString(), Role: models.RoleUser, Text: prompt, Timestamp: s.clock.next()},
		{ID: uuid.NewString(), Role: models.RoleModel, Text: reply, Timestamp: s.clock.next()},
	}

	if err := s.repo.Append(ctx, path, pair); err != nil {
		return nil, err
	}

	s.logger.Debug("exchange appended", "path", path.Key(), "user_id", pair[0].ID, "model_id", pair[1].ID)
	return pair, nil
}

func validatePath(path models.ConversationPath) error {
	if err := path.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
