package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"conversa/internal/config"
	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/services"
)

// ChatConfig tunes the send-message flow
type ChatConfig struct {
	// HistoryLimit is how many recent messages are replayed to the model
	HistoryLimit int
	// FallbackReply replaces an empty model output
	FallbackReply string
}

type chatService struct {
	history  services.HistoryService
	provider services.ModelProvider
	cfg      ChatConfig
	locks    *pathLocks
	logger   *slog.Logger
}

// NewChatService creates a new chat service. Zero config values fall back
// to the package defaults.
func NewChatService(
	history services.HistoryService,
	provider services.ModelProvider,
	cfg ChatConfig,
	logger *slog.Logger,
) services.ChatService {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = config.DefaultHistoryLimit
	}
	if cfg.FallbackReply == "" {
		cfg.FallbackReply = config.DefaultFallbackReply
	}
	return &chatService{
		history:  history,
		provider: provider,
		cfg:      cfg,
		locks:    newPathLocks(),
		logger:   logger,
	}
}

// SendMessage runs bound, replay, persist for one prompt. Requests on the
// same conversation are handled one at a time.
func (s *chatService) SendMessage(ctx context.Context, req *services.SendMessageRequest) (*services.SendMessageResponse, error) {
	if err := s.validateSendRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	path := req.Path()
	unlock := s.locks.lock(path.Key())
	defer unlock()

	start := time.Now()

	recent, err := s.history.GetRecentHistory(ctx, path, s.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}

	// An odd window can open on a model turn; providers expect user first
	if len(recent) > 0 && recent[0].Role == models.RoleModel {
		recent = recent[1:]
	}

	reply, err := s.provider.GenerateReply(ctx, recent, req.Prompt)
	if err != nil {
		s.logger.Error("model call failed",
			"path", path.Key(),
			"provider", s.provider.Name(),
			"model", s.provider.Model(),
			"error", err,
		)
		return nil, domain.NewModelError(s.provider.Name(), err)
	}

	if strings.TrimSpace(reply) == "" {
		s.logger.Warn("model returned no text, using fallback",
			"path", path.Key(),
			"model", s.provider.Model(),
		)
		reply = s.cfg.FallbackReply
	}

	if _, err := s.history.AppendExchange(ctx, path, req.Prompt, reply); err != nil {
		return nil, err
	}

	s.logger.Info("message sent",
		"path", path.Key(),
		"model", s.provider.Model(),
		"history_len", len(recent),
		"reply_len", len(reply),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &services.SendMessageResponse{Reply: reply}, nil
}

func (s *chatService) validateSendRequest(req *services.SendMessageRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Prompt,
			validation.By(notBlank),
			validation.RuneLength(0, config.MaxPromptLength),
		),
	)
	if err != nil {
		return err
	}
	return req.Path().Validate()
}

func notBlank(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}
