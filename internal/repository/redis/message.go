package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
)

// member is the JSON stored as a sorted set member. The id keeps members
// unique when two messages carry the same text.
type member struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"texto"`
	Timestamp int64  `json:"timestamp"`
}

// RedisMessageRepository stores each conversation as one sorted set
type RedisMessageRepository struct {
	client *goredis.Client
	keys   *KeyNames
	logger *slog.Logger
}

// NewMessageRepository creates a new RedisMessageRepository
func NewMessageRepository(config *RepositoryConfig) repositories.MessageRepository {
	return &RedisMessageRepository{
		client: config.Client,
		keys:   config.Keys,
		logger: config.Logger,
	}
}

func (r *RedisMessageRepository) List(ctx context.Context, path models.ConversationPath) ([]models.Message, error) {
	raw, err := r.client.ZRange(ctx, r.keys.Messages(path.Key()), 0, -1).Result()
	if err != nil {
		return nil, domain.NewStorageError("list messages", err)
	}
	messages, err := decodeMembers(raw)
	if err != nil {
		return nil, domain.NewStorageError("list messages", err)
	}
	return messages, nil
}

// ListRecent reads the highest scores first and reverses them
func (r *RedisMessageRepository) ListRecent(ctx context.Context, path models.ConversationPath, limit int) ([]models.Message, error) {
	raw, err := r.client.ZRevRange(ctx, r.keys.Messages(path.Key()), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, domain.NewStorageError("list recent messages", err)
	}
	messages, err := decodeMembers(raw)
	if err != nil {
		return nil, domain.NewStorageError("list recent messages", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Append adds all messages in one MULTI/EXEC block
func (r *RedisMessageRepository) Append(ctx context.Context, path models.ConversationPath, messages []models.Message) error {
	zs := make([]goredis.Z, 0, len(messages))
	for _, m := range messages {
		raw, err := json.Marshal(member{
			ID:        m.ID,
			Role:      string(m.Role),
			Text:      m.Text,
			Timestamp: m.Timestamp.UnixMicro(),
		})
		if err != nil {
			return domain.NewStorageError("encode message", err)
		}
		zs = append(zs, goredis.Z{Score: float64(m.Timestamp.UnixMicro()), Member: raw})
	}

	key := r.keys.Messages(path.Key())
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZAdd(ctx, key, zs...)
		return nil
	})
	if err != nil {
		return domain.NewStorageError("append messages", err)
	}
	return nil
}

func decodeMembers(raw []string) ([]models.Message, error) {
	messages := make([]models.Message, 0, len(raw))
	for _, s := range raw {
		var m member
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, models.Message{
			ID:        m.ID,
			Role:      models.Role(m.Role),
			Text:      m.Text,
			Timestamp: time.UnixMicro(m.Timestamp).UTC(),
		})
	}
	return messages, nil
}
