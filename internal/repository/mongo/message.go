package mongo

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
)

// MessageRepository stores messages as flat documents keyed by chat_path.
// Timestamps are unix microseconds: BSON dates only keep milliseconds, which
// would collapse the two records of one exchange.
type MessageRepository struct {
	coll   *mongodrv.Collection
	logger *slog.Logger
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(config *RepositoryConfig) repositories.MessageRepository {
	return &MessageRepository{
		coll:   config.Database.Collection(config.Collections.Messages),
		logger: config.Logger,
	}
}

type messageDocument struct {
	ID        string `bson:"_id"`
	ChatPath  string `bson:"chat_path"`
	Role      string `bson:"role"`
	Text      string `bson:"texto"`
	Timestamp int64  `bson:"timestamp"`
}

func (d messageDocument) toModel() models.Message {
	return models.Message{
		ID:        d.ID,
		Role:      models.Role(d.Role),
		Text:      d.Text,
		Timestamp: time.UnixMicro(d.Timestamp).UTC(),
	}
}

// List returns every message of the path in ascending timestamp order
func (r *MessageRepository) List(ctx context.Context, path models.ConversationPath) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	messages, err := r.find(ctx, path, opts)
	if err != nil {
		return nil, domain.NewStorageError("list messages", err)
	}
	return messages, nil
}

// ListRecent fetches the newest limit messages descending and reverses them
func (r *MessageRepository) ListRecent(ctx context.Context, path models.ConversationPath, limit int) ([]models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	messages, err := r.find(ctx, path, opts)
	if err != nil {
		return nil, domain.NewStorageError("list recent messages", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Append inserts all messages with one InsertMany call
func (r *MessageRepository) Append(ctx context.Context, path models.ConversationPath, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	docs := make([]interface{}, len(messages))
	for i, m := range messages {
		docs[i] = messageDocument{
			ID:        m.ID,
			ChatPath:  path.Key(),
			Role:      string(m.Role),
			Text:      m.Text,
			Timestamp: m.Timestamp.UnixMicro(),
		}
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return domain.NewStorageError("append messages", err)
	}

	r.logger.Debug("messages appended", "chat_path", path.Key(), "count", len(messages))
	return nil
}

func (r *MessageRepository) find(ctx context.Context, path models.ConversationPath, opts *options.FindOptions) ([]models.Message, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"chat_path": path.Key()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	messages := make([]models.Message, len(docs))
	for i, d := range docs {
		messages[i] = d.toModel()
	}
	return messages, nil
}
