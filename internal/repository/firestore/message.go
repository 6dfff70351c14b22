package firestore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gfs "cloud.google.com/go/firestore"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
)

const messagesCollection = "mensagens"

// messageDocument is the stored shape under <conversation>/mensagens
type messageDocument struct {
	Role      string    `firestore:"role"`
	Text      string    `firestore:"texto"`
	Timestamp time.Time `firestore:"timestamp"`
}

// FirestoreMessageRepository stores messages in a subcollection of the
// nested conversation document
type FirestoreMessageRepository struct {
	client *gfs.Client
	prefix string
	logger *slog.Logger
}

// NewMessageRepository creates a new FirestoreMessageRepository
func NewMessageRepository(config *RepositoryConfig) repositories.MessageRepository {
	return &FirestoreMessageRepository{
		client: config.Client,
		prefix: config.Prefix,
		logger: config.Logger,
	}
}

// collection resolves the mensagens subcollection. The client returns nil
// when a segment holds a '/', which moves the path onto a document.
func (r *FirestoreMessageRepository) collection(path models.ConversationPath) (*gfs.CollectionRef, error) {
	coll := r.client.Collection(r.prefix + path.Key() + "/" + messagesCollection)
	if coll == nil {
		return nil, fmt.Errorf("invalid conversation path %q", path.Key())
	}
	return coll, nil
}

// List returns all messages ordered by timestamp
func (r *FirestoreMessageRepository) List(ctx context.Context, path models.ConversationPath) ([]models.Message, error) {
	coll, err := r.collection(path)
	if err != nil {
		return nil, domain.NewStorageError("list messages", err)
	}
	messages, err := r.getAll(ctx, coll.OrderBy("timestamp", gfs.Asc))
	if err != nil {
		return nil, domain.NewStorageError("list messages", err)
	}
	return messages, nil
}

// ListRecent queries newest first with a limit, then reverses
func (r *FirestoreMessageRepository) ListRecent(ctx context.Context, path models.ConversationPath, limit int) ([]models.Message, error) {
	coll, err := r.collection(path)
	if err != nil {
		return nil, domain.NewStorageError("list recent messages", err)
	}
	messages, err := r.getAll(ctx, coll.OrderBy("timestamp", gfs.Desc).Limit(limit))
	if err != nil {
		return nil, domain.NewStorageError("list recent messages", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Append creates every message inside one transaction
func (r *FirestoreMessageRepository) Append(ctx context.Context, path models.ConversationPath, messages []models.Message) error {
	coll, err := r.collection(path)
	if err != nil {
		return domain.NewStorageError("append messages", err)
	}
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *gfs.Transaction) error {
		for _, m := range messages {
			doc := messageDocument{Role: string(m.Role), Text: m.Text, Timestamp: m.Timestamp}
			if err := tx.Create(coll.Doc(m.ID), doc); err != nil {
				return fmt.Errorf("create message %s: %w", m.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.NewStorageError("append messages", err)
	}
	return nil
}

func (r *FirestoreMessageRepository) getAll(ctx context.Context, query gfs.Query) ([]models.Message, error) {
	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	messages := make([]models.Message, 0, len(snaps))
	for _, snap := range snaps {
		var doc messageDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode message %s: %w", snap.Ref.ID, err)
		}
		messages = append(messages, models.Message{
			ID:        snap.Ref.ID,
			Role:      models.Role(doc.Role),
			Text:      doc.Text,
			Timestamp: doc.Timestamp,
		})
	}
	return messages, nil
}
