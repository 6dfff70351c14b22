package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
)

// PostgresMessageRepository implements MessageRepository using PostgreSQL
type PostgresMessageRepository struct {
	pool      *pgxpool.Pool
	tables    *TableNames
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewMessageRepository creates a new PostgresMessageRepository
func NewMessageRepository(config *RepositoryConfig, txManager repositories.TransactionManager) repositories.MessageRepository {
	return &PostgresMessageRepository{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: txManager,
		logger:    config.Logger,
	}
}

// List returns every message of the path ordered by created_at
func (r *PostgresMessageRepository) List(ctx context.Context, path models.ConversationPath) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, role, texto, created_at
		FROM %s
		WHERE chat_path = $1
		ORDER BY created_at ASC
	`, r.tables.Messages)

	messages, err := r.query(ctx, query, path.Key())
	if err != nil {
		return nil, domain.NewStorageError("list messages", err)
	}
	return messages, nil
}

// ListRecent selects the newest limit rows descending and reverses them
func (r *PostgresMessageRepository) ListRecent(ctx context.Context, path models.ConversationPath, limit int) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, role, texto, created_at
		FROM %s
		WHERE chat_path = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.Messages)

	messages, err := r.query(ctx, query, path.Key(), limit)
	if err != nil {
		return nil, domain.NewStorageError("list recent messages", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Append inserts all messages in one transaction
func (r *PostgresMessageRepository) Append(ctx context.Context, path models.ConversationPath, messages []models.Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, chat_path, role, texto, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Messages)

	err := r.txManager.ExecTx(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, r.pool)
		for _, m := range messages {
			if _, err := executor.Exec(ctx, query, m.ID, path.Key(), string(m.Role), m.Text, m.Timestamp); err != nil {
				return fmt.Errorf("insert message: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.NewStorageError("append messages", err)
	}
	return nil
}

func (r *PostgresMessageRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Message, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var (
			m    models.Message
			role string
		)
		if err := rows.Scan(&m.ID, &role, &m.Text, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Role = models.Role(role)
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}
