package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema creates the structure and message tables and the ordered
// history index when they do not exist
func EnsureSchema(ctx context.Context, config *RepositoryConfig) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY,
				arvore     JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, config.Tables.Structure),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY,
				chat_path  TEXT NOT NULL,
				role       TEXT NOT NULL CHECK (role IN ('user', 'model')),
				texto      TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			)`, config.Tables.Messages),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_chat_path_created_at_idx ON %s (chat_path, created_at)`,
			config.Tables.Messages, config.Tables.Messages),
	}

	for _, stmt := range statements {
		if _, err := config.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	config.Logger.Debug("postgres schema ready",
		"structure_table", config.Tables.Structure,
		"messages_table", config.Tables.Messages,
	)
	return nil
}

// DropSchema removes the tables created by EnsureSchema
func DropSchema(ctx context.Context, config *RepositoryConfig) error {
	query := fmt.Sprintf(`DROP TABLE IF EXISTS %s, %s`, config.Tables.Messages, config.Tables.Structure)
	if _, err := config.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}
