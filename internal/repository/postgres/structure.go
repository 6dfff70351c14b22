package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
)

// PostgresStructureRepository keeps the tree as one JSONB row
type PostgresStructureRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewStructureRepository creates a new PostgresStructureRepository
func NewStructureRepository(config *RepositoryConfig) repositories.StructureRepository {
	return &PostgresStructureRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Load returns the stored tree
func (r *PostgresStructureRepository) Load(ctx context.Context) (models.StructureTree, bool, error) {
	query := fmt.Sprintf(`SELECT arvore FROM %s WHERE id = $1`, r.tables.Structure)

	var raw []byte
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, models.StructureDocumentID).Scan(&raw)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, false, nil
		}
		return nil, false, domain.NewStorageError("load structure", err)
	}

	tree := models.EmptyStructure()
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, false, domain.NewStorageError("decode structure", err)
	}
	return tree, true, nil
}

// Save upserts the single structure row
func (r *PostgresStructureRepository) Save(ctx context.Context, tree models.StructureTree) error {
	if tree == nil {
		tree = models.EmptyStructure()
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return domain.NewStorageError("encode structure", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, arvore, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET arvore = EXCLUDED.arvore, updated_at = EXCLUDED.updated_at
	`, r.tables.Structure)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, models.StructureDocumentID, raw); err != nil {
		return domain.NewStorageError("save structure", err)
	}
	return nil
}
