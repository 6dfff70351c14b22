package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
)

// RedisStructureRepository keeps the tree as a JSON string
type RedisStructureRepository struct {
	client *goredis.Client
	keys   *KeyNames
	logger *slog.Logger
}

// NewStructureRepository creates a new RedisStructureRepository
func NewStructureRepository(config *RepositoryConfig) repositories.StructureRepository {
	return &RedisStructureRepository{
		client: config.Client,
		keys:   config.Keys,
		logger: config.Logger,
	}
}

func (r *RedisStructureRepository) Load(ctx context.Context) (models.StructureTree, bool, error) {
	raw, err := r.client.Get(ctx, r.keys.Structure()).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
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

func (r *RedisStructureRepository) Save(ctx context.Context, tree models.StructureTree) error {
	if tree == nil {
		tree = models.EmptyStructure()
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return domain.NewStorageError("encode structure", err)
	}
	if err := r.client.Set(ctx, r.keys.Structure(), raw, 0).Err(); err != nil {
		return domain.NewStorageError("save structure", err)
	}
	return nil
}
