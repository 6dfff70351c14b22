// Package repository selects and opens the configured store backend.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"conversa/internal/config"
	"conversa/internal/domain/repositories"
	"conversa/internal/repository/firestore"
	"conversa/internal/repository/memory"
	"conversa/internal/repository/mongo"
	"conversa/internal/repository/postgres"
	"conversa/internal/repository/redis"
)

// Store bundles the repositories of one backend. Close releases the
// underlying client and must be called once on shutdown.
type Store struct {
	Backend   string
	Structure repositories.StructureRepository
	Messages  repositories.MessageRepository
	Health    repositories.HealthChecker
	Close     func() error
}

// Open connects to cfg.StoreBackend. Connection or schema failures are
// returned so the process can fail at startup.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	logger = logger.With("backend", cfg.StoreBackend)

	switch cfg.StoreBackend {
	case config.BackendMemory:
		s := memory.NewStore()
		logger.Warn("using in-memory store, data is lost on restart")
		return &Store{
			Backend:   cfg.StoreBackend,
			Structure: s,
			Messages:  s,
			Health:    s,
			Close:     func() error { return nil },
		}, nil

	case config.BackendMongo:
		client, err := mongo.CreateClient(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repoCfg := &mongo.RepositoryConfig{
			Database:    client.Database(cfg.DatabaseName),
			Collections: mongo.NewCollectionNames(cfg.TablePrefix),
			Logger:      logger,
		}
		if err := mongo.EnsureIndexes(ctx, repoCfg); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		logger.Info("connected to mongo", "database", cfg.DatabaseName)
		return &Store{
			Backend:   cfg.StoreBackend,
			Structure: mongo.NewStructureRepository(repoCfg),
			Messages:  mongo.NewMessageRepository(repoCfg),
			Health:    mongo.NewHealthChecker(client),
			Close:     func() error { return client.Disconnect(context.Background()) },
		}, nil

	case config.BackendPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repoCfg := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		if err := postgres.EnsureSchema(ctx, repoCfg); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("connected to postgres", "table_prefix", cfg.TablePrefix)
		return &Store{
			Backend:   cfg.StoreBackend,
			Structure: postgres.NewStructureRepository(repoCfg),
			Messages:  postgres.NewMessageRepository(repoCfg, postgres.NewTransactionManager(pool, logger)),
			Health:    postgres.NewHealthChecker(pool),
			Close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case config.BackendRedis:
		client, err := redis.CreateClient(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repoCfg := &redis.RepositoryConfig{
			Client: client,
			Keys:   redis.NewKeyNames(cfg.TablePrefix),
			Logger: logger,
		}
		logger.Info("connected to redis", "key_prefix", cfg.TablePrefix)
		return &Store{
			Backend:   cfg.StoreBackend,
			Structure: redis.NewStructureRepository(repoCfg),
			Messages:  redis.NewMessageRepository(repoCfg),
			Health:    redis.NewHealthChecker(client),
			Close:     client.Close,
		}, nil

	case config.BackendFirestore:
		client, err := firestore.CreateClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			return nil, err
		}
		prefix := firestorePrefix(cfg)
		repoCfg := &firestore.RepositoryConfig{Client: client, Prefix: prefix, Logger: logger}
		logger.Info("connected to firestore", "project", cfg.FirestoreProjectID, "prefix", prefix)
		return &Store{
			Backend:   cfg.StoreBackend,
			Structure: firestore.NewStructureRepository(repoCfg),
			Messages:  firestore.NewMessageRepository(repoCfg),
			Health:    firestore.NewHealthChecker(repoCfg),
			Close:     client.Close,
		}, nil

	default:
		return nil, &config.Error{Err: fmt.Errorf("unknown store backend %q", cfg.StoreBackend)}
	}
}

// firestorePrefix keeps the legacy unprefixed layout in prod unless
// TABLE_PREFIX is set explicitly
func firestorePrefix(cfg *config.Config) string {
	if cfg.IsProduction() && !cfg.TablePrefixSet {
		return ""
	}
	return cfg.TablePrefix
}
