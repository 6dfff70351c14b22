package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Database    *mongodrv.Database
	Collections *CollectionNames
	Logger      *slog.Logger
}

// CollectionNames holds prefixed collection names
type CollectionNames struct {
	Structure string
	Messages  string
}

// NewCollectionNames creates collection names with the given prefix
func NewCollectionNames(prefix string) *CollectionNames {
	return &CollectionNames{
		Structure: prefix + "sistema",
		Messages:  prefix + "mensagens",
	}
}

// CreateClient connects to MongoDB and verifies the connection with a ping
func CreateClient(ctx context.Context, uri string) (*mongodrv.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongodrv.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the (chat_path, timestamp) index used by ordered
// history reads. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, config *RepositoryConfig) error {
	coll := config.Database.Collection(config.Collections.Messages)
	name, err := coll.Indexes().CreateOne(ctx, mongodrv.IndexModel{
		Keys:    bson.D{{Key: "chat_path", Value: 1}, {Key: "timestamp", Value: 1}},
		Options: options.Index().SetName("chat_path_timestamp"),
	})
	if err != nil {
		return fmt.Errorf("create message index: %w", err)
	}

	config.Logger.Debug("mongo index ready", "collection", config.Collections.Messages, "index", name)
	return nil
}

// HealthChecker pings the primary
type HealthChecker struct {
	client *mongodrv.Client
}

// NewHealthChecker creates a HealthChecker for client
func NewHealthChecker(client *mongodrv.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Ping reports whether the primary answers
func (h *HealthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}
