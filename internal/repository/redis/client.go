package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Client *goredis.Client
	Keys   *KeyNames
	Logger *slog.Logger
}

// KeyNames builds prefixed keys
type KeyNames struct {
	prefix string
}

// NewKeyNames creates key names with the given prefix
func NewKeyNames(prefix string) *KeyNames {
	return &KeyNames{prefix: prefix}
}

// Structure is the string key holding the tree as JSON
func (k *KeyNames) Structure() string {
	return k.prefix + "sistema:estrutura"
}

// Messages is the sorted set of one conversation, scored by timestamp in microseconds
func (k *KeyNames) Messages(chatPath string) string {
	return k.prefix + "mensagens:" + chatPath
}

// CreateClient parses a redis:// URL, connects and pings
func CreateClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// HealthChecker pings the server
type HealthChecker struct {
	client *goredis.Client
}

// NewHealthChecker creates a HealthChecker for client
func NewHealthChecker(client *goredis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

func (h *HealthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
