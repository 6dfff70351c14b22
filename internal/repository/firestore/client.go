package firestore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gfs "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Client *gfs.Client
	// Prefix is prepended to the root collections ("sistema", "projetos")
	Prefix string
	Logger *slog.Logger
}

// ClientOptionsFromEnv builds credentials from GOOGLE_APPLICATION_CREDENTIALS_JSON
// (inline JSON) or GOOGLE_APPLICATION_CREDENTIALS (inline JSON or file path).
// With neither set the client falls back to application default credentials.
func ClientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	opts := []option.ClientOption{}
	if creds == "" {
		return opts
	}
	if strings.HasPrefix(creds, "{") {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	} else {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	return opts
}

// CreateClient opens a Firestore client for projectID.
// FIRESTORE_EMULATOR_HOST is honoured by the client library itself.
func CreateClient(ctx context.Context, projectID string) (*gfs.Client, error) {
	client, err := gfs.NewClient(ctx, projectID, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return client, nil
}

// HealthChecker reads the structure document to prove the client can reach
// the project. A missing document still counts as reachable.
type HealthChecker struct {
	client *gfs.Client
	prefix string
}

// NewHealthChecker creates a HealthChecker for the configured client
func NewHealthChecker(config *RepositoryConfig) *HealthChecker {
	return &HealthChecker{client: config.Client, prefix: config.Prefix}
}

// Ping issues one document read
func (h *HealthChecker) Ping(ctx context.Context) error {
	_, err := structureDoc(h.client, h.prefix).Get(ctx)
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}
