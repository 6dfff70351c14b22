package mongo

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"conversa/internal/logging"
	"conversa/internal/repository/repotest"
)

// Runs against a live server when TEST_MONGO_URL is set, e.g.
// TEST_MONGO_URL=mongodb://localhost:27017
func TestStoreContract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URL")
	if uri == "" {
		t.Skip("TEST_MONGO_URL not set")
	}

	ctx := context.Background()
	client, err := CreateClient(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repotest.Run(t, func(t *testing.T) repotest.Repos {
		dbName := "conversa_test_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")
		db := client.Database(dbName)
		t.Cleanup(func() { _ = db.Drop(context.Background()) })

		cfg := &RepositoryConfig{
			Database:    db,
			Collections: NewCollectionNames("test_"),
			Logger:      logging.Discard(),
		}
		require.NoError(t, EnsureIndexes(ctx, cfg))

		return repotest.Repos{
			Structure: NewStructureRepository(cfg),
			Messages:  NewMessageRepository(cfg),
		}
	})
}
