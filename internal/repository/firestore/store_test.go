package firestore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/logging"
	"conversa/internal/repository/repotest"
)

func TestClientOptionsFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		jsonEnv  string
		fileEnv  string
		expected int
	}{
		{"none", "", "", 0},
		{"inline json", `{"type":"service_account"}`, "", 1},
		{"file path", "", "/secrets/key.json", 1},
		{"json wins", `{"type":"service_account"}`, "/secrets/key.json", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", tt.jsonEnv)
			t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", tt.fileEnv)
			assert.Len(t, ClientOptionsFromEnv(), tt.expected)
		})
	}
}

// A '/' inside a segment makes the client hand back a nil collection; the
// repository must report it instead of dereferencing it. No emulator is
// contacted since the path is rejected before any RPC.
func TestMessagesRejectSlashInSegment(t *testing.T) {
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:1")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	ctx := context.Background()
	client, err := CreateClient(ctx, "conversa-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewMessageRepository(&RepositoryConfig{Client: client, Logger: logging.Discard()})
	path := models.ConversationPath{Project: "a/b", Folder: "f", ChatID: "c"}

	_, err = repo.List(ctx, path)
	assert.True(t, errors.Is(err, domain.ErrStorage), "got %v", err)

	_, err = repo.ListRecent(ctx, path, 20)
	assert.True(t, errors.Is(err, domain.ErrStorage), "got %v", err)

	err = repo.Append(ctx, path, []models.Message{{ID: "m1", Role: models.RoleUser, Text: "oi"}})
	assert.True(t, errors.Is(err, domain.ErrStorage), "got %v", err)
}

// Runs against the emulator when FIRESTORE_EMULATOR_HOST is set
func TestStoreContract(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := CreateClient(ctx, "conversa-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repotest.Run(t, func(t *testing.T) repotest.Repos {
		cfg := &RepositoryConfig{
			Client: client,
			Prefix: "t" + uuid.NewString()[:8] + "_",
			Logger: logging.Discard(),
		}
		return repotest.Repos{
			Structure: NewStructureRepository(cfg),
			Messages:  NewMessageRepository(cfg),
		}
	})
}
