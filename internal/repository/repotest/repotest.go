// Package repotest holds the behavioural contract every store backend must
// satisfy. Backend packages call Run from their own tests.
package repotest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
)

// Repos is one isolated store instance. Factories must hand out a fresh,
// empty namespace on every call (new prefix, database or key space).
type Repos struct {
	Structure repositories.StructureRepository
	Messages  repositories.MessageRepository
}

// Factory creates isolated repositories for one subtest
type Factory func(t *testing.T) Repos

// Run executes the full contract against the factory's backend
func Run(t *testing.T, newRepos Factory) {
	t.Run("missing structure is not an error", func(t *testing.T) {
		testMissingStructure(t, newRepos(t))
	})
	t.Run("structure round trip", func(t *testing.T) {
		testStructureRoundTrip(t, newRepos(t))
	})
	t.Run("structure overwrite", func(t *testing.T) {
		testStructureOverwrite(t, newRepos(t))
	})
	t.Run("history ordering", func(t *testing.T) {
		testHistoryOrdering(t, newRepos(t))
	})
	t.Run("bounded recent history", func(t *testing.T) {
		testBoundedRecent(t, newRepos(t))
	})
	t.Run("paths are isolated", func(t *testing.T) {
		testPathIsolation(t, newRepos(t))
	})
}

// NewPath returns a conversation path no other test uses
func NewPath() models.ConversationPath {
	id := uuid.NewString()
	return models.ConversationPath{Project: "proj-" + id[:8], Folder: "pasta", ChatID: id}
}

// Stamp builds n alternating user/model messages one millisecond apart
func Stamp(base time.Time, n int) []models.Message {
	msgs := make([]models.Message, n)
	for i := range msgs {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleModel
		}
		msgs[i] = models.Message{
			ID:        uuid.NewString(),
			Role:      role,
			Text:      fmt.Sprintf("mensagem %02d", i),
			Timestamp: base.Add(time.Duration(i) * time.Millisecond).UTC().Truncate(time.Microsecond),
		}
	}
	return msgs
}

func testMissingStructure(t *testing.T, r Repos) {
	tree, found, err := r.Structure.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, tree)
}

func testStructureRoundTrip(t *testing.T, r Repos) {
	ctx := context.Background()
	trees := []models.StructureTree{
		{},
		{"Projeto A": map[string]interface{}{"Pasta 1": []interface{}{"chat-1", "chat-2"}}},
		{
			"nested": map[string]interface{}{
				"deeper": map[string]interface{}{"leaf": "valor", "count": float64(3), "ok": true},
			},
			"list": []interface{}{float64(1), "dois", false, nil},
		},
	}

	for i, want := range trees {
		require.NoError(t, r.Structure.Save(ctx, want), "tree %d", i)

		got, found, err := r.Structure.Load(ctx)
		require.NoError(t, err, "tree %d", i)
		assert.True(t, found, "tree %d", i)
		assert.Equal(t, want, got, "tree %d", i)
	}
}

func testStructureOverwrite(t *testing.T, r Repos) {
	ctx := context.Background()
	require.NoError(t, r.Structure.Save(ctx, models.StructureTree{"old": "value", "keep": "no"}))
	require.NoError(t, r.Structure.Save(ctx, models.StructureTree{"new": "value"}))

	got, _, err := r.Structure.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StructureTree{"new": "value"}, got)
}

func testHistoryOrdering(t *testing.T, r Repos) {
	ctx := context.Background()
	path := NewPath()
	msgs := Stamp(time.Now(), 10)

	// Appending out of order must not change read order
	for i := len(msgs) - 2; i >= 0; i -= 2 {
		require.NoError(t, r.Messages.Append(ctx, path, msgs[i:i+2]))
	}

	got, err := r.Messages.List(ctx, path)
	require.NoError(t, err)
	require.Len(t, got, len(msgs))
	for i := range msgs {
		assert.Equal(t, msgs[i].Role, got[i].Role, "message %d", i)
		assert.Equal(t, msgs[i].Text, got[i].Text, "message %d", i)
		if i > 0 {
			assert.False(t, got[i].Timestamp.Before(got[i-1].Timestamp), "message %d out of order", i)
		}
	}
}

func testBoundedRecent(t *testing.T, r Repos) {
	ctx := context.Background()
	path := NewPath()
	msgs := Stamp(time.Now(), 50)

	for i := 0; i < len(msgs); i += 2 {
		require.NoError(t, r.Messages.Append(ctx, path, msgs[i:i+2]))
	}

	got, err := r.Messages.ListRecent(ctx, path, 20)
	require.NoError(t, err)
	require.Len(t, got, 20)
	for i, m := range got {
		assert.Equal(t, msgs[30+i].Text, m.Text, "recent message %d", i)
	}

	all, err := r.Messages.List(ctx, path)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}

func testPathIsolation(t *testing.T, r Repos) {
	ctx := context.Background()
	a, b := NewPath(), NewPath()
	require.NoError(t, r.Messages.Append(ctx, a, Stamp(time.Now(), 2)))

	got, err := r.Messages.List(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, got)

	recent, err := r.Messages.ListRecent(ctx, b, 20)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
