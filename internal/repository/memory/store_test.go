package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/repository/repotest"
)

func TestStoreContract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repotest.Repos {
		s := NewStore()
		return repotest.Repos{Structure: s, Messages: s}
	})
}

func TestSaveDoesNotAliasCallerMap(t *testing.T) {
	s := NewStore()
	tree := models.StructureTree{"a": "b"}
	require.NoError(t, s.Save(context.Background(), tree))

	tree["a"] = "mutated"

	got, _, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", got["a"])
}

func TestFailWithSurfacesStorageError(t *testing.T) {
	s := NewStore()
	s.FailWith = errors.New("connection reset")

	_, _, err := s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)

	_, err = s.List(context.Background(), repotest.NewPath())
	assert.ErrorIs(t, err, domain.ErrStorage)

	assert.Error(t, s.Ping(context.Background()))
}
