package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/logging"
	"conversa/internal/repository/memory"
)

func TestLoadStructureMissingIsEmpty(t *testing.T) {
	svc := NewStructureService(memory.NewStore(), logging.Discard())

	tree, err := svc.LoadStructure(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Equal(t, models.StructureTree{}, tree)
}

func TestSaveStructureRoundTrip(t *testing.T) {
	svc := NewStructureService(memory.NewStore(), logging.Discard())
	tree := models.StructureTree{"Projeto": map[string]interface{}{"Pasta": []interface{}{"chat-1"}}}

	require.NoError(t, svc.SaveStructure(context.Background(), tree))

	got, err := svc.LoadStructure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tree, got)
}

func TestSaveStructureRejectsNil(t *testing.T) {
	svc := NewStructureService(memory.NewStore(), logging.Discard())

	err := svc.SaveStructure(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestStructureStorageError(t *testing.T) {
	store := memory.NewStore()
	store.FailWith = errors.New("unavailable")
	svc := NewStructureService(store, logging.Discard())

	_, err := svc.LoadStructure(context.Background())
	assert.True(t, errors.Is(err, domain.ErrStorage))

	err = svc.SaveStructure(context.Background(), models.StructureTree{})
	assert.True(t, errors.Is(err, domain.ErrStorage))
}
