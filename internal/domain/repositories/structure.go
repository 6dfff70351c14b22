package repositories

import (
	"context"

	"conversa/internal/domain/models"
)

// StructureRepository persists the singleton structure tree
type StructureRepository interface {
	// Load returns the stored tree. found is false when nothing was saved yet;
	// absence is not an error.
	Load(ctx context.Context) (tree models.StructureTree, found bool, err error)

	// Save replaces the stored tree wholesale
	Save(ctx context.Context, tree models.StructureTree) error
}
