package services

import (
	"context"

	"conversa/internal/domain/models"
)

// StructureService serves and replaces the sidebar structure tree
type StructureService interface {
	// LoadStructure returns the saved tree, or an empty tree when none exists
	LoadStructure(ctx context.Context) (models.StructureTree, error)

	// SaveStructure overwrites the saved tree
	SaveStructure(ctx context.Context, tree models.StructureTree) error
}
