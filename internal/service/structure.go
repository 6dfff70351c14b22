package service

import (
	"context"
	"fmt"
	"log/slog"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
	"conversa/internal/domain/services"
)

type structureService struct {
	repo   repositories.StructureRepository
	logger *slog.Logger
}

// NewStructureService creates a new structure service
func NewStructureService(repo repositories.StructureRepository, logger *slog.Logger) services.StructureService {
	return &structureService{repo: repo, logger: logger}
}

// LoadStructure returns the saved tree. Nothing saved yet is an empty tree.
func (s *structureService) LoadStructure(ctx context.Context) (models.StructureTree, error) {
	tree, found, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !found || tree == nil {
		return models.EmptyStructure(), nil
	}
	return tree, nil
}

// SaveStructure replaces the tree wholesale
func (s *structureService) SaveStructure(ctx context.Context, tree models.StructureTree) error {
	if tree == nil {
		return fmt.Errorf("%w: arvore is required", domain.ErrValidation)
	}

	if err := s.repo.Save(ctx, tree); err != nil {
		return err
	}

	s.logger.Info("structure saved", "top_level_entries", len(tree))
	return nil
}
