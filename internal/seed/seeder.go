package seed

import (
	"context"
	"fmt"
	"log/slog"

	"conversa/internal/domain/services"
)

// Result counts what Seed wrote
type Result struct {
	StructureSaved bool
	Conversations  int
	Messages       int
}

// Seeder writes fixtures through the structure and history services
type Seeder struct {
	structure services.StructureService
	history   services.HistoryService
	logger    *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(structure services.StructureService, history services.HistoryService, logger *slog.Logger) *Seeder {
	return &Seeder{structure: structure, history: history, logger: logger}
}

// Seed saves the structure (when present) and appends each conversation's
// exchanges in file order. Existing messages are kept.
func (s *Seeder) Seed(ctx context.Context, fixture *Fixture) (*Result, error) {
	result := &Result{}

	if fixture.Structure != nil {
		if err := s.structure.SaveStructure(ctx, fixture.Structure); err != nil {
			return result, fmt.Errorf("save structure: %w", err)
		}
		result.StructureSaved = true
		s.logger.Info("structure seeded", "top_level_entries", len(fixture.Structure))
	}

	for _, conv := range fixture.Conversations {
		for i := 0; i+1 < len(conv.Messages); i += 2 {
			if _, err := s.history.AppendExchange(ctx, conv.ConversationPath, conv.Messages[i].Text, conv.Messages[i+1].Text); err != nil {
				return result, fmt.Errorf("seed %s: %w", conv.Key(), err)
			}
			result.Messages += 2
		}
		result.Conversations++
		s.logger.Info("conversation seeded", "path", conv.Key(), "messages", len(conv.Messages))
	}

	return result, nil
}
