package firestore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gfs "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
)

const structureField = "arvore"

// FirestoreStructureRepository stores the tree in the arvore field of sistema/estrutura
type FirestoreStructureRepository struct {
	client *gfs.Client
	prefix string
	logger *slog.Logger
}

// NewStructureRepository creates a new FirestoreStructureRepository
func NewStructureRepository(config *RepositoryConfig) repositories.StructureRepository {
	return &FirestoreStructureRepository{
		client: config.Client,
		prefix: config.Prefix,
		logger: config.Logger,
	}
}

func structureDoc(client *gfs.Client, prefix string) *gfs.DocumentRef {
	return client.Collection(prefix + models.StructureCollection).Doc(models.StructureDocumentID)
}

// Load returns the arvore field. A document without the field reads as empty.
func (r *FirestoreStructureRepository) Load(ctx context.Context) (models.StructureTree, bool, error) {
	snap, err := structureDoc(r.client, r.prefix).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, domain.NewStorageError("load structure", err)
	}

	raw, err := snap.DataAt(structureField)
	if err != nil {
		r.logger.Warn("structure document has no arvore field", "path", snap.Ref.Path)
		return models.EmptyStructure(), true, nil
	}

	tree, ok := raw.(map[string]interface{})
	if !ok {
		r.logger.Warn("structure arvore is not a map", "type", fmt.Sprintf("%T", raw))
		return models.EmptyStructure(), true, nil
	}
	return models.StructureTree(tree), true, nil
}

// Save overwrites the document with the new tree
func (r *FirestoreStructureRepository) Save(ctx context.Context, tree models.StructureTree) error {
	if tree == nil {
		tree = models.EmptyStructure()
	}
	_, err := structureDoc(r.client, r.prefix).Set(ctx, map[string]interface{}{
		structureField: map[string]interface{}(tree),
		"updated_at":   time.Now().UTC(),
	})
	if err != nil {
		return domain.NewStorageError("save structure", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
