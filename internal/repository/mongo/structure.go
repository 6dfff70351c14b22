package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
	"conversa/internal/domain/repositories"
)

// StructureRepository stores the tree in a single document keyed "estrutura"
type StructureRepository struct {
	coll   *mongodrv.Collection
	logger *slog.Logger
}

// NewStructureRepository creates a new StructureRepository
func NewStructureRepository(config *RepositoryConfig) repositories.StructureRepository {
	return &StructureRepository{
		coll:   config.Database.Collection(config.Collections.Structure),
		logger: config.Logger,
	}
}

type structureDocument struct {
	ID        string    `bson:"_id"`
	Arvore    bson.Raw  `bson:"arvore,omitempty"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Load returns the stored tree. A document without an arvore field loads
// as an empty tree.
func (r *StructureRepository) Load(ctx context.Context) (models.StructureTree, bool, error) {
	var doc structureDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": models.StructureDocumentID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, domain.NewStorageError("load structure", err)
	}

	if len(doc.Arvore) == 0 {
		return models.EmptyStructure(), true, nil
	}

	tree, err := rawToTree(doc.Arvore)
	if err != nil {
		return nil, false, domain.NewStorageError("decode structure", err)
	}
	return tree, true, nil
}

// Save replaces the structure document, creating it on first save
func (r *StructureRepository) Save(ctx context.Context, tree models.StructureTree) error {
	if tree == nil {
		tree = models.EmptyStructure()
	}

	doc := bson.M{
		"_id":        models.StructureDocumentID,
		"arvore":     map[string]interface{}(tree),
		"updated_at": time.Now().UTC(),
	}
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": models.StructureDocumentID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return domain.NewStorageError("save structure", err)
	}
	return nil
}

// rawToTree converts a BSON subdocument to plain JSON types. Decoding into
// interface{} directly would yield primitive.D and primitive.A values that do
// not serialize back to the client's JSON shape.
func rawToTree(raw bson.Raw) (models.StructureTree, error) {
	ext, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("bson to json: %w", err)
	}

	tree := models.EmptyStructure()
	if err := json.Unmarshal(ext, &tree); err != nil {
		return nil, fmt.Errorf("json to tree: %w", err)
	}
	return tree, nil
}
