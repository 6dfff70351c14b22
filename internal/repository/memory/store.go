// Package memory keeps the structure tree and messages in process memory.
// It backs STORE_BACKEND=memory for local runs and serves as the test double
// for services and handlers.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"conversa/internal/domain"
	"conversa/internal/domain/models"
)

// Store implements StructureRepository, MessageRepository and HealthChecker
type Store struct {
	mu        sync.RWMutex
	structure []byte // JSON so callers never share maps with the store
	messages  map[string][]models.Message

	// FailWith makes every operation return this error, to simulate outages
	FailWith error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{messages: make(map[string][]models.Message)}
}

// Load returns the saved tree
func (s *Store) Load(ctx context.Context) (models.StructureTree, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailWith != nil {
		return nil, false, domain.NewStorageError("load structure", s.FailWith)
	}
	if s.structure == nil {
		return nil, false, nil
	}

	var tree models.StructureTree
	if err := json.Unmarshal(s.structure, &tree); err != nil {
		return nil, false, domain.NewStorageError("decode structure", err)
	}
	return tree, true, nil
}

// Save replaces the saved tree
func (s *Store) Save(ctx context.Context, tree models.StructureTree) error {
	raw, err := json.Marshal(tree)
	if err != nil {
		return domain.NewStorageError("encode structure", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return domain.NewStorageError("save structure", s.FailWith)
	}
	s.structure = raw
	return nil
}

// List returns every message of the path ordered by timestamp
func (s *Store) List(ctx context.Context, path models.ConversationPath) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailWith != nil {
		return nil, domain.NewStorageError("list messages", s.FailWith)
	}
	return s.sorted(path.Key()), nil
}

// ListRecent returns the latest limit messages ordered by timestamp
func (s *Store) ListRecent(ctx context.Context, path models.ConversationPath, limit int) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailWith != nil {
		return nil, domain.NewStorageError("list recent messages", s.FailWith)
	}
	all := s.sorted(path.Key())
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// Append writes all messages under one lock
func (s *Store) Append(ctx context.Context, path models.ConversationPath, messages []models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return domain.NewStorageError("append messages", s.FailWith)
	}
	key := path.Key()
	s.messages[key] = append(s.messages[key], messages...)
	return nil
}

// Count returns how many messages the path holds
func (s *Store) Count(path models.ConversationPath) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages[path.Key()])
}

// Ping fails only when FailWith is set
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.FailWith
}

// sorted copies the path's messages in ascending timestamp order.
// Must be called with s.mu held.
func (s *Store) sorted(key string) []models.Message {
	out := make([]models.Message, len(s.messages[key]))
	copy(out, s.messages[key])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
