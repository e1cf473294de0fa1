package store

import (
	"context"
	"slices"
	"sync"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

// MemoryStore keeps snapshots in a map. Snapshots are cloned on the way in
// and out, so callers never share records with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	families map[string]family.Family
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{families: make(map[string]family.Family)}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (family.Family, error) {
	if err := ferrors.ValidateFamilyID(id); err != nil {
		return family.Family{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.families[id]
	if !ok {
		return family.Family{}, notFound(id)
	}
	return f.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, f family.Family) error {
	if err := ferrors.ValidateFamilyID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.families[id] = f.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.families, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.families))
	for id := range s.families {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
