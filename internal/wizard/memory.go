package wizard

import (
	"context"
	"sort"
	"sync"

	"hogwarts.org/internal/artifact"
	"hogwarts.org/internal/system"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store. It shares the artifact store so that
// ownership reads and writes land on the same records the artifact service
// sees.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	names     map[int64]string
	artifacts *artifact.MemoryStore
}

func NewMemoryStore(artifacts *artifact.MemoryStore) *MemoryStore {
	return &MemoryStore{nextID: 1, names: make(map[int64]string), artifacts: artifacts}
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]Wizard, error) {
	s.mu.RLock()
	ids := make([]int64, 0, len(s.names))
	for id := range s.names {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	wizards := make([]Wizard, 0, len(ids))
	for _, id := range ids {
		w, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		wizards = append(wizards, w)
	}
	return wizards, nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (Wizard, error) {
	s.mu.RLock()
	name, ok := s.names[id]
	s.mu.RUnlock()
	if !ok {
		return Wizard{}, system.NotFound("wizard", id)
	}
	owned, err := s.artifacts.FindByOwner(ctx, id)
	if err != nil {
		return Wizard{}, err
	}
	return Wizard{ID: id, Name: name, Artifacts: owned}, nil
}

func (s *MemoryStore) Create(ctx context.Context, w *Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.nextID
	s.nextID++
	s.names[w.ID] = w.Name
	return nil
}

func (s *MemoryStore) Save(ctx context.Context, w Wizard) error {
	s.mu.Lock()
	if _, ok := s.names[w.ID]; !ok {
		s.mu.Unlock()
		return system.NotFound("wizard", w.ID)
	}
	s.names[w.ID] = w.Name
	s.mu.Unlock()

	for _, a := range w.Artifacts {
		owner := w.ID
		if err := s.artifacts.SetOwner(ctx, a.ID, &owner); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	if _, ok := s.names[id]; !ok {
		s.mu.Unlock()
		return system.NotFound("wizard", id)
	}
	delete(s.names, id)
	s.mu.Unlock()

	owned, err := s.artifacts.FindByOwner(ctx, id)
	if err != nil {
		return err
	}
	for _, a := range owned {
		if err := s.artifacts.SetOwner(ctx, a.ID, nil); err != nil {
			return err
		}
	}
	return nil
}
