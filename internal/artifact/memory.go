package artifact

import (
	"context"
	"sort"
	"strings"
	"sync"

	"hogwarts.org/internal/system"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store for tests and single-node runs.
type MemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]Artifact
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{artifacts: make(map[string]Artifact)}
}

func (s *MemoryStore) FindAll(ctx context.Context, limit, offset int) ([]Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return page(s.sorted(), limit, offset), nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artifacts[id]
	if !ok {
		return Artifact{}, system.NotFound("artifact", id)
	}
	return a, nil
}

func (s *MemoryStore) FindByCriteria(ctx context.Context, c Criteria, limit, offset int) ([]Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []Artifact
	for _, a := range s.sorted() {
		if c.Name != "" && !containsFold(a.Name, c.Name) {
			continue
		}
		if c.Description != "" && !containsFold(a.Description, c.Description) {
			continue
		}
		matched = append(matched, a)
	}
	return page(matched, limit, offset), nil
}

func (s *MemoryStore) FindByOwner(ctx context.Context, ownerID int64) ([]Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var owned []Artifact
	for _, a := range s.sorted() {
		if a.OwnerID != nil && *a.OwnerID == ownerID {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

func (s *MemoryStore) Create(ctx context.Context, a *Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[a.ID] = *a
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, a Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.artifacts[a.ID]
	if !ok {
		return system.NotFound("artifact", a.ID)
	}
	a.OwnerID = prev.OwnerID
	s.artifacts[a.ID] = a
	return nil
}

func (s *MemoryStore) SetOwner(ctx context.Context, id string, ownerID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.artifacts[id]
	if !ok {
		return system.NotFound("artifact", id)
	}
	a.OwnerID = ownerID
	s.artifacts[id] = a
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.artifacts[id]; !ok {
		return system.NotFound("artifact", id)
	}
	delete(s.artifacts, id)
	return nil
}

func (s *MemoryStore) sorted() []Artifact {
	artifacts := make([]Artifact, 0, len(s.artifacts))
	for _, a := range s.artifacts {
		artifacts = append(artifacts, a)
	}
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].ID < artifacts[j].ID })
	return artifacts
}

func page(artifacts []Artifact, limit, offset int) []Artifact {
	if offset >= len(artifacts) {
		return nil
	}
	artifacts = artifacts[offset:]
	if limit > 0 && limit < len(artifacts) {
		artifacts = artifacts[:limit]
	}
	return artifacts
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
