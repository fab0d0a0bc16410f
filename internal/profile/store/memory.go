package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"jyotish/internal/profile/models"
	"jyotish/pkg/platform/sentinel"
)

// InMemory is a thread-safe profile store for tests and dev mode.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]models.Profile
}

func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[uuid.UUID]models.Profile)}
}

func (s *InMemory) Create(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; ok {
		return sentinel.ErrConflict
	}
	s.profiles[p.ID] = *p
	return nil
}

func (s *InMemory) Get(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := p
	return &cp, nil
}

// List returns profiles ordered by creation time, newest first.
func (s *InMemory) List(_ context.Context, limit int) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

func (s *InMemory) Health(context.Context) error { return nil }

func (s *InMemory) Close() error { return nil }
