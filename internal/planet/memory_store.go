package planet

import (
	"context"
	"sync"
	"time"

	"galaxy-server/internal/shared/errors"
)

// MemoryStore keeps planets in insertion order in process memory. The server
// uses it when no database is configured.
type MemoryStore struct {
	mutex   sync.Mutex
	planets []Planet
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) index(name string) int {
	for i, p := range s.planets {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) List(context.Context) ([]Planet, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]Planet(nil), s.planets...), nil
}

func (s *MemoryStore) GetByName(_ context.Context, name string) (*Planet, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if i := s.index(name); i >= 0 {
		p := s.planets[i]
		return &p, nil
	}
	return nil, errors.NotFoundf("planet %q not found", name)
}

func (s *MemoryStore) Create(_ context.Context, p *Planet) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.index(p.Name) >= 0 {
		return errors.Conflictf("planet %q already exists", p.Name)
	}
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.planets = append(s.planets, *p)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, originalName string, p *Planet) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	i := s.index(originalName)
	if i < 0 {
		return errors.NotFoundf("planet %q not found", originalName)
	}
	if j := s.index(p.Name); j >= 0 && j != i {
		return errors.Conflictf("planet %q already exists", p.Name)
	}
	p.CreatedAt = s.planets[i].CreatedAt
	p.UpdatedAt = s.now()
	s.planets[i] = *p
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	i := s.index(name)
	if i < 0 {
		return errors.NotFoundf("planet %q not found", name)
	}
	s.planets = append(s.planets[:i], s.planets[i+1:]...)
	return nil
}

func (s *MemoryStore) DeleteAll(context.Context) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	n := int64(len(s.planets))
	s.planets = nil
	return n, nil
}

func (s *MemoryStore) ReplaceAll(_ context.Context, planets []Planet) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	now := s.now()
	seen := make(map[string]struct{}, len(planets))
	for i := range planets {
		if _, dup := seen[planets[i].Name]; dup {
			return errors.Conflictf("planet %q already exists", planets[i].Name)
		}
		seen[planets[i].Name] = struct{}{}
		planets[i].CreatedAt = now
		planets[i].UpdatedAt = now
	}
	s.planets = append([]Planet(nil), planets...)
	return nil
}

func (s *MemoryStore) SetEditing(_ context.Context, name string, editing bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	i := s.index(name)
	if i < 0 {
		return errors.NotFoundf("planet %q not found", name)
	}
	s.planets[i].Editing = editing
	s.planets[i].UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) SetAllEditing(_ context.Context, editing bool) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i := range s.planets {
		s.planets[i].Editing = editing
	}
	return int64(len(s.planets)), nil
}
