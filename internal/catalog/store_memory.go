package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type MemStore struct {
	mu     sync.RWMutex
	m      map[int64]Product
	nextID int64
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[int64]Product)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.m), nil
}

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	return p, ok, nil
}

func (s *MemStore) Insert(ctx context.Context, candidate Product) (Product, error) {
	candidate.Name = strings.TrimSpace(candidate.Name)
	if err := validateProduct(candidate); err != nil {
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	candidate.ID = s.nextID
	s.m[candidate.ID] = candidate
	return candidate, nil
}

func (s *MemStore) Replace(ctx context.Context, id int64, candidate Product) (bool, error) {
	if candidate.ID != id {
		return false, ErrIDMismatch
	}

	candidate.Name = strings.TrimSpace(candidate.Name)
	if err := validateProduct(candidate); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[id]; !ok {
		return false, nil
	}

	s.m[id] = candidate
	return true, nil
}

func (s *MemStore) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[id]; !ok {
		return false, nil
	}

	delete(s.m, id)
	return true, nil
}
