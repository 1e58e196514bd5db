package blackout

import (
	"context"
	"sync"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	ranges map[string]Range
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{ranges: make(map[string]Range)}
}

func (r *InMemoryRepository) Get(_ context.Context, cityKey string) (*Range, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rng, ok := r.ranges[cityKey]
	if !ok {
		return nil, nil
	}
	return &rng, nil
}

func (r *InMemoryRepository) Put(_ context.Context, cityKey string, rng *Range) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rng == nil {
		delete(r.ranges, cityKey)
		return nil
	}
	r.ranges[cityKey] = *rng
	return nil
}
