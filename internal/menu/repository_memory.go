package menu

import (
	"context"
	"sync"
)

type InMemoryRepository struct {
	mu       sync.RWMutex
	catalogs map[string]Catalog
	configs  map[string]Config
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		catalogs: make(map[string]Catalog),
		configs:  make(map[string]Config),
	}
}

func (r *InMemoryRepository) GetCatalog(_ context.Context, cityKey string) (Catalog, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.catalogs[cityKey]
	if !ok {
		return Catalog{}, false, nil
	}
	return cloneCatalog(c), true, nil
}

func (r *InMemoryRepository) SaveCatalog(_ context.Context, cityKey string, catalog Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalogs[cityKey] = cloneCatalog(catalog)
	return nil
}

func (r *InMemoryRepository) GetConfig(_ context.Context, cityKey string) (Config, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.configs[cityKey]
	if !ok {
		return Config{}, false, nil
	}
	return c.Clone(), true, nil
}

func (r *InMemoryRepository) SaveConfig(_ context.Context, cityKey string, cfg Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.configs[cityKey] = cfg.Clone()
	return nil
}

func cloneCatalog(c Catalog) Catalog {
	out := Catalog{
		Items: make([]Dish, len(c.Items)),
		Sides: append([]SideDish(nil), c.Sides...),
	}
	for i, d := range c.Items {
		d.AvailableSideIDs = append([]string(nil), d.AvailableSideIDs...)
		out.Items[i] = d
	}
	return out
}
