package menu

import (
	"context"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/xtanyr/lunch/internal/calendar"
	"github.com/xtanyr/lunch/internal/core"
	"github.com/xtanyr/lunch/internal/location"
)

type Service struct {
	repo  Repository
	clock calendar.Clock
	log   logrus.FieldLogger
	locks core.KeyedMutex
}

func NewService(
	repo Repository,
	clock calendar.Clock,
	log logrus.FieldLogger,
) *Service {
	return &Service{repo: repo, clock: clock, log: log}
}

// ReplaceResult reports what a catalog replacement changed.
type ReplaceResult struct {
	AddedIDs   []string
	RemovedIDs []string
	// SyncError is set when the catalog was written but the menu config
	// could not be brought in line with it.
	SyncError error
}

// --------------------------------------------------
// RESOLUTION
// --------------------------------------------------

// ResolveCatalog loads the city's catalog. A city without one receives a
// copy of the shared default, or the built-in seed when there is no default
// either. Whatever is resolved is persisted for the city.
func (s *Service) ResolveCatalog(ctx context.Context, city string) (Catalog, Source, error) {
	key := location.CityKey(city)

	catalog, found, err := s.repo.GetCatalog(ctx, key)
	if err != nil {
		return Catalog{}, "", core.Storage("get catalog", err)
	}
	if found {
		return catalog, Loaded, nil
	}

	source := FellBackToDefault
	catalog, found, err = s.repo.GetCatalog(ctx, SharedKey)
	if err != nil {
		return Catalog{}, "", core.Storage("get default catalog", err)
	}
	if !found {
		source = FellBackToSeed
		catalog = seedCatalog()
		if err := s.repo.SaveCatalog(ctx, SharedKey, catalog); err != nil {
			return Catalog{}, "", core.Storage("save default catalog", err)
		}
	}
	if err := s.repo.SaveCatalog(ctx, key, catalog); err != nil {
		return Catalog{}, "", core.Storage("save catalog", err)
	}

	s.log.WithFields(logrus.Fields{"city": key, "source": source}).Info("catalog initialised")
	return catalog, source, nil
}

// ResolveConfig follows the same chain as ResolveCatalog for the menu config.
func (s *Service) ResolveConfig(ctx context.Context, city string) (Config, Source, error) {
	key := location.CityKey(city)

	cfg, found, err := s.repo.GetConfig(ctx, key)
	if err != nil {
		return Config{}, "", core.Storage("get menu config", err)
	}
	if found {
		return cfg, Loaded, nil
	}

	source := FellBackToDefault
	cfg, found, err = s.repo.GetConfig(ctx, SharedKey)
	if err != nil {
		return Config{}, "", core.Storage("get default menu config", err)
	}
	if !found {
		source = FellBackToSeed
		cfg = seedConfig()
		cfg.LastUpdated = s.clock.Now().UTC()
		if err := s.repo.SaveConfig(ctx, SharedKey, cfg); err != nil {
			return Config{}, "", core.Storage("save default menu config", err)
		}
	}
	if err := s.repo.SaveConfig(ctx, key, cfg); err != nil {
		return Config{}, "", core.Storage("save menu config", err)
	}

	s.log.WithFields(logrus.Fields{"city": key, "source": source}).Info("menu config initialised")
	return cfg, source, nil
}

// --------------------------------------------------
// CATALOG
// --------------------------------------------------

func (s *Service) Catalog(ctx context.Context, city string) (Catalog, error) {
	catalog, _, err := s.ResolveCatalog(ctx, city)
	return catalog, err
}

func (s *Service) Items(ctx context.Context, city string) ([]Dish, error) {
	catalog, err := s.Catalog(ctx, city)
	if err != nil {
		return nil, err
	}
	return catalog.Items, nil
}

func (s *Service) Sides(ctx context.Context, city string) ([]SideDish, error) {
	catalog, err := s.Catalog(ctx, city)
	if err != nil {
		return nil, err
	}
	return catalog.Sides, nil
}

// ReplaceItems swaps the city's dish list, keeping its sides, and then
// brings the menu config in line: newly added active dishes join their
// category and removed dishes leave every category. The config update is
// best-effort; its failure is logged and returned in ReplaceResult without
// undoing the catalog write.
func (s *Service) ReplaceItems(
	ctx context.Context,
	city string,
	items []Dish,
) (ReplaceResult, error) {

	if items == nil {
		return ReplaceResult{}, core.Invalid(core.CodeInvalidItems, "Items must be an array")
	}
	if err := ValidateItems(items); err != nil {
		return ReplaceResult{}, err
	}

	key := location.CityKey(city)
	unlock := s.locks.Lock(key)
	defer unlock()

	prev, _, err := s.ResolveCatalog(ctx, city)
	if err != nil {
		return ReplaceResult{}, err
	}

	added, removed := diffIDs(prev.Items, items)

	next := Catalog{Items: items, Sides: prev.Sides}
	if err := s.repo.SaveCatalog(ctx, key, next); err != nil {
		return ReplaceResult{}, core.Storage("save catalog", err)
	}

	result := ReplaceResult{AddedIDs: added, RemovedIDs: removed}
	if err := s.syncConfig(ctx, city, items, added, removed); err != nil {
		s.log.WithError(err).WithField("city", key).Warn("menu config auto-sync failed")
		result.SyncError = err
	}
	return result, nil
}

func (s *Service) syncConfig(
	ctx context.Context,
	city string,
	items []Dish,
	added, removed []string,
) error {

	cfg, _, err := s.ResolveConfig(ctx, city)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	byID := make(map[string]Dish, len(items))
	for _, d := range items {
		byID[d.ID] = d
	}

	for _, id := range added {
		d := byID[id]
		if !d.Active() {
			continue
		}
		for i := range cfg.Categories {
			cat := &cfg.Categories[i]
			if cat.ID == d.Category && !slices.Contains(cat.DishIDs, id) {
				cat.DishIDs = append(cat.DishIDs, id)
			}
		}
	}

	if len(removed) > 0 {
		for i := range cfg.Categories {
			cat := &cfg.Categories[i]
			cat.DishIDs = slices.DeleteFunc(cat.DishIDs, func(id string) bool {
				return slices.Contains(removed, id)
			})
		}
	}

	cfg.LastUpdated = s.clock.Now().UTC()
	if err := s.repo.SaveConfig(ctx, location.CityKey(city), cfg); err != nil {
		return core.Storage("save menu config", err)
	}
	return nil
}

func diffIDs(prev, next []Dish) (added, removed []string) {
	prevIDs := make(map[string]struct{}, len(prev))
	for _, d := range prev {
		prevIDs[d.ID] = struct{}{}
	}
	nextIDs := make(map[string]struct{}, len(next))
	for _, d := range next {
		nextIDs[d.ID] = struct{}{}
		if _, ok := prevIDs[d.ID]; !ok {
			added = append(added, d.ID)
		}
	}
	for _, d := range prev {
		if _, ok := nextIDs[d.ID]; !ok {
			removed = append(removed, d.ID)
		}
	}
	return added, removed
}

// --------------------------------------------------
// MENU CONFIG
// --------------------------------------------------

func (s *Service) Config(ctx context.Context, city string) (Config, error) {
	cfg, _, err := s.ResolveConfig(ctx, city)
	return cfg, err
}

// SetConfig replaces the city's menu config and stamps LastUpdated.
func (s *Service) SetConfig(ctx context.Context, city string, cfg Config) (Config, error) {
	if cfg.Categories == nil {
		return Config{}, core.Invalid(core.CodeInvalidConfig, "Config must have categories array")
	}

	key := location.CityKey(city)
	unlock := s.locks.Lock(key)
	defer unlock()

	cfg = cfg.Clone()
	cfg.LastUpdated = s.clock.Now().UTC()
	if err := s.repo.SaveConfig(ctx, key, cfg); err != nil {
		return Config{}, core.Storage("save menu config", err)
	}
	return cfg, nil
}

// VisibleMenu lists, per configured category, the dishes employees can pick:
// configured ids that exist in the catalog and are active, in configured
// order.
func (s *Service) VisibleMenu(ctx context.Context, city string) ([]VisibleCategory, error) {
	catalog, err := s.Catalog(ctx, city)
	if err != nil {
		return nil, err
	}
	cfg, err := s.Config(ctx, city)
	if err != nil {
		return nil, err
	}

	dishes := catalog.DishIndex()
	out := make([]VisibleCategory, 0, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		block := VisibleCategory{ID: cat.ID, Name: cat.Name, Dishes: []Dish{}}
		for _, id := range cat.DishIDs {
			if d, ok := dishes[id]; ok && d.Active() {
				block.Dishes = append(block.Dishes, d)
			}
		}
		out = append(out, block)
	}
	return out, nil
}
