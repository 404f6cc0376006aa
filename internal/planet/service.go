package planet

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"galaxy-server/internal/events"
	"galaxy-server/internal/procgen"
	"galaxy-server/internal/shared/cache"
	"galaxy-server/internal/shared/errors"
)

// CacheKey holds the JSON snapshot of the planet list.
const CacheKey = "galaxy-cache"

// Store is the persistence the service needs; *Repository implements it.
type Store interface {
	List(ctx context.Context) ([]Planet, error)
	GetByName(ctx context.Context, name string) (*Planet, error)
	Create(ctx context.Context, p *Planet) error
	Update(ctx context.Context, originalName string, p *Planet) error
	Delete(ctx context.Context, name string) error
	DeleteAll(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, planets []Planet) error
	SetEditing(ctx context.Context, name string, editing bool) error
	SetAllEditing(ctx context.Context, editing bool) (int64, error)
}

type Service struct {
	store       Store
	cache       cache.Cache
	cacheTTL    time.Duration
	bus         *events.Bus
	logger      *slog.Logger
	now         func() time.Time
	unsubscribe func()

	// generation is bumped on every invalidation; a snapshot read under an
	// older generation is not cached.
	generation atomic.Uint64
}

func NewService(store Store, c cache.Cache, cacheTTL time.Duration, bus *events.Bus, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service", "cache_ttl", cacheTTL)

	s := &Service{
		store:    store,
		cache:    c,
		cacheTTL: cacheTTL,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
	}
	s.unsubscribe = bus.SubscribeAll(s.invalidateCache)
	return s
}

// Close detaches the service from the event bus.
func (s *Service) Close() {
	s.unsubscribe()
}

func (s *Service) invalidateCache(ctx context.Context, event events.Event) {
	s.generation.Add(1)
	if err := s.cache.Delete(ctx, CacheKey); err != nil {
		s.logger.Warn("Failed to invalidate planet cache", "event", event.Name, "error", err)
	}
}

// List returns every planet, reading through the cache.
func (s *Service) List(ctx context.Context) ([]Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "list")

	if data, ok, err := s.cache.Get(ctx, CacheKey); err != nil {
		logger.Warn("Planet cache read failed, falling back to store", "error", err)
	} else if ok {
		var planets []Planet
		if err := json.Unmarshal(data, &planets); err == nil {
			logger.Debug("Planet list served from cache", "count", len(planets))
			return planets, nil
		}
		logger.Warn("Discarding unreadable planet cache entry")
	}

	generation := s.generation.Load()
	planets, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.WrapInternal("failed to list planets", err)
	}
	if planets == nil {
		planets = []Planet{}
	}

	s.storeSnapshot(ctx, logger, generation, planets)
	return planets, nil
}

func (s *Service) storeSnapshot(ctx context.Context, logger *slog.Logger, generation uint64, planets []Planet) {
	if s.generation.Load() != generation {
		logger.Debug("Planets changed during read, skipping cache write")
		return
	}

	data, err := json.Marshal(planets)
	if err != nil {
		logger.Warn("Failed to encode planet cache entry", "error", err)
		return
	}

	err = s.cache.Set(ctx, CacheKey, data, s.cacheTTL)
	switch {
	case stderrors.Is(err, cache.ErrTooLarge):
		logger.Warn("Planet list too large to cache", "size_bytes", len(data))
	case err != nil:
		logger.Warn("Failed to write planet cache", "error", err)
	case s.generation.Load() != generation:
		// an invalidation landed between the check and the write
		if err := s.cache.Delete(ctx, CacheKey); err != nil {
			logger.Warn("Failed to drop stale planet cache entry", "error", err)
		}
	}
}

func (s *Service) Get(ctx context.Context, name string) (*Planet, error) {
	p, err := s.store.GetByName(ctx, name)
	if err != nil {
		return nil, wrapStoreError("failed to get planet", err)
	}
	return p, nil
}

// Add stores a new planet. With edit set it starts in edit mode so the
// client can place it before confirming.
func (s *Service) Add(ctx context.Context, p Planet, edit bool) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "add", "planet", p.Name)

	p.normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.Editing = edit
	p.StarClass = StarClassFor(p.Name)

	if err := s.store.Create(ctx, &p); err != nil {
		return nil, wrapStoreError("failed to add planet", err)
	}

	logger.Info("Planet added", "faction", p.Faction, "editing", edit)
	s.bus.Publish(ctx, events.Event{Name: events.PlanetAdded, Planet: p.Name})
	return &p, nil
}

// Update replaces the planet called name. When no planet has that name it
// falls back to the one with the same faction, type and position, which
// covers clients that send the new name in place of the old one.
func (s *Service) Update(ctx context.Context, name string, p Planet) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "update", "planet", name)

	p.normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	current, err := s.findForUpdate(ctx, name, p)
	if err != nil {
		return nil, err
	}

	if current.Name != p.Name {
		p.StarClass = StarClassFor(p.Name)
	} else {
		p.StarClass = current.StarClass
	}

	if err := s.store.Update(ctx, current.Name, &p); err != nil {
		return nil, wrapStoreError("failed to update planet", err)
	}

	logger.Info("Planet updated", "stored_name", current.Name, "new_name", p.Name)
	s.bus.Publish(ctx, events.Event{Name: events.PlanetUpdated, Planet: p.Name})
	return &p, nil
}

func (s *Service) findForUpdate(ctx context.Context, name string, p Planet) (*Planet, error) {
	current, err := s.store.GetByName(ctx, name)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, errors.ErrorTypeNotFound) {
		return nil, wrapStoreError("failed to get planet", err)
	}

	planets, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.WrapInternal("failed to list planets", err)
	}
	for i := range planets {
		if planets[i].matches(p) {
			return &planets[i], nil
		}
	}
	return nil, errors.NotFoundf("planet %q not found", name)
}

func (s *Service) Remove(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return wrapStoreError("failed to remove planet", err)
	}

	s.logger.Info("Planet removed", "planet", name)
	s.bus.Publish(ctx, events.Event{Name: events.PlanetRemoved, Planet: name})
	return nil
}

// Clear removes every planet and reports how many were deleted.
func (s *Service) Clear(ctx context.Context) (int64, error) {
	count, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, errors.WrapInternal("failed to clear planets", err)
	}

	s.logger.Info("Galaxy cleared", "removed", count)
	s.bus.Publish(ctx, events.Event{Name: events.GalaxyCleared})
	return count, nil
}

// Editing returns the first planet in edit mode, or nil when none is.
func (s *Service) Editing(ctx context.Context) (*Planet, error) {
	planets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range planets {
		if planets[i].Editing {
			return &planets[i], nil
		}
	}
	return nil, nil
}

// ConfirmPosition fixes the planet at pos and leaves edit mode.
func (s *Service) ConfirmPosition(ctx context.Context, name string, pos procgen.Vec3) (*Planet, error) {
	if !pos.IsFinite() {
		return nil, errors.Validation("position must be finite")
	}

	p, err := s.store.GetByName(ctx, name)
	if err != nil {
		return nil, wrapStoreError("failed to get planet", err)
	}

	p.Position = pos
	p.Editing = false
	if err := s.store.Update(ctx, name, p); err != nil {
		return nil, wrapStoreError("failed to confirm planet position", err)
	}

	s.logger.Info("Planet position confirmed", "planet", name, "x", pos.X, "y", pos.Y, "z", pos.Z)
	s.bus.Publish(ctx, events.Event{Name: events.PlanetUpdated, Planet: name})
	return p, nil
}

// EditAll puts every planet into edit mode.
func (s *Service) EditAll(ctx context.Context) (int64, error) {
	count, err := s.store.SetAllEditing(ctx, true)
	if err != nil {
		return 0, errors.WrapInternal("failed to enter edit mode", err)
	}

	s.bus.Publish(ctx, events.Event{Name: events.PlanetUpdated})
	return count, nil
}

func (s *Service) Export(ctx context.Context) (*ExportDocument, error) {
	planets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ExportDocument{
		Planets:    planets,
		ExportDate: s.now().UTC(),
		Version:    ExportVersion,
	}, nil
}

// Import validates doc and replaces the whole planet set with it.
func (s *Service) Import(ctx context.Context, doc ExportDocument) (int, error) {
	logger := s.logger.With("component", "planet_service", "operation", "import")

	if !strings.HasPrefix(doc.Version, "1.") {
		return 0, errors.Validationf("unsupported export version %q", doc.Version)
	}

	planets := make([]Planet, len(doc.Planets))
	seen := make(map[string]struct{}, len(doc.Planets))
	for i, p := range doc.Planets {
		p.normalize()
		if err := p.Validate(); err != nil {
			return 0, errors.WrapValidation(fmt.Sprintf("invalid planet at index %d", i), err)
		}
		if _, dup := seen[p.Name]; dup {
			return 0, errors.Validationf("duplicate planet %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		p.StarClass = StarClassFor(p.Name)
		planets[i] = p
	}

	if err := s.store.ReplaceAll(ctx, planets); err != nil {
		return 0, wrapStoreError("failed to import planets", err)
	}

	logger.Info("Planets imported", "count", len(planets), "export_date", doc.ExportDate)
	s.bus.Publish(ctx, events.Event{Name: events.GalaxyCleared})
	for _, p := range planets {
		s.bus.Publish(ctx, events.Event{Name: events.PlanetAdded, Planet: p.Name})
	}
	return len(planets), nil
}

// wrapStoreError keeps typed errors from the store and marks the rest internal.
func wrapStoreError(message string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.WrapInternal(message, err)
}
