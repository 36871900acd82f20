package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/zerotrace/smart-facility/internal/api/metrics"
	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// activeSpaceCache holds the last loaded list of active spaces. Every
// invalidation bumps gen; a load that started under an older gen is not stored.
type activeSpaceCache struct {
	mu     sync.Mutex
	gen    uint64
	valid  bool
	spaces []*domain.Space
}

func (c *activeSpaceCache) get() ([]*domain.Space, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return nil, c.gen, false
	}
	return cloneSpaces(c.spaces), c.gen, true
}

func (c *activeSpaceCache) store(gen uint64, spaces []*domain.Space) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.spaces = cloneSpaces(spaces)
	c.valid = true
}

func (c *activeSpaceCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.valid = false
	c.spaces = nil
}

func cloneSpaces(in []*domain.Space) []*domain.Space {
	out := make([]*domain.Space, len(in))
	for i, s := range in {
		clone := *s
		clone.Features = append([]string(nil), s.Features...)
		out[i] = &clone
	}
	return out
}

type SpaceService struct {
	spaces ports.SpaceRepository
	tx     ports.TxManager
	cache  activeSpaceCache
	logger zerolog.Logger
}

func NewSpaceService(spaces ports.SpaceRepository, tx ports.TxManager, logger zerolog.Logger) *SpaceService {
	return &SpaceService{spaces: spaces, tx: tx, logger: logger}
}

func spaceFromInput(input ports.SpaceInput) *domain.Space {
	return &domain.Space{
		Name:     strings.TrimSpace(input.Name),
		Location: strings.TrimSpace(input.Location),
		Capacity: input.Capacity,
		Features: domain.FeatureSet(input.Features),
		Active:   input.Active,
	}
}

// ensureNameFree returns ErrSpaceNameTaken when a space other than selfID uses name.
func (s *SpaceService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := s.spaces.FindByName(ctx, name)
	if errors.Is(err, domain.ErrSpaceNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return domain.ErrSpaceNameTaken
	}
	return nil
}

func (s *SpaceService) Create(ctx context.Context, input ports.SpaceInput) (*domain.Space, error) {
	space := spaceFromInput(input)
	if err := space.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureNameFree(ctx, space.Name, 0); err != nil {
			return err
		}
		return s.spaces.Create(ctx, space)
	})
	if err != nil {
		return nil, err
	}
	s.cache.invalidate()

	s.logger.Info().Uint("space_id", space.ID).Str("name", space.Name).Msg("space created")
	return space, nil
}

// Update overwrites every mutable field of the space.
func (s *SpaceService) Update(ctx context.Context, id uint, input ports.SpaceInput) (*domain.Space, error) {
	next := spaceFromInput(input)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Space
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.spaces.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ensureNameFree(ctx, next.Name, id); err != nil {
			return err
		}
		current.Name = next.Name
		current.Location = next.Location
		current.Capacity = next.Capacity
		current.Features = next.Features
		current.Active = next.Active
		if err := s.spaces.Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.invalidate()

	s.logger.Info().Uint("space_id", id).Bool("active", updated.Active).Msg("space updated")
	return updated, nil
}

// Delete removes a space that no booking or ticket references.
func (s *SpaceService) Delete(ctx context.Context, id uint) error {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.spaces.FindByID(ctx, id); err != nil {
			return err
		}
		inUse, err := s.spaces.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return domain.ErrSpaceInUse
		}
		return s.spaces.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.invalidate()

	s.logger.Info().Uint("space_id", id).Msg("space deleted")
	return nil
}

func (s *SpaceService) Get(ctx context.Context, id uint) (*domain.Space, error) {
	return s.spaces.FindByID(ctx, id)
}

// ListActive serves active spaces from the in-memory cache, loading them on a miss.
func (s *SpaceService) ListActive(ctx context.Context) ([]*domain.Space, error) {
	cached, gen, ok := s.cache.get()
	if ok {
		metrics.SpaceCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.SpaceCacheTotal.WithLabelValues("miss").Inc()

	spaces, err := s.spaces.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.store(gen, spaces)
	return spaces, nil
}

func (s *SpaceService) ListAll(ctx context.Context) ([]*domain.Space, error) {
	return s.spaces.ListAll(ctx)
}
