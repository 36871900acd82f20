package service

import (
	"context"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityService reads the activity log. Writes go through a ports.ActivityRecorder.
type ActivityService struct {
	repo ports.ActivityRepository
}

func NewActivityService(repo ports.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

func (s *ActivityService) List(ctx context.Context, entityType string, entityID uint, limit int) ([]*domain.ActivityEvent, error) {
	switch entityType {
	case domain.EntityBooking, domain.EntityTicket:
	default:
		return nil, domain.Validationf("entity must be %q or %q", domain.EntityBooking, domain.EntityTicket)
	}
	if entityID == 0 {
		return nil, domain.Validationf("id is required")
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	events, err := s.repo.ListByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.ActivityEvent{}
	}
	return events, nil
}
