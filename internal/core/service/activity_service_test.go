package service

import (
	"context"
	"errors"
	"testing"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

func TestActivityService_List(t *testing.T) {
	repo := &stubActivityRepo{}
	_ = repo.Insert(context.Background(), &domain.ActivityEvent{EntityType: domain.EntityBooking, EntityID: 1, Action: domain.ActionCreated})
	_ = repo.Insert(context.Background(), &domain.ActivityEvent{EntityType: domain.EntityTicket, EntityID: 1, Action: domain.ActionCreated})
	svc := NewActivityService(repo)

	events, err := svc.List(context.Background(), domain.EntityBooking, 1, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if repo.lastLimit != defaultActivityLimit {
		t.Fatalf("expected default limit %d, got %d", defaultActivityLimit, repo.lastLimit)
	}

	_, _ = svc.List(context.Background(), domain.EntityTicket, 1, 10_000)
	if repo.lastLimit != maxActivityLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxActivityLimit, repo.lastLimit)
	}

	empty, _ := svc.List(context.Background(), domain.EntityTicket, 42, 5)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestActivityService_List_Validation(t *testing.T) {
	svc := NewActivityService(&stubActivityRepo{})

	if _, err := svc.List(context.Background(), "space", 1, 0); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown entity, got %v", err)
	}
	if _, err := svc.List(context.Background(), domain.EntityBooking, 0, 0); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing id, got %v", err)
	}
}
