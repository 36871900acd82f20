package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

func TestActivityHandler_List(t *testing.T) {
	handler := NewActivityHandler(&stubActivityService{
		listFn: func(_ context.Context, entityType string, entityID uint, limit int) ([]*domain.ActivityEvent, error) {
			if entityType != domain.EntityBooking || entityID != 12 || limit != 5 {
				t.Fatalf("unexpected args: %s %d %d", entityType, entityID, limit)
			}
			return []*domain.ActivityEvent{{EntityType: entityType, EntityID: entityID, Action: domain.ActionCreated}}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/api/activity?entity=booking&id=12&limit=5", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []domain.ActivityEvent
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].Action != domain.ActionCreated {
		t.Fatalf("unexpected events: %+v", resp)
	}
}

func TestActivityHandler_List_BadID(t *testing.T) {
	handler := NewActivityHandler(&stubActivityService{})

	c, _ := newTestContext(http.MethodGet, "/api/activity?entity=ticket&id=abc", "")
	if err := handler.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPage(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/dashboard", "")
	if err := Page(PageDashboard)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["page"] != "dashboard" {
		t.Fatalf("unexpected page: %+v", resp)
	}
}
