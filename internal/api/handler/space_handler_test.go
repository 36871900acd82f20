package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

func TestSpaceHandler_ListActive_EmptyIsArray(t *testing.T) {
	handler := NewSpaceHandler(&stubSpaceService{
		listActiveFn: func(context.Context) ([]*domain.Space, error) { return nil, nil },
	})

	c, rec := newTestContext(http.MethodGet, "/api/spaces", "")
	if err := handler.ListActive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected [], got %q", rec.Body.String())
	}
}

func TestSpaceHandler_Create(t *testing.T) {
	handler := NewSpaceHandler(&stubSpaceService{
		createFn: func(_ context.Context, input ports.SpaceInput) (*domain.Space, error) {
			if input.Name != "Orion Lab" || input.Capacity != 12 || !input.Active {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Space{ID: 1, Name: input.Name, Location: input.Location, Capacity: input.Capacity, Features: input.Features, Active: input.Active}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/api/spaces",
		`{"name":"Orion Lab","location":"Building A","capacity":12,"features":["projector"],"active":true}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.Space
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 1 || len(resp.Features) != 1 {
		t.Fatalf("unexpected space: %+v", resp)
	}
}

func TestSpaceHandler_Create_RejectsZeroCapacity(t *testing.T) {
	handler := NewSpaceHandler(&stubSpaceService{})

	c, _ := newTestContext(http.MethodPost, "/api/spaces", `{"name":"Tiny","location":"B","capacity":0}`)
	err := handler.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSpaceHandler_Update_InvalidID(t *testing.T) {
	handler := NewSpaceHandler(&stubSpaceService{})

	c, _ := newTestContext(http.MethodPut, "/api/spaces/abc", `{"name":"X","location":"Y","capacity":1}`)
	withParam(c, "id", "abc")

	if err := handler.Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSpaceHandler_Update_Deactivates(t *testing.T) {
	handler := NewSpaceHandler(&stubSpaceService{
		updateFn: func(_ context.Context, id uint, input ports.SpaceInput) (*domain.Space, error) {
			if id != 5 || input.Active {
				t.Fatalf("unexpected update: %d %+v", id, input)
			}
			return &domain.Space{ID: id, Name: input.Name}, nil
		},
	})

	c, rec := newTestContext(http.MethodPut, "/api/spaces/5", `{"name":"Orion Lab","location":"A","capacity":12,"active":false}`)
	withParam(c, "id", "5")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSpaceHandler_Delete(t *testing.T) {
	deleted := uint(0)
	handler := NewSpaceHandler(&stubSpaceService{
		deleteFn: func(_ context.Context, id uint) error {
			deleted = id
			return nil
		},
	})

	c, rec := newTestContext(http.MethodDelete, "/api/spaces/8", "")
	withParam(c, "id", "8")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != 8 {
		t.Fatalf("unexpected result: code=%d deleted=%d", rec.Code, deleted)
	}
}

func TestSpaceHandler_Get_NotFound(t *testing.T) {
	handler := NewSpaceHandler(&stubSpaceService{
		getFn: func(context.Context, uint) (*domain.Space, error) { return nil, domain.ErrSpaceNotFound },
	})

	c, _ := newTestContext(http.MethodGet, "/api/spaces/99", "")
	withParam(c, "id", "99")

	if err := handler.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
