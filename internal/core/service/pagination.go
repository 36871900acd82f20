package service

import (
	"math"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	// maxPage keeps (page-1)*limit well inside int32 so the OFFSET never overflows.
	maxPage = math.MaxInt32 / maxPageLimit
)

// normalizePage applies the 1-based page default, clamps page to maxPage and
// limit to (0, maxPageLimit].
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func newPage[T any](items []T, total int64, page, limit int) *ports.Page[T] {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	if items == nil {
		items = []T{}
	}
	return &ports.Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.ActivityEvent) {}
