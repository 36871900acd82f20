package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	model := &BookingModel{
		UserID:  b.UserID,
		SpaceID: b.SpaceID,
		StartAt: b.StartAt,
		EndAt:   b.EndAt,
		Status:  string(b.Status),
		Purpose: b.Purpose,
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if isForeignKeyViolation(err) {
			return &domain.Error{Kind: domain.ErrNotFound, Msg: "user or space not found"}
		}
		return fmt.Errorf("create booking: %w", err)
	}
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	var model BookingModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return model.toDomain(), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) error {
	result := conn(ctx, r.db).Model(&BookingModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Search(ctx context.Context, filter ports.BookingFilter) ([]*domain.Booking, int64, error) {
	query := conn(ctx, r.db).Model(&BookingModel{})

	if filter.SpaceID != 0 {
		query = query.Where("space_id = ?", filter.SpaceID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if !filter.From.IsZero() {
		query = query.Where("start_at >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query = query.Where("start_at <= ?", filter.To.UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit)
	}

	var models []BookingModel
	if err := query.Order("start_at ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("search bookings: %w", err)
	}

	bookings := make([]*domain.Booking, len(models))
	for i := range models {
		bookings[i] = models[i].toDomain()
	}
	return bookings, total, nil
}
