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

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.MaintenanceTicket) error {
	model := &TicketModel{
		SpaceID:     t.SpaceID,
		ReporterID:  t.ReporterID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if isForeignKeyViolation(err) {
			return &domain.Error{Kind: domain.ErrNotFound, Msg: "reporter or space not found"}
		}
		return fmt.Errorf("create ticket: %w", err)
	}
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	t.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (*domain.MaintenanceTicket, error) {
	var model TicketModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return model.toDomain(), nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id uint, status domain.TicketStatus) error {
	result := conn(ctx, r.db).Model(&TicketModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("update ticket status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) Search(ctx context.Context, filter ports.TicketFilter) ([]*domain.MaintenanceTicket, int64, error) {
	query := conn(ctx, r.db).Model(&TicketModel{})

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", string(filter.Priority))
	}
	if filter.SpaceID != 0 {
		query = query.Where("space_id = ?", filter.SpaceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset((filter.Page - 1) * filter.Limit)
	}

	var models []TicketModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("search tickets: %w", err)
	}

	tickets := make([]*domain.MaintenanceTicket, len(models))
	for i := range models {
		tickets[i] = models[i].toDomain()
	}
	return tickets, total, nil
}
