package sqldb

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *domain.Attachment) error {
	model := &AttachmentModel{
		TicketID:    a.TicketID,
		Filename:    a.Filename,
		StoragePath: a.StoragePath,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTicketNotFound
		}
		return fmt.Errorf("create attachment: %w", err)
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	return nil
}

func (r *AttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*domain.Attachment, error) {
	var models []AttachmentModel
	if err := conn(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	attachments := make([]*domain.Attachment, len(models))
	for i := range models {
		attachments[i] = models[i].toDomain()
	}
	return attachments, nil
}
