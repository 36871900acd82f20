package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

// SpaceRepository implements ports.SpaceRepository. Feature tags live in the
// space_features table and are replaced wholesale on update.
type SpaceRepository struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

func (r *SpaceRepository) Create(ctx context.Context, s *domain.Space) error {
	model := &SpaceModel{
		Name:     s.Name,
		Location: s.Location,
		Capacity: s.Capacity,
		Active:   s.Active,
	}
	tx := conn(ctx, r.db)
	if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrSpaceNameTaken
		}
		return fmt.Errorf("create space: %w", err)
	}
	if err := r.insertFeatures(tx, model.ID, s.Features); err != nil {
		return err
	}
	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *SpaceRepository) Update(ctx context.Context, s *domain.Space) error {
	tx := conn(ctx, r.db)
	result := tx.Model(&SpaceModel{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":     s.Name,
		"location": s.Location,
		"capacity": s.Capacity,
		"active":   s.Active,
	})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domain.ErrSpaceNameTaken
		}
		return fmt.Errorf("update space: %w", result.Error)
	}
	// RowsAffected may be 0 when nothing changed, so it is not used to detect absence.

	if err := tx.Where("space_id = ?", s.ID).Delete(&SpaceFeatureModel{}).Error; err != nil {
		return fmt.Errorf("clear space features: %w", err)
	}
	return r.insertFeatures(tx, s.ID, s.Features)
}

func (r *SpaceRepository) Delete(ctx context.Context, id uint) error {
	tx := conn(ctx, r.db)
	if err := tx.Where("space_id = ?", id).Delete(&SpaceFeatureModel{}).Error; err != nil {
		return fmt.Errorf("delete space features: %w", err)
	}
	result := tx.Delete(&SpaceModel{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return domain.ErrSpaceInUse
		}
		return fmt.Errorf("delete space: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSpaceNotFound
	}
	return nil
}

func (r *SpaceRepository) FindByID(ctx context.Context, id uint) (*domain.Space, error) {
	var model SpaceModel
	tx := conn(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSpaceNotFound
		}
		return nil, fmt.Errorf("find space: %w", err)
	}
	return r.withFeatures(tx, &model)
}

func (r *SpaceRepository) FindByName(ctx context.Context, name string) (*domain.Space, error) {
	var model SpaceModel
	tx := conn(ctx, r.db)
	if err := tx.Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSpaceNotFound
		}
		return nil, fmt.Errorf("find space by name: %w", err)
	}
	return r.withFeatures(tx, &model)
}

func (r *SpaceRepository) ListActive(ctx context.Context) ([]*domain.Space, error) {
	return r.list(conn(ctx, r.db), true)
}

func (r *SpaceRepository) ListAll(ctx context.Context) ([]*domain.Space, error) {
	return r.list(conn(ctx, r.db), false)
}

func (r *SpaceRepository) IsReferenced(ctx context.Context, id uint) (bool, error) {
	tx := conn(ctx, r.db)
	var bookings, tickets int64
	if err := tx.Model(&BookingModel{}).Where("space_id = ?", id).Count(&bookings).Error; err != nil {
		return false, fmt.Errorf("count space bookings: %w", err)
	}
	if bookings > 0 {
		return true, nil
	}
	if err := tx.Model(&TicketModel{}).Where("space_id = ?", id).Count(&tickets).Error; err != nil {
		return false, fmt.Errorf("count space tickets: %w", err)
	}
	return tickets > 0, nil
}

func (r *SpaceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.db).Model(&SpaceModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count spaces: %w", err)
	}
	return n, nil
}

func (r *SpaceRepository) list(tx *gorm.DB, activeOnly bool) ([]*domain.Space, error) {
	query := tx.Model(&SpaceModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var models []SpaceModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	if len(models) == 0 {
		return []*domain.Space{}, nil
	}

	ids := make([]uint, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}
	// One query for all feature rows instead of one per space.
	var rows []SpaceFeatureModel
	if err := tx.
		Where("space_id IN ?", ids).
		Order("feature ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list space features: %w", err)
	}
	features := make(map[uint][]string, len(models))
	for _, row := range rows {
		features[row.SpaceID] = append(features[row.SpaceID], row.Feature)
	}

	spaces := make([]*domain.Space, len(models))
	for i := range models {
		spaces[i] = models[i].toDomain(features[models[i].ID])
	}
	return spaces, nil
}

func (r *SpaceRepository) withFeatures(tx *gorm.DB, model *SpaceModel) (*domain.Space, error) {
	var features []string
	if err := tx.Model(&SpaceFeatureModel{}).
		Where("space_id = ?", model.ID).
		Order("feature ASC").
		Pluck("feature", &features).Error; err != nil {
		return nil, fmt.Errorf("load space features: %w", err)
	}
	return model.toDomain(features), nil
}

func (r *SpaceRepository) insertFeatures(tx *gorm.DB, spaceID uint, features []string) error {
	if len(features) == 0 {
		return nil
	}
	rows := make([]SpaceFeatureModel, len(features))
	for i, f := range features {
		rows[i] = SpaceFeatureModel{SpaceID: spaceID, Feature: f}
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert space features: %w", err)
	}
	return nil
}
