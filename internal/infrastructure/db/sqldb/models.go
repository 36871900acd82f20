package sqldb

import (
	"time"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	FullName     string    `gorm:"size:255"`
	Role         string    `gorm:"size:16;not null"`
	Enabled      bool      `gorm:"not null"`
	Locked       bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         domain.Role(m.Role),
		Enabled:      m.Enabled,
		Locked:       m.Locked,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userModelFrom(u *domain.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Role:         string(u.Role),
		Enabled:      u.Enabled,
		Locked:       u.Locked,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type SpaceModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:120;not null;uniqueIndex"`
	Location  string    `gorm:"size:255;not null"`
	Capacity  int       `gorm:"not null"`
	Active    bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

func (SpaceModel) TableName() string { return "spaces" }

// SpaceFeatureModel is one feature tag of a space.
type SpaceFeatureModel struct {
	SpaceID uint        `gorm:"primaryKey;autoIncrement:false"`
	Feature string      `gorm:"primaryKey;size:64"`
	Space   *SpaceModel `gorm:"foreignKey:SpaceID;constraint:OnDelete:CASCADE"`
}

func (SpaceFeatureModel) TableName() string { return "space_features" }

func (m *SpaceModel) toDomain(features []string) *domain.Space {
	if features == nil {
		features = []string{}
	}
	return &domain.Space{
		ID:        m.ID,
		Name:      m.Name,
		Location:  m.Location,
		Capacity:  m.Capacity,
		Features:  features,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type BookingModel struct {
	ID        uint        `gorm:"primaryKey"`
	UserID    uint        `gorm:"not null;index"`
	User      *UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	SpaceID   uint        `gorm:"not null;index"`
	Space     *SpaceModel `gorm:"foreignKey:SpaceID;constraint:OnDelete:RESTRICT"`
	StartAt   time.Time   `gorm:"not null;index"`
	EndAt     time.Time   `gorm:"not null"`
	Status    string      `gorm:"size:16;not null;index"`
	Purpose   string      `gorm:"size:500"`
	CreatedAt time.Time   `gorm:"not null"`
	UpdatedAt time.Time
}

func (BookingModel) TableName() string { return "bookings" }

func (m *BookingModel) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:        m.ID,
		UserID:    m.UserID,
		SpaceID:   m.SpaceID,
		StartAt:   m.StartAt.UTC(),
		EndAt:     m.EndAt.UTC(),
		Status:    domain.BookingStatus(m.Status),
		Purpose:   m.Purpose,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type TicketModel struct {
	ID          uint        `gorm:"primaryKey"`
	SpaceID     uint        `gorm:"not null;index"`
	Space       *SpaceModel `gorm:"foreignKey:SpaceID;constraint:OnDelete:RESTRICT"`
	ReporterID  uint        `gorm:"not null;index"`
	Reporter    *UserModel  `gorm:"foreignKey:ReporterID;constraint:OnDelete:RESTRICT"`
	Title       string      `gorm:"size:200;not null"`
	Description string      `gorm:"size:2000"`
	Priority    string      `gorm:"size:16;not null;index"`
	Status      string      `gorm:"size:16;not null;index"`
	CreatedAt   time.Time   `gorm:"not null;index"`
	UpdatedAt   time.Time
}

func (TicketModel) TableName() string { return "maintenance_tickets" }

func (m *TicketModel) toDomain() *domain.MaintenanceTicket {
	return &domain.MaintenanceTicket{
		ID:          m.ID,
		SpaceID:     m.SpaceID,
		ReporterID:  m.ReporterID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    domain.TicketPriority(m.Priority),
		Status:      domain.TicketStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type AttachmentModel struct {
	ID          uint         `gorm:"primaryKey"`
	TicketID    uint         `gorm:"not null;index"`
	Ticket      *TicketModel `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	Filename    string       `gorm:"size:255;not null"`
	StoragePath string       `gorm:"size:512;not null"`
	ContentType string       `gorm:"size:128"`
	SizeBytes   int64        `gorm:"not null"`
	CreatedAt   time.Time    `gorm:"not null"`
}

func (AttachmentModel) TableName() string { return "attachments" }

func (m *AttachmentModel) toDomain() *domain.Attachment {
	return &domain.Attachment{
		ID:          m.ID,
		TicketID:    m.TicketID,
		Filename:    m.Filename,
		StoragePath: m.StoragePath,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		CreatedAt:   m.CreatedAt,
	}
}
