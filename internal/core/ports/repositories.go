package ports

import (
	"context"
	"io"
	"time"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

// TxManager runs fn inside a single database transaction. Repositories pick
// the transaction up from ctx, so callers only pass ctx through.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// SpaceRepository defines persistence operations for spaces and their feature tags.
type SpaceRepository interface {
	Create(ctx context.Context, s *domain.Space) error
	Update(ctx context.Context, s *domain.Space) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*domain.Space, error)
	// FindByName returns domain.ErrSpaceNotFound when no space has that name.
	FindByName(ctx context.Context, name string) (*domain.Space, error)
	ListActive(ctx context.Context) ([]*domain.Space, error)
	ListAll(ctx context.Context) ([]*domain.Space, error)
	// IsReferenced reports whether any booking or ticket points at the space.
	IsReferenced(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// BookingFilter carries optional, conjunctive search criteria. Zero values
// impose no constraint.
type BookingFilter struct {
	SpaceID uint
	Status  domain.BookingStatus
	From    time.Time // start_at >= From
	To      time.Time // start_at <= To
	Page    int       // 1-based
	Limit   int
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id uint) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) error
	// Search returns a page ordered by start_at ascending and the total match count.
	Search(ctx context.Context, filter BookingFilter) ([]*domain.Booking, int64, error)
}

// TicketFilter carries optional, conjunctive search criteria for tickets.
type TicketFilter struct {
	Status   domain.TicketStatus
	Priority domain.TicketPriority
	SpaceID  uint
	Page     int
	Limit    int
}

// TicketRepository defines persistence operations for maintenance tickets.
type TicketRepository interface {
	Create(ctx context.Context, t *domain.MaintenanceTicket) error
	FindByID(ctx context.Context, id uint) (*domain.MaintenanceTicket, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TicketStatus) error
	// Search returns a page ordered by created_at descending and the total match count.
	Search(ctx context.Context, filter TicketFilter) ([]*domain.MaintenanceTicket, int64, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *domain.Attachment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*domain.Attachment, error)
}

// FileStore keeps attachment bytes outside the database.
type FileStore interface {
	// Save writes r under name and returns the stored path and the bytes written.
	Save(ctx context.Context, name string, r io.Reader) (string, int64, error)
	Remove(ctx context.Context, path string) error
}

// SessionStore tracks revoked session tokens by their jti.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// ActivityRepository persists activity events.
type ActivityRepository interface {
	Insert(ctx context.Context, e *domain.ActivityEvent) error
	// ListByEntity returns the newest events first, at most limit of them.
	ListByEntity(ctx context.Context, entityType string, entityID uint, limit int) ([]*domain.ActivityEvent, error)
}

// ActivityRecorder accepts events for asynchronous delivery. Record never blocks.
type ActivityRecorder interface {
	Record(e domain.ActivityEvent)
}
