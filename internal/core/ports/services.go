package ports

import (
	"context"
	"io"
	"time"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

// Page is one page of a filtered listing.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
}

// Session is an issued access token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Claims is the verified content of an access token.
type Claims struct {
	UserID    uint
	Email     string
	Role      domain.Role
	TokenID   string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, claims Claims) error
	// Verify parses a token and rejects revoked or expired ones.
	Verify(ctx context.Context, token string) (*Claims, error)
	Me(ctx context.Context, userID uint) (*domain.User, error)
}

type SpaceInput struct {
	Name     string
	Location string
	Capacity int
	Features []string
	Active   bool
}

type SpaceService interface {
	Create(ctx context.Context, input SpaceInput) (*domain.Space, error)
	Update(ctx context.Context, id uint, input SpaceInput) (*domain.Space, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*domain.Space, error)
	ListActive(ctx context.Context) ([]*domain.Space, error)
	ListAll(ctx context.Context) ([]*domain.Space, error)
}

type CreateBookingInput struct {
	UserID  uint
	SpaceID uint
	StartAt time.Time
	EndAt   time.Time
	Purpose string
}

// BookingDetail is a booking with its space and user loaded.
type BookingDetail struct {
	Booking *domain.Booking
	Space   *domain.Space
	User    *domain.User
}

type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) (*domain.Booking, error)
	Search(ctx context.Context, filter BookingFilter) (*Page[*domain.Booking], error)
	Get(ctx context.Context, id uint) (*BookingDetail, error)
}

type CreateTicketInput struct {
	ReporterID  uint
	SpaceID     uint
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketDetail is a ticket with its space, reporter and attachments loaded.
type TicketDetail struct {
	Ticket      *domain.MaintenanceTicket
	Space       *domain.Space
	Reporter    *domain.User
	Attachments []*domain.Attachment
}

type TicketService interface {
	Create(ctx context.Context, input CreateTicketInput) (*domain.MaintenanceTicket, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TicketStatus) (*domain.MaintenanceTicket, error)
	Search(ctx context.Context, filter TicketFilter) (*Page[*domain.MaintenanceTicket], error)
	Get(ctx context.Context, id uint) (*TicketDetail, error)
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type AttachmentService interface {
	Store(ctx context.Context, ticketID uint, file Upload) (*domain.Attachment, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*domain.Attachment, error)
}

type ActivityService interface {
	List(ctx context.Context, entityType string, entityID uint, limit int) ([]*domain.ActivityEvent, error)
}
