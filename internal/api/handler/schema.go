package handler

import (
	"time"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email,max=255"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=120"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// --- Spaces ---

type spaceRequest struct {
	Name     string   `json:"name"     validate:"required,max=120"`
	Location string   `json:"location" validate:"required,max=255"`
	Capacity int      `json:"capacity" validate:"required,gt=0"`
	Features []string `json:"features" validate:"omitempty,max=32,dive,max=64"`
	Active   bool     `json:"active"`
}

// --- Bookings ---

type createBookingRequest struct {
	SpaceID uint      `json:"space_id" validate:"required,gt=0"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at"   validate:"required"`
	Purpose string    `json:"purpose"  validate:"required,max=500"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type bookingDetailResponse struct {
	Booking *domain.Booking `json:"booking"`
	Space   *domain.Space   `json:"space"`
	User    userResponse    `json:"user"`
}

// --- Tickets ---

type createTicketRequest struct {
	SpaceID     uint   `json:"space_id"    validate:"required,gt=0"`
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	Priority    string `json:"priority"    validate:"required"`
}

type ticketDetailResponse struct {
	Ticket      *domain.MaintenanceTicket `json:"ticket"`
	Space       *domain.Space             `json:"space"`
	Reporter    userResponse              `json:"reporter"`
	Attachments []*domain.Attachment      `json:"attachments"`
}

// --- Listings ---

type pageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type pageView struct {
	Page string `json:"page"`
}
