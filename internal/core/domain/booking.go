package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the lifecycle state of a booking. Any status may
// be overwritten with any other; there is no transition table.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus converts s (case-insensitive) to a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case BookingPending, BookingConfirmed, BookingRejected, BookingCancelled:
		return st, nil
	}
	return "", Validationf("unknown booking status %q", s)
}

// Booking is a reservation of a space by a user for a time interval.
type Booking struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	SpaceID   uint          `json:"space_id"`
	StartAt   time.Time     `json:"start_at"`
	EndAt     time.Time     `json:"end_at"`
	Status    BookingStatus `json:"status"`
	Purpose   string        `json:"purpose"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CheckTimeRange returns ErrInvalidTimeRange unless start is strictly before end.
func CheckTimeRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	return nil
}
