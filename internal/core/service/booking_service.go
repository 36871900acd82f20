package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zerotrace/smart-facility/internal/api/metrics"
	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

type BookingService struct {
	bookings ports.BookingRepository
	users    ports.UserRepository
	spaces   ports.SpaceRepository
	tx       ports.TxManager
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewBookingService(
	bookings ports.BookingRepository,
	users ports.UserRepository,
	spaces ports.SpaceRepository,
	tx ports.TxManager,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *BookingService {
	if activity == nil {
		activity = nopRecorder{}
	}
	return &BookingService{
		bookings: bookings,
		users:    users,
		spaces:   spaces,
		tx:       tx,
		activity: activity,
		logger:   logger,
	}
}

// Create persists a PENDING booking. Overlapping bookings are not detected.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	if err := domain.CheckTimeRange(input.StartAt, input.EndAt); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:  input.UserID,
		SpaceID: input.SpaceID,
		StartAt: input.StartAt.UTC(),
		EndAt:   input.EndAt.UTC(),
		Status:  domain.BookingPending,
		Purpose: strings.TrimSpace(input.Purpose),
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
			return err
		}
		if _, err := s.spaces.FindByID(ctx, input.SpaceID); err != nil {
			return err
		}
		return s.bookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreatedTotal.Inc()
	s.activity.Record(domain.ActivityEvent{
		EntityType: domain.EntityBooking,
		EntityID:   booking.ID,
		Action:     domain.ActionCreated,
		Status:     string(booking.Status),
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Uint("booking_id", booking.ID).Uint("space_id", booking.SpaceID).Uint("user_id", booking.UserID).Msg("booking created")
	return booking, nil
}

// UpdateStatus overwrites the booking status. Any status may follow any other.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) (*domain.Booking, error) {
	if _, err := domain.ParseBookingStatus(string(status)); err != nil {
		return nil, err
	}

	var booking *domain.Booking
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		b, err := s.bookings.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		b.Status = status
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.StatusChangesTotal.WithLabelValues(domain.EntityBooking, string(status)).Inc()
	s.activity.Record(domain.ActivityEvent{
		EntityType: domain.EntityBooking,
		EntityID:   id,
		Action:     domain.ActionStatusChanged,
		Status:     string(status),
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Uint("booking_id", id).Str("status", string(status)).Msg("booking status updated")
	return booking, nil
}

func (s *BookingService) Search(ctx context.Context, filter ports.BookingFilter) (*ports.Page[*domain.Booking], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.bookings.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

// Get loads a booking together with its space and user.
func (s *BookingService) Get(ctx context.Context, id uint) (*ports.BookingDetail, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	space, err := s.spaces.FindByID(ctx, booking.SpaceID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, booking.UserID)
	if err != nil {
		return nil, err
	}
	return &ports.BookingDetail{Booking: booking, Space: space, User: user}, nil
}
