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

type TicketService struct {
	tickets     ports.TicketRepository
	users       ports.UserRepository
	spaces      ports.SpaceRepository
	attachments ports.AttachmentRepository
	tx          ports.TxManager
	activity    ports.ActivityRecorder
	logger      zerolog.Logger
}

func NewTicketService(
	tickets ports.TicketRepository,
	users ports.UserRepository,
	spaces ports.SpaceRepository,
	attachments ports.AttachmentRepository,
	tx ports.TxManager,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *TicketService {
	if activity == nil {
		activity = nopRecorder{}
	}
	return &TicketService{
		tickets:     tickets,
		users:       users,
		spaces:      spaces,
		attachments: attachments,
		tx:          tx,
		activity:    activity,
		logger:      logger,
	}
}

// Create opens a ticket against a space with status OPEN.
func (s *TicketService) Create(ctx context.Context, input ports.CreateTicketInput) (*domain.MaintenanceTicket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Validationf("title is required")
	}
	priority, err := domain.ParseTicketPriority(string(input.Priority))
	if err != nil {
		return nil, err
	}

	ticket := &domain.MaintenanceTicket{
		SpaceID:     input.SpaceID,
		ReporterID:  input.ReporterID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Status:      domain.TicketOpen,
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByID(ctx, input.ReporterID); err != nil {
			return err
		}
		if _, err := s.spaces.FindByID(ctx, input.SpaceID); err != nil {
			return err
		}
		return s.tickets.Create(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}

	metrics.TicketsCreatedTotal.WithLabelValues(string(priority)).Inc()
	s.activity.Record(domain.ActivityEvent{
		EntityType: domain.EntityTicket,
		EntityID:   ticket.ID,
		Action:     domain.ActionCreated,
		Status:     string(ticket.Status),
		Detail:     string(priority),
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Uint("ticket_id", ticket.ID).Uint("space_id", ticket.SpaceID).Str("priority", string(priority)).Msg("ticket created")
	return ticket, nil
}

// UpdateStatus overwrites the ticket status without a transition check.
func (s *TicketService) UpdateStatus(ctx context.Context, id uint, status domain.TicketStatus) (*domain.MaintenanceTicket, error) {
	if _, err := domain.ParseTicketStatus(string(status)); err != nil {
		return nil, err
	}

	var ticket *domain.MaintenanceTicket
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := s.tickets.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.tickets.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		t.Status = status
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.StatusChangesTotal.WithLabelValues(domain.EntityTicket, string(status)).Inc()
	s.activity.Record(domain.ActivityEvent{
		EntityType: domain.EntityTicket,
		EntityID:   id,
		Action:     domain.ActionStatusChanged,
		Status:     string(status),
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Uint("ticket_id", id).Str("status", string(status)).Msg("ticket status updated")
	return ticket, nil
}

func (s *TicketService) Search(ctx context.Context, filter ports.TicketFilter) (*ports.Page[*domain.MaintenanceTicket], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.tickets.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

// Get loads a ticket with its space, reporter and attachments.
func (s *TicketService) Get(ctx context.Context, id uint) (*ports.TicketDetail, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	space, err := s.spaces.FindByID(ctx, ticket.SpaceID)
	if err != nil {
		return nil, err
	}
	reporter, err := s.users.FindByID(ctx, ticket.ReporterID)
	if err != nil {
		return nil, err
	}
	attachments, err := s.attachments.ListByTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.TicketDetail{
		Ticket:      ticket,
		Space:       space,
		Reporter:    reporter,
		Attachments: attachments,
	}, nil
}
