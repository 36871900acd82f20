package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

type ticketFixture struct {
	svc         *TicketService
	tickets     *stubTicketRepo
	attachments *stubAttachmentRepo
	userID      uint
	spaceID     uint
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	ctx := context.Background()
	users := newStubUserRepo()
	spaces := newStubSpaceRepo()
	tickets := newStubTicketRepo()
	attachments := &stubAttachmentRepo{}

	u := &domain.User{Email: "member@example.com", Role: domain.RoleMember, Enabled: true}
	_ = users.Create(ctx, u)
	s := &domain.Space{Name: "Atlas Hall", Location: "Floor 1", Capacity: 50, Active: true}
	_ = spaces.Create(ctx, s)

	return &ticketFixture{
		svc:         NewTicketService(tickets, users, spaces, attachments, &stubTx{}, nil, zerolog.Nop()),
		tickets:     tickets,
		attachments: attachments,
		userID:      u.ID,
		spaceID:     s.ID,
	}
}

func (f *ticketFixture) input(priority domain.TicketPriority) ports.CreateTicketInput {
	return ports.CreateTicketInput{
		ReporterID:  f.userID,
		SpaceID:     f.spaceID,
		Title:       "Projector flickers",
		Description: "Image drops every few minutes",
		Priority:    priority,
	}
}

func TestTicketService_Create_Open(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.svc.Create(context.Background(), f.input(domain.PriorityHigh))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if ticket.Status != domain.TicketOpen {
		t.Fatalf("expected OPEN, got %s", ticket.Status)
	}
	if ticket.Priority != domain.PriorityHigh {
		t.Fatalf("expected HIGH, got %s", ticket.Priority)
	}
}

func TestTicketService_Create_Errors(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	in := f.input(domain.PriorityLow)
	in.SpaceID = 77
	if _, err := f.svc.Create(ctx, in); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing space, got %v", err)
	}

	in = f.input(domain.PriorityLow)
	in.ReporterID = 77
	if _, err := f.svc.Create(ctx, in); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := f.svc.Create(ctx, f.input("URGENT")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown priority, got %v", err)
	}
	if len(f.tickets.tickets) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestTicketService_UpdateStatus(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket, _ := f.svc.Create(ctx, f.input(domain.PriorityMedium))

	// CLOSED straight back to OPEN is allowed.
	for _, st := range []domain.TicketStatus{domain.TicketClosed, domain.TicketOpen} {
		updated, err := f.svc.UpdateStatus(ctx, ticket.ID, st)
		if err != nil {
			t.Fatalf("UpdateStatus(%s) returned error: %v", st, err)
		}
		if updated.Status != st {
			t.Fatalf("expected %s, got %s", st, updated.Status)
		}
	}

	if _, err := f.svc.UpdateStatus(ctx, 404, domain.TicketResolved); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketService_Search(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Create(ctx, f.input(domain.PriorityLow))
	_, _ = f.svc.Create(ctx, f.input(domain.PriorityCritical))
	third, _ := f.svc.Create(ctx, f.input(domain.PriorityCritical))
	_, _ = f.svc.UpdateStatus(ctx, third.ID, domain.TicketInProgress)

	page, err := f.svc.Search(ctx, ports.TicketFilter{})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if page.Total != 3 || page.Items[0].ID != third.ID {
		t.Fatalf("expected newest first, got %+v", page.Items)
	}

	page, _ = f.svc.Search(ctx, ports.TicketFilter{Priority: domain.PriorityCritical, Status: domain.TicketOpen})
	if page.Total != 1 || page.Items[0].ID != 2 {
		t.Fatalf("expected ticket 2 only, got %+v", page.Items)
	}
}

func TestTicketService_Get(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	ticket, _ := f.svc.Create(ctx, f.input(domain.PriorityLow))
	_ = f.attachments.Create(ctx, &domain.Attachment{TicketID: ticket.ID, Filename: "photo.jpg"})

	detail, err := f.svc.Get(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if detail.Space.Name != "Atlas Hall" || detail.Reporter.ID != f.userID || len(detail.Attachments) != 1 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}
