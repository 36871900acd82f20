package handler

import (
	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	if u == nil {
		return userResponse{}
	}
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toSessionResponse(s *ports.Session) sessionResponse {
	return sessionResponse{
		Token:     s.Token,
		TokenType: "Bearer",
		ExpiresAt: s.ExpiresAt.UTC(),
		User:      toUserResponse(s.User),
	}
}

func toSpaceInput(req spaceRequest) ports.SpaceInput {
	return ports.SpaceInput{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		Features: req.Features,
		Active:   req.Active,
	}
}

func toBookingDetail(d *ports.BookingDetail) bookingDetailResponse {
	return bookingDetailResponse{
		Booking: d.Booking,
		Space:   d.Space,
		User:    toUserResponse(d.User),
	}
}

func toTicketDetail(d *ports.TicketDetail) ticketDetailResponse {
	return ticketDetailResponse{
		Ticket:      d.Ticket,
		Space:       d.Space,
		Reporter:    toUserResponse(d.Reporter),
		Attachments: orEmpty(d.Attachments),
	}
}

func toPageResponse[T any](p *ports.Page[T]) pageResponse[T] {
	return pageResponse[T]{
		Items:      orEmpty(p.Items),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

// orEmpty keeps empty listings rendering as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
