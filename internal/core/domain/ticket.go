package domain

import (
	"strings"
	"time"
)

// TicketStatus is the lifecycle state of a maintenance ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

// TicketPriority ranks how urgently a ticket needs attention.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "LOW"
	PriorityMedium   TicketPriority = "MEDIUM"
	PriorityHigh     TicketPriority = "HIGH"
	PriorityCritical TicketPriority = "CRITICAL"
)

func ParseTicketStatus(s string) (TicketStatus, error) {
	st := TicketStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return st, nil
	}
	return "", Validationf("unknown ticket status %q", s)
}

func ParseTicketPriority(s string) (TicketPriority, error) {
	p := TicketPriority(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return p, nil
	}
	return "", Validationf("unknown ticket priority %q", s)
}

// MaintenanceTicket records a facility issue reported against a space.
type MaintenanceTicket struct {
	ID          uint           `json:"id"`
	SpaceID     uint           `json:"space_id"`
	ReporterID  uint           `json:"reporter_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority"`
	Status      TicketStatus   `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
