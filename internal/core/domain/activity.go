package domain

import "time"

// Entity types recorded in the activity log.
const (
	EntityBooking = "booking"
	EntityTicket  = "ticket"
)

// Activity actions.
const (
	ActionCreated       = "created"
	ActionStatusChanged = "status_changed"
	ActionAttached      = "attachment_added"
)

// ActivityEvent records a change to a booking or ticket.
type ActivityEvent struct {
	EntityType string    `json:"entity_type"`
	EntityID   uint      `json:"entity_id"`
	Action     string    `json:"action"`
	Status     string    `json:"status,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
