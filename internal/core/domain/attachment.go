package domain

import "time"

// MaxAttachmentSize is the upload ceiling for a single attachment (5 MiB).
const MaxAttachmentSize int64 = 5 * 1024 * 1024

// Attachment is a file uploaded in support of a maintenance ticket.
type Attachment struct {
	ID          uint      `json:"id"`
	TicketID    uint      `json:"ticket_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"-"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
