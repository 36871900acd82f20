package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zerotrace/smart-facility/internal/api/metrics"
	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// sniffLen is how many leading bytes are inspected when the client sent no content type.
const sniffLen = 3072

type AttachmentService struct {
	attachments ports.AttachmentRepository
	tickets     ports.TicketRepository
	files       ports.FileStore
	tx          ports.TxManager
	activity    ports.ActivityRecorder
	logger      zerolog.Logger
}

func NewAttachmentService(
	attachments ports.AttachmentRepository,
	tickets ports.TicketRepository,
	files ports.FileStore,
	tx ports.TxManager,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *AttachmentService {
	if activity == nil {
		activity = nopRecorder{}
	}
	return &AttachmentService{
		attachments: attachments,
		tickets:     tickets,
		files:       files,
		tx:          tx,
		activity:    activity,
		logger:      logger,
	}
}

// Store writes the upload to the file store as "<uuid>-<basename>" and records
// its metadata. The file is removed again if the metadata cannot be saved.
func (s *AttachmentService) Store(ctx context.Context, ticketID uint, file ports.Upload) (*domain.Attachment, error) {
	if file.Size <= 0 || file.Content == nil {
		metrics.AttachmentErrorsTotal.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyFile
	}
	if file.Size > domain.MaxAttachmentSize {
		metrics.AttachmentErrorsTotal.WithLabelValues("too_large").Inc()
		return nil, domain.ErrFileTooLarge
	}

	name := sanitizeFilename(file.Filename)
	content, contentType, err := detectContentType(file.Content, file.ContentType)
	if err != nil {
		s.logger.Error().Err(err).Uint("ticket_id", ticketID).Msg("failed to read upload")
		metrics.AttachmentErrorsTotal.WithLabelValues("io").Inc()
		return nil, domain.ErrUnableToStoreFile
	}

	var storedPath string
	attachment := &domain.Attachment{
		TicketID:    ticketID,
		Filename:    name,
		ContentType: contentType,
		SizeBytes:   file.Size,
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.tickets.FindByID(ctx, ticketID); err != nil {
			return err
		}

		// Read one byte past the limit so a lying Size header is still caught.
		limited := io.LimitReader(content, domain.MaxAttachmentSize+1)
		path, written, err := s.files.Save(ctx, uuid.NewString()+"-"+name, limited)
		if path != "" {
			storedPath = path
		}
		if err != nil {
			s.logger.Error().Err(err).Uint("ticket_id", ticketID).Str("filename", name).Msg("failed to store file")
			return domain.ErrUnableToStoreFile
		}
		if written == 0 {
			return domain.ErrEmptyFile
		}
		if written > domain.MaxAttachmentSize {
			return domain.ErrFileTooLarge
		}
		attachment.StoragePath = path
		attachment.SizeBytes = written
		return s.attachments.Create(ctx, attachment)
	})
	if err != nil {
		if storedPath != "" {
			if rmErr := s.files.Remove(ctx, storedPath); rmErr != nil {
				s.logger.Warn().Err(rmErr).Str("path", storedPath).Msg("failed to remove orphaned file")
			}
		}
		switch {
		case errors.Is(err, domain.ErrTicketNotFound):
			metrics.AttachmentErrorsTotal.WithLabelValues("ticket_not_found").Inc()
		case errors.Is(err, domain.ErrUnableToStoreFile):
			metrics.AttachmentErrorsTotal.WithLabelValues("io").Inc()
		case errors.Is(err, domain.ErrFileTooLarge):
			metrics.AttachmentErrorsTotal.WithLabelValues("too_large").Inc()
		case errors.Is(err, domain.ErrEmptyFile):
			metrics.AttachmentErrorsTotal.WithLabelValues("empty").Inc()
		}
		return nil, err
	}

	metrics.AttachmentBytes.Observe(float64(attachment.SizeBytes))
	s.activity.Record(domain.ActivityEvent{
		EntityType: domain.EntityTicket,
		EntityID:   ticketID,
		Action:     domain.ActionAttached,
		Detail:     name,
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Uint("ticket_id", ticketID).Uint("attachment_id", attachment.ID).Int64("size", attachment.SizeBytes).Msg("attachment stored")
	return attachment, nil
}

func (s *AttachmentService) ListByTicket(ctx context.Context, ticketID uint) ([]*domain.Attachment, error) {
	if _, err := s.tickets.FindByID(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.attachments.ListByTicket(ctx, ticketID)
}

// sanitizeFilename keeps only the final path element of a client-supplied name.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}

// detectContentType returns declared unless it is empty or generic, in which
// case the leading bytes are sniffed. The returned reader yields the full content.
func detectContentType(r io.Reader, declared string) (io.Reader, string, error) {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return r, declared, nil
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	head = head[:n]
	return io.MultiReader(bytes.NewReader(head), r), mimetype.Detect(head).String(), nil
}
