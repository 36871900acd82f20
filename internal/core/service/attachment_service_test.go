package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

type attachmentFixture struct {
	svc         *AttachmentService
	attachments *stubAttachmentRepo
	files       *stubFileStore
	ticketID    uint
}

func newAttachmentFixture(t *testing.T) *attachmentFixture {
	t.Helper()
	tickets := newStubTicketRepo()
	ticket := &domain.MaintenanceTicket{SpaceID: 1, ReporterID: 1, Title: "Leak", Priority: domain.PriorityHigh, Status: domain.TicketOpen}
	_ = tickets.Create(context.Background(), ticket)

	attachments := &stubAttachmentRepo{}
	files := newStubFileStore()
	return &attachmentFixture{
		svc:         NewAttachmentService(attachments, tickets, files, &stubTx{}, &stubRecorder{}, zerolog.Nop()),
		attachments: attachments,
		files:       files,
		ticketID:    ticket.ID,
	}
}

func upload(name, contentType string, content []byte) ports.Upload {
	return ports.Upload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     bytes.NewReader(content),
	}
}

func TestAttachmentService_Store(t *testing.T) {
	f := newAttachmentFixture(t)

	a, err := f.svc.Store(context.Background(), f.ticketID, upload("report.txt", "text/plain", []byte("water on the floor")))
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if a.Filename != "report.txt" || a.SizeBytes != 18 || a.ContentType != "text/plain" {
		t.Fatalf("unexpected attachment: %+v", a)
	}
	if !strings.HasSuffix(a.StoragePath, "-report.txt") {
		t.Fatalf("expected <uuid>-report.txt, got %s", a.StoragePath)
	}
	if len(f.files.files) != 1 {
		t.Fatalf("expected one stored file, got %d", len(f.files.files))
	}
}

func TestAttachmentService_Store_SanitizesName(t *testing.T) {
	f := newAttachmentFixture(t)

	a, err := f.svc.Store(context.Background(), f.ticketID, upload(`..\..\etc/passwd`, "text/plain", []byte("x")))
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if a.Filename != "passwd" {
		t.Fatalf("expected path components stripped, got %q", a.Filename)
	}
}

func TestAttachmentService_Store_SniffsContentType(t *testing.T) {
	f := newAttachmentFixture(t)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	a, err := f.svc.Store(context.Background(), f.ticketID, upload("photo", "", png))
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if a.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %s", a.ContentType)
	}
	if a.SizeBytes != int64(len(png)) {
		t.Fatalf("sniffing must not lose bytes: stored %d of %d", a.SizeBytes, len(png))
	}
}

func TestAttachmentService_Store_Rejections(t *testing.T) {
	tooLarge := ports.Upload{
		Filename: "big.bin",
		Size:     domain.MaxAttachmentSize + 1,
		Content:  bytes.NewReader(make([]byte, domain.MaxAttachmentSize+1)),
	}
	lyingSize := ports.Upload{
		Filename: "liar.bin",
		Size:     10,
		Content:  bytes.NewReader(make([]byte, domain.MaxAttachmentSize+10)),
	}

	cases := []struct {
		name string
		in   ports.Upload
		want error
	}{
		{"empty", upload("empty.txt", "text/plain", nil), domain.ErrEmptyFile},
		{"too large", tooLarge, domain.ErrFileTooLarge},
		{"size header understated", lyingSize, domain.ErrFileTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAttachmentFixture(t)
			_, err := f.svc.Store(context.Background(), f.ticketID, tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if len(f.attachments.items) != 0 || len(f.files.files) != 0 {
				t.Fatalf("expected no record and no file")
			}
		})
	}
}

func TestAttachmentService_Store_TicketNotFound(t *testing.T) {
	f := newAttachmentFixture(t)

	if _, err := f.svc.Store(context.Background(), 999, upload("a.txt", "text/plain", []byte("x"))); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestAttachmentService_Store_IOFailure(t *testing.T) {
	f := newAttachmentFixture(t)
	f.files.saveErr = errors.New("disk full")

	if _, err := f.svc.Store(context.Background(), f.ticketID, upload("a.txt", "text/plain", []byte("x"))); !errors.Is(err, domain.ErrUnableToStoreFile) {
		t.Fatalf("expected ErrUnableToStoreFile, got %v", err)
	}
}

func TestAttachmentService_Store_RemovesFileWhenInsertFails(t *testing.T) {
	f := newAttachmentFixture(t)
	f.attachments.createErr = errors.New("insert failed")

	if _, err := f.svc.Store(context.Background(), f.ticketID, upload("a.txt", "text/plain", []byte("x"))); err == nil {
		t.Fatalf("expected error")
	}
	if len(f.files.files) != 0 {
		t.Fatalf("expected orphaned file to be removed, %d left", len(f.files.files))
	}
}

func TestAttachmentService_ListByTicket(t *testing.T) {
	f := newAttachmentFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Store(ctx, f.ticketID, upload("a.txt", "text/plain", []byte("a")))
	_, _ = f.svc.Store(ctx, f.ticketID, upload("b.txt", "text/plain", []byte("b")))

	list, err := f.svc.ListByTicket(ctx, f.ticketID)
	if err != nil {
		t.Fatalf("ListByTicket returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(list))
	}
	if _, err := f.svc.ListByTicket(ctx, 999); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}
