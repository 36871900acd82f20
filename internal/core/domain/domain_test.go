package domain

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func TestParseBookingStatus(t *testing.T) {
	got, err := ParseBookingStatus(" confirmed ")
	if err != nil || got != BookingConfirmed {
		t.Fatalf("expected CONFIRMED, got %q (%v)", got, err)
	}
	if _, err := ParseBookingStatus("DONE"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseTicketEnums(t *testing.T) {
	if st, err := ParseTicketStatus("in_progress"); err != nil || st != TicketInProgress {
		t.Fatalf("unexpected status %q (%v)", st, err)
	}
	if p, err := ParseTicketPriority("Critical"); err != nil || p != PriorityCritical {
		t.Fatalf("unexpected priority %q (%v)", p, err)
	}
	if _, err := ParseTicketPriority(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckTimeRange(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	if err := CheckTimeRange(start, start.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckTimeRange(start, start); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("equal bounds should be rejected, got %v", err)
	}
	if err := CheckTimeRange(start, start.Add(-time.Minute)); !errors.Is(err, ErrValidation) {
		t.Fatalf("reversed bounds should be a validation error, got %v", err)
	}
}

func TestFeatureSet(t *testing.T) {
	got := FeatureSet([]string{" Projector", "Whiteboard", "", "Projector", "  "})
	want := []string{"Projector", "Whiteboard"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSpaceValidate(t *testing.T) {
	s := &Space{Name: "Orion Lab", Location: "Floor 2", Capacity: 0}
	if err := s.Validate(); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected invalid capacity, got %v", err)
	}
	s.Capacity = 8
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMessage(t *testing.T) {
	wrapped := fmt.Errorf("load booking 4: %w", ErrBookingNotFound)
	if Message(wrapped) != "booking not found" {
		t.Fatalf("unexpected message %q", Message(wrapped))
	}
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("kind lost through wrapping")
	}
	if Message(errors.New("plain")) != "plain" {
		t.Fatalf("plain errors should keep their text")
	}
}

func TestUserCanLogin(t *testing.T) {
	u := &User{Enabled: true}
	if !u.CanLogin() {
		t.Fatalf("enabled, unlocked user should log in")
	}
	u.Locked = true
	if u.CanLogin() {
		t.Fatalf("locked user should not log in")
	}
	if NormalizeEmail("  Ada@Example.COM ") != "ada@example.com" {
		t.Fatalf("email not normalised")
	}
}
