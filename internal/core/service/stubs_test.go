package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

// stubTx runs fn directly and counts calls.
type stubTx struct{ calls int }

func (t *stubTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type stubUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubSpaceRepo struct {
	spaces     map[uint]*domain.Space
	referenced map[uint]bool
	nextID     uint
	listCalls  int
}

func newStubSpaceRepo() *stubSpaceRepo {
	return &stubSpaceRepo{spaces: make(map[uint]*domain.Space), referenced: make(map[uint]bool)}
}

func (r *stubSpaceRepo) Create(_ context.Context, s *domain.Space) error {
	r.nextID++
	s.ID = r.nextID
	clone := *s
	r.spaces[s.ID] = &clone
	return nil
}

func (r *stubSpaceRepo) Update(_ context.Context, s *domain.Space) error {
	if _, ok := r.spaces[s.ID]; !ok {
		return domain.ErrSpaceNotFound
	}
	clone := *s
	r.spaces[s.ID] = &clone
	return nil
}

func (r *stubSpaceRepo) Delete(_ context.Context, id uint) error {
	delete(r.spaces, id)
	return nil
}

func (r *stubSpaceRepo) FindByID(_ context.Context, id uint) (*domain.Space, error) {
	s, ok := r.spaces[id]
	if !ok {
		return nil, domain.ErrSpaceNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSpaceRepo) FindByName(_ context.Context, name string) (*domain.Space, error) {
	for _, s := range r.spaces {
		if s.Name == name {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSpaceNotFound
}

func (r *stubSpaceRepo) list(activeOnly bool) []*domain.Space {
	var out []*domain.Space
	for _, s := range r.spaces {
		if activeOnly && !s.Active {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *stubSpaceRepo) ListActive(context.Context) ([]*domain.Space, error) {
	r.listCalls++
	return r.list(true), nil
}

func (r *stubSpaceRepo) ListAll(context.Context) ([]*domain.Space, error) {
	return r.list(false), nil
}

func (r *stubSpaceRepo) IsReferenced(_ context.Context, id uint) (bool, error) {
	return r.referenced[id], nil
}

func (r *stubSpaceRepo) Count(context.Context) (int64, error) {
	return int64(len(r.spaces)), nil
}

type stubBookingRepo struct {
	bookings   map[uint]*domain.Booking
	nextID     uint
	lastFilter ports.BookingFilter
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[uint]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.nextID++
	b.ID = r.nextID
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id uint) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id uint, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

// Search applies the same conjunctive filters as the SQL repository.
func (r *stubBookingRepo) Search(_ context.Context, f ports.BookingFilter) ([]*domain.Booking, int64, error) {
	r.lastFilter = f
	var matched []*domain.Booking
	for _, b := range r.bookings {
		if f.SpaceID != 0 && b.SpaceID != f.SpaceID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && b.StartAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && b.StartAt.After(f.To) {
			continue
		}
		clone := *b
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].StartAt.Before(matched[j].StartAt) })
	return paginate(matched, f.Page, f.Limit), int64(len(matched)), nil
}

type stubTicketRepo struct {
	tickets    map[uint]*domain.MaintenanceTicket
	nextID     uint
	lastFilter ports.TicketFilter
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{tickets: make(map[uint]*domain.MaintenanceTicket)}
}

func (r *stubTicketRepo) Create(_ context.Context, t *domain.MaintenanceTicket) error {
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now().UTC().Add(time.Duration(t.ID) * time.Millisecond)
	clone := *t
	r.tickets[t.ID] = &clone
	return nil
}

func (r *stubTicketRepo) FindByID(_ context.Context, id uint) (*domain.MaintenanceTicket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTicketRepo) UpdateStatus(_ context.Context, id uint, status domain.TicketStatus) error {
	t, ok := r.tickets[id]
	if !ok {
		return domain.ErrTicketNotFound
	}
	t.Status = status
	return nil
}

func (r *stubTicketRepo) Search(_ context.Context, f ports.TicketFilter) ([]*domain.MaintenanceTicket, int64, error) {
	r.lastFilter = f
	var matched []*domain.MaintenanceTicket
	for _, t := range r.tickets {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.SpaceID != 0 && t.SpaceID != f.SpaceID {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func paginate[T any](items []T, page, limit int) []T {
	skip := (page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

type stubAttachmentRepo struct {
	items     []*domain.Attachment
	createErr error
}

func (r *stubAttachmentRepo) Create(_ context.Context, a *domain.Attachment) error {
	if r.createErr != nil {
		return r.createErr
	}
	a.ID = uint(len(r.items) + 1)
	clone := *a
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubAttachmentRepo) ListByTicket(_ context.Context, ticketID uint) ([]*domain.Attachment, error) {
	var out []*domain.Attachment
	for _, a := range r.items {
		if a.TicketID == ticketID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubFileStore struct {
	files   map[string][]byte
	saveErr error
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{files: make(map[string][]byte)}
}

func (s *stubFileStore) Save(_ context.Context, name string, r io.Reader) (string, int64, error) {
	if s.saveErr != nil {
		return "", 0, s.saveErr
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	path := "mem/" + name
	s.files[path] = buf.Bytes()
	return path, n, err
}

func (s *stubFileStore) Remove(_ context.Context, path string) error {
	if _, ok := s.files[path]; !ok {
		return errors.New("no such file")
	}
	delete(s.files, path)
	return nil
}

type stubSessionStore struct {
	revoked map[string]time.Time
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{revoked: make(map[string]time.Time)}
}

func (s *stubSessionStore) Revoke(_ context.Context, jti string, until time.Time) error {
	s.revoked[jti] = until
	return nil
}

func (s *stubSessionStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := s.revoked[jti]
	return ok, nil
}

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (r *stubRecorder) Record(e domain.ActivityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

type stubActivityRepo struct {
	events    []*domain.ActivityEvent
	lastLimit int
}

func (r *stubActivityRepo) Insert(_ context.Context, e *domain.ActivityEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *stubActivityRepo) ListByEntity(_ context.Context, entityType string, entityID uint, limit int) ([]*domain.ActivityEvent, error) {
	r.lastLimit = limit
	var out []*domain.ActivityEvent
	for _, e := range r.events {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}
