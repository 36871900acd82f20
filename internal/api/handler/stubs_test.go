package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/api/middleware"
	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withClaims(c echo.Context, userID uint, role domain.Role) {
	claims := &ports.Claims{UserID: userID, Email: "user@example.com", Role: role, TokenID: "jti"}
	c.Set(middleware.ClaimsKey, claims)
	c.Set(middleware.UserIDKey, userID)
	c.Set(middleware.RoleKey, role)
}

func withParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.Session, error)
	logoutFn   func(ctx context.Context, claims ports.Claims) error
	meFn       func(ctx context.Context, userID uint) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, claims ports.Claims) error {
	return s.logoutFn(ctx, claims)
}

func (s *stubAuthService) Verify(context.Context, string) (*ports.Claims, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

type stubSpaceService struct {
	createFn     func(ctx context.Context, input ports.SpaceInput) (*domain.Space, error)
	updateFn     func(ctx context.Context, id uint, input ports.SpaceInput) (*domain.Space, error)
	deleteFn     func(ctx context.Context, id uint) error
	getFn        func(ctx context.Context, id uint) (*domain.Space, error)
	listActiveFn func(ctx context.Context) ([]*domain.Space, error)
	listAllFn    func(ctx context.Context) ([]*domain.Space, error)
}

func (s *stubSpaceService) Create(ctx context.Context, input ports.SpaceInput) (*domain.Space, error) {
	return s.createFn(ctx, input)
}

func (s *stubSpaceService) Update(ctx context.Context, id uint, input ports.SpaceInput) (*domain.Space, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubSpaceService) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubSpaceService) Get(ctx context.Context, id uint) (*domain.Space, error) {
	return s.getFn(ctx, id)
}

func (s *stubSpaceService) ListActive(ctx context.Context) ([]*domain.Space, error) {
	return s.listActiveFn(ctx)
}

func (s *stubSpaceService) ListAll(ctx context.Context) ([]*domain.Space, error) {
	return s.listAllFn(ctx)
}

type stubBookingService struct {
	createFn       func(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error)
	updateStatusFn func(ctx context.Context, id uint, status domain.BookingStatus) (*domain.Booking, error)
	searchFn       func(ctx context.Context, filter ports.BookingFilter) (*ports.Page[*domain.Booking], error)
	getFn          func(ctx context.Context, id uint) (*ports.BookingDetail, error)
}

func (s *stubBookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, id uint, status domain.BookingStatus) (*domain.Booking, error) {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubBookingService) Search(ctx context.Context, filter ports.BookingFilter) (*ports.Page[*domain.Booking], error) {
	return s.searchFn(ctx, filter)
}

func (s *stubBookingService) Get(ctx context.Context, id uint) (*ports.BookingDetail, error) {
	return s.getFn(ctx, id)
}

type stubTicketService struct {
	createFn       func(ctx context.Context, input ports.CreateTicketInput) (*domain.MaintenanceTicket, error)
	updateStatusFn func(ctx context.Context, id uint, status domain.TicketStatus) (*domain.MaintenanceTicket, error)
	searchFn       func(ctx context.Context, filter ports.TicketFilter) (*ports.Page[*domain.MaintenanceTicket], error)
	getFn          func(ctx context.Context, id uint) (*ports.TicketDetail, error)
}

func (s *stubTicketService) Create(ctx context.Context, input ports.CreateTicketInput) (*domain.MaintenanceTicket, error) {
	return s.createFn(ctx, input)
}

func (s *stubTicketService) UpdateStatus(ctx context.Context, id uint, status domain.TicketStatus) (*domain.MaintenanceTicket, error) {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubTicketService) Search(ctx context.Context, filter ports.TicketFilter) (*ports.Page[*domain.MaintenanceTicket], error) {
	return s.searchFn(ctx, filter)
}

func (s *stubTicketService) Get(ctx context.Context, id uint) (*ports.TicketDetail, error) {
	return s.getFn(ctx, id)
}

type stubAttachmentService struct {
	storeFn func(ctx context.Context, ticketID uint, file ports.Upload) (*domain.Attachment, error)
	listFn  func(ctx context.Context, ticketID uint) ([]*domain.Attachment, error)
}

func (s *stubAttachmentService) Store(ctx context.Context, ticketID uint, file ports.Upload) (*domain.Attachment, error) {
	return s.storeFn(ctx, ticketID, file)
}

func (s *stubAttachmentService) ListByTicket(ctx context.Context, ticketID uint) ([]*domain.Attachment, error) {
	return s.listFn(ctx, ticketID)
}

type stubActivityService struct {
	listFn func(ctx context.Context, entityType string, entityID uint, limit int) ([]*domain.ActivityEvent, error)
}

func (s *stubActivityService) List(ctx context.Context, entityType string, entityID uint, limit int) ([]*domain.ActivityEvent, error) {
	return s.listFn(ctx, entityType, entityID, limit)
}
