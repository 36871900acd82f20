package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// BookingHandler handles HTTP requests for space bookings.
type BookingHandler struct {
	service ports.BookingService
	now     func() time.Time
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service, now: time.Now}
}

// Search handles GET /api/bookings.
//
// @Summary      Search bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        spaceId  query     int     false  "Space ID"
// @Param        status   query     string  false  "PENDING, CONFIRMED, REJECTED or CANCELLED"
// @Param        from     query     string  false  "RFC3339 lower bound on start_at"
// @Param        to       query     string  false  "RFC3339 upper bound on start_at"
// @Param        page     query     int     false  "1-based page"
// @Param        limit    query     int     false  "Page size (max 100)"
// @Success      200      {object}  pageResponse[domain.Booking]
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Router       /api/bookings [get]
func (h *BookingHandler) Search(c echo.Context) error {
	var (
		filter ports.BookingFilter
		status string
	)
	err := echo.QueryParamsBinder(c).
		Uint("spaceId", &filter.SpaceID).
		String("status", &status).
		Time("from", &filter.From, time.RFC3339).
		Time("to", &filter.To, time.RFC3339).
		Int("page", &filter.Page).
		Int("limit", &filter.Limit).
		BindError()
	if err != nil {
		return queryError(err)
	}
	if status != "" {
		if filter.Status, err = domain.ParseBookingStatus(status); err != nil {
			return err
		}
	}

	page, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Get handles GET /api/bookings/:id.
//
// @Summary      Get a booking with its space and user
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  bookingDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingDetail(detail))
}

// Create handles POST /api/bookings. The booking is made for the caller.
//
// @Summary      Request a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	now := h.now()
	if !req.StartAt.After(now) || !req.EndAt.After(now) {
		return domain.Validationf("start_at and end_at must be in the future")
	}

	booking, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		UserID:  claims.UserID,
		SpaceID: req.SpaceID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Purpose: cleanText(req.Purpose),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

// UpdateStatus handles PUT /api/bookings/:id/status.
//
// @Summary      Change a booking's status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Booking ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return err
	}

	booking, err := h.service.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}
