package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// TicketHandler handles HTTP requests for maintenance tickets.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// Search handles GET /api/tickets.
//
// @Summary      Search maintenance tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "OPEN, IN_PROGRESS, RESOLVED or CLOSED"
// @Param        priority  query     string  false  "LOW, MEDIUM, HIGH or CRITICAL"
// @Param        spaceId   query     int     false  "Space ID"
// @Param        page      query     int     false  "1-based page"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  pageResponse[domain.MaintenanceTicket]
// @Failure      400       {object}  errorResponse
// @Router       /api/tickets [get]
func (h *TicketHandler) Search(c echo.Context) error {
	var (
		filter           ports.TicketFilter
		status, priority string
	)
	err := echo.QueryParamsBinder(c).
		String("status", &status).
		String("priority", &priority).
		Uint("spaceId", &filter.SpaceID).
		Int("page", &filter.Page).
		Int("limit", &filter.Limit).
		BindError()
	if err != nil {
		return queryError(err)
	}
	if status != "" {
		if filter.Status, err = domain.ParseTicketStatus(status); err != nil {
			return err
		}
	}
	if priority != "" {
		if filter.Priority, err = domain.ParseTicketPriority(priority); err != nil {
			return err
		}
	}

	page, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Get handles GET /api/tickets/:id.
//
// @Summary      Get a ticket with its space, reporter and attachments
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ticket ID"
// @Success      200  {object}  ticketDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketDetail(detail))
}

// Create handles POST /api/tickets. The caller is recorded as reporter.
//
// @Summary      Report a maintenance issue
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Ticket"
// @Success      201   {object}  domain.MaintenanceTicket
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req createTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	priority, err := domain.ParseTicketPriority(req.Priority)
	if err != nil {
		return err
	}

	ticket, err := h.service.Create(c.Request().Context(), ports.CreateTicketInput{
		ReporterID:  claims.UserID,
		SpaceID:     req.SpaceID,
		Title:       cleanText(req.Title),
		Description: cleanText(req.Description),
		Priority:    priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ticket)
}

// UpdateStatus handles PUT /api/tickets/:id/status.
//
// @Summary      Change a ticket's status
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Ticket ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.MaintenanceTicket
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tickets/{id}/status [put]
func (h *TicketHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := domain.ParseTicketStatus(req.Status)
	if err != nil {
		return err
	}

	ticket, err := h.service.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}
