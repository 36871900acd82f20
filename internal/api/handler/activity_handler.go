package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// ActivityHandler exposes the booking and ticket activity log.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /api/activity.
//
// @Summary      Activity history of a booking or ticket
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        entity  query     string  true   "booking or ticket"
// @Param        id      query     int     true   "Entity ID"
// @Param        limit   query     int     false  "Max events (default 50)"
// @Success      200     {array}   domain.ActivityEvent
// @Failure      400     {object}  errorResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	var (
		entity string
		id     uint
		limit  int
	)
	err := echo.QueryParamsBinder(c).
		String("entity", &entity).
		Uint("id", &id).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return queryError(err)
	}

	events, err := h.service.List(c.Request().Context(), entity, id, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(events))
}
