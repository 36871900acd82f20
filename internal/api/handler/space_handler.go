package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// SpaceHandler serves the space catalogue.
type SpaceHandler struct {
	service ports.SpaceService
}

func NewSpaceHandler(service ports.SpaceService) *SpaceHandler {
	return &SpaceHandler{service: service}
}

// ListActive handles GET /api/spaces.
//
// @Summary      List active spaces
// @Tags         spaces
// @Produce      json
// @Success      200  {array}   domain.Space
// @Failure      500  {object}  errorResponse
// @Router       /api/spaces [get]
func (h *SpaceHandler) ListActive(c echo.Context) error {
	spaces, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(spaces))
}

// ListAll handles GET /api/spaces/all, including inactive spaces.
//
// @Summary      List all spaces
// @Tags         spaces
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Space
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/spaces/all [get]
func (h *SpaceHandler) ListAll(c echo.Context) error {
	spaces, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(spaces))
}

// Get handles GET /api/spaces/:id.
//
// @Summary      Get a space
// @Tags         spaces
// @Produce      json
// @Param        id   path      int  true  "Space ID"
// @Success      200  {object}  domain.Space
// @Failure      404  {object}  errorResponse
// @Router       /api/spaces/{id} [get]
func (h *SpaceHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	space, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, space)
}

// Create handles POST /api/spaces.
//
// @Summary      Create a space
// @Tags         spaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      spaceRequest  true  "Space"
// @Success      201   {object}  domain.Space
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/spaces [post]
func (h *SpaceHandler) Create(c echo.Context) error {
	var req spaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	space, err := h.service.Create(c.Request().Context(), toSpaceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, space)
}

// Update handles PUT /api/spaces/:id. Every mutable field is overwritten.
//
// @Summary      Update a space
// @Tags         spaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Space ID"
// @Param        body  body      spaceRequest  true  "Space"
// @Success      200   {object}  domain.Space
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/spaces/{id} [put]
func (h *SpaceHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req spaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	space, err := h.service.Update(c.Request().Context(), id, toSpaceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, space)
}

// Delete handles DELETE /api/spaces/:id.
//
// @Summary      Delete a space
// @Tags         spaces
// @Security     BearerAuth
// @Param        id   path  int  true  "Space ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/spaces/{id} [delete]
func (h *SpaceHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
