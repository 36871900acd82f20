package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// AttachmentHandler accepts and lists files attached to tickets.
type AttachmentHandler struct {
	service ports.AttachmentService
}

func NewAttachmentHandler(service ports.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// Upload handles POST /api/tickets/:ticketId/attachments.
//
// @Summary      Attach a file to a ticket
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        ticketId  path      int   true  "Ticket ID"
// @Param        file      formData  file  true  "File (max 5MB)"
// @Success      201       {object}  domain.Attachment
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/tickets/{ticketId}/attachments [post]
func (h *AttachmentHandler) Upload(c echo.Context) error {
	ticketID, err := pathID(c, "ticketId")
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return domain.Validationf("file is required")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload").SetInternal(err)
	}
	f, err := fh.Open()
	if err != nil {
		return domain.ErrUnableToStoreFile
	}
	defer f.Close()

	attachment, err := h.service.Store(c.Request().Context(), ticketID, ports.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, attachment)
}

// List handles GET /api/tickets/:ticketId/attachments.
//
// @Summary      List a ticket's attachments
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        ticketId  path      int  true  "Ticket ID"
// @Success      200       {array}   domain.Attachment
// @Failure      404       {object}  errorResponse
// @Router       /api/tickets/{ticketId}/attachments [get]
func (h *AttachmentHandler) List(c echo.Context) error {
	ticketID, err := pathID(c, "ticketId")
	if err != nil {
		return err
	}
	attachments, err := h.service.ListByTicket(c.Request().Context(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(attachments))
}
