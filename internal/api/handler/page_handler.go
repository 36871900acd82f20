package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Page identifiers served to the front end.
const (
	PageDashboard = "dashboard"
	PageLogin     = "login"
	PageRegister  = "register"
	PageSpaces    = "spaces"
	PageBookings  = "bookings"
	PageTickets   = "tickets"
)

// Page returns a handler that names the page the client should render.
func Page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, pageView{Page: name})
	}
}
