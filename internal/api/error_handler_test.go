package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

func TestHTTPErrorHandler_MapsKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.ErrInvalidTimeRange, http.StatusBadRequest, "start time must be before end time"},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrBookingNotFound), http.StatusNotFound, "booking not found"},
		{"conflict", domain.ErrUserExists, http.StatusConflict, "email already in use"},
		{"credentials", domain.ErrBadCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"locked", domain.ErrAccountLocked, http.StatusUnauthorized, "account is disabled or locked"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"echo", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), http.StatusUnauthorized, "missing authorization header"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body.Error)
			}
		})
	}
}
