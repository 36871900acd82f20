package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/api/middleware"
	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was registered without it.
func ctxClaims(c echo.Context) (*ports.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.UserID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.Validationf("invalid %s", name)
	}
	return uint(id), nil
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	return c.Validate(req)
}
