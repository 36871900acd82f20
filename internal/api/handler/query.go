package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

// queryError turns a ValueBinder failure into a validation error naming the
// offending parameter.
func queryError(err error) error {
	if err == nil {
		return nil
	}
	var be *echo.BindingError
	if errors.As(err, &be) {
		return domain.Validationf("invalid query parameter %s", be.Field)
	}
	return domain.Validationf("invalid query parameters")
}
