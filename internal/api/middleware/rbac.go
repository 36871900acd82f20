package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/zerotrace/smart-facility/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth. Rejections
// return domain.ErrForbidden for the HTTP error handler to render as 403.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(domain.Role)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
