package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plataforma/auth-backend/internal/core/domain"
)

// RequireRole enforces a minimum role level using the role hierarchy, so any
// role at or above the minimum passes.
func RequireRole(minimum domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(domain.Role)
			if !domain.RoleSatisfies(minimum, role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
