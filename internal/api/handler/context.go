package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plataforma/auth-backend/internal/api/middleware"
	"github.com/plataforma/auth-backend/internal/core/domain"
)

// ctxIdentity extracts the claims injected by the Auth middleware and
// fast-fails before any service call: a non-empty email and role prove the
// middleware ran on this route.
func ctxIdentity(c echo.Context) (email string, role domain.Role, err error) {
	email, _ = c.Get(middleware.CtxEmail).(string)
	role, _ = c.Get(middleware.CtxRole).(domain.Role)
	if email == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, role, nil
}
