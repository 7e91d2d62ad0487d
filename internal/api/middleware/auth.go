package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/plataforma/auth-backend/internal/api/metrics"
	"github.com/plataforma/auth-backend/internal/core/domain"
	"github.com/plataforma/auth-backend/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxEmail = "email"
	CtxRole  = "role"
)

// Auth validates the bearer token and injects the verified claims into the
// echo context. The role in the token reflects issuance time; it is not
// re-checked against the store here.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()

			c.Set(CtxEmail, claims.Subject)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}

func verifyResult(err error) string {
	if errors.Is(err, domain.ErrTokenExpired) {
		return "expired"
	}
	return "invalid"
}
