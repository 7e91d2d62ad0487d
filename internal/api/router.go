package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plataforma/auth-backend/internal/api/handler"
	"github.com/plataforma/auth-backend/internal/api/middleware"
	"github.com/plataforma/auth-backend/internal/core/domain"
	"github.com/plataforma/auth-backend/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Role enforcement for the user-management routes lives here, in the
// middleware chain, so handlers stay free of authorization logic.
func NewRouter(
	authService ports.AuthService,
	userService ports.UserService,
	tokens ports.TokenService,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	requireAuth := middleware.Auth(tokens)
	requireAdmin := middleware.RequireRole(domain.RoleAdministrador)

	// --- Service identity and probes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "auth backend",
			"status":  "running",
		})
	})
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.PUT("/profile", authHandler.UpdateProfile, requireAuth)
	auth.GET("/permission", authHandler.Permission, requireAuth)

	// --- Dashboard routes ---
	dash := e.Group("/api/dashboard", requireAuth)
	dash.GET("/usuarios", userHandler.List, requireAdmin)
	dash.POST("/usuarios", userHandler.Create, requireAdmin)
	dash.PUT("/usuarios/:id", userHandler.Update, requireAdmin)
	dash.DELETE("/usuarios/:id", userHandler.Delete, requireAdmin)
	dash.GET("/stats", userHandler.Stats)

	return e
}
