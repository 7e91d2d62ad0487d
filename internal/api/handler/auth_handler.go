package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plataforma/auth-backend/internal/api/metrics"
	"github.com/plataforma/auth-backend/internal/core/domain"
	"github.com/plataforma/auth-backend/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		status := http.StatusInternalServerError
		switch err {
		case domain.ErrEmailExists:
			status = http.StatusConflict
		case domain.ErrInvalidRole, domain.ErrInvalidCredentials:
			status = http.StatusBadRequest
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	metrics.UserMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout acknowledges the request. Tokens are stateless, so there is no
// server-side session to destroy; clients discard the token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "session closed"})
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPassword returns the same neutral acknowledgment whether or not the
// email exists, so account existence never leaks. No reset mail is sent.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]string
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "if the email exists, a reset link has been sent",
	})
}

// UpdateProfile applies a partial update to the authenticated user's own record.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	current, err := h.authService.CurrentUser(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
		}
		return err
	}

	updated, err := h.authService.UpdateProfile(c.Request().Context(), current.ID, ports.UserUpdateInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, updated)
}

type permissionResponse struct {
	HasPermission bool `json:"hasPermission"`
}

// Permission reports whether the authenticated user's role satisfies the
// required role passed as a query parameter.
//
// @Summary      Check a permission
// @Tags         auth
// @Produce      json
// @Param        role  query     string  true  "Required role"
// @Success      200   {object}  permissionResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/permission [get]
func (h *AuthHandler) Permission(c echo.Context) error {
	_, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	has, err := h.authService.CheckPermission(c.QueryParam("role"), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, permissionResponse{HasPermission: has})
}
