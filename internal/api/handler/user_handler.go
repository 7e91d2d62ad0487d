package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/plataforma/auth-backend/internal/api/metrics"
	"github.com/plataforma/auth-backend/internal/core/domain"
	"github.com/plataforma/auth-backend/internal/core/ports"
)

// UserHandler exposes administrator-level user management and the dashboard
// aggregate. Role enforcement happens in the router middleware chain.
type UserHandler struct {
	userService ports.UserService
	authService ports.AuthService
}

func NewUserHandler(userService ports.UserService, authService ports.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// List returns every user record (password hashes never included).
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /api/dashboard/usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create registers a user on behalf of an administrator.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/dashboard/usuarios [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.userService.Create(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, user)
}

// Update applies a partial mutation to any user record.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "User id"
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/dashboard/usuarios/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.userService.Update(c.Request().Context(), id, ports.UserUpdateInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user record. Deleting the acting administrator's own
// account is rejected.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id  path      int  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/dashboard/usuarios/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	actor, err := h.authService.CurrentUser(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
		}
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), id, actor.ID); err != nil {
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

// Stats returns the dashboard aggregate: total users and counts per role.
//
// @Summary      Dashboard stats
// @Tags         users
// @Produce      json
// @Success      200  {object}  ports.DashboardStats
// @Router       /api/dashboard/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.userService.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
