package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dosmed/drug-ordering-system/internal/api/metrics"
	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/ports"
)

// UserHandler exposes account administration over HTTP.
type UserHandler struct {
	service ports.OrderingService
}

func NewUserHandler(service ports.OrderingService) *UserHandler {
	return &UserHandler{service: service}
}

// Provision creates an account from a plaintext password.
//
// @Summary      Provision a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      provisionUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Provision(c echo.Context) error {
	var req provisionUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	user := domain.NewUserBuilder().
		Username(req.Username).
		FirstName(req.FirstName).
		LastName(req.LastName).
		Role(role).
		Email(req.Email).
		Build()

	existing, err := h.service.ProvisionUser(c.Request().Context(), user, req.Password)
	if err != nil {
		return err
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Import creates an account whose hash and salt were precomputed.
//
// @Summary      Import a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      importUserRequest  true  "Account with precomputed credentials"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/import [post]
func (h *UserHandler) Import(c echo.Context) error {
	var req importUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	user := domain.NewUserBuilder().
		Username(req.Username).
		PasswordHash(req.PasswordHash).
		Salt(req.Salt).
		FirstName(req.FirstName).
		LastName(req.LastName).
		Role(role).
		Email(req.Email).
		NextPasswordChange(req.NextPasswordChange).
		Build()

	existing, err := h.service.ImportUser(c.Request().Context(), user)
	if err != nil {
		return err
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update replaces the stored record for a user id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Replacement record"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	user := domain.NewUserBuilder().
		ID(id).
		Username(req.Username).
		PasswordHash(req.PasswordHash).
		Salt(req.Salt).
		FirstName(req.FirstName).
		LastName(req.LastName).
		Role(role).
		Email(req.Email).
		NextPasswordChange(req.NextPasswordChange).
		Build()

	if !h.service.UpdateUser(c.Request().Context(), user) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword rotates the caller's own password.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "User id"
// @Param        body  body  changePasswordRequest  true  "Old and new password"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/{id}/password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !h.service.ChangePassword(c.Request().Context(), id, req.OldPassword, req.NewPassword) {
		metrics.PasswordChangesTotal.WithLabelValues("rejected").Inc()
		// Deliberately vague: unknown id and wrong old password look alike.
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "password change rejected"})
	}

	metrics.PasswordChangesTotal.WithLabelValues("changed").Inc()
	return c.NoContent(http.StatusNoContent)
}
