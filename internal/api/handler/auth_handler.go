package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/dosmed/drug-ordering-system/internal/api/metrics"
	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/ports"
)

const tokenTTL = 24 * time.Hour

// AuthHandler exposes login and logout over HTTP. A successful login
// mints an HS256 JWT whose jti doubles as the session handle held by the
// registry.
type AuthHandler struct {
	service   ports.OrderingService
	jwtSecret string
}

func NewAuthHandler(service ports.OrderingService, jwtSecret string) *AuthHandler {
	return &AuthHandler{service: service, jwtSecret: jwtSecret}
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	handle := newSessionHandle()
	user, err := h.service.Login(c.Request().Context(), req.Username, req.Password, handle)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyLoggedIn) {
			metrics.LoginsTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	token, err := h.mintToken(user, handle)
	if err != nil {
		// The session is live but unusable without a token; roll it back.
		h.service.Logout(c.Request().Context(), user.Username)
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: toUserResponse(user)})
}

// Logout drops the caller's session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	username, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	h.service.Logout(c.Request().Context(), username)
	metrics.SessionsActive.Dec()
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) mintToken(user *domain.User, handle string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     user.Role.String(),
		"uid":      user.ID,
		"jti":      handle,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
}

// newSessionHandle returns an opaque random identifier. The registry
// never interprets it; it only needs to be unique per login.
func newSessionHandle() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
