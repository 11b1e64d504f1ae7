package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-manager-api/internal/api/metrics"
	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// AuthHandler exposes registration, login, logout and the profile endpoint.
type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
	cookieMaxAge time.Duration
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool, cookieMaxAge time.Duration) *AuthHandler {
	if cookieMaxAge <= 0 {
		cookieMaxAge = 7 * 24 * time.Hour
	}
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
		cookieMaxAge: cookieMaxAge,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=5,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type userResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Token   string                 `json:"token,omitempty"`
	User    *domain.SafeProjection `json:"user,omitempty"`
}

type profileResponse struct {
	Success bool              `json:"success"`
	Tasks   *ports.TaskGroups `json:"tasks"`
	User    *domain.User      `json:"user"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, messageResponse{Success: false, Message: msg})
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/v1/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return fail(c, http.StatusConflict, "User already exists with this email")
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return fail(c, http.StatusInternalServerError, "Server error during registration")
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	safe := user.Safe()
	return c.JSON(http.StatusCreated, userResponse{
		Success: true,
		Message: "User registered successfully",
		User:    &safe,
	})
}

// Login authenticates a user and returns the session token both as an
// httpOnly cookie and in the response body.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/v1/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	tkn, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("user_not_found").Inc()
			return fail(c, http.StatusNotFound, "User not found Please register first")
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return fail(c, http.StatusInternalServerError, "Server error during login")
		}
	}

	c.SetCookie(h.sessionCookie(tkn, int(h.cookieMaxAge.Seconds())))

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	safe := user.Safe()
	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "Login successful",
		Token:   tkn,
		User:    &safe,
	})
}

// Logout clears the session cookie. The token itself stays valid until its
// embedded expiry; there is no server-side invalidation.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Logout successful"})
}

// UserDetails returns the authenticated user's profile with its tasks
// grouped by status.
func (h *AuthHandler) UserDetails(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	fresh, groups, err := h.authService.Profile(c.Request().Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Success: true,
		Tasks:   groups,
		User:    fresh,
	})
}

// sessionCookie builds the "token" cookie with the attributes the frontend
// relies on: cross-site usable (SameSite=None), httpOnly, Secure only in
// production.
func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     "token",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteNoneMode,
	}
}
