package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskbox/internal/auth"
	apperrors "taskbox/internal/errors"
	"taskbox/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ForgetRequest represents a forgot-password request.
type ForgetRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
}

// ResetRequest represents a password-reset request. UserID is optional; when
// present it must match the authenticated subject.
type ResetRequest struct {
	Password string `json:"password" validate:"required,min=6"`
	UserID   string `json:"userId"`
}

// AuthResponse is the envelope shared by login, registration and
// forgot-password responses.
type AuthResponse struct {
	Valid   bool   `json:"valid"`
	UserID  string `json:"userId,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// ResetResponse is the password-reset envelope.
type ResetResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Login godoc
// @Summary Log in and email a confirmation link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} AuthResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, AuthResponse{Valid: false})
		case errors.Is(err, apperrors.ErrEmailDelivery):
			return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Valid:   true,
		UserID:  user.ID.String(),
		Token:   token,
		Message: "Please check the mfa link in your email",
	})
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} AuthResponse
// @Failure 409 {object} AuthResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			return c.JSON(http.StatusConflict, AuthResponse{Valid: false})
		}
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Valid:  true,
		UserID: user.ID.String(),
		Token:  token,
	})
}

// Forget godoc
// @Summary Email a password-reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgetRequest true "Account details"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /forget [post]
func (h *AuthHandler) Forget(c echo.Context) error {
	var req ForgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.ForgotPassword(c.Request().Context(), req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDetailsMismatch):
			return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{Message: "please fill correct details"})
		case errors.Is(err, apperrors.ErrEmailDelivery):
			return c.JSON(http.StatusInternalServerError, apperrors.MessageResponse{Message: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Valid:   true,
		UserID:  user.ID.String(),
		Token:   token,
		Message: "Please check the verification link in your email",
	})
}

// Reset godoc
// @Summary Reset the authenticated user's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ResetRequest true "New password"
// @Success 200 {object} ResetResponse
// @Failure 403 {object} errors.MessageResponse
// @Failure 404 {object} ResetResponse
// @Router /reset [post]
func (h *AuthHandler) Reset(c echo.Context) error {
	var req ResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subject := auth.SubjectID(c)
	if req.UserID != "" && req.UserID != subject {
		return c.JSON(http.StatusForbidden, apperrors.MessageResponse{Message: "user mismatch"})
	}

	if err := h.authService.ResetPassword(c.Request().Context(), subject, req.Password); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, ResetResponse{
				Valid:   false,
				Message: "please use verification link to reset password",
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, ResetResponse{
		Valid:   true,
		Message: "password reset successfully",
	})
}
