package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "taskbox/internal/errors"
	"taskbox/internal/mailer"
	"taskbox/internal/service"
)

// VerifyHandler handles the emailed confirmation links and sender-identity
// verification.
type VerifyHandler struct {
	authService   service.AuthService
	mailer        mailer.Mailer
	clientBaseURL string
}

// NewVerifyHandler creates a new verify handler. clientBaseURL is where
// confirmed users are redirected.
func NewVerifyHandler(authService service.AuthService, m mailer.Mailer, clientBaseURL string) *VerifyHandler {
	return &VerifyHandler{
		authService:   authService,
		mailer:        m,
		clientBaseURL: clientBaseURL,
	}
}

// VerifyIdentityRequest represents a sender-identity verification request.
type VerifyIdentityRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyIdentity godoc
// @Summary Start provider-side verification of a sender address
// @Tags verify
// @Accept json
// @Produce json
// @Param request body VerifyIdentityRequest true "Sender address"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Router /verify-email [post]
func (h *VerifyHandler) VerifyIdentity(c echo.Context) error {
	var req VerifyIdentityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.mailer.VerifyIdentity(c.Request().Context(), req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.MessageResponse{
			Message: "please fill correct email: " + err.Error(),
		})
	}

	return c.JSON(http.StatusOK, apperrors.MessageResponse{
		Message: "Please check the verification link in your email",
	})
}

// VerifyMFA godoc
// @Summary Complete a login confirmation link
// @Tags verify
// @Produce json
// @Param token query string true "Confirmation token"
// @Param userId query string false "User id"
// @Success 302
// @Failure 401 {object} errors.MessageResponse
// @Router /verify-mfa [get]
func (h *VerifyHandler) VerifyMFA(c echo.Context) error {
	token := c.QueryParam("token")
	subject, err := h.authService.ConfirmToken(token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apperrors.MessageResponse{
			Message: "unauthenticated account, please fill correct details",
		})
	}
	// The redirect carries the token's own subject, not the query's userId.
	return c.Redirect(http.StatusFound, fmt.Sprintf("%s?token=%s&userId=%s", h.clientBaseURL, token, subject))
}

// VerifyReset godoc
// @Summary Complete a password-reset link
// @Tags verify
// @Produce json
// @Param token query string true "Reset token"
// @Param user query string false "User id"
// @Success 302
// @Failure 401 {object} errors.MessageResponse
// @Router /verify-email [get]
func (h *VerifyHandler) VerifyReset(c echo.Context) error {
	token := c.QueryParam("token")
	subject, err := h.authService.ConfirmToken(token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apperrors.MessageResponse{
			Message: "unauthenticated account, please fill correct details",
		})
	}
	return c.Redirect(http.StatusFound, fmt.Sprintf("%s/reset?token=%s&userId=%s", h.clientBaseURL, token, subject))
}
