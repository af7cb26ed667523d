package handler

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskbox/internal/auth"
)

// MockMailer is a mock implementation of mailer.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func (m *MockMailer) VerifyIdentity(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

const (
	testClientBaseURL  = "http://localhost:3000"
	echoHeaderLocation = "Location"
)

func TestVerifyHandler_VerifyIdentity(t *testing.T) {
	t.Run("forwards to the provider", func(t *testing.T) {
		mockMailer := new(MockMailer)
		mockMailer.On("VerifyIdentity", mock.Anything, "sender@example.com").Return(nil)
		h := NewVerifyHandler(new(MockAuthService), mockMailer, testClientBaseURL)

		c, rec := newTestContext(http.MethodPost, "/verify-email", `{"email":"sender@example.com"}`)
		assert.NoError(t, h.VerifyIdentity(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "verification link")
		mockMailer.AssertExpectations(t)
	})

	t.Run("provider error is reported", func(t *testing.T) {
		mockMailer := new(MockMailer)
		mockMailer.On("VerifyIdentity", mock.Anything, "sender@example.com").
			Return(stderrors.New("identity rejected"))
		h := NewVerifyHandler(new(MockAuthService), mockMailer, testClientBaseURL)

		c, rec := newTestContext(http.MethodPost, "/verify-email", `{"email":"sender@example.com"}`)
		assert.NoError(t, h.VerifyIdentity(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "identity rejected")
	})
}

func TestVerifyHandler_VerifyMFA(t *testing.T) {
	t.Run("valid token redirects to the client", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ConfirmToken", "signed-token").Return("user-1", nil)
		h := NewVerifyHandler(mockSvc, new(MockMailer), testClientBaseURL)

		c, rec := newTestContext(http.MethodGet, "/verify-mfa?token=signed-token&userId=user-1", "")
		assert.NoError(t, h.VerifyMFA(c))

		assert.Equal(t, http.StatusFound, rec.Code)
		location := rec.Header().Get(echoHeaderLocation)
		assert.Contains(t, location, testClientBaseURL)
		assert.Contains(t, location, "token=signed-token")
		assert.Contains(t, location, "userId=user-1")
	})

	t.Run("redirect subject comes from the token claim", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ConfirmToken", "signed-token").Return("user-1", nil)
		h := NewVerifyHandler(mockSvc, new(MockMailer), testClientBaseURL)

		// query claims a different user; the claim wins
		c, rec := newTestContext(http.MethodGet, "/verify-mfa?token=signed-token&userId=user-2", "")
		assert.NoError(t, h.VerifyMFA(c))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Contains(t, rec.Header().Get(echoHeaderLocation), "userId=user-1")
	})

	t.Run("bad token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ConfirmToken", "garbage").Return("", auth.ErrTokenInvalid)
		h := NewVerifyHandler(mockSvc, new(MockMailer), testClientBaseURL)

		c, rec := newTestContext(http.MethodGet, "/verify-mfa?token=garbage", "")
		assert.NoError(t, h.VerifyMFA(c))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "unauthenticated account")
	})
}

func TestVerifyHandler_VerifyReset(t *testing.T) {
	t.Run("valid token redirects to the reset page", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ConfirmToken", "signed-token").Return("user-1", nil)
		h := NewVerifyHandler(mockSvc, new(MockMailer), testClientBaseURL)

		c, rec := newTestContext(http.MethodGet, "/verify-email?token=signed-token&user=user-1", "")
		assert.NoError(t, h.VerifyReset(c))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Contains(t, rec.Header().Get(echoHeaderLocation), testClientBaseURL+"/reset?token=signed-token")
	})

	t.Run("expired token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ConfirmToken", "stale-token").Return("", auth.ErrTokenExpired)
		h := NewVerifyHandler(mockSvc, new(MockMailer), testClientBaseURL)

		c, rec := newTestContext(http.MethodGet, "/verify-email?token=stale-token", "")
		assert.NoError(t, h.VerifyReset(c))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "unauthenticated account")
	})
}
