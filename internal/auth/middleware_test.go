package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const gateTestSecret = "test-secret"

func newGatedEcho(handlerCalled *bool) *echo.Echo {
	e := echo.New()
	secured := e.Group("", echojwt.WithConfig(GateConfig(gateTestSecret)))
	secured.GET("/protected", func(c echo.Context) error {
		*handlerCalled = true
		return c.String(http.StatusOK, SubjectID(c))
	})
	return e
}

func TestGate_RejectsUnauthenticated(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantMessage string
	}{
		{
			name:        "missing header",
			header:      "",
			wantMessage: "not authenticated user",
		},
		{
			name:        "malformed header",
			header:      "Token abc",
			wantMessage: "authentication failed",
		},
		{
			name:        "garbage token",
			header:      "Bearer garbage",
			wantMessage: "authentication failed",
		},
		{
			name: "token signed with wrong secret",
			header: func() string {
				token, _ := NewJWTService("wrong-secret").GenerateSessionToken("user-1")
				return "Bearer " + token
			}(),
			wantMessage: "authentication failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			e := newGatedEcho(&handlerCalled)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMessage)
			// rejected requests must never reach the handler
			assert.False(t, handlerCalled)
		})
	}
}

func TestGate_AcceptsValidToken(t *testing.T) {
	handlerCalled := false
	e := newGatedEcho(&handlerCalled)

	token, err := NewJWTService(gateTestSecret).GenerateSessionToken("user-9")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, handlerCalled)
	// the gate exposes the claim subject to the handler
	assert.Equal(t, "user-9", rec.Body.String())
}
