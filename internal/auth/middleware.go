package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// UserIDContextKey is where the gate stores the verified subject id.
const UserIDContextKey = "userID"

// GateConfig returns the echo-jwt configuration guarding protected routes.
//
// A missing Authorization header yields 401 "not authenticated user"; any
// extraction or verification failure yields 401 "authentication failed". The
// error handler writes the response and returns, so a rejected request never
// reaches the handler chain. On success the userId claim is copied into the
// request context under UserIDContextKey.
func GateConfig(secret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			if claims, ok := token.Claims.(*Claims); ok {
				c.Set(UserIDContextKey, claims.UserID)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "not authenticated user"})
			}
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication failed"})
		},
	}
}

// SubjectID returns the verified user id stored by the gate.
func SubjectID(c echo.Context) string {
	id, _ := c.Get(UserIDContextKey).(string)
	return id
}
