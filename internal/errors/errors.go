package errors

import "errors"

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserAlreadyExists is returned when registering a username that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDetailsMismatch is returned when username and email do not identify one user.
	ErrDetailsMismatch = errors.New("username and email do not match")
	// ErrEmailDelivery wraps failures reported by the email provider.
	ErrEmailDelivery = errors.New("email delivery failed")
)

// MessageResponse is the plain message body used by several routes.
type MessageResponse struct {
	Message string `json:"message"`
}
