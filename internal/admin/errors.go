package admin

import "errors"

var (
	// ErrNotFound is returned when an admin account does not exist
	ErrNotFound = errors.New("admin not found")

	// ErrAlreadyExists is returned when the email is already registered
	ErrAlreadyExists = errors.New("admin already exists")

	// ErrInvalidCredentials is returned on a failed console login
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a console token fails verification
	ErrInvalidToken = errors.New("invalid or expired token")
)
