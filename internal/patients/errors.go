package patients

import "errors"

var (
	// ErrNotFound is returned when a patient does not exist
	ErrNotFound = errors.New("patient not found")

	// ErrEmailTaken is returned when the email is already registered
	ErrEmailTaken = errors.New("email already registered")

	// ErrPhoneTaken is returned when the phone number is already registered
	ErrPhoneTaken = errors.New("phone number already registered")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries a user-facing message for one rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
