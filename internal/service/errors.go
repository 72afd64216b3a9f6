package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; anything else surfaces as a generic 500.
var (
	// ErrNotFound covers both "does not exist" and "exists but hidden from
	// the caller" — the two are deliberately indistinguishable.
	ErrNotFound = errors.New("recipe not found")

	// ErrForbidden means the caller is authenticated but not the owner.
	ErrForbidden = errors.New("forbidden")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists with this email")
)

// ValidationError reports missing or invalid required fields
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// IsValidationError reports whether err is a field validation failure
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
