package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminUndeletable   = errors.New("cannot delete admin users")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrUnauthorized       = errors.New("not authorized to perform this action")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
)

// ValidationError reports a rejected field value. It carries a message
// suitable for returning to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
