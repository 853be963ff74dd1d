package repositories

import (
	"errors"
)

var (
	ErrCarNotFound  = errors.New("car not found")
	ErrLeadNotFound = errors.New("lead not found")
)

// ValidationError marks a rejected payload (missing required field, bad
// status value). Route handlers map it to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
