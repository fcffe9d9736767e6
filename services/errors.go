package services

import (
	"errors"
	"fmt"
)

// ErrNotFound marks missing users/pets/missions/trades. Handlers map it to
// 404; everything wrapped with %w keeps its context.
var ErrNotFound = errors.New("not found")

// ValidationError is a user-facing rejection: the intent was understood but
// not allowed (busy pet, insufficient balance, cooldown, ...). No state
// change happens when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError the way fmt.Errorf would.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a user-facing rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
