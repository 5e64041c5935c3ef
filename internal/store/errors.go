package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by mutating operations when no row matched the
// (id, user, allowed-status) filter. A missing row, a row owned by another
// user, and a row in a disallowed status are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// ValidationError rejects bad input before any store mutation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
