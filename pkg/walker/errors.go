package walker

import (
	"errors"
	"fmt"
)

// Registration errors.
var (
	ErrUnknownKind         = errors.New("kind is not acceptable to the check")
	ErrMissingRequiredKind = errors.New("required kind is not configured")
	ErrMixedKinds          = errors.New("comment and syntax kinds cannot be mixed")
	ErrDuplicateCheck      = errors.New("check registered twice")
)

// RegistrationError reports why a check could not be registered.
type RegistrationError struct {
	Check string
	Err   error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register check %s: %v", e.Check, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
