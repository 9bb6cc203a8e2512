package service

import (
	"errors"
	"fmt"
)

// ErrBadRequest matches every client input failure via errors.Is.
var ErrBadRequest = errors.New("bad request")

// BadRequestError reports a request body that could not be used.
type BadRequestError struct {
	Reason string
	Err    error
}

func (e *BadRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *BadRequestError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrBadRequest) true.
func (e *BadRequestError) Is(target error) bool { return target == ErrBadRequest }

// MissingFieldError reports a required JSON field that was absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrBadRequest }
