package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput matches every validation failure through errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError names the input that failed and the constraint it broke.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
