package usecase

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every service. The HTTP layer maps each one
// to a status code, so services never deal in status codes directly.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("already exists")
)

// FieldErrors collects validation messages keyed by field name.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Fail carries a human-readable message for the response envelope while
// still unwrapping to one of the sentinel errors above.
type Fail struct {
	Kind    error
	Message string
	Fields  FieldErrors
}

func (f *Fail) Error() string { return f.Message }

func (f *Fail) Unwrap() error { return f.Kind }

// Failf builds a Fail with a formatted message.
func Failf(kind error, format string, args ...any) *Fail {
	return &Fail{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// FailFields builds a validation Fail carrying per-field messages.
func FailFields(message string, fields FieldErrors) *Fail {
	return &Fail{Kind: ErrInvalidInput, Message: message, Fields: fields}
}
