package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
	"github.com/dmitrijs2005/profilespaces/internal/common"
)

// ErrInvalidForm marks a FormError produced by local validation, before any
// request was sent.
var ErrInvalidForm = errors.New("invalid form")

// FormError carries field-level errors for a form submission, from local
// validation or from the server error envelope.
type FormError struct {
	Fields  validation.Errors
	Message string
	Err     error
}

func (e *FormError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if msg := e.Fields.First(); msg != "" {
		return msg
	}
	return e.Err.Error()
}

func (e *FormError) Unwrap() error { return e.Err }

// FieldsOf returns the field errors carried by err, or nil.
func FieldsOf(err error) validation.Errors {
	var fe *FormError
	if errors.As(err, &fe) {
		return fe.Fields
	}
	return nil
}

func invalid(errs validation.Errors) error {
	return &FormError{Fields: errs, Err: ErrInvalidForm}
}

// formError converts an API failure into the error returned to callers.
// Field errors and details become a FormError; 401 also matches
// common.ErrSessionExpired.
func formError(op string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return fmt.Errorf("%s: %w: %w", op, common.ErrSessionExpired, err)
	}
	if errors.Is(err, client.ErrUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}

	fields := client.FieldErrors(err)
	detail := client.Detail(err)
	if len(fields) == 0 && detail == "" {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &FormError{
		Fields:  validation.FromWire(fields),
		Message: detail,
		Err:     err,
	}
}
