package settings

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilespaces/internal/client/client"
	"github.com/dmitrijs2005/profilespaces/internal/client/validation"
)

// ErrorKind classifies a failed save.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindConflict       ErrorKind = "conflict"
	KindTransport      ErrorKind = "transport"
	KindSessionExpired ErrorKind = "session-expired"
	KindUnexpected     ErrorKind = "unexpected"
)

// ErrSaveInProgress is returned when a save of the same section is running.
var ErrSaveInProgress = errors.New("save already in progress")

// ErrNotLoaded is returned when notification preferences are edited or
// saved before the server has returned them.
var ErrNotLoaded = errors.New("notification settings are not loaded")

// SaveError reports why a section could not be saved. Fields holds the
// field errors that were written into the machine's error state.
type SaveError struct {
	Section Section
	Kind    ErrorKind
	Fields  validation.Errors
	Message string
	Err     error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %s: %s", e.Section, e.Kind, e.Message)
}

func (e *SaveError) Unwrap() error { return e.Err }

// KindOf returns the kind of a *SaveError, or "" for other errors.
func KindOf(err error) ErrorKind {
	var se *SaveError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// classify turns an API failure into a SaveError.
func classify(section Section, err error) *SaveError {
	se := &SaveError{Section: section, Err: err}

	switch {
	case errors.Is(err, client.ErrUnauthorized):
		se.Kind = KindSessionExpired
		se.Message = sessionExpiredMessage
		return se
	case errors.Is(err, client.ErrUnavailable):
		se.Kind = KindTransport
		se.Message = "Unable to reach the server. Check your connection and try again."
		return se
	}

	se.Fields = validation.FromWire(client.FieldErrors(err))
	detail := client.Detail(err)

	switch {
	case se.Fields[validation.FieldUsername] != "" || se.Fields[validation.FieldProfileURL] != "" || client.StatusCode(err) == 409:
		se.Kind = KindConflict
	case !se.Fields.Empty():
		se.Kind = KindValidation
	default:
		se.Kind = KindUnexpected
	}
	se.Message = summary(section, se.Fields, detail)
	return se
}
