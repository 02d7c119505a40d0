package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrorData is the JSON error envelope of the API: a detail string and/or
// a map of field errors.
type ErrorData struct {
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error is returned for every failed request. Network is set when no
// response was received; Status is 0 in that case.
type Error struct {
	Status  int
	Message string
	Data    ErrorData
	Network bool
}

func (e *Error) Error() string {
	if e.Network {
		return e.Message
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is lets errors.Is match the ErrUnavailable and ErrUnauthorized sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Network
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// FieldErrors returns the server field errors carried by err, if any.
func FieldErrors(err error) map[string]string {
	var apiErr *Error
	if errors.As(err, &apiErr) && len(apiErr.Data.Errors) > 0 {
		return apiErr.Data.Errors
	}
	return nil
}

// Detail returns the server detail message carried by err, if any.
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Data.Detail
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
