package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindStoreFailure    Kind = "store_failure"
	KindUnauthorized    Kind = "unauthorized"
	KindTooManyRequests Kind = "too_many_requests"
)

type Exception struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Exception) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

func InvalidInput(message string) *Exception {
	return &Exception{Kind: KindInvalidInput, Message: message}
}

// StoreFailure wraps an unexpected persistence or directory error. The cause
// is kept for logging but never rendered to the caller.
func StoreFailure(err error) *Exception {
	return &Exception{Kind: KindStoreFailure, Message: "internal server error", Err: err}
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreFailure
}

func StatusCode(err error) int {
	var appErr *Exception
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to return to a caller.
func PublicMessage(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
