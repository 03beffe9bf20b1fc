package services

import (
	"errors"
	"net/http"

	eshika_errors "eshika-chat/pkg/errors"
)

// Error is a user-facing service error. Msg is safe to return to clients;
// Kind is one of the pkg/errors sentinels and drives the HTTP status.
type Error struct {
	Msg  string
	Kind error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrMissingFields      = &Error{Msg: "All fields are required", Kind: eshika_errors.ErrInvalidInput}
	ErrInvalidCredentials = &Error{Msg: "Invalid email or password", Kind: eshika_errors.ErrUnauthorized}
	ErrEmailTaken         = &Error{Msg: "Email already registered", Kind: eshika_errors.ErrAlreadyExists}
	ErrIncorrectPassword  = &Error{Msg: "Incorrect current password", Kind: eshika_errors.ErrUnauthorized}
	ErrUserNotFound       = &Error{Msg: "User not found", Kind: eshika_errors.ErrNotFound}
	ErrChatNotFound       = &Error{Msg: "Chat not found", Kind: eshika_errors.ErrNotFound}
	ErrInvalidImage       = &Error{Msg: "Image must be base64 data with a mime type", Kind: eshika_errors.ErrInvalidInput}
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, eshika_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, eshika_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, eshika_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, eshika_errors.ErrAlreadyExists), errors.Is(err, eshika_errors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, eshika_errors.ErrGatewayTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, eshika_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns err's text when it is a service Error and a generic
// message otherwise, so storage internals never reach clients.
func PublicMessage(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Msg
	}
	return "Internal server error"
}
