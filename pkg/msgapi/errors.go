package msgapi

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/courier/pkg/httpx"
)

// Error codes used in the "error" field of failure responses.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeConflict           = "conflict"
	ErrorCodeServerError        = "server_error"
)

// Error is the structured API error shape: an HTTP status plus a stable code
// and a human-readable message. It implements the error interface and is the
// single boundary that converts failures into response bodies.
type Error struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Code is the stable machine-readable error code.
	Code string `json:"error"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this Error to an HTTP response writer as JSON.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

var (
	// ErrInvalidRequest is returned for malformed bodies or payloads that
	// fail validation.
	ErrInvalidRequest = &Error{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required fields",
	}

	// ErrInvalidCredentials is the uniform login failure. It deliberately
	// does not say whether the username exists or the password was wrong.
	ErrInvalidCredentials = &Error{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "invalid username/password",
	}

	// ErrUnauthorized is returned when a route requires a signed-in user and
	// no identity is attached to the request.
	ErrUnauthorized = &Error{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "unauthorized, not logged in",
	}

	// ErrNotSignedIn is the RequireUser variant of the anonymous case. Same
	// status as ErrUnauthorized; only the message differs.
	ErrNotSignedIn = &Error{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "please sign in",
	}

	// ErrForbidden is returned when an identity is present but not entitled
	// to the resource. The status is 401, not 403: denial is uniform so a
	// probing client cannot tell "wrong user" from "not signed in".
	ErrForbidden = &Error{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeForbidden,
		Message:    "unauthorized",
	}

	// ErrNotFound is returned for a missing user or message.
	ErrNotFound = &Error{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "resource not found",
	}

	// ErrConflict is returned when a unique key already exists
	// (duplicate username at registration).
	ErrConflict = &Error{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "username already taken",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)
