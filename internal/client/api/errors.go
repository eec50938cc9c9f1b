package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNetwork    = errors.New("network error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrPermission = errors.New("permission denied")
	ErrServer     = errors.New("server error")
	ErrRequest    = errors.New("request failed")
)

const (
	msgNetwork        = "Network error. Please check your connection."
	msgInvalidData    = "Invalid data provided"
	msgDuplicateItem  = "An SCP with this item number already exists"
	msgPermission     = "You don't have permission to perform this action"
	msgServer         = "Server error occurred. Please try again later"
	msgDeleteNotFound = "SCP entry not found or already deleted"
	msgNotFound       = "SCP not found"
	msgInvalidFormat  = "invalid data format"
	msgSignFailed     = "failed to generate access URL"
	msgImageExists    = "An image with this name already exists"
	msgBadSlot        = "server returned an invalid upload slot"
)

// Error is the single error type returned by Client.
type Error struct {
	// Kind is one of the Err* sentinels.
	Kind error
	// Status is the HTTP status that produced the error, 0 when none did.
	Status  int
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func networkError(cause error) *Error {
	return &Error{Kind: ErrNetwork, Message: msgNetwork, Err: cause}
}

// writeFailure classifies a non-2xx answer to a write request. A message
// from the response body wins over the status table.
func writeFailure(status int, body []byte, notFoundMsg string) *Error {
	e := &Error{Status: status}

	switch {
	case status == http.StatusBadRequest:
		e.Kind, e.Message = ErrValidation, msgInvalidData
	case status == http.StatusNotFound:
		e.Kind, e.Message = ErrNotFound, notFoundMsg
	case status == http.StatusConflict:
		e.Kind, e.Message = ErrConflict, msgDuplicateItem
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind, e.Message = ErrPermission, msgPermission
	case status >= http.StatusInternalServerError:
		e.Kind, e.Message = ErrServer, msgServer
	default:
		e.Kind, e.Message = ErrRequest, fmt.Sprintf("Request failed: %d", status)
	}

	if msg := bodyMessage(body); msg != "" {
		e.Message = msg
	}
	return e
}

// readFailure classifies a non-2xx answer to a read request.
func readFailure(status int) *Error {
	switch {
	case status == http.StatusNotFound:
		return &Error{Kind: ErrNotFound, Status: status, Message: msgNotFound}
	case status >= http.StatusInternalServerError:
		return &Error{Kind: ErrServer, Status: status, Message: msgServer}
	default:
		return &Error{Kind: ErrRequest, Status: status, Message: fmt.Sprintf("Request failed: %d", status)}
	}
}
