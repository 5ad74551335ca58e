package backend

import (
	"errors"
	"fmt"
)

// TransportError means the request never produced a readable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx answer. Message is the body's message or error
// field when the backend sent one.
type HTTPError struct {
	Op      string
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// ApplicationError is a well-formed response carrying success=false.
type ApplicationError struct {
	Op      string
	Message string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

// UserMessage renders err the way it is shown to organizers.
func UserMessage(err error) string {
	var httpErr *HTTPError
	var appErr *ApplicationError
	var transportErr *TransportError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Error()
	case errors.As(err, &appErr):
		return appErr.Error()
	case errors.As(err, &transportErr):
		return transportErr.Err.Error()
	case err != nil:
		return err.Error()
	}
	return ""
}

// IsBackendError reports whether err came from talking to the backend.
func IsBackendError(err error) bool {
	var httpErr *HTTPError
	var appErr *ApplicationError
	var transportErr *TransportError
	return errors.As(err, &httpErr) || errors.As(err, &appErr) || errors.As(err, &transportErr)
}
