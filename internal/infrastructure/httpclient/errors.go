package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Envelope codes with a meaning to the pipeline.
const (
	CodeOK              = 0
	CodeUnauthorized    = 401
	CodeInvalidEnvelope = -1
)

// User-visible messages.
const (
	MessageRequestFailed = "request failed"
	MessageTimeout       = "request timed out, please check the network"
	MessageUnreachable   = "unable to reach the server, please check the network"
	MessageCanceled      = "request canceled"
)

// ErrAuthExpired matches any RequestFailedError caused by an expired or
// missing session (envelope code 401 or HTTP 401).
var ErrAuthExpired = errors.New("authentication expired")

// RequestFailedError is a failure classified by the server: the backend was
// reached and answered, but not with success.
type RequestFailedError struct {
	Status  int // HTTP status
	Code    int // envelope code, or the HTTP status when no envelope came back
	Message string
}

func (e *RequestFailedError) Error() string {
	return e.Message
}

// AuthExpired reports whether the failure invalidates the session.
func (e *RequestFailedError) AuthExpired() bool {
	return e.Code == CodeUnauthorized || e.Status == http.StatusUnauthorized
}

// Is lets errors.Is(err, ErrAuthExpired) match 401 failures.
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrAuthExpired && e.AuthExpired()
}

// NetworkError means no response was received.
type NetworkError struct {
	Timeout bool
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// RequestConfigError means the request was never sent because the
// descriptor could not be turned into an HTTP request.
type RequestConfigError struct {
	Message string
	Cause   error
}

func (e *RequestConfigError) Error() string {
	return e.Message
}

func (e *RequestConfigError) Unwrap() error {
	return e.Cause
}

// classifyTransportError maps an error from http.Client.Do.
func classifyTransportError(err error) *NetworkError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &NetworkError{Timeout: true, Message: MessageTimeout, Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &NetworkError{Message: MessageCanceled, Cause: err}
	}
	return &NetworkError{Message: MessageUnreachable, Cause: err}
}

// outcome labels an error for metrics.
func outcome(err error) string {
	var (
		failed  *RequestFailedError
		netErr  *NetworkError
		confErr *RequestConfigError
	)
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrAuthExpired):
		return "auth_expired"
	case errors.As(err, &failed):
		return "request_failed"
	case errors.As(err, &netErr):
		if netErr.Timeout {
			return "timeout"
		}
		return "network_error"
	case errors.As(err, &confErr):
		return "config_error"
	default:
		return "error"
	}
}
