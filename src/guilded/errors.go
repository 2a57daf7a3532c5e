package guilded

import (
	"fmt"
	"time"
)

// AuthenticationError indicates that no usable token was available when a
// connection was attempted. It is fatal; the client does not retry.
type AuthenticationError struct {
	Message string
}

func (err AuthenticationError) Error() string {
	if err.Message == "" {
		return "authentication failed"
	}

	return err.Message
}

// IsAuthenticationError returns true if err is an AuthenticationError.
func IsAuthenticationError(err error) bool {
	_, ok := err.(AuthenticationError)
	return ok
}

// ConfigurationError indicates that the client was configured incorrectly,
// such as registering a handler with the wrong signature.
type ConfigurationError struct {
	Message string
}

func (err ConfigurationError) Error() string {
	return err.Message
}

// IsConfigurationError returns true if err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	_, ok := err.(ConfigurationError)
	return ok
}

// ConnectionTimeoutError indicates that the gateway handshake did not
// complete within the dial timeout.
type ConnectionTimeoutError struct {
	Timeout time.Duration
}

func (err ConnectionTimeoutError) Error() string {
	return fmt.Sprintf("gateway handshake did not complete within %s", err.Timeout)
}

// IsConnectionTimeout returns true if err is a ConnectionTimeoutError.
func IsConnectionTimeout(err error) bool {
	_, ok := err.(ConnectionTimeoutError)
	return ok
}

// AbnormalClosureError indicates that the gateway connection was closed
// unexpectedly by the remote end.
type AbnormalClosureError struct {
	// Code is the websocket close code, or zero if the connection failed
	// without a close frame.
	Code int
}

func (err AbnormalClosureError) Error() string {
	if err.Code == 0 {
		return "gateway connection closed abnormally"
	}

	return fmt.Sprintf("gateway connection closed abnormally with code %d", err.Code)
}

// IsAbnormalClosure returns true if err is an AbnormalClosureError.
func IsAbnormalClosure(err error) bool {
	_, ok := err.(AbnormalClosureError)
	return ok
}

// HTTPError indicates that a REST call returned a non-2xx response. It is
// always propagated to the caller of the operation that issued the request.
type HTTPError struct {
	Status int
	Body   string
}

func (err HTTPError) Error() string {
	return fmt.Sprintf("http request failed with status %d", err.Status)
}

// IsHTTPError returns true if err is an HTTPError.
func IsHTTPError(err error) bool {
	_, ok := err.(HTTPError)
	return ok
}

// IsNotFound returns true if err is an HTTPError with a 404 status.
func IsNotFound(err error) bool {
	e, ok := err.(HTTPError)
	return ok && e.Status == 404
}

// HandlerError describes a panic recovered from a user-registered event
// handler. It is passed to the client's error hook and never propagates out
// of the dispatch loop.
type HandlerError struct {
	// Event is the public event name whose handler failed.
	Event string

	// Reason is the recovered panic value.
	Reason interface{}
}

func (err HandlerError) Error() string {
	return fmt.Sprintf("handler for '%s' event panicked: %v", err.Event, err.Reason)
}

// IsHandlerError returns true if err is a HandlerError.
func IsHandlerError(err error) bool {
	_, ok := err.(HandlerError)
	return ok
}
