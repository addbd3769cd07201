package chatstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrStreamNotReady indicates Result() was called before Next().
	ErrStreamNotReady = errors.New("stream not ready: call Next() first")

	// ErrLineTooLong indicates a protocol line exceeded the configured
	// buffer cap before a terminator arrived.
	ErrLineTooLong = errors.New("protocol line exceeds buffer limit")
)

// ProtocolError reports an explicit error frame signaled by the server
// mid-stream. It terminates the session; completion never fires after it.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol: %s", e.Message)
}

// TransportError reports a failure that occurred before streaming began:
// a connection-level error or a non-success HTTP status. Message holds the
// server-provided error message when one could be extracted from the
// response body, otherwise the HTTP status text.
type TransportError struct {
	StatusCode int // 0 when the request never reached the server
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport: %s", e.Message)
	}
	return fmt.Sprintf("transport: HTTP %d: %s", e.StatusCode, e.Message)
}
