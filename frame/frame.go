// Package frame provides the transport-agnostic framing layer for streamed
// protocol text: a strict incremental UTF-8 [Decoder] that carries partial
// multi-byte sequences across chunk boundaries, and an incremental line
// [Splitter] that buffers decoded text and pops complete lines.
//
// Both types are deliberately independent of event classification so that
// chunk-boundary behavior can be tested on its own.
package frame

import "errors"

// ErrInvalidEncoding indicates a byte sequence that cannot be decoded as
// UTF-8. Decoding is strict: ill-formed input is an error, not a
// replacement character, because a corrupted frame must fail the session
// rather than silently alter its payload.
var ErrInvalidEncoding = errors.New("invalid UTF-8 byte sequence")
