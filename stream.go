package chatstream

import "context"

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving frames.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// Stream uses a pull-based iterator pattern. Cancellation flows through the
// context passed to Streamer.Stream().
//
// Next() returns the next semantic event, io.EOF on completion (explicit
// sentinel or source exhaustion), or a non-EOF error on transport, decode,
// or server-signaled failure. After a terminal state is reached no further
// events are produced.
//
// State() returns the current StreamState. Callers can use it to determine
// whether Result() reflects a partial or complete session.
//
// Result() returns the accumulated session result. Behavior by state:
//   - StreamStateComplete: complete result, nil error.
//   - StreamStateStreaming / StreamStateError / StreamStateClosed: partial
//     result (text dispatched so far), nil error. Partial progress is never
//     retracted.
//   - StreamStateNew: zero-value result, non-nil error.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Result() (Result, error)
	Close() error
}

// Streamer is a strategy pattern interface for backends that open a
// streaming chat session.
type Streamer interface {
	Stream(ctx context.Context, req StreamRequest) (Stream, error)
}
