package chatstream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Callbacks is the consumer-facing callback surface for a streaming session.
// Any field may be nil; unset slots are no-ops, not errors.
//
// OnToken receives incremental reply text, including raw-fallback frames.
// OnToolCall receives mid-stream capability invocations.
// OnComplete fires exactly once per successful session, whether the server
// sent an explicit completion sentinel or the stream simply ended.
// OnError fires at most once, on transport, decode, or server-signaled
// failure. OnComplete and OnError are mutually exclusive.
type Callbacks struct {
	OnToken    func(text string)
	OnToolCall func(call EventToolCall)
	OnComplete func(result Result)
	OnError    func(message string)
}

func (cb Callbacks) token(text string) {
	if cb.OnToken != nil {
		cb.OnToken(text)
	}
}

func (cb Callbacks) toolCall(call EventToolCall) {
	if cb.OnToolCall != nil {
		cb.OnToolCall(call)
	}
}

func (cb Callbacks) complete(result Result) {
	if cb.OnComplete != nil {
		cb.OnComplete(result)
	}
}

func (cb Callbacks) fail(message string) {
	if cb.OnError != nil {
		cb.OnError(message)
	}
}

// StreamChat opens a streaming session with the given backend and drains it
// through the callbacks. It blocks until the session reaches a terminal
// state and returns the terminal error, if any.
//
// Exactly one of OnComplete and OnError fires per call, with one exception:
// when ctx is canceled no further callbacks fire at all and the partial
// result is discarded (consumers relying on partial text must have already
// received it via OnToken).
func StreamChat(ctx context.Context, backend Streamer, req StreamRequest, cb Callbacks) error {
	if err := req.Validate(); err != nil {
		cb.fail(err.Error())
		return err
	}

	stream, err := backend.Stream(ctx, req)
	if err != nil {
		cb.fail(errorMessage(err))
		return err
	}
	defer stream.Close()

	return Dispatch(stream, cb)
}

// Dispatch pulls events from an open stream and routes them to the
// callbacks in frame-arrival order, one callback invocation per event.
// It returns nil after firing OnComplete, or the terminal error after
// firing OnError. Cancellation of the stream's context fires no callback.
func Dispatch(s Stream, cb Callbacks) error {
	for {
		evt, err := s.Next()
		if err == io.EOF {
			result, rerr := s.Result()
			if rerr != nil {
				cb.fail(rerr.Error())
				return rerr
			}
			cb.complete(result)
			return nil
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			cb.fail(errorMessage(err))
			return err
		}

		switch e := evt.(type) {
		case EventToken:
			cb.token(e.Text)
		case EventRawText:
			cb.token(e.Text)
		case EventToolCall:
			cb.toolCall(e)
		case EventMetadata:
			// Accumulator-only; the conversation ID surfaces in Result.
		case EventError:
			cb.fail(e.Message)
			return &ProtocolError{Message: e.Message}
		default:
			return fmt.Errorf("chatstream: unknown event type %T", evt)
		}
	}
}

// errorMessage extracts the consumer-facing message from a terminal error,
// unwrapping the structured error types to their server-provided text.
func errorMessage(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Message
	}
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}
