// Package mock provides test doubles for chatstream interfaces using
// function fields, plus a scripted stream for driving the dispatcher.
package mock

import (
	"context"
	"io"

	"github.com/fwojciec/chatstream"
)

// Interface compliance checks.
var (
	_ chatstream.Streamer = (*Streamer)(nil)
	_ chatstream.Stream   = (*Stream)(nil)
	_ chatstream.Stream   = (*ScriptedStream)(nil)
)

// Streamer is a test double for chatstream.Streamer.
// Set StreamFn before calling Stream.
type Streamer struct {
	StreamFn func(ctx context.Context, req chatstream.StreamRequest) (chatstream.Stream, error)
}

// Stream delegates to StreamFn.
func (s *Streamer) Stream(ctx context.Context, req chatstream.StreamRequest) (chatstream.Stream, error) {
	return s.StreamFn(ctx, req)
}

// Stream is a test double for chatstream.Stream.
// Set the function fields for the methods you need. NextFn and ResultFn
// panic when nil to catch missing setup. StateFn and CloseFn are nil-safe
// (zero value and no-op) because test code commonly calls defer
// stream.Close() and these methods rarely need custom behavior.
type Stream struct {
	NextFn   func() (chatstream.Event, error)
	StateFn  func() chatstream.StreamState
	ResultFn func() (chatstream.Result, error)
	CloseFn  func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (chatstream.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() chatstream.StreamState {
	if s.StateFn == nil {
		return chatstream.StreamStateNew
	}
	return s.StateFn()
}

// Result delegates to ResultFn.
func (s *Stream) Result() (chatstream.Result, error) {
	return s.ResultFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// ScriptedStream replays a fixed sequence of events, accumulating token
// text the way a real session does, then ends with io.EOF or with Err when
// set. It implements just enough of the session accumulator to exercise
// dispatcher and completion behavior without a server.
type ScriptedStream struct {
	Events []chatstream.Event
	Err    error // returned after the events instead of io.EOF, when set

	pos    int
	state  chatstream.StreamState
	result chatstream.Result
	closed bool
}

// Next replays the next scripted event.
func (s *ScriptedStream) Next() (chatstream.Event, error) {
	if s.closed {
		return nil, chatstream.ErrStreamClosed
	}
	if s.pos >= len(s.Events) {
		if s.Err != nil {
			s.state = chatstream.StreamStateError
			return nil, s.Err
		}
		s.state = chatstream.StreamStateComplete
		return nil, io.EOF
	}
	evt := s.Events[s.pos]
	s.pos++
	s.state = chatstream.StreamStateStreaming
	switch e := evt.(type) {
	case chatstream.EventToken:
		s.result.Response += e.Text
	case chatstream.EventRawText:
		s.result.Response += e.Text
	case chatstream.EventMetadata:
		s.result.ConversationID = e.ConversationID
	case chatstream.EventError:
		s.state = chatstream.StreamStateError
	}
	return evt, nil
}

// State returns the scripted stream's state.
func (s *ScriptedStream) State() chatstream.StreamState {
	return s.state
}

// Result returns the accumulated result.
func (s *ScriptedStream) Result() (chatstream.Result, error) {
	if s.state == chatstream.StreamStateNew {
		return chatstream.Result{}, chatstream.ErrStreamNotReady
	}
	return s.result, nil
}

// Close marks the stream closed.
func (s *ScriptedStream) Close() error {
	s.closed = true
	if s.state != chatstream.StreamStateComplete && s.state != chatstream.StreamStateError {
		s.state = chatstream.StreamStateClosed
	}
	return nil
}
