// Package chatstream defines the domain types for the chat streaming-response
// protocol client: the sealed [Event] union, the pull-based [Stream]
// interface, and the callback dispatcher that drives a stream to completion.
//
// Transport lives in subpackage sse; incremental decoding and line framing
// live in subpackage frame.
package chatstream

import "encoding/json"

// Event is a sealed interface representing one classified protocol frame.
// Events are purely semantic. Transport and decode failures come from
// Next()'s error return, not from events; the sole exception is [EventError],
// which carries a failure the server itself signaled in-band.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventToken carries an incremental slice of the reply's text.
type EventToken struct {
	Text string
}

func (EventToken) event() {}

// EventToolCall represents a mid-stream capability invocation. Descriptor is
// the frame's JSON payload passed through verbatim for side-channel handling.
type EventToolCall struct {
	Tool       string
	Descriptor json.RawMessage
}

func (EventToolCall) event() {}

// EventMetadata carries out-of-band session information. A later metadata
// frame may overwrite the conversation ID recorded by an earlier one.
type EventMetadata struct {
	ConversationID string
}

func (EventMetadata) event() {}

// EventError represents a server-signaled, in-band error frame.
// It terminates the session.
type EventError struct {
	Message string
}

func (EventError) event() {}

// EventRawText is the fallback for a frame whose payload is not valid JSON.
// The raw payload string is treated as token content so one malformed frame
// never aborts the stream. Dispatchers handle it exactly like [EventToken].
type EventRawText struct {
	Text string
}

func (EventRawText) event() {}

// Interface compliance checks.
var (
	_ Event = EventToken{}
	_ Event = EventToolCall{}
	_ Event = EventMetadata{}
	_ Event = EventError{}
	_ Event = EventRawText{}
)
