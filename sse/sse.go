// Package sse implements [chatstream.Streamer] for the chat backend's
// server-sent-events dialect.
//
// It opens one streaming POST per session and reconstructs the body into
// typed [chatstream.Event] values behind the pull-based
// [chatstream.Stream] interface. Incoming bytes pass through a strict
// incremental UTF-8 decoder and a line splitter (package frame), so frames
// split across arbitrary network chunk boundaries, including splits inside
// multi-byte characters, reassemble exactly.
package sse

const (
	defaultChatPath = "/api/chat"

	// dataPrefix marks a line that carries a protocol frame; anything
	// else on the wire (blank separators, comments) is skipped.
	dataPrefix = "data:"

	// doneSentinel is the reserved payload signaling server-initiated
	// completion. Lines after it in the same input are not parsed.
	doneSentinel = "[DONE]"
)
