package sse

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fwojciec/chatstream"
)

// framePayload extracts the payload from one complete protocol line.
// Returns ok=false for blank lines and lines without the data prefix.
// The payload has the prefix and surrounding whitespace stripped; it may
// still be empty (a bare "data:" line), which carries no frame.
func framePayload(line string) (payload string, ok bool) {
	if !strings.HasPrefix(line, dataPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, dataPrefix)), true
}

// classify turns a non-sentinel, non-empty payload into a semantic event.
//
// JSON payloads dispatch on the "type" discriminator. An unknown type that
// still carries a "content" field is treated as a token for forward
// compatibility. A payload that is not valid JSON becomes a raw-fallback
// token so providers emitting plain-text frames keep the stream alive.
// Returns nil for valid JSON that maps to no event.
func classify(payload string) chatstream.Event {
	if !gjson.Valid(payload) {
		return chatstream.EventRawText{Text: payload}
	}

	doc := gjson.Parse(payload)
	switch doc.Get("type").String() {
	case "token":
		return chatstream.EventToken{Text: doc.Get("content").String()}
	case "tool_call":
		return chatstream.EventToolCall{
			Tool:       doc.Get("tool").String(),
			Descriptor: json.RawMessage(payload),
		}
	case "metadata":
		return chatstream.EventMetadata{ConversationID: doc.Get("conversationId").String()}
	case "error":
		return chatstream.EventError{Message: doc.Get("error").String()}
	default:
		if content := doc.Get("content"); content.Exists() {
			return chatstream.EventToken{Text: content.String()}
		}
		return nil
	}
}
