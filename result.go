package chatstream

// Result is the value delivered on successful completion of a session:
// the full accumulated reply text and the conversation identifier.
// ConversationID is empty when the server never sent a metadata frame.
type Result struct {
	Response       string
	ConversationID string
}
