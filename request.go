package chatstream

import "fmt"

// StreamRequest is the immutable input to one streaming session.
// The backend uses its own defaults when optional fields are zero.
type StreamRequest struct {
	Message        string
	ConversationID string            // empty = start a new conversation
	SkillHint      string            // optional routing hint, backend-specific
	Context        map[string]string // optional opaque context passed to the backend
}

// Validate checks universal constraints on StreamRequest.
// Backend implementations may apply additional validation.
func (r StreamRequest) Validate() error {
	if r.Message == "" {
		return fmt.Errorf("message must not be empty: %w", ErrValidation)
	}
	return nil
}
