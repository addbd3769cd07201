package sse

// Exposed for external tests.
var (
	Classify     = classify
	FramePayload = framePayload
)
