package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/fwojciec/chatstream"
)

// Interface compliance check.
var _ chatstream.Streamer = (*Client)(nil)

// Client implements [chatstream.Streamer] against the chat backend.
// It performs exactly one POST per session and no internal retries;
// retry policy belongs to the caller.
type Client struct {
	baseURL      string
	chatPath     string
	httpClient   *http.Client
	headers      map[string]string
	logger       *log.Logger
	maxLineBytes int
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithChatPath overrides the default chat endpoint path.
func WithChatPath(path string) Option {
	return func(c *Client) { c.chatPath = path }
}

// WithHeader adds a header to every request, e.g. resolved auth context
// injected by the caller.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithLogger installs a debug logger. The default discards all output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMaxLineBytes caps how many bytes a single protocol line may buffer
// before the session fails. Non-positive values apply the frame package
// default.
func WithMaxLineBytes(n int) Option {
	return func(c *Client) { c.maxLineBytes = n }
}

// New creates a new [Client] for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		chatPath:   defaultChatPath,
		httpClient: http.DefaultClient,
		headers:    make(map[string]string),
		logger:     log.New(io.Discard),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream opens one streaming chat session. On a non-success status the
// response body is read best-effort for a server error message and the
// call fails with a [chatstream.TransportError]; no stream is returned.
func (c *Client) Stream(ctx context.Context, req chatstream.StreamRequest) (chatstream.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}

	body, err := buildRequestBody(req)
	if err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-Id", requestID)
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	c.logger.Debug("opening chat stream",
		"request_id", requestID,
		"conversation_id", req.ConversationID,
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sse: %w", &chatstream.TransportError{Message: err.Error()})
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, fmt.Errorf("sse: %w", parseHTTPError(resp))
	}

	return newStream(ctx, resp.Body, c.logger, c.maxLineBytes), nil
}

func buildRequestBody(req chatstream.StreamRequest) ([]byte, error) {
	return json.Marshal(apiRequest{
		Message:        req.Message,
		ConversationID: req.ConversationID,
		SkillHint:      req.SkillHint,
		Context:        req.Context,
	})
}

// apiRequest is the JSON body sent to the chat endpoint.
type apiRequest struct {
	Message        string            `json:"message"`
	ConversationID string            `json:"conversation_id,omitempty"`
	SkillHint      string            `json:"skill_hint,omitempty"`
	Context        map[string]string `json:"context,omitempty"`
}

// parseHTTPError builds a TransportError from a non-success response,
// preferring the server's structured error message over the status text.
func parseHTTPError(resp *http.Response) *chatstream.TransportError {
	te := &chatstream.TransportError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return te
	}
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		te.Message = msg
	}
	return te
}
