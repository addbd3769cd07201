package sse

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/fwojciec/chatstream"
	"github.com/fwojciec/chatstream/frame"
)

const readChunkSize = 4096

// Interface compliance check.
var _ chatstream.Stream = (*stream)(nil)

// stream implements [chatstream.Stream] by reading raw chunks from the
// response body, decoding them incrementally, splitting on line boundaries,
// and classifying each complete frame. All state is confined to one session;
// nothing survives past Close or a terminal state.
type stream struct {
	body      io.ReadCloser
	ctx       context.Context
	logger    *log.Logger
	dec       frame.Decoder
	split     *frame.Splitter
	readBuf   []byte
	pending   []chatstream.Event // classified, not yet delivered
	state     chatstream.StreamState
	result    chatstream.Result
	err       error // terminal error, if any
	sentinel  bool  // explicit [DONE] observed
	exhausted bool  // body returned io.EOF
}

func newStream(ctx context.Context, body io.ReadCloser, logger *log.Logger, maxLineBytes int) *stream {
	return &stream{
		body:    body,
		ctx:     ctx,
		logger:  logger,
		split:   frame.NewSplitter(maxLineBytes),
		readBuf: make([]byte, readChunkSize),
		state:   chatstream.StreamStateNew,
	}
}

// Next returns the next semantic event. It returns io.EOF when the session
// completes, via the explicit sentinel or by source exhaustion. Processing
// is strictly sequential: each chunk is fully decoded, parsed, and handed
// out before the next chunk is read.
func (s *stream) Next() (chatstream.Event, error) {
	switch s.state {
	case chatstream.StreamStateComplete:
		return nil, io.EOF
	case chatstream.StreamStateError:
		return nil, s.err
	case chatstream.StreamStateClosed:
		return nil, fmt.Errorf("sse: %w", chatstream.ErrStreamClosed)
	}

	for {
		if len(s.pending) > 0 {
			evt := s.pending[0]
			s.pending = s.pending[1:]
			return s.deliver(evt)
		}

		if s.sentinel {
			s.logger.Debug("completion sentinel received")
			s.complete()
			return nil, io.EOF
		}
		if s.exhausted {
			s.logger.Debug("source exhausted without sentinel")
			s.complete()
			return nil, io.EOF
		}

		if err := s.ctx.Err(); err != nil {
			s.terminate(err)
			return nil, s.err
		}

		n, err := s.body.Read(s.readBuf)
		if n > 0 {
			s.state = chatstream.StreamStateStreaming
			if perr := s.ingest(s.readBuf[:n]); perr != nil {
				s.terminate(perr)
				return nil, s.err
			}
		}
		switch {
		case err == io.EOF:
			s.exhausted = true
			if perr := s.finishInput(); perr != nil {
				s.terminate(perr)
				return nil, s.err
			}
		case err != nil:
			s.terminate(fmt.Errorf("sse: read: %w", err))
			return nil, s.err
		}
	}
}

// State returns the current stream state.
func (s *stream) State() chatstream.StreamState {
	return s.state
}

// Result returns the accumulated session result: the full text received so
// far and the most recent conversation ID.
func (s *stream) Result() (chatstream.Result, error) {
	if s.state == chatstream.StreamStateNew {
		return chatstream.Result{}, fmt.Errorf("sse: %w", chatstream.ErrStreamNotReady)
	}
	return s.result, nil
}

// Close closes the underlying response body. Closing before a terminal
// state aborts the session; no further events are produced.
func (s *stream) Close() error {
	if s.state != chatstream.StreamStateComplete && s.state != chatstream.StreamStateError {
		s.state = chatstream.StreamStateClosed
		s.pending = nil
	}
	return s.body.Close()
}

// ingest decodes one raw chunk and queues the events of every complete line
// it produced. Frames after the completion sentinel are not parsed.
func (s *stream) ingest(chunk []byte) error {
	text, err := s.dec.Decode(chunk)
	if err != nil {
		return err
	}
	lines, ferr := s.split.Feed(text)
	for _, line := range lines {
		if stop := s.processLine(line); stop {
			return nil
		}
	}
	return ferr
}

// finishInput flushes the decoder and splitter once the byte source is
// exhausted. A trailing unterminated line is parsed as a final frame so its
// content is never dropped.
func (s *stream) finishInput() error {
	if s.sentinel {
		return nil
	}
	if err := s.dec.Flush(); err != nil {
		return err
	}
	if rest := s.split.Flush(); rest != "" {
		s.processLine(rest)
	}
	return nil
}

// processLine classifies one complete line and queues its event, if any.
// It returns true when processing of the current input must stop: on the
// completion sentinel and on a server-signaled error frame.
func (s *stream) processLine(line string) (stop bool) {
	payload, ok := framePayload(line)
	if !ok || payload == "" {
		return false
	}
	if payload == doneSentinel {
		s.sentinel = true
		return true
	}
	evt := classify(payload)
	if evt == nil {
		return false
	}
	if raw, isRaw := evt.(chatstream.EventRawText); isRaw {
		s.logger.Debug("non-JSON payload treated as token", "bytes", len(raw.Text))
	}
	s.pending = append(s.pending, evt)
	_, isErr := evt.(chatstream.EventError)
	return isErr
}

// deliver applies an event's accumulator mutation and hands it to the
// caller. Text is append-only in frame-arrival order; a server error frame
// is delivered once and makes the session terminal.
func (s *stream) deliver(evt chatstream.Event) (chatstream.Event, error) {
	s.state = chatstream.StreamStateStreaming
	switch e := evt.(type) {
	case chatstream.EventToken:
		s.result.Response += e.Text
	case chatstream.EventRawText:
		s.result.Response += e.Text
	case chatstream.EventMetadata:
		s.result.ConversationID = e.ConversationID
	case chatstream.EventError:
		s.err = &chatstream.ProtocolError{Message: e.Message}
		s.state = chatstream.StreamStateError
		s.pending = nil
	}
	return evt, nil
}

// complete transitions to the successful terminal state.
func (s *stream) complete() {
	s.state = chatstream.StreamStateComplete
	s.pending = nil
}

// terminate records a terminal error. Context cancellation takes precedence
// so callers can distinguish an aborted session from a failed one.
func (s *stream) terminate(err error) {
	s.state = chatstream.StreamStateError
	if cerr := s.ctx.Err(); cerr != nil {
		s.err = fmt.Errorf("sse: %w", cerr)
		return
	}
	s.err = err
}
