package frame

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/chatstream"
)

// DefaultMaxLineBytes is the line-buffer cap applied when NewSplitter is
// given a non-positive limit. A server that never terminates a line would
// otherwise grow the buffer without bound.
const DefaultMaxLineBytes = 1 << 20

// Splitter is an incremental line splitter: feed it decoded text in
// arbitrary pieces and it pops complete newline-terminated lines, holding
// the trailing incomplete segment until more text (or Flush) arrives.
// Trailing carriage returns are stripped, so CRLF input behaves like LF.
//
// A Splitter is not safe for concurrent use.
type Splitter struct {
	buf []byte
	max int
}

// NewSplitter returns a Splitter whose held-back segment may grow to at
// most max bytes. Non-positive max applies DefaultMaxLineBytes.
func NewSplitter(max int) *Splitter {
	if max <= 0 {
		max = DefaultMaxLineBytes
	}
	return &Splitter{max: max}
}

// Feed appends text to the internal buffer and returns all complete lines
// it now contains, in order. Lines already popped are always returned, even
// when the leftover segment exceeds the cap and an error is reported.
func (s *Splitter) Feed(text string) ([]string, error) {
	s.buf = append(s.buf, text...)

	var lines []string
	for {
		idx := bytes.IndexByte(s.buf, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimSuffix(string(s.buf[:idx]), "\r")
		s.buf = s.buf[idx+1:]
		lines = append(lines, line)
	}

	if len(s.buf) > s.max {
		return lines, fmt.Errorf("frame: buffered %d bytes without a line terminator: %w", len(s.buf), chatstream.ErrLineTooLong)
	}
	return lines, nil
}

// Flush returns the held-back trailing segment (without a terminator) and
// resets the buffer. Callers use it at source exhaustion so a final
// unterminated line is never dropped.
func (s *Splitter) Flush() string {
	rest := strings.TrimSuffix(string(s.buf), "\r")
	s.buf = nil
	return rest
}

// Pending returns the number of buffered bytes awaiting a terminator.
func (s *Splitter) Pending() int {
	return len(s.buf)
}
