package frame_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/chatstream"
	"github.com/fwojciec/chatstream/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_CompleteLines(t *testing.T) {
	t.Parallel()
	s := frame.NewSplitter(0)
	lines, err := s.Feed("one\ntwo\nthree\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
	assert.Zero(t, s.Pending())
}

func TestSplitter_HoldsBackTrailingSegment(t *testing.T) {
	t.Parallel()
	s := frame.NewSplitter(0)

	lines, err := s.Feed("first\nsec")
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, lines)
	assert.Equal(t, 3, s.Pending())

	lines, err = s.Feed("ond\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, lines)
	assert.Zero(t, s.Pending())
}

func TestSplitter_LineSplitAcrossManyFeeds(t *testing.T) {
	t.Parallel()
	s := frame.NewSplitter(0)
	var lines []string
	for _, piece := range []string{"da", "ta: {\"a\"", ":1}", "\n"} {
		got, err := s.Feed(piece)
		require.NoError(t, err)
		lines = append(lines, got...)
	}
	assert.Equal(t, []string{`data: {"a":1}`}, lines)
}

func TestSplitter_CRLF(t *testing.T) {
	t.Parallel()
	s := frame.NewSplitter(0)
	lines, err := s.Feed("one\r\ntwo\r\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestSplitter_BlankLines(t *testing.T) {
	t.Parallel()
	s := frame.NewSplitter(0)
	lines, err := s.Feed("a\n\nb\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, lines)
}

func TestSplitter_FlushReturnsTrailingSegment(t *testing.T) {
	t.Parallel()
	s := frame.NewSplitter(0)
	_, err := s.Feed("complete\npartial")
	require.NoError(t, err)
	assert.Equal(t, "partial", s.Flush())
	assert.Zero(t, s.Pending())
	assert.Equal(t, "", s.Flush())
}

func TestSplitter_CapExceeded(t *testing.T) {
	t.Parallel()
	s := frame.NewSplitter(16)

	// Complete lines pass regardless of the leftover's fate.
	lines, err := s.Feed("ok\n" + strings.Repeat("x", 32))
	assert.Equal(t, []string{"ok"}, lines)
	assert.ErrorIs(t, err, chatstream.ErrLineTooLong)
}

func TestSplitter_CapNotTriggeredByTerminatedLine(t *testing.T) {
	t.Parallel()
	s := frame.NewSplitter(16)
	lines, err := s.Feed(strings.Repeat("x", 32) + "\n")
	require.NoError(t, err)
	assert.Equal(t, []string{strings.Repeat("x", 32)}, lines)
}
