package frame

import (
	"fmt"
	"unicode/utf8"
)

// Decoder incrementally decodes a stream of UTF-8 bytes delivered in
// arbitrary chunks. A multi-byte code point split across chunks is carried
// over and emitted once its remaining bytes arrive, so decoding text split
// into N chunks and concatenating the outputs equals decoding the whole
// text at once.
//
// The zero value is ready to use. A Decoder is not safe for concurrent use.
type Decoder struct {
	pending [utf8.UTFMax]byte
	n       int
}

// Decode appends chunk to any carried bytes and returns the longest decodable
// prefix. A trailing incomplete multi-byte sequence is held back for the next
// call. Ill-formed input returns ErrInvalidEncoding.
func (d *Decoder) Decode(chunk []byte) (string, error) {
	buf := make([]byte, 0, d.n+len(chunk))
	buf = append(buf, d.pending[:d.n]...)
	buf = append(buf, chunk...)
	d.n = 0

	keep := len(buf)
	// Walk back over trailing continuation bytes to find the last rune
	// start; hold the tail back if that rune is still incomplete.
	for back := 1; back <= utf8.UTFMax && back <= len(buf); back++ {
		b := buf[len(buf)-back]
		if b < utf8.RuneSelf {
			break
		}
		if b&0xC0 == 0xC0 {
			if size := leadSize(b); size > back {
				keep = len(buf) - back
			}
			break
		}
		// 10xxxxxx continuation byte, keep walking.
	}

	if !utf8.Valid(buf[:keep]) {
		return "", fmt.Errorf("frame: %w", ErrInvalidEncoding)
	}

	d.n = copy(d.pending[:], buf[keep:])
	return string(buf[:keep]), nil
}

// Flush reports whether the decoder holds a partial sequence after the byte
// source is exhausted. A truncated code point at end of stream is ill-formed.
func (d *Decoder) Flush() error {
	if d.n > 0 {
		d.n = 0
		return fmt.Errorf("frame: truncated sequence at end of stream: %w", ErrInvalidEncoding)
	}
	return nil
}

// leadSize returns the encoded length implied by a UTF-8 lead byte, or -1
// for a byte that cannot start a sequence.
func leadSize(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return -1
	}
}
