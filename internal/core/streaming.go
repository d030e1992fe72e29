package core

// streaming.go prepares the raw input for the CSV reader.
//
// The export is saved from a spreadsheet, which brings the usual issues:
//
//   - a UTF-8 BOM (0xEF 0xBB 0xBF) at the start of the file
//   - occasional Windows-1252 saves instead of UTF-8
//
// NewInputReader applies the BOM strip and the decoding in the right order.

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Input encodings accepted by NewInputReader.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingAuto        = "auto"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodingError reports bytes that are not valid UTF-8.
type EncodingError struct {
	Offset int64 // byte offset after the BOM
	Line   int   // 1-based line of the offending byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: invalid UTF-8 at line %d (byte %d)", e.Line, e.Offset)
}

// NewBOMSkippingReader returns a reader that drops a leading UTF-8 BOM.
func NewBOMSkippingReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// UTF8Validator passes bytes through unchanged and fails the read as soon as
// an invalid UTF-8 sequence shows up. Sequences split across reads are
// carried over and checked with the next chunk.
type UTF8Validator struct {
	reader  io.Reader
	pending []byte
	offset  int64
	line    int
}

// NewUTF8Validator creates a strict UTF-8 validating reader.
func NewUTF8Validator(r io.Reader) *UTF8Validator {
	return &UTF8Validator{reader: r, line: 1}
}

// Read implements io.Reader.
func (v *UTF8Validator) Read(p []byte) (int, error) {
	n, err := v.reader.Read(p)
	if n > 0 {
		if verr := v.check(p[:n]); verr != nil {
			return 0, verr
		}
	}
	if err == io.EOF && len(v.pending) > 0 {
		return n, &EncodingError{Offset: v.offset, Line: v.line}
	}
	return n, err
}

func (v *UTF8Validator) check(chunk []byte) error {
	buf := make([]byte, 0, len(v.pending)+len(chunk))
	buf = append(buf, v.pending...)
	buf = append(buf, chunk...)

	i := 0
	for i < len(buf) {
		c := buf[i]
		if c < utf8.RuneSelf {
			if c == '\n' {
				v.line++
			}
			i++
			continue
		}
		if !utf8.FullRune(buf[i:]) {
			break
		}
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size == 1 {
			return &EncodingError{Offset: v.offset + int64(i), Line: v.line}
		}
		i += size
	}

	v.offset += int64(i)
	v.pending = append(v.pending[:0], buf[i:]...)
	return nil
}

// CountingReader tracks bytes read, for the run summary log.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// NewInputReader strips the BOM and decodes the input to UTF-8.
//
// The order matters:
//  1. BOM is stripped first (a Windows-1252 decoder would turn it into "ï»¿")
//  2. bytes are validated (utf-8) or decoded (windows-1252)
//
// For "auto" the whole input is buffered: valid UTF-8 passes through,
// anything else is decoded as Windows-1252.
func NewInputReader(r io.Reader, encoding string) (io.Reader, error) {
	stripped := NewBOMSkippingReader(r)

	switch strings.ToLower(encoding) {
	case "", EncodingUTF8:
		return NewUTF8Validator(stripped), nil
	case EncodingWindows1252:
		return transform.NewReader(stripped, charmap.Windows1252.NewDecoder()), nil
	case EncodingAuto:
		data, err := io.ReadAll(stripped)
		if err != nil {
			return nil, err
		}
		if utf8.Valid(data) {
			return bytes.NewReader(data), nil
		}
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("encoding error: windows-1252 fallback: %w", err)
		}
		return bytes.NewReader(decoded), nil
	default:
		return nil, fmt.Errorf("encoding error: unsupported input encoding %q", encoding)
	}
}
