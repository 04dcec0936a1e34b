package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Option configures a Reader or Writer.
type Option func(*settings)

type settings struct {
	codePage encoding.Encoding
	logger   *slog.Logger
}

// WithCodePage sets the single-byte code page used for text fields
// (default ISO-8859-1).
func WithCodePage(cp encoding.Encoding) Option {
	return func(s *settings) {
		if cp != nil {
			s.codePage = cp
		}
	}
}

// WithLogger sets the logger that receives text diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		codePage: charmap.ISO8859_1,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Diagnostic records a non-fatal problem found while decoding.
type Diagnostic struct {
	Field  string
	Offset int64
	Raw    []byte
}

type frame struct {
	name  string
	index int
}

// Reader decodes little-endian records from a byte stream.
//
// Errors are sticky: after the first failure every read is a no-op returning
// zero values, and Err reports the failure. Callers decode a whole record and
// check Err once.
type Reader struct {
	br       *bufio.Reader
	off      int64
	err      error
	scratch  [4]byte
	path     []frame
	codePage encoding.Encoding
	logger   *slog.Logger
	diags    []Diagnostic
}

// NewReader wraps r for decoding. The Reader buffers r; it never closes it.
func NewReader(r io.Reader, opts ...Option) *Reader {
	s := newSettings(opts)
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 64*1024)
	}
	return &Reader{
		br:       br,
		codePage: s.codePage,
		logger:   s.logger,
	}
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.off }

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

// Fail records err unless an earlier error is already recorded.
func (r *Reader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Diagnostics returns the non-fatal problems recorded so far.
func (r *Reader) Diagnostics() []Diagnostic { return r.diags }

// Logger is the logger configured for this reader.
func (r *Reader) Logger() *slog.Logger { return r.logger }

// AtEOF reports whether the stream is exhausted. An I/O error other than EOF
// is recorded and reported as end of stream.
func (r *Reader) AtEOF() bool {
	if r.err != nil {
		return true
	}
	_, err := r.br.Peek(1)
	if err == nil {
		return false
	}
	if !errors.Is(err, io.EOF) {
		r.Fail(fmt.Errorf("peek at offset %d: %w", r.off, err))
	}
	return true
}

func (r *Reader) push(name string, index int) {
	r.path = append(r.path, frame{name: name, index: index})
}

func (r *Reader) pop() {
	r.path = r.path[:len(r.path)-1]
}

// fieldPath renders the current position in the record tree, with leaf
// appended when non-empty.
func (r *Reader) fieldPath(leaf string) string {
	var b strings.Builder
	for _, f := range r.path {
		if b.Len() > 0 && f.name != "" {
			b.WriteByte('.')
		}
		b.WriteString(f.name)
		if f.index >= 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(f.index))
			b.WriteByte(']')
		}
	}
	if leaf != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(leaf)
	}
	return b.String()
}

// fill reads exactly len(buf) bytes.
func (r *Reader) fill(buf []byte) bool {
	if r.err != nil {
		return false
	}
	start := r.off
	n, err := io.ReadFull(r.br, buf)
	r.off += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.Fail(&DecodeError{
				Kind:   ErrTruncatedInput,
				Field:  r.fieldPath(""),
				Offset: start,
				Detail: fmt.Sprintf("need %d bytes, have %d", len(buf), n),
			})
		} else {
			r.Fail(fmt.Errorf("read at offset %d: %w", start, err))
		}
		return false
	}
	return true
}

// U32 reads one unsigned 32-bit word.
func (r *Reader) U32() uint32 {
	if !r.fill(r.scratch[:]) {
		return 0
	}
	return binary.LittleEndian.Uint32(r.scratch[:])
}

// I32 reads one signed 32-bit word.
func (r *Reader) I32() int32 {
	return int32(r.U32())
}

// Words reads n unsigned words. It is used for opaque regions whose size is
// a known constant.
func (r *Reader) Words(n int) []uint32 {
	if n <= 0 || r.err != nil {
		return []uint32{}
	}
	buf := make([]byte, 4*n)
	if !r.fill(buf) {
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return out
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) []byte {
	if n < 0 || r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if !r.fill(buf) {
		return nil
	}
	return buf
}

// readPrefixed reads a u32 length and then that many bytes. The buffer grows
// with the data actually present, so a corrupt length cannot force a huge
// allocation.
func (r *Reader) readPrefixed() []byte {
	n := r.U32()
	if r.err != nil {
		return nil
	}
	start := r.off
	var buf bytes.Buffer
	got, err := io.CopyN(&buf, r.br, int64(n))
	r.off += got
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.Fail(&DecodeError{
				Kind:   ErrTruncatedInput,
				Field:  r.fieldPath(""),
				Offset: start,
				Detail: fmt.Sprintf("text needs %d bytes, have %d", n, got),
			})
		} else {
			r.Fail(fmt.Errorf("read text at offset %d: %w", start, err))
		}
		return nil
	}
	return buf.Bytes()
}

// Rest reads everything left in the stream.
func (r *Reader) Rest() []byte {
	if r.err != nil {
		return nil
	}
	start := r.off
	b, err := io.ReadAll(r.br)
	r.off += int64(len(b))
	if err != nil {
		r.Fail(fmt.Errorf("read to end at offset %d: %w", start, err))
		return nil
	}
	return b
}

// WordsFrom converts little-endian bytes to words. len(b) must be a multiple
// of four.
func WordsFrom(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return out
}
