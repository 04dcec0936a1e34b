package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
)

// Writer encodes little-endian records. Like Reader, its error is sticky.
type Writer struct {
	bw       *bufio.Writer
	n        int64
	err      error
	scratch  [4]byte
	codePage encoding.Encoding
}

// NewWriter wraps w. Call Flush when done.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	s := newSettings(opts)
	return &Writer{
		bw:       bufio.NewWriterSize(w, 64*1024),
		codePage: s.codePage,
	}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// Fail records err unless an earlier error is already recorded.
func (w *Writer) Fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Len is the number of bytes written so far.
func (w *Writer) Len() int64 { return w.n }

// Flush flushes buffered output and returns the first error encountered.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		w.err = err
	}
	return w.err
}

// Bytes writes b verbatim.
func (w *Writer) Bytes(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.bw.Write(b)
	w.n += int64(n)
	w.Fail(err)
}

// U32 writes one unsigned word.
func (w *Writer) U32(v uint32) {
	binary.LittleEndian.PutUint32(w.scratch[:], v)
	w.Bytes(w.scratch[:])
}

// I32 writes one signed word.
func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

// Words writes each value as an unsigned word.
func (w *Writer) Words(vs []uint32) {
	for _, v := range vs {
		w.U32(v)
	}
}

// Text writes a length-prefixed text field. The prefix is always computed
// from the encoded content. Undecodable bytes are written back only while
// Value still holds the placeholder; any other Value is encoded.
func (w *Writer) Text(t Text) {
	if w.err != nil {
		return
	}
	raw := t.raw
	if raw == nil || t.Value != BadText {
		enc, err := w.codePage.NewEncoder().Bytes([]byte(t.Value))
		if err != nil {
			w.Fail(fmt.Errorf("encode text %q: %w", t.Value, err))
			return
		}
		raw = enc
	}
	w.U32(uint32(len(raw)))
	w.Bytes(raw)
}

// WriteList writes len(items) followed by each item.
func WriteList[T any](w *Writer, items []T, elem func(*Writer, T)) {
	w.U32(uint32(len(items)))
	for _, it := range items {
		elem(w, it)
	}
}
