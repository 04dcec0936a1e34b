package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic is a length-prefixed ASCII literal framing a record, stored as a u32
// byte count followed by the literal.
type Magic string

// Bytes is the on-disk form of m, including its length prefix.
func (m Magic) Bytes() []byte {
	b := make([]byte, 4+len(m))
	binary.LittleEndian.PutUint32(b, uint32(len(m)))
	copy(b[4:], m)
	return b
}

// Expect reads the framing literal m and fails with ErrMagicMismatch if the
// bytes differ.
func (r *Reader) Expect(field string, m Magic) {
	start := r.off
	want := m.Bytes()
	got := r.Bytes(len(want))
	if r.err != nil {
		return
	}
	if !bytes.Equal(got, want) {
		r.Fail(&DecodeError{
			Kind:   ErrMagicMismatch,
			Field:  r.fieldPath(field),
			Offset: start,
			Raw:    got,
			Detail: fmt.Sprintf("want %q", string(m)),
		})
	}
}

// Dispatch reads one framing literal and returns the member of candidates it
// matches. Anything else fails with ErrMagicMismatch.
func (r *Reader) Dispatch(field string, candidates ...Magic) Magic {
	start := r.off
	n := r.U32()
	if r.err != nil {
		return ""
	}
	var lit []byte
	for _, m := range candidates {
		if int(n) != len(m) {
			continue
		}
		if lit == nil {
			lit = r.Bytes(int(n))
			if r.err != nil {
				return ""
			}
		}
		if string(lit) == string(m) {
			return m
		}
	}
	raw := binary.LittleEndian.AppendUint32(nil, n)
	r.Fail(&DecodeError{
		Kind:   ErrMagicMismatch,
		Field:  r.fieldPath(field),
		Offset: start,
		Raw:    append(raw, lit...),
		Detail: fmt.Sprintf("want one of %q", candidates),
	})
	return ""
}

// Magic writes the framing literal m.
func (w *Writer) Magic(m Magic) {
	w.Bytes(m.Bytes())
}
