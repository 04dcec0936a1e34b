package codec

import "encoding/binary"

// Enum is a closed set of u32 discriminator values.
type Enum interface {
	~uint32
	Valid() bool
}

// ReadEnum reads a u32 tag and checks it against the closed set of E. There is
// no fallback arm: an unlisted value fails with ErrUnknownVariantTag.
func ReadEnum[E Enum](r *Reader, field string) E {
	start := r.off
	v := r.U32()
	if r.err != nil {
		return 0
	}
	e := E(v)
	if !e.Valid() {
		r.Fail(&DecodeError{
			Kind:   ErrUnknownVariantTag,
			Field:  r.fieldPath(field),
			Offset: start,
			Tag:    v,
		})
		return 0
	}
	return e
}

// WordPattern builds an n-word discriminator pattern from its leading words;
// the remaining words are zero.
func WordPattern(n int, lead ...uint32) string {
	b := make([]byte, 4*n)
	for i, w := range lead {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return string(b)
}

// ReadPattern reads size bytes and looks them up in table. Unlisted patterns
// fail with ErrUnknownVariantTag carrying the raw bytes.
func ReadPattern[V any](r *Reader, field string, size int, table map[string]V) V {
	var zero V
	start := r.off
	b := r.Bytes(size)
	if r.err != nil {
		return zero
	}
	v, ok := table[string(b)]
	if !ok {
		r.Fail(&DecodeError{
			Kind:   ErrUnknownVariantTag,
			Field:  r.fieldPath(field),
			Offset: start,
			Raw:    b,
		})
		return zero
	}
	return v
}
