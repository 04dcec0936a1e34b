package codec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Decode failure kinds. Every fatal error returned by this package unwraps to
// exactly one of these.
var (
	ErrTruncatedInput          = errors.New("truncated input")
	ErrMagicMismatch           = errors.New("magic mismatch")
	ErrUnknownVariantTag       = errors.New("unknown variant tag")
	ErrStructuralInvariant     = errors.New("structural invariant violation")
	ErrUnexpectedEndOfSequence = errors.New("unexpected end of sequence")
	ErrRevisionMismatch        = errors.New("format revision mismatch")
)

// DecodeError describes where and why a decode failed.
type DecodeError struct {
	Kind   error
	Field  string
	Offset int64
	Tag    uint32 // raw discriminator, for ErrUnknownVariantTag on u32 tags
	Raw    []byte // raw bytes seen, for magic and pattern mismatches
	Detail string
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Field != "" {
		fmt.Fprintf(&b, " in %s", e.Field)
	}
	fmt.Fprintf(&b, " at offset %d", e.Offset)
	switch {
	case e.Raw != nil:
		fmt.Fprintf(&b, " (raw %s)", hex.EncodeToString(e.Raw))
	case errors.Is(e.Kind, ErrUnknownVariantTag):
		fmt.Fprintf(&b, " (tag %d)", e.Tag)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Kind }

// Invariant builds an ErrStructuralInvariant error at the reader's current
// offset. Schemas use it for post-decode cross-field checks.
func (r *Reader) Invariant(field, format string, args ...any) error {
	return &DecodeError{
		Kind:   ErrStructuralInvariant,
		Field:  field,
		Offset: r.off,
		Detail: fmt.Sprintf(format, args...),
	}
}

// RevisionMismatch builds an ErrRevisionMismatch error at the current offset.
func (r *Reader) RevisionMismatch(field, format string, args ...any) error {
	return &DecodeError{
		Kind:   ErrRevisionMismatch,
		Field:  field,
		Offset: r.off,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Kind returns the failure kind of err, or nil if err did not come from a
// decoder.
func Kind(err error) error {
	for _, k := range []error{
		ErrTruncatedInput,
		ErrMagicMismatch,
		ErrUnknownVariantTag,
		ErrStructuralInvariant,
		ErrUnexpectedEndOfSequence,
		ErrRevisionMismatch,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
