package codec

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// BadText replaces text whose bytes could not be decoded.
const BadText = "<bad conversion>"

// Text is a length-prefixed single-byte text field.
//
// When the stored bytes could not be decoded, Value is BadText and the
// original bytes are kept so the field can still be written back unchanged.
// Assigning a new Value replaces them on write.
type Text struct {
	Value string
	raw   []byte
}

// NewText returns a Text holding s.
func NewText(s string) Text { return Text{Value: s} }

func (t Text) String() string { return t.Value }

// Bad reports whether the text still holds bytes that could not be decoded.
func (t Text) Bad() bool { return t.raw != nil && t.Value == BadText }

// Equal compares two independently stored texts.
func (t Text) Equal(o Text) bool {
	return t.Value == o.Value && bytes.Equal(t.raw, o.raw)
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value)
}

// Text reads a length-prefixed text field. Undecodable content does not fail
// the read: the placeholder is returned and a diagnostic recorded.
func (r *Reader) Text() Text {
	start := r.off
	raw := r.readPrefixed()
	if r.err != nil {
		return Text{}
	}
	out, err := r.codePage.NewDecoder().Bytes(raw)
	if err == nil && !strings.ContainsRune(string(out), utf8.RuneError) {
		return Text{Value: string(out)}
	}
	if raw == nil {
		raw = []byte{}
	}
	field := r.fieldPath("")
	r.diags = append(r.diags, Diagnostic{Field: field, Offset: start, Raw: raw})
	r.logger.Warn("unable to convert text", "field", field, "offset", start, "raw", raw)
	return Text{Value: BadText, raw: raw}
}
