// Package codec implements the low-level record machinery shared by the save
// game schemas: fixed-width little-endian integers, length-prefixed code-page
// text, magic-framed records, tag- and pattern-dispatched variants, counted
// lists and sentinel-terminated sequences.
//
// A Reader owns no state beyond the stream it wraps, so independent files can
// be decoded concurrently as long as each decode has its own Reader.
package codec
