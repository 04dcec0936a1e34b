// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/albapepper/fofdata/internal/codec"
)

// ErrorResponse is the standard error shape for all API errors.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail,omitempty"`
		Field   string `json:"field,omitempty"`
		Offset  *int64 `json:"offset,omitempty"`
	} `json:"error"`
}

// WriteJSON writes raw JSON bytes to the response with cache and ETag headers.
func WriteJSON(w http.ResponseWriter, data []byte, etag string, ttl time.Duration, cacheHit bool) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Accept-Encoding")
	setCacheHeaders(w, ttl, cacheHit)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// WriteNotModified sends a 304 with the matching ETag.
func WriteNotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}

// WriteError sends a structured JSON error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	writeError(w, status, resp)
}

// WriteErrorDetail sends a structured error with additional detail.
func WriteErrorDetail(w http.ResponseWriter, status int, code, message, detail string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Detail = detail
	writeError(w, status, resp)
}

// decodeCodes maps decoder failure kinds to API error codes.
var decodeCodes = map[error]string{
	codec.ErrTruncatedInput:          "TRUNCATED_INPUT",
	codec.ErrMagicMismatch:           "MAGIC_MISMATCH",
	codec.ErrUnknownVariantTag:       "UNKNOWN_VARIANT_TAG",
	codec.ErrStructuralInvariant:     "STRUCTURAL_INVARIANT",
	codec.ErrUnexpectedEndOfSequence: "UNEXPECTED_END_OF_SEQUENCE",
	codec.ErrRevisionMismatch:        "REVISION_MISMATCH",
}

// DecodeErrorCode returns the API code for a decoder failure, or
// "DECODE_FAILED" when err carries no known kind.
func DecodeErrorCode(err error) string {
	if code, ok := decodeCodes[codec.Kind(err)]; ok {
		return code
	}
	return "DECODE_FAILED"
}

// WriteDecodeError sends a 422 describing why a save file could not be
// decoded, including the failing field path and byte offset when known.
func WriteDecodeError(w http.ResponseWriter, message string, err error) {
	resp := ErrorResponse{}
	resp.Error.Code = DecodeErrorCode(err)
	resp.Error.Message = message
	resp.Error.Detail = err.Error()
	var de *codec.DecodeError
	if errors.As(err, &de) {
		resp.Error.Field = de.Field
		off := de.Offset
		resp.Error.Offset = &off
	}
	writeError(w, http.StatusUnprocessableEntity, resp)
}

// WriteJSONObject marshals a Go value to JSON and writes it.
// Used for responses that are not cached (health checks, errors).
func WriteJSONObject(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func setCacheHeaders(w http.ResponseWriter, ttl time.Duration, cacheHit bool) {
	maxAge := int(ttl.Seconds())
	swr := maxAge / 2
	if cacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", maxAge, swr))
}
