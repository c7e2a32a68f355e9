// types.go - Core API Types (Encoding-Auswahl, Requests, Responses, Errors)
// Enthaelt: Encoding, StatusError, EncodeRequest, SegmentResponse, DecodeResponse
package api

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError is an error with an HTTP status code and message.
type StatusError struct {
	StatusCode   int
	Status       string
	ErrorMessage string `json:"error"`
}

func (e StatusError) Error() string {
	switch {
	case e.Status != "" && e.ErrorMessage != "":
		return fmt.Sprintf("%s: %s", e.Status, e.ErrorMessage)
	case e.Status != "":
		return e.Status
	case e.ErrorMessage != "":
		return e.ErrorMessage
	default:
		// this should not happen
		return "something went wrong, please see the runewire server logs for details"
	}
}

// Encoding selects the byte encoding of a stream. Runewire implements
// exactly one variant; everything else is rejected up front instead of
// being routed to a codec that does not exist here.
type Encoding string

// EncodingUTF8 is the only supported encoding.
const EncodingUTF8 Encoding = "utf-8"

var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// ParseEncoding normalizes a user-supplied encoding name. The empty
// string selects UTF-8.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("%w: %q (only %q is supported)", ErrUnsupportedEncoding, s, EncodingUTF8)
	}
}

// EncodeRequest asks the server to encode a sequence of code points.
type EncodeRequest struct {
	// Codepoints are Unicode scalar values in order.
	Codepoints []uint32 `json:"codepoints"`

	// Encoding of the response body; empty means UTF-8.
	Encoding string `json:"encoding,omitempty"`
}

// SegmentResponse is one item of the NDJSON stream produced by the
// segment endpoint. The final item carries Done and the segment count.
type SegmentResponse struct {
	Segment string `json:"segment,omitempty"`
	Done    bool   `json:"done,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// DecodeResponse is one item of the NDJSON stream produced by the
// decode endpoint: the decoded text of one chunk plus its code points.
type DecodeResponse struct {
	Text       string   `json:"text,omitempty"`
	Codepoints []uint32 `json:"codepoints,omitempty"`
	Done       bool     `json:"done,omitempty"`
}

// VersionResponse is the response of the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
}
