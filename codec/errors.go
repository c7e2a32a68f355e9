// errors.go - Fehlerarten der UTF-8 Validierung
// Enthaelt: Sentinel-Fehler und ByteError mit dem fehlerhaften Byte
package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeader reports a continuation byte where a sequence
	// must start. Terminal.
	ErrInvalidHeader = errors.New("invalid utf-8 header byte")

	// ErrInvalidContinuation reports a byte outside [0x80,0xBF] inside
	// a multi-byte sequence. Terminal.
	ErrInvalidContinuation = errors.New("invalid utf-8 continuation byte")

	// ErrMissingByte means a sequence is not yet complete. It is
	// recoverable while more input can arrive; [Decoder.Finalize]
	// promotes it to a terminal failure at end of stream.
	ErrMissingByte = errors.New("incomplete utf-8 sequence")

	// ErrBuilding reports that an output buffer could not be grown
	// within its configured limit. Terminal.
	ErrBuilding = errors.New("output buffer limit exceeded")
)

// ByteError wraps a validation failure with the offending byte.
type ByteError struct {
	Err  error
	Byte byte
}

func (e *ByteError) Error() string {
	return fmt.Sprintf("%s: 0x%02X", e.Err, e.Byte)
}

func (e *ByteError) Unwrap() error { return e.Err }
