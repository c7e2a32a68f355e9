// encoder.go - Zustandsloser UTF-8 Chunk-Encoder
package codec

import "fmt"

// Encoder projects decoded text chunks back to UTF-8 bytes. It carries
// no state across chunks; every call builds a fresh buffer.
type Encoder struct {
	// MaxBytes bounds the destination buffer per chunk. Zero means no
	// limit. Exceeding the limit fails with ErrBuilding.
	MaxBytes int
}

// Encode maps every code point in text through EncodeRune and
// concatenates the sequences in order.
func (e Encoder) Encode(text []rune) ([]byte, error) {
	if e.MaxBytes > 0 && len(text) > e.MaxBytes {
		// every code point takes at least one byte
		return nil, fmt.Errorf("%w: %d code points exceed %d bytes", ErrBuilding, len(text), e.MaxBytes)
	}

	b := make([]byte, 0, len(text))
	for _, r := range text {
		b = EncodeRune(r).AppendTo(b)
		if e.MaxBytes > 0 && len(b) > e.MaxBytes {
			return nil, fmt.Errorf("%w: output grew past %d bytes", ErrBuilding, e.MaxBytes)
		}
	}

	return b, nil
}
