// Package codec - UTF-8 Codec fuer Runewire
// Hauptmodul: Bit-exakte Kodierung und Dekodierung einzelner Codepoints
// Weitere Module:
// - decoder.go: Inkrementeller Stream-Decoder mit Chunk-Grenzen-Handling
// - encoder.go: Zustandsloser Chunk-Encoder
// - transform.go: transform.Transformer-Adapter fuer golang.org/x/text
package codec

// The lowest and highest continuation byte.
const (
	loCB = 0x80 // 1000 0000
	hiCB = 0xBF // 1011 1111
)

// HeaderLen returns the total sequence length implied by a first byte.
//
// This is the lenient classifier used for byte-count estimates: a stray
// continuation byte in [0x80,0xBF] maps to length 1 instead of failing.
// Strict header validation happens in [DecodeRune], which rejects such
// bytes at the start of a sequence. Keep the two separate.
func HeaderLen(b byte) int {
	switch {
	case b < 0xC0:
		return 1
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}

// Sequence is the canonical UTF-8 form of a single code point.
// N is the encoded length (1 to 4); only B[:N] is meaningful.
type Sequence struct {
	N int
	B [4]byte
}

// Bytes returns the encoded bytes. The returned slice aliases the
// receiver's array.
func (s Sequence) Bytes() []byte { return s.B[:s.N] }

// AppendTo appends the encoded bytes to dst.
func (s Sequence) AppendTo(dst []byte) []byte { return append(dst, s.B[:s.N]...) }

// EncodeRune encodes one code point. Length is selected by the 0x80,
// 0x800 and 0x10000 thresholds.
//
// Values above 0x10FFFF are not rejected; their high bits are silently
// truncated by the shift-and-mask assembly. Callers that need strict
// range checking must do it themselves.
func EncodeRune(r rune) Sequence {
	cp := uint32(r)
	switch {
	case cp < 0x80:
		return Sequence{N: 1, B: [4]byte{byte(cp)}}
	case cp < 0x800:
		return Sequence{N: 2, B: [4]byte{
			0xC0 | byte(cp>>6),
			loCB | byte(cp)&0x3F,
		}}
	case cp < 0x10000:
		return Sequence{N: 3, B: [4]byte{
			0xE0 | byte(cp>>12),
			loCB | byte(cp>>6)&0x3F,
			loCB | byte(cp)&0x3F,
		}}
	default:
		return Sequence{N: 4, B: [4]byte{
			0xF0 | byte(cp>>18),
			loCB | byte(cp>>12)&0x3F,
			loCB | byte(cp>>6)&0x3F,
			loCB | byte(cp)&0x3F,
		}}
	}
}

// headerMask holds the payload mask of the header byte, indexed by
// sequence length.
var headerMask = [5]byte{0, 0x7F, 0x1F, 0x0F, 0x07}

// DecodeRune decodes exactly one code point from p. The caller passes
// the complete sequence: len(p) must equal HeaderLen(p[0]).
//
// Unlike HeaderLen, this is the strict side of the codec: a continuation
// byte in header position fails with ErrInvalidHeader, and every
// continuation byte outside [0x80,0xBF] fails with ErrInvalidContinuation.
func DecodeRune(p []byte) (rune, error) {
	if len(p) == 0 {
		return 0, ErrMissingByte
	}

	h := p[0]
	if h >= loCB && h <= hiCB {
		return 0, &ByteError{Err: ErrInvalidHeader, Byte: h}
	}

	n := HeaderLen(h)
	if len(p) < n {
		return 0, ErrMissingByte
	}

	cp := rune(h & headerMask[n])
	for _, c := range p[1:n] {
		if c < loCB || c > hiCB {
			return 0, &ByteError{Err: ErrInvalidContinuation, Byte: c}
		}
		cp = cp<<6 | rune(c&0x3F)
	}

	return cp, nil
}
