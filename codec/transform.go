// transform.go - Adapter fuer golang.org/x/text/transform
// Validator reicht gueltiges UTF-8 unveraendert durch und bricht bei
// fehlerhaften Sequenzen ab
package codec

import (
	"golang.org/x/text/transform"
)

// Validator is a transform.Transformer that copies valid UTF-8 through
// unchanged and fails on the first malformed sequence. Plug it into
// transform.NewReader to get a validating pass-through reader.
//
// It holds no state: incomplete sequences at the end of the source are
// reported as transform.ErrShortSrc and retried by the framework.
type Validator struct{}

var _ transform.Transformer = Validator{}

// Transform implements transform.Transformer.
func (Validator) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		n := HeaderLen(src[nSrc])
		if len(src)-nSrc < n {
			if atEOF {
				return nDst, nSrc, ErrMissingByte
			}
			return nDst, nSrc, transform.ErrShortSrc
		}

		if _, err := DecodeRune(src[nSrc : nSrc+n]); err != nil {
			return nDst, nSrc, err
		}

		if len(dst)-nDst < n {
			return nDst, nSrc, transform.ErrShortDst
		}

		nDst += copy(dst[nDst:], src[nSrc:nSrc+n])
		nSrc += n
	}

	return nDst, nSrc, nil
}

// Reset implements transform.Transformer. Validator has no state.
func (Validator) Reset() {}
