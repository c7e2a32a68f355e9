// decoder.go - Inkrementeller UTF-8 Stream-Decoder
// Puffert unvollstaendige Multi-Byte-Sequenzen ueber Chunk-Grenzen hinweg
package codec

import "fmt"

// Decoder decodes a UTF-8 byte stream that arrives in arbitrarily sized
// chunks. A multi-byte sequence may straddle a chunk boundary; the
// decoder carries the unfinished suffix (at most three bytes) until the
// next chunk completes it.
//
// The zero value is ready to use. A Decoder is not safe for concurrent
// use; the pipeline is strictly pull-driven and single-threaded.
type Decoder struct {
	// pending holds bytes that begin, but do not complete, a sequence.
	// Invariant: len(pending) < HeaderLen(pending[0]).
	pending []byte
}

// Feed decodes the maximal decodable prefix of the pending bytes plus
// chunk and returns the decoded code points in order.
//
// A short sequence at the end of the chunk is not an error: the suffix
// is buffered and the call returns whatever was decodable before it,
// possibly nothing. A malformed sequence fails the whole call with no
// partial output; the stream is not recoverable after that.
//
// Feed never retains chunk. The buffered suffix is always a fresh copy.
func (d *Decoder) Feed(chunk []byte) ([]rune, error) {
	buf := chunk
	if len(d.pending) > 0 {
		buf = append(d.pending, chunk...)
	}

	var out []rune
	var off int
	for off < len(buf) {
		n := HeaderLen(buf[off])
		if len(buf)-off < n {
			// suspend: the suffix becomes the new pending state
			break
		}

		r, err := DecodeRune(buf[off : off+n])
		if err != nil {
			return nil, err
		}

		out = append(out, r)
		off += n
	}

	d.pending = nil
	if off < len(buf) {
		d.pending = append([]byte(nil), buf[off:]...)
	}

	return out, nil
}

// Pending returns the number of buffered bytes waiting for the rest of
// a multi-byte sequence.
func (d *Decoder) Pending() int { return len(d.pending) }

// Finalize checks the decoder state at end of stream. Buffered bytes
// mean the stream ended inside a multi-byte sequence; since no further
// input can complete it, the otherwise transient ErrMissingByte becomes
// terminal here.
func (d *Decoder) Finalize() error {
	if len(d.pending) == 0 {
		return nil
	}
	return fmt.Errorf("%w: stream ended with %d buffered byte(s)", ErrMissingByte, len(d.pending))
}
