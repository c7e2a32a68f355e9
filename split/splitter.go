// Package split - Segmentierung dekodierter Textstroeme
// Zerlegt Text-Chunks in Zeilen oder Woerter, unabhaengig davon wie der
// Strom in Chunks aufgeteilt ankommt
package split

import "unicode"

// Splitter cuts a stream of decoded text chunks into segments at
// delimiter positions. An incomplete trailing segment is buffered until
// the next chunk (or Flush) completes it, so delimiters and segments may
// straddle chunk boundaries freely.
//
// Two policies exist: line mode emits an empty segment between
// back-to-back delimiters, word mode collapses whole delimiter runs.
// The zero value is not usable; construct with NewLines or NewWords.
type Splitter struct {
	delim     func(rune) bool
	keepEmpty bool

	// frags accumulates the open segment, most recent last.
	frags [][]rune
	// inRun is word-mode state: the previous chunk ended inside a
	// delimiter run that must still be skipped, not re-emitted.
	inRun bool
}

// NewLines returns a Splitter that cuts at '\n' and preserves empty
// lines between consecutive newlines.
func NewLines() *Splitter {
	return &Splitter{
		delim:     func(r rune) bool { return r == '\n' },
		keepEmpty: true,
	}
}

// NewWords returns a Splitter that cuts at Unicode whitespace and
// collapses runs of consecutive delimiters into a single cut.
func NewWords() *Splitter {
	return &Splitter{delim: unicode.IsSpace}
}

// Feed consumes one text chunk and returns the segments completed by
// it, in order. Content after the last delimiter stays buffered.
//
// Feed never retains chunk; buffered fragments are fresh copies.
func (s *Splitter) Feed(chunk []rune) [][]rune {
	var segs [][]rune

	i := 0
	for i < len(chunk) {
		if s.inRun {
			for i < len(chunk) && s.delim(chunk[i]) {
				i++
			}
			if i == len(chunk) {
				// run continues into the next chunk
				return segs
			}
			s.inRun = false
		}

		start := i
		for i < len(chunk) && !s.delim(chunk[i]) {
			i++
		}

		if i == len(chunk) {
			// no delimiter in the remainder: buffer it and suspend
			if i > start {
				s.frags = append(s.frags, append([]rune(nil), chunk[start:i]...))
			}
			return segs
		}

		seg := s.take(chunk[start:i])
		if s.keepEmpty || len(seg) > 0 {
			segs = append(segs, seg)
		}

		i++ // step over the delimiter
		if !s.keepEmpty {
			s.inRun = true
		}
	}

	return segs
}

// Flush emits the final unterminated segment at end of stream, if any.
func (s *Splitter) Flush() ([]rune, bool) {
	s.inRun = false
	if len(s.frags) == 0 {
		return nil, false
	}
	return s.take(nil), true
}

// Buffered returns the number of code points held for the open segment.
func (s *Splitter) Buffered() int {
	var n int
	for _, f := range s.frags {
		n += len(f)
	}
	return n
}

// take concatenates the buffered fragments plus the closing piece into
// one segment and resets the fragment state.
func (s *Splitter) take(tail []rune) []rune {
	n := len(tail)
	for _, f := range s.frags {
		n += len(f)
	}

	seg := make([]rune, 0, n)
	for _, f := range s.frags {
		seg = append(seg, f...)
	}
	seg = append(seg, tail...)

	s.frags = s.frags[:0]
	return seg
}
