// Package pipeline - Pull-getriebene Dekodier- und Segmentier-Pipeline
// Verbindet Byte-Quelle, Stream-Decoder und Splitter zu einem Strom von
// Text-Chunks bzw. Segmenten
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/7blacky7/runewire/codec"
	"github.com/7blacky7/runewire/split"
)

// Mode selects how decoded text is segmented.
type Mode int

const (
	// Raw emits decoded text chunks without segmentation.
	Raw Mode = iota
	// Lines cuts at '\n', preserving empty lines.
	Lines
	// Words cuts at Unicode whitespace, collapsing runs.
	Words
)

func (m Mode) String() string {
	switch m {
	case Raw:
		return "raw"
	case Lines:
		return "lines"
	case Words:
		return "words"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

var errUnknownMode = errors.New("unknown segmentation mode")

// ParseMode maps a user-facing mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "raw":
		return Raw, nil
	case "lines", "line":
		return Lines, nil
	case "words", "word":
		return Words, nil
	default:
		return Raw, fmt.Errorf("%w: %q (use raw, lines or words)", errUnknownMode, s)
	}
}

// DefaultChunkBytes is the read size used when Config.ChunkBytes is
// zero.
const DefaultChunkBytes = 4096

// Config carries the per-run knobs of a pipeline.
type Config struct {
	// ChunkBytes is the size of each pull from the byte source.
	ChunkBytes int
	// StripBOM drops a leading U+FEFF after decoding.
	StripBOM bool
}

// Run pulls byte chunks from r, decodes them and hands segments (or raw
// text chunks, per mode) to sink in source order.
//
// The whole chain is single-threaded and fail-fast: the first terminal
// error - malformed input, a failed read, a sink error or context
// cancellation - stops all further pulls and is returned. On a clean end
// of stream the decoder is finalized and the splitter flushed exactly
// once, so a trailing unterminated segment is still delivered and a
// truncated multi-byte sequence still fails.
//
// Memory between delimiters is not bounded: a stream with no delimiter
// buffers its whole text in the splitter. Known limitation.
func Run(ctx context.Context, r io.Reader, mode Mode, cfg Config, sink func([]rune) error) error {
	size := cfg.ChunkBytes
	if size <= 0 {
		size = DefaultChunkBytes
	}

	var dec codec.Decoder
	var sp *split.Splitter
	switch mode {
	case Lines:
		sp = split.NewLines()
	case Words:
		sp = split.NewWords()
	}

	buf := make([]byte, size)
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			text, err := dec.Feed(buf[:n])
			if err != nil {
				return err
			}

			if first && cfg.StripBOM && len(text) > 0 && text[0] == '\uFEFF' {
				text = text[1:]
			}
			if len(text) > 0 {
				first = false
			}

			if err := emit(sp, text, sink); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	if err := dec.Finalize(); err != nil {
		return err
	}

	if sp != nil {
		if seg, ok := sp.Flush(); ok {
			return sink(seg)
		}
	}

	return nil
}

func emit(sp *split.Splitter, text []rune, sink func([]rune) error) error {
	if sp == nil {
		if len(text) == 0 {
			return nil
		}
		return sink(text)
	}

	for _, seg := range sp.Feed(text) {
		if err := sink(seg); err != nil {
			return err
		}
	}
	return nil
}
