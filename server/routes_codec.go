// routes_codec.go - Handler fuer Dekodierung, Kodierung und Segmentierung
// Streamt Segmente und Text-Chunks als NDJSON; Kodierung liefert Rohbytes
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/7blacky7/runewire/api"
	"github.com/7blacky7/runewire/codec"
	"github.com/7blacky7/runewire/envconfig"
	"github.com/7blacky7/runewire/pipeline"
)

func pipelineConfig() pipeline.Config {
	return pipeline.Config{
		ChunkBytes: int(envconfig.ChunkBytes()),
		StripBOM:   true,
	}
}

// SegmentHandler zerlegt den Request-Body in Zeilen oder Woerter.
// Query-Parameter: mode (raw|lines|words), encoding (nur utf-8)
func (s *Server) SegmentHandler(c *gin.Context) {
	mode, err := pipeline.ParseMode(c.Query("mode"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := api.ParseEncoding(c.Query("encoding")); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ch := make(chan any)
	go func() {
		defer close(ch)

		var count int
		err := pipeline.Run(c.Request.Context(), c.Request.Body, mode, pipelineConfig(), func(seg []rune) error {
			count++
			ch <- api.SegmentResponse{Segment: string(seg)}
			return nil
		})
		if err != nil {
			ch <- gin.H{"error": err.Error(), "status": http.StatusBadRequest}
			return
		}

		ch <- api.SegmentResponse{Done: true, Count: count}
	}()

	streamResponse(c, ch)
}

// DecodeHandler dekodiert den Request-Body und streamt Text-Chunks mit
// ihren Codepoints
func (s *Server) DecodeHandler(c *gin.Context) {
	if _, err := api.ParseEncoding(c.Query("encoding")); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ch := make(chan any)
	go func() {
		defer close(ch)

		err := pipeline.Run(c.Request.Context(), c.Request.Body, pipeline.Raw, pipelineConfig(), func(text []rune) error {
			cps := make([]uint32, len(text))
			for i, r := range text {
				cps[i] = uint32(r)
			}
			ch <- api.DecodeResponse{Text: string(text), Codepoints: cps}
			return nil
		})
		if err != nil {
			ch <- gin.H{"error": err.Error(), "status": http.StatusBadRequest}
			return
		}

		ch <- api.DecodeResponse{Done: true}
	}()

	streamResponse(c, ch)
}

// EncodeHandler kodiert die uebergebenen Codepoints zu UTF-8 Rohbytes
func (s *Server) EncodeHandler(c *gin.Context) {
	var req api.EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := api.ParseEncoding(req.Encoding); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := make([]rune, len(req.Codepoints))
	for i, cp := range req.Codepoints {
		text[i] = rune(cp)
	}

	enc := codec.Encoder{MaxBytes: int(envconfig.MaxEncodeBytes())}
	b, err := enc.Encode(text)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, codec.ErrBuilding) {
			status = http.StatusRequestEntityTooLarge
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", b)
}
