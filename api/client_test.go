// MODUL: client_test
// ZWECK: Tests fuer den Service-Client (do/stream, Fehlerpfade)
// INPUT: httptest-Server mit NDJSON- und JSON-Antworten
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing, httptest, testify

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	return NewClient(base, srv.Client())
}

func TestClientSegment(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/segment", r.URL.Path)
		require.Equal(t, "lines", r.URL.Query().Get("mode"))

		w.Header().Set("Content-Type", "application/x-ndjson")
		enc := json.NewEncoder(w)
		require.NoError(t, enc.Encode(SegmentResponse{Segment: "a"}))
		require.NoError(t, enc.Encode(SegmentResponse{Segment: "b"}))
		require.NoError(t, enc.Encode(SegmentResponse{Done: true, Count: 2}))
	})

	var segs []string
	var done bool
	err := c.Segment(context.Background(), strings.NewReader("a\nb"), "lines", func(resp SegmentResponse) error {
		if resp.Done {
			done = true
			assert.Equal(t, 2, resp.Count)
			return nil
		}
		segs = append(segs, resp.Segment)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, segs)
	assert.True(t, done)
}

func TestClientStreamError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte(`{"error":"invalid utf-8 continuation byte: 0x41"}` + "\n"))
	})

	err := c.Segment(context.Background(), strings.NewReader("x"), "words", func(SegmentResponse) error {
		t.Fatal("callback darf bei Fehler nicht laufen")
		return nil
	})

	var statusErr StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Contains(t, statusErr.ErrorMessage, "continuation")
}

func TestClientEncode(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/encode", r.URL.Path)

		var req EncodeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, []uint32{0x4E2D}, req.Codepoints)

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte{0xE4, 0xB8, 0xAD})
	})

	got, err := c.Encode(context.Background(), EncodeRequest{Codepoints: []uint32{0x4E2D}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xE4, 0xB8, 0xAD}, got)
}

func TestClientEncodeStatusError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error":"output buffer limit exceeded"}`))
	})

	_, err := c.Encode(context.Background(), EncodeRequest{Codepoints: []uint32{1, 2, 3}})

	var statusErr StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusErr.StatusCode)
}

func TestClientVersion(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/version", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(VersionResponse{Version: "1.2.3"})
	})

	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v)
}
